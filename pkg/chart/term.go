package chart

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// TermSurface draws horizontal bar charts as text for the terminal.
type TermSurface struct {
	// Width is the number of cells available for the longest bar.
	Width int
}

func (s TermSurface) NewChart(spec Spec) (Widget, error) {
	w := &TermChart{spec: spec, width: s.Width}
	if w.width <= 0 {
		w.width = 40
	}
	if len(spec.Data.Datasets) == 0 {
		w.spec.Data.Datasets = []Dataset{{Label: DatasetLabel, Color: DefaultColor}}
	}
	w.shown = map[string]float64{}
	return w, nil
}

// TermChart is the terminal widget. After Update, bars grow from the values
// previously on screen to the new counts over the spec's animation duration;
// call Step with the elapsed time to advance.
type TermChart struct {
	spec  Spec
	width int

	from     map[string]float64
	shown    map[string]float64
	progress float64
	updates  int
}

func (c *TermChart) SetData(labels []string, counts []int) {
	c.spec.Data.Labels = labels
	c.spec.Data.Datasets[0].Data = counts
}

// Update starts a transition from what is on screen to the current data.
func (c *TermChart) Update() error {
	c.from = c.shown
	c.shown = make(map[string]float64, len(c.spec.Data.Labels))
	for _, label := range c.spec.Data.Labels {
		c.shown[label] = c.from[label]
	}
	c.progress = 0
	c.updates++
	if c.spec.Options.Animation.Duration <= 0 {
		c.Step(0)
	}
	return nil
}

// Updates counts calls to Update.
func (c *TermChart) Updates() int { return c.updates }

// Animating reports whether a transition is still running.
func (c *TermChart) Animating() bool { return c.progress < 1 }

// Step advances the transition to elapsed since the last Update.
func (c *TermChart) Step(elapsed time.Duration) {
	d := c.spec.Options.Animation.Duration
	p := 1.0
	if d > 0 {
		p = math.Min(1, float64(elapsed)/float64(d))
	}
	c.progress = p
	eased := ease(c.spec.Options.Animation.Easing, p)
	counts := c.counts()
	for i, label := range c.spec.Data.Labels {
		start := c.from[label]
		c.shown[label] = start + (float64(counts[i])-start)*eased
	}
}

// SetWidth sets the cells available for the longest bar.
func (c *TermChart) SetWidth(w int) {
	if w > 0 {
		c.width = w
	}
}

func (c *TermChart) counts() []int {
	counts := c.spec.Data.Datasets[0].Data
	if len(counts) < len(c.spec.Data.Labels) {
		padded := make([]int, len(c.spec.Data.Labels))
		copy(padded, counts)
		return padded
	}
	return counts
}

var (
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// View renders the chart as it currently stands in its transition.
func (c *TermChart) View() string {
	labels := c.spec.Data.Labels
	ds := c.spec.Data.Datasets[0]
	var b strings.Builder
	b.WriteString(titleStyle.Render(ds.Label))
	b.WriteString("\n")
	if len(labels) == 0 {
		b.WriteString(axisStyle.Render("no routines yet"))
		return b.String()
	}

	counts := c.counts()
	most := 0
	for _, n := range counts {
		if n > most {
			most = n
		}
	}
	ticks := Ticks(most, c.spec.Options.StepSize, c.width/4+1)
	top := ticks[len(ticks)-1]
	if top == 0 {
		top = 1
	}

	labelWidth := 0
	for _, l := range labels {
		if w := lipgloss.Width(l); w > labelWidth {
			labelWidth = w
		}
	}

	palette := ramp(ds.Color, len(labels))
	for i, label := range labels {
		cells := int(math.Round(c.shown[label] / float64(top) * float64(c.width)))
		bar := lipgloss.NewStyle().Foreground(palette[i]).Render(strings.Repeat("█", cells))
		fmt.Fprintf(&b, "%s %s %s\n",
			labelStyle.Render(padRight(label, labelWidth)),
			axisStyle.Render("│")+bar,
			axisStyle.Render(fmt.Sprint(counts[i])))
	}
	b.WriteString(strings.Repeat(" ", labelWidth+1))
	b.WriteString(axisStyle.Render(axisLine(ticks, top, c.width)))
	return b.String()
}

// axisLine lays integer ticks along the value axis.
func axisLine(ticks []int, top, width int) string {
	line := []rune(strings.Repeat(" ", width+8))
	for _, t := range ticks {
		pos := 1 + int(math.Round(float64(t)/float64(top)*float64(width)))
		for j, r := range fmt.Sprint(t) {
			if pos+j < len(line) {
				line[pos+j] = r
			}
		}
	}
	return strings.TrimRight(string(line), " ")
}

func padRight(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

// ramp blends base towards a lighter tint across n bars.
func ramp(base string, n int) []lipgloss.Color {
	start, err := colorful.Hex(base)
	if err != nil {
		start, _ = colorful.Hex(DefaultColor)
	}
	end := start.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.45)
	out := make([]lipgloss.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = lipgloss.Color(start.BlendLab(end, t).Clamped().Hex())
	}
	return out
}

func ease(name string, p float64) float64 {
	switch name {
	case EaseInOutCube:
		if p < 0.5 {
			return 4 * p * p * p
		}
		return 1 - math.Pow(-2*p+2, 3)/2
	default:
		return p
	}
}
