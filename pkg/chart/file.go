package chart

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// FileSurface renders the chart to an image file. The format follows the
// extension: .svg writes SVG, anything else PNG.
type FileSurface struct {
	Path   string
	Height int
}

func (s FileSurface) NewChart(spec Spec) (Widget, error) {
	if strings.TrimSpace(s.Path) == "" {
		return nil, errors.New("chart: output path required")
	}
	if len(spec.Data.Datasets) == 0 {
		spec.Data.Datasets = []Dataset{{Label: DatasetLabel, Color: DefaultColor}}
	}
	h := s.Height
	if h <= 0 {
		h = 400
	}
	return &FileChart{path: s.Path, height: h, spec: spec}, nil
}

// FileChart rewrites its file on every Update.
type FileChart struct {
	path   string
	height int
	spec   Spec
}

func (c *FileChart) SetData(labels []string, counts []int) {
	c.spec.Data.Labels = labels
	c.spec.Data.Datasets[0].Data = counts
}

// Path is where the image is written.
func (c *FileChart) Path() string { return c.path }

// Update renders the chart and replaces the file. With no data there is no
// bar to draw and the file is left as it is.
func (c *FileChart) Update() error {
	graph, ok := c.graph()
	if !ok {
		return nil
	}

	format := gochart.PNG
	if strings.EqualFold(filepath.Ext(c.path), ".svg") {
		format = gochart.SVG
	}
	var buf bytes.Buffer
	if err := graph.Render(format, &buf); err != nil {
		return fmt.Errorf("chart: render: %w", err)
	}

	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("chart: ensure directory: %w", err)
		}
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}

func (c *FileChart) graph() (gochart.BarChart, bool) {
	ds := c.spec.Data.Datasets[0]
	labels := c.spec.Data.Labels
	if len(labels) == 0 {
		return gochart.BarChart{}, false
	}

	fill := drawing.ColorFromHex(strings.TrimPrefix(ds.Color, "#"))
	bars := make([]gochart.Value, len(labels))
	highest := 0
	for i, label := range labels {
		n := 0
		if i < len(ds.Data) {
			n = ds.Data[i]
		}
		if n > highest {
			highest = n
		}
		bars[i] = gochart.Value{
			Label: label,
			Value: float64(n),
			Style: gochart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 0},
		}
	}

	ticks := Ticks(highest, c.spec.Options.StepSize, 11)
	yTicks := make([]gochart.Tick, len(ticks))
	for i, t := range ticks {
		yTicks[i] = gochart.Tick{Value: float64(t), Label: strconv.Itoa(t)}
	}
	top := ticks[len(ticks)-1]
	if top == 0 {
		top = 1
	}

	barWidth := 40
	width := len(bars)*(barWidth+24) + 120
	if width < 480 {
		width = 480
	}

	return gochart.BarChart{
		Title:      ds.Label,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      width,
		Height:     c.height,
		BarWidth:   barWidth,
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(top)},
			Ticks: yTicks,
		},
		Bars: bars,
	}, true
}
