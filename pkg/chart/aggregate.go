// Package chart derives the per-day routine counts and binds them to a bar
// chart widget.
package chart

import (
	"sort"
	"time"

	"tableflip.dev/routines/pkg/routine"
)

// Series is one bar per day: Labels are the days, Counts the routines on each.
type Series struct {
	Labels []string
	Counts []int
}

// Max is the largest count, or zero.
func (s Series) Max() int {
	m := 0
	for _, c := range s.Counts {
		if c > m {
			m = c
		}
	}
	return m
}

// Aggregate groups every routine in c by the first ten characters of its
// datetime and counts each group. Labels are sorted lexicographically, which
// is chronological for ISO dates.
func Aggregate(c routine.Collection) Series {
	counts := make(map[string]int)
	for _, r := range c {
		counts[r.Day()]++
	}
	labels := make([]string, 0, len(counts))
	for day := range counts {
		labels = append(labels, day)
	}
	sort.Strings(labels)
	s := Series{Labels: labels, Counts: make([]int, len(labels))}
	for i, day := range labels {
		s.Counts[i] = counts[day]
	}
	return s
}

const (
	TypeBar       = "bar"
	DatasetLabel  = "Routines per day"
	DefaultColor  = "#7f5af0"
	EaseInOutCube = "easeInOutCubic"

	AnimationDuration = 700 * time.Millisecond
)

// Spec is what a Surface needs to draw a chart, modelled on the usual
// {type, data, options} widget configuration.
type Spec struct {
	Type    string
	Data    Data
	Options Options
}

type Data struct {
	Labels   []string
	Datasets []Dataset
}

type Dataset struct {
	Label string
	Data  []int
	Color string
}

type Options struct {
	ShowLegend  bool
	BeginAtZero bool
	StepSize    int
	Animation   Animation
}

type Animation struct {
	Duration time.Duration
	Easing   string
}

// NewSpec wraps s in the bar chart configuration used everywhere.
func NewSpec(s Series) Spec {
	return Spec{
		Type: TypeBar,
		Data: Data{
			Labels: s.Labels,
			Datasets: []Dataset{{
				Label: DatasetLabel,
				Data:  s.Counts,
				Color: DefaultColor,
			}},
		},
		Options: Options{
			BeginAtZero: true,
			StepSize:    1,
			Animation: Animation{
				Duration: AnimationDuration,
				Easing:   EaseInOutCube,
			},
		},
	}
}

// Ticks returns integer axis ticks from zero to at least highest. The step starts
// at stepSize and grows through 1-2-5 multiples until no more than limit
// ticks are produced.
func Ticks(highest, stepSize, limit int) []int {
	if stepSize < 1 {
		stepSize = 1
	}
	if limit < 2 {
		limit = 2
	}
	step := stepSize
	for mult := 0; (highest+step-1)/step+1 > limit; mult++ {
		step = stepSize * []int{2, 5, 10}[mult%3] * pow10(mult/3)
	}
	var out []int
	for v := 0; ; v += step {
		out = append(out, v)
		if v >= highest {
			break
		}
	}
	return out
}

func pow10(n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
