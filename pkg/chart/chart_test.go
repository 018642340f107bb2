package chart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/routines/pkg/routine"
)

func scenario() routine.Collection {
	return routine.Collection{
		{ID: "a", Name: "Run", Datetime: "2024-05-01T07:00"},
		{ID: "b", Name: "Read", Datetime: "2024-05-01T20:00"},
		{ID: "c", Name: "Piano", Datetime: "2024-05-02T09:00"},
	}
}

func TestAggregateScenario(t *testing.T) {
	got := Aggregate(scenario())
	want := Series{Labels: []string{"2024-05-01", "2024-05-02"}, Counts: []int{2, 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, got.Max())
}

func TestAggregateSortsLabels(t *testing.T) {
	c := routine.Collection{
		{Datetime: "2024-06-01T07:00"},
		{Datetime: "2023-12-31T23:00"},
		{Datetime: "2024-06-01"},
	}
	got := Aggregate(c)
	assert.Equal(t, []string{"2023-12-31", "2024-06-01"}, got.Labels)
	assert.Equal(t, []int{1, 2}, got.Counts)

	empty := Aggregate(nil)
	assert.Empty(t, empty.Labels)
	assert.Equal(t, 0, empty.Max())
}

func TestNewSpecShape(t *testing.T) {
	spec := NewSpec(Aggregate(scenario()))
	assert.Equal(t, TypeBar, spec.Type)
	require.Len(t, spec.Data.Datasets, 1)
	assert.Equal(t, DatasetLabel, spec.Data.Datasets[0].Label)
	assert.Equal(t, []int{2, 1}, spec.Data.Datasets[0].Data)
	assert.True(t, spec.Options.BeginAtZero)
	assert.Equal(t, 1, spec.Options.StepSize)
}

func TestTicks(t *testing.T) {
	assert.Equal(t, []int{0}, Ticks(0, 1, 10))
	assert.Equal(t, []int{0, 1, 2, 3}, Ticks(3, 1, 10))
	assert.Equal(t, []int{0, 2, 4, 6}, Ticks(5, 1, 4))
	for _, tick := range Ticks(97, 1, 6) {
		assert.Zero(t, tick%5, "ticks should stay on round steps")
	}
}

type fakeSurface struct {
	created int
}

type fakeWidget struct {
	labels  []string
	counts  []int
	updates int
}

func (f *fakeSurface) NewChart(spec Spec) (Widget, error) {
	f.created++
	return &fakeWidget{labels: spec.Data.Labels, counts: spec.Data.Datasets[0].Data}, nil
}

func (w *fakeWidget) SetData(labels []string, counts []int) {
	w.labels, w.counts = labels, counts
}

func (w *fakeWidget) Update() error {
	w.updates++
	return nil
}

func TestBinderWithoutSurfaceIsNoop(t *testing.T) {
	b := NewBinder(nil, nil)
	require.NoError(t, b.Update(scenario()))
	assert.Nil(t, b.Widget())

	var nilBinder *Binder
	require.NoError(t, nilBinder.Update(scenario()))
}

func TestBinderReusesWidget(t *testing.T) {
	s := &fakeSurface{}
	b := NewBinder(s, nil)

	require.NoError(t, b.Update(scenario()))
	first := b.Widget()
	require.NoError(t, b.Update(scenario()[:1]))

	assert.Equal(t, 1, s.created, "widget should be created once")
	assert.Same(t, first, b.Widget())
	w := b.Widget().(*fakeWidget)
	assert.Equal(t, 2, w.updates)
	assert.Equal(t, []string{"2024-05-01"}, w.labels)
	assert.Equal(t, []int{1}, w.counts)
}

func TestTermChartTransitions(t *testing.T) {
	b := NewBinder(TermSurface{Width: 20}, nil)
	require.NoError(t, b.Update(scenario()))
	w := b.Widget().(*TermChart)

	assert.True(t, w.Animating())
	w.Step(10 * time.Second)
	assert.False(t, w.Animating())

	view := w.View()
	assert.Contains(t, view, DatasetLabel)
	assert.Contains(t, view, "2024-05-01")
	assert.Contains(t, view, "2024-05-02")
	assert.Equal(t, 20, strings.Count(firstLine(view, "2024-05-01"), "█"), "largest bar fills the width")

	require.NoError(t, b.Update(nil))
	assert.Same(t, w, b.Widget())
	assert.Equal(t, 2, w.Updates())
	w.Step(time.Second)
	assert.Contains(t, w.View(), "no routines yet")
}

func TestTermChartHalfway(t *testing.T) {
	w, err := TermSurface{Width: 10}.NewChart(NewSpec(Series{Labels: []string{"2024-05-01"}, Counts: []int{2}}))
	require.NoError(t, err)
	tc := w.(*TermChart)
	require.NoError(t, tc.Update())
	tc.Step(350 * time.Millisecond)
	bars := strings.Count(firstLine(tc.View(), "2024-05-01"), "█")
	assert.Greater(t, bars, 0)
	assert.Less(t, bars, 10)
}

func firstLine(view, prefix string) string {
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, prefix) {
			return line
		}
	}
	return ""
}

func TestFileChartWrites(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"chart.png", "chart.svg"} {
		path := filepath.Join(dir, "out", name)
		b := NewBinder(FileSurface{Path: path}, nil)
		require.NoError(t, b.Update(scenario()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		if strings.HasSuffix(name, ".svg") {
			assert.Contains(t, string(data), "<svg")
		} else {
			assert.Equal(t, "\x89PNG", string(data[:4]))
		}

		require.NoError(t, b.Update(nil))
		kept, err := os.ReadFile(path)
		require.NoError(t, err, "empty chart must leave the file in place")
		assert.Equal(t, data, kept)
	}
}

func TestFileChartLeavesExistingFileWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("not ours"), 0o644))

	b := NewBinder(FileSurface{Path: path}, nil)
	require.NoError(t, b.Update(routine.Collection{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not ours", string(data))
}

func TestAggregateMultibyteDatetime(t *testing.T) {
	s := Aggregate(routine.Collection{{ID: "1", Name: "Run", Datetime: "２０２４年05月01日T07:00"}})
	require.Len(t, s.Labels, 1)
	assert.True(t, utf8.ValidString(s.Labels[0]), "label %q", s.Labels[0])
}

func TestFileSurfaceRequiresPath(t *testing.T) {
	_, err := FileSurface{}.NewChart(NewSpec(Series{}))
	assert.Error(t, err)
}
