package form

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/routines/pkg/app"
	"tableflip.dev/routines/pkg/chart"
	"tableflip.dev/routines/pkg/routine"
	"tableflip.dev/routines/pkg/store"
)

type listSpy struct {
	renders int
	last    routine.Collection
}

func (l *listSpy) RenderList(c routine.Collection) {
	l.renders++
	l.last = c
}

type widgetSpy struct {
	labels  []string
	counts  []int
	updates int
}

func (w *widgetSpy) SetData(labels []string, counts []int) { w.labels, w.counts = labels, counts }
func (w *widgetSpy) Update() error                         { w.updates++; return nil }

type surfaceSpy struct{ w *widgetSpy }

func (s *surfaceSpy) NewChart(spec chart.Spec) (chart.Widget, error) {
	s.w = &widgetSpy{labels: spec.Data.Labels, counts: spec.Data.Datasets[0].Data}
	return s.w, nil
}

type fixture struct {
	ctx     context.Context
	form    *Controller
	mem     *store.Memory
	list    *listSpy
	surface *surfaceSpy
}

func newFixture(t *testing.T, cfg Config, seed routine.Collection) *fixture {
	t.Helper()
	ctx := context.Background()
	mem := store.NewMemory("", nil)
	if seed != nil {
		require.NoError(t, mem.Save(ctx, seed))
	}
	ms := int64(1714546800000)
	svc := &app.Service{
		Storage: mem,
		Clock: func() time.Time {
			ms++
			return time.UnixMilli(ms)
		},
	}
	f := &fixture{ctx: ctx, mem: mem, list: &listSpy{}, surface: &surfaceSpy{}}
	f.form = New(cfg, svc, f.list, chart.NewBinder(f.surface, nil), nil)
	require.NoError(t, f.form.Render(ctx))
	return f
}

func scenario() routine.Collection {
	return routine.Collection{
		{ID: "1", Name: "Run", Datetime: "2024-05-01T07:00"},
		{ID: "2", Name: "Read", Datetime: "2024-05-01T20:00"},
		{ID: "3", Name: "Piano", Datetime: "2024-05-02T09:00"},
	}
}

func names(c routine.Collection) []string {
	out := make([]string, len(c))
	for i, r := range c {
		out[i] = r.Name
	}
	return out
}

func TestInitialRender(t *testing.T) {
	f := newFixture(t, DefaultConfig(), scenario())
	assert.Equal(t, []string{"Run", "Read", "Piano"}, names(f.list.last))
	assert.Equal(t, []string{"2024-05-01", "2024-05-02"}, f.surface.w.labels)
	assert.Equal(t, []int{2, 1}, f.surface.w.counts)
	assert.Equal(t, AddLabel, f.form.SubmitLabel())
	assert.False(t, f.form.CancelVisible())
}

func TestSubmitAdds(t *testing.T) {
	f := newFixture(t, DefaultConfig(), nil)
	f.form.SetName("  Run ")
	f.form.SetDatetime("2024-05-01T07:00")
	f.form.SetStudent("Ana")

	ok, err := f.form.Submit(f.ctx)
	require.NoError(t, err)
	require.True(t, ok)

	require.Len(t, f.list.last, 1)
	assert.Equal(t, "Run", f.list.last[0].Name)
	assert.Equal(t, "Ana", f.list.last[0].StudentName)
	assert.Equal(t, []int{1}, f.surface.w.counts)
	assert.Equal(t, Values{}, f.form.Values(), "form resets after submit")
}

func TestSubmitEmptyNameChangesNothing(t *testing.T) {
	f := newFixture(t, DefaultConfig(), scenario())
	renders, updates := f.list.renders, f.surface.w.updates

	f.form.SetName("   ")
	f.form.SetDatetime("2024-05-03T10:00")
	ok, err := f.form.Submit(f.ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 1, f.mem.Saves, "only the seed write")
	assert.Equal(t, renders, f.list.renders)
	assert.Equal(t, updates, f.surface.w.updates)
	assert.Equal(t, "2024-05-03T10:00", f.form.Values().Datetime, "values are kept for correction")
}

func TestEditFlow(t *testing.T) {
	f := newFixture(t, DefaultConfig(), scenario())

	require.NoError(t, f.form.Dispatch(f.ctx, Action{Kind: ActionEdit, ID: "2"}))
	assert.Equal(t, "2", f.form.Editing())
	assert.Equal(t, UpdateLabel, f.form.SubmitLabel())
	assert.True(t, f.form.CancelVisible())
	assert.Equal(t, Values{Name: "Read", Datetime: "2024-05-01T20:00"}, f.form.Values())

	f.form.SetName("Write")
	ok, err := f.form.Submit(f.ctx)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []string{"Run", "Write", "Piano"}, names(f.list.last))
	assert.Equal(t, "2", f.list.last[1].ID)
	assert.Equal(t, "", f.form.Editing())
	assert.Equal(t, AddLabel, f.form.SubmitLabel())
}

func TestEditOfDeletedRoutineDoesNotResurrect(t *testing.T) {
	f := newFixture(t, DefaultConfig(), scenario())
	require.NoError(t, f.form.Dispatch(f.ctx, Action{Kind: ActionEdit, ID: "2"}))
	require.NoError(t, f.form.Dispatch(f.ctx, Action{Kind: ActionDelete, ID: "2"}))

	ok, err := f.form.Submit(f.ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Run", "Piano"}, names(f.list.last))
	assert.Equal(t, "", f.form.Editing())
}

func TestEditUnknownIDIsIgnored(t *testing.T) {
	f := newFixture(t, DefaultConfig(), scenario())
	require.NoError(t, f.form.Dispatch(f.ctx, Action{Kind: ActionEdit, ID: "nope"}))
	assert.Equal(t, "", f.form.Editing())
	assert.Equal(t, AddLabel, f.form.SubmitLabel())
}

func TestCancelEdit(t *testing.T) {
	f := newFixture(t, DefaultConfig(), scenario())
	require.NoError(t, f.form.Dispatch(f.ctx, Action{Kind: ActionEdit, ID: "1"}))
	f.form.CancelEdit()

	assert.Equal(t, Values{}, f.form.Values())
	assert.False(t, f.form.CancelVisible())
	assert.Equal(t, 1, f.mem.Saves)
}

func TestCancelHiddenWhenDisabled(t *testing.T) {
	f := newFixture(t, Config{}, scenario())
	require.NoError(t, f.form.Dispatch(f.ctx, Action{Kind: ActionEdit, ID: "1"}))
	assert.False(t, f.form.CancelVisible())
	assert.Equal(t, UpdateLabel, f.form.SubmitLabel())
}

func TestDelete(t *testing.T) {
	f := newFixture(t, DefaultConfig(), scenario())
	require.NoError(t, f.form.Dispatch(f.ctx, Action{Kind: ActionDelete, ID: "3"}))
	assert.Equal(t, []string{"Run", "Read"}, names(f.list.last))
	assert.Equal(t, []string{"2024-05-01"}, f.surface.w.labels)
	assert.Equal(t, []int{2}, f.surface.w.counts)
}

func TestFiltersKeepChartUnfiltered(t *testing.T) {
	f := newFixture(t, DefaultConfig(), scenario())

	require.NoError(t, f.form.SetDateFilter(f.ctx, "2024-05-01"))
	assert.Equal(t, []string{"Run", "Read"}, names(f.list.last))
	assert.Equal(t, []int{2, 1}, f.surface.w.counts)

	require.NoError(t, f.form.SetNameFilter(f.ctx, "RE"))
	assert.Equal(t, []string{"Read"}, names(f.list.last))

	require.NoError(t, f.form.ClearFilters(f.ctx))
	assert.Len(t, f.list.last, 3)
	assert.True(t, f.form.Criteria().IsZero())
}

func TestClearFiltersDisabled(t *testing.T) {
	f := newFixture(t, Config{}, scenario())
	require.NoError(t, f.form.SetNameFilter(f.ctx, "run"))
	renders := f.list.renders
	require.NoError(t, f.form.ClearFilters(f.ctx))
	assert.Equal(t, renders, f.list.renders)
	assert.Equal(t, "run", f.form.Criteria().NameSubstring)
}

func TestStudentFieldDisabled(t *testing.T) {
	f := newFixture(t, Config{}, nil)
	f.form.SetName("Run")
	f.form.SetDatetime("2024-05-01T07:00")
	f.form.SetStudent("Ana")
	ok, err := f.form.Submit(f.ctx)
	require.NoError(t, err)
	require.True(t, ok)

	raw, _ := f.mem.Raw()
	assert.NotContains(t, string(raw), "studentName")
}
