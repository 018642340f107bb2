// Package tui is the interactive host of the routine form: inputs, filters,
// the animated list and the chart pane.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tableflip.dev/routines/pkg/app"
	"tableflip.dev/routines/pkg/chart"
	"tableflip.dev/routines/pkg/form"
	"tableflip.dev/routines/pkg/logging"
	"tableflip.dev/routines/pkg/store"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeHelp
)

type field int

const (
	fieldName field = iota
	fieldDatetime
	fieldStudent
	fieldDateFilter
	fieldNameFilter
	fieldList
)

// ChartFrame is the interval between chart animation frames.
const ChartFrame = 33 * time.Millisecond

const hintRequired = "Name and datetime are required."

type chartFrameMsg struct{ gen int }
type storeChangedMsg struct{ event store.Event }
type errMsg struct{ err error }

// Options configure the UI.
type Options struct {
	Form       form.Config
	TimeLayout string
	// Chart enables the chart pane.
	Chart bool
	// Watch is an optional source of external change events.
	Watch  <-chan store.Event
	Logger *zap.Logger
	// Now is the animation clock; time.Now when nil.
	Now func() time.Time
}

// Model contains UI state
type Model struct {
	ctx   context.Context
	form  *form.Controller
	rows  *rowList
	chart *chart.Binder
	theme Theme
	log   *zap.Logger
	now   func() time.Time
	watch <-chan store.Event

	mode   mode
	order  []field
	focus  int
	inputs map[field]*textinput.Model

	status string
	failed bool

	chartGen     int
	chartUpdates int
	chartStart   time.Time

	pending    tea.Cmd
	help       string
	termWidth  int
	termHeight int
}

// New creates the UI model backed by svc and performs the first render.
func New(ctx context.Context, svc *app.Service, opts Options) Model {
	log := logging.OrNop(opts.Logger)
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	rows := &rowList{layout: opts.TimeLayout}
	var binder *chart.Binder
	if opts.Chart {
		binder = chart.NewBinder(chart.TermSurface{Width: 30}, log)
	}

	m := Model{
		ctx:    ctx,
		form:   form.New(opts.Form, svc, rows, binder, log),
		rows:   rows,
		chart:  binder,
		theme:  DefaultTheme(),
		log:    log,
		now:    now,
		watch:  opts.Watch,
		mode:   modeInsert,
		inputs: map[field]*textinput.Model{},
		status: "tab: next field, enter: save, ?: help",
	}

	m.order = []field{fieldName, fieldDatetime}
	if opts.Form.StudentName {
		m.order = append(m.order, fieldStudent)
	}
	m.order = append(m.order, fieldDateFilter, fieldNameFilter, fieldList)

	m.inputs[fieldName] = newInput("Morning run", 128)
	m.inputs[fieldDatetime] = newInput("2024-05-01T07:00", 32)
	m.inputs[fieldStudent] = newInput("optional", 128)
	m.inputs[fieldDateFilter] = newInput("YYYY-MM-DD", 32)
	m.inputs[fieldNameFilter] = newInput("name contains", 128)
	m.inputs[fieldName].Focus()

	if err := m.form.Render(ctx); err != nil {
		m.setError(err)
	}
	m.pending = m.rendered()
	return m
}

func newInput(placeholder string, limit int) *textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	ti.Width = 32
	return &ti
}

// Init starts the first entrance animation, the chart and the watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.pending, m.waitForChange())
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.watch
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{event: ev}
	}
}

// startChart begins a chart transition when the last render updated it.
func (m *Model) startChart() tea.Cmd {
	w, ok := m.chart.Widget().(*chart.TermChart)
	if !ok || w.Updates() == m.chartUpdates {
		return nil
	}
	m.chartUpdates = w.Updates()
	m.chartGen++
	m.chartStart = m.now()
	return m.chartFrame()
}

func (m *Model) chartFrame() tea.Cmd {
	gen := m.chartGen
	return tea.Tick(ChartFrame, func(time.Time) tea.Msg { return chartFrameMsg{gen: gen} })
}

// rendered collects the animations a render starts.
func (m *Model) rendered() tea.Cmd {
	return tea.Batch(m.rows.revealCmd(), m.startChart())
}

func (m *Model) setError(err error) {
	m.log.Warn("ui error", zap.Error(err))
	m.status = "ERR: " + err.Error()
	m.failed = true
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *Model) current() field { return m.order[m.focus] }

func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.order)
	m.focus = ((i % n) + n) % n
	for f, in := range m.inputs {
		if f != m.current() {
			in.Blur()
		}
	}
	if in, ok := m.inputs[m.current()]; ok {
		m.mode = modeInsert
		return in.Focus()
	}
	m.mode = modeNormal
	return nil
}

func (m *Model) focusField(f field) tea.Cmd {
	for i, o := range m.order {
		if o == f {
			return m.setFocus(i)
		}
	}
	return nil
}

// syncToForm copies the form inputs into the controller.
func (m *Model) syncToForm() {
	m.form.SetName(m.inputs[fieldName].Value())
	m.form.SetDatetime(m.inputs[fieldDatetime].Value())
	m.form.SetStudent(m.inputs[fieldStudent].Value())
}

// syncFromForm shows the controller values in the form inputs.
func (m *Model) syncFromForm() {
	v := m.form.Values()
	m.inputs[fieldName].SetValue(v.Name)
	m.inputs[fieldDatetime].SetValue(v.Datetime)
	m.inputs[fieldStudent].SetValue(v.Student)
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
		if m.mode == modeHelp {
			m.help = renderHelp(m.termWidth)
		}
	case errMsg:
		m.setError(msg.err)
	case revealMsg:
		m.rows.reveal(msg)
	case chartFrameMsg:
		if msg.gen == m.chartGen {
			if w, ok := m.chart.Widget().(*chart.TermChart); ok {
				w.Step(m.now().Sub(m.chartStart))
				if w.Animating() {
					cmds = append(cmds, m.chartFrame())
				}
			}
		}
	case storeChangedMsg:
		if msg.event.Err != nil {
			m.setError(msg.event.Err)
		} else if err := m.form.Render(m.ctx); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Reloaded after an outside change")
			cmds = append(cmds, m.rendered())
		}
		cmds = append(cmds, m.waitForChange())
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "tab":
		return m.setFocus(m.focus + 1)
	case "shift+tab":
		return m.setFocus(m.focus - 1)
	}

	switch m.mode {
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			m.mode = modeNormal
		}
		return nil
	case modeInsert:
		return m.handleInsert(msg)
	default:
		return m.handleNormal(msg)
	}
}

func (m *Model) handleInsert(msg tea.KeyMsg) tea.Cmd {
	f := m.current()
	switch msg.String() {
	case "enter":
		if f == fieldDateFilter || f == fieldNameFilter {
			return m.focusField(fieldList)
		}
		return m.submit()
	case "esc":
		if m.form.Editing() != "" && m.form.Config().CancelEdit {
			m.form.CancelEdit()
			m.syncFromForm()
			m.setStatus("Edit cancelled")
			return m.focusField(fieldName)
		}
		return m.focusField(fieldList)
	}

	in := m.inputs[f]
	before := in.Value()
	updated, cmd := in.Update(msg)
	*in = updated
	if in.Value() == before {
		return cmd
	}

	var err error
	switch f {
	case fieldDateFilter:
		err = m.form.SetDateFilter(m.ctx, in.Value())
	case fieldNameFilter:
		err = m.form.SetNameFilter(m.ctx, in.Value())
	default:
		return cmd
	}
	if err != nil {
		m.setError(err)
		return cmd
	}
	return tea.Batch(cmd, m.rendered())
}

func (m *Model) handleNormal(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		m.rows.move(1)
	case "k", "up":
		m.rows.move(-1)
	case "g", "home":
		m.rows.cursor = 0
	case "G", "end":
		m.rows.move(len(m.rows.rows))
	case "e", "enter":
		return m.dispatch(form.ActionEdit)
	case "d", "delete":
		return m.dispatch(form.ActionDelete)
	case "c":
		if !m.form.Config().ClearFilters {
			return nil
		}
		m.inputs[fieldDateFilter].SetValue("")
		m.inputs[fieldNameFilter].SetValue("")
		if err := m.form.ClearFilters(m.ctx); err != nil {
			m.setError(err)
			return nil
		}
		m.setStatus("Filters cleared")
		return m.rendered()
	case "esc":
		if m.form.Editing() != "" && m.form.Config().CancelEdit {
			m.form.CancelEdit()
			m.syncFromForm()
			m.setStatus("Edit cancelled")
		}
	case "a", "i":
		return m.focusField(fieldName)
	case "/":
		return m.focusField(fieldNameFilter)
	case "?":
		m.mode = modeHelp
		m.help = renderHelp(m.termWidth)
	case "q":
		return tea.Quit
	}
	return nil
}

func (m *Model) submit() tea.Cmd {
	m.syncToForm()
	editing := m.form.Editing()
	ok, err := m.form.Submit(m.ctx)
	if err != nil {
		m.setError(err)
		return nil
	}
	if !ok {
		m.status = hintRequired
		m.failed = true
		return nil
	}
	m.syncFromForm()
	if editing != "" {
		m.setStatus("Updated")
	} else {
		m.setStatus("Added")
	}
	return tea.Batch(m.rendered(), m.focusField(fieldName))
}

func (m *Model) dispatch(kind form.ActionKind) tea.Cmd {
	r, ok := m.rows.selected()
	if !ok {
		return nil
	}
	if err := m.form.Dispatch(m.ctx, form.Action{Kind: kind, ID: r.ID}); err != nil {
		m.setError(err)
		return nil
	}
	switch kind {
	case form.ActionEdit:
		m.syncFromForm()
		m.setStatus(fmt.Sprintf("Editing %q", r.Name))
		return m.focusField(fieldName)
	default:
		m.setStatus(fmt.Sprintf("Deleted %q", r.Name))
		return m.rendered()
	}
}

// applySizes recalculates widths based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 {
		return
	}
	w := m.termWidth
	if m.sideBySide() {
		w = m.termWidth / 2
	}
	m.rows.width = w - 4
	if tc, ok := m.chart.Widget().(*chart.TermChart); ok {
		tc.SetWidth(w - 24)
	}
	for _, in := range m.inputs {
		in.Width = max(10, min(48, m.termWidth-16))
	}
}

func (m *Model) sideBySide() bool {
	return m.chart != nil && m.termWidth >= 100
}

// Run starts the program on the terminal.
func Run(ctx context.Context, svc *app.Service, opts Options) error {
	p := tea.NewProgram(New(ctx, svc, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

var _ tea.Model = Model{}
