package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/liftlog/internal/forms"
	"github.com/desertthunder/liftlog/internal/models"
	"github.com/desertthunder/liftlog/internal/services"
	"github.com/desertthunder/liftlog/internal/shared"
	"github.com/desertthunder/liftlog/internal/tasks"
)

// Log form focus order.
const (
	focusLiftType = iota
	focusWeight
	focusReps
	focusDate
	focusCount
)

// Model is the bubbletea model rendering a [tasks.Controller].
type Model struct {
	ctx     context.Context
	svc     services.LiftService
	ctrl    *tasks.Controller
	logger  *log.Logger
	cancels map[tasks.FlowID]context.CancelFunc

	width  int
	height int
	focus  int
	weight textinput.Model
	reps   textinput.Model
	date   textinput.Model
	file   textinput.Model
	table  table.Model
	spin   spinner.Model
	help   help.Model
	keys   keyMap
}

// ModelOpts holds the dependencies of a [Model].
type ModelOpts struct {
	Service    services.LiftService
	Controller *tasks.Controller
	Logger     *log.Logger
}

func newInput(placeholder string, limit, width int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = width
	in.Prompt = ""
	return in
}

// NewModel creates a new TUI model with the provided dependencies.
//
// Requests run under contexts derived from ctx.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Controller == nil {
		opts.Controller = tasks.NewController(tasks.ControllerOpts{Logger: opts.Logger})
	}

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = styles.focused

	m := &Model{
		ctx:     ctx,
		svc:     opts.Service,
		ctrl:    opts.Controller,
		logger:  shared.WithLogger(opts.Logger, "component", "tui"),
		cancels: make(map[tasks.FlowID]context.CancelFunc),
		weight:  newInput("e.g. 140", 8, 12),
		reps:    newInput("e.g. 5", 3, 12),
		date:    newInput(models.DateLayout, 10, 12),
		file:    newInput("/path/to/video.mp4", 512, 60),
		table:   newHistoryTable(),
		spin:    spin,
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.sync()
	return m
}

// Controller exposes the state controller backing the view.
func (m *Model) Controller() *tasks.Controller {
	return m.ctrl
}

// Init starts the history fetch and the spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.apply(tasks.Mounted{}), m.spin.Tick, m.focusInputs())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(5, msg.Height-12))
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		switch msg.kind {
		case MsgFlowDone:
			done := msg.data.(flowDone)
			if cancel, ok := m.cancels[done.flow]; ok {
				cancel()
				delete(m.cancels, done.flow)
			}
			return m, m.apply(done.event)
		case MsgVideoDetected:
			return m, m.apply(msg.data.(tasks.SelectVideo))
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m.updateInputs(msg)
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, m.quit()
	case "ctrl+n":
		return m, m.switchTab(m.ctrl.Tab.Next())
	case "ctrl+p":
		return m, m.switchTab(m.ctrl.Tab.Prev())
	}

	switch m.ctrl.Tab {
	case tasks.LogLiftTab:
		return m.handleLogKeys(msg)
	case tasks.UploadVideoTab:
		return m.handleUploadKeys(msg)
	default:
		return m.handleBrowseKeys(msg)
	}
}

// handleBrowseKeys handles the dashboard and history tabs, which have no text inputs.
func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, m.quit()
	case "right", "l", "tab":
		return m, m.switchTab(m.ctrl.Tab.Next())
	case "left", "h", "shift+tab":
		return m, m.switchTab(m.ctrl.Tab.Prev())
	case "1", "2", "3", "4":
		return m, m.switchTab(tasks.Tabs[int(msg.String()[0]-'1')])
	case "r", "ctrl+r":
		return m, m.apply(tasks.RefreshHistory{})
	}

	if m.ctrl.Tab == tasks.HistoryTab {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleLogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % focusCount
		return m, m.focusInputs()
	case "shift+tab", "up":
		m.focus = (m.focus + focusCount - 1) % focusCount
		return m, m.focusInputs()
	case "left":
		if m.focus == focusLiftType {
			return m, m.cycleLiftType(-1)
		}
	case "right":
		if m.focus == focusLiftType {
			return m, m.cycleLiftType(1)
		}
	case "enter":
		return m, m.apply(tasks.SubmitLift{})
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusWeight:
		m.weight, cmd = m.weight.Update(msg)
		return m, tea.Batch(cmd, m.apply(tasks.EditForm{Field: forms.FieldWeight, Value: m.weight.Value()}))
	case focusReps:
		m.reps, cmd = m.reps.Update(msg)
		return m, tea.Batch(cmd, m.apply(tasks.EditForm{Field: forms.FieldReps, Value: m.reps.Value()}))
	case focusDate:
		m.date, cmd = m.date.Update(msg)
		return m, tea.Batch(cmd, m.apply(tasks.EditForm{Field: forms.FieldDate, Value: m.date.Value()}))
	}
	return m, nil
}

func (m *Model) handleUploadKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := strings.TrimSpace(m.file.Value())
		if path != "" && (m.ctrl.Selection == nil || m.ctrl.Selection.Path != path) {
			return m, detectVideo(path)
		}
		return m, m.apply(tasks.SubmitUpload{})
	case "ctrl+u":
		return m, m.apply(tasks.SubmitUpload{})
	case "ctrl+a":
		return m, m.apply(tasks.ToggleAI{})
	case "esc":
		if !m.ctrl.Upload.Loading() {
			m.file.Reset()
		}
		return m, m.apply(tasks.ClearVideo{})
	}

	var cmd tea.Cmd
	m.file, cmd = m.file.Update(msg)
	return m, cmd
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	for _, in := range []*textinput.Model{&m.weight, &m.reps, &m.date, &m.file} {
		if !in.Focused() {
			continue
		}
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) cycleLiftType(delta int) tea.Cmd {
	idx := 0
	for i, t := range models.LiftTypes {
		if string(t) == m.ctrl.Form.LiftType {
			idx = i
			break
		}
	}
	n := len(models.LiftTypes)
	next := models.LiftTypes[(idx+delta+n)%n]
	return m.apply(tasks.EditForm{Field: forms.FieldLiftType, Value: string(next)})
}

func (m *Model) switchTab(tab tasks.Tab) tea.Cmd {
	cmd := m.apply(tasks.SwitchTab{Tab: tab})
	return tea.Batch(cmd, m.focusInputs())
}

// focusInputs focuses the input matching the current tab and focus index, blurring the rest.
func (m *Model) focusInputs() tea.Cmd {
	m.weight.Blur()
	m.reps.Blur()
	m.date.Blur()
	m.file.Blur()

	switch m.ctrl.Tab {
	case tasks.LogLiftTab:
		switch m.focus {
		case focusWeight:
			return m.weight.Focus()
		case focusReps:
			return m.reps.Focus()
		case focusDate:
			return m.date.Focus()
		}
	case tasks.UploadVideoTab:
		return m.file.Focus()
	}
	return nil
}

// apply feeds ev to the controller, refreshes widgets from the new state and runs the resulting effect.
func (m *Model) apply(ev tasks.Event) tea.Cmd {
	eff := m.ctrl.Apply(ev)
	m.sync()
	return m.run(eff)
}

func (m *Model) run(eff tasks.Effect) tea.Cmd {
	switch {
	case eff.None():
		return nil
	case eff.Kind == tasks.ResetFile:
		m.file.Reset()
		return nil
	}

	flow := eff.Flow()
	if prev, ok := m.cancels[flow]; ok {
		prev()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancels[flow] = cancel

	svc := m.svc
	m.logger.Debug("starting request", "effect", eff.Kind)
	return func() tea.Msg {
		return flowDoneMsg(flow, tasks.Perform(ctx, svc, eff))
	}
}

// sync copies controller state into the widgets that mirror it.
func (m *Model) sync() {
	setValue(&m.weight, m.ctrl.Form.Weight)
	setValue(&m.reps, m.ctrl.Form.Reps)
	setValue(&m.date, m.ctrl.Form.Date)
	rows := liftRows(m.ctrl.Lifts)
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func setValue(in *textinput.Model, v string) {
	if in.Value() != v {
		in.SetValue(v)
	}
}

// quit cancels every outstanding request before exiting.
func (m *Model) quit() tea.Cmd {
	for flow, cancel := range m.cancels {
		cancel()
		delete(m.cancels, flow)
	}
	return tea.Quit
}

func detectVideo(path string) tea.Cmd {
	return func() tea.Msg {
		sel, err := forms.DetectVideo(path)
		return videoDetectedMsg(tasks.SelectVideo{Selection: sel, Err: err})
	}
}
