// internal/tui/app.go
//
// This is the main TUI for the Leadline agent workspace. It uses bubbletea,
// which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// Every state transition happens synchronously inside Update, so the gate
// engine and rendering engine never see concurrent access.

package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/rcavanagh/leadline/internal/config"
	"github.com/rcavanagh/leadline/internal/disposition"
	"github.com/rcavanagh/leadline/internal/intel"
	"github.com/rcavanagh/leadline/internal/lead"
	"github.com/rcavanagh/leadline/internal/logbook"
	"github.com/rcavanagh/leadline/internal/telephony"
)

// appState represents which "screen" we're on
type appState int

const (
	stateLeadPicker appState = iota // Lead list with search
	stateWorkspace                  // Working a single lead
)

// callDevice is the session surface plus the dial operation the workspace
// drives. The simulated device satisfies it; a real provider adapter would
// too.
type callDevice interface {
	telephony.SessionManager
	Connect() (string, error)
}

type deviceReadyMsg struct {
	err error
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithSubmitter overrides the disposition submitter.
func WithSubmitter(submitter disposition.Submitter) AppOption {
	return func(a *App) {
		if submitter != nil {
			a.submitter = submitter
		}
	}
}

// WithDevice overrides the call device (tests use a pre-registered one).
func WithDevice(device callDevice) AppOption {
	return func(a *App) {
		if device != nil {
			a.device = device
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state     appState
	config    *config.Config
	registry  *intel.Registry
	renderer  *intel.Renderer
	logbook   *logbook.Logbook
	device    callDevice
	submitter disposition.Submitter

	leads       []lead.Context
	leadMenu    list.Model
	searchInput textinput.Model
	searching   bool

	workspace *workspaceView

	statusMsg   string
	deviceReady bool
	deviceErr   error

	width  int
	height int
}

// leadItem implements list.Item for the lead picker.
type leadItem struct {
	lead lead.Context
}

func (i leadItem) Title() string { return i.lead.Label() }
func (i leadItem) Description() string {
	return fmt.Sprintf("Owner occupied: %s · %d intelligence field(s)", i.lead.Occupancy, len(i.lead.Intelligence))
}
func (i leadItem) FilterValue() string { return i.lead.Label() }

// NewApp creates a new App instance.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	registry := intel.NewRegistry()
	if err := registry.LoadFieldOverlay(cfg.FieldsOverlayPath()); err != nil {
		return nil, err
	}
	if err := registry.LoadLayoutOverlay(cfg.LayoutsOverlayPath()); err != nil {
		return nil, err
	}
	files, err := lead.LoadDir(cfg.LeadsDir())
	if err != nil {
		return nil, err
	}
	leads := make([]lead.Context, 0, len(files))
	for _, file := range files {
		leads = append(leads, file.Lead)
	}

	logPath := filepath.Join(cfg.LogsDir(), "workspace.log")
	lb, err := logbook.New(logPath)
	if err == nil {
		lb.Info("Session opened · agent: %s · %d lead(s)", cfg.AgentName(), len(leads))
	}

	leadMenu := list.New(buildLeadItems(leads), list.NewDefaultDelegate(), 0, 0)
	leadMenu.Title = "⌁ LEADLINE"
	leadMenu.SetShowStatusBar(false)
	leadMenu.SetFilteringEnabled(false)

	searchInput := textinput.New()
	searchInput.Placeholder = "search leads"
	searchInput.CharLimit = 64

	app := &App{
		state:       stateLeadPicker,
		config:      cfg,
		registry:    registry,
		renderer:    intel.NewRenderer(registry),
		logbook:     lb,
		device:      telephony.NewSimulatedDevice(cfg.Identity()),
		submitter:   disposition.LogSubmitter{Log: lb},
		leads:       leads,
		leadMenu:    leadMenu,
		searchInput: searchInput,
		statusMsg:   "Select a lead to open the workspace",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	return app, nil
}

func buildLeadItems(leads []lead.Context) []list.Item {
	items := make([]list.Item, len(leads))
	for i, l := range leads {
		items[i] = leadItem{lead: l}
	}
	return items
}

// Init is called once when the program starts. It registers the call device
// and waits, bounded, for its ready signal.
func (a *App) Init() tea.Cmd {
	device := a.device
	timeout := a.config.ReadyTimeout()
	return func() tea.Msg {
		if sim, ok := device.(*telephony.SimulatedDevice); ok {
			sim.Register()
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			return deviceReadyMsg{err: sim.Ready().Await(ctx)}
		}
		return deviceReadyMsg{}
	}
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.leadMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		return a, nil

	case deviceReadyMsg:
		if msg.err != nil {
			a.deviceErr = msg.err
			a.logError("Call device failed to become ready: %v", msg.err)
			a.statusMsg = fmt.Sprintf("Call device unavailable: %v", msg.err)
			return a, nil
		}
		a.deviceReady = true
		a.logCall("Call device registered and ready")
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.delegate(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.state == stateLeadPicker && a.searching {
		switch key {
		case "esc":
			a.searching = false
			a.searchInput.SetValue("")
			a.searchInput.Blur()
			a.applySearch()
			return a, nil
		case "enter":
			a.searching = false
			a.searchInput.Blur()
			return a, nil
		default:
			var cmd tea.Cmd
			a.searchInput, cmd = a.searchInput.Update(msg)
			a.applySearch()
			return a, cmd
		}
	}

	switch key {
	case "q":
		if a.state == stateLeadPicker {
			return a, tea.Quit
		}
	case "/":
		if a.state == stateLeadPicker {
			a.searching = true
			a.searchInput.Focus()
			return a, nil
		}
	case "esc":
		if a.state == stateWorkspace {
			if a.workspace != nil && a.workspace.handleEsc() {
				return a, nil
			}
			return a.closeWorkspace()
		}
	case "enter":
		if a.state == stateLeadPicker {
			return a.openSelectedLead()
		}
	}

	return a.delegate(msg)
}

func (a *App) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch a.state {
	case stateLeadPicker:
		var menuCmd tea.Cmd
		a.leadMenu, menuCmd = a.leadMenu.Update(msg)
		if menuCmd != nil {
			cmds = append(cmds, menuCmd)
		}
	case stateWorkspace:
		if a.workspace != nil {
			if cmd := a.workspace.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return a, tea.Batch(cmds...)
}

// applySearch filters the lead menu against the search query.
func (a *App) applySearch() {
	query := strings.TrimSpace(a.searchInput.Value())
	if query == "" {
		a.leadMenu.SetItems(buildLeadItems(a.leads))
		return
	}
	labels := make([]string, len(a.leads))
	for i, l := range a.leads {
		labels[i] = l.Label()
	}
	matches := fuzzy.Find(query, labels)
	items := make([]list.Item, 0, len(matches))
	for _, match := range matches {
		items = append(items, leadItem{lead: a.leads[match.Index]})
	}
	a.leadMenu.SetItems(items)
}

// openSelectedLead activates the workspace for the highlighted lead. The
// gate engine is constructed fresh here; nothing carries over from the
// previous lead.
func (a *App) openSelectedLead() (tea.Model, tea.Cmd) {
	item, ok := a.leadMenu.SelectedItem().(leadItem)
	if !ok {
		a.statusMsg = "No lead selected"
		return a, nil
	}
	a.workspace = newWorkspaceView(a, item.lead)
	a.state = stateWorkspace
	a.statusMsg = fmt.Sprintf("Working lead %s", item.lead.Label())
	a.logInfo("Workspace opened for lead %s", item.lead.ItemID)
	return a, nil
}

// closeWorkspace discards the per-lead state and returns to the picker.
func (a *App) closeWorkspace() (tea.Model, tea.Cmd) {
	if a.workspace != nil {
		a.logInfo("Workspace closed for lead %s", a.workspace.lead.ItemID)
	}
	a.workspace = nil
	a.state = stateLeadPicker
	a.statusMsg = "Select a lead to open the workspace"
	return a, nil
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

func (a *App) logCall(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Call(format, args...)
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("⌁ LEADLINE · AGENT WORKSPACE")

	var content string
	switch a.state {
	case stateLeadPicker:
		content = a.renderPicker()
	case stateWorkspace:
		if a.workspace != nil {
			content = a.workspace.View(width - 6)
		} else {
			content = "Loading workspace..."
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(24, width-2)).
		Render(content)

	sections := []string{header, a.renderDeviceLine(), box}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) renderPicker() string {
	view := a.leadMenu.View()
	if len(a.leadMenu.Items()) == 0 {
		view = "No leads assigned. Drop lead files into .leadline/leads/ to begin."
	}
	lines := []string{view}
	if a.searching {
		lines = append(lines, "Search: "+a.searchInput.View())
	}
	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		MarginTop(1).
		Render("Enter → open workspace    / → search    q → quit")
	lines = append(lines, hint)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a *App) renderDeviceLine() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	text := "Call device: registering..."
	if a.deviceErr != nil {
		style = style.Foreground(lipgloss.Color("#FF6B6B"))
		text = fmt.Sprintf("Call device: %v", a.deviceErr)
	} else if a.deviceReady {
		style = style.Foreground(lipgloss.Color("#4CAF50"))
		text = "Call device: ready"
	}
	return style.Render(text)
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("LOG · " + filepath.Base(a.logbook.Path()))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(head + "\n" + body)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
