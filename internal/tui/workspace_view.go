// internal/tui/workspace_view.go
//
// Per-lead workspace screen: intelligence panel, compliance gates, call
// controls, and the disposition form. All gate state lives in the engine
// built in newWorkspaceView and dies with it when the agent leaves the lead.

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rcavanagh/leadline/internal/disposition"
	"github.com/rcavanagh/leadline/internal/gate"
	"github.com/rcavanagh/leadline/internal/intel"
	"github.com/rcavanagh/leadline/internal/lead"
)

// formFocus identifies which disposition input is receiving keystrokes.
type formFocus int

const (
	focusNone formFocus = iota
	focusNotes
	focusDate
	focusPrice
)

var motivationLevels = []string{"", "Low", "Medium", "High"}

type workspaceView struct {
	app   *App
	lead  lead.Context
	gates *gate.Engine

	sections []intel.Section

	modalVisible bool
	wasLocked    bool

	codeIdx       int
	motivationIdx int
	notesInput    textinput.Model
	dateInput     textinput.Model
	priceInput    textinput.Model
	focus         formFocus
	formErrs      []disposition.ValidationError
	submitted     bool
}

func newWorkspaceView(app *App, l lead.Context) *workspaceView {
	gates := gate.New(l, gate.WithLogbook(app.logbook))

	notes := textinput.New()
	notes.Placeholder = "agent notes"
	notes.CharLimit = 280

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10

	price := textinput.New()
	price.Placeholder = "asking price"
	price.CharLimit = 16

	return &workspaceView{
		app:        app,
		lead:       l,
		gates:      gates,
		sections:   app.renderer.Render(l.LeadType, l.Intelligence),
		wasLocked:  gates.IsDialerLocked(),
		codeIdx:    -1,
		notesInput: notes,
		dateInput:  date,
		priceInput: price,
	}
}

// handleEsc gives the workspace first claim on escape. Returns true when the
// key was consumed (closing the modal or dropping input focus) so the app
// does not also close the workspace.
func (w *workspaceView) handleEsc() bool {
	if w.modalVisible {
		w.closeModal()
		return true
	}
	if w.focus != focusNone {
		w.blurInputs()
		return true
	}
	return false
}

func (w *workspaceView) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if w.modalVisible {
		return w.updateModal(key)
	}

	if w.focus != focusNone {
		switch key.String() {
		case "tab":
			w.cycleFocus()
			return nil
		case "enter":
			w.blurInputs()
			return nil
		default:
			return w.updateFocusedInput(key)
		}
	}

	switch key.String() {
	case "d":
		w.attemptDial()
	case "h":
		w.hangUp()
	case "f":
		w.gates.ToggleFiduciaryTooltip()
	case "F":
		w.gates.AcknowledgeFiduciaryNotice()
	case "t":
		w.gates.ToggleDeadlineTooltip()
	case "T":
		w.gates.AcknowledgeDeadlineNotice()
	case "o":
		w.gates.DismissTooltips()
	case "]":
		w.cycleCode(1)
	case "[":
		w.cycleCode(-1)
	case "m":
		w.motivationIdx = (w.motivationIdx + 1) % len(motivationLevels)
	case "tab":
		w.cycleFocus()
	case "s":
		w.submit()
	}
	return nil
}

func (w *workspaceView) updateModal(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "a":
		w.gates.SetUnlockAcknowledged(!w.gates.UnlockAcknowledged())
	case "u":
		if err := w.gates.Unlock(); err != nil {
			w.app.statusMsg = "Check the acknowledgment box before unlocking"
			return nil
		}
		w.modalVisible = false
		w.app.statusMsg = "Dialer unlocked. Press d to place a compliant call."
	case "c", "esc":
		w.closeModal()
	}
	return nil
}

// closeModal cancels the unlock flow. The checkbox resets so the next attempt
// starts from an unacknowledged state.
func (w *workspaceView) closeModal() {
	w.modalVisible = false
	w.gates.SetUnlockAcknowledged(false)
	w.app.statusMsg = "Call blocked. Owner-occupied disclosure not acknowledged."
}

// attemptDial asks the gate engine first. The decision is the engine's; the
// modal is this view's reaction to a blocked decision.
func (w *workspaceView) attemptDial() {
	if w.gates.DialBlocked() {
		w.modalVisible = true
		w.app.logCall("dial blocked by owner-occupied gate for lead %s", w.lead.ItemID)
		return
	}
	if w.app.device.HasActiveCall() {
		w.app.statusMsg = "A call is already in progress"
		return
	}
	sid, err := w.app.device.Connect()
	if err != nil {
		w.app.statusMsg = fmt.Sprintf("Call failed: %v", err)
		w.app.logError("call attempt failed for lead %s: %v", w.lead.ItemID, err)
		return
	}
	w.app.statusMsg = fmt.Sprintf("Call connected · %s", sid)
	w.app.logCall("call %s started for lead %s", sid, w.lead.ItemID)
}

func (w *workspaceView) hangUp() {
	if !w.app.device.Disconnect() {
		w.app.statusMsg = "No active call"
		return
	}
	sid, _ := w.app.device.CurrentCallSid()
	w.app.statusMsg = "Call ended. Complete the disposition form."
	w.app.logCall("call %s ended for lead %s", sid, w.lead.ItemID)
}

func (w *workspaceView) cycleCode(delta int) {
	codes := disposition.Codes()
	w.codeIdx += delta
	if w.codeIdx >= len(codes) {
		w.codeIdx = -1
	}
	if w.codeIdx < -1 {
		w.codeIdx = len(codes) - 1
	}
}

func (w *workspaceView) selectedCode() disposition.Code {
	codes := disposition.Codes()
	if w.codeIdx < 0 || w.codeIdx >= len(codes) {
		return ""
	}
	return codes[w.codeIdx]
}

func (w *workspaceView) cycleFocus() {
	w.blurInputs()
	switch w.focus {
	case focusNone:
		w.focus = focusNotes
		w.notesInput.Focus()
	case focusNotes:
		w.focus = focusDate
		w.dateInput.Focus()
	case focusDate:
		w.focus = focusPrice
		w.priceInput.Focus()
	case focusPrice:
		w.focus = focusNone
	}
}

func (w *workspaceView) blurInputs() {
	w.focus = focusNone
	w.notesInput.Blur()
	w.dateInput.Blur()
	w.priceInput.Blur()
}

func (w *workspaceView) updateFocusedInput(key tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch w.focus {
	case focusNotes:
		w.notesInput, cmd = w.notesInput.Update(key)
	case focusDate:
		w.dateInput, cmd = w.dateInput.Update(key)
	case focusPrice:
		w.priceInput, cmd = w.priceInput.Update(key)
	}
	return cmd
}

func (w *workspaceView) form() disposition.Form {
	return disposition.Form{
		Code:            w.selectedCode(),
		AgentNotes:      strings.TrimSpace(w.notesInput.Value()),
		MotivationLevel: motivationLevels[w.motivationIdx],
		NextActionDate:  strings.TrimSpace(w.dateInput.Value()),
		AskingPrice:     strings.TrimSpace(w.priceInput.Value()),
	}
}

func (w *workspaceView) submit() {
	form := w.form()
	w.formErrs = form.Validate()
	if len(w.formErrs) > 0 {
		w.app.statusMsg = "Disposition form has errors"
		return
	}
	sid, _ := w.app.device.CurrentCallSid()
	rec := disposition.NewRecord(w.lead.ItemID, sid, form, time.Now())
	if err := w.app.submitter.Submit(context.Background(), rec); err != nil {
		w.app.statusMsg = fmt.Sprintf("Submission failed: %v", err)
		w.app.logError("disposition submit failed for lead %s: %v", w.lead.ItemID, err)
		return
	}
	w.submitted = true
	w.app.statusMsg = fmt.Sprintf("Disposition recorded · %s", form.Code)
}

// dialLabel reflects gate history: a lead that was never locked shows the
// plain label, a lead unlocked through the gate advertises compliance.
func (w *workspaceView) dialLabel() string {
	if w.gates.IsDialerLocked() {
		return "⚠ Compliance Check Required"
	}
	if w.wasLocked {
		return "Initiate Compliant Call"
	}
	return "Initiate Call"
}

func (w *workspaceView) View(width int) string {
	if width <= 0 {
		width = 80
	}
	blocks := []string{
		w.viewHeader(),
		w.viewCallControls(),
	}
	if tooltip := w.viewTooltips(); tooltip != "" {
		blocks = append(blocks, tooltip)
	}
	if w.modalVisible {
		blocks = append(blocks, w.viewModal(width))
	}
	if panel := intel.View(w.sections, width-2); panel != "" {
		blocks = append(blocks, panel)
	}
	blocks = append(blocks, w.viewForm(width), w.viewHints())
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (w *workspaceView) viewHeader() string {
	title := lipgloss.NewStyle().Bold(true).Render(w.lead.Label())
	parts := []string{title}
	if badge, active := w.gates.DeadlineBadge(); active {
		badgeStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#111111")).
			Background(lipgloss.Color("#FF6B6B")).
			Padding(0, 1)
		parts = append(parts, badgeStyle.Render("⏳ "+badge))
	}
	return strings.Join(parts, "  ")
}

func (w *workspaceView) viewCallControls() string {
	label := w.dialLabel()
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
	if w.gates.IsDialerLocked() {
		style = style.Foreground(lipgloss.Color("#F7B801"))
	}
	line := style.Render("[d] " + label)
	if w.app.device.HasActiveCall() {
		sid, _ := w.app.device.CurrentCallSid()
		line += "  " + lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50")).
			Render("● on call "+sid+"  [h] hang up")
	}
	return line
}

func (w *workspaceView) viewTooltips() string {
	note := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#A0AEC0"))
	var lines []string
	if w.gates.FiduciaryTooltipVisible() {
		lines = append(lines, note.Render(
			"Fiduciary contact: you are calling the estate's representative, not the owner. [F] acknowledge"))
	}
	if w.gates.DeadlineTooltipVisible() {
		lines = append(lines, note.Render(
			"Redemption deadline is imminent. Use ethical language and avoid pressure tactics. [T] acknowledge"))
	}
	return strings.Join(lines, "\n")
}

func (w *workspaceView) viewModal(width int) string {
	checkbox := "[ ]"
	if w.gates.UnlockAcknowledged() {
		checkbox = "[x]"
	}
	body := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")).
			Render("OWNER-OCCUPIED PROPERTY · COMPLIANCE CHECK"),
		"",
		"This property may be the owner's residence. Before dialing you must",
		"confirm the required disclosure and consent rules for owner-occupied",
		"contacts in this jurisdiction.",
		"",
		checkbox + " I have read the disclosure and will follow it on this call.",
		"",
		"[a] toggle acknowledgment   [u] unlock dialer   [c] cancel",
	}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("#FF6B6B")).
		Padding(0, 1).
		Width(max(40, width-8)).
		Render(body)
}

func (w *workspaceView) viewForm(width int) string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	code := "(none)"
	if selected := w.selectedCode(); selected != "" {
		code = string(selected)
	}
	motivation := motivationLevels[w.motivationIdx]
	if motivation == "" {
		motivation = "(unset)"
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Render("CALL DISPOSITION"),
		label.Render("Code:") + " " + code + "   " + label.Render("Motivation:") + " " + motivation,
		label.Render("Notes:") + " " + w.notesInput.View(),
		label.Render("Next action:") + " " + w.dateInput.View() +
			"   " + label.Render("Asking price:") + " " + w.priceInput.View(),
	}
	if days, ok := w.form().NextActionDays(); ok {
		lines = append(lines, label.Render(fmt.Sprintf("Next action in %d day(s)", days)))
	}
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	for _, ve := range w.formErrs {
		lines = append(lines, errStyle.Render("✗ "+ve.Reason))
	}
	if w.submitted {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50")).
			Render("✓ disposition submitted"))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(40, width-4)).
		Render(strings.Join(lines, "\n"))
}

func (w *workspaceView) viewHints() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")).
		Render("d dial · h hang up · f/t tooltips · F/T acknowledge · o dismiss · [/] code · m motivation · tab inputs · s submit · esc back")
}
