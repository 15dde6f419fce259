// internal/gate/gate.go
//
// Compliance gate engine for the agent workspace. One Engine is constructed
// per lead view and discarded when the agent navigates away; no gate state
// survives across leads.
//
// Three gates:
//  1. Owner-occupied HARD gate - blocks dialing until the agent acknowledges
//     the disclosure. The only gate that can prevent the action it guards.
//  2. Fiduciary SOFT gate - advisory notice when contacting a personal
//     representative. Never blocks.
//  3. Redemption deadline SOFT gate - advisory badge for imminent tax lien
//     deadlines. Never blocks.
//
// The engine decides; presentation belongs to the caller. DialBlocked is a
// pure read, and the TUI composes it with showing the blocking modal.

package gate

import (
	"errors"
	"time"

	"github.com/rcavanagh/leadline/internal/lead"
	"github.com/rcavanagh/leadline/internal/logbook"
)

// ErrAcknowledgmentRequired is returned by Unlock when the agent has not
// checked the disclosure acknowledgment.
var ErrAcknowledgmentRequired = errors.New("gate: disclosure acknowledgment required before unlock")

const (
	// deadlineWindowDays bounds the redemption badge: the gate activates only
	// for deadlines 0..30 days out. Expired deadlines are no longer
	// actionable through this gate and never badge.
	deadlineWindowDays = 30

	leadTypeTaxLien         = "Tax Lien"
	fieldRedemptionDeadline = "redemption_deadline"
)

// Engine holds the gate state for one active lead.
type Engine struct {
	lead  lead.Context
	clock func() time.Time
	log   *logbook.Logbook

	dialerLocked          bool
	unlockAcknowledged    bool
	fiduciaryAcknowledged bool
	deadlineAcknowledged  bool
	fiduciaryVisible      bool
	deadlineVisible       bool

	badgeText   string
	badgeActive bool
}

// Option customizes the engine instance.
type Option func(*Engine)

// WithClock injects a deterministic clock (primarily for tests).
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithLogbook wires gate transitions into the session journal. Absent a
// logbook the engine stays fully operable; it just logs nowhere, which keeps
// the decision methods usable in headless and test contexts.
func WithLogbook(log *logbook.Logbook) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New builds the gate engine for a lead. The dialer lock derives solely from
// the owner-occupied status: Unknown locks too, because an erroneous call to
// an occupied residence costs more than a false block. The redemption badge
// is evaluated immediately so the UI reflects urgency without a user action.
func New(ctx lead.Context, opts ...Option) *Engine {
	e := &Engine{
		lead:  ctx,
		clock: time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.dialerLocked = ctx.Occupancy == lead.OccupancyYes || ctx.Occupancy == lead.OccupancyUnknown
	e.evaluateDeadlineBadge()
	e.log.Gate("gates initialized for lead %s · locked=%t badge=%t", ctx.ItemID, e.dialerLocked, e.badgeActive)
	return e
}

func (e *Engine) evaluateDeadlineBadge() {
	if e.lead.LeadType != leadTypeTaxLien {
		return
	}
	raw, ok := e.lead.Intelligence.String(fieldRedemptionDeadline)
	if !ok {
		return
	}
	days, ok := DaysUntilDeadlineAt(raw, e.clock())
	if !ok {
		return
	}
	if days >= 0 && days <= deadlineWindowDays {
		e.badgeActive = true
		e.badgeText = BadgeText(days)
		e.log.Gate("redemption deadline in %d day(s) for lead %s", days, e.lead.ItemID)
	}
}

// DialBlocked reports whether a dial attempt must be blocked. Pure read:
// calling it never mutates gate state. The caller must not place a call when
// it returns true and should surface the blocking modal instead.
func (e *Engine) DialBlocked() bool {
	return e.IsDialerLocked()
}

// SetUnlockAcknowledged mirrors the disclosure checkbox on the blocking
// modal. Unlock is only legal while this is set.
func (e *Engine) SetUnlockAcknowledged(checked bool) {
	if e == nil {
		return
	}
	e.unlockAcknowledged = checked
}

// UnlockAcknowledged reports the disclosure checkbox state.
func (e *Engine) UnlockAcknowledged() bool {
	return e != nil && e.unlockAcknowledged
}

// Unlock releases the hard gate. The transition is one-way for the life of
// the lead view: nothing re-locks an unlocked engine. The checkbox state is
// cleared so a future re-lock, if ever introduced, starts unacknowledged.
func (e *Engine) Unlock() error {
	if e == nil {
		return nil
	}
	if !e.dialerLocked {
		return nil
	}
	if !e.unlockAcknowledged {
		return ErrAcknowledgmentRequired
	}
	e.dialerLocked = false
	e.unlockAcknowledged = false
	e.log.Gate("dialer unlocked by agent for lead %s", e.lead.ItemID)
	return nil
}

// ToggleFiduciaryTooltip flips the fiduciary notice visibility. Advisory
// only; has no effect on dialing.
func (e *Engine) ToggleFiduciaryTooltip() {
	if e == nil {
		return
	}
	e.fiduciaryVisible = !e.fiduciaryVisible
	if e.fiduciaryVisible {
		e.log.Gate("fiduciary notice displayed for lead %s", e.lead.ItemID)
	}
}

// AcknowledgeFiduciaryNotice records the acknowledgment and force-hides the
// tooltip regardless of toggle state. Idempotent; never reversible within a
// session.
func (e *Engine) AcknowledgeFiduciaryNotice() {
	if e == nil {
		return
	}
	if !e.fiduciaryAcknowledged {
		e.log.Gate("fiduciary notice acknowledged for lead %s", e.lead.ItemID)
	}
	e.fiduciaryAcknowledged = true
	e.fiduciaryVisible = false
}

// ToggleDeadlineTooltip flips the deadline notice visibility.
func (e *Engine) ToggleDeadlineTooltip() {
	if e == nil {
		return
	}
	e.deadlineVisible = !e.deadlineVisible
	if e.deadlineVisible {
		e.log.Gate("redemption deadline notice displayed for lead %s", e.lead.ItemID)
	}
}

// AcknowledgeDeadlineNotice mirrors the fiduciary acknowledgment contract.
func (e *Engine) AcknowledgeDeadlineNotice() {
	if e == nil {
		return
	}
	if !e.deadlineAcknowledged {
		e.log.Gate("redemption deadline notice acknowledged for lead %s", e.lead.ItemID)
	}
	e.deadlineAcknowledged = true
	e.deadlineVisible = false
}

// DismissTooltips hides both tooltips without touching acknowledgment state.
// The outside-click handler calls this; each tooltip is independently
// dismissible, and hiding an already hidden tooltip is a no-op.
func (e *Engine) DismissTooltips() {
	if e == nil {
		return
	}
	e.fiduciaryVisible = false
	e.deadlineVisible = false
}

// DeadlineBadge returns the badge label and whether the redemption deadline
// gate is active for this lead.
func (e *Engine) DeadlineBadge() (string, bool) {
	if e == nil {
		return "", false
	}
	return e.badgeText, e.badgeActive
}

// FiduciaryTooltipVisible reports the fiduciary tooltip visibility.
func (e *Engine) FiduciaryTooltipVisible() bool {
	return e != nil && e.fiduciaryVisible
}

// DeadlineTooltipVisible reports the deadline tooltip visibility.
func (e *Engine) DeadlineTooltipVisible() bool {
	return e != nil && e.deadlineVisible
}

// IsDialerLocked reports the hard gate state. Safe to call on a nil engine.
func (e *Engine) IsDialerLocked() bool {
	return e != nil && e.dialerLocked
}

// IsFiduciaryAcknowledged reports the fiduciary acknowledgment state.
func (e *Engine) IsFiduciaryAcknowledged() bool {
	return e != nil && e.fiduciaryAcknowledged
}

// IsDeadlineAcknowledged reports the deadline acknowledgment state.
func (e *Engine) IsDeadlineAcknowledged() bool {
	return e != nil && e.deadlineAcknowledged
}

// Lead returns the context this engine was built for.
func (e *Engine) Lead() lead.Context {
	if e == nil {
		return lead.Context{}
	}
	return e.lead
}
