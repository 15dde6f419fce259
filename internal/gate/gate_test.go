package gate

import (
	"errors"
	"testing"
	"time"

	"github.com/rcavanagh/leadline/internal/lead"
)

func clockAt(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func taxLienLead(deadline string) lead.Context {
	return lead.Context{
		ItemID:    "TL-1001",
		LeadType:  "Tax Lien",
		Occupancy: lead.OccupancyNo,
		Intelligence: lead.Intelligence{
			"redemption_deadline": deadline,
		},
	}
}

func TestDialerLockByOccupancy(t *testing.T) {
	cases := []struct {
		occupancy lead.Occupancy
		locked    bool
	}{
		{lead.OccupancyYes, true},
		{lead.OccupancyUnknown, true},
		{lead.OccupancyNo, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.occupancy), func(t *testing.T) {
			e := New(lead.Context{ItemID: "L-1", Occupancy: tc.occupancy})
			if e.IsDialerLocked() != tc.locked {
				t.Fatalf("locked = %t, want %t", e.IsDialerLocked(), tc.locked)
			}
			if e.DialBlocked() != tc.locked {
				t.Fatalf("DialBlocked disagrees with lock state")
			}
		})
	}
}

func TestDialBlockedIsPure(t *testing.T) {
	e := New(lead.Context{ItemID: "L-2", Occupancy: lead.OccupancyYes})
	for i := 0; i < 5; i++ {
		if !e.DialBlocked() {
			t.Fatalf("query %d changed the decision", i)
		}
	}
	if !e.IsDialerLocked() {
		t.Fatalf("repeated queries mutated the lock")
	}
}

func TestUnlockRequiresAcknowledgment(t *testing.T) {
	e := New(lead.Context{ItemID: "L-3", Occupancy: lead.OccupancyYes})

	if err := e.Unlock(); !errors.Is(err, ErrAcknowledgmentRequired) {
		t.Fatalf("expected ErrAcknowledgmentRequired, got %v", err)
	}
	if !e.IsDialerLocked() {
		t.Fatalf("failed unlock must leave the dialer locked")
	}

	e.SetUnlockAcknowledged(true)
	if err := e.Unlock(); err != nil {
		t.Fatalf("unlock after acknowledgment: %v", err)
	}
	if e.IsDialerLocked() || e.DialBlocked() {
		t.Fatalf("dialer should be unlocked")
	}
	if e.UnlockAcknowledged() {
		t.Fatalf("checkbox should reset after unlock")
	}
}

func TestUnlockIsMonotonic(t *testing.T) {
	e := New(lead.Context{ItemID: "L-4", Occupancy: lead.OccupancyYes})
	e.SetUnlockAcknowledged(true)
	if err := e.Unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	// A second unlock on an already open gate is a no-op, not an error.
	if err := e.Unlock(); err != nil {
		t.Fatalf("repeat unlock: %v", err)
	}
	if e.IsDialerLocked() {
		t.Fatalf("nothing may re-lock an unlocked engine")
	}
}

func TestUnlockNeverLockedLead(t *testing.T) {
	e := New(lead.Context{ItemID: "L-5", Occupancy: lead.OccupancyNo})
	if err := e.Unlock(); err != nil {
		t.Fatalf("unlock on never-locked lead: %v", err)
	}
	if e.IsDialerLocked() {
		t.Fatalf("never-locked lead must stay unlocked")
	}
}

func TestDeadlineBadgeWindow(t *testing.T) {
	cases := []struct {
		name     string
		deadline string
		active   bool
		text     string
	}{
		{"today", "2026-03-10", true, "TODAY - Deadline Day!"},
		{"one day", "2026-03-11", true, "1 Day Remaining"},
		{"fifteen days", "2026-03-25", true, "15 Days Remaining"},
		{"window edge", "2026-04-09", true, "30 Days Remaining"},
		{"past window", "2026-04-24", false, ""},
		{"expired", "2026-03-01", false, ""},
		{"unparseable", "soon", false, ""},
		{"absent", "", false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(taxLienLead(tc.deadline), WithClock(clockAt(fixedNow)))
			text, active := e.DeadlineBadge()
			if active != tc.active {
				t.Fatalf("active = %t, want %t", active, tc.active)
			}
			if text != tc.text {
				t.Fatalf("text = %q, want %q", text, tc.text)
			}
		})
	}
}

func TestDeadlineBadgeOnlyForTaxLiens(t *testing.T) {
	ctx := taxLienLead("2026-03-25")
	ctx.LeadType = "Probate/Estate"
	e := New(ctx, WithClock(clockAt(fixedNow)))
	if _, active := e.DeadlineBadge(); active {
		t.Fatalf("badge must not activate for non tax lien leads")
	}
}

func TestFiduciaryNoticeLifecycle(t *testing.T) {
	e := New(lead.Context{ItemID: "L-6", Occupancy: lead.OccupancyNo})

	e.ToggleFiduciaryTooltip()
	if !e.FiduciaryTooltipVisible() {
		t.Fatalf("toggle should show the tooltip")
	}
	e.ToggleFiduciaryTooltip()
	if e.FiduciaryTooltipVisible() {
		t.Fatalf("second toggle should hide the tooltip")
	}

	e.ToggleFiduciaryTooltip()
	e.AcknowledgeFiduciaryNotice()
	if e.FiduciaryTooltipVisible() {
		t.Fatalf("acknowledgment must hide the tooltip")
	}
	if !e.IsFiduciaryAcknowledged() {
		t.Fatalf("acknowledgment not recorded")
	}

	// Idempotent and irreversible within the session.
	e.AcknowledgeFiduciaryNotice()
	if !e.IsFiduciaryAcknowledged() {
		t.Fatalf("acknowledgment must persist")
	}
}

func TestDismissTooltipsKeepsAcknowledgments(t *testing.T) {
	e := New(taxLienLead("2026-03-25"), WithClock(clockAt(fixedNow)))
	e.AcknowledgeFiduciaryNotice()
	e.ToggleDeadlineTooltip()

	e.DismissTooltips()
	if e.FiduciaryTooltipVisible() || e.DeadlineTooltipVisible() {
		t.Fatalf("dismiss must hide both tooltips")
	}
	if !e.IsFiduciaryAcknowledged() {
		t.Fatalf("dismiss must not clear acknowledgments")
	}
	if e.IsDeadlineAcknowledged() {
		t.Fatalf("dismiss must not grant acknowledgments")
	}

	// Dismissing with nothing visible is a no-op.
	e.DismissTooltips()
}

func TestSoftGatesNeverBlockDialing(t *testing.T) {
	e := New(taxLienLead("2026-03-10"), WithClock(clockAt(fixedNow)))
	e.ToggleFiduciaryTooltip()
	e.ToggleDeadlineTooltip()
	if e.DialBlocked() {
		t.Fatalf("advisory gates must not block dialing")
	}
}

func TestNilEngineQueriesAreSafe(t *testing.T) {
	var e *Engine
	if e.DialBlocked() || e.IsDialerLocked() {
		t.Fatalf("nil engine must report unlocked")
	}
	if e.IsFiduciaryAcknowledged() || e.IsDeadlineAcknowledged() {
		t.Fatalf("nil engine must report unacknowledged")
	}
	if _, active := e.DeadlineBadge(); active {
		t.Fatalf("nil engine must report no badge")
	}
	if err := e.Unlock(); err != nil {
		t.Fatalf("nil engine unlock: %v", err)
	}
	e.SetUnlockAcknowledged(true)
	e.ToggleFiduciaryTooltip()
	e.DismissTooltips()
}
