package intel

import (
	"reflect"
	"testing"
	"time"

	"github.com/rcavanagh/leadline/internal/lead"
)

var renderNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	return NewRenderer(NewRegistry(), WithClock(func() time.Time { return renderNow }))
}

func taxLienData() lead.Intelligence {
	return lead.Intelligence{
		"lien_type":               "Property Tax",
		"tax_debt_amount":         48250,
		"tax_delinquency_summary": "2022: $15,000 | 2023: $16,500 | 2024: $16,750",
		"delinquent_years_count":  3,
		"delinquency_start_date":  "2022-04-15",
		"redemption_deadline":     "2026-03-25",
	}
}

func TestRenderUnknownLeadType(t *testing.T) {
	r := newTestRenderer(t)
	if sections := r.Render("Bankruptcy", taxLienData()); sections != nil {
		t.Fatalf("unknown lead type should render nothing, got %v", sections)
	}
}

func TestRenderTaxLienLayout(t *testing.T) {
	r := newTestRenderer(t)
	sections := r.Render("Tax Lien", taxLienData())
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	if sections[0].Title != "Tax Lien Details" || sections[2].Title != "Timeline & Urgency" {
		t.Fatalf("unexpected section order: %q, %q", sections[0].Title, sections[2].Title)
	}
	if got := sections[0].Entries[1].Value; got != "$48,250" {
		t.Fatalf("tax_debt_amount = %q, want $48,250", got)
	}
	deadline := sections[2].Entries[1]
	if deadline.Value != "03/25/2026" {
		t.Fatalf("deadline value = %q", deadline.Value)
	}
	if deadline.Urgency != UrgencyHigh || deadline.Marker != "15 days remaining" {
		t.Fatalf("deadline urgency = %v marker = %q", deadline.Urgency, deadline.Marker)
	}
	if deadline.Note == "" {
		t.Fatalf("imminent deadline should carry the ethics note")
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	r := newTestRenderer(t)
	data := taxLienData()
	first := r.Render("Tax Lien", data)
	second := r.Render("Tax Lien", data)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated renders of the same lead diverged")
	}
}

func TestRenderFieldMissingValues(t *testing.T) {
	r := newTestRenderer(t)

	money := r.RenderField("tax_debt_amount", nil)
	if !money.Missing || money.Value != "N/A" {
		t.Fatalf("missing money = %+v", money)
	}

	text := r.RenderField("decedent_name", "")
	if !text.Missing || text.Value != "Unknown" {
		t.Fatalf("missing text = %+v", text)
	}
}

func TestRenderFieldUnknownName(t *testing.T) {
	r := newTestRenderer(t)
	entry := r.RenderField("totally_unknown_field", "whatever value")
	if entry.Label != "totally unknown field" {
		t.Fatalf("label = %q", entry.Label)
	}
	if entry.Type != TypeText || entry.Value != "whatever value" {
		t.Fatalf("unknown field should degrade to text: %+v", entry)
	}
}

func TestRenderLawFirm(t *testing.T) {
	r := newTestRenderer(t)
	entry := r.RenderField("law_firm_name", "Castle & Associates")
	if entry.Marker != "Attorney Represented" || entry.Urgency != UrgencyHigh {
		t.Fatalf("law firm entry = %+v", entry)
	}
	if entry.Note == "" {
		t.Fatalf("law firm entry should carry the consent note")
	}
}

func TestRenderFiduciary(t *testing.T) {
	r := newTestRenderer(t)
	entry := r.RenderField("executor_name", "Patricia Reyes")
	if entry.Marker != "Fiduciary" || entry.Urgency != UrgencyMedium {
		t.Fatalf("fiduciary entry = %+v", entry)
	}
}

func TestRenderDeadlineTiers(t *testing.T) {
	r := newTestRenderer(t)
	cases := []struct {
		name    string
		date    string
		urgency Urgency
		marker  string
	}{
		{"imminent", "2026-03-25", UrgencyHigh, "15 days remaining"},
		{"approaching", "2026-04-24", UrgencyMedium, "45 days remaining"},
		{"distant", "2026-06-08", UrgencyNone, ""},
		{"expired", "2026-03-01", UrgencyNone, ""},
		{"unparseable", "soon", UrgencyNone, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry := r.RenderField("redemption_deadline", tc.date)
			if entry.Urgency != tc.urgency {
				t.Fatalf("urgency = %v, want %v", entry.Urgency, tc.urgency)
			}
			if entry.Marker != tc.marker {
				t.Fatalf("marker = %q, want %q", entry.Marker, tc.marker)
			}
		})
	}
}

func TestRenderCategoryBadges(t *testing.T) {
	r := newTestRenderer(t)

	entry := r.RenderField("lien_type", "IRS Federal")
	if entry.BadgeColor != "#FF6B6B" {
		t.Fatalf("IRS Federal color = %q", entry.BadgeColor)
	}

	entry = r.RenderField("lien_type", "Water District Special")
	if entry.BadgeColor != categoryDefaultColor {
		t.Fatalf("unknown category should use the neutral color, got %q", entry.BadgeColor)
	}
	if entry.Value != "Water District Special" {
		t.Fatalf("unknown category must still render its value")
	}
}

func TestRenderYearsCount(t *testing.T) {
	r := newTestRenderer(t)
	cases := []struct {
		name    string
		value   any
		want    string
		urgency Urgency
		marker  string
	}{
		{"high risk", 3, "3 years", UrgencyHigh, "3 Years - High Risk"},
		{"watch", 2, "2 years", UrgencyMedium, "2 Years"},
		{"single", 1, "1 year", UrgencyNone, ""},
		{"zero", 0, "0 years", UrgencyNone, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry := r.RenderField("delinquent_years_count", tc.value)
			if entry.Value != tc.want || entry.Urgency != tc.urgency || entry.Marker != tc.marker {
				t.Fatalf("entry = %+v", entry)
			}
		})
	}

	entry := r.RenderField("delinquent_years_count", "several")
	if !entry.Missing || entry.Value != "Unknown" {
		t.Fatalf("non numeric count = %+v", entry)
	}
}

func TestRenderMultiYearSummary(t *testing.T) {
	r := newTestRenderer(t)
	entry := r.RenderField("tax_delinquency_summary", "2023: $16,500 | 2024: $16,750")
	if entry.Marker != "Multi-Year Data" {
		t.Fatalf("summary entry = %+v", entry)
	}
}

// Adding a lead type requires only registry configuration; the renderer picks
// it up without code changes.
func TestRenderOverlayLeadType(t *testing.T) {
	r := NewRegistry()
	r.layouts["Code Violation"] = []SectionSpec{
		{Title: "Violation Details", Fields: []string{"balance_due", "registration_deadline"}},
	}
	renderer := NewRenderer(r, WithClock(func() time.Time { return renderNow }))
	sections := renderer.Render("Code Violation", lead.Intelligence{
		"balance_due":           1200,
		"registration_deadline": "2026-03-20",
	})
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Entries[0].Value != "$1,200" {
		t.Fatalf("overlay section did not format: %+v", sections[0].Entries[0])
	}
}

func TestViewRendersSections(t *testing.T) {
	r := newTestRenderer(t)
	sections := r.Render("Tax Lien", taxLienData())
	out := View(sections, 80)
	if out == "" {
		t.Fatalf("view produced no output")
	}
	if View(nil, 80) != "" {
		t.Fatalf("empty sections should render nothing")
	}
}
