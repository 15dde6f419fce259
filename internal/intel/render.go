// internal/intel/render.go
//
// Metadata-driven rendering for the intelligence panel. The renderer is a
// pure function of the registries and the lead's intelligence data: it emits
// formatted, urgency-annotated entries and leaves terminal styling to the
// view layer. There is no per-lead-type branching here - the layouts decide
// what renders, the field types decide how.

package intel

import (
	"fmt"
	"time"

	"github.com/rcavanagh/leadline/internal/gate"
	"github.com/rcavanagh/leadline/internal/lead"
)

// Urgency annotates an entry for the view layer.
type Urgency int

const (
	UrgencyNone Urgency = iota
	UrgencyMedium
	UrgencyHigh
)

// Deadline tier thresholds. These are deliberately independent of the gate
// engine's 30-day redemption badge: the badge is Tax Lien only, while this
// annotation applies to any lead type exposing a deadline-typed field.
const (
	deadlineHighDays   = 30
	deadlineMediumDays = 60
)

const (
	noteAttorneyConsent = "Compliance: obtain attorney consent before dialing"
	noteFiduciary       = "This is the executor/administrator, not the property owner"
	noteEthicalLanguage = "Use ethical language - avoid pressure tactics"
)

// Entry is one formatted field ready for presentation.
type Entry struct {
	Field   string
	Label   string
	Type    FieldType
	Value   string
	Missing bool
	Marker  string
	Note    string
	Urgency Urgency
	// BadgeColor is set for category entries; the view renders the value as
	// a colored badge.
	BadgeColor string
}

// Section is one titled group of entries.
type Section struct {
	Title   string
	Entries []Entry
}

// categoryColors maps known lien categories to badge colors. Unrecognized
// categories get the neutral default and still render.
var categoryColors = map[string]string{
	"Property Tax":      "#4CAF50",
	"IRS Federal":       "#FF6B6B",
	"State Tax":         "#5B8DEF",
	"HOA/Assessment":    "#F7B801",
	"Municipal/Utility": "#9C6ADE",
	"Multiple":          "#ED64A6",
}

const categoryDefaultColor = "#999999"

// Renderer produces intelligence panel sections from a lead's data.
type Renderer struct {
	registry *Registry
	clock    func() time.Time
}

// RendererOption customizes the renderer.
type RendererOption func(*Renderer)

// WithClock injects a deterministic clock for deadline tiering (tests).
func WithClock(clock func() time.Time) RendererOption {
	return func(r *Renderer) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRenderer wires a renderer to its registries.
func NewRenderer(registry *Registry, opts ...RendererOption) *Renderer {
	r := &Renderer{
		registry: registry,
		clock:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Render builds the ordered sections for a lead type. A lead type without a
// configured layout renders nothing; that is expected and benign. Rendering
// has no side effects, so re-rendering identical inputs yields identical
// output.
func (r *Renderer) Render(leadType string, data lead.Intelligence) []Section {
	if r == nil {
		return nil
	}
	layout, ok := r.registry.Layout(leadType)
	if !ok {
		return nil
	}
	sections := make([]Section, 0, len(layout))
	for _, spec := range layout {
		section := Section{Title: spec.Title, Entries: make([]Entry, 0, len(spec.Fields))}
		for _, field := range spec.Fields {
			value, _ := data.Lookup(field)
			section.Entries = append(section.Entries, r.RenderField(field, value))
		}
		sections = append(sections, section)
	}
	return sections
}

// RenderField formats a single field. Unknown field names degrade to a
// humanized text entry; the renderer never fails on a field.
func (r *Renderer) RenderField(field string, value any) Entry {
	meta, ok := r.registry.Metadata(field)
	if !ok {
		meta = Metadata{Label: Humanize(field), Type: TypeText}
	}
	entry := Entry{Field: field, Label: meta.Label, Type: meta.Type}

	if missingValue(value) {
		entry.Missing = true
		if meta.Type == TypeMoney {
			entry.Value = "N/A"
		} else {
			entry.Value = "Unknown"
		}
		return entry
	}

	switch meta.Type {
	case TypeMoney:
		entry.Value = FormatMoney(value)
	case TypeDate:
		entry.Value = FormatDate(lead.CoerceString(value))
	case TypeLawFirm:
		// Unconditional whenever the field is present: representation is a
		// fact of the record, not of the value's content.
		entry.Value = lead.CoerceString(value)
		entry.Marker = "Attorney Represented"
		entry.Note = noteAttorneyConsent
		entry.Urgency = UrgencyHigh
	case TypeFiduciary:
		entry.Value = lead.CoerceString(value)
		entry.Marker = "Fiduciary"
		entry.Note = noteFiduciary
		entry.Urgency = UrgencyMedium
	case TypeDeadline:
		entry = r.renderDeadline(entry, value)
	case TypeCategory:
		entry.Value = lead.CoerceString(value)
		entry.BadgeColor = categoryColors[entry.Value]
		if entry.BadgeColor == "" {
			entry.BadgeColor = categoryDefaultColor
		}
	case TypeMultiYearSummary:
		entry.Value = lead.CoerceString(value)
		entry.Marker = "Multi-Year Data"
	case TypeYearsCount:
		entry = renderYearsCount(entry, value)
	default:
		entry.Value = lead.CoerceString(value)
	}
	return entry
}

// renderDeadline formats a deadline field and re-derives urgency from the
// raw (unformatted) value using the same day arithmetic as the gate engine.
func (r *Renderer) renderDeadline(entry Entry, value any) Entry {
	raw := lead.CoerceString(value)
	entry.Value = FormatDate(raw)
	days, ok := gate.DaysUntilDeadlineAt(raw, r.clock())
	if !ok || days < 0 {
		return entry
	}
	switch {
	case days <= deadlineHighDays:
		entry.Urgency = UrgencyHigh
		entry.Marker = fmt.Sprintf("%d days remaining", days)
		entry.Note = noteEthicalLanguage
	case days <= deadlineMediumDays:
		entry.Urgency = UrgencyMedium
		entry.Marker = fmt.Sprintf("%d days remaining", days)
	}
	return entry
}

func renderYearsCount(entry Entry, value any) Entry {
	count, ok := coerceInt(value)
	if !ok {
		entry.Missing = true
		entry.Value = "Unknown"
		return entry
	}
	entry.Value = PluralYears(count)
	switch {
	case count >= 3:
		entry.Urgency = UrgencyHigh
		entry.Marker = fmt.Sprintf("%d Years - High Risk", count)
	case count == 2:
		entry.Urgency = UrgencyMedium
		entry.Marker = fmt.Sprintf("%d Years", count)
	}
	return entry
}

func missingValue(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return len(s) == 0 || len(lead.CoerceString(s)) == 0
	}
	return false
}
