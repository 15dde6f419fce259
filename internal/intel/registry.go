// internal/intel/registry.go
//
// Static registries for the intelligence panel: field metadata keyed by field
// name, and per-lead-type display layouts. Both are built once at startup
// (defaults plus optional YAML overlay) and never mutated afterwards - they
// are the single extension point for adding a new lead type or field.

package intel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata describes how one field is labeled and formatted.
type Metadata struct {
	Label string
	Type  FieldType
}

// SectionSpec is one titled group of fields inside a lead-type layout.
type SectionSpec struct {
	Title  string
	Fields []string
}

// Registry resolves field metadata and lead-type layouts. Read-only after
// construction; each lead view shares the same instance.
type Registry struct {
	fields  map[string]Metadata
	layouts map[string][]SectionSpec
}

// NewRegistry returns a registry populated with the built-in field set and
// lead-type layouts.
func NewRegistry() *Registry {
	return &Registry{
		fields:  defaultFields(),
		layouts: defaultLayouts(),
	}
}

func defaultFields() map[string]Metadata {
	return map[string]Metadata{
		// NED Listing / Foreclosure Auction
		"auction_date":           {Label: "Auction Date", Type: TypeDate},
		"balance_due":            {Label: "Balance Due", Type: TypeMoney},
		"opening_bid":            {Label: "Opening Bid", Type: TypeMoney},
		"law_firm_name":          {Label: "Law Firm Name", Type: TypeLawFirm},
		"first_publication_date": {Label: "First Publication Date", Type: TypeDate},
		"auction_platform":       {Label: "Auction Platform", Type: TypeText},
		"auction_location":       {Label: "Auction Location", Type: TypeText},
		"registration_deadline":  {Label: "Registration Deadline", Type: TypeDate},
		// Probate/Estate
		"executor_name":       {Label: "Personal Representative", Type: TypeFiduciary},
		"probate_case_number": {Label: "Case Number", Type: TypeText},
		"probate_filing_date": {Label: "Filing Date", Type: TypeDate},
		"estate_value":        {Label: "Estate Value", Type: TypeMoney},
		"decedent_name":       {Label: "Decedent Name", Type: TypeText},
		"court_jurisdiction":  {Label: "Court Jurisdiction", Type: TypeText},
		// Tax Lien
		"tax_debt_amount":         {Label: "Tax Debt Amount", Type: TypeMoney},
		"delinquency_start_date":  {Label: "Delinquency Start Date", Type: TypeDate},
		"redemption_deadline":     {Label: "Redemption Deadline", Type: TypeDeadline},
		"lien_type":               {Label: "Lien Type", Type: TypeCategory},
		"tax_delinquency_summary": {Label: "Tax Delinquency Summary", Type: TypeMultiYearSummary},
		"delinquent_years_count":  {Label: "Delinquent Years", Type: TypeYearsCount},
	}
}

func defaultLayouts() map[string][]SectionSpec {
	return map[string][]SectionSpec{
		"NED Listing": {
			{Title: "Foreclosure Details", Fields: []string{"auction_date", "balance_due", "opening_bid"}},
			{Title: "Compliance & Timeline", Fields: []string{"law_firm_name", "first_publication_date"}},
		},
		"Foreclosure Auction": {
			{Title: "Auction Details", Fields: []string{"auction_platform", "auction_date", "opening_bid"}},
			{Title: "Location & Logistics", Fields: []string{"auction_location", "registration_deadline"}},
		},
		"Probate/Estate": {
			{Title: "Probate Details", Fields: []string{"probate_case_number", "probate_filing_date", "court_jurisdiction"}},
			{Title: "Estate Information", Fields: []string{"executor_name", "decedent_name", "estate_value"}},
		},
		"Tax Lien": {
			{Title: "Tax Lien Details", Fields: []string{"lien_type", "tax_debt_amount"}},
			{Title: "Multi-Year Breakdown", Fields: []string{"tax_delinquency_summary", "delinquent_years_count"}},
			{Title: "Timeline & Urgency", Fields: []string{"delinquency_start_date", "redemption_deadline"}},
		},
	}
}

// Metadata resolves a field name. Unregistered names report ok=false; callers
// fall back to a humanized text entry.
func (r *Registry) Metadata(field string) (Metadata, bool) {
	if r == nil {
		return Metadata{}, false
	}
	meta, ok := r.fields[field]
	return meta, ok
}

// Layout returns the ordered section layout for a lead type. Absence means
// "render nothing" and is expected for unconfigured lead types.
func (r *Registry) Layout(leadType string) ([]SectionSpec, bool) {
	if r == nil {
		return nil, false
	}
	layout, ok := r.layouts[leadType]
	return layout, ok
}

// LeadTypes lists the configured lead types.
func (r *Registry) LeadTypes() []string {
	if r == nil {
		return nil
	}
	types := make([]string, 0, len(r.layouts))
	for leadType := range r.layouts {
		types = append(types, leadType)
	}
	return types
}

// Humanize converts a raw field name into a display label.
func Humanize(field string) string {
	return strings.TrimSpace(strings.ReplaceAll(field, "_", " "))
}

// fieldDocument models one entry of a fields.yaml overlay.
type fieldDocument struct {
	Label string `yaml:"label"`
	Type  string `yaml:"type"`
}

// layoutDocument models one section of a layouts.yaml overlay.
type layoutDocument struct {
	Title  string   `yaml:"title"`
	Fields []string `yaml:"fields"`
}

// LoadFieldOverlay merges a fields.yaml file into the registry. Called during
// startup only; a missing file is not an error.
func (r *Registry) LoadFieldOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("intel: read %s: %w", path, err)
	}
	var docs map[string]fieldDocument
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("intel: parse %s: %w", path, err)
	}
	for name, doc := range docs {
		field := strings.TrimSpace(name)
		if field == "" {
			continue
		}
		fieldType, err := ParseFieldType(doc.Type)
		if err != nil {
			return fmt.Errorf("intel: %s: field %s: %w", path, field, err)
		}
		label := strings.TrimSpace(doc.Label)
		if label == "" {
			label = Humanize(field)
		}
		r.fields[field] = Metadata{Label: label, Type: fieldType}
	}
	return nil
}

// LoadLayoutOverlay merges a layouts.yaml file into the registry. Adding a
// lead type here is all it takes for the panel to render it.
func (r *Registry) LoadLayoutOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("intel: read %s: %w", path, err)
	}
	var docs map[string][]layoutDocument
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("intel: parse %s: %w", path, err)
	}
	for leadType, sections := range docs {
		name := strings.TrimSpace(leadType)
		if name == "" {
			continue
		}
		layout := make([]SectionSpec, 0, len(sections))
		for i, section := range sections {
			title := strings.TrimSpace(section.Title)
			if title == "" {
				return fmt.Errorf("intel: %s: %s section %d: title is required", path, name, i)
			}
			layout = append(layout, SectionSpec{Title: title, Fields: append([]string(nil), section.Fields...)})
		}
		r.layouts[name] = layout
	}
	return nil
}
