// internal/lead/lead.go
//
// Lead context types. A Context is the immutable input for one workspace
// session: the agent opens a lead, works it, and navigates away. Nothing in
// here carries state between leads.

package lead

import (
	"fmt"
	"strconv"
	"strings"
)

// Occupancy is the owner-occupied status reported by the data pipeline.
type Occupancy string

const (
	OccupancyYes     Occupancy = "Yes"
	OccupancyNo      Occupancy = "No"
	OccupancyUnknown Occupancy = "Unknown"
)

// ParseOccupancy maps raw pipeline values onto the closed Occupancy set.
// Anything unrecognized is treated as Unknown: the compliance gate handles
// Unknown conservatively, so a bad value can only over-block, never under-block.
func ParseOccupancy(value string) Occupancy {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes":
		return OccupancyYes
	case "no":
		return OccupancyNo
	default:
		return OccupancyUnknown
	}
}

// Intelligence maps upstream field names to raw values. Values may be absent;
// the field-name strings form an implicit schema contract with the data
// source and are never validated beyond graceful degradation.
type Intelligence map[string]any

// Lookup returns the raw value for a field. Nil values and empty strings are
// reported as absent.
func (in Intelligence) Lookup(field string) (any, bool) {
	if in == nil {
		return nil, false
	}
	value, ok := in[field]
	if !ok || value == nil {
		return nil, false
	}
	if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return value, true
}

// String returns the field value coerced to a string. Numeric values are
// rendered without formatting; absent values return ("", false).
func (in Intelligence) String(field string) (string, bool) {
	value, ok := in.Lookup(field)
	if !ok {
		return "", false
	}
	return CoerceString(value), true
}

// CoerceString renders a raw intelligence value as plain text.
func CoerceString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Context is the immutable input for a workspace session.
type Context struct {
	// ItemID is the opaque lead identifier assigned by the CRM.
	ItemID string

	// LeadType selects which intelligence fields are relevant
	// (e.g. "Tax Lien", "Probate/Estate").
	LeadType string

	// Occupancy drives the owner-occupied hard gate.
	Occupancy Occupancy

	// Intelligence holds the per-lead attribute values sourced externally.
	Intelligence Intelligence
}

// Label returns a short display name for pickers and logs.
func (c Context) Label() string {
	id := strings.TrimSpace(c.ItemID)
	if id == "" {
		id = "unassigned"
	}
	if strings.TrimSpace(c.LeadType) == "" {
		return id
	}
	return fmt.Sprintf("%s · %s", id, c.LeadType)
}
