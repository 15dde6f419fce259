package intel

import (
	"fmt"
	"strings"
)

// FieldType selects the formatting policy for an intelligence field. The set
// is closed: every variant has exactly one formatting branch, and anything
// unrecognized degrades to TypeText rather than failing.
type FieldType int

const (
	TypeText FieldType = iota
	TypeMoney
	TypeDate
	TypeLawFirm
	TypeFiduciary
	TypeDeadline
	TypeCategory
	TypeMultiYearSummary
	TypeYearsCount
)

var fieldTypeNames = map[FieldType]string{
	TypeText:             "text",
	TypeMoney:            "money",
	TypeDate:             "date",
	TypeLawFirm:          "law_firm",
	TypeFiduciary:        "fiduciary",
	TypeDeadline:         "deadline",
	TypeCategory:         "category",
	TypeMultiYearSummary: "multi_year_summary",
	TypeYearsCount:       "years_count",
}

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return "text"
}

// ParseFieldType maps a registry tag onto the closed FieldType set.
func ParseFieldType(value string) (FieldType, error) {
	tag := strings.ToLower(strings.TrimSpace(value))
	for t, name := range fieldTypeNames {
		if name == tag {
			return t, nil
		}
	}
	return TypeText, fmt.Errorf("intel: unknown field type %q", value)
}
