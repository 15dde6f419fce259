// internal/disposition/form.go
//
// Call disposition form model. Validation and the conditional next-action
// rule live here; actual submission goes through the Submitter interface so
// the workspace stays independent of any backend.

package disposition

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rcavanagh/leadline/internal/gate"
	"github.com/rcavanagh/leadline/internal/logbook"
)

// Code is a call outcome the agent selects after a call.
type Code string

const (
	CodeNoAnswer          Code = "No Answer"
	CodeLeftVoicemail     Code = "Left Voicemail"
	CodeContactMade       Code = "Contact Made"
	CodeAppointmentSet    Code = "Appointment Set"
	CodeCallbackScheduled Code = "Callback Scheduled"
	CodeNotInterested     Code = "Not Interested"
	CodeWrongNumber       Code = "Wrong Number"
	CodeDoNotCall         Code = "Do Not Call"
)

// Codes lists the selectable dispositions in form order.
func Codes() []Code {
	return []Code{
		CodeNoAnswer,
		CodeLeftVoicemail,
		CodeContactMade,
		CodeAppointmentSet,
		CodeCallbackScheduled,
		CodeNotInterested,
		CodeWrongNumber,
		CodeDoNotCall,
	}
}

// RequiresNextActionDate reports whether a disposition needs a scheduled
// follow-up date before it can be submitted.
func RequiresNextActionDate(code Code) bool {
	return code == CodeAppointmentSet || code == CodeCallbackScheduled
}

// Form holds the agent's input for one call disposition.
type Form struct {
	Code            Code
	AgentNotes      string
	MotivationLevel string
	NextActionDate  string
	AskingPrice     string
}

// ValidationError describes one invalid form field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("disposition: %s: %s", e.Field, e.Reason)
}

// Validate returns every field problem at once so the form can surface them
// together. An empty slice means the form is submittable.
func (f Form) Validate() []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(string(f.Code)) == "" {
		errs = append(errs, ValidationError{Field: "disposition_code", Reason: "select a disposition code to continue"})
	}
	date := strings.TrimSpace(f.NextActionDate)
	if RequiresNextActionDate(f.Code) && date == "" {
		errs = append(errs, ValidationError{Field: "next_action_date", Reason: "next action date is required for this disposition"})
	}
	if date != "" {
		if _, ok := gate.DaysUntilDeadline(date); !ok {
			errs = append(errs, ValidationError{Field: "next_action_date", Reason: "date must be YYYY-MM-DD"})
		}
	}
	return errs
}

// NextActionDays returns the day count until the next action date for
// validation display. ok=false when the date is absent or unparseable.
func (f Form) NextActionDays() (int, bool) {
	return gate.DaysUntilDeadline(f.NextActionDate)
}

// Record is a submitted disposition.
type Record struct {
	ID          string
	ItemID      string
	CallSid     string
	Form        Form
	SubmittedAt time.Time
}

// NewRecord stamps a validated form into a submission record.
func NewRecord(itemID, callSid string, f Form, now time.Time) Record {
	return Record{
		ID:          uuid.NewString(),
		ItemID:      itemID,
		CallSid:     callSid,
		Form:        f,
		SubmittedAt: now,
	}
}

// Submitter delivers a record to whatever system owns dispositions.
type Submitter interface {
	Submit(ctx context.Context, rec Record) error
}

// LogSubmitter journals submissions. It stands in for the CRM poster, which
// is outside this module's scope.
type LogSubmitter struct {
	Log *logbook.Logbook
}

// Submit appends the record to the session journal.
func (s LogSubmitter) Submit(_ context.Context, rec Record) error {
	s.Log.Call("disposition %s submitted for lead %s · code=%s call_sid=%s",
		rec.ID, rec.ItemID, rec.Form.Code, rec.CallSid)
	return nil
}
