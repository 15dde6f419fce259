package disposition

import (
	"context"
	"testing"
	"time"

	"github.com/rcavanagh/leadline/internal/logbook"
)

func TestRequiresNextActionDate(t *testing.T) {
	for _, code := range Codes() {
		want := code == CodeAppointmentSet || code == CodeCallbackScheduled
		if got := RequiresNextActionDate(code); got != want {
			t.Fatalf("RequiresNextActionDate(%q) = %t, want %t", code, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		form   Form
		fields []string
	}{
		{
			name:   "empty form",
			form:   Form{},
			fields: []string{"disposition_code"},
		},
		{
			name: "terminal code needs nothing else",
			form: Form{Code: CodeNotInterested},
		},
		{
			name:   "appointment without date",
			form:   Form{Code: CodeAppointmentSet},
			fields: []string{"next_action_date"},
		},
		{
			name: "appointment with date",
			form: Form{Code: CodeAppointmentSet, NextActionDate: "2026-04-01"},
		},
		{
			name:   "malformed date",
			form:   Form{Code: CodeCallbackScheduled, NextActionDate: "next tuesday"},
			fields: []string{"next_action_date"},
		},
		{
			name:   "optional date still validated",
			form:   Form{Code: CodeContactMade, NextActionDate: "04/01/2026"},
			fields: []string{"next_action_date"},
		},
		{
			name:   "missing code and date reported together",
			form:   Form{NextActionDate: "bad"},
			fields: []string{"disposition_code", "next_action_date"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.form.Validate()
			if len(errs) != len(tc.fields) {
				t.Fatalf("got %d error(s) %v, want %d", len(errs), errs, len(tc.fields))
			}
			for i, field := range tc.fields {
				if errs[i].Field != field {
					t.Fatalf("error %d field = %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: "disposition_code", Reason: "select a disposition code to continue"}
	if err.Error() != "disposition: disposition_code: select a disposition code to continue" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestNewRecord(t *testing.T) {
	now := time.Date(2026, time.March, 10, 16, 0, 0, 0, time.UTC)
	form := Form{Code: CodeContactMade, AgentNotes: "spoke with owner"}
	rec := NewRecord("TL-1001", "CAabc123", form, now)
	if rec.ID == "" {
		t.Fatalf("record must get an id")
	}
	if rec.ItemID != "TL-1001" || rec.CallSid != "CAabc123" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !rec.SubmittedAt.Equal(now) {
		t.Fatalf("submitted at = %v", rec.SubmittedAt)
	}

	other := NewRecord("TL-1001", "CAabc123", form, now)
	if other.ID == rec.ID {
		t.Fatalf("record ids must be unique")
	}
}

func TestLogSubmitter(t *testing.T) {
	lb, err := logbook.New(t.TempDir() + "/session.log")
	if err != nil {
		t.Fatalf("logbook: %v", err)
	}
	sub := LogSubmitter{Log: lb}
	rec := NewRecord("TL-1001", "CAabc123", Form{Code: CodeNoAnswer}, time.Now())
	if err := sub.Submit(context.Background(), rec); err != nil {
		t.Fatalf("submit: %v", err)
	}
	lines := lb.Tail(5)
	if len(lines) != 1 {
		t.Fatalf("expected 1 journal line, got %v", lines)
	}
}

func TestLogSubmitterNilLogbook(t *testing.T) {
	rec := NewRecord("TL-1001", "", Form{Code: CodeNoAnswer}, time.Now())
	if err := (LogSubmitter{}).Submit(context.Background(), rec); err != nil {
		t.Fatalf("nil logbook submit: %v", err)
	}
}
