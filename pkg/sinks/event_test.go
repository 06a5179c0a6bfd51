package sinks

import (
	"encoding/json"
	"testing"

	"github.com/clearlist-hq/clearlist-verifier/internal/domain"
)

func TestNewEventHoistsVerdictIdentity(t *testing.T) {
	evt := NewEvent("newsletter", "Weekly Newsletter", domain.Verdict{
		Operation:    domain.OpDisposable,
		EmailAddress: "bob@mailinator.com",
		StatusCode:   200,
	})

	if evt.Operation != domain.OpDisposable || evt.EmailAddress != "bob@mailinator.com" {
		t.Fatalf("expected operation and email address on the event, got %+v", evt)
	}
	if evt.CheckedAt.IsZero() {
		t.Fatalf("expected checked_at to be set")
	}

	raw, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	for _, key := range []string{"list_id", "list_name", "operation", "email_address", "verdict", "checked_at"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("expected top-level field %q in %s", key, raw)
		}
	}
}
