package sinks

import (
	"time"

	"github.com/clearlist-hq/clearlist-verifier/internal/domain"
)

// Event represents one verdict delivered downstream. Operation and
// EmailAddress are hoisted out of the verdict so consumers can route without
// unpacking it.
type Event struct {
	ListID       string         `json:"list_id"`
	ListName     string         `json:"list_name"`
	Operation    string         `json:"operation"`
	EmailAddress string         `json:"email_address"`
	Verdict      domain.Verdict `json:"verdict"`
	CheckedAt    time.Time      `json:"checked_at"`
}

// NewEvent constructs an Event for the given list + verdict.
func NewEvent(listID, listName string, verdict domain.Verdict) Event {
	return Event{
		ListID:       listID,
		ListName:     listName,
		Operation:    verdict.Operation,
		EmailAddress: verdict.EmailAddress,
		Verdict:      verdict,
		CheckedAt:    time.Now().UTC(),
	}
}
