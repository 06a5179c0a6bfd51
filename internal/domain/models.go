package domain

// Domain contains core models shared by the pipeline, storage, and sinks.

import "encoding/json"

// Operation names for the three validation checks.
const (
	OpValidate   = "validate"
	OpDisposable = "disposable"
	OpFree       = "free"
)

// Verdict is the outcome of one validation call for one address. Exactly one
// of Record and Error is set for classified responses; both are empty when
// the service answered with an unclassified status.
type Verdict struct {
	Operation    string          `json:"operation"`
	EmailAddress string          `json:"email_address"`
	StatusCode   int             `json:"status_code"`
	Record       json.RawMessage `json:"record,omitempty"`
	Error        *ServiceError   `json:"error,omitempty"`
}

// ServiceError mirrors the API's structured rejection payload.
type ServiceError struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// CacheKey identifies a verdict in local storage.
func (v Verdict) CacheKey() string { return v.Operation + ":" + v.EmailAddress }

// OK reports whether the verdict carries a success record.
func (v Verdict) OK() bool { return len(v.Record) > 0 }
