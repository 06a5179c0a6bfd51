package validation

// Result is the outcome of one validation call. Exactly one of Record and
// APIError is set on the two classified paths; both are nil when the service
// answered with an unclassified status code (see Empty). Transport-level
// failures never produce a Result, they surface as an error from the call.
type Result[R Record] struct {
	// Record holds the decoded success payload on HTTP 200.
	Record *R
	// APIError holds the service rejection on HTTP 400/401.
	APIError *APIError
	// StatusCode is the HTTP status the service answered with.
	StatusCode int
}

// OK reports whether the call produced a success record.
func (r Result[R]) OK() bool { return r.Record != nil }

// Rejected reports whether the service rejected the request (HTTP 400/401).
func (r Result[R]) Rejected() bool { return r.APIError != nil }

// Empty reports whether the service answered with a status code outside the
// documented set, yielding neither a record nor a service error. Kept for
// compatibility with existing consumers; inspect StatusCode when it matters.
func (r Result[R]) Empty() bool { return r.Record == nil && r.APIError == nil }
