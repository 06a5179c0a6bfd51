package validation

import "fmt"

// Record field layouts mirror the MailboxValidator API responses exactly.
// Consumers depend on these JSON field names; do not rename them.

// SingleValidationRecord is the Single Validation API result on HTTP 200.
// Boolean flags are pointers because the service omits them when the
// account has insufficient credits; absent and false are distinct.
type SingleValidationRecord struct {
	EmailAddress     string `json:"email_address"`
	BaseEmailAddress string `json:"base_email_address"`
	Domain           string `json:"domain"`

	IsFree          *bool `json:"is_free,omitempty"`
	IsSyntax        *bool `json:"is_syntax,omitempty"`
	IsDomain        *bool `json:"is_domain,omitempty"`
	IsSMTP          *bool `json:"is_smtp,omitempty"`
	IsVerified      *bool `json:"is_verified,omitempty"`
	IsServerDown    *bool `json:"is_server_down,omitempty"`
	IsGreylisted    *bool `json:"is_greylisted,omitempty"`
	IsDisposable    *bool `json:"is_disposable,omitempty"`
	IsSuppressed    *bool `json:"is_suppressed,omitempty"`
	IsRole          *bool `json:"is_role,omitempty"`
	IsHighRisk      *bool `json:"is_high_risk,omitempty"`
	IsCatchall      *bool `json:"is_catchall,omitempty"`
	IsDMARCEnforced *bool `json:"is_dmarc_enforced,omitempty"`
	IsStrictSPF     *bool `json:"is_strict_spf,omitempty"`
	WebsiteExist    *bool `json:"website_exist,omitempty"`
	Status          *bool `json:"status,omitempty"`

	Score            float64 `json:"mailboxvalidator_score"`
	TimeTaken        float64 `json:"time_taken"`
	CreditsAvailable int64   `json:"credits_available"`
}

// DisposableEmailRecord is the Disposable Email API result on HTTP 200.
type DisposableEmailRecord struct {
	EmailAddress     string `json:"email_address"`
	IsDisposable     *bool  `json:"is_disposable,omitempty"`
	CreditsAvailable int64  `json:"credits_available"`
}

// FreeEmailRecord is the Free Email API result on HTTP 200.
type FreeEmailRecord struct {
	EmailAddress     string `json:"email_address"`
	IsFree           *bool  `json:"is_free,omitempty"`
	CreditsAvailable int64  `json:"credits_available"`
}

// APIError is the service-level rejection payload carried on HTTP 400/401.
type APIError struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// errorEnvelope matches the nested error shape the service returns.
type errorEnvelope struct {
	Error APIError `json:"error"`
}

// Record is implemented by all success record types so one request path can
// decode and sanity-check any of them.
type Record interface {
	validate() error
}

// encoding/json leaves absent fields zero-valued, so required fields are
// checked after decode; a 200 body without them is a schema mismatch.

func (r SingleValidationRecord) validate() error {
	if r.EmailAddress == "" {
		return fmt.Errorf("validation record missing email_address")
	}
	return nil
}

func (r DisposableEmailRecord) validate() error {
	if r.EmailAddress == "" {
		return fmt.Errorf("disposable record missing email_address")
	}
	return nil
}

func (r FreeEmailRecord) validate() error {
	if r.EmailAddress == "" {
		return fmt.Errorf("free record missing email_address")
	}
	return nil
}
