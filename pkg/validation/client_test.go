package validation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newStubServer(t *testing.T, wantPath string, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantPath != "" && r.URL.Path != wantPath {
			t.Fatalf("expected path %s, got %s", wantPath, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestValidateEmailDecodesSuccessRecord(t *testing.T) {
	body := `{
		"email_address": "example@example.com",
		"base_email_address": "example@example.com",
		"domain": "example.com",
		"is_free": false,
		"is_syntax": true,
		"is_domain": true,
		"is_smtp": true,
		"is_verified": true,
		"is_high_risk": false,
		"mailboxvalidator_score": 0.85,
		"time_taken": 0.3582,
		"credits_available": 99
	}`
	srv := newStubServer(t, "/v2/validation/single", http.StatusOK, body)
	defer srv.Close()

	client := New("test-key", WithBaseURL(srv.URL))
	res, err := client.ValidateEmail(context.Background(), "example@example.com")
	if err != nil {
		t.Fatalf("ValidateEmail: %v", err)
	}
	if !res.OK() || res.Rejected() || res.Empty() {
		t.Fatalf("expected success result, got %+v", res)
	}

	rec := res.Record
	if rec.EmailAddress != "example@example.com" || rec.Domain != "example.com" {
		t.Fatalf("unexpected record identity fields: %+v", rec)
	}
	if rec.IsFree == nil || *rec.IsFree {
		t.Fatalf("expected is_free=false, got %v", rec.IsFree)
	}
	if rec.IsSyntax == nil || !*rec.IsSyntax {
		t.Fatalf("expected is_syntax=true, got %v", rec.IsSyntax)
	}
	if rec.IsDisposable != nil {
		t.Fatalf("expected absent is_disposable to stay nil, got %v", *rec.IsDisposable)
	}
	if rec.Score != 0.85 || rec.TimeTaken != 0.3582 || rec.CreditsAvailable != 99 {
		t.Fatalf("unexpected numeric fields: %+v", rec)
	}
}

func TestClientSendsRequiredQueryParameters(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"email":  q.Get("email"),
			"key":    q.Get("key"),
			"format": q.Get("format"),
			"source": q.Get("source"),
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"email_address":"a@b.co","is_free":true,"credits_available":10}`))
	}))
	defer srv.Close()

	client := New("secret-key", WithBaseURL(srv.URL))
	if _, err := client.CheckFreeEmail(context.Background(), "a@b.co"); err != nil {
		t.Fatalf("CheckFreeEmail: %v", err)
	}

	want := map[string]string{"email": "a@b.co", "key": "secret-key", "format": "json", "source": sourceTag}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Fatalf("query %s: expected %q, got %q", k, v, gotQuery[k])
		}
	}
}

func TestCheckDisposableExample(t *testing.T) {
	srv := newStubServer(t, "/v2/email/disposable", http.StatusOK,
		`{"email_address":"test@mailinator.com","is_disposable":true,"credits_available":100}`)
	defer srv.Close()

	client := New("test-key", WithBaseURL(srv.URL))
	res, err := client.CheckDisposable(context.Background(), "test@mailinator.com")
	if err != nil {
		t.Fatalf("CheckDisposable: %v", err)
	}
	if !res.OK() {
		t.Fatalf("expected success result, got %+v", res)
	}
	if res.Record.IsDisposable == nil || !*res.Record.IsDisposable {
		t.Fatalf("expected is_disposable=true, got %v", res.Record.IsDisposable)
	}
	if res.Record.CreditsAvailable != 100 {
		t.Fatalf("expected credits_available=100, got %d", res.Record.CreditsAvailable)
	}
}

func TestUnauthorizedReturnsServiceErrorValue(t *testing.T) {
	srv := newStubServer(t, "", http.StatusUnauthorized,
		`{"error":{"error_code":100,"error_message":"Invalid API key."}}`)
	defer srv.Close()

	client := New("bad-key", WithBaseURL(srv.URL))
	res, err := client.CheckDisposable(context.Background(), "test@mailinator.com")
	if err != nil {
		t.Fatalf("expected service error as value, got transport error: %v", err)
	}
	if !res.Rejected() || res.OK() {
		t.Fatalf("expected rejected result, got %+v", res)
	}
	if res.APIError.ErrorCode != 100 || res.APIError.ErrorMessage != "Invalid API key." {
		t.Fatalf("unexpected api error: %+v", res.APIError)
	}
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", res.StatusCode)
	}
}

func TestBadRequestReturnsServiceErrorForEveryOperation(t *testing.T) {
	srv := newStubServer(t, "", http.StatusBadRequest,
		`{"error":{"error_code":102,"error_message":"Parameter email is missing."}}`)
	defer srv.Close()

	client := New("test-key", WithBaseURL(srv.URL))
	ctx := context.Background()

	single, err := client.ValidateEmail(ctx, "")
	if err != nil || !single.Rejected() {
		t.Fatalf("ValidateEmail: err=%v result=%+v", err, single)
	}
	disp, err := client.CheckDisposable(ctx, "")
	if err != nil || !disp.Rejected() {
		t.Fatalf("CheckDisposable: err=%v result=%+v", err, disp)
	}
	free, err := client.CheckFreeEmail(ctx, "")
	if err != nil || !free.Rejected() {
		t.Fatalf("CheckFreeEmail: err=%v result=%+v", err, free)
	}
	if single.APIError.ErrorCode != 102 || disp.APIError.ErrorCode != 102 || free.APIError.ErrorCode != 102 {
		t.Fatalf("expected error_code 102 on all operations")
	}
}

// Statuses outside {200, 400, 401} intentionally yield an empty result and no
// error; this pins the surprising but load-bearing fallback.
func TestUnclassifiedStatusYieldsEmptyResult(t *testing.T) {
	srv := newStubServer(t, "", http.StatusInternalServerError, `{"oops":true}`)
	defer srv.Close()

	client := New("test-key", WithBaseURL(srv.URL))
	res, err := client.ValidateEmail(context.Background(), "example@example.com")
	if err != nil {
		t.Fatalf("expected no error on unclassified status, got %v", err)
	}
	if !res.Empty() {
		t.Fatalf("expected empty result, got %+v", res)
	}
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500 recorded, got %d", res.StatusCode)
	}
}

func TestConnectionFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // unreachable from here on

	client := New("test-key", WithBaseURL(srv.URL))
	if _, err := client.ValidateEmail(context.Background(), "example@example.com"); err == nil {
		t.Fatalf("expected transport error for unreachable host")
	}
}

func TestMissingRequiredFieldIsDecodeError(t *testing.T) {
	srv := newStubServer(t, "", http.StatusOK, `{"is_disposable":true,"credits_available":5}`)
	defer srv.Close()

	client := New("test-key", WithBaseURL(srv.URL))
	if _, err := client.CheckDisposable(context.Background(), "test@mailinator.com"); err == nil {
		t.Fatalf("expected decode error for body missing email_address")
	}
}

func TestMalformedSuccessBodyIsDecodeError(t *testing.T) {
	srv := newStubServer(t, "", http.StatusOK, `{"email_address":`)
	defer srv.Close()

	client := New("test-key", WithBaseURL(srv.URL))
	if _, err := client.CheckFreeEmail(context.Background(), "a@b.co"); err == nil {
		t.Fatalf("expected decode error for malformed body")
	}
}

func TestErrorBodyWithoutErrorPayloadIsDecodeError(t *testing.T) {
	srv := newStubServer(t, "", http.StatusBadRequest, `{}`)
	defer srv.Close()

	client := New("test-key", WithBaseURL(srv.URL))
	if _, err := client.ValidateEmail(context.Background(), "x"); err == nil {
		t.Fatalf("expected decode error when 400 body lacks the error payload")
	}
}
