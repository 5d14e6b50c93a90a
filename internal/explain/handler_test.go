package explain

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"codelens/internal/testutil"
)

type stubProvider struct {
	result Result
	err    error
	calls  int
}

func (s *stubProvider) Explain(_ context.Context, _, _ string) (Result, error) {
	s.calls++
	return s.result, s.err
}

func newExplainServer(t *testing.T, provider Provider) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewHandler(Config{Provider: provider}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExplainSuccess(t *testing.T) {
	provider := &stubProvider{result: Result{
		Explanation: "adds two numbers",
		Model:       "test-model",
		Usage:       Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}}
	srv := newExplainServer(t, provider)

	resp, body := testutil.DoRequest(t, http.MethodPost, srv.URL+"/api/explain",
		[]byte(`{"code":"a+b","language":"python"}`), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	var parsed explainResponse
	testutil.DecodeJSON(t, body, &parsed)
	if parsed.ID == "" {
		t.Fatalf("expected a generated id")
	}
	if parsed.Explanation != "adds two numbers" {
		t.Fatalf("unexpected explanation %q", parsed.Explanation)
	}
	if parsed.Model != "test-model" {
		t.Fatalf("unexpected model %q", parsed.Model)
	}
	if parsed.Usage.TotalTokens != 15 {
		t.Fatalf("unexpected usage %+v", parsed.Usage)
	}
}

func TestExplainValidationErrors(t *testing.T) {
	provider := &stubProvider{}
	srv := newExplainServer(t, provider)

	cases := []struct {
		name    string
		payload string
	}{
		{name: "empty_body", payload: ""},
		{name: "not_json", payload: "not json"},
		{name: "missing_code", payload: `{"language":"go"}`},
		{name: "empty_code", payload: `{"code":""}`},
		{name: "unknown_field", payload: `{"code":"x","extra":true}`},
	}
	for _, tc := range cases {
		resp, body := testutil.DoRequest(t, http.MethodPost, srv.URL+"/api/explain", []byte(tc.payload), nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", tc.name, resp.StatusCode, body)
		}
	}
	if provider.calls != 0 {
		t.Fatalf("provider must not be called on invalid input, got %d calls", provider.calls)
	}
}

func TestExplainCodeTooLong(t *testing.T) {
	provider := &stubProvider{}
	srv := httptest.NewServer(NewHandler(Config{Provider: provider, MaxCodeChars: 8}))
	t.Cleanup(srv.Close)

	resp, _ := testutil.DoRequest(t, http.MethodPost, srv.URL+"/api/explain",
		[]byte(`{"code":"123456789"}`), nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized snippet, got %d", resp.StatusCode)
	}
}

func TestExplainProviderFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream exploded: key abc123")}
	srv := newExplainServer(t, provider)

	resp, body := testutil.DoRequest(t, http.MethodPost, srv.URL+"/api/explain",
		[]byte(`{"code":"a+b"}`), nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	var parsed errorResponse
	testutil.DecodeJSON(t, body, &parsed)
	if parsed.Error != "explanation_failed" {
		t.Fatalf("expected generic error code, got %+v", parsed)
	}
}

func TestExplainMethodNotAllowed(t *testing.T) {
	srv := newExplainServer(t, &stubProvider{})

	resp, _ := testutil.DoRequest(t, http.MethodGet, srv.URL+"/api/explain", nil, nil)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}
