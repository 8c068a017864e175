package asi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/contextcart/ragsearch/internal/core/domain"
)

func TestGenerateValidatesBeforeNetworkCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := New(server.URL, "test-key", nil)

	cases := []struct {
		name         string
		message      string
		systemPrompt string
		model        string
	}{
		{"empty message", "   ", "system", "asi1-mini"},
		{"empty system prompt", "hello", "", "asi1-mini"},
		{"empty model", "hello", "system", "  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.Generate(context.Background(), tc.message, tc.systemPrompt, tc.model, OutputSchema{})
			if !domain.IsKind(err, domain.ErrInvalidInput) {
				t.Fatalf("expected invalid input error, got %v", err)
			}
		})
	}
	if called {
		t.Fatalf("validation failures must not reach the provider")
	}
}

func TestGenerateRejectsMissingAPIKey(t *testing.T) {
	client := New("http://localhost:1", "", nil)

	_, err := client.Generate(context.Background(), "hello", "system", "asi1-mini", OutputSchema{})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestGenerateSendsConstrainedChatRequest(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != chatCompletionsPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	defer server.Close()

	client := New(server.URL, "test-key", nil)

	content, err := client.Generate(context.Background(), "format this", "you are a formatter", "asi1-mini", rankOutputSchema())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if content != `{"ok":true}` {
		t.Fatalf("expected raw model content returned, got %q", content)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}

	messages, ok := gotBody["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("expected system+user messages, got %v", gotBody["messages"])
	}
	first := messages[0].(map[string]any)
	if first["role"] != "system" {
		t.Fatalf("expected system message first, got %v", first)
	}

	format, ok := gotBody["response_format"].(map[string]any)
	if !ok {
		t.Fatalf("expected response_format in request, got %v", gotBody)
	}
	if format["type"] != "json_schema" {
		t.Fatalf("expected json_schema response format, got %v", format["type"])
	}
	schema := format["json_schema"].(map[string]any)
	if schema["strict"] != true {
		t.Fatalf("expected strict schema, got %v", schema)
	}
}

func TestGenerateMapsProviderStatusToProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream exploded`))
	}))
	defer server.Close()

	client := New(server.URL, "test-key", nil)

	_, err := client.Generate(context.Background(), "hello", "system", "asi1-mini", OutputSchema{})
	if !domain.IsKind(err, domain.ErrProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if !strings.Contains(err.Error(), "upstream exploded") {
		t.Fatalf("expected body excerpt in error, got %v", err)
	}
}

func TestGenerateRejectsEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, "test-key", nil)

	_, err := client.Generate(context.Background(), "hello", "system", "asi1-mini", OutputSchema{})
	if !domain.IsKind(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected malformed response error, got %v", err)
	}
}

func TestGeneratePassesEmptyContentToCaller(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":""}}]}`))
	}))
	defer server.Close()

	client := New(server.URL, "test-key", nil)

	content, err := client.Generate(context.Background(), "hello", "system", "asi1-mini", OutputSchema{})
	if err != nil {
		t.Fatalf("empty content is model output, not a transport failure: %v", err)
	}
	if content != "" {
		t.Fatalf("expected empty content returned as-is, got %q", content)
	}
}

func TestGenerateRejectsNonJSONEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway page</html>`))
	}))
	defer server.Close()

	client := New(server.URL, "test-key", nil)

	_, err := client.Generate(context.Background(), "hello", "system", "asi1-mini", OutputSchema{})
	if !domain.IsKind(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected malformed response error, got %v", err)
	}
}

func TestIsTimeoutRecognizesDeadlineExceeded(t *testing.T) {
	if !isTimeout(context.DeadlineExceeded) {
		t.Fatalf("deadline exceeded must classify as timeout")
	}
	if isTimeout(context.Canceled) {
		t.Fatalf("cancellation is not a timeout")
	}
}
