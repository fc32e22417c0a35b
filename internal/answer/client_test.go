package answer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/docubuddy/internal/config"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(config.AnswererConfig{WebhookURL: server.URL, TimeoutSeconds: 5}, zap.NewNop())
	return client, server
}

func TestAskParsesResponseField(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"deploy docs live under /runbooks"}`))
	})
	defer server.Close()

	got, err := client.Ask(context.Background(), "where are the deploy docs?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "deploy docs live under /runbooks" {
		t.Fatalf("answer = %q", got)
	}
}

func TestAskParsesMessageAndAnswerFields(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"message":"check the wiki"}`, "check the wiki"},
		{`{"answer":"42"}`, "42"},
		{`{"answer":{"text":"nested"}}`, `{"text":"nested"}`},
	}
	for _, tc := range cases {
		body := tc.body
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})
		got, err := client.Ask(context.Background(), "q")
		server.Close()
		if err != nil {
			t.Fatalf("Ask(%s): %v", tc.body, err)
		}
		if got != tc.want {
			t.Errorf("Ask(%s) = %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestAskAcceptsRawText(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain text answer"))
	})
	defer server.Close()

	got, err := client.Ask(context.Background(), "q")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "plain text answer" {
		t.Fatalf("answer = %q", got)
	}
}

func TestAskFallsBackOnErrorStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	got, err := client.Ask(context.Background(), "q")
	if err == nil {
		t.Fatal("a 502 should surface an error")
	}
	if got != FallbackMessage {
		t.Fatalf("answer = %q, want the fallback message", got)
	}
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	client := NewClient(config.AnswererConfig{WebhookURL: "http://localhost:0"}, zap.NewNop())

	if _, err := client.Ask(context.Background(), "   "); err == nil {
		t.Fatal("an empty question should be rejected")
	}
}

func TestAskWithoutWebhookConfigured(t *testing.T) {
	client := NewClient(config.AnswererConfig{}, zap.NewNop())

	got, err := client.Ask(context.Background(), "q")
	if err == nil {
		t.Fatal("a missing webhook URL should surface an error")
	}
	if got != FallbackMessage {
		t.Fatalf("answer = %q, want the fallback message", got)
	}
}
