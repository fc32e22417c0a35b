package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/docubuddy/internal/config"
	apperrors "github.com/spec-kit/docubuddy/pkg/util/errorutil"
)

// FallbackMessage is returned to the asker when the answering backend cannot
// produce a usable reply.
const FallbackMessage = "Sorry, I could not process your question. Please try again."

// Client forwards questions to the answering webhook and normalizes its
// loosely-shaped replies into plain text.
type Client struct {
	webhookURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient constructs a webhook client from configuration.
func NewClient(cfg config.AnswererConfig, logger *zap.Logger) *Client {
	return &Client{
		webhookURL: cfg.WebhookURL,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger,
	}
}

type askRequest struct {
	Question string `json:"question"`
}

// Ask submits the question and returns the answer text. The webhook may
// answer with a JSON object (its text found under "response", "message" or
// "answer"), a JSON string, or raw text; all are normalized. Transport
// failures and non-2xx statuses yield FallbackMessage with an error.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", apperrors.NewValidationError("question required", nil)
	}
	if c.webhookURL == "" {
		return FallbackMessage, apperrors.NewUnavailable("answering backend not configured", nil)
	}

	body, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return FallbackMessage, apperrors.MapError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return FallbackMessage, apperrors.MapError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("answer webhook call failed", zap.Error(err))
		return FallbackMessage, apperrors.NewUnavailable("answering backend unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return FallbackMessage, apperrors.NewUnavailable("answering backend response unreadable", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("answer webhook returned error status",
			zap.Int("status", resp.StatusCode))
		return FallbackMessage, apperrors.NewUnavailable(
			fmt.Sprintf("answering backend returned status %d", resp.StatusCode), nil)
	}

	return extractAnswer(raw), nil
}

// extractAnswer pulls the reply text out of whatever shape the webhook sent.
func extractAnswer(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return FallbackMessage
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Not a JSON object; treat the body as the answer itself.
		return text
	}

	for _, field := range []string{"response", "message", "answer"} {
		val, ok := payload[field]
		if !ok {
			continue
		}
		var str string
		if err := json.Unmarshal(val, &str); err == nil {
			if trimmed := strings.TrimSpace(str); trimmed != "" {
				return trimmed
			}
			continue
		}
		// A non-string value still carries the answer; render it as JSON.
		return strings.TrimSpace(string(val))
	}
	return text
}
