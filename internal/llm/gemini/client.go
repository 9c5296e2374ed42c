// Package gemini implements llm.Advisor against the Gemini generateContent API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"finadvisor/internal/llm"
)

// Config for the Gemini client.
type Config struct {
	APIKey  string
	BaseURL string // default https://generativelanguage.googleapis.com/v1beta
	Model   string // e.g. "gemini-1.5-pro-latest"
	Timeout time.Duration
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-pro-latest"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Ask implements llm.Advisor. The model is instructed to refuse off-topic
// queries itself; any transport or API failure propagates unrecovered.
func (c *Client) Ask(ctx context.Context, userQuery string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.ask.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"query_len", len(userQuery),
	)

	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{
				{"text": llm.BuildAdvisorPrompt(userQuery)},
			}},
		},
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	// The key travels in a header, never the URL: SendJSON logs request URLs.
	headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}

	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		c.logger.Error("llm.ask.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("gemini: %w", err)
	}

	var gc struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &gc); err != nil {
		c.logger.Error("llm.ask.decode_error", "req_id", rid, "error", err, "raw_bytes", len(raw))
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(gc.Candidates) == 0 || len(gc.Candidates[0].Content.Parts) == 0 {
		c.logger.Error("llm.ask.no_candidates", "req_id", rid, "raw", string(raw))
		return "", fmt.Errorf("no candidates in gemini response")
	}

	var b strings.Builder
	for _, p := range gc.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	answer := strings.TrimSpace(b.String())

	c.logger.Info("llm.ask.ok",
		"req_id", rid,
		"answer_len", len(answer),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return answer, nil
}
