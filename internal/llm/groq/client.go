// Package groq implements llm.DocumentAnalyzer against the Groq
// OpenAI-compatible chat/completions API.
package groq

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

// Config for the Groq client.
type Config struct {
	APIKey  string
	BaseURL string // default https://api.groq.com/openai/v1
	Model   string // e.g. "llama-3.3-70b-versatile"
	// Temperature is a pointer so an explicit 0 (deterministic sampling) is
	// distinguishable from unset; nil defaults to 0.6.
	Temperature *float32
	Timeout     time.Duration
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "llama-3.3-70b-versatile"
	}
	if cfg.Temperature == nil {
		temp := float32(0.6)
		cfg.Temperature = &temp
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

// Analyze implements llm.DocumentAnalyzer. The model output is fence-stripped,
// schema-validated and unmarshalled; malformed output is a terminal error, and
// the non-financial sentinel maps to llm.ErrNotFinancial.
func (c *Client) Analyze(ctx context.Context, text string) (*llm.DocumentAnalysis, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.analyze.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", *c.cfg.Temperature,
		"text_len", len(text),
	)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": *c.cfg.Temperature,
		"messages": []map[string]any{
			{"role": "user", "content": llm.BuildAnalysisPrompt(text)},
		},
	}
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		c.logger.Error("llm.analyze.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("groq: %w", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.analyze.decode_error", "req_id", rid, "error", err, "raw_bytes", len(raw))
		return nil, fmt.Errorf("decode groq response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("llm.analyze.no_choices", "req_id", rid, "raw", string(raw))
		return nil, fmt.Errorf("no choices in groq response")
	}

	content := llm.StripCodeFences(cc.Choices[0].Message.Content)
	if content == llm.NotFinancialResponse || strings.Trim(content, "'\"") == llm.NotFinancialResponse {
		c.logger.Info("llm.analyze.not_financial",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, llm.ErrNotFinancial
	}

	rawContent := []byte(content)
	if err := llm.ValidateAnalysisJSON(rawContent); err != nil {
		c.logger.Error("llm.analyze.schema_validation_failed",
			"req_id", rid, "error", err, "content", content,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var out llm.DocumentAnalysis
	if err := json.Unmarshal(rawContent, &out); err != nil {
		c.logger.Error("llm.analyze.unmarshal_failed", "req_id", rid, "error", err)
		return nil, fmt.Errorf("unmarshal analysis: %w", err)
	}

	c.logger.Info("llm.analyze.ok",
		"req_id", rid,
		"document_type", out.DocumentType,
		"key_details", len(out.KeyDetails),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &out, nil
}
