// Package videos wraps the external video-search API used to surface
// educational finance videos.
package videos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"finadvisor/internal/common"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

// Config for the video-search client.
type Config struct {
	APIKey     string
	BaseURL    string // search endpoint, e.g. https://www.googleapis.com/youtube/v3/search
	MaxResults int    // default 5
	Timeout    time.Duration
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
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

// Search queries the video API for the question and returns watch URLs in
// response order, capped at MaxResults.
func (c *Client) Search(ctx context.Context, question string) ([]string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", question)
	params.Set("key", c.cfg.APIKey)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(c.cfg.MaxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("videos.search.send_error", "error", err)
		return nil, fmt.Errorf("video search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("video search: read body: %w", err)
	}

	c.logger.Debug("videos.search.response",
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	var payload struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
		} `json:"items"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("video search: decode: %w", err)
	}
	if payload.Error != nil {
		c.logger.Error("videos.search.api_error", "message", payload.Error.Message)
		return nil, fmt.Errorf("video API error: %s: %w", payload.Error.Message, common.ErrUpstream)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("video search: status %d: %w", resp.StatusCode, common.ErrUpstream)
	}

	links := make([]string, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.ID.VideoID == "" {
			continue
		}
		links = append(links, watchURLPrefix+item.ID.VideoID)
		if len(links) == c.cfg.MaxResults {
			break
		}
	}
	return links, nil
}
