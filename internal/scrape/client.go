// Package scrape extracts structured records from third-party financial
// websites. Each site lives behind a narrow fetcher whose parsing is a pure
// function over the fetched HTML, so markup breakage stays localized.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html"

	"finadvisor/internal/common"
)

// Sites block non-browser agents, so every fetch carries a browser-like UA.
const userAgent = "Mozilla/5.0"

// ErrMarkupChanged reports that the expected structural nodes were absent from
// the fetched page. It distinguishes "the site changed its markup" from a page
// that is present but genuinely lists nothing.
var ErrMarkupChanged = errors.New("expected page structure not found")

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// fetchDocument issues a single GET with a browser-like user agent and parses
// the response body. A non-2xx status is an error; parse errors propagate.
func fetchDocument(ctx context.Context, client *http.Client, url string, logger *slog.Logger) (*html.Node, error) {
	if logger == nil {
		logger = slog.Default()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		logger.Error("scrape.fetch_error", "url", url, "error", err)
		return nil, common.WrapError(err, "fetch "+url)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		logger.Warn("scrape.bad_status", "url", url, "status", resp.StatusCode)
		return nil, fmt.Errorf("fetch %s: status %d: %w", url, resp.StatusCode, common.ErrUpstream)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	logger.Debug("scrape.fetched",
		"url", url,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return doc, nil
}
