// Package server exposes the HTTP surface: advice, video search, investment
// recommendations, the scrape endpoints and document upload.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"finadvisor/internal/invest"
	"finadvisor/internal/llm"
	"finadvisor/internal/ocr"
	"finadvisor/internal/scrape"
)

// VideoSearcher finds educational video links for a question.
type VideoSearcher interface {
	Search(ctx context.Context, question string) ([]string, error)
}

// TextExtractor converts an uploaded file into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (ocr.Result, error)
}

// Site fetcher contracts, one per scraped source.
type (
	MutualFundsSource interface {
		Fetch(ctx context.Context) ([]scrape.Fund, error)
	}
	LICSource interface {
		Fetch(ctx context.Context) (map[string][]scrape.Policy, error)
	}
	PostOfficeSource interface {
		Fetch(ctx context.Context) (map[string][]scrape.Scheme, error)
	}
	GoldPricesSource interface {
		Fetch(ctx context.Context) (map[string][]scrape.GoldPrice, error)
	}
	CityGoldRatesSource interface {
		Fetch(ctx context.Context) ([]scrape.CityGoldRate, error)
	}
)

// Deps bundles everything the server needs.
type Deps struct {
	Logger    *slog.Logger
	Catalog   *invest.Catalog
	Advisor   llm.Advisor
	Analyzer  llm.DocumentAnalyzer
	Videos    VideoSearcher
	Extractor TextExtractor

	MutualFunds   MutualFundsSource
	LIC           LICSource
	PostOffice    PostOfficeSource
	GoldPrices    GoldPricesSource
	CityGoldRates CityGoldRatesSource

	UploadDir      string
	MaxBodySize    int64
	FrontendOrigin string
}

type Server struct {
	deps Deps
	log  *slog.Logger
}

func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.MaxBodySize <= 0 {
		deps.MaxBodySize = 20 << 20
	}
	return &Server{deps: deps, log: deps.Logger}
}

// Handler builds the route table with CORS and request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("POST /get_videos", s.handleVideos)
	mux.HandleFunc("POST /get_investment_options", s.handleInvestmentOptions)
	mux.HandleFunc("GET /get-mutual-funds", s.handleMutualFunds)
	mux.HandleFunc("GET /lic_policies", s.handleLICPolicies)
	mux.HandleFunc("GET /post_office_policies", s.handlePostOfficePolicies)
	mux.HandleFunc("GET /gold_prices", s.handleGoldPrices)
	mux.HandleFunc("GET /get_gold_rates", s.handleCityGoldRates)
	mux.HandleFunc("POST /upload_file", s.handleUpload)

	return s.withCORS(s.withRequestLog(mux))
}

// withCORS permits the configured frontend origin and answers preflight.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && origin == s.deps.FrontendOrigin {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("http.encode_response_error", "error", err)
	}
}

// writeError emits the unified error envelope: {"error": message}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
