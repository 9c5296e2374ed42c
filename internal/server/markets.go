package server

import (
	"errors"
	"net/http"

	"finadvisor/internal/scrape"
)

// Scrape endpoints share one failure contract: upstream or markup failures
// become the {"error": ...} envelope with a 500; results are fetched fresh on
// every request.

func (s *Server) handleMutualFunds(w http.ResponseWriter, r *http.Request) {
	funds, err := s.deps.MutualFunds.Fetch(r.Context())
	if err != nil {
		s.scrapeError(w, "mutual funds", err)
		return
	}
	writeJSON(w, http.StatusOK, funds)
}

func (s *Server) handleLICPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := s.deps.LIC.Fetch(r.Context())
	if err != nil {
		s.scrapeError(w, "LIC policies", err)
		return
	}
	writeJSON(w, http.StatusOK, policies)
}

func (s *Server) handlePostOfficePolicies(w http.ResponseWriter, r *http.Request) {
	schemes, err := s.deps.PostOffice.Fetch(r.Context())
	if err != nil {
		s.scrapeError(w, "post office schemes", err)
		return
	}
	writeJSON(w, http.StatusOK, schemes)
}

func (s *Server) handleGoldPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := s.deps.GoldPrices.Fetch(r.Context())
	if err != nil {
		s.scrapeError(w, "gold prices", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": prices})
}

func (s *Server) handleCityGoldRates(w http.ResponseWriter, r *http.Request) {
	rates, err := s.deps.CityGoldRates.Fetch(r.Context())
	if err != nil {
		s.scrapeError(w, "city gold rates", err)
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

func (s *Server) scrapeError(w http.ResponseWriter, source string, err error) {
	if errors.Is(err, scrape.ErrMarkupChanged) {
		// Zero matches because the site changed, not because the listing is
		// empty. Surfaced distinctly so monitoring can tell the two apart.
		s.log.Error("scrape.markup_changed", "source", source, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve data: "+source+" page structure changed")
		return
	}
	s.log.Error("scrape.failed", "source", source, "error", err)
	writeError(w, http.StatusInternalServerError, "Failed to retrieve data")
}
