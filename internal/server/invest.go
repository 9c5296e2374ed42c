package server

import (
	"encoding/json"
	"net/http"
)

// investmentOptionsRequest uses pointer fields so that absent and present
// values are distinguishable; every field is required at this boundary.
// Amount is validated for presence but deliberately unused by the matcher.
type investmentOptionsRequest struct {
	Age            *int     `json:"age"`
	Horizon        *string  `json:"horizon"`
	Period         *int     `json:"period"`
	InvestmentType *string  `json:"investment_type"`
	Amount         *float64 `json:"amount"`
}

func (s *Server) handleInvestmentOptions(w http.ResponseWriter, r *http.Request) {
	var req investmentOptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Age == nil || req.Horizon == nil || req.Period == nil || req.InvestmentType == nil || req.Amount == nil {
		s.log.Warn("invest.missing_fields")
		writeError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	recommendations := s.deps.Catalog.Recommend(*req.Age, *req.Horizon, *req.Period, *req.InvestmentType)
	s.log.Debug("invest.recommended", "count", len(recommendations))
	writeJSON(w, http.StatusOK, map[string][]string{"recommended_investments": recommendations})
}
