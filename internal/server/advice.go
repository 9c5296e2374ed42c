package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

// handleAsk forwards a free-text finance question to the advisor model.
// Off-topic queries come back as the model's fixed refusal sentence inside a
// normal 200 response; that contract is enforced by the prompt, not here.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserQuery string `json:"user_query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.UserQuery) == "" {
		writeError(w, http.StatusBadRequest, "No query provided.")
		return
	}

	answer, err := s.deps.Advisor.Ask(r.Context(), req.UserQuery)
	if err != nil {
		s.log.Error("ask.advisor_error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate a response")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": answer})
}

// handleVideos searches the external video API for a question.
func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "No query provided.")
		return
	}

	links, err := s.deps.Videos.Search(r.Context(), req.Question)
	if err != nil {
		s.log.Error("videos.search_error", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch videos.")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"videos": links})
}
