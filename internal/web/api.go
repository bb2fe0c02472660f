package web

import (
	"net/http"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/ui"
	"go.uber.org/zap"
)

// JobsResponse is the body of GET /api/jobs.
type JobsResponse struct {
	Jobs []types.Listing `json:"jobs"`
}

// MatchesResponse is the body of POST /api/matches.
type MatchesResponse struct {
	Matches []MatchView `json:"matches"`
}

// MatchView is a match with its display band and apply availability resolved.
type MatchView struct {
	types.Match
	Band     types.ScoreBand `json:"band"`
	CanApply bool            `json:"can_apply"`
}

// handleAPIJobs proxies a search and returns normalized listings.
func (s *Server) handleAPIJobs(w http.ResponseWriter, r *http.Request) {
	unit := ui.NewJobSearch(s.upstream, s.logger)
	if _, err := unit.Submit(r.Context(), r.URL.Query().Get("query")); err != nil {
		s.apiError(w, "search", err)
		return
	}

	listings := unit.Snapshot().Listings
	if listings == nil {
		listings = []types.Listing{}
	}
	s.jsonResponse(w, http.StatusOK, JobsResponse{Jobs: listings})
}

// handleAPIMatches proxies a resume analysis and returns normalized matches.
func (s *Server) handleAPIMatches(w http.ResponseWriter, r *http.Request) {
	query, resume, err := s.readUpload(w, r)
	if err != nil {
		s.apiError(w, "match", err)
		return
	}

	unit := ui.NewResumeMatch(s.upstream, s.logger)
	if _, err := unit.Submit(r.Context(), query, resume); err != nil {
		s.apiError(w, "match", err)
		return
	}

	matches := unit.Snapshot().Matches
	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, MatchView{Match: m, Band: m.Band(), CanApply: m.CanApply()})
	}
	s.jsonResponse(w, http.StatusOK, MatchesResponse{Matches: views})
}

func (s *Server) apiError(w http.ResponseWriter, op string, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Warn("api request failed", zap.String("op", op), zap.Int("status", status), zap.Error(err))
	}
	s.errorResponse(w, status, userMessage(err))
}
