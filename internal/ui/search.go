package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/resume-matcher/internal/logging"
	"github.com/jonathan/resume-matcher/internal/matchapi"
	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
)

// Searcher fetches job listings for a query.
type Searcher interface {
	SearchJobs(ctx context.Context, query string) ([]types.Listing, error)
}

// SearchState is a point-in-time copy of a JobSearch.
type SearchState struct {
	Query    string
	Listings []types.Listing
	Status   Status
	Notice   Notice
}

// Busy reports whether the search control must be disabled.
func (s SearchState) Busy() bool {
	return s.Status.Busy()
}

// JobSearch is the job search unit: a query, the last listings and a notice.
type JobSearch struct {
	searcher Searcher
	logger   *zap.Logger

	mu       sync.Mutex
	query    string
	listings []types.Listing
	status   Status
	notice   Notice
}

// NewJobSearch creates an idle search unit.
func NewJobSearch(searcher Searcher, logger *zap.Logger) *JobSearch {
	return &JobSearch{
		searcher: searcher,
		logger:   logging.OrNop(logger).Named("job-search"),
	}
}

// Submit runs a search for query and returns the notice to show.
// An empty query is declined with a validation notice and no request.
// A failed request keeps the previous listings.
func (s *JobSearch) Submit(ctx context.Context, query string) (Notice, error) {
	trimmed := strings.TrimSpace(query)

	s.mu.Lock()
	if s.status.Busy() {
		s.mu.Unlock()
		return Notice{}, ErrBusy
	}
	s.query = query
	if trimmed == "" {
		s.notice = Notice{
			Kind:        NoticeValidation,
			Title:       "Enter a search term",
			Description: "Please enter a job title to search for.",
		}
		n := s.notice
		s.mu.Unlock()
		return n, &ValidationError{Field: "query", Message: "query is required"}
	}
	s.status = StatusPending
	s.mu.Unlock()

	listings, err := s.searcher.SearchJobs(ctx, trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.status = StatusSettledError
		if ctx.Err() != nil {
			s.logger.Info("search abandoned", zap.String("query", trimmed), zap.Error(err))
			return s.notice, err
		}
		s.logger.Warn("search failed", zap.String("query", trimmed), zap.Error(err))
		s.notice = failureNotice("Search failed", err)
		return s.notice, err
	}

	s.status = StatusSettledOK
	s.listings = listings
	if len(listings) == 0 {
		s.notice = Notice{
			Kind:        NoticeEmpty,
			Title:       "No jobs found",
			Description: "Try a different search term or check back later.",
		}
	} else {
		s.notice = Notice{
			Kind:        NoticeSuccess,
			Title:       fmt.Sprintf("Found %d job opportunities! 💼", len(listings)),
			Description: "Check out these amazing positions.",
		}
	}
	return s.notice, nil
}

// Snapshot returns a copy of the unit's state.
func (s *JobSearch) Snapshot() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SearchState{
		Query:    s.query,
		Listings: append([]types.Listing(nil), s.listings...),
		Status:   s.status,
		Notice:   s.notice,
	}
}

// DismissNotice clears the current notice.
func (s *JobSearch) DismissNotice() {
	s.mu.Lock()
	s.notice = Notice{}
	s.mu.Unlock()
}

// DismissIf clears the current notice only if it is still shown. A notice set
// after shown was read stays pending. It reports whether a notice was cleared.
func (s *JobSearch) DismissIf(shown Notice) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if shown.IsZero() || s.notice != shown {
		return false
	}
	s.notice = Notice{}
	return true
}

func failureNotice(title string, err error) Notice {
	desc := matchapi.Message(err)
	if desc == "" {
		desc = types.DefaultServiceErrorMessage
	}
	return Notice{Kind: NoticeFailure, Title: title, Description: desc}
}
