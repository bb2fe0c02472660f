package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/resume-matcher/internal/logging"
	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
)

// PDFContentType is the only resume format the matching service accepts.
const PDFContentType = "application/pdf"

// Matcher scores job matches for a resume and query.
type Matcher interface {
	MatchJobs(ctx context.Context, query string, resume *types.ResumeFile) ([]types.Match, error)
}

// MatchState is a point-in-time copy of a ResumeMatch.
type MatchState struct {
	Query   string
	Resume  *types.ResumeFile
	Matches []types.Match
	Status  Status
	Notice  Notice
}

// Busy reports whether the analyze control must be disabled.
func (s MatchState) Busy() bool {
	return s.Status.Busy()
}

// ResumeName returns the selected file's name, or "" when none is selected.
func (s MatchState) ResumeName() string {
	if s.Resume == nil {
		return ""
	}
	return s.Resume.Name
}

// ResumeMatch is the resume match unit: a query, a selected resume, the last matches and a notice.
type ResumeMatch struct {
	matcher Matcher
	logger  *zap.Logger

	mu      sync.Mutex
	query   string
	resume  *types.ResumeFile
	matches []types.Match
	status  Status
	notice  Notice
}

// NewResumeMatch creates an idle match unit.
func NewResumeMatch(matcher Matcher, logger *zap.Logger) *ResumeMatch {
	return &ResumeMatch{
		matcher: matcher,
		logger:  logging.OrNop(logger).Named("resume-match"),
	}
}

// SelectFile stores file as the resume to analyze. Files that are empty or
// not PDFs are rejected and the previous selection is kept.
func (m *ResumeMatch) SelectFile(file *types.ResumeFile) (Notice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status.Busy() {
		return Notice{}, ErrBusy
	}
	return m.selectLocked(file)
}

func (m *ResumeMatch) selectLocked(file *types.ResumeFile) (Notice, error) {
	if file == nil || len(file.Data) == 0 {
		m.notice = Notice{
			Kind:        NoticeValidation,
			Title:       "Empty file",
			Description: "The selected resume has no content.",
		}
		return m.notice, &ValidationError{Field: "file", Message: "file is empty"}
	}

	detected := mimetype.Detect(file.Data)
	if !detected.Is(PDFContentType) {
		m.logger.Info("rejected resume upload",
			zap.String("name", file.Name),
			zap.String("detected", detected.String()))
		m.notice = Notice{
			Kind:        NoticeValidation,
			Title:       "Unsupported file",
			Description: "Please upload your resume as a PDF.",
		}
		return m.notice, &ValidationError{Field: "file", Message: fmt.Sprintf("expected PDF, got %s", detected.String())}
	}

	m.resume = &types.ResumeFile{
		Name:        file.Name,
		ContentType: PDFContentType,
		Data:        file.Data,
	}
	m.notice = Notice{
		Kind:        NoticeSuccess,
		Title:       "Resume uploaded! 📄",
		Description: "Ready to analyze your perfect job matches.",
	}
	return m.notice, nil
}

// Submit analyzes the selected resume against query. A non-nil file replaces
// the selection first. Both a resume and a non-empty query are required.
// A failed request keeps the previous matches.
func (m *ResumeMatch) Submit(ctx context.Context, query string, file *types.ResumeFile) (Notice, error) {
	trimmed := strings.TrimSpace(query)

	m.mu.Lock()
	if m.status.Busy() {
		m.mu.Unlock()
		return Notice{}, ErrBusy
	}
	m.query = query
	if file != nil {
		if n, err := m.selectLocked(file); err != nil {
			m.mu.Unlock()
			return n, err
		}
	}
	if m.resume == nil || trimmed == "" {
		m.notice = Notice{
			Kind:        NoticeValidation,
			Title:       "Missing information",
			Description: "Please upload a resume and enter a job title.",
		}
		field := "query"
		if m.resume == nil {
			field = "file"
		}
		n := m.notice
		m.mu.Unlock()
		return n, &ValidationError{Field: field, Message: "resume and query are required"}
	}
	resume := m.resume
	m.status = StatusPending
	m.mu.Unlock()

	matches, err := m.matcher.MatchJobs(ctx, trimmed, resume)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.status = StatusSettledError
		if ctx.Err() != nil {
			m.logger.Info("analysis abandoned", zap.String("query", trimmed), zap.Error(err))
			return m.notice, err
		}
		m.logger.Warn("analysis failed",
			zap.String("query", trimmed),
			zap.Stringer("resume", resume),
			zap.Error(err))
		m.notice = failureNotice("Analysis failed", err)
		return m.notice, err
	}

	m.status = StatusSettledOK
	m.matches = matches
	if len(matches) == 0 {
		m.notice = Notice{
			Kind:        NoticeEmpty,
			Title:       "No matches found",
			Description: "Try a different job title or update your resume.",
		}
	} else {
		m.notice = Notice{
			Kind:        NoticeSuccess,
			Title:       fmt.Sprintf("Found %d perfect matches! 🎯", len(matches)),
			Description: "Your resume analysis is complete.",
		}
	}
	return m.notice, nil
}

// Snapshot returns a copy of the unit's state.
func (m *ResumeMatch) Snapshot() MatchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MatchState{
		Query:   m.query,
		Resume:  m.resume,
		Matches: append([]types.Match(nil), m.matches...),
		Status:  m.status,
		Notice:  m.notice,
	}
}

// DismissNotice clears the current notice.
func (m *ResumeMatch) DismissNotice() {
	m.mu.Lock()
	m.notice = Notice{}
	m.mu.Unlock()
}

// DismissIf clears the current notice only if it is still shown. A notice set
// after shown was read stays pending. It reports whether a notice was cleared.
func (m *ResumeMatch) DismissIf(shown Notice) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if shown.IsZero() || m.notice != shown {
		return false
	}
	m.notice = Notice{}
	return true
}
