package web

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/ui"
	"go.uber.org/zap"
)

// handlePage renders the page shell. Notices are shown once: each rendered notice is
// cleared afterwards unless a newer one replaced it meanwhile.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.resolve(w, r)
	status := http.StatusOK

	if tab := r.URL.Query().Get("tab"); tab != "" {
		if err := sess.shell.SelectTab(tab); err != nil {
			s.logger.Debug("ignoring unknown tab", zap.String("tab", tab))
			status = HTTPStatus(err)
		}
	}

	theme := s.themeToggle(w, r)
	data := pageData{
		RootClass: theme.RootClass(),
		IsDark:    theme.IsDark(),
		Tabs:      sess.shell.Tabs(),
		ActiveTab: sess.shell.ActiveTab(),
		Search:    sess.shell.Search.Snapshot(),
		Match:     sess.shell.Match.Snapshot(),
	}

	if err := s.renderer.renderPage(w, status, data); err != nil {
		s.logger.Error("failed to render page", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	sess.shell.Search.DismissIf(data.Search.Notice)
	sess.shell.Match.DismissIf(data.Match.Notice)
}

// handleSearch submits the search form and redirects back to the page.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.resolve(w, r)
	_ = sess.shell.SelectTab(string(ui.TabSearch))

	if err := r.ParseForm(); err != nil {
		s.logger.Warn("invalid search form", zap.Error(err))
	}

	if _, err := sess.shell.Search.Submit(r.Context(), r.FormValue("query")); err != nil {
		s.logSubmitError("search", err)
	}
	redirectToTab(w, r, ui.TabSearch)
}

// handleAnalyze submits the resume form and redirects back to the page.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.resolve(w, r)
	_ = sess.shell.SelectTab(string(ui.TabAnalyzer))

	query, resume, err := s.readUpload(w, r)
	if err != nil {
		var tooLarge *ErrUploadTooLarge
		if errors.As(err, &tooLarge) {
			s.logger.Warn("resume upload rejected", zap.Error(err))
			http.Error(w, "Resume is too large.", http.StatusRequestEntityTooLarge)
			return
		}
		s.logger.Warn("invalid analyze form", zap.Error(err))
	}

	if _, err := sess.shell.Match.Submit(r.Context(), query, resume); err != nil {
		s.logSubmitError("analyze", err)
	}
	redirectToTab(w, r, ui.TabAnalyzer)
}

// handleTheme flips the persisted theme.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.themeToggle(w, r).Toggle()
	if err != nil {
		s.logger.Error("failed to toggle theme", zap.Error(err))
		http.Error(w, "failed to toggle theme", http.StatusInternalServerError)
		return
	}
	s.logger.Debug("theme toggled", zap.String("theme", string(theme)))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDismiss clears both units' notices.
func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.resolve(w, r)
	sess.shell.Search.DismissNotice()
	sess.shell.Match.DismissNotice()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) logSubmitError(op string, err error) {
	var validationErr *ui.ValidationError
	switch {
	case errors.As(err, &validationErr):
		s.logger.Debug("submission declined", zap.String("op", op), zap.Error(err))
	case errors.Is(err, ui.ErrBusy):
		s.logger.Info("submission rejected while pending", zap.String("op", op))
	default:
		s.logger.Warn("submission failed", zap.String("op", op), zap.Error(err))
	}
}

func redirectToTab(w http.ResponseWriter, r *http.Request, tab ui.Tab) {
	http.Redirect(w, r, "/?tab="+url.QueryEscape(string(tab)), http.StatusSeeOther)
}

// readUpload parses the multipart "query" and "file" fields. A missing file
// yields a nil resume; the caller decides whether that is acceptable.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, *types.ResumeFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, &ErrUploadTooLarge{Limit: s.maxUpload}
		}
		return "", nil, &ui.ValidationError{Field: "file", Message: "invalid multipart form: " + err.Error()}
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			s.logger.Warn("failed to remove multipart temp files", zap.Error(err))
		}
	}()

	query := r.FormValue("query")

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return query, nil, nil
	}
	if err != nil {
		return query, nil, &ui.ValidationError{Field: "file", Message: err.Error()}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return query, nil, &ui.ValidationError{Field: "file", Message: "failed to read upload: " + err.Error()}
	}

	// An empty file input still submits a part with no filename
	if header.Filename == "" && len(data) == 0 {
		return query, nil, nil
	}

	return query, &types.ResumeFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
