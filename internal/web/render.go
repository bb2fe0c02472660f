package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/jonathan/resume-matcher/internal/ui"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// FooterLink is a static link shown in the page footer.
type FooterLink struct {
	Label string
	URL   string
}

var footerLinks = []FooterLink{
	{Label: "GitHub", URL: "https://github.com/Praiseogooluwa"},
	{Label: "LinkedIn", URL: "https://linkedin.com/in/praise-ogooluwa"},
	{Label: "Twitter", URL: "https://twitter.com"},
}

// pageData is everything the page template reads.
type pageData struct {
	RootClass   string
	IsDark      bool
	Tabs        []ui.TabInfo
	ActiveTab   ui.Tab
	Search      ui.SearchState
	Match       ui.MatchState
	FooterLinks []FooterLink
	Year        int
}

// Notices returns the notices to show on this render, search first.
func (p pageData) Notices() []ui.Notice {
	var notices []ui.Notice
	for _, n := range []ui.Notice{p.Search.Notice, p.Match.Notice} {
		if !n.IsZero() {
			notices = append(notices, n)
		}
	}
	return notices
}

type renderer struct {
	page *template.Template
}

func newRenderer() (*renderer, error) {
	page, err := template.ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &renderer{page: page}, nil
}

// renderPage executes the page into a buffer first so a template error never
// leaves a half-written response.
func (rd *renderer) renderPage(w http.ResponseWriter, status int, data pageData) error {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	if data.FooterLinks == nil {
		data.FooterLinks = footerLinks
	}

	var buf bytes.Buffer
	if err := rd.page.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
