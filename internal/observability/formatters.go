// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// defaultMaxItems is the default number of items to display in lists
	defaultMaxItems = 10
)

// Printer handles formatted output for the CLI
type Printer struct {
	out      io.Writer
	maxItems int
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, maxItems: defaultMaxItems}
}

// WithMaxItems limits how many listings or matches are printed; n <= 0 prints all.
func (p *Printer) WithMaxItems(n int) *Printer {
	p.maxItems = n
	return p
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func (p *Printer) shown(total int) int {
	if p.maxItems <= 0 {
		return total
	}
	return min(total, p.maxItems)
}

func writeListing(sb *strings.Builder, l types.Listing) {
	sb.WriteString(fmt.Sprintf("    %s\n", l.Company))
	if l.HasLocation() {
		sb.WriteString(fmt.Sprintf("    📍 %s\n", l.Location))
	}
	if l.CanApply() {
		sb.WriteString(fmt.Sprintf("    Apply: %s\n", l.ApplyLink))
	} else {
		sb.WriteString("    Application link not available\n")
	}
}

// PrintListings outputs job search results.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintListings(query string, listings []types.Listing) {
	if len(listings) == 0 {
		p.printBox("NO JOBS FOUND", fmt.Sprintf("No listings for %q.\nTry a different search term or check back later.", query))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d jobs found for %q\n\n", len(listings), query))

	count := p.shown(len(listings))
	for i := 0; i < count; i++ {
		l := listings[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, l.Title))
		writeListing(&sb, l)
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(listings) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(listings)-count))
	}

	p.printBox("AVAILABLE OPPORTUNITIES", strings.TrimSuffix(sb.String(), "\n"))
}

// bandMarker is the terminal stand-in for the colored score badge.
func bandMarker(b types.ScoreBand) string {
	switch b {
	case types.BandHigh:
		return "●●●"
	case types.BandMedium:
		return "●● "
	default:
		return "●  "
	}
}

// PrintMatches outputs scored resume matches with their bands.
func (p *Printer) PrintMatches(query string, matches []types.Match) {
	if len(matches) == 0 {
		p.printBox("NO MATCHES FOUND", fmt.Sprintf("No matches for %q.\nTry a different job title or update your resume.", query))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d matches for %q\n\n", len(matches), query))

	count := p.shown(len(matches))
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, m.Title))
		sb.WriteString(fmt.Sprintf("    %s %s%% Match (%s)\n", bandMarker(m.Band()), m.ScoreLabel(), m.Band()))
		writeListing(&sb, m.Listing)
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more matches", len(matches)-count))
	}

	p.printBox("PERFECT JOB MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFailure outputs a failed action with its user-facing explanation.
func (p *Printer) PrintFailure(title, detail string) {
	p.printBox(strings.ToUpper(title), "⚠ "+detail)
}
