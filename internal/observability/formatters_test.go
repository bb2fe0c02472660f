package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintListings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintListings("go developer", []types.Listing{
		{Title: "Go Developer", Company: "Acme Corp", Location: "Remote", ApplyLink: "https://acme.example/jobs/1"},
		{Title: "Backend Engineer", Company: "Globex", ApplyLink: types.NoLinkSentinel},
	})
	output := buf.String()

	assert.Contains(t, output, "AVAILABLE OPPORTUNITIES")
	assert.Contains(t, output, `2 jobs found for "go developer"`)
	assert.Contains(t, output, "#1  Go Developer")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "📍 Remote")
	assert.Contains(t, output, "Apply: https://acme.example/jobs/1")
	assert.Contains(t, output, "Application link not available")
}

func TestPrintListings_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintListings("astronaut", nil)

	assert.Contains(t, buf.String(), "NO JOBS FOUND")
	assert.Contains(t, buf.String(), `"astronaut"`)
}

func TestPrintListings_Truncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).WithMaxItems(2)

	listings := make([]types.Listing, 5)
	for i := range listings {
		listings[i] = types.Listing{Title: "Engineer", Company: "Acme"}
	}
	p.PrintListings("engineer", listings)

	assert.Contains(t, buf.String(), "... and 3 more jobs")
	assert.NotContains(t, buf.String(), "#3")
}

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatches("analyst", []types.Match{
		{Listing: types.Listing{Title: "Data Analyst", Company: "Initech"}, Score: 80},
		{Listing: types.Listing{Title: "BI Analyst", Company: "Globex"}, Score: 79},
		{Listing: types.Listing{Title: "Intern", Company: "Hooli"}, Score: 59},
		{Listing: types.Listing{Title: "Data Engineer", Company: "Hooli"}, Score: 79.6},
	})
	output := buf.String()

	assert.Contains(t, output, "PERFECT JOB MATCHES")
	assert.Contains(t, output, "80% Match (high)")
	assert.Contains(t, output, "79% Match (medium)")
	assert.Contains(t, output, "59% Match (low)")
	assert.Contains(t, output, "79.6% Match (medium)")
}

func TestPrintMatches_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatches("analyst", []types.Match{})

	assert.Contains(t, buf.String(), "NO MATCHES FOUND")
	assert.Contains(t, buf.String(), "update your resume")
}

func TestPrintFailure(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFailure("Search failed", "Server responded with 503")

	assert.Contains(t, buf.String(), "SEARCH FAILED")
	assert.Contains(t, buf.String(), "Server responded with 503")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}
