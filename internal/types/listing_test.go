//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandFor_Boundaries(t *testing.T) {
	tests := []struct {
		score    float64
		expected ScoreBand
	}{
		{100, BandHigh},
		{80, BandHigh},
		{79.99, BandMedium},
		{79, BandMedium},
		{60, BandMedium},
		{59.5, BandLow},
		{59, BandLow},
		{0, BandLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, BandFor(tt.score), "score %v", tt.score)
	}
}

func TestScoreBand_CSSClass(t *testing.T) {
	assert.Equal(t, "score-high", BandHigh.CSSClass())
	assert.Equal(t, "score-medium", BandMedium.CSSClass())
	assert.Equal(t, "score-low", BandLow.CSSClass())
}

func TestMatch_ScoreLabel(t *testing.T) {
	tests := []struct {
		score     float64
		wantLabel string
		wantBand  ScoreBand
	}{
		{79.6, "79.6", BandMedium},
		{79.99, "79.99", BandMedium},
		{80, "80", BandHigh},
		{92.5, "92.5", BandHigh},
		{0, "0", BandLow},
	}

	for _, tt := range tests {
		m := Match{Score: tt.score}
		assert.Equal(t, tt.wantLabel, m.ScoreLabel())
		assert.Equal(t, tt.wantBand, m.Band())
	}
}

func TestApplyLinkAvailable(t *testing.T) {
	tests := []struct {
		name string
		link string
		want bool
	}{
		{"https link", "https://example.com/jobs/1", true},
		{"http link", "http://example.com/apply?id=2", true},
		{"empty", "", false},
		{"whitespace", "   ", false},
		{"sentinel", NoLinkSentinel, false},
		{"sentinel with padding", "  No link available ", false},
		{"relative path", "/jobs/1", false},
		{"javascript scheme", "javascript:alert(1)", false},
		{"plain text", "apply on site", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyLinkAvailable(tt.link))
		})
	}
}

func TestListing_CanApply_SentinelMatchesMissing(t *testing.T) {
	missing := Listing{Title: "Engineer"}
	sentinel := Listing{Title: "Engineer", ApplyLink: NoLinkSentinel}

	assert.False(t, missing.CanApply())
	assert.Equal(t, missing.CanApply(), sentinel.CanApply())
}

func TestNormalizeListing_Defaults(t *testing.T) {
	listing := NormalizeListing(RawListing{})

	assert.Equal(t, PlaceholderTitle, listing.Title)
	assert.Equal(t, PlaceholderCompany, listing.Company)
	assert.Equal(t, PlaceholderDescription, listing.Description)
	assert.Empty(t, listing.Location)
	assert.Empty(t, listing.ApplyLink)
	assert.False(t, listing.HasLocation())
	assert.False(t, listing.CanApply())
}

func TestNormalizeListing_CleansMarkup(t *testing.T) {
	var raw RawListing
	err := json.Unmarshal([]byte(`{
		"title": "  Backend Engineer ",
		"company": "Acme &amp; Co",
		"location": "Lagos",
		"description": "<p>Build <b>APIs</b>\n\n   in Go</p>",
		"apply_link": " https://acme.example/apply "
	}`), &raw)
	require.NoError(t, err)

	listing := NormalizeListing(raw)
	assert.Equal(t, "Backend Engineer", listing.Title)
	assert.Equal(t, "Acme & Co", listing.Company)
	assert.Equal(t, "Lagos", listing.Location)
	assert.Equal(t, "Build APIs in Go", listing.Description)
	assert.Equal(t, "https://acme.example/apply", listing.ApplyLink)
	assert.True(t, listing.CanApply())
}

func TestNormalizeListings_NilIsEmpty(t *testing.T) {
	listings := NormalizeListings(nil)
	require.NotNil(t, listings)
	assert.Empty(t, listings)

	matches := NormalizeMatches(nil)
	require.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{`87`, 87},
		{`72.5`, 72.5},
		{`"64"`, 64},
		{`"91%"`, 91},
		{`150`, 100},
		{`-3`, 0},
		{`"high"`, 0},
		{`null`, 0},
		{``, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseScore(json.RawMessage(tt.raw)), "raw %q", tt.raw)
	}
}

func TestNormalizeMatch(t *testing.T) {
	var raw RawMatch
	err := json.Unmarshal([]byte(`{
		"title": "Data Analyst",
		"company": "Globex",
		"description": "SQL and dashboards",
		"score": 80,
		"apply_link": "No link available"
	}`), &raw)
	require.NoError(t, err)

	match := NormalizeMatch(raw)
	assert.Equal(t, "Data Analyst", match.Title)
	assert.Equal(t, float64(80), match.Score)
	assert.Equal(t, BandHigh, match.Band())
	assert.Equal(t, NoLinkSentinel, match.ApplyLink)
	assert.False(t, match.CanApply())
}

func TestResponse_ServiceError(t *testing.T) {
	empty := ""
	blank := "   "
	msg := "  upstream quota exceeded "

	tests := []struct {
		name       string
		envelope   ErrorEnvelope
		wantFailed bool
		wantMsg    string
	}{
		{"absent", ErrorEnvelope{}, false, ""},
		{"empty string", ErrorEnvelope{Error: &empty}, false, ""},
		{"whitespace only", ErrorEnvelope{Error: &blank}, true, DefaultServiceErrorMessage},
		{"message", ErrorEnvelope{Error: &msg}, true, "upstream quota exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFailed, tt.envelope.Failed())
			assert.Equal(t, tt.wantMsg, tt.envelope.ServiceError())
		})
	}
}

func TestResponse_DecodesErrorEnvelope(t *testing.T) {
	var body SearchResponse
	require.NoError(t, json.Unmarshal([]byte(`{"jobs": [], "error": "   "}`), &body))
	assert.True(t, body.Failed())
	assert.Equal(t, DefaultServiceErrorMessage, body.ServiceError())

	var match MatchResponse
	require.NoError(t, json.Unmarshal([]byte(`{"matches": [{"title": "Analyst"}]}`), &match))
	assert.Empty(t, match.ServiceError())
	assert.Len(t, match.Matches, 1)
}

func TestResumeFile_String(t *testing.T) {
	var missing *ResumeFile
	assert.Equal(t, "<no file>", missing.String())
	assert.Equal(t, 0, missing.Size())

	f := &ResumeFile{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}
	assert.Equal(t, "cv.pdf (application/pdf, 8 bytes)", f.String())
	assert.Equal(t, 8, f.Size())
}
