// Package types provides the job listing and match records shown by the resume matcher.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strconv"

// NoLinkSentinel is the literal the matching service emits in place of an apply link.
const NoLinkSentinel = "No link available"

// Placeholder text for fields the external service left empty.
const (
	PlaceholderTitle       = "No title available"
	PlaceholderCompany     = "Company not specified"
	PlaceholderDescription = "No description available"
)

// Listing represents a single job posting returned by the search service
type Listing struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description"`
	ApplyLink   string `json:"apply_link,omitempty"`
}

// HasLocation reports whether a location should be displayed.
func (l Listing) HasLocation() bool {
	return l.Location != ""
}

// CanApply reports whether the listing carries a usable application link.
// A link that is missing, equal to NoLinkSentinel, or not an http(s) URL is unusable.
func (l Listing) CanApply() bool {
	return ApplyLinkAvailable(l.ApplyLink)
}

// Match represents a listing annotated with a 0-100 compatibility score
type Match struct {
	Listing
	Score float64 `json:"score"`
}

// Band returns the display band for the match score.
func (m Match) Band() ScoreBand {
	return BandFor(m.Score)
}

// ScoreLabel returns the score unrounded for display; Band reads the same value.
func (m Match) ScoreLabel() string {
	return strconv.FormatFloat(m.Score, 'f', -1, 64)
}

// ScoreBand is the color band a match score falls into
type ScoreBand string

const (
	// BandHigh covers scores of 80 and above.
	BandHigh ScoreBand = "high"
	// BandMedium covers scores from 60 up to (excluding) 80.
	BandMedium ScoreBand = "medium"
	// BandLow covers scores below 60.
	BandLow ScoreBand = "low"
)

// Score thresholds are inclusive lower bounds.
const (
	HighScoreThreshold   = 80
	MediumScoreThreshold = 60
)

// BandFor maps a score to its display band.
func BandFor(score float64) ScoreBand {
	switch {
	case score >= HighScoreThreshold:
		return BandHigh
	case score >= MediumScoreThreshold:
		return BandMedium
	default:
		return BandLow
	}
}

// CSSClass returns the stylesheet class used to color the score badge.
func (b ScoreBand) CSSClass() string {
	return "score-" + string(b)
}
