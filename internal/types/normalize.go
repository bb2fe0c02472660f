package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RawListing is a listing exactly as the external service sent it.
// Every field is optional; pointers distinguish absent from empty.
type RawListing struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	ApplyLink   *string `json:"apply_link"`
}

// RawMatch is a match exactly as the external service sent it.
// Score may arrive as a number or a numeric string.
type RawMatch struct {
	RawListing
	Score json.RawMessage `json:"score"`
}

// DefaultServiceErrorMessage is shown when the service reports a failure with a blank message.
const DefaultServiceErrorMessage = "Please try again later."

// ErrorEnvelope is the failure report every response body may carry.
// It is decoded on its own so a failure wins over a malformed payload.
type ErrorEnvelope struct {
	Error *string `json:"error"`
}

// Failed reports whether the service flagged the call as failed: any non-empty string counts.
func (e ErrorEnvelope) Failed() bool {
	return e.Error != nil && *e.Error != ""
}

// ServiceError returns the message to show for a failed call, or "" when the call did not fail.
func (e ErrorEnvelope) ServiceError() string {
	if !e.Failed() {
		return ""
	}
	return orDefault(strings.TrimSpace(*e.Error), DefaultServiceErrorMessage)
}

// SearchResponse is the body of GET /get-jobs/.
type SearchResponse struct {
	ErrorEnvelope
	Jobs []RawListing `json:"jobs"`
}

// MatchResponse is the body of POST /match-jobs/.
type MatchResponse struct {
	ErrorEnvelope
	Matches []RawMatch `json:"matches"`
}

// NormalizeListing converts a raw listing into a Listing with every field defaulted.
func NormalizeListing(raw RawListing) Listing {
	return Listing{
		Title:       orDefault(CleanText(derefTrimmed(raw.Title)), PlaceholderTitle),
		Company:     orDefault(CleanText(derefTrimmed(raw.Company)), PlaceholderCompany),
		Location:    CleanText(derefTrimmed(raw.Location)),
		Description: orDefault(CleanText(derefTrimmed(raw.Description)), PlaceholderDescription),
		ApplyLink:   derefTrimmed(raw.ApplyLink),
	}
}

// NormalizeListings normalizes a slice of raw listings; nil yields an empty slice.
func NormalizeListings(raw []RawListing) []Listing {
	listings := make([]Listing, 0, len(raw))
	for _, r := range raw {
		listings = append(listings, NormalizeListing(r))
	}
	return listings
}

// NormalizeMatch converts a raw match into a Match with every field defaulted.
func NormalizeMatch(raw RawMatch) Match {
	return Match{
		Listing: NormalizeListing(raw.RawListing),
		Score:   ParseScore(raw.Score),
	}
}

// NormalizeMatches normalizes a slice of raw matches; nil yields an empty slice.
func NormalizeMatches(raw []RawMatch) []Match {
	matches := make([]Match, 0, len(raw))
	for _, r := range raw {
		matches = append(matches, NormalizeMatch(r))
	}
	return matches
}

// ParseScore reads a score sent as a JSON number or numeric string and clamps it to [0, 100].
// Anything unparseable scores 0.
func ParseScore(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "%")
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0
		}
		value = parsed
	}

	if math.IsNaN(value) {
		return 0
	}
	return math.Max(0, math.Min(100, value))
}

// ApplyLinkAvailable reports whether link can be offered as an apply action.
func ApplyLinkAvailable(link string) bool {
	link = strings.TrimSpace(link)
	if link == "" || link == NoLinkSentinel {
		return false
	}
	return validate.Var(link, "required,http_url") == nil
}

// CleanText strips any markup from s and collapses runs of whitespace.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

func derefTrimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
