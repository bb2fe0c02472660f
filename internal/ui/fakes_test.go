package ui

import (
	"context"
	"sync"

	"github.com/jonathan/resume-matcher/internal/types"
)

// fakeSearcher records calls and returns canned results.
// When gate is non-nil each call blocks until gate is closed or ctx ends.
type fakeSearcher struct {
	mu       sync.Mutex
	queries  []string
	listings []types.Listing
	err      error
	started  chan struct{}
	gate     chan struct{}
}

func (f *fakeSearcher) SearchJobs(ctx context.Context, query string) ([]types.Listing, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	listings, err, gate, started := f.listings, f.err, f.gate, f.started
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return listings, err
}

func (f *fakeSearcher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func (f *fakeSearcher) set(listings []types.Listing, err error) {
	f.mu.Lock()
	f.listings, f.err = listings, err
	f.mu.Unlock()
}

type matchCall struct {
	query  string
	resume *types.ResumeFile
}

type fakeMatcher struct {
	mu      sync.Mutex
	calls   []matchCall
	matches []types.Match
	err     error
	started chan struct{}
	gate    chan struct{}
}

func (f *fakeMatcher) MatchJobs(ctx context.Context, query string, resume *types.ResumeFile) ([]types.Match, error) {
	f.mu.Lock()
	f.calls = append(f.calls, matchCall{query: query, resume: resume})
	matches, err, gate, started := f.matches, f.err, f.gate, f.started
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return matches, err
}

func (f *fakeMatcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeMatcher) set(matches []types.Match, err error) {
	f.mu.Lock()
	f.matches, f.err = matches, err
	f.mu.Unlock()
}

func pdfResume(name string) *types.ResumeFile {
	return &types.ResumeFile{
		Name: name,
		Data: []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n"),
	}
}

func sampleListings(n int) []types.Listing {
	listings := make([]types.Listing, n)
	for i := range listings {
		listings[i] = types.Listing{
			Title:       "Engineer",
			Company:     "Acme",
			Description: "Build things",
		}
	}
	return listings
}
