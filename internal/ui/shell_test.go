package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShell_DefaultsToAnalyzer(t *testing.T) {
	shell := NewShell(NewJobSearch(&fakeSearcher{}, nil), NewResumeMatch(&fakeMatcher{}, nil))
	assert.Equal(t, TabAnalyzer, shell.ActiveTab())

	tabs := shell.Tabs()
	require.Len(t, tabs, 2)
	assert.Equal(t, "Resume Analyzer", tabs[0].Label)
	assert.True(t, tabs[0].Active)
	assert.False(t, tabs[1].Active)
}

func TestShell_SelectTab(t *testing.T) {
	shell := NewShell(NewJobSearch(&fakeSearcher{}, nil), NewResumeMatch(&fakeMatcher{}, nil))

	require.NoError(t, shell.SelectTab("search"))
	assert.Equal(t, TabSearch, shell.ActiveTab())
	assert.True(t, shell.Tabs()[1].Active)

	assert.ErrorIs(t, shell.SelectTab("settings"), ErrUnknownTab)
	assert.Equal(t, TabSearch, shell.ActiveTab())
}

func TestShell_SwitchingTabsKeepsUnitState(t *testing.T) {
	search := NewJobSearch(&fakeSearcher{listings: sampleListings(2)}, nil)
	match := NewResumeMatch(&fakeMatcher{}, nil)
	shell := NewShell(search, match)

	_, err := shell.Match.SelectFile(pdfResume("cv.pdf"))
	require.NoError(t, err)
	require.NoError(t, shell.SelectTab("search"))
	_, err = shell.Search.Submit(context.Background(), "engineer")
	require.NoError(t, err)

	require.NoError(t, shell.SelectTab("analyzer"))
	require.NoError(t, shell.SelectTab("search"))

	assert.Len(t, shell.Search.Snapshot().Listings, 2)
	assert.Equal(t, "engineer", shell.Search.Snapshot().Query)
	assert.Equal(t, "cv.pdf", shell.Match.Snapshot().ResumeName())
}
