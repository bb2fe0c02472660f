package ui

import "sync"

// Tab identifies one of the page's two functional units.
type Tab string

const (
	TabAnalyzer Tab = "analyzer"
	TabSearch   Tab = "search"
)

// DefaultTab is shown when no tab has been chosen.
const DefaultTab = TabAnalyzer

// TabInfo describes a tab for rendering.
type TabInfo struct {
	ID     Tab
	Label  string
	Active bool
}

var tabLabels = []TabInfo{
	{ID: TabAnalyzer, Label: "Resume Analyzer"},
	{ID: TabSearch, Label: "Job Search"},
}

// ParseTab returns the tab named by s.
func ParseTab(s string) (Tab, bool) {
	switch Tab(s) {
	case TabAnalyzer, TabSearch:
		return Tab(s), true
	default:
		return "", false
	}
}

// Shell composes the two functional units behind a tab selector.
// Switching tabs never touches either unit's state.
type Shell struct {
	Search *JobSearch
	Match  *ResumeMatch

	mu     sync.Mutex
	active Tab
}

// NewShell creates a shell showing the default tab.
func NewShell(search *JobSearch, match *ResumeMatch) *Shell {
	return &Shell{
		Search: search,
		Match:  match,
		active: DefaultTab,
	}
}

// SelectTab switches the visible unit. Unknown tabs are rejected.
func (s *Shell) SelectTab(name string) error {
	tab, ok := ParseTab(name)
	if !ok {
		return ErrUnknownTab
	}
	s.mu.Lock()
	s.active = tab
	s.mu.Unlock()
	return nil
}

// ActiveTab returns the visible tab.
func (s *Shell) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Tabs lists the tabs in display order, marking the active one.
func (s *Shell) Tabs() []TabInfo {
	active := s.ActiveTab()
	tabs := make([]TabInfo, len(tabLabels))
	for i, t := range tabLabels {
		t.Active = t.ID == active
		tabs[i] = t
	}
	return tabs
}
