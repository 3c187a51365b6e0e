package session

// OpenTab opens a new tab rooted at path and makes it active, per §4.G
// "Tab manager".
func (s *Session) OpenTab(path string) {
	s.tabs = append(s.tabs, NewTab(path))
	s.activeTab = len(s.tabs) - 1
}

// CloseTab closes the active tab. The last remaining tab cannot be
// closed. The active index is kept, so the tab that followed the
// closed one becomes active; closing the last tab activates the new
// last tab.
func (s *Session) CloseTab() bool {
	if len(s.tabs) <= 1 {
		return false
	}
	idx := s.activeTab
	s.tabs = append(s.tabs[:idx], s.tabs[idx+1:]...)
	if s.activeTab >= len(s.tabs) {
		s.activeTab = len(s.tabs) - 1
	}
	return true
}

// NextTab and PrevTab cycle the active tab index.
func (s *Session) NextTab() {
	if len(s.tabs) == 0 {
		return
	}
	s.activeTab = (s.activeTab + 1) % len(s.tabs)
}

func (s *Session) PrevTab() {
	if len(s.tabs) == 0 {
		return
	}
	s.activeTab = (s.activeTab - 1 + len(s.tabs)) % len(s.tabs)
}

// SwitchTab activates the tab at idx, if valid.
func (s *Session) SwitchTab(idx int) bool {
	if idx < 0 || idx >= len(s.tabs) {
		return false
	}
	s.activeTab = idx
	return true
}

func (s *Session) activeTabPtr() *Tab {
	return s.tabs[s.activeTab]
}

// ActiveTab exposes the active tab for read-only rendering use.
func (s *Session) ActiveTab() *Tab {
	return s.activeTabPtr()
}

// TabCount reports how many tabs are open.
func (s *Session) TabCount() int {
	return len(s.tabs)
}

// ActiveTabIndex reports which tab is active, for tab-bar rendering.
func (s *Session) ActiveTabIndex() int {
	return s.activeTab
}
