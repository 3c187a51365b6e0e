package session

// ToggleMark toggles path's membership in the marked set (§4.G
// "Selection & marking": "space toggles").
func (s *Session) ToggleMark(path string) {
	if s.marked[path] {
		delete(s.marked, path)
	} else {
		s.marked[path] = true
	}
}

// ClearMarks empties the marked set.
func (s *Session) ClearMarks() {
	s.marked = make(map[string]bool)
}

// Marked returns the currently marked paths.
func (s *Session) Marked() []string {
	out := make([]string, 0, len(s.marked))
	for p := range s.marked {
		out = append(out, p)
	}
	return out
}

// Yank captures paths as a Copy clipboard (§4.G "Clipboard").
func (s *Session) Yank(paths []string, origin string) {
	s.clipboard = Clipboard{Mode: ClipboardCopy, Paths: paths, Origin: origin}
}

// Cut captures paths as a Cut clipboard.
func (s *Session) Cut(paths []string, origin string) {
	s.clipboard = Clipboard{Mode: ClipboardCut, Paths: paths, Origin: origin}
}

// ClearClipboard empties the clipboard, e.g. after a successful move.
func (s *Session) ClearClipboard() {
	s.clipboard = Clipboard{}
}

// SetLayout switches the active tab's explorer layout. Switching to
// miller columns seeds the column chain with selectedPath; switching
// back to the tree layout resets the tree cursor to the first row, so
// the selection is not carried over in that direction.
func (s *Session) SetLayout(layout Layout, selectedPath string) {
	if layout == s.layout {
		return
	}
	tab := s.activeTabPtr()
	switch layout {
	case LayoutMiller:
		tab.switchToMiller(s.Tree, selectedPath)
	case LayoutTree:
		tab.switchToTree(selectedPath)
	}
	s.layout = layout
}
