package session

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gravityfile/gravityfile/internal/model"
)

// resolvePath expands a cd argument against the active tab's current
// view root, per §4.G "cd <path>": relative, absolute (rooted at the
// scan root), `~`, or `..`.
func (s *Session) resolvePath(arg string) string {
	tab := s.activeTabPtr()
	arg = expandHome(arg)
	switch {
	case arg == "" || arg == "~":
		return s.ScanRoot
	case arg == "..":
		return filepath.Dir(tab.ViewRoot)
	case filepath.IsAbs(arg):
		return filepath.Clean(arg)
	default:
		return filepath.Clean(filepath.Join(tab.ViewRoot, arg))
	}
}

// Navigate changes the active tab's view root to target, pushing
// history, and ensures target's children are loaded (lazily, via the
// scanned cache or a quick list) if it isn't already fully scanned. If
// target lies above the currently loaded tree's root, the Session
// re-roots itself at target first (§4.G "view_root... an ancestor
// (navigated up past the scan root)").
func (s *Session) Navigate(target string) error {
	tab := s.activeTabPtr()
	if target == tab.ViewRoot {
		return nil
	}
	if isStrictAncestor(target, s.Tree.RootPath) {
		if err := s.reRootAbove(target); err != nil {
			return err
		}
	} else if err := s.ensureLoaded(target); err != nil {
		return err
	}
	tab.pushHistory()
	tab.ViewRoot = target
	tab.Tree.SelectedIndex = 0
	return nil
}

// NavigateBack pops the active tab's history, restoring the previous
// view root, selection, and expansion set.
func (s *Session) NavigateBack() bool {
	return s.activeTabPtr().back()
}

// NavigateForward is the inverse of NavigateBack.
func (s *Session) NavigateForward() bool {
	return s.activeTabPtr().forward()
}

// GoToRoot navigates to the scan root.
func (s *Session) GoToRoot() error {
	return s.Navigate(s.ScanRoot)
}

// ensureLoaded makes sure path's node in s.Tree has real children
// rather than an unpopulated placeholder, consulting scanned_cache
// first and falling back to a quick list (§4.G "Lazy loading").
func (s *Session) ensureLoaded(path string) error {
	node := s.Tree.FindByPath(path)
	if node != nil && node.IsDir() && len(node.Children) > 0 {
		return nil // already populated
	}

	if cached, ok := s.scannedCache[path]; ok {
		s.spliceSubtree(path, cached.Root)
		return nil
	}

	quick, err := s.scanner.QuickList(path)
	if err != nil {
		return err
	}
	s.spliceSubtree(path, quick.Root)
	return nil
}

// spliceSubtree replaces the node at path with replacement's children
// (keeping the existing node's identity where possible) and
// recomputes aggregates up from there, per the Tree Model's documented
// splice-then-recompute contract.
func (s *Session) spliceSubtree(path string, replacement *model.Node) {
	target := s.Tree.FindByPath(path)
	if target == nil {
		return
	}
	target.Children = replacement.Children
	s.Tree.RecomputeAggregates(nil)
}

// CacheScan records a fully-scanned tree rooted at path, so a later
// navigation back to it restores full data instead of a placeholder
// (§4.G "scanned_cache").
func (s *Session) CacheScan(path string, tree *model.Tree) {
	s.scannedCache[path] = tree
	s.spliceSubtree(path, tree.Root)
}

// isStrictAncestor reports whether anc is a proper ancestor directory
// of of (anc != of, and of lies under anc).
func isStrictAncestor(anc, of string) bool {
	anc = filepath.Clean(anc)
	of = filepath.Clean(of)
	if anc == of {
		return false
	}
	prefix := anc
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(of, prefix)
}

// reRootAbove re-roots the Session at target, a directory above the
// currently loaded tree (§4.G "the Session supports [navigating above
// the scan root] by walking up and quick-listing each new parent").
// Grounded on original_source's navigate_to_parent_beyond_scan_root:
// the current tree is cached before it's replaced, the new parent is
// quick-listed, and any previously cached scans of the parent's
// children are merged back in so already-scanned subtrees don't
// regress to placeholders.
func (s *Session) reRootAbove(target string) error {
	s.scannedCache[s.Tree.RootPath] = s.Tree

	parentTree, err := s.scanner.QuickList(target)
	if err != nil {
		return err
	}
	s.mergeCachedScans(parentTree.Root, target)
	parentTree.RecomputeAggregates(parentTree.Root)

	s.Tree = parentTree
	s.ScanRoot = target
	return nil
}

// mergeCachedScans replaces any direct child of node that has a cached
// full scan with that cached subtree, so re-rooting doesn't discard
// data already gathered for a descendant (original_source's
// merge_cached_scans_into_tree).
func (s *Session) mergeCachedScans(node *model.Node, nodePath string) {
	for i, c := range node.Children {
		if !c.IsDir() {
			continue
		}
		childPath := filepath.Join(nodePath, c.Name)
		if cached, ok := s.scannedCache[childPath]; ok {
			node.Children[i] = cached.Root
		}
	}
}

// expandHome is a small convenience used by cd argument parsing for a
// leading "~/" form the reference implementation's cd also accepts.
func expandHome(arg string) string {
	if arg == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			return home
		}
		return arg
	}
	if strings.HasPrefix(arg, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(arg, "~/"))
		}
	}
	return arg
}
