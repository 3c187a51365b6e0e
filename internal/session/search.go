package session

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gravityfile/gravityfile/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchMode selects how a Search query is matched (§4.G "Search").
type SearchMode uint8

const (
	SearchFuzzy SearchMode = iota
	SearchGlob
	SearchRegex
)

// Next cycles fuzzy -> glob -> regex -> fuzzy.
func (m SearchMode) Next() SearchMode {
	return (m + 1) % 3
}

// SearchResult is one match against the candidate path set.
type SearchResult struct {
	Path  string
	Score int
}

const maxSearchResults = 1000

// searchCandidate pairs a path's absolute form with the relative
// display form searches match against.
type searchCandidate struct {
	path    string
	display string
}

// collectCandidates lists every descendant path of root's subtree,
// relative to root, for use as the search corpus.
func collectCandidates(tree *model.Tree, root string) []searchCandidate {
	node := tree.FindByPath(root)
	if node == nil {
		return nil
	}
	var out []searchCandidate
	var walk func(n *model.Node, path, rel string)
	walk = func(n *model.Node, path, rel string) {
		if rel != "" {
			out = append(out, searchCandidate{path: path, display: rel})
		}
		for _, c := range n.Children {
			childPath := filepath.Join(path, c.Name)
			childRel := c.Name
			if rel != "" {
				childRel = filepath.Join(rel, c.Name)
			}
			walk(c, childPath, childRel)
		}
	}
	walk(node, root, "")
	return out
}

// Search runs query against every path under root within tree, using
// mode, returning results sorted by score descending and truncated to
// 1000 (§4.G "Search").
func Search(tree *model.Tree, root, query string, mode SearchMode) []SearchResult {
	candidates := collectCandidates(tree, root)
	if query == "" {
		return nil
	}

	var results []SearchResult
	switch mode {
	case SearchFuzzy:
		displays := make([]string, len(candidates))
		for i, c := range candidates {
			displays[i] = c.display
		}
		matches := fuzzy.Find(query, displays)
		for _, m := range matches {
			results = append(results, SearchResult{Path: candidates[m.Index].path, Score: m.Score})
		}

	case SearchGlob:
		for _, c := range candidates {
			if ok, _ := doublestar.Match(query, c.display); ok {
				results = append(results, SearchResult{Path: c.path, Score: 1})
			}
		}

	case SearchRegex:
		re, err := regexp.Compile(query)
		if err != nil {
			return nil
		}
		for _, c := range candidates {
			if re.MatchString(c.display) {
				results = append(results, SearchResult{Path: c.path, Score: 1})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results
}

// searchState tracks the live query/results of an active Search mode
// session, grounded on original_source's SearchState.
type searchState struct {
	active  bool
	mode    SearchMode
	query   string
	results []SearchResult
	selected int
}

func newSearchState() searchState { return searchState{} }

func (s *searchState) activate() {
	s.active = true
	s.query = ""
	s.results = nil
	s.selected = 0
}

func (s *searchState) deactivate() {
	s.active = false
	s.query = ""
	s.results = nil
	s.selected = 0
}

func (s *searchState) setQuery(tree *model.Tree, root, query string) {
	s.query = query
	s.results = Search(tree, root, strings.TrimSpace(query), s.mode)
	s.selected = 0
}

func (s *searchState) selectedResult() (string, bool) {
	if s.selected < 0 || s.selected >= len(s.results) {
		return "", false
	}
	return s.results[s.selected].Path, true
}
