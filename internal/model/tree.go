package model

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SortOrder names one of the declared child sort orders (Tree invariant
// 3). Every order breaks ties by name ascending, except Name itself,
// which is already a name order.
type SortOrder uint8

const (
	SortSizeDesc SortOrder = iota
	SortSizeAsc
	SortNameAsc
	SortNameDesc
	SortModifiedDesc
	SortModifiedAsc
	SortCountDesc
	SortCountAsc
)

// ScanConfigSummary is a minimal, serializable record of the options a
// scan ran under, carried on Tree for export and re-display.
type ScanConfigSummary struct {
	Root             string
	MaxDepth         int
	IncludeHidden    bool
	FollowSymlinks   bool
	CrossFilesystems bool
	ApparentSize     bool
	IgnorePatterns   []string
	Threads          int
}

// WarningKind enumerates the non-fatal problems a scan can record.
type WarningKind uint8

const (
	WarningPermissionDenied WarningKind = iota
	WarningBrokenSymlink
	WarningReadError
	WarningMetadataError
	WarningCrossFilesystem
)

func (k WarningKind) String() string {
	switch k {
	case WarningPermissionDenied:
		return "permission denied"
	case WarningBrokenSymlink:
		return "broken symlink"
	case WarningReadError:
		return "read error"
	case WarningMetadataError:
		return "metadata error"
	case WarningCrossFilesystem:
		return "crossed filesystem"
	default:
		return "unknown"
	}
}

// Warning is a record of a non-fatal problem encountered during a scan.
type Warning struct {
	Kind    WarningKind
	Path    string
	Message string
}

// LargestFile records one entry in a Tree's largest-file list.
type LargestFile struct {
	Path string
	Size uint64
}

// Stats carries the aggregate statistics of a completed scan.
type Stats struct {
	TotalFiles   uint64
	TotalDirs    uint64
	TotalSize    uint64
	MaxDepth     int
	LargestFiles []LargestFile
}

// Tree is a root Node plus the bookkeeping spec.md §3 requires: the
// canonical root path, the config the scan ran under, aggregate
// statistics, scan duration, the declared sort order, and collected
// warnings.
type Tree struct {
	Root       *Node
	RootPath   string
	Config     ScanConfigSummary
	Stats      Stats
	ScanDur    time.Duration
	Sort       SortOrder
	Warnings   []Warning
	nextNodeID uint64
}

// NewTree wraps a root node into a Tree, sorting it under the default
// order (size descending).
func NewTree(root *Node, rootPath string, cfg ScanConfigSummary) *Tree {
	t := &Tree{Root: root, RootPath: rootPath, Config: cfg, Sort: SortSizeDesc}
	t.SortAll(SortSizeDesc)
	return t
}

// NextNodeID returns a fresh, tree-unique node identifier. The Scanner
// and lazy-load splicing both allocate ids through this so that ids
// stay unique for the tree's lifetime (Tree invariant 4) even as
// subtrees are replaced.
func (t *Tree) NextNodeID() uint64 {
	t.nextNodeID++
	return t.nextNodeID
}

// RecomputeAggregates walks the subtree rooted at n bottom-up,
// recalculating Size/FileCount/DirCount at every directory. Used after
// a lazy-load splices in new children, or after a deletion removes
// some. If n is nil, the whole tree is recomputed.
func (t *Tree) RecomputeAggregates(n *Node) {
	if n == nil {
		n = t.Root
	}
	recomputeBottomUp(n)
}

func recomputeBottomUp(n *Node) {
	if !n.IsDir() {
		return
	}
	for _, c := range n.Children {
		recomputeBottomUp(c)
	}
	n.UpdateAggregates()
}

// SortAll re-sorts every directory in the tree under the given order
// and records it as the tree's declared order (Tree invariant 3:
// changing the order re-sorts every directory).
func (t *Tree) SortAll(order SortOrder) {
	t.Sort = order
	sortRecursive(t.Root, order)
}

func sortRecursive(n *Node, order SortOrder) {
	if !n.IsDir() {
		return
	}
	sortChildren(n.Children, order)
	for _, c := range n.Children {
		sortRecursive(c, order)
	}
}

// sortChildren sorts one level of children under order, breaking ties
// by name ascending (case-sensitive byte comparison) in every order
// except the name orders themselves.
func sortChildren(children []*Node, order SortOrder) {
	less := func(i, j int) bool {
		a, b := children[i], children[j]
		switch order {
		case SortSizeDesc:
			if a.Size != b.Size {
				return a.Size > b.Size
			}
		case SortSizeAsc:
			if a.Size != b.Size {
				return a.Size < b.Size
			}
		case SortNameAsc:
			return a.Name < b.Name
		case SortNameDesc:
			return a.Name > b.Name
		case SortModifiedDesc:
			if !a.Timestamps.Modified.Equal(b.Timestamps.Modified) {
				return a.Timestamps.Modified.After(b.Timestamps.Modified)
			}
		case SortModifiedAsc:
			if !a.Timestamps.Modified.Equal(b.Timestamps.Modified) {
				return a.Timestamps.Modified.Before(b.Timestamps.Modified)
			}
		case SortCountDesc:
			ac, bc := childCount(a), childCount(b)
			if ac != bc {
				return ac > bc
			}
		case SortCountAsc:
			ac, bc := childCount(a), childCount(b)
			if ac != bc {
				return ac < bc
			}
		}
		return a.Name < b.Name
	}
	sort.SliceStable(children, less)
}

func childCount(n *Node) uint64 {
	if !n.IsDir() {
		return 0
	}
	return uint64(len(n.Children))
}

// FindByPath walks from the tree root along the path components
// between root and target (target must be root or a descendant of
// root), returning the node at that path or nil if any component is
// missing. This is a pure walk: no I/O, no parent pointers.
func (t *Tree) FindByPath(target string) *Node {
	rel, ok := relativeComponents(t.RootPath, target)
	if !ok {
		return nil
	}
	n := t.Root
	for _, part := range rel {
		n = n.ChildByName(part)
		if n == nil {
			return nil
		}
	}
	return n
}

// relativeComponents splits target into path components relative to
// root, returning ok=false if target is not root or inside it.
func relativeComponents(root, target string) ([]string, bool) {
	root = filepath.Clean(root)
	target = filepath.Clean(target)
	if root == target {
		return nil, true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(target, prefix) {
		return nil, false
	}
	rest := strings.TrimPrefix(target, prefix)
	if rest == "" {
		return nil, true
	}
	return strings.Split(rest, string(filepath.Separator)), true
}

// SizeAt returns the aggregate size of the node at path within the
// tree, and whether that path was found.
func (t *Tree) SizeAt(path string) (uint64, bool) {
	n := t.FindByPath(path)
	if n == nil {
		return 0, false
	}
	return n.Size, true
}
