// Package model holds the in-memory tree representation of a scanned
// filesystem subtree: nodes, aggregate sizes and counts, sort orders, and
// path lookup. It has no I/O of its own; the Scanner builds trees and the
// Session Core owns them thereafter.
package model

import "time"

// Kind identifies which of the four node variants a Node is. Behavior
// differences between kinds are field-level, not method-level: there is
// no per-kind type, only a tag and the fields that apply to it.
type Kind uint8

const (
	KindFile Kind = iota
	KindDirectory
	KindSymlink
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Inode identifies a file by device and inode number, when the platform
// supplies one.
type Inode struct {
	Device uint64
	Number uint64
}

// Timestamps carries a file's modified time (always present) plus the
// optional accessed and created times some platforms don't report.
type Timestamps struct {
	Modified time.Time
	Accessed *time.Time
	Created  *time.Time
}

// ContentHash is a 32-byte content digest, filled lazily by the
// Duplicate Engine. A zero value means "not yet computed".
type ContentHash [32]byte

func (h ContentHash) IsZero() bool {
	return h == ContentHash{}
}

// Node represents one filesystem entry: a directory, regular file,
// symbolic link, or other (device node, FIFO, socket...). Node
// identifiers are unique within a tree and stable for the tree's
// lifetime; there are intentionally no parent pointers (see the
// design notes in SPEC_FULL.md) — callers that need a parent walk
// down from the tree root carrying the path.
type Node struct {
	ID   uint64
	Name string
	Kind Kind

	// Size is the node's logical size in bytes. For a directory this
	// is the sum of its descendant sizes, adjusted for hardlinks (see
	// Tree invariant 1). For a file, its apparent size.
	Size uint64
	// Blocks is the count of 512-byte blocks actually allocated.
	Blocks uint64

	Timestamps Timestamps

	// Inode is populated when the platform reports device+inode.
	Inode    Inode
	HasInode bool

	// ContentHash is filled lazily by the Duplicate Engine.
	ContentHash    ContentHash
	HasContentHash bool

	// Directory-only fields.
	Children  []*Node
	FileCount uint64
	DirCount  uint64

	// File-only field.
	Executable bool

	// Symlink-only fields.
	SymlinkTarget string
	SymlinkBroken bool
}

// NewFileNode constructs a regular file node.
func NewFileNode(id uint64, name string, size, blocks uint64, ts Timestamps, executable bool) *Node {
	return &Node{
		ID:         id,
		Name:       name,
		Kind:       KindFile,
		Size:       size,
		Blocks:     blocks,
		Timestamps: ts,
		Executable: executable,
	}
}

// NewDirectoryNode constructs a directory node with the given children
// already attached and its aggregates computed from them.
func NewDirectoryNode(id uint64, name string, ts Timestamps, children []*Node) *Node {
	n := &Node{
		ID:         id,
		Name:       name,
		Kind:       KindDirectory,
		Timestamps: ts,
		Children:   children,
	}
	n.UpdateAggregates()
	return n
}

// NewSymlinkNode constructs a symbolic link node.
func NewSymlinkNode(id uint64, name, target string, broken bool, ts Timestamps) *Node {
	return &Node{
		ID:            id,
		Name:          name,
		Kind:          KindSymlink,
		Timestamps:    ts,
		SymlinkTarget: target,
		SymlinkBroken: broken,
	}
}

// NewOtherNode constructs a node for an entry that is neither a
// directory, regular file, nor symlink (device node, FIFO, socket...).
func NewOtherNode(id uint64, name string, ts Timestamps) *Node {
	return &Node{ID: id, Name: name, Kind: KindOther, Timestamps: ts}
}

func (n *Node) IsDir() bool     { return n.Kind == KindDirectory }
func (n *Node) IsFile() bool    { return n.Kind == KindFile }
func (n *Node) IsSymlink() bool { return n.Kind == KindSymlink }

// UpdateAggregates recomputes Size, FileCount, and DirCount from this
// node's direct children, per Tree invariants 1 and 2. It is not
// recursive: callers recomputing after a lazy-load or deletion should
// use Tree.RecomputeAggregates, which walks bottom-up.
func (n *Node) UpdateAggregates() {
	if !n.IsDir() {
		return
	}
	var size, files, dirs uint64
	for _, c := range n.Children {
		size += c.Size
		if c.IsDir() {
			dirs += 1 + c.DirCount
			files += c.FileCount
		} else {
			files++
		}
	}
	n.Size = size
	n.FileCount = files
	n.DirCount = dirs
}

// Walk calls fn for this node and every descendant, depth-first,
// pre-order. fn returning false stops descent into that node's
// children (but sibling traversal continues).
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// ChildByName returns the direct child with the given name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}
