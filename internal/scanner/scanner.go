// Package scanner walks a directory tree in parallel and produces a
// model.Tree, streaming progress and warnings as it goes (§4.B). It also
// supports a cheap "quick list" of a single directory level for instant
// display before a full scan completes.
package scanner

import (
	"context"
	"time"

	"github.com/gravityfile/gravityfile/internal/model"
)

// Config holds the options a scan runs under (spec.md §4.B's option
// table). The zero value is not generally useful; use DefaultConfig
// and override fields.
type Config struct {
	Root             string
	MaxDepth         int // 0 = unbounded
	IncludeHidden    bool
	FollowSymlinks   bool
	CrossFilesystems bool
	ApparentSize     bool
	IgnorePatterns   []string
	Threads          int // 0 = implementation default
}

// DefaultConfig returns a Config with the spec's stated defaults:
// hidden entries skipped, symlinks not followed, cross-filesystem
// entries skipped (with a warning), hardlink dedup applied.
func DefaultConfig(root string) Config {
	return Config{
		Root:             root,
		IncludeHidden:    false,
		FollowSymlinks:   false,
		CrossFilesystems: false,
		ApparentSize:     false,
	}
}

// Progress is a best-effort snapshot broadcast periodically during a
// scan. Subscribers may drop messages; progress is not a reliable
// stream (§4.B "Progress").
type Progress struct {
	FilesScanned uint64
	DirsScanned  uint64
	BytesFound   uint64
	CurrentPath  string
	ErrorCount   uint64
	Elapsed      time.Duration
}

type scanError string

func (e scanError) Error() string { return string(e) }

// ErrCancelled is returned by Scan when the context was cancelled
// mid-walk. Per §4.B, cancellation returns no partial tree.
const ErrCancelled = scanError("scan cancelled")

// Scanner is the contract §4.B names: given a config, produce a Tree,
// optionally streaming progress and warnings while doing so.
type Scanner interface {
	// Scan walks cfg.Root to completion (or until ctx is cancelled)
	// and returns the assembled Tree.
	Scan(ctx context.Context, cfg Config) (*model.Tree, error)

	// Progress returns the channel progress snapshots are broadcast
	// on during the most recent/current Scan call. Best-effort: a
	// slow consumer may miss snapshots.
	Progress() <-chan Progress

	// QuickList returns a one-level tree rooted at dir: immediate
	// children populated with their own size, but directory children
	// are placeholders (size 0, no children). No warnings or progress
	// are emitted. Cheap and synchronous.
	QuickList(dir string) (*model.Tree, error)
}
