package ops

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// MoveOptions configures a Move operation.
type MoveOptions struct {
	Resolution *Resolution
}

// MovePair records one successfully-moved (old path, new path), used
// by the Operation Engine to build an undo entry.
type MovePair struct {
	OldPath string
	NewPath string
}

// moveResult carries the Move-specific outcome alongside the common
// Message stream: the caller needs the moved pairs to record undo.
type moveResult struct {
	ch    <-chan Message
	pairs *[]MovePair
}

// Move moves each of sources into destination, per §4.E: rename in
// place first, falling back to copy-then-delete-source across
// filesystems. Also detects the source-is-ancestor-of-destination
// conflict, which only Abort can resolve.
func Move(ctx context.Context, sources []string, destination string, opts MoveOptions) (<-chan Message, *[]MovePair) {
	ch := make(chan Message, channelSize)
	pairs := new([]MovePair)
	go func() {
		defer close(ch)
		moveRun(ctx, sources, destination, opts, ch, pairs)
	}()
	return ch, pairs
}

func moveRun(ctx context.Context, sources []string, destination string, opts MoveOptions, ch chan<- Message, pairs *[]MovePair) {
	if len(sources) == 0 {
		ch <- Complete{Kind: KindMove}
		return
	}

	progress := Progress{Kind: KindMove, FilesTotal: len(sources)}
	global := opts.Resolution

	if err := os.MkdirAll(destination, 0o755); err != nil {
		progress.addError(destination, errors.Wrap(err, "create destination").Error())
		ch <- Complete{Kind: KindMove, Failed: len(sources), Errors: progress.Errors}
		return
	}

	var succeeded, failed int

	for _, source := range sources {
		if ctx.Err() != nil {
			failed++
			continue
		}

		destPath := filepath.Join(destination, filepath.Base(source))

		if isAncestor(source, destPath) {
			resolution := resolveConflict(ch, Conflict{Kind: KindMove, Source: source, Destination: destPath, ConflictOf: ConflictSourceIsAncestor})
			_ = resolution // only Abort is valid; fall through to abort either way
			ch <- Complete{Kind: KindMove, Succeeded: succeeded, Failed: failed + 1, BytesProcessed: progress.BytesProcessed, Errors: progress.Errors}
			return
		}

		finalDest := destPath
		if kind, conflicted := detectConflict(source, destPath); conflicted {
			resolution := ResolveOverwrite
			if global != nil {
				resolution = *global
			} else {
				resolution = resolveConflict(ch, Conflict{Kind: KindMove, Source: source, Destination: destPath, ConflictOf: kind})
			}

			switch resolution {
			case ResolveSkip, ResolveSkipAll:
				if resolution == ResolveSkipAll {
					r := ResolveSkip
					global = &r
				}
				continue
			case ResolveAbort:
				ch <- Complete{Kind: KindMove, Succeeded: succeeded, Failed: failed + 1, BytesProcessed: progress.BytesProcessed, Errors: progress.Errors}
				return
			case ResolveAutoRename:
				finalDest = autoRenamePath(destPath, exists)
			case ResolveOverwrite, ResolveOverwriteAll:
				if resolution == ResolveOverwriteAll {
					r := ResolveOverwrite
					global = &r
				}
				_ = os.RemoveAll(destPath)
			}
		}

		progress.CurrentFile = source
		ch <- progress.clone()

		bytes, err := moveItem(source, finalDest)
		if err != nil {
			progress.addError(source, err.Error())
			failed++
		} else {
			progress.completeFile(bytes)
			*pairs = append(*pairs, MovePair{OldPath: source, NewPath: finalDest})
			succeeded++
		}
		ch <- progress.clone()
	}

	ch <- Complete{Kind: KindMove, Succeeded: succeeded, Failed: failed, BytesProcessed: progress.BytesProcessed, Errors: progress.Errors}
}

// moveItem renames source to dest, falling back to copy-then-delete
// when the rename fails (typically EXDEV, a cross-filesystem move).
func moveItem(source, dest string) (uint64, error) {
	size := dirOrFileSize(source)

	if err := os.Rename(source, dest); err == nil {
		return size, nil
	}

	info, err := os.Lstat(source)
	if err != nil {
		return 0, errors.Wrap(err, "stat source")
	}
	if info.IsDir() {
		if _, err := copyDirRecursive(source, dest); err != nil {
			return 0, err
		}
		if err := os.RemoveAll(source); err != nil {
			return size, errors.Wrap(err, "remove source after copy")
		}
		return size, nil
	}

	if _, err := copyFile(source, dest, info); err != nil {
		return 0, err
	}
	if err := os.Remove(source); err != nil {
		return size, errors.Wrap(err, "remove source after copy")
	}
	return size, nil
}

func dirOrFileSize(path string) uint64 {
	info, err := os.Lstat(path)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		return uint64(info.Size())
	}
	_, bytes := calculateDirTotals(path)
	return bytes
}
