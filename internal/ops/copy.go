package ops

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CopyOptions configures a Copy operation.
type CopyOptions struct {
	// Resolution, if non-nil, is applied to every conflict without
	// asking the Session Core (used for SkipAll/OverwriteAll replay
	// and for programmatic callers that never want a pause).
	Resolution *Resolution
}

// Copy copies each of sources into destination (destination / source's
// base name), recursing into directories, per §4.E. It returns
// immediately; the returned channel carries Progress/Conflict/Complete
// messages and is closed after Complete is sent.
func Copy(ctx context.Context, sources []string, destination string, opts CopyOptions) (<-chan Message, *[]string) {
	ch := make(chan Message, channelSize)
	created := new([]string)
	go func() {
		defer close(ch)
		copyRun(ctx, sources, destination, opts, ch, created)
	}()
	return ch, created
}

func copyRun(ctx context.Context, sources []string, destination string, opts CopyOptions, ch chan<- Message, created *[]string) {
	if len(sources) == 0 {
		ch <- Complete{Kind: KindCopy}
		return
	}

	totalFiles, totalBytes := calculateTotals(sources)
	progress := Progress{Kind: KindCopy, FilesTotal: totalFiles, BytesTotal: totalBytes}

	if err := os.MkdirAll(destination, 0o755); err != nil {
		progress.addError(destination, errors.Wrap(err, "create destination").Error())
		ch <- Complete{Kind: KindCopy, Failed: len(sources), Errors: progress.Errors}
		return
	}

	var succeeded, failed int
	global := opts.Resolution

	for _, source := range sources {
		if ctx.Err() != nil {
			progress.addError(source, "cancelled")
			failed++
			continue
		}

		destPath := filepath.Join(destination, filepath.Base(source))

		if kind, conflicted := detectConflict(source, destPath); conflicted {
			resolution := ResolveOverwrite
			if global != nil {
				resolution = *global
			} else {
				resolution = resolveConflict(ch, Conflict{Kind: KindCopy, Source: source, Destination: destPath, ConflictOf: kind})
			}

			switch resolution {
			case ResolveSkip, ResolveSkipAll:
				if resolution == ResolveSkipAll {
					r := ResolveSkip
					global = &r
				}
				continue
			case ResolveAbort:
				ch <- Complete{Kind: KindCopy, Succeeded: succeeded, Failed: failed + 1, BytesProcessed: progress.BytesProcessed, Errors: progress.Errors}
				return
			case ResolveAutoRename:
				destPath = autoRenamePath(destPath, exists)
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

		if bytes, err := copyItem(source, destPath); err != nil {
			progress.addError(source, err.Error())
			failed++
		} else {
			progress.completeFile(bytes)
			*created = append(*created, destPath)
			ch <- progress.clone()
			succeeded++
		}
	}

	ch <- Complete{Kind: KindCopy, Succeeded: succeeded, Failed: failed, BytesProcessed: progress.BytesProcessed, Errors: progress.Errors}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func copyItem(source, dest string) (uint64, error) {
	info, err := os.Lstat(source)
	if err != nil {
		return 0, errors.Wrap(err, "stat source")
	}
	if info.IsDir() {
		return copyDirRecursive(source, dest)
	}
	return copyFile(source, dest, info)
}

func copyFile(source, dest string, info os.FileInfo) (uint64, error) {
	in, err := os.Open(source)
	if err != nil {
		return 0, errors.Wrap(err, "open source")
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, errors.Wrap(err, "create destination file")
	}
	defer out.Close()

	n, err := io.Copy(out, in)
	if err != nil {
		return uint64(n), errors.Wrap(err, "copy contents")
	}
	if err := out.Close(); err != nil {
		return uint64(n), errors.Wrap(err, "flush destination")
	}
	_ = os.Chtimes(dest, info.ModTime(), info.ModTime())
	return uint64(n), nil
}

func copyDirRecursive(source, dest string) (uint64, error) {
	info, err := os.Stat(source)
	if err != nil {
		return 0, errors.Wrap(err, "stat source directory")
	}
	if err := os.MkdirAll(dest, info.Mode().Perm()); err != nil {
		return 0, errors.Wrap(err, "create destination directory")
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return 0, errors.Wrap(err, "read source directory")
	}

	var total uint64
	for _, entry := range entries {
		childSource := filepath.Join(source, entry.Name())
		childDest := filepath.Join(dest, entry.Name())
		if entry.IsDir() {
			n, err := copyDirRecursive(childSource, childDest)
			total += n
			if err != nil {
				return total, err
			}
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return total, errors.Wrap(err, "stat entry")
		}
		n, err := copyFile(childSource, childDest, info)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func calculateTotals(sources []string) (files int, bytes uint64) {
	for _, source := range sources {
		info, err := os.Lstat(source)
		if err != nil {
			continue
		}
		if info.IsDir() {
			f, b := calculateDirTotals(source)
			files += f
			bytes += b
			continue
		}
		files++
		bytes += uint64(info.Size())
	}
	return files, bytes
}

func calculateDirTotals(dir string) (files int, bytes uint64) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			f, b := calculateDirTotals(path)
			files += f
			bytes += b
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files++
		bytes += uint64(info.Size())
	}
	return files, bytes
}
