package ops

import (
	"context"
	"os"

	"github.com/pkg/errors"
)

// Delete unlinks each of paths, recursively removing directories
// (§4.E). Deletion is permanent in this engine: there is no trash
// location to route through (see DESIGN.md — trash routing is named
// in the reference implementation as an optional extension point but
// never implemented there either, and is out of scope here too), so
// the resulting undo entry can never be undone.
func Delete(ctx context.Context, paths []string) (<-chan Message, *[]string) {
	ch := make(chan Message, channelSize)
	deleted := new([]string)
	go func() {
		defer close(ch)
		deleteRun(ctx, paths, ch, deleted)
	}()
	return ch, deleted
}

func deleteRun(ctx context.Context, paths []string, ch chan<- Message, deleted *[]string) {
	if len(paths) == 0 {
		ch <- Complete{Kind: KindDelete}
		return
	}

	progress := Progress{Kind: KindDelete, FilesTotal: len(paths)}
	var succeeded, failed int

	for _, path := range paths {
		if ctx.Err() != nil {
			failed++
			continue
		}
		progress.CurrentFile = path
		ch <- progress.clone()

		if err := os.RemoveAll(path); err != nil {
			progress.addError(path, errors.Wrap(err, "delete").Error())
			failed++
		} else {
			progress.completeFile(0)
			*deleted = append(*deleted, path)
			succeeded++
		}
		ch <- progress.clone()
	}

	ch <- Complete{Kind: KindDelete, Succeeded: succeeded, Failed: failed, Errors: progress.Errors}
}
