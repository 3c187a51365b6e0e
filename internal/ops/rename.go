package ops

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Rename validates newName and renames source to
// filepath.Dir(source)/newName, per §4.E.
func Rename(ctx context.Context, source, newName string) <-chan Message {
	ch := make(chan Message, channelSize)
	go func() {
		defer close(ch)
		renameRun(source, newName, ch)
	}()
	return ch
}

func renameRun(source, newName string, ch chan<- Message) {
	progress := Progress{Kind: KindRename, FilesTotal: 1, CurrentFile: source}
	ch <- progress.clone()

	if err := validateName(newName); err != nil {
		progress.addError(source, err.Error())
		ch <- Complete{Kind: KindRename, Failed: 1, Errors: progress.Errors}
		return
	}

	dest := filepath.Join(filepath.Dir(source), newName)
	if err := os.Rename(source, dest); err != nil {
		progress.addError(source, errors.Wrap(err, "rename").Error())
		ch <- Complete{Kind: KindRename, Failed: 1, Errors: progress.Errors}
		return
	}

	progress.completeFile(0)
	ch <- progress.clone()
	ch <- Complete{Kind: KindRename, Succeeded: 1}
}
