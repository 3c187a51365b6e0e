package ops

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CreateFile ensures path's parent directory exists and creates an
// empty file at path, failing if it already exists (§4.E).
func CreateFile(ctx context.Context, path string) <-chan Message {
	ch := make(chan Message, channelSize)
	go func() {
		defer close(ch)
		createRun(path, KindCreateFile, ch, func(p string) error {
			f, err := os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
			if err != nil {
				return err
			}
			return f.Close()
		})
	}()
	return ch
}

// CreateDirectory ensures path's parent directory exists and creates
// the leaf directory, failing if it already exists (§4.E).
func CreateDirectory(ctx context.Context, path string) <-chan Message {
	ch := make(chan Message, channelSize)
	go func() {
		defer close(ch)
		createRun(path, KindCreateDirectory, ch, func(p string) error {
			return os.Mkdir(p, 0o755)
		})
	}()
	return ch
}

func createRun(path string, kind Kind, ch chan<- Message, create func(string) error) {
	progress := Progress{Kind: kind, FilesTotal: 1, CurrentFile: path}
	ch <- progress.clone()

	name := filepath.Base(path)
	if err := validateName(name); err != nil {
		progress.addError(path, err.Error())
		ch <- Complete{Kind: kind, Failed: 1, Errors: progress.Errors}
		return
	}

	if _, err := os.Lstat(path); err == nil {
		progress.addError(path, "already exists")
		ch <- Complete{Kind: kind, Failed: 1, Errors: progress.Errors}
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		progress.addError(path, errors.Wrap(err, "create parent").Error())
		ch <- Complete{Kind: kind, Failed: 1, Errors: progress.Errors}
		return
	}

	if err := create(path); err != nil {
		progress.addError(path, errors.Wrap(err, "create").Error())
		ch <- Complete{Kind: kind, Failed: 1, Errors: progress.Errors}
		return
	}

	progress.completeFile(0)
	ch <- progress.clone()
	ch <- Complete{Kind: kind, Succeeded: 1}
}
