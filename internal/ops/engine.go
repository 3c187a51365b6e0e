package ops

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gravityfile/gravityfile/internal/logging"
	"github.com/gravityfile/gravityfile/internal/undo"
)

// Engine is the Session Core's entry point into the Operation Engine:
// it runs the operation functions in this package and, on successful
// completion, records an undo entry (§4.E "Undo recording").
type Engine struct {
	Undo *undo.Log
}

// NewEngine constructs an Engine backed by the given undo log.
func NewEngine(log *undo.Log) *Engine {
	return &Engine{Undo: log}
}

// Copy runs a Copy operation and records an undo entry listing the
// created destination paths, if any file succeeded.
func (e *Engine) Copy(ctx context.Context, sources []string, destination string, opts CopyOptions) <-chan Message {
	inner, created := Copy(ctx, sources, destination, opts)
	return e.forward(inner, func(c Complete) {
		if c.Succeeded == 0 {
			return
		}
		e.Undo.Record(undo.Operation{Kind: undo.KindFilesCopied, Created: *created},
			fmt.Sprintf("copied %d item(s) to %s", c.Succeeded, destination))
	})
}

// Move runs a Move operation and records an undo entry listing the
// (old, new) path pairs that succeeded.
func (e *Engine) Move(ctx context.Context, sources []string, destination string, opts MoveOptions) <-chan Message {
	inner, pairs := Move(ctx, sources, destination, opts)
	return e.forward(inner, func(c Complete) {
		if c.Succeeded == 0 {
			return
		}
		moves := make([]undo.MovePair, len(*pairs))
		for i, p := range *pairs {
			moves[i] = undo.MovePair{OldPath: p.OldPath, NewPath: p.NewPath}
		}
		e.Undo.Record(undo.Operation{Kind: undo.KindFilesMoved, Moves: moves},
			fmt.Sprintf("moved %d item(s) to %s", c.Succeeded, destination))
	})
}

// Rename runs a Rename operation and records an undo entry.
func (e *Engine) Rename(ctx context.Context, source, newName string) <-chan Message {
	oldName := filepath.Base(source)
	inner := Rename(ctx, source, newName)
	return e.forward(inner, func(c Complete) {
		if c.Succeeded == 0 {
			return
		}
		e.Undo.Record(undo.Operation{Kind: undo.KindFileRenamed, Path: source, OldName: oldName, NewName: newName},
			fmt.Sprintf("renamed %s to %s", oldName, newName))
	})
}

// CreateFile runs a CreateFile operation and records an undo entry.
func (e *Engine) CreateFile(ctx context.Context, path string) <-chan Message {
	inner := CreateFile(ctx, path)
	return e.forward(inner, func(c Complete) {
		if c.Succeeded == 0 {
			return
		}
		e.Undo.Record(undo.Operation{Kind: undo.KindFileCreated, Path: path}, "created "+path)
	})
}

// CreateDirectory runs a CreateDirectory operation and records an undo
// entry.
func (e *Engine) CreateDirectory(ctx context.Context, path string) <-chan Message {
	inner := CreateDirectory(ctx, path)
	return e.forward(inner, func(c Complete) {
		if c.Succeeded == 0 {
			return
		}
		e.Undo.Record(undo.Operation{Kind: undo.KindDirectoryCreated, Path: path}, "created "+path)
	})
}

// Delete runs a Delete operation. The resulting undo entry is
// permanent (no trash), so it is recorded but can never be undone —
// kept in the log purely for history/description purposes.
func (e *Engine) Delete(ctx context.Context, paths []string) <-chan Message {
	inner, deleted := Delete(ctx, paths)
	return e.forward(inner, func(c Complete) {
		if c.Succeeded == 0 {
			return
		}
		e.Undo.Record(undo.Operation{Kind: undo.KindFilesDeleted}, fmt.Sprintf("deleted %d item(s)", len(*deleted)))
	})
}

// forward relays every message from inner to a fresh channel,
// invoking onComplete just before relaying the terminal Complete
// message (by which point any out-parameter slices the op function
// populates are final).
func (e *Engine) forward(inner <-chan Message, onComplete func(Complete)) <-chan Message {
	out := make(chan Message, channelSize)
	go func() {
		defer close(out)
		for msg := range inner {
			if c, ok := msg.(Complete); ok {
				logging.Debug.Printf("[Engine] %s complete: succeeded=%d failed=%d bytes=%d",
					c.Kind, c.Succeeded, c.Failed, c.BytesProcessed)
				onComplete(c)
			}
			out <- msg
		}
	}()
	return out
}
