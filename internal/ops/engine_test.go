package ops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gravityfile/gravityfile/internal/undo"
)

func TestEngineRecordsUndoOnCopy(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.txt")
	os.WriteFile(src, []byte("hello"), 0o644)
	dest := filepath.Join(root, "dest")

	log := undo.NewLog(10)
	engine := NewEngine(log)
	ch := engine.Copy(context.Background(), []string{src}, dest, CopyOptions{})
	drain(t, ch, nil)

	entry, ok := log.Peek()
	if !ok {
		t.Fatal("expected an undo entry to be recorded")
	}
	if entry.Operation.Kind != undo.KindFilesCopied || len(entry.Operation.Created) != 1 {
		t.Errorf("unexpected undo entry: %+v", entry.Operation)
	}
}

func TestEngineDeleteRecordsUnundoableEntry(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "gone.txt")
	os.WriteFile(path, []byte("x"), 0o644)

	log := undo.NewLog(10)
	engine := NewEngine(log)
	ch := engine.Delete(context.Background(), []string{path})
	drain(t, ch, nil)

	entry, ok := log.Peek()
	if !ok {
		t.Fatal("expected an undo entry to be recorded")
	}
	if entry.Operation.CanUndo() {
		t.Error("permanent delete should not be undoable")
	}
}
