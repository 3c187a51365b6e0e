package ops

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func drain(t *testing.T, ch <-chan Message, respond func(Conflict)) Complete {
	t.Helper()
	for msg := range ch {
		switch m := msg.(type) {
		case Conflict:
			respond(m)
		case Complete:
			return m
		}
	}
	t.Fatal("channel closed without a Complete message")
	return Complete{}
}

func TestCopyNoConflict(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.txt")
	if err := os.WriteFile(src, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(root, "dest")

	ch, created := Copy(context.Background(), []string{src}, dest, CopyOptions{})
	complete := drain(t, ch, nil)
	if complete.Succeeded != 1 || complete.Failed != 0 {
		t.Fatalf("expected 1 success, got %+v", complete)
	}
	if len(*created) != 1 {
		t.Fatalf("expected 1 created path, got %d", len(*created))
	}
	if _, err := os.Stat(filepath.Join(dest, "src.txt")); err != nil {
		t.Fatalf("expected copied file to exist: %v", err)
	}
}

func TestCopyConflictAutoRename(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.txt")
	os.WriteFile(src, []byte("hello"), 0o644)
	dest := filepath.Join(root, "dest")
	os.MkdirAll(dest, 0o755)
	os.WriteFile(filepath.Join(dest, "src.txt"), []byte("existing"), 0o644)

	ch, _ := Copy(context.Background(), []string{src}, dest, CopyOptions{})
	complete := drain(t, ch, func(c Conflict) {
		if c.ConflictOf != ConflictFileExists {
			t.Errorf("expected FileExists conflict, got %v", c.ConflictOf)
		}
		c.Respond <- ResolveAutoRename
	})
	if complete.Succeeded != 1 {
		t.Fatalf("expected 1 success, got %+v", complete)
	}
	if _, err := os.Stat(filepath.Join(dest, "src (1).txt")); err != nil {
		t.Fatalf("expected auto-renamed file: %v", err)
	}
}

func TestCopyConflictSkip(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.txt")
	os.WriteFile(src, []byte("hello"), 0o644)
	dest := filepath.Join(root, "dest")
	os.MkdirAll(dest, 0o755)
	os.WriteFile(filepath.Join(dest, "src.txt"), []byte("existing"), 0o644)

	ch, _ := Copy(context.Background(), []string{src}, dest, CopyOptions{})
	complete := drain(t, ch, func(c Conflict) { c.Respond <- ResolveSkip })
	if complete.Succeeded != 0 || complete.Failed != 0 {
		t.Fatalf("skip is not a failure, expected succeeded=0 failed=0, got %+v", complete)
	}
}

func TestMoveRename(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.txt")
	os.WriteFile(src, []byte("hello"), 0o644)
	dest := filepath.Join(root, "dest")

	ch, pairs := Move(context.Background(), []string{src}, dest, MoveOptions{})
	complete := drain(t, ch, nil)
	if complete.Succeeded != 1 {
		t.Fatalf("expected 1 success, got %+v", complete)
	}
	if len(*pairs) != 1 || (*pairs)[0].NewPath != filepath.Join(dest, "src.txt") {
		t.Fatalf("unexpected move pairs: %+v", *pairs)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("expected source to be gone after move")
	}
}

func TestMoveSourceIsAncestorAborts(t *testing.T) {
	root := t.TempDir()
	srcDir := filepath.Join(root, "srcdir")
	os.MkdirAll(srcDir, 0o755)
	dest := filepath.Join(srcDir, "nested")

	ch, _ := Move(context.Background(), []string{srcDir}, root, MoveOptions{})
	_ = dest
	complete := drain(t, ch, func(c Conflict) {
		if c.ConflictOf != ConflictSourceIsAncestor {
			t.Errorf("expected SourceIsAncestor, got %v", c.ConflictOf)
		}
		if ResolveSkip.ValidForKind(c.ConflictOf) {
			t.Error("Skip should not be valid for SourceIsAncestor")
		}
		c.Respond <- ResolveAbort
	})
	if complete.Succeeded != 0 {
		t.Fatalf("expected no successes, got %+v", complete)
	}
}

func TestRenameValidation(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.txt")
	os.WriteFile(src, []byte("hello"), 0o644)

	ch := Rename(context.Background(), src, "bad/name.txt")
	complete := drain(t, ch, nil)
	if complete.Succeeded != 0 || complete.Failed != 1 {
		t.Fatalf("expected invalid name to fail, got %+v", complete)
	}
}

func TestRenameSuccess(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.txt")
	os.WriteFile(src, []byte("hello"), 0o644)

	ch := Rename(context.Background(), src, "renamed.txt")
	complete := drain(t, ch, nil)
	if complete.Succeeded != 1 {
		t.Fatalf("expected success, got %+v", complete)
	}
	if _, err := os.Stat(filepath.Join(root, "renamed.txt")); err != nil {
		t.Fatalf("expected renamed file: %v", err)
	}
}

func TestCreateFileFailsIfExists(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "exists.txt")
	os.WriteFile(path, []byte("x"), 0o644)

	ch := CreateFile(context.Background(), path)
	complete := drain(t, ch, nil)
	if complete.Succeeded != 0 || complete.Failed != 1 {
		t.Fatalf("expected create to fail on existing path, got %+v", complete)
	}
}

func TestCreateDirectory(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "newdir")

	ch := CreateDirectory(context.Background(), path)
	complete := drain(t, ch, nil)
	if complete.Succeeded != 1 {
		t.Fatalf("expected success, got %+v", complete)
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory to exist: %v", err)
	}
}

func TestDelete(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "gone.txt")
	os.WriteFile(path, []byte("x"), 0o644)

	ch, deleted := Delete(context.Background(), []string{path})
	complete := drain(t, ch, nil)
	if complete.Succeeded != 1 {
		t.Fatalf("expected success, got %+v", complete)
	}
	if len(*deleted) != 1 {
		t.Fatalf("expected 1 deleted path recorded, got %d", len(*deleted))
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected file to be gone")
	}
}

func TestAutoRenamePath(t *testing.T) {
	taken := map[string]bool{"file.txt": true, "file (1).txt": true}
	got := autoRenamePath("file.txt", func(p string) bool { return taken[p] })
	if got != "file (2).txt" {
		t.Errorf("expected file (2).txt, got %s", got)
	}
}
