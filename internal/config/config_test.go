package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	m := &Manager{path: filepath.Join(t.TempDir(), "config.toml"), settings: defaults()}
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := m.Get()
	if got.Theme != "dark" || got.DefaultLayout != "tree" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	m := &Manager{path: path, settings: defaults()}
	m.settings.Theme = "light"
	m.settings.ShowHidden = true
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := &Manager{path: path, settings: defaults()}
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := reloaded.Get()
	if got.Theme != "light" || !got.ShowHidden {
		t.Fatalf("reloaded settings mismatch: %+v", got)
	}
}

func TestSetSchedulesDebouncedSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	m := NewManager()
	m.path = path

	s := m.Get()
	s.Theme = "light"
	m.Set(s)

	if !m.dirty {
		t.Fatal("expected dirty flag set after Set")
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if m.dirty {
		t.Fatal("expected Close to clear the dirty flag")
	}

	reloaded := &Manager{path: path, settings: defaults()}
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.Get().Theme != "light" {
		t.Fatalf("Close did not flush pending save")
	}
}
