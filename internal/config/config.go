// Package config persists user settings (theme, default layout,
// scan-on-startup, show-hidden) to a single TOML file in the
// platform's standard config directory (§6 "Persistent state").
//
// Grounded on the teacher's internal/stats/stats.go: same debounced
// save via time.AfterFunc, dirty flag, and Close()-flushes-pending
// shape, with the schema replaced and the codec swapped from
// encoding/json to github.com/BurntSushi/toml.
package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

const saveDebounce = 2 * time.Second

// Settings is the persisted schema. Unknown keys encountered on load
// are ignored by BurntSushi/toml, and fields added later default to
// their zero value, satisfying the forward-compatibility requirement.
type Settings struct {
	Theme         string `toml:"theme"`          // "dark" | "light"
	DefaultLayout string `toml:"default_layout"` // "tree" | "miller"
	ScanOnStartup bool   `toml:"scan_on_startup"`
	ShowHidden    bool   `toml:"show_hidden"`
}

func defaults() Settings {
	return Settings{Theme: "dark", DefaultLayout: "tree"}
}

// Manager loads, holds, and debounce-saves a Settings value.
type Manager struct {
	path string

	mu        sync.RWMutex
	settings  Settings
	dirty     bool
	saveTimer *time.Timer
}

// NewManager constructs a Manager backed by the default config path
// (platform config dir per os.UserConfigDir, falling back to the
// working directory).
func NewManager() *Manager {
	return &Manager{path: defaultPath(), settings: defaults()}
}

func defaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".gravityfile.toml"
	}
	return filepath.Join(dir, "gravityfile", "config.toml")
}

// Load reads the settings file, if present, merging over the defaults.
// A missing file is not an error.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	settings := defaults()
	if _, err := toml.DecodeFile(m.path, &settings); err != nil {
		if os.IsNotExist(err) {
			m.settings = settings
			return nil
		}
		return err
	}
	m.settings = settings
	return nil
}

// Save writes the current settings to disk immediately.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(m.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	m.dirty = false
	return toml.NewEncoder(f).Encode(m.settings)
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Set replaces the settings and schedules a debounced save.
func (m *Manager) Set(s Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.settings == s {
		return
	}
	m.settings = s
	m.dirty = true

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			_ = m.saveLocked()
		}
	})
}

// Close cancels any pending debounce timer and flushes dirty settings
// synchronously, so a clean shutdown never loses the last change.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	if !m.dirty {
		return nil
	}
	return m.saveLocked()
}
