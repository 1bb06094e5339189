// Copyright © 2025 Quillscroll contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: History settings store mapping user configuration to a store kind.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/quillscroll/quillscroll/scroll"
)

const configName = "quillscroll.json"

// History mode names as written in the config file.
const (
	ModeNone    = "none"
	ModeFile    = "file"
	ModeCompact = "compact"
)

// DefaultMaxLines is the compact-history capacity used when the config does
// not set one.
const DefaultMaxLines = 1000

// HistorySettings selects a scrollback strategy.
type HistorySettings struct {
	Mode     string `json:"mode"`
	MaxLines int    `json:"maxLines"`
}

// Settings is the persisted configuration document.
type Settings struct {
	History HistorySettings `json:"history"`
}

// Store guards one settings document bound to a file path.
type Store struct {
	path     string
	mu       sync.RWMutex
	settings Settings
}

// DefaultPath returns the settings path under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: no user config dir: %w", err)
	}
	return filepath.Join(dir, "quillscroll", configName), nil
}

// Defaults returns the settings used when no file exists.
func Defaults() Settings {
	return Settings{History: HistorySettings{Mode: ModeCompact, MaxLines: DefaultMaxLines}}
}

// Open loads the settings at path, falling back to defaults when the file
// does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, settings: Defaults()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.settings); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return s, nil
}

// Save writes the settings back to the store's path.
func (s *Store) Save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.settings, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", s.path, err)
	}
	return nil
}

// HistoryKind maps the configured history settings to a store kind. Unknown
// modes fall back to the defaults.
func (s *Store) HistoryKind() scroll.StoreKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return KindFor(s.settings.History)
}

// SetHistoryKind records a store kind back into the settings.
func (s *Store) SetHistoryKind(kind scroll.StoreKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind.Tag() {
	case scroll.KindFile:
		s.settings.History = HistorySettings{Mode: ModeFile}
	case scroll.KindCompact:
		s.settings.History = HistorySettings{Mode: ModeCompact, MaxLines: kind.MaxLineCount()}
	default:
		s.settings.History = HistorySettings{Mode: ModeNone}
	}
}

// KindFor maps history settings to a store kind.
func KindFor(h HistorySettings) scroll.StoreKind {
	switch h.Mode {
	case ModeNone:
		return scroll.NoneKind()
	case ModeFile:
		return scroll.FileKind()
	case ModeCompact:
		maxLines := h.MaxLines
		if maxLines <= 0 {
			maxLines = DefaultMaxLines
		}
		return scroll.CompactKind(maxLines)
	default:
		return KindFor(Defaults().History)
	}
}
