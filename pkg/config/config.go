// Package config holds the notemint settings: which folders are watched
// and which filenames are never touched. Settings are stored in the
// CSV-like string form the configuration surface exposes and normalized
// into core.Rules on every read.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/quiverd/notemint/pkg/core"
)

// DefaultFileName is the settings file notemint looks for in the vault root.
const DefaultFileName = ".notemint.yaml"

// Settings is the persisted shape of the configuration. Both fields are
// comma-separated lists; empty means renaming is disabled (fail closed).
type Settings struct {
	// BaseLocations is a comma-separated list of vault folders whose
	// direct entries are renamed, e.g. "Inbox, Notes/Fleeting".
	BaseLocations string `yaml:"base_locations"`

	// IgnorePatterns is a comma-separated list of regular expressions.
	// Filenames matching any of them are never renamed.
	IgnorePatterns string `yaml:"ignore_patterns,omitempty"`
}

// SplitList splits a comma-separated list into normalized entries:
// whitespace and surrounding slashes trimmed, empties discarded.
func SplitList(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		part = core.NormalizePath(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// CompileIgnoreRules compiles the comma-separated pattern list. Invalid
// patterns are dropped with a warning, never fatal: one bad pattern must
// not disable the remaining rules.
func CompileIgnoreRules(csv string, logger *slog.Logger) []*regexp.Regexp {
	var rules []*regexp.Regexp
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		re, err := regexp.Compile(part)
		if err != nil {
			if logger != nil {
				logger.Warn("dropping invalid ignore pattern", "pattern", part, "error", err)
			}
			continue
		}
		rules = append(rules, re)
	}
	return rules
}

// Store is the process-wide mutable settings holder. The UI (CLI flags,
// settings file reloads) may swap settings at any time; decision points
// always read a fresh snapshot and never cache it across a settling delay.
type Store struct {
	mu       sync.RWMutex
	settings Settings
	logger   *slog.Logger
}

// NewStore creates a settings store with the given initial settings.
func NewStore(settings Settings, logger *slog.Logger) *Store {
	return &Store{settings: settings, logger: logger}
}

// Settings returns the current raw settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the settings wholesale.
func (s *Store) Update(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// Snapshot normalizes the current settings into the rules view the
// eligibility checks consume. It is recomputed on every call.
func (s *Store) Snapshot() core.Rules {
	s.mu.RLock()
	settings := s.settings
	logger := s.logger
	s.mu.RUnlock()

	return core.Rules{
		BaseLocations: SplitList(settings.BaseLocations),
		IgnoreRules:   CompileIgnoreRules(settings.IgnorePatterns, logger),
	}
}

// Load reads settings from a YAML file.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to a YAML file.
func Save(path string, settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
