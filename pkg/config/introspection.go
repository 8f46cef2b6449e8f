package config

import "github.com/aretw0/introspection"

// StoreState exposes the normalized configuration for observability.
type StoreState struct {
	BaseLocations  []string `json:"base_locations"`
	IgnorePatterns int      `json:"ignore_patterns"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	rules := s.Snapshot()
	return StoreState{
		BaseLocations:  rules.BaseLocations,
		IgnorePatterns: len(rules.IgnoreRules),
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "config"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
