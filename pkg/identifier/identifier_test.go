package identifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("matches canonical pattern", func(t *testing.T) {
		id := Generate()
		assert.True(t, IsCanonical(id), "generated id %q should be canonical", id)
		assert.Equal(t, strings.ToLower(id), id, "generation emits lowercase")
	})

	t.Run("does not repeat", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 200; i++ {
			id := Generate()
			require.False(t, seen[id], "duplicate identifier %q", id)
			seen[id] = true
		}
	})
}

func TestGenerateFallback(t *testing.T) {
	t.Run("canonical shape with fixed version and variant", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			id := generateFallback()
			require.True(t, IsCanonical(id), "fallback id %q should be canonical", id)
			assert.Equal(t, byte('4'), id[14], "version nibble")
			assert.Contains(t, "89ab", string(id[19]), "variant nibble")
		}
	})

	t.Run("does not repeat", func(t *testing.T) {
		a, b := generateFallback(), generateFallback()
		assert.NotEqual(t, a, b)
	})
}

func TestIsCanonical(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"lowercase uuid", "550e8400-e29b-41d4-a716-446655440000", true},
		{"uppercase uuid", "550E8400-E29B-41D4-A716-446655440000", true},
		{"mixed case", "550e8400-E29B-41d4-A716-446655440000", true},
		{"empty", "", false},
		{"plain title", "Meeting Notes", false},
		{"missing group", "550e8400-e29b-41d4-a716", false},
		{"no dashes", "550e8400e29b41d4a716446655440000", false},
		{"non-hex", "550e8400-e29b-41d4-a716-44665544000g", false},
		{"trailing garbage", "550e8400-e29b-41d4-a716-446655440000.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCanonical(tt.input))
		})
	}
}
