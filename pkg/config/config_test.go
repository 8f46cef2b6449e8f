package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single entry", "Inbox", []string{"Inbox"}},
		{"multiple entries", "Inbox,Archive", []string{"Inbox", "Archive"}},
		{"whitespace trimmed", " Inbox , Archive ", []string{"Inbox", "Archive"}},
		{"slashes stripped", "/Inbox/,Notes/Fleeting/", []string{"Inbox", "Notes/Fleeting"}},
		{"empties discarded", "Inbox,,", []string{"Inbox"}},
		{"empty string", "", nil},
		{"only separators", " , / , ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitList(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompileIgnoreRules(t *testing.T) {
	t.Run("compiles valid patterns", func(t *testing.T) {
		rules := CompileIgnoreRules(".*template.*, ^draft-", nil)
		if len(rules) != 2 {
			t.Fatalf("expected 2 rules, got %d", len(rules))
		}
		if !rules[0].MatchString("my-template.md") {
			t.Error("first rule should match my-template.md")
		}
	})

	t.Run("drops invalid pattern with warning and keeps the rest", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		rules := CompileIgnoreRules("[unclosed, valid.*", logger)
		if len(rules) != 1 {
			t.Fatalf("expected 1 surviving rule, got %d", len(rules))
		}
		if !bytes.Contains(buf.Bytes(), []byte("invalid ignore pattern")) {
			t.Error("expected a warning about the dropped pattern")
		}
	})

	t.Run("empty input yields no rules", func(t *testing.T) {
		if rules := CompileIgnoreRules("", nil); rules != nil {
			t.Errorf("expected nil, got %v", rules)
		}
	})
}

func TestStoreSnapshot(t *testing.T) {
	store := NewStore(Settings{BaseLocations: "Inbox, Archive"}, nil)

	rules := store.Snapshot()
	if !rules.InBaseLocations("Inbox") || !rules.InBaseLocations("Archive") {
		t.Fatalf("snapshot should contain both locations: %v", rules.BaseLocations)
	}

	// Updates are visible on the next snapshot; nothing is cached.
	store.Update(Settings{BaseLocations: "Elsewhere", IgnorePatterns: "template"})
	rules = store.Snapshot()
	if rules.InBaseLocations("Inbox") {
		t.Error("stale location survived the update")
	}
	if !rules.Ignored("my-template.md") {
		t.Error("updated ignore rules should apply")
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	in := Settings{BaseLocations: "Inbox", IgnorePatterns: ".*template.*"}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out != in {
		t.Errorf("round-trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}
