package core

import (
	"regexp"
	"testing"
)

func rules(locations []string, patterns ...string) Rules {
	r := Rules{BaseLocations: locations}
	for _, p := range patterns {
		r.IgnoreRules = append(r.IgnoreRules, regexp.MustCompile(p))
	}
	return r
}

func TestEvaluate(t *testing.T) {
	inbox := rules([]string{"Inbox"})

	tests := []struct {
		name    string
		path    string
		content string
		rules   Rules
		want    bool
		reason  Reason
	}{
		{
			name:  "plain note in base location",
			path:  "Inbox/Meeting Notes.md",
			rules: inbox,
			want:  true,
		},
		{
			name:   "wrong extension",
			path:   "Inbox/photo.png",
			rules:  inbox,
			reason: ReasonWrongExtension,
		},
		{
			name:   "no extension",
			path:   "Inbox/README",
			rules:  inbox,
			reason: ReasonWrongExtension,
		},
		{
			name:   "outside base locations",
			path:   "Other/Note.md",
			rules:  inbox,
			reason: ReasonOutsideBase,
		},
		{
			name:   "subfolder of base location does not qualify",
			path:   "Inbox/Nested/Note.md",
			rules:  inbox,
			reason: ReasonOutsideBase,
		},
		{
			name:   "vault root when only Inbox configured",
			path:   "Note.md",
			rules:  inbox,
			reason: ReasonOutsideBase,
		},
		{
			name:   "empty base-location set fails closed",
			path:   "Inbox/Note.md",
			rules:  rules(nil),
			reason: ReasonOutsideBase,
		},
		{
			name:   "already an identifier",
			path:   "Inbox/550e8400-e29b-41d4-a716-446655440000.md",
			rules:  inbox,
			reason: ReasonAlreadyIdentifier,
		},
		{
			name:   "already an identifier, uppercase",
			path:   "Inbox/550E8400-E29B-41D4-A716-446655440000.md",
			rules:  inbox,
			reason: ReasonAlreadyIdentifier,
		},
		{
			name:   "ignore pattern match",
			path:   "Inbox/my-template.md",
			rules:  rules([]string{"Inbox"}, ".*template.*"),
			reason: ReasonIgnored,
		},
		{
			name:  "ignore pattern miss",
			path:  "Inbox/daily.md",
			rules: rules([]string{"Inbox"}, ".*template.*"),
			want:  true,
		},
		{
			name:    "template marker in content",
			path:    "Inbox/Draft.md",
			content: "# Draft\n\n<% tp.date.now() %>\n",
			rules:   inbox,
			reason:  ReasonTemplateActive,
		},
		{
			name:    "template marker spanning lines",
			path:    "Inbox/Draft.md",
			content: "<%\n  tp.file.title\n%>",
			rules:   inbox,
			reason:  ReasonTemplateActive,
		},
		{
			name:    "lone opening marker is not a span",
			path:    "Inbox/Draft.md",
			content: "uses <% as literal text",
			rules:   inbox,
			want:    true,
		},
		{
			name:  "second base location",
			path:  "Archive/2024/Note.md",
			rules: rules([]string{"Inbox", "Archive/2024"}),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.path, tt.content, tt.rules)
			if got.Eligible != tt.want {
				t.Fatalf("Evaluate(%q) eligible = %v, want %v (reason %q)", tt.path, got.Eligible, tt.want, got.Reason)
			}
			if got.Reason != tt.reason {
				t.Errorf("Evaluate(%q) reason = %q, want %q", tt.path, got.Reason, tt.reason)
			}
		})
	}
}

func TestEvaluateCheckOrder(t *testing.T) {
	// A document failing several checks reports the first failure only.
	r := rules(nil, ".*")
	got := Evaluate("Elsewhere/550e8400-e29b-41d4-a716-446655440000.md", "<% pending %>", r)
	if got.Eligible {
		t.Fatal("expected ineligible")
	}
	if got.Reason != ReasonOutsideBase {
		t.Errorf("reason = %q, want the location check to short-circuit first", got.Reason)
	}
}

func TestEvaluateCommand(t *testing.T) {
	t.Run("bypasses the location check", func(t *testing.T) {
		got := EvaluateCommand("Anywhere/Note.md", "", rules([]string{"Inbox"}))
		if !got.Eligible {
			t.Fatalf("expected eligible, got reason %q", got.Reason)
		}
	})

	t.Run("still rejects identifiers", func(t *testing.T) {
		got := EvaluateCommand("Anywhere/550e8400-e29b-41d4-a716-446655440000.md", "", rules([]string{"Inbox"}))
		if got.Reason != ReasonAlreadyIdentifier {
			t.Errorf("reason = %q, want %q", got.Reason, ReasonAlreadyIdentifier)
		}
	})

	t.Run("still rejects ignore matches", func(t *testing.T) {
		got := EvaluateCommand("Anywhere/my-template.md", "", rules(nil, "template"))
		if got.Reason != ReasonIgnored {
			t.Errorf("reason = %q, want %q", got.Reason, ReasonIgnored)
		}
	})

	t.Run("still rejects active templates", func(t *testing.T) {
		got := EvaluateCommand("Anywhere/Note.md", "<% t %>", Rules{})
		if got.Reason != ReasonTemplateActive {
			t.Errorf("reason = %q, want %q", got.Reason, ReasonTemplateActive)
		}
	})
}

func TestDocumentRef(t *testing.T) {
	tests := []struct {
		path, name, stem, ext, parent string
	}{
		{"Inbox/Meeting Notes.md", "Meeting Notes.md", "Meeting Notes", ".md", "Inbox"},
		{"Note.md", "Note.md", "Note", ".md", ""},
		{"a/b/c.txt", "c.txt", "c", ".txt", "a/b"},
		{"Inbox/README", "README", "README", "", "Inbox"},
		{"Inbox/.hidden", ".hidden", ".hidden", "", "Inbox"},
	}

	for _, tt := range tests {
		ref := DocumentRef{Path: tt.path}
		if got := ref.Name(); got != tt.name {
			t.Errorf("%q Name() = %q, want %q", tt.path, got, tt.name)
		}
		if got := ref.Stem(); got != tt.stem {
			t.Errorf("%q Stem() = %q, want %q", tt.path, got, tt.stem)
		}
		if got := ref.Ext(); got != tt.ext {
			t.Errorf("%q Ext() = %q, want %q", tt.path, got, tt.ext)
		}
		if got := ref.Parent(); got != tt.parent {
			t.Errorf("%q Parent() = %q, want %q", tt.path, got, tt.parent)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/Inbox/Note.md", "Inbox/Note.md"},
		{"Inbox/Note.md/", "Inbox/Note.md"},
		{"Inbox\\Note.md", "Inbox/Note.md"},
		{"", ""},
		{"/", ""},
	}
	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
