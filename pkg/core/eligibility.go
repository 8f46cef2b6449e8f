package core

import (
	"regexp"
	"strings"

	"github.com/quiverd/notemint/pkg/identifier"
)

// ManagedExtension is the only note format notemint touches.
const ManagedExtension = ".md"

// templateMarker matches an in-progress templating span: an opening
// marker, anything (including newlines), then a closing marker,
// non-greedily. Its presence means another tool is still populating the
// note and it must be left alone for now.
var templateMarker = regexp.MustCompile(`(?s)<%.*?%>`)

// Rules is the read-only configuration view the eligibility checks run
// against. Callers take a fresh Rules snapshot at every decision point.
type Rules struct {
	// BaseLocations are normalized folder paths. A note qualifies only if
	// its immediate parent equals one of them exactly; an empty set means
	// nothing qualifies.
	BaseLocations []string

	// IgnoreRules permanently exclude any filename they match.
	IgnoreRules []*regexp.Regexp
}

// InBaseLocations reports whether parent is a member of the set.
func (r Rules) InBaseLocations(parent string) bool {
	for _, loc := range r.BaseLocations {
		if parent == loc {
			return true
		}
	}
	return false
}

// Ignored reports whether name matches any ignore rule.
func (r Rules) Ignored(name string) bool {
	for _, re := range r.IgnoreRules {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Reason explains why a document is not eligible.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonWrongExtension    Reason = "not a markdown note"
	ReasonOutsideBase       Reason = "not directly inside a base location"
	ReasonAlreadyIdentifier Reason = "filename is already an identifier"
	ReasonIgnored           Reason = "filename matches an ignore pattern"
	ReasonTemplateActive    Reason = "template expansion still in progress"
)

// Decision is the outcome of an eligibility evaluation.
type Decision struct {
	Eligible bool
	Reason   Reason
}

func eligible() Decision    { return Decision{Eligible: true} }
func not(r Reason) Decision { return Decision{Reason: r} }

// Evaluate decides whether the document at path, with the given content,
// qualifies for renaming under rules. Checks short-circuit in a fixed
// order: extension, location, already-identifier, ignore rules, template
// marker. It is pure; callers re-run it against fresh content and a fresh
// Rules snapshot at commit time.
func Evaluate(path, content string, rules Rules) Decision {
	ref := DocumentRef{Path: NormalizePath(path)}

	if !strings.EqualFold(ref.Ext(), ManagedExtension) {
		return not(ReasonWrongExtension)
	}
	if !rules.InBaseLocations(ref.Parent()) {
		return not(ReasonOutsideBase)
	}
	return evaluateCommon(ref, content, rules)
}

// EvaluateCommand is the variant for the explicit user command. It skips
// the location check (the user picked the note deliberately) but keeps
// every other gate.
func EvaluateCommand(path, content string, rules Rules) Decision {
	ref := DocumentRef{Path: NormalizePath(path)}

	if !strings.EqualFold(ref.Ext(), ManagedExtension) {
		return not(ReasonWrongExtension)
	}
	return evaluateCommon(ref, content, rules)
}

func evaluateCommon(ref DocumentRef, content string, rules Rules) Decision {
	if identifier.IsCanonical(ref.Stem()) {
		return not(ReasonAlreadyIdentifier)
	}
	if rules.Ignored(ref.Name()) {
		return not(ReasonIgnored)
	}
	if templateMarker.MatchString(content) {
		return not(ReasonTemplateActive)
	}
	return eligible()
}
