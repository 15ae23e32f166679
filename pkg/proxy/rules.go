package proxy

import (
	"strings"

	"github.com/gatefig/gatefig/pkg/models"
)

// MatchKind selects how a rule's pattern is compared against a request
// path.
type MatchKind string

const (
	MatchPrefix MatchKind = "prefix"
	MatchSuffix MatchKind = "suffix"
)

// Rule maps one path shape to an upstream.
type Rule struct {
	Name     string
	Kind     MatchKind
	Pattern  string
	Upstream models.UpstreamID
}

// Matches reports whether path falls under this rule. Prefix rules are
// segment-aware: "/api" matches "/api" and "/api/users" but not
// "/apiary".
func (r Rule) Matches(path string) bool {
	switch r.Kind {
	case MatchPrefix:
		return matchesPrefix(path, r.Pattern)
	case MatchSuffix:
		return strings.HasSuffix(path, r.Pattern)
	default:
		return false
	}
}

func matchesPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// Table is the ordered rule list. It is built once at startup and never
// mutated afterwards.
type Table struct {
	rules []Rule
}

func NewTable(rules []Rule) *Table {
	copied := make([]Rule, len(rules))
	copy(copied, rules)
	return &Table{rules: copied}
}

// Rules returns a copy of the table for display and tests.
func (t *Table) Rules() []Rule {
	copied := make([]Rule, len(t.rules))
	copy(copied, t.rules)
	return copied
}

// Resolve returns the rule owning path. The table is scanned top to
// bottom and the first match wins; ok is false when no rule matches and
// the request belongs to the shell.
func (t *Table) Resolve(path string) (Rule, bool) {
	for _, rule := range t.rules {
		if rule.Matches(path) {
			return rule, true
		}
	}
	return Rule{}, false
}

// legacyAssetPrefixes are the static asset roots the legacy monolith
// serves itself.
var legacyAssetPrefixes = []string{
	"/css", "/js", "/img", "/images", "/lib", "/common", "/font", "/dist",
}

// DefaultRules is the standard migration table: API traffic to the new
// service, legacy screens and their assets to the monolith. Order
// matters; Resolve takes the first match.
func DefaultRules() []Rule {
	rules := []Rule{
		{Name: "api", Kind: MatchPrefix, Pattern: "/api", Upstream: models.UpstreamAPI},
		{Name: "legacy-screens", Kind: MatchSuffix, Pattern: ".do", Upstream: models.UpstreamLegacy},
	}

	for _, prefix := range legacyAssetPrefixes {
		rules = append(rules, Rule{
			Name:     "assets-" + strings.TrimPrefix(prefix, "/"),
			Kind:     MatchPrefix,
			Pattern:  prefix,
			Upstream: models.UpstreamLegacy,
		})
	}

	return rules
}
