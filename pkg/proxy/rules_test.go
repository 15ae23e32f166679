package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatefig/gatefig/pkg/models"
)

func TestTableResolve(t *testing.T) {
	table := NewTable(DefaultRules())

	testCases := []struct {
		name     string
		path     string
		upstream models.UpstreamID
		matched  bool
	}{
		{"api root", "/api", models.UpstreamAPI, true},
		{"api subpath", "/api/anything", models.UpstreamAPI, true},
		{"api deep subpath", "/api/auth/login", models.UpstreamAPI, true},
		{"legacy screen", "/login.do", models.UpstreamLegacy, true},
		{"legacy screen in subdir", "/foo/bar.do", models.UpstreamLegacy, true},
		{"legacy css", "/css/app.css", models.UpstreamLegacy, true},
		{"legacy js", "/js/main.js", models.UpstreamLegacy, true},
		{"legacy img", "/img/logo.png", models.UpstreamLegacy, true},
		{"legacy images", "/images/banner.jpg", models.UpstreamLegacy, true},
		{"legacy lib", "/lib/jquery.js", models.UpstreamLegacy, true},
		{"legacy common", "/common/util.js", models.UpstreamLegacy, true},
		{"legacy font", "/font/icons.woff2", models.UpstreamLegacy, true},
		{"legacy dist", "/dist/bundle.js", models.UpstreamLegacy, true},
		{"unmapped path passes through", "/unmapped/path", "", false},
		{"shell root passes through", "/", "", false},
		{"shell page passes through", "/legacy-test", "", false},
		{"prefix is segment aware", "/apiary", "", false},
		{"asset prefix is segment aware", "/javascript/app.js", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rule, ok := table.Resolve(tc.path)
			require.Equal(t, tc.matched, ok)
			if tc.matched {
				assert.Equal(t, tc.upstream, rule.Upstream)
			}
		})
	}
}

func TestTableResolveFirstMatchWins(t *testing.T) {
	// /api/report.do matches both the /api prefix and the .do suffix.
	// The table is ordered, so the earlier rule decides.
	table := NewTable(DefaultRules())

	rule, ok := table.Resolve("/api/report.do")
	require.True(t, ok)
	assert.Equal(t, models.UpstreamAPI, rule.Upstream)

	reversed := NewTable([]Rule{
		{Name: "legacy-screens", Kind: MatchSuffix, Pattern: ".do", Upstream: models.UpstreamLegacy},
		{Name: "api", Kind: MatchPrefix, Pattern: "/api", Upstream: models.UpstreamAPI},
	})

	rule, ok = reversed.Resolve("/api/report.do")
	require.True(t, ok)
	assert.Equal(t, models.UpstreamLegacy, rule.Upstream)
}

func TestDefaultRulesOrder(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, 10)

	assert.Equal(t, "api", rules[0].Name)
	assert.Equal(t, "legacy-screens", rules[1].Name)

	wantPrefixes := []string{"/css", "/js", "/img", "/images", "/lib", "/common", "/font", "/dist"}
	for i, prefix := range wantPrefixes {
		assert.Equal(t, prefix, rules[2+i].Pattern)
		assert.Equal(t, models.UpstreamLegacy, rules[2+i].Upstream)
	}
}

func TestRuleMatches(t *testing.T) {
	prefixRule := Rule{Kind: MatchPrefix, Pattern: "/api"}
	assert.True(t, prefixRule.Matches("/api"))
	assert.True(t, prefixRule.Matches("/api/v1/users"))
	assert.False(t, prefixRule.Matches("/apiary"))
	assert.False(t, prefixRule.Matches("/v1/api"))

	suffixRule := Rule{Kind: MatchSuffix, Pattern: ".do"}
	assert.True(t, suffixRule.Matches("/login.do"))
	assert.True(t, suffixRule.Matches("/deeply/nested/screen.do"))
	assert.False(t, suffixRule.Matches("/login.dot"))
	assert.False(t, suffixRule.Matches("/dologin"))
}
