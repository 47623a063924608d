package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
)

func TestResolveStyleValue(t *testing.T) {
	resolved := ResolveTheme(map[string]any{
		"heading":         "220 90% 10%",
		"cta":             "theme.primary",
		"loop_a":          "theme.loop_b",
		"loop_b":          "theme.loop_a",
		"self":            "theme.self",
		"section_padding": "64px",
		"tagline":         "Fresh daily",
	}, nil)

	cases := []struct {
		in   any
		want any
	}{
		{"theme.heading", "hsl(220 90% 10%)"},
		{"theme:heading", "hsl(220 90% 10%)"},
		{"theme.cta", "hsl(222.2 47.4% 11.2%)"},
		{"theme.heading_font", "Poppins"},
		{"theme.heading", "hsl(220 90% 10%)"},
		{"theme.section_padding", "64px"},
		{"theme.tagline", "Fresh daily"},
		{"theme.loop_a", ""},
		{"theme.self", ""},
		{"theme.nothing", ""},
		{"theme.", "theme."},
		{"12px", "12px"},
		{14.0, 14.0},
		{nil, nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveStyleValue(tc.in, resolved, nil), "%v", tc.in)
	}
}

func TestResolveStyleValueIsIdempotent(t *testing.T) {
	resolved := ResolveTheme(map[string]any{
		"a":    "theme.b",
		"b":    "theme.c",
		"c":    "10 10% 10%",
		"loop": "theme.loop",
	}, nil)
	for _, v := range []any{"theme.a", "theme.loop", "theme.primary", "plain", "theme.", 3.0, "theme.missing"} {
		once := ResolveStyleValue(v, resolved, nil)
		assert.Equal(t, once, ResolveStyleValue(once, resolved, nil), "%v", v)
	}
}

func TestResolveStyleValueChainLimit(t *testing.T) {
	settings := map[string]any{}
	names := []string{"c0", "c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9"}
	for i := 0; i < len(names)-1; i++ {
		settings[names[i]] = "theme." + names[i+1]
	}
	settings["c9"] = "1 1% 1%"
	resolved := ResolveTheme(settings, nil)

	assert.Equal(t, "", ResolveStyleValue("theme.c0", resolved, nil))
	assert.Equal(t, "hsl(1 1% 1%)", ResolveStyleValue("theme.c4", resolved, nil))
}

func TestResolveStyleValueFromAppliedTheme(t *testing.T) {
	applied := &builder.AppliedTheme{Settings: map[string]any{"primary": "1 2% 3%"}}
	assert.Equal(t, "hsl(1 2% 3%)", ResolveStyleValue("theme.primary", nil, applied))
}
