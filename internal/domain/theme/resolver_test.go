package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
)

func TestResolveThemeIsTotalForEmptySettings(t *testing.T) {
	for _, raw := range []map[string]any{nil, {}} {
		resolved := ResolveTheme(raw, nil)
		require.NotNil(t, resolved)

		for _, name := range append(append([]string{}, headingLevels...), Paragraph, "unknown-style") {
			style := GetTextStyle(resolved, name)
			assert.NotEmpty(t, style.FontSize, name)
			assert.NotEmpty(t, style.FontWeight, name)
			assert.NotEmpty(t, style.LineHeight, name)
			assert.NotEmpty(t, style.TextTransform, name)
			assert.NotEmpty(t, style.Color, name)
			assert.NotEmpty(t, style.FontFamily, name)
		}

		assert.NotNil(t, GetComponentStyle(resolved, "product-title"))
		for _, key := range []string{BodyFont, HeadingFont, SubheadingFont, AccentFont, "heading2_font", "nope"} {
			assert.NotEmpty(t, GetResolvedFont(resolved, key), key)
		}
	}
}

func TestResolveThemeMergePriority(t *testing.T) {
	applied := &builder.AppliedTheme{
		ID: "company",
		Settings: map[string]any{
			"primary":      "10 50% 50%",
			"heading_font": "Lora",
			"body_font":    "Roboto",
			"text_styles": map[string]any{
				"heading1": map[string]any{"fontSize": "3rem", "fontWeight": "800"},
			},
		},
	}
	raw := map[string]any{
		"primary": "200 60% 40%",
		"text_styles": map[string]any{
			"heading1": map[string]any{"fontSize": "4rem"},
		},
	}

	resolved := ResolveTheme(raw, applied)

	assert.Equal(t, "hsl(200 60% 40%)", resolved.Color("primary"))
	h1 := GetTextStyle(resolved, "heading1")
	assert.Equal(t, "4rem", h1.FontSize, "page override wins")
	assert.Equal(t, "800", h1.FontWeight, "applied theme fills the rest of the rule")
	assert.Equal(t, "tight", h1.LineHeight, "built-in default fills missing fields")
	assert.Equal(t, "Lora", h1.FontFamily, "per-level font follows heading_font")
	assert.Equal(t, "Roboto", GetTextStyle(resolved, Paragraph).FontFamily)
}

func TestResolveThemeDegradesPerKey(t *testing.T) {
	raw := map[string]any{
		"text_styles":      "not-a-map",
		"component_styles": map[string]any{"product-title": "bad", "button": map[string]any{"color": "red", "nested": map[string]any{}}},
		"heading_font":     42.0,
		"primary":          []any{"x"},
	}
	resolved := ResolveTheme(raw, nil)

	assert.Equal(t, "2.25rem", GetTextStyle(resolved, "heading1").FontSize)
	assert.Empty(t, GetComponentStyle(resolved, "product-title"))
	assert.Equal(t, map[string]string{"color": "red"}, GetComponentStyle(resolved, "button"))
	assert.Equal(t, "42", GetResolvedFont(resolved, HeadingFont))
	assert.Equal(t, "hsl(222.2 47.4% 11.2%)", resolved.Color("primary"))
}

func TestGetTextStyleUnknownFallsBackToParagraph(t *testing.T) {
	resolved := ResolveTheme(nil, nil)
	assert.Equal(t, GetTextStyle(resolved, Paragraph), GetTextStyle(resolved, "display-xl"))
}

func TestGetResolvedFont(t *testing.T) {
	resolved := ResolveTheme(map[string]any{
		"heading_font":  "Merriweather",
		"heading3_font": "Oswald",
		"accent_font":   "theme.heading_font",
	}, nil)

	assert.Equal(t, "Oswald", GetResolvedFont(resolved, "heading3_font"))
	assert.Equal(t, "Merriweather", GetResolvedFont(resolved, "heading2_font"))
	assert.Equal(t, "Merriweather", GetResolvedFont(resolved, AccentFont))
	assert.Equal(t, "Merriweather", GetResolvedFont(resolved, "heading"))
	assert.Equal(t, "Inter", GetResolvedFont(resolved, "mystery_font"))
	assert.Equal(t, "Inter", GetResolvedFont(nil, BodyFont))
}

func TestTextStyleColorResolution(t *testing.T) {
	resolved := ResolveTheme(map[string]any{
		"brand": "340 80% 50%",
		"text_styles": map[string]any{
			"heading2":  map[string]any{"color": "brand"},
			"heading3":  map[string]any{"color": "theme.brand"},
			"heading4":  map[string]any{"color": "#112233"},
			"paragraph": map[string]any{"color": "theme.missing"},
		},
	}, nil)

	assert.Equal(t, "hsl(340 80% 50%)", GetTextStyle(resolved, "heading2").Color)
	assert.Equal(t, "hsl(340 80% 50%)", GetTextStyle(resolved, "heading3").Color)
	assert.Equal(t, "#112233", GetTextStyle(resolved, "heading4").Color)
	assert.Equal(t, "hsl(222.2 84% 4.9%)", GetTextStyle(resolved, Paragraph).Color, "unresolvable color falls back to foreground")
}

func TestHSLToCSS(t *testing.T) {
	cases := map[string]string{
		"220 90% 10%":   "hsl(220 90% 10%)",
		"220, 90%, 10%": "hsl(220 90% 10%)",
		"  0 0% 100% ":  "hsl(0 0% 100%)",
		"#ff0000":       "#ff0000",
		"rgb(1, 2, 3)":  "rgb(1, 2, 3)",
		"hsl(1 2% 3%)":  "hsl(1 2% 3%)",
		"var(--brand)":  "var(--brand)",
		"tomato":        "tomato",
		"":              "",
		"220 90 10":     "220 90 10",
	}
	for in, want := range cases {
		assert.Equal(t, want, HSLToCSS(in), in)
	}
}

func TestTextStyleNamesStable(t *testing.T) {
	names := TextStyleNames(ResolveTheme(nil, nil))
	assert.Equal(t, []string{"heading1", "heading2", "heading3", "heading4", "heading5", "heading6", "paragraph"}, names)
}
