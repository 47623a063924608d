package styles

import (
	"sort"
	"strings"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/theme"
)

// ThemeStylesheet renders a resolved theme as CSS custom properties plus one class per text
// style (".ts-heading1", ".ts-paragraph", ...).
func ThemeStylesheet(t *theme.Resolved) string {
	if t == nil {
		t = theme.ResolveTheme(nil, nil)
	}

	var b strings.Builder
	b.WriteString(":root {\n")
	writeVars(&b, "", t.Colors, func(name, raw string) string {
		if theme.IsReference(raw) {
			return t.Color(name)
		}
		return raw
	})
	writeVars(&b, "font-", t.Fonts, func(name, _ string) string {
		return theme.GetResolvedFont(t, name)
	})
	writeVars(&b, "", t.Spacing, func(_, raw string) string {
		return WithUnit(raw)
	})
	b.WriteString("}\n")

	for _, name := range theme.TextStyleNames(t) {
		ts := theme.GetTextStyle(t, name)
		rule := CSS{
			"fontFamily":    ts.FontFamily,
			"fontSize":      WithUnit(ts.FontSize),
			"fontWeight":    ts.FontWeight,
			"lineHeight":    NormalizeLineHeight(ts.LineHeight, ""),
			"textTransform": ts.TextTransform,
			"color":         ts.Color,
		}
		b.WriteString(".ts-")
		b.WriteString(name)
		b.WriteString(" { ")
		b.WriteString(rule.String())
		b.WriteString(" }\n")
	}
	return b.String()
}

func writeVars(b *strings.Builder, prefix string, values map[string]string, render func(name, raw string) string) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := render(name, values[name])
		if v == "" {
			continue
		}
		b.WriteString("  --")
		b.WriteString(prefix)
		b.WriteString(strings.ReplaceAll(strings.TrimSuffix(name, "_font"), "_", "-"))
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString(";\n")
	}
}
