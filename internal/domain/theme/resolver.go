// Package theme resolves raw theme settings into a fully defaulted theme and resolves
// symbolic style references against it.
package theme

import (
	"sort"
	"strconv"
	"strings"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
)

// TextStyle is the concrete typography of a named text style.
type TextStyle struct {
	FontSize      string `json:"fontSize"`
	FontWeight    string `json:"fontWeight"`
	LineHeight    string `json:"lineHeight"`
	TextTransform string `json:"textTransform"`
	Color         string `json:"color"`
	FontFamily    string `json:"fontFamily"`
}

// Resolved is a theme with every token present. Color values are kept in their stored form
// (usually HSL triplets) and converted on access.
type Resolved struct {
	Colors     map[string]string
	Fonts      map[string]string
	Spacing    map[string]string
	Tokens     map[string]string
	textRules  map[string]textRule
	components map[string]map[string]string
}

// ResolveTheme merges built-in defaults, the applied theme's settings and the page-level
// overrides, in increasing priority. Malformed input degrades per key.
func ResolveTheme(raw map[string]any, applied *builder.AppliedTheme) *Resolved {
	t := &Resolved{
		Colors:     copyStrings(defaultColors),
		Fonts:      copyStrings(defaultFonts),
		Spacing:    copyStrings(defaultSpacing),
		Tokens:     map[string]string{},
		textRules:  make(map[string]textRule, len(defaultTextRules)),
		components: map[string]map[string]string{},
	}
	for name, rule := range defaultTextRules {
		t.textRules[name] = rule
	}

	if applied != nil {
		t.apply(applied.Settings)
	}
	t.apply(raw)

	for _, level := range headingLevels {
		key := level + "_font"
		if t.Fonts[key] == "" {
			t.Fonts[key] = t.Fonts[HeadingFont]
		}
	}
	return t
}

func (t *Resolved) apply(settings map[string]any) {
	for key, value := range settings {
		switch {
		case key == "text_styles" || key == "textStyles":
			t.applyTextStyles(value)
		case key == "component_styles" || key == "componentStyles":
			t.applyComponentStyles(value)
		case strings.HasSuffix(key, "_font"):
			if s, ok := scalarString(value); ok && s != "" {
				t.Fonts[key] = s
			}
		case isSpacingKey(key):
			if s, ok := scalarString(value); ok && s != "" {
				t.Spacing[key] = s
			}
		default:
			s, ok := scalarString(value)
			if !ok || s == "" {
				continue
			}
			if _, known := defaultColors[key]; known || IsColor(s) || IsReference(s) {
				t.Colors[key] = s
				continue
			}
			t.Tokens[key] = s
		}
	}
}

func (t *Resolved) applyTextStyles(value any) {
	styles, ok := value.(map[string]any)
	if !ok {
		return
	}
	for name, rawRule := range styles {
		fields, ok := rawRule.(map[string]any)
		if !ok {
			continue
		}
		rule, exists := t.textRules[name]
		if !exists {
			rule = defaultTextRules[Paragraph]
		}
		set := func(dst *string, key string) {
			if s, ok := scalarString(fields[key]); ok && s != "" {
				*dst = s
			}
		}
		set(&rule.FontSize, "fontSize")
		set(&rule.FontWeight, "fontWeight")
		set(&rule.LineHeight, "lineHeight")
		set(&rule.TextTransform, "textTransform")
		set(&rule.Color, "color")
		t.textRules[name] = rule
	}
}

func (t *Resolved) applyComponentStyles(value any) {
	components, ok := value.(map[string]any)
	if !ok {
		return
	}
	for name, rawStyles := range components {
		props, ok := rawStyles.(map[string]any)
		if !ok {
			continue
		}
		bag := t.components[name]
		if bag == nil {
			bag = map[string]string{}
			t.components[name] = bag
		}
		for prop, v := range props {
			if s, ok := scalarString(v); ok {
				bag[prop] = s
			}
		}
	}
}

func orDefault(t *Resolved) *Resolved {
	if t == nil {
		return ResolveTheme(nil, nil)
	}
	return t
}

// GetTextStyle returns the typography of a named style; unknown names use paragraph.
func GetTextStyle(t *Resolved, styleName string) TextStyle {
	t = orDefault(t)
	name := styleName
	rule, ok := t.textRules[name]
	if !ok {
		name = Paragraph
		rule = t.textRules[Paragraph]
	}

	fontKey := BodyFont
	if strings.HasPrefix(name, "heading") {
		fontKey = name + "_font"
	}

	style := TextStyle{
		FontSize:      nonEmpty(rule.FontSize, DefaultFontSize),
		FontWeight:    nonEmpty(rule.FontWeight, DefaultFontWeight),
		LineHeight:    nonEmpty(rule.LineHeight, DefaultLineHeight),
		TextTransform: nonEmpty(rule.TextTransform, DefaultTextTransform),
		Color:         t.colorValue(rule.Color),
		FontFamily:    GetResolvedFont(t, fontKey),
	}
	if style.Color == "" {
		style.Color = nonEmpty(t.Color("foreground"), DefaultColor)
	}
	return style
}

// TextStyleNames lists the named text styles of the theme in a stable order.
func TextStyleNames(t *Resolved) []string {
	t = orDefault(t)
	names := make([]string, 0, len(t.textRules))
	for name := range t.textRules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetComponentStyle returns the theme override bag for a component type. Unknown types get an
// empty bag.
func GetComponentStyle(t *Resolved, componentType string) map[string]string {
	t = orDefault(t)
	bag := t.components[componentType]
	out := make(map[string]string, len(bag))
	for k, v := range bag {
		out[k] = v
	}
	return out
}

// GetResolvedFont returns the font family of a role key. Unknown keys use body_font.
func GetResolvedFont(t *Resolved, fontRoleKey string) string {
	t = orDefault(t)
	key := fontRoleKey
	if !strings.HasSuffix(key, "_font") {
		key += "_font"
	}
	if v := t.fontValue(key); v != "" {
		return v
	}
	if isHeadingFontKey(key) {
		if v := t.fontValue(HeadingFont); v != "" {
			return v
		}
	}
	if v := t.fontValue(BodyFont); v != "" {
		return v
	}
	return defaultFonts[BodyFont]
}

func (t *Resolved) fontValue(key string) string {
	v := t.Fonts[key]
	if v == "" {
		return ""
	}
	s, _ := ResolveStyleValue(v, t, nil).(string)
	return s
}

// Color returns the CSS value of a color token, or "" when the token is unknown or unresolvable.
func (t *Resolved) Color(name string) string {
	raw, ok := t.Colors[name]
	if !ok {
		return ""
	}
	if IsReference(raw) {
		s, _ := ResolveStyleValue(raw, t, nil).(string)
		return s
	}
	return HSLToCSS(raw)
}

// colorValue resolves a text-rule color which may be a token name, a reference or a literal.
func (t *Resolved) colorValue(v string) string {
	switch {
	case v == "":
		return ""
	case IsReference(v):
		s, _ := ResolveStyleValue(v, t, nil).(string)
		return s
	}
	if _, ok := t.Colors[v]; ok {
		return t.Color(v)
	}
	return HSLToCSS(v)
}

func isHeadingFontKey(key string) bool {
	for _, level := range headingLevels {
		if key == level+"_font" {
			return true
		}
	}
	return false
}

func isSpacingKey(key string) bool {
	if _, ok := defaultSpacing[key]; ok {
		return true
	}
	for _, suffix := range []string{"_padding", "_gap", "_spacing", "_width", "_radius", "_margin"} {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return false
}

// scalarString renders string and number settings values; anything else is rejected.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

func nonEmpty(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func copyStrings(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
