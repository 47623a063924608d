// Package styles composes the inline style of a builder component from its custom styles,
// the resolved theme and per-type defaults.
package styles

import (
	"strconv"
	"strings"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/theme"
)

const defaultPadding = "10px"

var paddingSides = []string{"paddingTop", "paddingRight", "paddingBottom", "paddingLeft"}

// dimensionKeys are copied from theme overrides and custom styles with px normalization.
var dimensionKeys = []string{
	"borderRadius", "borderWidth", "width", "height", "minHeight", "maxHeight", "maxWidth",
	"gap", "letterSpacing", "marginTop", "marginRight", "marginBottom", "marginLeft",
}

// colorKeys are copied with HSL triplet conversion.
var colorKeys = []string{"borderColor"}

// plainKeys are copied verbatim.
var plainKeys = []string{
	"border", "borderStyle", "boxShadow", "objectFit", "justifyContent", "alignItems",
	"flexDirection", "flexWrap", "gridTemplateColumns", "textDecoration", "fontStyle",
}

// Compose runs the shared style pipeline for a node and merges the result onto base. It never
// fails: missing styles or theme degrade to defaults. When t is nil the theme is resolved from
// applied alone.
func Compose(node *builder.ComponentNode, base CSS, t *theme.Resolved, applied *builder.AppliedTheme) CSS {
	out := make(CSS, len(base)+16)
	for k, v := range base {
		out[k] = v
	}
	if node == nil {
		return out
	}
	if t == nil {
		t = theme.ResolveTheme(nil, applied)
	}

	p := profileFor(node.Type)
	custom := resolveCustom(node.Styles, t, applied)
	override := theme.GetComponentStyle(t, p.themeKey)

	applyExtras(out, override)
	applyExtras(out, custom)
	if p.gapToken != "" && !custom.has("gap") && override["gap"] == "" {
		if gap, ok := t.Spacing[p.gapToken]; ok {
			out["gap"] = WithUnit(gap)
		}
	}

	if p.textStyle != "" {
		applyTypography(out, p, custom, override, t)
	}
	if p.layout {
		applyLayout(out, custom)
	}
	if p.box {
		applyPadding(out, custom, override)
		applyBackground(out, custom, override)
	}
	return out
}

// ComposeTree composes styles for every node of a tree, keyed by node id.
func ComposeTree(nodes []*builder.ComponentNode, t *theme.Resolved, applied *builder.AppliedTheme) map[string]CSS {
	if t == nil {
		t = theme.ResolveTheme(nil, applied)
	}
	out := map[string]CSS{}
	stack := append([]*builder.ComponentNode(nil), nodes...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		out[n.ID] = Compose(n, nil, t, applied)
		if children, ok := n.ChildSlot(); ok {
			stack = append(stack, children...)
		}
	}
	return out
}

// customStyles holds resolved custom entries. A present key with an empty value means the
// entry was explicitly cleared or its reference did not resolve.
type customStyles map[string]string

func (c customStyles) has(key string) bool {
	_, ok := c[key]
	return ok
}

func resolveCustom(s builder.Styles, t *theme.Resolved, applied *builder.AppliedTheme) customStyles {
	out := make(customStyles, len(s))
	for k, v := range s {
		resolved := theme.ResolveStyleValue(v, t, applied)
		if str, ok := stringify(resolved); ok {
			out[k] = str
		}
	}
	return out
}

func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return strings.TrimSpace(t), true
	case float64:
		return formatNumber(t), true
	case float32:
		return formatNumber(float64(t)), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

func applyExtras(out CSS, src map[string]string) {
	for _, key := range dimensionKeys {
		if v, ok := src[key]; ok {
			out.set(key, WithUnit(v))
		}
	}
	for _, key := range colorKeys {
		if v, ok := src[key]; ok {
			out.set(key, theme.HSLToCSS(v))
		}
	}
	for _, key := range plainKeys {
		if v, ok := src[key]; ok {
			out.set(key, v)
		}
	}
}

func applyTypography(out CSS, p profile, custom customStyles, override map[string]string, t *theme.Resolved) {
	class := custom["textStyle"]
	if class == "" || class == "default" {
		class = p.textStyle
	}

	var rule theme.TextStyle
	if class != "custom" {
		rule = theme.GetTextStyle(t, class)
	}

	pick := func(key, fromRule, hard string) string {
		if v := custom[key]; v != "" {
			return v
		}
		if fromRule != "" {
			return fromRule
		}
		if v := override[key]; v != "" {
			return v
		}
		return hard
	}

	out["fontFamily"] = resolveFontFamily(class, custom, t)
	out["fontSize"] = WithUnit(pick("fontSize", rule.FontSize, theme.DefaultFontSize))
	out["fontWeight"] = pick("fontWeight", rule.FontWeight, theme.DefaultFontWeight)
	out["textTransform"] = pick("textTransform", rule.TextTransform, theme.DefaultTextTransform)
	out["color"] = theme.HSLToCSS(pick("color", rule.Color, theme.DefaultColor))
	out["lineHeight"] = NormalizeLineHeight(pick("lineHeight", rule.LineHeight, theme.DefaultLineHeight), custom["customLineHeight"])
}

func resolveFontFamily(class string, custom customStyles, t *theme.Resolved) string {
	derived := func() string {
		if strings.HasPrefix(class, "heading") {
			return theme.GetResolvedFont(t, class+"_font")
		}
		return theme.GetResolvedFont(t, theme.BodyFont)
	}

	switch fontType := custom["fontType"]; fontType {
	case "", "default":
		return derived()
	case "custom":
		if f := custom["customFont"]; f != "" {
			return f
		}
		if f := custom["fontFamily"]; f != "" {
			return f
		}
		return derived()
	default:
		return theme.GetResolvedFont(t, fontType)
	}
}

func applyLayout(out CSS, custom customStyles) {
	if custom["layout"] == "fill" {
		align := custom["alignment"]
		if align == "" {
			align = "center"
		}
		out["width"] = "100%"
		out["textAlign"] = align
		out["display"] = "block"
		return
	}
	out["width"] = "auto"
	out["textAlign"] = "center"
	out["display"] = "inline-block"
}

func applyPadding(out CSS, custom customStyles, override map[string]string) {
	for _, side := range paddingSides {
		value, present := custom[side]
		if !present {
			value, present = override[side]
		}
		if !present {
			out[side] = defaultPadding
			continue
		}
		out.set(side, WithUnit(value))
	}
}

func applyBackground(out CSS, custom customStyles, override map[string]string) {
	bg, present := custom["background"]
	if !present {
		bg = override["background"]
	}
	opacity := custom["backgroundOpacity"]
	if !custom.has("backgroundOpacity") {
		opacity = override["backgroundOpacity"]
	}

	bg = strings.TrimSpace(bg)
	if bg == "" || strings.EqualFold(bg, "transparent") {
		out["backgroundColor"] = "transparent"
		return
	}
	out["backgroundColor"] = backgroundValue(bg, parseOpacity(opacity))
}

// backgroundValue builds rgba() from hex input. Functional CSS colors (typically a resolved
// theme color) and named colors pass through, with the opacity folded into hsl() when below 1.
func backgroundValue(color string, opacity float64) string {
	lower := strings.ToLower(color)
	switch {
	case strings.HasPrefix(lower, "hsl(") && !strings.Contains(lower, "/"):
		if opacity >= 1 {
			return color
		}
		return strings.TrimSuffix(color, ")") + " / " + formatNumber(opacity) + ")"
	case strings.HasPrefix(lower, "hsl"), strings.HasPrefix(lower, "rgb"), strings.HasPrefix(lower, "var("):
		return color
	case isColorName(lower):
		return color
	}
	if converted := theme.HSLToCSS(color); converted != color {
		return backgroundValue(converted, opacity)
	}
	return ComposeBackground(color, opacity)
}
