package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/theme"
)

func node(typ builder.ComponentType, s builder.Styles) *builder.ComponentNode {
	return &builder.ComponentNode{ID: "n", Type: typ, Styles: s}
}

func TestWithUnit(t *testing.T) {
	assert.Equal(t, "10px", WithUnit("10"))
	assert.Equal(t, "2rem", WithUnit("2rem"))
	assert.Equal(t, "", WithUnit(""))
	assert.Equal(t, "1.5px", WithUnit(" 1.5 "))
	assert.Equal(t, "auto", WithUnit("auto"))
	assert.Equal(t, "50%", WithUnit("50%"))
	assert.Equal(t, "-4px", WithUnit("-4"))
	assert.Equal(t, ".5px", WithUnit(".5"))
	for _, v := range []string{"NaN", "Inf", "-Inf", "0x1p4", "1e3"} {
		assert.Equal(t, v, WithUnit(v), v)
	}
}

func TestComposeBackground(t *testing.T) {
	assert.Equal(t, "rgba(255, 255, 255, 0.5)", ComposeBackground("#fff", 0.5))
	assert.Equal(t, "rgba(26, 43, 60, 1)", ComposeBackground("#1a2b3c", 1))
	assert.Equal(t, "rgba(26, 43, 60, 1)", ComposeBackground("#1A2B3C", 1))
	assert.Equal(t, "rgba(0, 0, 0, 1)", ComposeBackground("notacolor", 1))
	assert.Equal(t, "rgba(0, 0, 0, 1)", ComposeBackground("#ggg", 1))
	assert.Equal(t, "rgba(255, 0, 0, 0)", ComposeBackground("f00", -2))
}

func TestNormalizeLineHeight(t *testing.T) {
	assert.Equal(t, "1.2", NormalizeLineHeight("tight", ""))
	assert.Equal(t, "1.4", NormalizeLineHeight("normal", ""))
	assert.Equal(t, "1.6", NormalizeLineHeight("loose", ""))
	assert.Equal(t, "1.75", NormalizeLineHeight("custom", "1.75"))
	assert.Equal(t, "2", NormalizeLineHeight("2", ""))
	assert.Equal(t, "24px", NormalizeLineHeight("24px", "3"))
}

func TestComposeLayoutGeometry(t *testing.T) {
	fill := Compose(node(builder.TypeText, builder.Styles{"layout": "fill", "alignment": "right"}), nil, nil, nil)
	assert.Equal(t, "100%", fill["width"])
	assert.Equal(t, "right", fill["textAlign"])
	assert.Equal(t, "block", fill["display"])

	for _, align := range []string{"left", "right", ""} {
		fit := Compose(node(builder.TypeText, builder.Styles{"layout": "fit", "alignment": align}), nil, nil, nil)
		assert.Equal(t, "auto", fit["width"])
		assert.Equal(t, "center", fit["textAlign"])
		assert.Equal(t, "inline-block", fit["display"])
	}

	fillDefault := Compose(node(builder.TypeTitle, builder.Styles{"layout": "fill"}), nil, nil, nil)
	assert.Equal(t, "center", fillDefault["textAlign"])
}

func TestComposePadding(t *testing.T) {
	css := Compose(node(builder.TypeText, builder.Styles{
		"paddingTop":    "4",
		"paddingRight":  "1rem",
		"paddingBottom": "",
	}), nil, nil, nil)

	assert.Equal(t, "4px", css["paddingTop"])
	assert.Equal(t, "1rem", css["paddingRight"])
	assert.NotContains(t, css, "paddingBottom")
	assert.Equal(t, "10px", css["paddingLeft"])
}

func TestComposeBackgroundPipeline(t *testing.T) {
	css := Compose(node(builder.TypeButton, nil), nil, nil, nil)
	assert.Equal(t, "transparent", css["backgroundColor"])

	css = Compose(node(builder.TypeButton, builder.Styles{"background": "#fff", "backgroundOpacity": 0.5}), nil, nil, nil)
	assert.Equal(t, "rgba(255, 255, 255, 0.5)", css["backgroundColor"])

	css = Compose(node(builder.TypeButton, builder.Styles{"background": "#000", "backgroundOpacity": "40%"}), nil, nil, nil)
	assert.Equal(t, "rgba(0, 0, 0, 0.4)", css["backgroundColor"])

	css = Compose(node(builder.TypeButton, builder.Styles{"background": "#fff", "backgroundOpacity": "1.5"}), nil, nil, nil)
	assert.Equal(t, "rgba(255, 255, 255, 1)", css["backgroundColor"])

	css = Compose(node(builder.TypeButton, builder.Styles{"background": "white", "backgroundOpacity": 0.5}), nil, nil, nil)
	assert.Equal(t, "white", css["backgroundColor"])

	css = Compose(node(builder.TypeButton, builder.Styles{"background": "#zzz"}), nil, nil, nil)
	assert.Equal(t, "rgba(0, 0, 0, 1)", css["backgroundColor"])

	resolved := theme.ResolveTheme(map[string]any{"brand": "10 20% 30%"}, nil)
	css = Compose(node(builder.TypeButton, builder.Styles{"background": "theme.brand", "backgroundOpacity": 0.25}), nil, resolved, nil)
	assert.Equal(t, "hsl(10 20% 30% / 0.25)", css["backgroundColor"])

	css = Compose(node(builder.TypeButton, builder.Styles{"background": "theme.missing"}), nil, resolved, nil)
	assert.Equal(t, "transparent", css["backgroundColor"])
}

func TestComposeTypographyPrecedence(t *testing.T) {
	resolved := theme.ResolveTheme(map[string]any{
		"heading_font": "Lora",
		"component_styles": map[string]any{
			"product-title": map[string]any{"fontSize": "99px", "color": "#abcdef"},
		},
	}, nil)

	css := Compose(node(builder.TypeTitle, nil), nil, resolved, nil)
	assert.Equal(t, "2.25rem", css["fontSize"])
	assert.Equal(t, "700", css["fontWeight"])
	assert.Equal(t, "1.2", css["lineHeight"])
	assert.Equal(t, "Lora", css["fontFamily"])

	css = Compose(node(builder.TypeTitle, builder.Styles{"fontSize": "18", "textStyle": "heading4"}), nil, resolved, nil)
	assert.Equal(t, "18px", css["fontSize"], "custom value wins")
	assert.Equal(t, "600", css["fontWeight"], "theme rule of the chosen class")
	assert.Equal(t, "1.4", css["lineHeight"])

	css = Compose(node(builder.TypeProductTitle, builder.Styles{"textStyle": "custom"}), nil, resolved, nil)
	assert.Equal(t, "99px", css["fontSize"], "component override applies without a text rule")
	assert.Equal(t, "#abcdef", css["color"])
	assert.Equal(t, theme.DefaultFontWeight, css["fontWeight"])
	assert.Equal(t, "Inter", css["fontFamily"])

	css = Compose(node(builder.TypeText, builder.Styles{"lineHeight": "custom", "customLineHeight": "1.75"}), nil, resolved, nil)
	assert.Equal(t, "1.75", css["lineHeight"])
}

func TestComposeFontType(t *testing.T) {
	resolved := theme.ResolveTheme(map[string]any{"accent_font": "Caveat", "heading2_font": "Oswald"}, nil)

	css := Compose(node(builder.TypeSubtitle, builder.Styles{"fontType": "default"}), nil, resolved, nil)
	assert.Equal(t, "Oswald", css["fontFamily"])

	css = Compose(node(builder.TypeText, builder.Styles{"fontType": "custom", "customFont": "Comic Neue"}), nil, resolved, nil)
	assert.Equal(t, "Comic Neue", css["fontFamily"])

	css = Compose(node(builder.TypeText, builder.Styles{"fontType": "accent_font"}), nil, resolved, nil)
	assert.Equal(t, "Caveat", css["fontFamily"])

	css = Compose(node(builder.TypeText, builder.Styles{"fontType": "nonsense_font"}), nil, resolved, nil)
	assert.Equal(t, "Inter", css["fontFamily"])
}

func TestComposeMergesOntoBase(t *testing.T) {
	base := CSS{"position": "relative", "width": "50%", "display": "flex"}
	css := Compose(node(builder.TypeText, builder.Styles{"layout": "fill"}), base, nil, nil)

	assert.Equal(t, "relative", css["position"])
	assert.Equal(t, "100%", css["width"])
	assert.Equal(t, "block", css["display"])
	assert.Equal(t, "50%", base["width"], "base is not mutated")
}

func TestComposeNeverFailsOnMissingInput(t *testing.T) {
	require.NotPanics(t, func() {
		assert.Empty(t, Compose(nil, nil, nil, nil))
		css := Compose(&builder.ComponentNode{ID: "x", Type: "unheard-of"}, nil, nil, nil)
		assert.Equal(t, "10px", css["paddingTop"])
		assert.NotEmpty(t, css["fontFamily"])
	})
}

func TestComposeExtras(t *testing.T) {
	css := Compose(node(builder.TypeImage, builder.Styles{"width": "320", "borderRadius": "8", "borderColor": "1 2% 3%", "objectFit": "cover"}), nil, nil, nil)
	assert.Equal(t, "320px", css["width"])
	assert.Equal(t, "8px", css["borderRadius"])
	assert.Equal(t, "hsl(1 2% 3%)", css["borderColor"])
	assert.Equal(t, "cover", css["objectFit"])
	assert.NotContains(t, css, "fontSize")

	section := Compose(node(builder.TypeSection, nil), nil, nil, nil)
	assert.Equal(t, "24px", section["gap"])
}

func TestComposeThemeReferenceColor(t *testing.T) {
	resolved := theme.ResolveTheme(map[string]any{"heading": "220 90% 10%"}, nil)
	css := Compose(&builder.ComponentNode{ID: "b", Type: builder.TypeText, Content: builder.Content{Value: "Hi"}, Styles: builder.Styles{"color": "theme.heading"}}, nil, resolved, nil)
	assert.Equal(t, "hsl(220 90% 10%)", css["color"])
}

func TestComposeTree(t *testing.T) {
	tree := []*builder.ComponentNode{{
		ID: "a", Type: builder.TypeContainer,
		Content: builder.Content{Children: []*builder.ComponentNode{
			{ID: "b", Type: builder.TypeText, Styles: builder.Styles{"color": "#123"}},
		}},
	}}
	all := ComposeTree(tree, nil, nil)
	require.Len(t, all, 2)
	assert.Equal(t, "#123", all["b"]["color"])
}

func TestCSSString(t *testing.T) {
	css := CSS{"backgroundColor": "red", "width": "1px", "color": ""}
	assert.Equal(t, "background-color: red; width: 1px;", css.String())
	assert.Equal(t, "grid-template-columns", KebabCase("gridTemplateColumns"))
}

func TestThemeStylesheet(t *testing.T) {
	sheet := ThemeStylesheet(theme.ResolveTheme(map[string]any{"brand": "1 2% 3%", "cta": "theme.brand"}, nil))
	assert.True(t, strings.HasPrefix(sheet, ":root {\n"))
	assert.Contains(t, sheet, "--brand: 1 2% 3%;")
	assert.Contains(t, sheet, "--cta: hsl(1 2% 3%);")
	assert.Contains(t, sheet, "--font-heading: Poppins;")
	assert.Contains(t, sheet, "--section-padding: 48px;")
	assert.Contains(t, sheet, ".ts-heading1 { ")
	assert.Contains(t, sheet, "line-height: 1.2;")
}
