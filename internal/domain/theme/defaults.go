package theme

// Built-in defaults. Every accessor falls back to these, so a resolved theme is always total.

var defaultColors = map[string]string{
	"primary":    "222.2 47.4% 11.2%",
	"secondary":  "210 40% 96.1%",
	"accent":     "210 40% 96.1%",
	"background": "0 0% 100%",
	"foreground": "222.2 84% 4.9%",
	"muted":      "210 40% 96.1%",
	"heading":    "222.2 84% 4.9%",
	"text":       "215.4 16.3% 46.9%",
	"border":     "214.3 31.8% 91.4%",
}

const (
	BodyFont       = "body_font"
	HeadingFont    = "heading_font"
	SubheadingFont = "subheading_font"
	AccentFont     = "accent_font"
)

var defaultFonts = map[string]string{
	BodyFont:       "Inter",
	HeadingFont:    "Poppins",
	SubheadingFont: "Inter",
	AccentFont:     "Playfair Display",
}

// headingLevels are the per-level text styles; each also owns a "<level>_font" role.
var headingLevels = []string{"heading1", "heading2", "heading3", "heading4", "heading5", "heading6"}

const Paragraph = "paragraph"

var defaultSpacing = map[string]string{
	"section_padding": "48px",
	"section_gap":     "24px",
	"container_width": "1200px",
	"border_radius":   "8px",
}

type textRule struct {
	FontSize      string
	FontWeight    string
	LineHeight    string
	TextTransform string
	Color         string
}

var defaultTextRules = map[string]textRule{
	"heading1": {FontSize: "2.25rem", FontWeight: "700", LineHeight: "tight", TextTransform: "none", Color: "heading"},
	"heading2": {FontSize: "1.875rem", FontWeight: "700", LineHeight: "tight", TextTransform: "none", Color: "heading"},
	"heading3": {FontSize: "1.5rem", FontWeight: "600", LineHeight: "tight", TextTransform: "none", Color: "heading"},
	"heading4": {FontSize: "1.25rem", FontWeight: "600", LineHeight: "normal", TextTransform: "none", Color: "heading"},
	"heading5": {FontSize: "1.125rem", FontWeight: "500", LineHeight: "normal", TextTransform: "none", Color: "heading"},
	"heading6": {FontSize: "1rem", FontWeight: "500", LineHeight: "normal", TextTransform: "uppercase", Color: "heading"},
	Paragraph:  {FontSize: "1rem", FontWeight: "400", LineHeight: "loose", TextTransform: "none", Color: "text"},
}

// Hard defaults used when even the theme has nothing usable.
const (
	DefaultFontSize      = "16px"
	DefaultFontWeight    = "400"
	DefaultLineHeight    = "normal"
	DefaultTextTransform = "none"
	DefaultColor         = "inherit"
)
