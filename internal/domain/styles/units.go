package styles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	plainNumber = regexp.MustCompile(`^-?\d*\.?\d+$`)
	colorName   = regexp.MustCompile(`^[a-zA-Z]+$`)
	hexDigits   = regexp.MustCompile(`^#?[0-9a-fA-F]+$`)
)

// WithUnit appends "px" to plain decimal numbers. Values carrying a unit or other text (NaN,
// Inf, hex floats) pass through; empty values stay unset.
func WithUnit(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	if plainNumber.MatchString(v) {
		return v + "px"
	}
	return v
}

// NormalizeLineHeight maps the symbolic line heights to fixed ratios.
func NormalizeLineHeight(value, customLineHeight string) string {
	switch strings.TrimSpace(value) {
	case "tight":
		return "1.2"
	case "normal":
		return "1.4"
	case "loose":
		return "1.6"
	case "custom":
		if c := strings.TrimSpace(customLineHeight); c != "" {
			return c
		}
		return "1.4"
	default:
		return value
	}
}

// HexToRGB decodes a 3 or 6 digit hex color, with or without "#". Malformed input yields
// black and ok=false.
func HexToRGB(hex string) (r, g, b int, ok bool) {
	h := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return 0, 0, 0, false
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(n >> 16 & 0xff), int(n >> 8 & 0xff), int(n & 0xff), true
}

// ComposeBackground turns a hex color and an opacity fraction into an rgba() value.
func ComposeBackground(hex string, opacity float64) string {
	r, g, b, _ := HexToRGB(hex)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatNumber(clampOpacity(opacity)))
}

func clampOpacity(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// parseOpacity accepts fractions ("0.5") and percentages ("50%"). Fractions out of range are
// clamped; anything unparsable is fully opaque.
func parseOpacity(v string) float64 {
	s := strings.TrimSpace(v)
	if s == "" {
		return 1
	}
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if !plainNumber.MatchString(s) {
		return 1
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1
	}
	if percent {
		f /= 100
	}
	return clampOpacity(f)
}

// isColorName reports a CSS named color such as "white"; words made only of hex digits
// ("bad", "fade") are treated as hex.
func isColorName(v string) bool {
	return colorName.MatchString(v) && !hexDigits.MatchString(v)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
