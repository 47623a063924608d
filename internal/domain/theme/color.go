package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// HSLToCSS converts an "h s% l%" triplet into "hsl(h s% l%)". Values that are already CSS
// colors, or that are not triplets at all, pass through unchanged.
func HSLToCSS(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	if isCSSColor(v) {
		return v
	}
	if h, s, l, ok := parseHSLTriplet(v); ok {
		return fmt.Sprintf("hsl(%s %s %s)", h, s, l)
	}
	return v
}

// IsColor reports whether a settings value looks like a color token value.
func IsColor(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return false
	}
	if isCSSColor(v) {
		return true
	}
	_, _, _, ok := parseHSLTriplet(v)
	return ok
}

func isCSSColor(v string) bool {
	lower := strings.ToLower(v)
	for _, prefix := range []string{"#", "rgb(", "rgba(", "hsl(", "hsla(", "var(", "color(", "oklch("} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	switch lower {
	case "transparent", "currentcolor", "inherit", "white", "black":
		return true
	}
	return false
}

func parseHSLTriplet(v string) (string, string, string, bool) {
	fields := strings.Fields(strings.ReplaceAll(v, ",", " "))
	if len(fields) != 3 {
		return "", "", "", false
	}
	hue := strings.TrimSuffix(fields[0], "deg")
	if _, err := strconv.ParseFloat(hue, 64); err != nil {
		return "", "", "", false
	}
	for _, f := range fields[1:] {
		if !strings.HasSuffix(f, "%") {
			return "", "", "", false
		}
		if _, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64); err != nil {
			return "", "", "", false
		}
	}
	return fields[0], fields[1], fields[2], true
}
