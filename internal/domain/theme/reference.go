package theme

import (
	"strings"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
)

// maxReferenceHops bounds reference chains such as accent -> theme.primary -> ...
const maxReferenceHops = 8

var referencePrefixes = []string{"theme.", "theme:"}

// IsReference reports whether v uses the theme reference syntax.
func IsReference(v any) bool {
	_, ok := referenceToken(v)
	return ok
}

func referenceToken(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	for _, prefix := range referencePrefixes {
		if strings.HasPrefix(s, prefix) {
			token := strings.TrimSpace(s[len(prefix):])
			return token, token != ""
		}
	}
	return "", false
}

// ResolveStyleValue returns literals unchanged and resolves theme references to their
// concrete value. A missing target, a cycle or an over-long chain resolves to "" (unset).
// When t is nil the theme is resolved from applied alone.
func ResolveStyleValue(value any, t *Resolved, applied *builder.AppliedTheme) any {
	token, ok := referenceToken(value)
	if !ok {
		return value
	}
	if t == nil {
		t = ResolveTheme(nil, applied)
	}

	seen := make(map[string]bool, 2)
	for hop := 0; hop < maxReferenceHops; hop++ {
		if seen[token] {
			return ""
		}
		seen[token] = true

		raw, isColor, found := t.lookup(token)
		if !found {
			return ""
		}
		next, isRef := referenceToken(raw)
		if !isRef {
			if isColor {
				return HSLToCSS(raw)
			}
			return raw
		}
		token = next
	}
	return ""
}

// lookup finds a token among colors, fonts, spacing and free tokens, in that order.
func (t *Resolved) lookup(token string) (string, bool, bool) {
	if v, ok := t.Colors[token]; ok {
		return v, true, true
	}
	if v, ok := t.Fonts[token]; ok {
		return v, false, true
	}
	if v, ok := t.Fonts[token+"_font"]; ok {
		return v, false, true
	}
	if v, ok := t.Spacing[token]; ok {
		return v, false, true
	}
	if v, ok := t.Tokens[token]; ok {
		return v, false, true
	}
	return "", false, false
}
