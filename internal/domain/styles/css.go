package styles

import (
	"sort"
	"strings"
	"unicode"
)

// CSS is an inline style object keyed by camelCase property name.
type CSS map[string]string

// set writes a value, or clears the key when the value is empty.
func (c CSS) set(key, value string) {
	if value == "" {
		delete(c, key)
		return
	}
	c[key] = value
}

// String renders the style as a kebab-case declaration list in key order.
func (c CSS) String() string {
	keys := make([]string, 0, len(c))
	for k, v := range c {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(KebabCase(k))
		b.WriteString(": ")
		b.WriteString(c[k])
		b.WriteByte(';')
	}
	return b.String()
}

// KebabCase converts a camelCase CSS property name into its kebab-case form.
func KebabCase(prop string) string {
	var b strings.Builder
	b.Grow(len(prop) + 4)
	for i, r := range prop {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
