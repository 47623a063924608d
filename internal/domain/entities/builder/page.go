package builder

import "time"

// AppliedTheme is the template or company level theme record a page inherits from.
type AppliedTheme struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Settings map[string]any `json:"settings"`
	Changed  *time.Time     `json:"changed,omitempty"`
}

// Page is a storefront page together with its persisted layout.
type Page struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Slug          string           `json:"slug"`
	Layout        []*ComponentNode `json:"layout"`
	ThemeID       *string          `json:"themeId,omitempty"`
	ThemeSettings map[string]any   `json:"themeSettings,omitempty"`
	Created       time.Time        `json:"created"`
	Changed       *time.Time       `json:"changed,omitempty"`
}

// Clone returns a deep copy of the theme record.
func (t *AppliedTheme) Clone() *AppliedTheme {
	if t == nil {
		return nil
	}
	out := *t
	if t.Settings != nil {
		out.Settings = cloneMap(t.Settings)
	}
	if t.Changed != nil {
		changed := *t.Changed
		out.Changed = &changed
	}
	return &out
}

// Clone returns a deep copy of the page including its layout.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	out := *p
	out.Layout = CloneTree(p.Layout)
	if p.ThemeID != nil {
		id := *p.ThemeID
		out.ThemeID = &id
	}
	if p.ThemeSettings != nil {
		out.ThemeSettings = cloneMap(p.ThemeSettings)
	}
	if p.Changed != nil {
		changed := *p.Changed
		out.Changed = &changed
	}
	return &out
}
