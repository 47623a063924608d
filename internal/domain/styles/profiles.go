package styles

import (
	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/theme"
)

// profile parameterizes the shared pipeline for one component type.
type profile struct {
	// textStyle is the default text style class; empty disables typography.
	textStyle string
	// themeKey names the theme component-style bag; defaults to the type name.
	themeKey string
	// layout enables fit/fill geometry.
	layout bool
	// box enables padding and background.
	box bool
	// gapToken, when set, defaults the gap from a theme spacing token.
	gapToken string
}

var profiles = map[builder.ComponentType]profile{
	builder.TypeTitle:              {textStyle: "heading1", layout: true, box: true},
	builder.TypeSubtitle:           {textStyle: "heading2", layout: true, box: true},
	builder.TypeText:               {textStyle: theme.Paragraph, layout: true, box: true},
	builder.TypeButton:             {textStyle: theme.Paragraph, layout: true, box: true},
	builder.TypeLogo:               {textStyle: "heading3", layout: true, box: true},
	builder.TypeProductTitle:       {textStyle: "heading3", layout: true, box: true},
	builder.TypeProductPrice:       {textStyle: "heading4", layout: true, box: true},
	builder.TypeProductDescription: {textStyle: theme.Paragraph, layout: true, box: true},
	builder.TypeProductCard:        {textStyle: theme.Paragraph, box: true},
	builder.TypeImage:              {box: true},
	builder.TypeDivider:            {box: true},
	builder.TypeSpacer:             {},

	builder.TypeContainer:   {box: true},
	builder.TypeColumn:      {box: true},
	builder.TypeSection:     {box: true, gapToken: "section_gap"},
	builder.TypePageContent: {box: true},

	builder.TypeBanner:   {textStyle: theme.Paragraph, box: true},
	builder.TypeProduct:  {textStyle: theme.Paragraph, box: true},
	builder.TypeCarousel: {box: true, gapToken: "section_gap"},
	builder.TypeBento:    {box: true, gapToken: "section_gap"},
	builder.TypeHeader:   {textStyle: theme.Paragraph, box: true},
	builder.TypeFooter:   {textStyle: theme.Paragraph, box: true},
}

func profileFor(t builder.ComponentType) profile {
	p, ok := profiles[t]
	if !ok {
		p = profile{textStyle: theme.Paragraph, box: true}
	}
	if p.themeKey == "" {
		p.themeKey = string(t)
	}
	return p
}

// DefaultTextStyle returns the text style class a component type uses when the node does not
// pick one.
func DefaultTextStyle(t builder.ComponentType) string {
	return profileFor(t).textStyle
}
