package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AtRiskMedia/storefront-builder/internal/domain/entities/builder"
	"github.com/AtRiskMedia/storefront-builder/internal/domain/tree"
	"github.com/AtRiskMedia/storefront-builder/pkg/config"
)

// Limits bounds what the editor accepts into a layout.
type Limits struct {
	MaxStyleAttributes int
	MaxTreeDepth       int
	HistoryLimit       int
}

// DefaultLimits reads the limits from the environment configuration.
func DefaultLimits() Limits {
	return Limits{
		MaxStyleAttributes: config.MaxStyleAttributes,
		MaxTreeDepth:       config.MaxTreeDepth,
		HistoryLimit:       config.HistoryLimit,
	}
}

var validate = validator.New()

// ValidateLayout checks ids, depth and style counts. The first problem found is returned as a
// *ValidationError.
func (l Limits) ValidateLayout(nodes []*builder.ComponentNode) error {
	if l.MaxTreeDepth > 0 {
		if depth := tree.MaxDepth(nodes); depth >= l.MaxTreeDepth {
			return invalid("layout", "tree depth %d exceeds the limit of %d levels", depth+1, l.MaxTreeDepth)
		}
	}
	if dups := tree.DuplicateIDs(nodes); len(dups) > 0 {
		return invalid("layout", "duplicate component ids: %s", strings.Join(dups, ", "))
	}

	var err error
	tree.Walk(nodes, func(v tree.Visit) bool {
		if v.Node.ID == "" {
			err = invalid("layout", "component at %v has no id", v.Path)
			return false
		}
		if v.Node.Type == "" {
			err = invalid("layout", "component %s has no type", v.Node.ID)
			return false
		}
		if e := l.ValidateStyles(v.Node.ID, v.Node.Styles); e != nil {
			err = e
			return false
		}
		return true
	})
	return err
}

// ValidateStyles checks the custom style count of one node.
func (l Limits) ValidateStyles(componentID string, s builder.Styles) error {
	if l.MaxStyleAttributes > 0 && len(s) > l.MaxStyleAttributes {
		return invalid("styles", "component %s has %d style attributes, the limit is %d", componentID, len(s), l.MaxStyleAttributes)
	}
	return nil
}

// validateStruct runs the struct's validate tags and flattens failures into a ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return invalid(lowerFirst(fe.Field()), "failed %s validation", fe.Tag())
	}
	return fmt.Errorf("validation failed: %w", err)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
