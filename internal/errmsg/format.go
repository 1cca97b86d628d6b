// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpProductsLoad    Op = "load products"
	OpProductLoad     Op = "load product"
	OpRelatedLoad     Op = "load related products"
	OpCollectionsLoad Op = "load collections"
	OpRefresh         Op = "refresh catalog"

	// Region and cart
	OpRegionsLoad Op = "load regions"
	OpCartLoad    Op = "load cart"

	// Media
	OpImageLoad Op = "load image"

	// Persistence
	OpDatabaseOpen   Op = "open database"
	OpNavigationLoad Op = "restore navigation"
	OpNavigationSave Op = "save navigation"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
