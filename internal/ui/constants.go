// Package ui holds what the storefront components share: the Base
// embedded by every sized component and common layout constants.
package ui

// ScrollMargin is how many rows lists keep visible around the cursor.
const ScrollMargin = 5
