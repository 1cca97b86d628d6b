package termimg

import (
	"os"
	"strings"
)

// EnvProtocol overrides protocol detection and configuration.
const EnvProtocol = "STOREFRONT_IMAGE_PROTOCOL"

// Detect returns the ImageProtocol to use, or nil when images are disabled.
//
// The STOREFRONT_IMAGE_PROTOCOL environment variable wins over preference,
// which usually comes from the image_protocol config key. Both accept
// "kitty", "sixel", "halfblock", "none" and "auto" (or empty) for terminal
// detection. Detection falls back to half blocks.
func Detect(preference string) ImageProtocol {
	choice := strings.ToLower(strings.TrimSpace(os.Getenv(EnvProtocol)))
	if choice == "" {
		choice = strings.ToLower(strings.TrimSpace(preference))
	}

	switch choice {
	case "kitty":
		return NewKittyProtocol()
	case "sixel":
		return NewSixelProtocol()
	case "halfblock":
		return NewHalfBlockProtocol()
	case "none":
		return nil
	}

	if IsKittySupported() {
		return NewKittyProtocol()
	}
	if IsSixelSupported() {
		return NewSixelProtocol()
	}
	return NewHalfBlockProtocol()
}

// IsKittySupported checks if the terminal supports Kitty graphics protocol.
func IsKittySupported() bool {
	// Contour sets CONTOUR_PROFILE but has no Kitty graphics; parent terminal
	// variables can leak into it.
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return false
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "WezTerm" {
		return true
	}
	if os.Getenv("GHOSTTY_RESOURCES_DIR") != "" {
		return true
	}
	if version := os.Getenv("KONSOLE_VERSION"); len(version) >= 4 && version[:4] >= "2204" {
		return true
	}
	return strings.Contains(os.Getenv("TERM"), "kitty")
}

// IsSixelSupported checks if the terminal supports Sixel graphics.
func IsSixelSupported() bool {
	term := os.Getenv("TERM")

	switch os.Getenv("TERM_PROGRAM") {
	case "vscode", "mintty", "iTerm.app", "contour":
		return true
	}
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return true
	}
	if term == "foot" || term == "foot-extra" || term == "mlterm" {
		return true
	}
	return strings.HasPrefix(term, "xterm") && os.Getenv("XTERM_VERSION") != ""
}
