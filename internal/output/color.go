package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ColorMode selects when directory names are highlighted.
type ColorMode string

const (
	// ColorAuto highlights only when writing to a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways highlights unconditionally.
	ColorAlways ColorMode = "always"
	// ColorNever disables highlighting.
	ColorNever ColorMode = "never"

	noColorEnvironmentVariable = "NO_COLOR"
	invalidColorModeFormat     = "invalid color mode %q: expected auto, always or never"
)

// ParseColorMode converts user input into a ColorMode. An empty value selects ColorAuto.
func ParseColorMode(value string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf(invalidColorModeFormat, value)
	}
}

type fileDescriptor interface {
	Fd() uintptr
}

// ShouldColorize resolves the mode against the destination writer.
func ShouldColorize(mode ColorMode, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv(noColorEnvironmentVariable) != "" {
		return false
	}
	file, ok := writer.(fileDescriptor)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
