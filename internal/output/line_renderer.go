package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/temirov/minitree/internal/explorer"
)

const errorWriteLineFormat = "write %s: %w"

// LineRendererOptions configures a LineRenderer.
type LineRendererOptions struct {
	// Colorize highlights directory names in name style.
	Colorize bool
	// Capture keeps an uncolored copy of everything written, see Captured.
	Capture bool
}

// LineRenderer writes one line per entry.
type LineRenderer struct {
	writer         *bufio.Writer
	colorize       bool
	directoryColor *color.Color
	captured       *strings.Builder
	entries        int
}

// NewLineRenderer constructs a LineRenderer writing to stdout.
func NewLineRenderer(stdout io.Writer, options LineRendererOptions) *LineRenderer {
	directoryColor := color.New(color.FgBlue, color.Bold)
	if options.Colorize {
		directoryColor.EnableColor()
	} else {
		directoryColor.DisableColor()
	}
	renderer := &LineRenderer{
		writer:         bufio.NewWriter(stdout),
		colorize:       options.Colorize,
		directoryColor: directoryColor,
	}
	if options.Capture {
		renderer.captured = &strings.Builder{}
	}
	return renderer
}

// Handle writes the entry line.
func (renderer *LineRenderer) Handle(entry explorer.Entry) error {
	line := entry.Line
	if renderer.colorize && entry.Style == explorer.StyleName && entry.IsDirectory && strings.HasSuffix(line, entry.Name) {
		line = strings.TrimSuffix(line, entry.Name) + renderer.directoryColor.Sprint(entry.Name)
	}
	if _, err := renderer.writer.WriteString(line + "\n"); err != nil {
		return fmt.Errorf(errorWriteLineFormat, entry.Path, err)
	}
	if renderer.captured != nil {
		renderer.captured.WriteString(entry.Line)
		renderer.captured.WriteString("\n")
	}
	renderer.entries++
	return nil
}

// Flush writes buffered lines to the destination.
func (renderer *LineRenderer) Flush() error {
	return renderer.writer.Flush()
}

// Entries returns the number of lines written so far.
func (renderer *LineRenderer) Entries() int {
	return renderer.entries
}

// Captured returns the uncolored output, or an empty string when capture is disabled.
func (renderer *LineRenderer) Captured() string {
	if renderer.captured == nil {
		return ""
	}
	return renderer.captured.String()
}

var _ StreamRenderer = (*LineRenderer)(nil)
