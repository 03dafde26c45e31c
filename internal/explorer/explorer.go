// Package explorer walks a directory tree and renders the entries that pass its filters.
package explorer

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	hiddenPrefix = "."
	entryMarker  = "* "
)

var developmentNames = map[string]struct{}{
	".git":         {},
	"target":       {},
	"node_modules": {},
	"build":        {},
	"bin":          {},
}

// DevelopmentNames returns the sorted names skipped when development exclusion is enabled.
func DevelopmentNames() []string {
	names := make([]string, 0, len(developmentNames))
	for name := range developmentNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsDevelopmentName reports whether name is a development artifact directory or file name.
func IsDevelopmentName(name string) bool {
	_, found := developmentNames[name]
	return found
}

// Entry is a rendered filesystem entry.
type Entry struct {
	Path        string
	Name        string
	Depth       int
	IsDirectory bool
	Style       Style
	Line        string
}

// EmitFunc receives rendered entries in pre-order. A returned error stops the walk.
type EmitFunc func(Entry) error

// Explorer visits a directory tree according to a Configuration.
// It holds no mutable state, so one Explorer may serve several walks.
type Explorer struct {
	configuration Configuration
}

// New constructs an Explorer for the configuration.
func New(configuration Configuration) *Explorer {
	return &Explorer{configuration: configuration}
}

// Configuration returns the configuration the explorer was built with.
func (explorer *Explorer) Configuration() Configuration {
	return explorer.configuration
}

// Explore visits the configured root at depth zero.
func (explorer *Explorer) Explore(ctx context.Context, emit EmitFunc) error {
	return explorer.Visit(ctx, explorer.configuration.root, 0, emit)
}

type visitFrame struct {
	path  string
	depth int
}

// Visit walks path and its descendants starting at depth. The first error
// from name resolution, rendering, directory listing or emit aborts the walk;
// lines already emitted stay emitted.
func (explorer *Explorer) Visit(ctx context.Context, path string, depth int, emit EmitFunc) error {
	if emit == nil {
		return ErrNilEmit
	}
	if ctx == nil {
		ctx = context.Background()
	}
	pending := []visitFrame{{path: path, depth: depth}}
	for len(pending) > 0 {
		if contextError := ctx.Err(); contextError != nil {
			return contextError
		}
		frame := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		children, visitError := explorer.visitEntry(frame, emit)
		if visitError != nil {
			return visitError
		}
		for childIndex := len(children) - 1; childIndex >= 0; childIndex-- {
			pending = append(pending, children[childIndex])
		}
	}
	return nil
}

// visitEntry filters and renders one entry and returns the children still to be visited.
func (explorer *Explorer) visitEntry(frame visitFrame, emit EmitFunc) ([]visitFrame, error) {
	configuration := explorer.configuration

	name, nameError := displayName(frame.path)
	if nameError != nil {
		return nil, nameError
	}
	if !configuration.showHidden && strings.HasPrefix(name, hiddenPrefix) {
		return nil, nil
	}
	if configuration.excludeDevelopment && IsDevelopmentName(name) {
		return nil, nil
	}
	if configuration.exclude != nil && configuration.exclude.MatchString(name) {
		return nil, nil
	}

	isDirectory := isDirectoryPath(frame.path)

	shouldRender, includeError := explorer.matchesInclude(frame.path, name, isDirectory)
	if includeError != nil {
		return nil, includeError
	}
	if shouldRender {
		line, renderError := explorer.render(frame.path, name, frame.depth)
		if renderError != nil {
			return nil, renderError
		}
		emitError := emit(Entry{
			Path:        frame.path,
			Name:        name,
			Depth:       frame.depth,
			IsDirectory: isDirectory,
			Style:       configuration.style,
			Line:        line,
		})
		if emitError != nil {
			return nil, emitError
		}
	}

	if configuration.maxDepth != 0 && frame.depth >= configuration.maxDepth {
		return nil, nil
	}
	if !isDirectory {
		return nil, nil
	}

	directoryEntries, readDirectoryError := os.ReadDir(frame.path)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, readDirectoryError)
	}
	children := make([]visitFrame, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		children = append(children, visitFrame{
			path:  joinWalkedPath(frame.path, directoryEntry.Name()),
			depth: frame.depth + 1,
		})
	}
	return children, nil
}

// matchesInclude applies the include expression according to the style.
// In name style directories always pass so that matching descendants stay reachable.
func (explorer *Explorer) matchesInclude(path string, name string, isDirectory bool) (bool, error) {
	include := explorer.configuration.include
	if include == nil {
		return true, nil
	}
	switch explorer.configuration.style {
	case StyleRelative:
		return include.MatchString(path), nil
	case StyleAbsolute:
		canonicalPath, canonicalizeError := canonicalize(path)
		if canonicalizeError != nil {
			return false, canonicalizeError
		}
		return include.MatchString(canonicalPath), nil
	default:
		if isDirectory {
			return true, nil
		}
		return include.MatchString(name), nil
	}
}

// render produces the output line of an entry.
func (explorer *Explorer) render(path string, name string, depth int) (string, error) {
	switch explorer.configuration.style {
	case StyleRelative:
		return requireText(path)
	case StyleAbsolute:
		canonicalPath, canonicalizeError := canonicalize(path)
		if canonicalizeError != nil {
			return "", canonicalizeError
		}
		return requireText(canonicalPath)
	default:
		return strings.Repeat(" ", depth*explorer.configuration.indentation) + entryMarker + name, nil
	}
}

// isDirectoryPath follows symlinks. Entries that cannot be stat'ed, such as dangling
// or looping symlinks, are reported as non-directories.
func isDirectoryPath(path string) bool {
	fileInformation, statError := os.Stat(path)
	if statError != nil {
		return false
	}
	return fileInformation.IsDir()
}
