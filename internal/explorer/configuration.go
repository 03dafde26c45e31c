package explorer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

// Style selects how a visited entry is rendered.
type Style string

const (
	// StyleName renders an indented tree of base names.
	StyleName Style = "name"
	// StyleRelative renders the path as it was walked from the root argument.
	StyleRelative Style = "relative"
	// StyleAbsolute renders the canonical absolute path.
	StyleAbsolute Style = "absolute"
)

// DefaultIndentation is used when the configured indentation width is zero.
const DefaultIndentation = 2

const (
	excludePatternLabel = "exclude"
	includePatternLabel = "include"
	maxDepthLabel       = "levels"
	indentationLabel    = "tab"
)

// ParseStyle converts user input into a Style. An empty value selects StyleName.
func ParseStyle(value string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(value))) {
	case "", StyleName:
		return StyleName, nil
	case StyleRelative:
		return StyleRelative, nil
	case StyleAbsolute:
		return StyleAbsolute, nil
	default:
		return "", fmt.Errorf(errorStyleFormat, ErrInvalidStyle, value)
	}
}

// Options carries unvalidated explorer settings as collected from flags and configuration files.
type Options struct {
	Root               string
	MaxDepth           int
	Style              string
	ShowHidden         bool
	ExcludeDevelopment bool
	Indentation        int
	ExcludePattern     string
	IncludePattern     string
}

// Configuration is the validated, read-only input of an Explorer.
type Configuration struct {
	root               string
	maxDepth           int
	style              Style
	showHidden         bool
	excludeDevelopment bool
	indentation        int
	exclude            *regexp.Regexp
	include            *regexp.Regexp
}

// NewConfiguration validates options, compiles the patterns and confirms that the root exists.
func NewConfiguration(options Options) (Configuration, error) {
	if options.Root == "" {
		return Configuration{}, fmt.Errorf(errorEmptyRootFormat, ErrInvalidOption)
	}
	if options.MaxDepth < 0 {
		return Configuration{}, fmt.Errorf(errorNegativeOptionFormat, ErrInvalidOption, maxDepthLabel, options.MaxDepth)
	}
	if options.Indentation < 0 {
		return Configuration{}, fmt.Errorf(errorNegativeOptionFormat, ErrInvalidOption, indentationLabel, options.Indentation)
	}
	style, styleError := ParseStyle(options.Style)
	if styleError != nil {
		return Configuration{}, styleError
	}
	excludeExpression, excludeError := compileOptionalPattern(excludePatternLabel, options.ExcludePattern)
	if excludeError != nil {
		return Configuration{}, excludeError
	}
	includeExpression, includeError := compileOptionalPattern(includePatternLabel, options.IncludePattern)
	if includeError != nil {
		return Configuration{}, includeError
	}
	if _, statError := os.Stat(options.Root); statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return Configuration{}, fmt.Errorf(errorRootMissingFormat, ErrRootMissing, options.Root)
		}
		return Configuration{}, fmt.Errorf(errorRootStatFormat, statError)
	}

	indentation := options.Indentation
	if indentation == 0 {
		indentation = DefaultIndentation
	}

	return Configuration{
		root:               options.Root,
		maxDepth:           options.MaxDepth,
		style:              style,
		showHidden:         options.ShowHidden,
		excludeDevelopment: options.ExcludeDevelopment,
		indentation:        indentation,
		exclude:            excludeExpression,
		include:            includeExpression,
	}, nil
}

func compileOptionalPattern(label string, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	expression, compileError := regexp.Compile(pattern)
	if compileError != nil {
		return nil, fmt.Errorf(errorPatternFormat, ErrInvalidPattern, label, pattern, compileError)
	}
	return expression, nil
}

// Root returns the path the traversal starts from, exactly as supplied.
func (configuration Configuration) Root() string {
	return configuration.root
}

// MaxDepth returns the depth limit; zero means unlimited.
func (configuration Configuration) MaxDepth() int {
	return configuration.maxDepth
}

// Style returns the rendering style.
func (configuration Configuration) Style() Style {
	return configuration.style
}

// Indentation returns the effective indentation width.
func (configuration Configuration) Indentation() int {
	return configuration.indentation
}

// ShowHidden reports whether dot-prefixed entries are visited.
func (configuration Configuration) ShowHidden() bool {
	return configuration.showHidden
}

// ExcludeDevelopment reports whether development artifact directories are skipped.
func (configuration Configuration) ExcludeDevelopment() bool {
	return configuration.excludeDevelopment
}

// ExcludePattern returns the source of the exclude expression, or an empty string.
func (configuration Configuration) ExcludePattern() string {
	if configuration.exclude == nil {
		return ""
	}
	return configuration.exclude.String()
}

// IncludePattern returns the source of the include expression, or an empty string.
func (configuration Configuration) IncludePattern() string {
	if configuration.include == nil {
		return ""
	}
	return configuration.include.String()
}
