package explorer

import "errors"

var (
	// ErrRootMissing reports that the configured root path does not exist.
	ErrRootMissing = errors.New("root path does not exist")
	// ErrInvalidPattern reports an include or exclude expression that does not compile.
	ErrInvalidPattern = errors.New("invalid regular expression")
	// ErrInvalidStyle reports an unknown display style.
	ErrInvalidStyle = errors.New("invalid style")
	// ErrInvalidOption reports a negative depth or indentation, or an empty root.
	ErrInvalidOption = errors.New("invalid option")
	// ErrUnresolvableName reports a path whose display name cannot be determined.
	ErrUnresolvableName = errors.New("unable to resolve entry name")
	// ErrNonTextPath reports a path that is not valid UTF-8 text.
	ErrNonTextPath = errors.New("path is not valid UTF-8")
	// ErrNilEmit reports a walk started without an emit function.
	ErrNilEmit = errors.New("emit function is nil")
)

const (
	errorRootMissingFormat    = "%w: %s"
	errorRootStatFormat       = "stat root: %w"
	errorPatternFormat        = "%w for %s pattern %q: %v"
	errorStyleFormat          = "%w %q: expected one of name, relative or absolute"
	errorNegativeOptionFormat = "%w: %s must not be negative (got %d)"
	errorEmptyRootFormat      = "%w: root path is empty"
	errorUnresolvableFormat   = "%w %s: %v"
	errorNonTextFormat        = "%w: %q"
	errorReadDirectoryFormat  = "read directory: %w"
	errorCanonicalizeFormat   = "canonicalize: %w"
	errorAbsolutePathFormat   = "absolute path of %s: %w"
)
