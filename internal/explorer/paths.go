package explorer

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const pathSeparator = string(filepath.Separator)

// canonicalize resolves path to its absolute, symlink-free form.
func canonicalize(path string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(path)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, path, absolutePathError)
	}
	resolvedPath, resolveError := filepath.EvalSymlinks(absolutePath)
	if resolveError != nil {
		return "", fmt.Errorf(errorCanonicalizeFormat, resolveError)
	}
	return resolvedPath, nil
}

// hasNoBaseName reports whether a base component does not name an entry, as for ".", ".." or "/".
func hasNoBaseName(base string) bool {
	return base == "." || base == ".." || base == pathSeparator || base == ""
}

// displayName returns the name an entry is filtered and rendered by.
// Paths without a usable base component fall back to the canonical base name,
// and finally to the canonical path itself.
func displayName(path string) (string, error) {
	baseName := filepath.Base(path)
	if !hasNoBaseName(baseName) {
		return requireText(baseName)
	}
	canonicalPath, canonicalizeError := canonicalize(path)
	if canonicalizeError != nil {
		return "", fmt.Errorf(errorUnresolvableFormat, ErrUnresolvableName, path, canonicalizeError)
	}
	canonicalBaseName := filepath.Base(canonicalPath)
	if hasNoBaseName(canonicalBaseName) {
		return requireText(canonicalPath)
	}
	return requireText(canonicalBaseName)
}

// joinWalkedPath appends a child name to its parent the way the walk reached it,
// keeping prefixes such as "./" that filepath.Join would clean away.
func joinWalkedPath(parentPath string, childName string) string {
	if strings.HasSuffix(parentPath, pathSeparator) {
		return parentPath + childName
	}
	return parentPath + pathSeparator + childName
}

func requireText(value string) (string, error) {
	if !utf8.ValidString(value) {
		return "", fmt.Errorf(errorNonTextFormat, ErrNonTextPath, value)
	}
	return value, nil
}
