package app

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidName is returned by ValidateRepositoryName.
var ErrInvalidName = errors.New("invalid repository name")

// ValidateRepositoryName checks a name typed for a new repository. Names
// become route segments, so they may not contain slashes or spaces.
func ValidateRepositoryName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	case strings.ContainsRune(name, '/'):
		return fmt.Errorf("%w: name must not contain '/'", ErrInvalidName)
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return fmt.Errorf("%w: name must not contain spaces", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	}
	return nil
}
