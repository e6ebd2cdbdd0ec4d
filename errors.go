// FILE: confetti/errors.go
package confetti

import "errors"

// Tree access errors
var (
	// ErrPathNotFound indicates that a path segment does not exist, that a
	// non-terminal segment resolved to a leaf, or that relative resolution
	// ascended past the root.
	ErrPathNotFound = errors.New("path not found")

	// ErrCannotSetValue indicates that an assignment or Extend would create
	// a value outside the sanctioned creation paths, or would silently
	// destroy existing structure.
	ErrCannotSetValue = errors.New("cannot set value")

	// ErrCircularReference indicates that reference resolution detected a
	// cycle among chained references.
	ErrCircularReference = errors.New("circular reference detected")

	// ErrEmptyBackupStack indicates that Restore was called without a
	// matching prior Backup.
	ErrEmptyBackupStack = errors.New("backup stack is empty")
)

// Loader errors
var (
	// ErrConfigNotFound indicates that the requested configuration file
	// does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrUnknownFormat indicates that the configuration format could not
	// be determined from the file extension or content.
	ErrUnknownFormat = errors.New("unknown config format")
)
