// Package pycs holds the configuration shared by the pycs command and the
// errors reported while loading sources.
package pycs

import "errors"

// Common errors used throughout the pycs command
var (
	// ErrInvalidFileType is returned for a source file that is neither .pycs nor .pycs.md.
	ErrInvalidFileType = errors.New("invalid file type: expected .pycs or .pycs.md")
	// ErrNoSource is returned when neither inline code nor a file was given.
	ErrNoSource = errors.New("no source code given")
	// ErrAmbiguousSource is returned when both inline code and a file were given.
	ErrAmbiguousSource = errors.New("give either inline code or a file, not both")
)
