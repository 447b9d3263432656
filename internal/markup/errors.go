package markup

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFrontmatter means the text does not start with a --- fenced metadata block
	ErrMissingFrontmatter = errors.New("metadata block not found")
	// ErrNotResume means the metadata block is not tagged type: resume
	ErrNotResume = errors.New("document type is not resume")
	// ErrUnsupportedFile means a file was rejected by extension before reading
	ErrUnsupportedFile = errors.New("please choose a Markdown file (.md)")
)

// ParseError reports why text could not be imported. No partial result
// accompanies it.
type ParseError struct {
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("could not parse resume: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("could not parse resume: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
