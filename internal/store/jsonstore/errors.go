package jsonstore

import (
	"errors"
	"fmt"
)

var (
	ErrListNotFound = errors.New("list not found")
	ErrListExists   = errors.New("list already exists")
)

// ParseError reports a list file that exists but cannot be decoded or fails
// validation.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError locates a schema violation inside a list file.
type ValidationError struct {
	Path string // e.g. items[0].status
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }
