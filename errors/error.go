package errors

import (
	"fmt"
)

// FormatError occurs when a data file name or partition path component does
// not match the required grammar
type FormatError struct{ Input string }

// Error returns a textual representation of this FormatError
func (e FormatError) Error() string {
	return fmt.Sprintf("%q does not match the required grammar", e.Input)
}

// SchemaMismatchError occurs when two manifest entries disagree on the
// partition key name at the same tree depth
type SchemaMismatchError struct {
	Depth    int    // tree depth at which the keys diverged
	Expected string // key name seen on the first entry at this depth
	Actual   string // conflicting key name
	Path     string // the manifest path carrying the conflicting key
}

// Error returns a textual representation of this SchemaMismatchError
func (e SchemaMismatchError) Error() string {
	return fmt.Sprintf("partition key at depth %d is %q, but %q names it %q", e.Depth, e.Expected, e.Path, e.Actual)
}

// PartitionDepthError occurs when two manifest entries disagree on the total
// number of partition segments; a non-uniform partition scheme is not
// representable as a tree
type PartitionDepthError struct {
	Expected int    // segment count of the first entry
	Actual   int    // conflicting segment count
	Path     string // the manifest path carrying the conflicting count
}

// Error returns a textual representation of this PartitionDepthError
func (e PartitionDepthError) Error() string {
	return fmt.Sprintf("%q has %d partition segments, expected %d", e.Path, e.Actual, e.Expected)
}

// DuplicateContentIDError occurs when content id verification is enabled and
// two data files in one manifest share a content UUID
type DuplicateContentIDError struct {
	ContentID string
	First     string
	Second    string
}

// Error returns a textual representation of this DuplicateContentIDError
func (e DuplicateContentIDError) Error() string {
	return fmt.Sprintf("content id %s appears in both %q and %q", e.ContentID, e.First, e.Second)
}

// MissingLogError occurs when a table directory contains no transaction log
type MissingLogError struct{ Dir string }

// Error returns a textual representation of this MissingLogError
func (e MissingLogError) Error() string {
	return fmt.Sprintf("no transaction log found under %q", e.Dir)
}
