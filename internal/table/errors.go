package table

import "fmt"

// IOError means a table could not be opened or fetched.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError means a table is not valid tab-separated content, or a cell could not be
// converted to the type its column requires. Column is empty for structural errors.
type ParseError struct {
	Path   string
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("parsing %s line %d column %q: %v", e.Path, e.Line, e.Column, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parsing %s line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingColumnError means a column the pipeline needs is not in the header.
type MissingColumnError struct {
	Path   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing column %q", e.Path, e.Column)
}

// DuplicateIndexError means two node rows share an Index, so positions would be ambiguous.
type DuplicateIndexError struct {
	Path      string
	Index     string
	Line      int
	FirstLine int
}

func (e *DuplicateIndexError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: duplicate node index %q", e.Path, e.Index)
	}
	return fmt.Sprintf("%s line %d: duplicate node index %q (first seen on line %d)",
		e.Path, e.Line, e.Index, e.FirstLine)
}
