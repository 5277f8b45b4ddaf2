package obo

import "fmt"

// FileError reports that the ontology source could not be opened or read.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("obo: reading ontology: %v", e.Err)
	}
	return fmt.Sprintf("obo: reading ontology %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// FormatError reports a line that strict loading refused. It is never
// returned by a permissive load.
type FormatError struct {
	Line  int
	Field string
	Kind  string
	Msg   string
}

func (e *FormatError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("obo: line %d: %s: unrecognized relation kind %q", e.Line, e.Field, e.Kind)
	}
	return fmt.Sprintf("obo: line %d: %s: %s", e.Line, e.Field, e.Msg)
}
