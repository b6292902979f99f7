package tokenlist

import "fmt"

// DataError marks malformed build input: a bad chain filename, an
// unparseable chain file, a record missing a required field, or a
// schema-invalid final document. The CLI maps it to the sysexits
// data-error status; no output is written once one occurs.
type DataError struct {
	Path string // offending file, when known
	Err  error
}

func (e *DataError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *DataError) Unwrap() error { return e.Err }

func dataErrf(path, format string, args ...any) *DataError {
	return &DataError{Path: path, Err: fmt.Errorf(format, args...)}
}

// SchemaError carries the full set of schema violations found in a
// candidate document. Violations are collected, not fail-fast.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("token list fails schema validation (%d violations)", len(e.Violations))
}
