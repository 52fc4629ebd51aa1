package dataset

import "fmt"

// SchemaError reports a required column missing from the input file. It is
// fatal: no model work can start without the full attribute set.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset: required column %q is missing", e.Column)
}

// InsufficientDataError reports a label stratum too small to split.
type InsufficientDataError struct {
	Stratum string
	Rows    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("dataset: stratum %q has %d rows, not enough to split", e.Stratum, e.Rows)
}
