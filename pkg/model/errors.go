package model

import "fmt"

// SelectionError is recoverable: the criteria can be corrected and the run
// retried.
type SelectionError struct {
	Field string
	Value string
	Msg   string
}

func (e *SelectionError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("selection error (%s): %s", e.Field, e.Msg)
	}
	return fmt.Sprintf("selection error (%s %q): %s", e.Field, e.Value, e.Msg)
}

// RepositoryError aborts the current run.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository error: %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// MaterializationError reports a gene that cannot be turned into a record.
// It aborts the current run rather than silently dropping the gene.
type MaterializationError struct {
	GeneID string
	Reason string
}

func (e *MaterializationError) Error() string {
	return fmt.Sprintf("cannot materialize gene %s: %s", e.GeneID, e.Reason)
}

// ExportError is fatal to one output file only.
type ExportError struct {
	Key  string
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s to %s: %v", e.Key, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
