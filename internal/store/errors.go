package store

import "fmt"

// StorageError reports a failure to resolve, read, parse or write the
// backing document.
type StorageError struct {
	Op   string // resolve, read, parse, encode, write
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IndexError is the panic value for an out-of-range project or task index.
// Indices come from the navigator (or validated CLI input), so reaching one
// is a bug, not a runtime condition.
type IndexError struct {
	Kind  string // project or task
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.Kind, e.Index, e.Len)
}
