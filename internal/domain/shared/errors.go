package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Data loading errors

// DataLoadError means a whole data source could not be used. It is fatal for a
// randomisation pass: the pass aborts before any randomisation happens.
type DataLoadError struct {
	*DomainError
	Source string
	Err    error
}

func NewDataLoadError(source, message string, err error) *DataLoadError {
	msg := fmt.Sprintf("failed to load %s: %s", source, message)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &DataLoadError{
		DomainError: &DomainError{Message: msg},
		Source:      source,
		Err:         err,
	}
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// RowParseError describes a single malformed record. Loaders skip the record
// and keep going.
type RowParseError struct {
	*DomainError
	Source string
	Line   int
	Err    error
}

func NewRowParseError(source string, line int, err error) *RowParseError {
	return &RowParseError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s:%d: %v", source, line, err)},
		Source:      source,
		Line:        line,
		Err:         err,
	}
}

func (e *RowParseError) Unwrap() error {
	return e.Err
}
