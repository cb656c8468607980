package result

import (
	"errors"
	"fmt"
)

// ErrFrozen is returned when a frozen result is mutated.
var ErrFrozen = errors.New("result is frozen")

// VersionMismatchError reports an artifact written by an incompatible version.
type VersionMismatchError struct {
	Expected int
	Actual   int
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("artifact version %d does not match expected version %d", e.Actual, e.Expected)
}

// EncodeDecodeError reports a corrupt or unencodable artifact.
type EncodeDecodeError struct {
	Op  string
	Err error
}

func (e *EncodeDecodeError) Error() string {
	return fmt.Sprintf("failed to %s artifact: %v", e.Op, e.Err)
}

func (e *EncodeDecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(format string, args ...interface{}) error {
	return &EncodeDecodeError{Op: "decode", Err: fmt.Errorf(format, args...)}
}
