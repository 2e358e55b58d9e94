package core

import (
	"errors"
	"fmt"
)

// Standard errors returned by the viewer and the store gateway.
var (
	// ErrNotFound is returned when a key does not exist in the store.
	// Absence is a valid signal, distinct from any decode failure.
	ErrNotFound = errors.New("key not found in store")

	// ErrUnreachable is returned when the store cannot be reached.
	// It is surfaced verbatim; the viewer never retries internally.
	ErrUnreachable = errors.New("store unreachable")

	// ErrEmptyKey is returned when an operation is attempted with an
	// empty key.
	ErrEmptyKey = errors.New("empty key")
)

// DecompressError reports that a value could not be decompressed with
// the algorithm selected by its key. Deserialization is never
// attempted after a DecompressError.
type DecompressError struct {
	Algorithm string // Name of the algorithm that failed
	Err       error  // The underlying error
}

// Error returns the formatted error message.
func (e *DecompressError) Error() string {
	return fmt.Sprintf("decompression failed (%s): %v", e.Algorithm, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecompressError) Unwrap() error {
	return e.Err
}

// DeserializeError reports that decompressed bytes could not be
// deserialized with the format selected by the key.
type DeserializeError struct {
	Format string // Name of the format that failed
	Err    error  // The underlying error
}

// Error returns the formatted error message.
func (e *DeserializeError) Error() string {
	return fmt.Sprintf("deserialization failed (%s): %v", e.Format, e.Err)
}

// Unwrap returns the underlying error.
func (e *DeserializeError) Unwrap() error {
	return e.Err
}

// ScanError reports that a keyspace scan was aborted. Partial results
// are discarded when a ScanError is returned: a truncated key list is
// worse than no key list to an operator.
type ScanError struct {
	Err error // The underlying transport error
}

// Error returns the formatted error message.
func (e *ScanError) Error() string {
	return fmt.Sprintf("key scan aborted: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is ErrNotFound or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnreachable returns true if the error is ErrUnreachable or wraps ErrUnreachable.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// IsDecompressError returns true if the error is a DecompressError.
func IsDecompressError(err error) bool {
	var e *DecompressError
	return errors.As(err, &e)
}

// IsDeserializeError returns true if the error is a DeserializeError.
func IsDeserializeError(err error) bool {
	var e *DeserializeError
	return errors.As(err, &e)
}

// IsScanError returns true if the error is a ScanError.
func IsScanError(err error) bool {
	var e *ScanError
	return errors.As(err, &e)
}

// Stage names the pipeline stage an error was classified under, so an
// operator can tell a wrong compression guess from a wrong format
// guess when diagnosing a misnamed key.
//
// Parameters:
//   - err: The error to classify
//
// Returns:
//   - string: "decompression", "deserialization", "scan", "connectivity",
//     "not_found", or "" for unclassified errors
func Stage(err error) string {
	switch {
	case IsDecompressError(err):
		return "decompression"
	case IsDeserializeError(err):
		return "deserialization"
	case IsScanError(err):
		return "scan"
	case IsUnreachable(err):
		return "connectivity"
	case IsNotFound(err):
		return "not_found"
	default:
		return ""
	}
}
