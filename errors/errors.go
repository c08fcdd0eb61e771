// Package errors provides error types and handling for gscp operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a gscp operation error with context about the operation
// that failed. It wraps the underlying storage or filesystem error with
// additional context for better debugging.
type Error struct {
	// Op is the operation that failed (e.g., "parse", "copy", "materialize")
	Op string

	// Bucket is the bucket name (if applicable)
	Bucket string

	// Key is the object key (if applicable)
	Key string

	// Err is the underlying error from the storage client or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("gscp.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("gscp.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("gscp.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("gscp.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewBucketError creates a new Error with bucket context.
func NewBucketError(op, bucket string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Err:    err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// Sentinel errors for common gscp operation failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrInvalidURL indicates that the source URL is not a valid gs:// URL
	ErrInvalidURL = errors.New("gscp: invalid source URL")

	// ErrCredentials indicates that the storage client cannot authenticate
	ErrCredentials = errors.New("gscp: invalid credentials")

	// ErrBucketNotFound indicates that the requested bucket does not exist
	ErrBucketNotFound = errors.New("gscp: bucket not found")

	// ErrObjectNotFound indicates that the requested object does not exist
	ErrObjectNotFound = errors.New("gscp: object not found")

	// ErrEmptySelection indicates that no objects matched the requested prefix
	ErrEmptySelection = errors.New("gscp: no objects matched")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("gscp: invalid input")
)

// IsInvalidURL checks if an error indicates a malformed source URL.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsInvalidURL(err error) bool {
	return errors.Is(err, ErrInvalidURL)
}

// IsBucketNotFound checks if an error indicates that a bucket was not found.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsBucketNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound)
}

// IsObjectNotFound checks if an error indicates that an object was not found.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsObjectNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// IsEmptySelection checks if an error indicates that a selection matched nothing.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsEmptySelection(err error) bool {
	return errors.Is(err, ErrEmptySelection)
}
