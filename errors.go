package jsonconv

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the reason a conversion was rejected. All codes are
// recoverable decode-path outcomes reported through ConvError; none of them
// indicates a programming error.
type ErrorCode int

//go:generate go tool stringer -type=ErrorCode -linecomment
const (
	ErrNone             ErrorCode = iota // none
	ErrConversionFailed                  // conversion failed
	ErrNotInteger                        // not an integer
	ErrNotSigned                         // not a signed integer
	ErrNotUnsigned                       // not an unsigned integer
	ErrNotDouble                         // not a double
	ErrNotBool                           // not a bool
	ErrNotString                         // not a string
	ErrNotByteString                     // not a byte string
	ErrNotVector                         // not a vector
	ErrNotArray                          // not an array
	ErrNotMap                            // not a map
	ErrNotPair                           // not a pair
	ErrNotVariant                        // not a variant
	ErrNotBigint                         // not a bignum
	ErrNotEpoch                          // not an epoch value
	ErrNotBitset                         // not a bitset
	ErrExpectedObject                    // expected object
	ErrMissingMember                     // missing required member
)

// ConvError is the typed result channel for expected conversion failures.
// Context identifies the offending type and, where applicable, the member
// name ("Book: price").
type ConvError struct {
	Code    ErrorCode
	Context string
}

func (e *ConvError) Error() string {
	if e.Context == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s (%s)", e.Code.String(), e.Context)
}

// convErr builds a ConvError without context.
func convErr(code ErrorCode) error { return &ConvError{Code: code} }

// convErrCtx builds a ConvError carrying a context string.
func convErrCtx(code ErrorCode, ctx string) error { return &ConvError{Code: code, Context: ctx} }

// AsConvError extracts a ConvError from an error chain using errors.As.
func AsConvError(err error) (*ConvError, bool) {
	if err == nil {
		return nil, false
	}
	var ce *ConvError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// CodeOf returns the ErrorCode carried by err, or ErrNone when err carries no
// ConvError.
func CodeOf(err error) ErrorCode {
	if ce, ok := AsConvError(err); ok {
		return ce.Code
	}
	return ErrNone
}
