package jsonconv_test

import (
	"fmt"
	"testing"

	"github.com/reoring/jsonconv"
)

func TestConvError_Message(t *testing.T) {
	err := &jsonconv.ConvError{Code: jsonconv.ErrMissingMember, Context: "Book: price"}
	if got := err.Error(); got != "missing required member (Book: price)" {
		t.Fatalf("message = %q", got)
	}
	bare := &jsonconv.ConvError{Code: jsonconv.ErrNotEpoch}
	if got := bare.Error(); got != "not an epoch value" {
		t.Fatalf("bare message = %q", got)
	}
}

func TestErrorCode_Strings(t *testing.T) {
	cases := map[jsonconv.ErrorCode]string{
		jsonconv.ErrNone:             "none",
		jsonconv.ErrConversionFailed: "conversion failed",
		jsonconv.ErrNotVector:        "not a vector",
		jsonconv.ErrNotPair:          "not a pair",
		jsonconv.ErrNotVariant:       "not a variant",
		jsonconv.ErrExpectedObject:   "expected object",
		jsonconv.ErrMissingMember:    "missing required member",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", code, got, want)
		}
	}
}

func TestAsConvError_Chain(t *testing.T) {
	inner := &jsonconv.ConvError{Code: jsonconv.ErrNotBool}
	wrapped := fmt.Errorf("while decoding flags: %w", inner)
	ce, ok := jsonconv.AsConvError(wrapped)
	if !ok || ce.Code != jsonconv.ErrNotBool {
		t.Fatalf("unwrap = %v, %v", ce, ok)
	}
	if jsonconv.CodeOf(fmt.Errorf("plain")) != jsonconv.ErrNone {
		t.Fatalf("non-conv error should report ErrNone")
	}
	if _, ok := jsonconv.AsConvError(nil); ok {
		t.Fatalf("nil error should not extract")
	}
}
