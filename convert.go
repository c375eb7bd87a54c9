package jsonconv

import (
	"fmt"
	"reflect"
)

// Is reports whether v is convertible to T under T's resolved rule.
func Is[T any](v Value) bool {
	return isType(reflect.TypeFor[T](), v)
}

// TryAs converts v into a T, reporting expected mismatches through the
// ConvError channel.
func TryAs[T any](v Value) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()
	c, err := convFor(t)
	if err != nil {
		return zero, err
	}
	x, err := c.TryAs(v)
	if err != nil {
		return zero, err
	}
	if x == nil {
		// nil interface / nil pointer results
		return zero, nil
	}
	out, ok := x.(T)
	if !ok {
		// converters return the registered type; reaching here is an
		// internal invariant break
		panic(fmt.Sprintf("jsonconv: converter for %s returned %T", t, x))
	}
	return out, nil
}

// As converts v into a T and panics when the conversion is rejected. Use
// TryAs on untrusted input.
func As[T any](v Value) T {
	out, err := TryAs[T](v)
	if err != nil {
		panic(fmt.Sprintf("jsonconv: as %s: %v", reflect.TypeFor[T](), err))
	}
	return out
}

// ToJSON encodes x into a dynamic Value. Encoding succeeds for any
// well-formed value of a resolvable type; it panics when T has no conversion
// rule or when x holds a value outside its declared domain (an unlisted enum
// value, an unregistered polymorphic subtype), which indicates a programming
// error rather than bad input.
func ToJSON[T any](x T) Value {
	t := reflect.TypeFor[T]()
	c, err := ConverterOf(t)
	if err != nil {
		panic(err)
	}
	return c.ToJSON(x)
}

// TryEncode streams x into vis without materializing a top-level Value.
// Converters implementing StreamEncoder emit events directly; the rest stage
// a Value and replay it.
func TryEncode[T any](x T, vis Visitor) error {
	t := reflect.TypeFor[T]()
	c, err := convFor(t)
	if err != nil {
		return err
	}
	if se, ok := c.(StreamEncoder); ok {
		return se.EncodeTo(x, vis)
	}
	return EmitValue(c.ToJSON(x), vis)
}
