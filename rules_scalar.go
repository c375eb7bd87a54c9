package jsonconv

import (
	"math"
	"reflect"
)

// passthroughConv is the identity rule for the native Value type.
type passthroughConv struct{}

func (passthroughConv) Is(Value) bool             { return true }
func (passthroughConv) TryAs(v Value) (any, error) { return v, nil }
func (passthroughConv) ToJSON(x any) Value         { return x.(Value) }

type boolConv struct{ t reflect.Type }

func (boolConv) Is(v Value) bool { return v.IsBool() }

func (c boolConv) TryAs(v Value) (any, error) {
	b, ok := v.Bool()
	if !ok {
		return nil, convErr(ErrNotBool)
	}
	rv := reflect.New(c.t).Elem()
	rv.SetBool(b)
	return rv.Interface(), nil
}

func (c boolConv) ToJSON(x any) Value { return NewBool(reflect.ValueOf(x).Bool()) }

// intConv handles all signed integer widths. Range is part of Is for integer
// targets.
type intConv struct{ t reflect.Type }

func (c intConv) Is(v Value) bool {
	i, ok := v.Int64()
	return ok && !reflect.New(c.t).Elem().OverflowInt(i)
}

func (c intConv) TryAs(v Value) (any, error) {
	i, ok := v.Int64()
	if !ok {
		return nil, convErr(ErrNotSigned)
	}
	rv := reflect.New(c.t).Elem()
	if rv.OverflowInt(i) {
		return nil, convErr(ErrNotInteger)
	}
	rv.SetInt(i)
	return rv.Interface(), nil
}

func (c intConv) ToJSON(x any) Value { return NewInt64(reflect.ValueOf(x).Int()) }

type uintConv struct{ t reflect.Type }

func (c uintConv) Is(v Value) bool {
	u, ok := v.Uint64()
	return ok && !reflect.New(c.t).Elem().OverflowUint(u)
}

func (c uintConv) TryAs(v Value) (any, error) {
	u, ok := v.Uint64()
	if !ok {
		return nil, convErr(ErrNotUnsigned)
	}
	rv := reflect.New(c.t).Elem()
	if rv.OverflowUint(u) {
		return nil, convErr(ErrNotInteger)
	}
	rv.SetUint(u)
	return rv.Interface(), nil
}

func (c uintConv) ToJSON(x any) Value { return NewUint64(reflect.ValueOf(x).Uint()) }

// floatConv accepts any numeric storage; out-of-range for float32 surfaces as
// a TryAs failure, not an Is failure.
type floatConv struct{ t reflect.Type }

func (floatConv) Is(v Value) bool { return v.IsNumber() }

func (c floatConv) TryAs(v Value) (any, error) {
	f, ok := v.Float64()
	if !ok {
		return nil, convErr(ErrNotDouble)
	}
	rv := reflect.New(c.t).Elem()
	if rv.OverflowFloat(f) && !math.IsInf(f, 0) {
		return nil, convErr(ErrConversionFailed)
	}
	rv.SetFloat(f)
	return rv.Interface(), nil
}

func (c floatConv) ToJSON(x any) Value { return NewFloat64(reflect.ValueOf(x).Float()) }

type stringConv struct{ t reflect.Type }

func (stringConv) Is(v Value) bool { return v.IsString() }

func (c stringConv) TryAs(v Value) (any, error) {
	s, ok := v.Str()
	if !ok {
		return nil, convErr(ErrNotString)
	}
	rv := reflect.New(c.t).Elem()
	rv.SetString(s)
	return rv.Interface(), nil
}

func (c stringConv) ToJSON(x any) Value { return NewString(reflect.ValueOf(x).String()) }
