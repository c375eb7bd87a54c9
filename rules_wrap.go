package jsonconv

import (
	"encoding/base64"
	"encoding/hex"
	"reflect"
)

// pointerConv renders optional and owning-wrapper semantics: null and the
// inner shape are both accepted, never both required.
type pointerConv struct {
	t, elem reflect.Type
}

func (c pointerConv) Is(v Value) bool {
	return v.IsNull() || isType(c.elem, v)
}

func (c pointerConv) TryAs(v Value) (any, error) {
	if v.IsNull() {
		return reflect.Zero(c.t).Interface(), nil
	}
	ec, err := convFor(c.elem)
	if err != nil {
		return nil, err
	}
	x, err := ec.TryAs(v)
	if err != nil {
		return nil, err
	}
	out := reflect.New(c.elem)
	out.Elem().Set(elemValue(x, c.elem))
	return out.Interface(), nil
}

func (c pointerConv) ToJSON(x any) Value {
	rv := reflect.ValueOf(x)
	if !rv.IsValid() || rv.IsNil() {
		return Null()
	}
	ec, err := ConverterOf(c.elem)
	if err != nil {
		panic(err)
	}
	return ec.ToJSON(rv.Elem().Interface())
}

// Pair is a two-element aggregate encoded as a JSON array of length two.
type Pair[A, B any] struct {
	First  A
	Second B
}

func (Pair[A, B]) pairTypes() (reflect.Type, reflect.Type) {
	return reflect.TypeFor[A](), reflect.TypeFor[B]()
}

type pairConv struct {
	t, first, second reflect.Type
}

func (c pairConv) Is(v Value) bool {
	return v.IsArray() && v.Len() == 2 &&
		isType(c.first, v.At(0)) && isType(c.second, v.At(1))
}

func (c pairConv) TryAs(v Value) (any, error) {
	if !v.IsArray() || v.Len() != 2 {
		return nil, convErr(ErrNotPair)
	}
	fc, err := convFor(c.first)
	if err != nil {
		return nil, err
	}
	sc, err := convFor(c.second)
	if err != nil {
		return nil, err
	}
	a, err := fc.TryAs(v.At(0))
	if err != nil {
		return nil, err
	}
	b, err := sc.TryAs(v.At(1))
	if err != nil {
		return nil, err
	}
	out := reflect.New(c.t).Elem()
	out.Field(0).Set(elemValue(a, c.first))
	out.Field(1).Set(elemValue(b, c.second))
	return out.Interface(), nil
}

func (c pairConv) ToJSON(x any) Value {
	fc, err := ConverterOf(c.first)
	if err != nil {
		panic(err)
	}
	sc, err := ConverterOf(c.second)
	if err != nil {
		panic(err)
	}
	rv := reflect.ValueOf(x)
	return NewArray(fc.ToJSON(rv.Field(0).Interface()), sc.ToJSON(rv.Field(1).Interface()))
}

// bytesConv covers byte-like slices. Is accepts native byte strings and
// arrays of 8-bit integers; TryAs additionally accepts an encoded string
// value (Base16/Base64/Base64URL per tag, base64url by default).
type bytesConv struct{ t reflect.Type }

func (bytesConv) Is(v Value) bool {
	if v.IsBytes() {
		return true
	}
	if !v.IsArray() {
		return false
	}
	for _, it := range v.Items() {
		i, ok := it.Int64()
		if !ok || i < 0 || i > 255 {
			return false
		}
	}
	return true
}

func (c bytesConv) TryAs(v Value) (any, error) {
	var raw []byte
	switch {
	case v.IsBytes():
		b, _ := v.BytesVal()
		raw = append([]byte(nil), b...)
	case v.IsArray():
		raw = make([]byte, 0, v.Len())
		for _, it := range v.Items() {
			i, ok := it.Int64()
			if !ok || i < 0 || i > 255 {
				return nil, convErr(ErrNotByteString)
			}
			raw = append(raw, byte(i))
		}
	case v.IsString():
		s, _ := v.Str()
		var err error
		raw, err = decodeByteText(s, v.Tag())
		if err != nil {
			return nil, convErr(ErrNotByteString)
		}
	default:
		return nil, convErr(ErrNotByteString)
	}
	if c.t == reflect.TypeFor[[]byte]() {
		return raw, nil
	}
	out := reflect.MakeSlice(c.t, len(raw), len(raw))
	if c.t.Elem().Kind() == reflect.Int8 {
		for i, b := range raw {
			out.Index(i).SetInt(int64(int8(b)))
		}
	} else {
		for i, b := range raw {
			out.Index(i).SetUint(uint64(b))
		}
	}
	return out.Interface(), nil
}

func (c bytesConv) ToJSON(x any) Value {
	if b, ok := x.([]byte); ok {
		return NewBytes(append([]byte(nil), b...))
	}
	rv := reflect.ValueOf(x)
	raw := make([]byte, rv.Len())
	for i := range raw {
		e := rv.Index(i)
		if e.Kind() == reflect.Int8 {
			raw[i] = byte(e.Int())
		} else {
			raw[i] = byte(e.Uint())
		}
	}
	return NewBytes(raw)
}

func decodeByteText(s string, tag Tag) ([]byte, error) {
	switch tag {
	case TagBase16:
		return hex.DecodeString(s)
	case TagBase64:
		return base64.StdEncoding.DecodeString(s)
	default:
		return base64.RawURLEncoding.DecodeString(s)
	}
}

func encodeByteText(b []byte, tag Tag) string {
	switch tag {
	case TagBase16:
		return hex.EncodeToString(b)
	case TagBase64:
		return base64.StdEncoding.EncodeToString(b)
	default:
		return base64.RawURLEncoding.EncodeToString(b)
	}
}
