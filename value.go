package jsonconv

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the basic storage category of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindDouble
	KindString
	KindBytes
	KindArray
	KindObject
)

// Tag refines the interpretation of a Value beyond its Kind (semantic tag).
type Tag uint8

const (
	TagNone Tag = iota
	TagEpochSecond
	TagEpochMilli
	TagEpochNano
	TagBase16
	TagBase64
	TagBase64URL
	TagBigNum
)

// Member is one (key, value) entry of an object. Object members keep
// insertion order.
type Member struct {
	Key   string
	Value Value
}

// Value is a tagged union over null, bool, signed/unsigned integer, double,
// string, byte string, array and object. The conversion engine treats it as
// opaque except through the query and extraction methods below.
type Value struct {
	kind Kind
	tag  Tag
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	by   []byte
	arr  []Value
	obj  []Member
}

// ---- constructors ----

func Null() Value                { return Value{kind: KindNull} }
func NewBool(b bool) Value       { return Value{kind: KindBool, b: b} }
func NewInt64(i int64) Value     { return Value{kind: KindInt, i: i} }
func NewUint64(u uint64) Value   { return Value{kind: KindUint, u: u} }
func NewFloat64(f float64) Value { return Value{kind: KindDouble, f: f} }
func NewString(s string) Value   { return Value{kind: KindString, s: s} }

// NewBytes stores a byte string. The payload is not copied.
func NewBytes(b []byte) Value { return Value{kind: KindBytes, by: b} }

// NewArray builds an array value from the given items.
func NewArray(items ...Value) Value {
	return Value{kind: KindArray, arr: items}
}

// NewObject builds an object value preserving the given member order.
func NewObject(members ...Member) Value {
	return Value{kind: KindObject, obj: members}
}

// WithTag returns a copy of v carrying the given semantic tag.
func (v Value) WithTag(t Tag) Value {
	v.tag = t
	return v
}

// ---- queries ----

func (v Value) Kind() Kind { return v.kind }
func (v Value) Tag() Tag   { return v.tag }

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsBytes() bool  { return v.kind == KindBytes }
func (v Value) IsArray() bool  { return v.kind == KindArray }
func (v Value) IsObject() bool { return v.kind == KindObject }

// IsNumber reports whether v holds any numeric representation.
func (v Value) IsNumber() bool {
	return v.kind == KindInt || v.kind == KindUint || v.kind == KindDouble
}

// IsInteger reports whether v holds an integral number (signed or unsigned
// storage; doubles never count, even when integral).
func (v Value) IsInteger() bool { return v.kind == KindInt || v.kind == KindUint }

// ---- extraction ----

// Bool returns the held bool.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Int64 extracts a signed integer. Unsigned storage is accepted while it fits.
func (v Value) Int64() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindUint:
		if v.u <= math.MaxInt64 {
			return int64(v.u), true
		}
	}
	return 0, false
}

// Uint64 extracts an unsigned integer. Negative signed storage is rejected.
func (v Value) Uint64() (uint64, bool) {
	switch v.kind {
	case KindUint:
		return v.u, true
	case KindInt:
		if v.i >= 0 {
			return uint64(v.i), true
		}
	}
	return 0, false
}

// Float64 extracts a floating point number from any numeric storage.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindUint:
		return float64(v.u), true
	case KindDouble:
		return v.f, true
	}
	return 0, false
}

// Str returns the held string.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// BytesVal returns the held byte string.
func (v Value) BytesVal() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return v.by, true
}

// Len returns the element count for arrays, the member count for objects and
// the byte/char count for byte strings and strings; 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	case KindBytes:
		return len(v.by)
	case KindString:
		return len(v.s)
	}
	return 0
}

// At returns the i-th array element. It panics when v is not an array or i is
// out of range, matching slice indexing.
func (v Value) At(i int) Value { return v.arr[i] }

// Items returns the backing array slice; callers must not mutate it.
func (v Value) Items() []Value {
	return v.arr
}

// Members returns object members in insertion order; callers must not mutate
// the slice.
func (v Value) Members() []Member { return v.obj }

// Member looks up an object member by key. Lookup is linear; objects in this
// codebase are small and order-preserving.
func (v Value) Member(key string) (Value, bool) {
	for i := range v.obj {
		if v.obj[i].Key == key {
			return v.obj[i].Value, true
		}
	}
	return Value{}, false
}

// Contains reports whether an object member with the given key exists.
func (v Value) Contains(key string) bool {
	_, ok := v.Member(key)
	return ok
}

// ---- mutation (used while building values) ----

// PushBack appends an element to an array value.
func (v *Value) PushBack(item Value) {
	v.kind = KindArray
	v.arr = append(v.arr, item)
}

// TryEmplace inserts a member when the key is absent. It reports whether the
// insertion happened.
func (v *Value) TryEmplace(key string, item Value) bool {
	v.kind = KindObject
	for i := range v.obj {
		if v.obj[i].Key == key {
			return false
		}
	}
	v.obj = append(v.obj, Member{Key: key, Value: item})
	return true
}

// Set inserts or replaces a member.
func (v *Value) Set(key string, item Value) {
	v.kind = KindObject
	for i := range v.obj {
		if v.obj[i].Key == key {
			v.obj[i].Value = item
			return
		}
	}
	v.obj = append(v.obj, Member{Key: key, Value: item})
}

// Equal compares two values structurally, tags included. Numeric values
// compare across storage kinds (1 == uint(1) == 1.0).
func (v Value) Equal(o Value) bool {
	if v.tag != o.tag {
		return false
	}
	if v.IsNumber() && o.IsNumber() {
		if v.kind == KindDouble || o.kind == KindDouble {
			a, _ := v.Float64()
			b, _ := o.Float64()
			return a == b
		}
		if a, ok := v.Int64(); ok {
			if b, ok2 := o.Int64(); ok2 {
				return a == b
			}
			return false
		}
		a, _ := v.Uint64()
		b, ok := o.Uint64()
		return ok && a == b
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	case KindBytes:
		return string(v.by) == string(o.by)
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for i := range v.obj {
			ov, ok := o.Member(v.obj[i].Key)
			if !ok || !v.obj[i].Value.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders a compact debug form; use DumpString for wire output.
func (v Value) String() string {
	var b strings.Builder
	v.debug(&b)
	return b.String()
}

func (v Value) debug(b *strings.Builder) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case KindUint:
		b.WriteString(strconv.FormatUint(v.u, 10))
	case KindDouble:
		b.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindString:
		b.WriteString(strconv.Quote(v.s))
	case KindBytes:
		b.WriteString("b16'")
		const hex = "0123456789abcdef"
		for _, c := range v.by {
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xf])
		}
		b.WriteByte('\'')
	case KindArray:
		b.WriteByte('[')
		for i := range v.arr {
			if i > 0 {
				b.WriteByte(',')
			}
			v.arr[i].debug(b)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i := range v.obj {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(v.obj[i].Key))
			b.WriteByte(':')
			v.obj[i].Value.debug(b)
		}
		b.WriteByte('}')
	}
}
