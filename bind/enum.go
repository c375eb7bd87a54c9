package bind

import (
	"fmt"
	"reflect"

	jsonconv "github.com/reoring/jsonconv"
)

// EnumBuilder declares the (value, token) table of one enum type.
type EnumBuilder[T comparable] struct {
	name    string
	entries []enumEntry
	errs    []error
}

type enumEntry struct {
	value any
	token string
}

// Enum starts an enum binding for T. Declared tokens map bidirectionally; an
// unlisted zero value still round-trips through the empty string.
func Enum[T comparable](name string) *EnumBuilder[T] {
	return &EnumBuilder[T]{name: name}
}

// Value appends one (value, token) entry.
func (b *EnumBuilder[T]) Value(v T, token string) *EnumBuilder[T] {
	if token == "" {
		b.errs = append(b.errs, fmt.Errorf("bind: enum %s: empty token", b.name))
		return b
	}
	b.entries = append(b.entries, enumEntry{value: v, token: token})
	return b
}

// Register validates the table and installs the enum converter.
func (b *EnumBuilder[T]) Register() (jsonconv.Converter, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	seen := map[string]struct{}{}
	for _, e := range b.entries {
		if _, dup := seen[e.token]; dup {
			return nil, fmt.Errorf("bind: enum %s declares duplicate token %q", b.name, e.token)
		}
		seen[e.token] = struct{}{}
	}
	var zero T
	conv := &enumConv{
		name:    b.name,
		entries: b.entries,
		zero:    zero,
	}
	for _, e := range b.entries {
		if e.value == any(zero) {
			conv.zeroListed = true
		}
	}
	jsonconv.RegisterConverter(reflect.TypeFor[T](), conv)
	return conv, nil
}

// MustRegister is like Register but panics on a declaration error.
func (b *EnumBuilder[T]) MustRegister() jsonconv.Converter {
	c, err := b.Register()
	if err != nil {
		panic(err)
	}
	return c
}

// enumConv searches the static table linearly in both directions.
type enumConv struct {
	name       string
	entries    []enumEntry
	zero       any
	zeroListed bool
}

func (c *enumConv) Is(v jsonconv.Value) bool {
	s, ok := v.Str()
	if !ok {
		return false
	}
	for _, e := range c.entries {
		if e.token == s {
			return true
		}
	}
	return s == "" && !c.zeroListed
}

func (c *enumConv) TryAs(v jsonconv.Value) (any, error) {
	s, ok := v.Str()
	if !ok {
		return nil, &jsonconv.ConvError{Code: jsonconv.ErrNotString, Context: c.name}
	}
	for _, e := range c.entries {
		if e.token == s {
			return e.value, nil
		}
	}
	if s == "" && !c.zeroListed {
		return c.zero, nil
	}
	return nil, &jsonconv.ConvError{Code: jsonconv.ErrConversionFailed, Context: c.name}
}

// ToJSON panics for a value with no table entry and no implicit default: a
// program should never hold an enum value outside its declared domain, so
// this is a programming error, not an input-data error.
func (c *enumConv) ToJSON(x any) jsonconv.Value {
	for _, e := range c.entries {
		if e.value == x {
			return jsonconv.NewString(e.token)
		}
	}
	if !c.zeroListed && x == c.zero {
		return jsonconv.NewString("")
	}
	panic(fmt.Sprintf("bind: enum %s: value %v outside declared domain", c.name, x))
}
