package bind

import (
	"fmt"
	"reflect"

	jsonconv "github.com/reoring/jsonconv"
)

// Alternative names one candidate type of a variant. Build with Alt.
type Alternative struct{ t reflect.Type }

// Alt captures an alternative type for Variant.
func Alt[T any]() Alternative { return Alternative{t: reflect.TypeFor[T]()} }

// Variant registers an ordered alternative set for the interface type I.
//
// The first alternative whose Is accepts the value wins; there is no
// best-match scoring and no ambiguity detection. Declare alternatives from
// most specific to least specific: with overlapping representations (for
// example several numeric alternatives) declaration order is the sole
// disambiguation mechanism.
func Variant[I any](name string, alts ...Alternative) (jsonconv.Converter, error) {
	it := reflect.TypeFor[I]()
	if it.Kind() != reflect.Interface {
		return nil, fmt.Errorf("bind: variant %s: %s is not an interface type", name, it)
	}
	if len(alts) == 0 {
		return nil, fmt.Errorf("bind: variant %s declares no alternatives", name)
	}
	for _, a := range alts {
		if it.NumMethod() > 0 && !a.t.Implements(it) {
			return nil, fmt.Errorf("bind: variant %s: %s does not implement %s", name, a.t, it)
		}
	}
	conv := &variantConv{name: name, alts: alts}
	jsonconv.RegisterConverter(it, conv)
	return conv, nil
}

// MustVariant is like Variant but panics on a declaration error.
func MustVariant[I any](name string, alts ...Alternative) jsonconv.Converter {
	c, err := Variant[I](name, alts...)
	if err != nil {
		panic(err)
	}
	return c
}

type variantConv struct {
	name string
	alts []Alternative
}

func (c *variantConv) Is(v jsonconv.Value) bool {
	for _, a := range c.alts {
		ac, err := jsonconv.ConverterOf(a.t)
		if err == nil && ac.Is(v) {
			return true
		}
	}
	return false
}

// TryAs resolves to the first alternative whose Is matches; that match is
// authoritative even when a later alternative would also accept the value.
func (c *variantConv) TryAs(v jsonconv.Value) (any, error) {
	for _, a := range c.alts {
		ac, err := jsonconv.ConverterOf(a.t)
		if err != nil {
			continue
		}
		if ac.Is(v) {
			x, err := ac.TryAs(v)
			if err != nil {
				return nil, rebase(err, c.name)
			}
			return x, nil
		}
	}
	return nil, &jsonconv.ConvError{Code: jsonconv.ErrNotVariant, Context: c.name}
}

func (c *variantConv) ToJSON(x any) jsonconv.Value {
	if x == nil {
		return jsonconv.Null()
	}
	dt := reflect.TypeOf(x)
	for _, a := range c.alts {
		if a.t != dt {
			continue
		}
		ac, err := jsonconv.ConverterOf(a.t)
		if err != nil {
			break
		}
		return ac.ToJSON(x)
	}
	panic(fmt.Sprintf("bind: variant %s: dynamic type %T not among declared alternatives", c.name, x))
}
