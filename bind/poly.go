package bind

import (
	"fmt"
	"reflect"

	jsonconv "github.com/reoring/jsonconv"
)

// SubtypeOf names one concrete type of a polymorphic set. Build with Subtype.
type SubtypeOf struct{ t reflect.Type }

// Subtype captures a concrete candidate type for Polymorphic.
func Subtype[T any]() SubtypeOf { return SubtypeOf{t: reflect.TypeFor[T]()} }

// Polymorphic registers a closed set of concrete subtypes for the interface
// type I. Decoding probes each subtype's Is in declared order and constructs
// the first match; declaration order is the tie-break when a JSON object
// satisfies more than one subtype's mandatory-member set. JSON null maps to a
// nil interface in both directions.
//
// Unlike the permissive null fallback some implementations choose, a value
// matching no registered subtype is a reported error on decode, and encoding
// a dynamic type outside the registered set panics; silent data loss is never
// an acceptable outcome here.
func Polymorphic[I any](name string, subtypes ...SubtypeOf) (jsonconv.Converter, error) {
	it := reflect.TypeFor[I]()
	if it.Kind() != reflect.Interface {
		return nil, fmt.Errorf("bind: polymorphic %s: %s is not an interface type", name, it)
	}
	if len(subtypes) == 0 {
		return nil, fmt.Errorf("bind: polymorphic %s declares no subtypes", name)
	}
	subs := make([]polySubtype, 0, len(subtypes))
	for _, s := range subtypes {
		switch {
		case s.t.Implements(it):
			subs = append(subs, polySubtype{t: s.t})
		case reflect.PointerTo(s.t).Implements(it):
			subs = append(subs, polySubtype{t: s.t, ptr: true})
		default:
			return nil, fmt.Errorf("bind: polymorphic %s: neither %s nor *%s implements %s", name, s.t, s.t, it)
		}
	}
	conv := &polyConv{name: name, subs: subs}
	jsonconv.RegisterConverter(it, conv)
	return conv, nil
}

// MustPolymorphic is like Polymorphic but panics on a declaration error.
func MustPolymorphic[I any](name string, subtypes ...SubtypeOf) jsonconv.Converter {
	c, err := Polymorphic[I](name, subtypes...)
	if err != nil {
		panic(err)
	}
	return c
}

type polySubtype struct {
	t   reflect.Type
	ptr bool // the interface is implemented by *t, store a pointer
}

type polyConv struct {
	name string
	subs []polySubtype
}

func (c *polyConv) Is(v jsonconv.Value) bool {
	if v.IsNull() {
		return true
	}
	for _, s := range c.subs {
		sc, err := jsonconv.ConverterOf(s.t)
		if err == nil && sc.Is(v) {
			return true
		}
	}
	return false
}

// TryAs re-runs candidates in declared order attempting a full conversion; a
// per-candidate failure means "try the next candidate", not "abort".
func (c *polyConv) TryAs(v jsonconv.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	for _, s := range c.subs {
		sc, err := jsonconv.ConverterOf(s.t)
		if err != nil || !sc.Is(v) {
			continue
		}
		x, err := sc.TryAs(v)
		if err != nil {
			continue
		}
		if s.ptr {
			pv := reflect.New(s.t)
			pv.Elem().Set(reflect.ValueOf(x))
			return pv.Interface(), nil
		}
		return x, nil
	}
	return nil, &jsonconv.ConvError{Code: jsonconv.ErrConversionFailed, Context: c.name}
}

// ToJSON probes the dynamic type against the registered set in declared
// order.
func (c *polyConv) ToJSON(x any) jsonconv.Value {
	if x == nil {
		return jsonconv.Null()
	}
	dt := reflect.TypeOf(x)
	for _, s := range c.subs {
		want := s.t
		if s.ptr {
			want = reflect.PointerTo(s.t)
		}
		if dt != want {
			continue
		}
		sc, err := jsonconv.ConverterOf(s.t)
		if err != nil {
			break
		}
		if s.ptr {
			rv := reflect.ValueOf(x)
			if rv.IsNil() {
				return jsonconv.Null()
			}
			return sc.ToJSON(rv.Elem().Interface())
		}
		return sc.ToJSON(x)
	}
	panic(fmt.Sprintf("bind: polymorphic %s: dynamic type %T not among registered subtypes", c.name, x))
}
