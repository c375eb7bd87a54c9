package jsonconv

import (
	"fmt"
	"math/big"
	"reflect"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// Converter is the uniform conversion contract for one Go type: a shape test,
// a checked decode and an encode. TryAs returns a value whose dynamic type is
// exactly the registered type (or implements it, for interface targets).
type Converter interface {
	Is(v Value) bool
	TryAs(v Value) (any, error)
	ToJSON(x any) Value
}

// StreamEncoder is an optional Converter extension for direct-to-wire
// encoding without staging a full Value.
type StreamEncoder interface {
	EncodeTo(x any, vis Visitor) error
}

var (
	regMu          sync.Mutex
	userConverters = map[reflect.Type]Converter{}

	// resolved converters, read-mostly after program initialization
	resolved = xsync.NewMapOf[reflect.Type, Converter]()
)

// RegisterConverter installs a user-declared converter for t. Built-in rules
// are conditional on no user declaration existing, so a registered converter
// always wins over shape-based resolution. Intended to be called during
// program initialization; later registration replaces any cached resolution.
func RegisterConverter(t reflect.Type, c Converter) {
	regMu.Lock()
	userConverters[t] = c
	regMu.Unlock()
	resolved.Store(t, c)
}

// ConverterOf resolves the conversion rule for t, building and caching it on
// first use. Exactly one rule matches any given type; types with no matching
// rule (undeclared structs, undeclared interfaces, funcs, channels) resolve
// to an error.
func ConverterOf(t reflect.Type) (Converter, error) {
	if c, ok := resolved.Load(t); ok {
		return c, nil
	}
	regMu.Lock()
	c, ok := userConverters[t]
	regMu.Unlock()
	if !ok {
		var err error
		c, err = buildConverter(t)
		if err != nil {
			return nil, err
		}
	}
	c, _ = resolved.LoadOrStore(t, c)
	return c, nil
}

var (
	valueType    = reflect.TypeFor[Value]()
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
	bigIntType   = reflect.TypeFor[big.Int]()
	bitsetType   = reflect.TypeFor[Bitset]()
	pairIface    = reflect.TypeFor[interface {
		pairTypes() (reflect.Type, reflect.Type)
	}]()
)

// buildConverter selects the built-in rule for t. The order below is the
// documented rule priority: identity, distinguished named types, wrappers,
// byte containers, scalars, then the container shapes with back-insertable
// checked before insertable before front-insertable.
func buildConverter(t reflect.Type) (Converter, error) {
	switch t {
	case valueType:
		return passthroughConv{}, nil
	case durationType:
		return durationConv{}, nil
	case timeType:
		return timeConv{}, nil
	case bigIntType:
		return bigIntConv{}, nil
	case bitsetType:
		return bitsetConv{}, nil
	}
	if isOptionalLike(t) {
		return pointerConv{t: t, elem: t.Elem()}, nil
	}
	if t.Implements(pairIface) {
		first, second := reflect.New(t).Elem().Interface().(interface {
			pairTypes() (reflect.Type, reflect.Type)
		}).pairTypes()
		return pairConv{t: t, first: first, second: second}, nil
	}
	if isByteSlice(t) {
		return bytesConv{t: t}, nil
	}
	if isStringLike(t) {
		return stringConv{t: t}, nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return boolConv{t: t}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intConv{t: t}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uintConv{t: t}, nil
	case reflect.Float32, reflect.Float64:
		return floatConv{t: t}, nil
	}
	if isSliceLike(t) {
		return sliceConv{t: t, elem: t.Elem()}, nil
	}
	if isFixedArray(t) {
		return arrayConv{t: t, elem: t.Elem(), n: t.Len()}, nil
	}
	if isMapLike(t) {
		return newMapConv(t)
	}
	if shape, ok := containerShapeOf(t); ok {
		return containerConv{t: t, shape: shape}, nil
	}
	if isInterface(t) {
		return nil, fmt.Errorf("jsonconv: interface type %s has no registered variant or polymorphic binding", t)
	}
	if t.Kind() == reflect.Struct {
		return nil, fmt.Errorf("jsonconv: struct type %s has no registered binding", t)
	}
	return nil, fmt.Errorf("jsonconv: no conversion rule for %s", t)
}

// convFor resolves the converter for t, lowering resolution failures into the
// recoverable error channel. Composite rules resolve their element rules
// lazily through this helper so self-referential declarations work.
func convFor(t reflect.Type) (Converter, error) {
	c, err := ConverterOf(t)
	if err != nil {
		return nil, convErrCtx(ErrConversionFailed, t.String())
	}
	return c, nil
}

// isType reports whether v satisfies the rule for t; unresolvable types never
// match.
func isType(t reflect.Type, v Value) bool {
	c, err := ConverterOf(t)
	if err != nil {
		return false
	}
	return c.Is(v)
}
