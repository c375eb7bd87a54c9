package jsonconv

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// elemValue adapts an element converter result for reflect assignment.
// Interface converters map null to a nil result; that becomes the element
// type's zero value rather than an invalid reflect.Value.
func elemValue(x any, t reflect.Type) reflect.Value {
	if x == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(x)
}

// sliceConv decodes JSON arrays into slices (the back-insertable discipline).
type sliceConv struct {
	t, elem reflect.Type
}

func (c sliceConv) Is(v Value) bool {
	if !v.IsArray() {
		return false
	}
	for _, it := range v.Items() {
		if !isType(c.elem, it) {
			return false
		}
	}
	return true
}

func (c sliceConv) TryAs(v Value) (any, error) {
	if !v.IsArray() {
		return nil, convErr(ErrNotVector)
	}
	ec, err := convFor(c.elem)
	if err != nil {
		return nil, err
	}
	out := reflect.MakeSlice(c.t, 0, v.Len())
	for _, it := range v.Items() {
		x, err := ec.TryAs(it)
		if err != nil {
			return nil, err
		}
		out = reflect.Append(out, elemValue(x, c.elem))
	}
	return out.Interface(), nil
}

func (c sliceConv) ToJSON(x any) Value {
	ec, err := ConverterOf(c.elem)
	if err != nil {
		panic(err)
	}
	rv := reflect.ValueOf(x)
	out := Value{kind: KindArray, arr: make([]Value, 0, rv.Len())}
	for i := 0; i < rv.Len(); i++ {
		out.PushBack(ec.ToJSON(rv.Index(i).Interface()))
	}
	return out
}

// arrayConv decodes into fixed-size arrays; arity must match exactly.
type arrayConv struct {
	t, elem reflect.Type
	n       int
}

func (c arrayConv) Is(v Value) bool {
	if !v.IsArray() || v.Len() != c.n {
		return false
	}
	for _, it := range v.Items() {
		if !isType(c.elem, it) {
			return false
		}
	}
	return true
}

func (c arrayConv) TryAs(v Value) (any, error) {
	if !v.IsArray() || v.Len() != c.n {
		return nil, convErr(ErrNotArray)
	}
	ec, err := convFor(c.elem)
	if err != nil {
		return nil, err
	}
	out := reflect.New(c.t).Elem()
	for i, it := range v.Items() {
		x, err := ec.TryAs(it)
		if err != nil {
			return nil, err
		}
		out.Index(i).Set(elemValue(x, c.elem))
	}
	return out.Interface(), nil
}

func (c arrayConv) ToJSON(x any) Value {
	ec, err := ConverterOf(c.elem)
	if err != nil {
		panic(err)
	}
	rv := reflect.ValueOf(x)
	out := Value{kind: KindArray, arr: make([]Value, 0, c.n)}
	for i := 0; i < c.n; i++ {
		out.PushBack(ec.ToJSON(rv.Index(i).Interface()))
	}
	return out
}

// mapConv decodes JSON objects into maps. Non-string key types round-trip
// through their own string encoding (numeric and bool keys).
type mapConv struct {
	t, key, elem reflect.Type
	stringKey    bool
}

func newMapConv(t reflect.Type) (Converter, error) {
	kt := t.Key()
	if !isStringLike(kt) {
		switch kt.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64, reflect.Bool:
		default:
			return nil, fmt.Errorf("jsonconv: map key type %s has no string encoding", kt)
		}
	}
	return mapConv{t: t, key: kt, elem: t.Elem(), stringKey: isStringLike(kt)}, nil
}

func (c mapConv) keyFromString(s string) (reflect.Value, bool) {
	rv := reflect.New(c.key).Elem()
	if c.stringKey {
		rv.SetString(s)
		return rv, true
	}
	switch c.key.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil || rv.OverflowInt(i) {
			return rv, false
		}
		rv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil || rv.OverflowUint(u) {
			return rv, false
		}
		rv.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return rv, false
		}
		rv.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return rv, false
		}
		rv.SetBool(b)
	}
	return rv, true
}

func (c mapConv) keyToString(k reflect.Value) string {
	if c.stringKey {
		return k.String()
	}
	switch c.key.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(k.Float(), 'g', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(k.Bool())
	}
	return ""
}

func (c mapConv) Is(v Value) bool {
	if !v.IsObject() {
		return false
	}
	for _, m := range v.Members() {
		if !c.stringKey {
			if _, ok := c.keyFromString(m.Key); !ok {
				return false
			}
		}
		if !isType(c.elem, m.Value) {
			return false
		}
	}
	return true
}

func (c mapConv) TryAs(v Value) (any, error) {
	if !v.IsObject() {
		return nil, convErr(ErrNotMap)
	}
	ec, err := convFor(c.elem)
	if err != nil {
		return nil, err
	}
	out := reflect.MakeMapWithSize(c.t, v.Len())
	for _, m := range v.Members() {
		k, ok := c.keyFromString(m.Key)
		if !ok {
			return nil, convErrCtx(ErrConversionFailed, "map key: "+m.Key)
		}
		x, err := ec.TryAs(m.Value)
		if err != nil {
			return nil, err
		}
		out.SetMapIndex(k, elemValue(x, c.elem))
	}
	return out.Interface(), nil
}

func (c mapConv) ToJSON(x any) Value {
	ec, err := ConverterOf(c.elem)
	if err != nil {
		panic(err)
	}
	rv := reflect.ValueOf(x)
	type kv struct {
		key string
		val reflect.Value
	}
	pairs := make([]kv, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, kv{key: c.keyToString(iter.Key()), val: iter.Value()})
	}
	// deterministic member order regardless of map iteration order
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
	out := Value{kind: KindObject, obj: make([]Member, 0, len(pairs))}
	for _, p := range pairs {
		out.Set(p.key, ec.ToJSON(p.val.Interface()))
	}
	return out
}

// containerConv covers custom containers discovered by method probing. The
// grow method decides the insertion discipline; front-inserting containers
// are filled in reverse so element order survives the round trip.
type containerConv struct {
	t     reflect.Type
	shape containerShape
}

func (c containerConv) Is(v Value) bool {
	if !v.IsArray() {
		return false
	}
	for _, it := range v.Items() {
		if !isType(c.shape.elem, it) {
			return false
		}
	}
	return true
}

func (c containerConv) TryAs(v Value) (any, error) {
	if !v.IsArray() {
		return nil, convErr(ErrNotVector)
	}
	ec, err := convFor(c.shape.elem)
	if err != nil {
		return nil, err
	}
	items := v.Items()
	out := reflect.New(c.t)
	grow := out.Method(c.shape.insert.Index)
	if c.shape.front {
		for i := len(items) - 1; i >= 0; i-- {
			x, err := ec.TryAs(items[i])
			if err != nil {
				return nil, err
			}
			grow.Call([]reflect.Value{elemValue(x, c.shape.elem)})
		}
	} else {
		for _, it := range items {
			x, err := ec.TryAs(it)
			if err != nil {
				return nil, err
			}
			grow.Call([]reflect.Value{elemValue(x, c.shape.elem)})
		}
	}
	return out.Elem().Interface(), nil
}

func (c containerConv) ToJSON(x any) Value {
	ec, err := ConverterOf(c.shape.elem)
	if err != nil {
		panic(err)
	}
	rv := reflect.New(c.t)
	rv.Elem().Set(reflect.ValueOf(x))
	out := Value{kind: KindArray}
	fn := reflect.MakeFunc(
		reflect.FuncOf([]reflect.Type{c.shape.elem}, []reflect.Type{reflect.TypeFor[bool]()}, false),
		func(args []reflect.Value) []reflect.Value {
			out.PushBack(ec.ToJSON(args[0].Interface()))
			return []reflect.Value{reflect.ValueOf(true)}
		},
	)
	rv.Method(c.shape.rng.Index).Call([]reflect.Value{fn})
	return out
}
