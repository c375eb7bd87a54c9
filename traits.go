package jsonconv

import "reflect"

// Capability predicates answer shape questions about a candidate Go type.
// They have no runtime behavior of their own; the registry uses them to pick
// exactly one conversion rule per type. Overlapping container shapes are
// resolved by the registry's fixed priority order (back-insertable before
// insertable before front-insertable), not here.

func isStringLike(t reflect.Type) bool { return t.Kind() == reflect.String }

// isByteLike reports whether t is an 8-bit element type.
func isByteLike(t reflect.Type) bool {
	return t.Kind() == reflect.Uint8 || t.Kind() == reflect.Int8
}

func isByteSlice(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && isByteLike(t.Elem())
}

func isMapLike(t reflect.Type) bool { return t.Kind() == reflect.Map }

func isSliceLike(t reflect.Type) bool { return t.Kind() == reflect.Slice }

func isFixedArray(t reflect.Type) bool { return t.Kind() == reflect.Array }

// isOptionalLike reports whether t is a pointer, the Go rendering of an
// optional/owning wrapper.
func isOptionalLike(t reflect.Type) bool { return t.Kind() == reflect.Pointer }

func isInterface(t reflect.Type) bool { return t.Kind() == reflect.Interface }

// containerShape describes a custom container discovered by method probing.
type containerShape struct {
	insert reflect.Method // PushBack / Insert / PushFront
	rng    reflect.Method // Range(func(E) bool)
	elem   reflect.Type
	front  bool // elements arrive reversed relative to encode order
}

// Custom containers expose one single-argument grow method plus
// Range(func(E) bool) for iteration. The grow method decides the insertion
// discipline. Probed on *T so pointer-receiver methods are visible.
var containerGrowMethods = []string{"PushBack", "Insert", "PushFront"}

// containerShapeOf probes t for a custom container shape. It returns ok=false
// when t does not expose a recognized grow/iterate method pair.
func containerShapeOf(t reflect.Type) (containerShape, bool) {
	if t.Kind() != reflect.Struct {
		return containerShape{}, false
	}
	pt := reflect.PointerTo(t)
	rng, ok := pt.MethodByName("Range")
	if !ok {
		return containerShape{}, false
	}
	// Range(func(E) bool)
	rt := rng.Func.Type()
	if rt.NumIn() != 2 || rt.In(1).Kind() != reflect.Func {
		return containerShape{}, false
	}
	ft := rt.In(1)
	if ft.NumIn() != 1 || ft.NumOut() != 1 || ft.Out(0).Kind() != reflect.Bool {
		return containerShape{}, false
	}
	elem := ft.In(0)
	for _, name := range containerGrowMethods {
		m, ok := pt.MethodByName(name)
		if !ok {
			continue
		}
		mt := m.Func.Type()
		if mt.NumIn() != 2 || mt.In(1) != elem {
			continue
		}
		return containerShape{insert: m, rng: rng, elem: elem, front: name == "PushFront"}, true
	}
	return containerShape{}, false
}
