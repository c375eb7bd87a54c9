package bind

import (
	"fmt"
	"reflect"

	jsonconv "github.com/reoring/jsonconv"
)

// aggregateConv is the conversion rule generated for one registered
// aggregate. All three access patterns share the same algorithm; they differ
// only in how the final value is assembled and in how a member's current
// value is read.
type aggregateConv struct {
	name       string
	rtype      reflect.Type
	members    []member
	mandatory  int
	positional bool
	ctor       func(args []any) (any, error)
}

var _ jsonconv.StreamEncoder = (*aggregateConv)(nil)

func (c *aggregateConv) ctxFor(m *member) string { return c.name + ": " + m.key }

// Is tests the mandatory prefix only: the first K declared members must be
// present (and pass their match predicates). Cost is O(K) key lookups, never
// a full structural validation.
func (c *aggregateConv) Is(v jsonconv.Value) bool {
	if c.positional {
		return c.isPositional(v)
	}
	if !v.IsObject() {
		return false
	}
	for i := 0; i < c.mandatory; i++ {
		m := &c.members[i]
		raw, ok := v.Member(m.key)
		if !ok {
			return false
		}
		if m.match != nil && !m.match(raw) {
			return false
		}
	}
	return true
}

func (c *aggregateConv) isPositional(v jsonconv.Value) bool {
	if !v.IsArray() || v.Len() < c.mandatory || v.Len() > len(c.members) {
		return false
	}
	for i := 0; i < v.Len(); i++ {
		if !c.members[i].memberIs(v.At(i)) {
			return false
		}
	}
	return true
}

// TryAs walks members in declaration order and stops at the first failure,
// reporting it with context "TypeName: fieldName". Optional members absent
// from the input default to their zero value.
func (c *aggregateConv) TryAs(v jsonconv.Value) (any, error) {
	if c.positional {
		return c.tryAsPositional(v)
	}
	if !v.IsObject() {
		return nil, &jsonconv.ConvError{Code: jsonconv.ErrExpectedObject, Context: c.name}
	}
	args := make([]any, len(c.members))
	for i := range c.members {
		m := &c.members[i]
		if m.readOnly && c.ctor == nil {
			continue
		}
		raw, ok := v.Member(m.key)
		if !ok {
			if i < c.mandatory {
				return nil, &jsonconv.ConvError{Code: jsonconv.ErrMissingMember, Context: c.ctxFor(m)}
			}
			args[i] = reflect.Zero(m.ftype).Interface()
			continue
		}
		if m.match != nil && !m.match(raw) {
			return nil, &jsonconv.ConvError{Code: jsonconv.ErrConversionFailed, Context: c.ctxFor(m)}
		}
		if m.readOnly {
			args[i] = reflect.Zero(m.ftype).Interface()
			continue
		}
		x, err := m.decode(raw)
		if err != nil {
			return nil, rebase(err, c.ctxFor(m))
		}
		args[i] = x
	}
	return c.assemble(args)
}

func (c *aggregateConv) tryAsPositional(v jsonconv.Value) (any, error) {
	if !v.IsArray() || v.Len() > len(c.members) {
		return nil, &jsonconv.ConvError{Code: jsonconv.ErrNotArray, Context: c.name}
	}
	args := make([]any, len(c.members))
	for i := range c.members {
		m := &c.members[i]
		if i >= v.Len() {
			if i < c.mandatory {
				return nil, &jsonconv.ConvError{Code: jsonconv.ErrMissingMember, Context: c.ctxFor(m)}
			}
			args[i] = reflect.Zero(m.ftype).Interface()
			continue
		}
		raw := v.At(i)
		if m.match != nil && !m.match(raw) {
			return nil, &jsonconv.ConvError{Code: jsonconv.ErrConversionFailed, Context: c.ctxFor(m)}
		}
		x, err := m.decode(raw)
		if err != nil {
			return nil, rebase(err, c.ctxFor(m))
		}
		args[i] = x
	}
	return c.assemble(args)
}

// assemble produces the final aggregate value: constructor call, or a fresh
// value written through field indices and setters.
func (c *aggregateConv) assemble(args []any) (any, error) {
	if c.ctor != nil {
		out, err := c.ctor(args)
		if err != nil {
			return nil, rebase(err, c.name)
		}
		return out, nil
	}
	pv := reflect.New(c.rtype)
	for i := range c.members {
		m := &c.members[i]
		if m.readOnly {
			continue
		}
		if args[i] == nil {
			// nil interface results keep the field's zero value
			continue
		}
		switch {
		case m.index != nil:
			pv.Elem().FieldByIndex(m.index).Set(reflect.ValueOf(args[i]))
		case m.set != nil:
			m.set(pv.Interface(), args[i])
		}
	}
	return pv.Elem().Interface(), nil
}

// read returns member i's current value from an addressable copy of the
// aggregate.
func (c *aggregateConv) read(pv reflect.Value, m *member) any {
	if m.index != nil {
		return pv.Elem().FieldByIndex(m.index).Interface()
	}
	return m.get(pv.Interface())
}

// emitted reports whether an optional member's held value counts as "set".
// Mandatory members always emit; plain optional fields past the prefix emit
// unconditionally, nil-able ones only when non-nil.
func (c *aggregateConv) emitted(i int, field any) bool {
	if i < c.mandatory {
		return true
	}
	if field == nil {
		return false
	}
	rv := reflect.ValueOf(field)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// ToJSON emits members in declaration order, never alphabetical.
func (c *aggregateConv) ToJSON(x any) jsonconv.Value {
	vis := jsonconv.NewValueVisitor()
	if err := c.EncodeTo(x, vis); err != nil {
		panic(fmt.Sprintf("bind: %s: encode: %v", c.name, err))
	}
	return vis.Result()
}

// EncodeTo streams the aggregate through a visitor without staging the whole
// object.
func (c *aggregateConv) EncodeTo(x any, vis jsonconv.Visitor) error {
	pv := reflect.New(c.rtype)
	pv.Elem().Set(reflect.ValueOf(x))
	if c.positional {
		if err := vis.BeginArray(len(c.members)); err != nil {
			return err
		}
		for i := range c.members {
			m := &c.members[i]
			if err := jsonconv.EmitValue(m.encode(c.read(pv, m)), vis); err != nil {
				return err
			}
		}
		return vis.EndArray()
	}
	if err := vis.BeginObject(len(c.members)); err != nil {
		return err
	}
	for i := range c.members {
		m := &c.members[i]
		field := c.read(pv, m)
		if !c.emitted(i, field) {
			continue
		}
		if err := vis.Key(m.key); err != nil {
			return err
		}
		if err := jsonconv.EmitValue(m.encode(field), vis); err != nil {
			return err
		}
	}
	return vis.EndObject()
}

// rebase rewrites the context of a conversion error, preserving its code.
func rebase(err error, ctx string) error {
	if ce, ok := jsonconv.AsConvError(err); ok {
		return &jsonconv.ConvError{Code: ce.Code, Context: ctx}
	}
	return &jsonconv.ConvError{Code: jsonconv.ErrConversionFailed, Context: ctx}
}
