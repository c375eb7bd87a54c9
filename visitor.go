package jsonconv

// Visitor receives a stream of value events. TryEncode drives a Visitor
// directly so callers can write to the wire without staging an intermediate
// Value.
type Visitor interface {
	BeginObject(size int) error
	Key(name string) error
	EndObject() error
	BeginArray(size int) error
	EndArray() error
	Null() error
	Bool(b bool) error
	Int64(v int64, tag Tag) error
	Uint64(v uint64, tag Tag) error
	Float64(v float64, tag Tag) error
	String(s string, tag Tag) error
	Bytes(b []byte, tag Tag) error
}

// EmitValue replays an already materialized Value into a visitor.
func EmitValue(v Value, vis Visitor) error {
	switch v.kind {
	case KindNull:
		return vis.Null()
	case KindBool:
		return vis.Bool(v.b)
	case KindInt:
		return vis.Int64(v.i, v.tag)
	case KindUint:
		return vis.Uint64(v.u, v.tag)
	case KindDouble:
		return vis.Float64(v.f, v.tag)
	case KindString:
		return vis.String(v.s, v.tag)
	case KindBytes:
		return vis.Bytes(v.by, v.tag)
	case KindArray:
		if err := vis.BeginArray(len(v.arr)); err != nil {
			return err
		}
		for i := range v.arr {
			if err := EmitValue(v.arr[i], vis); err != nil {
				return err
			}
		}
		return vis.EndArray()
	case KindObject:
		if err := vis.BeginObject(len(v.obj)); err != nil {
			return err
		}
		for i := range v.obj {
			if err := vis.Key(v.obj[i].Key); err != nil {
				return err
			}
			if err := EmitValue(v.obj[i].Value, vis); err != nil {
				return err
			}
		}
		return vis.EndObject()
	}
	return nil
}

// valueVisitor materializes visitor events back into a Value. It backs the
// Visitor-based encode path when a caller wants a Value rather than wire
// bytes.
type valueVisitor struct {
	stack []Value
	keys  []string
	out   Value
}

// NewValueVisitor returns a Visitor that collects events into a Value
// retrievable via Result.
func NewValueVisitor() *valueVisitor { return &valueVisitor{} }

// Result returns the collected value; valid once the event stream is
// balanced.
func (c *valueVisitor) Result() Value { return c.out }

func (c *valueVisitor) push(v Value) error {
	if n := len(c.stack); n > 0 {
		top := &c.stack[n-1]
		if top.kind == KindObject {
			key := c.keys[len(c.keys)-1]
			c.keys = c.keys[:len(c.keys)-1]
			top.obj = append(top.obj, Member{Key: key, Value: v})
		} else {
			top.arr = append(top.arr, v)
		}
		return nil
	}
	c.out = v
	return nil
}

func (c *valueVisitor) BeginObject(size int) error {
	v := Value{kind: KindObject}
	if size > 0 {
		v.obj = make([]Member, 0, size)
	}
	c.stack = append(c.stack, v)
	return nil
}

func (c *valueVisitor) Key(name string) error {
	c.keys = append(c.keys, name)
	return nil
}

func (c *valueVisitor) EndObject() error {
	n := len(c.stack)
	v := c.stack[n-1]
	c.stack = c.stack[:n-1]
	return c.push(v)
}

func (c *valueVisitor) BeginArray(size int) error {
	v := Value{kind: KindArray}
	if size > 0 {
		v.arr = make([]Value, 0, size)
	}
	c.stack = append(c.stack, v)
	return nil
}

func (c *valueVisitor) EndArray() error {
	n := len(c.stack)
	v := c.stack[n-1]
	c.stack = c.stack[:n-1]
	return c.push(v)
}

func (c *valueVisitor) Null() error        { return c.push(Null()) }
func (c *valueVisitor) Bool(b bool) error  { return c.push(NewBool(b)) }
func (c *valueVisitor) Int64(v int64, tag Tag) error {
	return c.push(NewInt64(v).WithTag(tag))
}
func (c *valueVisitor) Uint64(v uint64, tag Tag) error {
	return c.push(NewUint64(v).WithTag(tag))
}
func (c *valueVisitor) Float64(v float64, tag Tag) error {
	return c.push(NewFloat64(v).WithTag(tag))
}
func (c *valueVisitor) String(s string, tag Tag) error {
	return c.push(NewString(s).WithTag(tag))
}
func (c *valueVisitor) Bytes(b []byte, tag Tag) error {
	return c.push(NewBytes(b).WithTag(tag))
}
