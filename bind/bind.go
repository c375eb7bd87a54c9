package bind

import (
	"fmt"
	"reflect"

	jsonconv "github.com/reoring/jsonconv"
)

// FieldOption customizes one declared member.
type FieldOption func(*member)

// ReadOnly marks a member as encode-only: it participates in Is (through its
// match predicate) and in ToJSON, but decode never writes it. Useful for
// constant discriminator fields.
func ReadOnly() FieldOption {
	return func(m *member) { m.readOnly = true }
}

// Match attaches a predicate tested against the raw wire value during Is and
// TryAs. A mandatory member whose predicate rejects the value makes the whole
// aggregate not match.
func Match(fn func(jsonconv.Value) bool) FieldOption {
	return func(m *member) { m.match = fn }
}

// Into attaches a projection applied when encoding the field to the wire,
// replacing the field type's own rule.
func Into(fn func(field any) jsonconv.Value) FieldOption {
	return func(m *member) { m.into = fn }
}

// From attaches the reverse projection applied when decoding the wire value
// into the field, replacing the field type's own rule.
func From(fn func(v jsonconv.Value) (any, error)) FieldOption {
	return func(m *member) { m.from = fn }
}

// member is one entry of an aggregate's declaration list.
type member struct {
	key      string
	ftype    reflect.Type
	index    []int                 // direct struct field access
	get      func(recv any) any    // accessor-based access; recv is *T
	set      func(recv any, v any) // nil in constructor mode
	match    func(jsonconv.Value) bool
	into     func(any) jsonconv.Value
	from     func(jsonconv.Value) (any, error)
	readOnly bool
}

// memberIs reports whether the raw wire value is acceptable for this member.
func (m *member) memberIs(raw jsonconv.Value) bool {
	if m.match != nil {
		return m.match(raw)
	}
	if m.from != nil {
		return true
	}
	c, err := jsonconv.ConverterOf(m.ftype)
	return err == nil && c.Is(raw)
}

// decode converts the raw wire value into the field representation.
func (m *member) decode(raw jsonconv.Value) (any, error) {
	if m.from != nil {
		return m.from(raw)
	}
	c, err := jsonconv.ConverterOf(m.ftype)
	if err != nil {
		return nil, &jsonconv.ConvError{Code: jsonconv.ErrConversionFailed, Context: m.ftype.String()}
	}
	return c.TryAs(raw)
}

// encode converts the field value into its wire representation.
func (m *member) encode(field any) jsonconv.Value {
	if m.into != nil {
		return m.into(field)
	}
	c, err := jsonconv.ConverterOf(m.ftype)
	if err != nil {
		panic(err)
	}
	return c.ToJSON(field)
}

// MemberOf is an accessor-based member declaration produced by Access or
// Getter and consumed by Builder.Member.
type MemberOf[T any] struct{ m member }

// Access declares a member reached through a getter/setter pair.
func Access[T, F any](key string, get func(*T) F, set func(*T, F), opts ...FieldOption) MemberOf[T] {
	m := member{
		key:   key,
		ftype: reflect.TypeFor[F](),
		get:   func(recv any) any { return get(recv.(*T)) },
		set:   func(recv any, v any) { set(recv.(*T), v.(F)) },
	}
	for _, o := range opts {
		o(&m)
	}
	return MemberOf[T]{m: m}
}

// Getter declares a member reached through a getter only. The aggregate must
// be assembled through a constructor (Builder.Ctor).
func Getter[T, F any](key string, get func(T) F, opts ...FieldOption) MemberOf[T] {
	m := member{
		key:   key,
		ftype: reflect.TypeFor[F](),
		get:   func(recv any) any { return get(*recv.(*T)) },
	}
	for _, o := range opts {
		o(&m)
	}
	return MemberOf[T]{m: m}
}

// Builder declares the member list of one aggregate type.
type Builder[T any] struct {
	name       string
	rtype      reflect.Type
	members    []member
	mandatory  int
	hasMand    bool
	positional bool
	ctor       func(args []any) (T, error)
	errs       []error
}

// Object starts a binding for aggregate type T. The name is used in error
// contexts ("Book: price").
func Object[T any](name string) *Builder[T] {
	return &Builder[T]{name: name, rtype: reflect.TypeFor[T]()}
}

// Field declares a direct struct member; the wire key is derived from the
// json tag or the field name.
func (b *Builder[T]) Field(name string, opts ...FieldOption) *Builder[T] {
	return b.field(name, "", opts)
}

// Named declares a direct struct member with an explicit wire key.
func (b *Builder[T]) Named(name, key string, opts ...FieldOption) *Builder[T] {
	if key == "" {
		b.errs = append(b.errs, fmt.Errorf("bind: %s.%s: empty wire key", b.name, name))
		return b
	}
	return b.field(name, key, opts)
}

func (b *Builder[T]) field(name, key string, opts []FieldOption) *Builder[T] {
	if b.rtype.Kind() != reflect.Struct {
		b.errs = append(b.errs, fmt.Errorf("bind: %s is not a struct type", b.rtype))
		return b
	}
	sf, ok := b.rtype.FieldByName(name)
	if !ok || !sf.IsExported() {
		b.errs = append(b.errs, fmt.Errorf("bind: %s has no exported field %s", b.rtype, name))
		return b
	}
	if key == "" {
		key = resolveStructKey(sf)
	}
	m := member{key: key, ftype: sf.Type, index: sf.Index}
	for _, o := range opts {
		o(&m)
	}
	b.members = append(b.members, m)
	return b
}

// Member appends an accessor-based member declaration.
func (b *Builder[T]) Member(m MemberOf[T]) *Builder[T] {
	b.members = append(b.members, m.m)
	return b
}

// Mandatory sets the mandatory prefix length: the first k declared members
// must be present in a JSON object for the aggregate to match. Without a
// Mandatory call every member is mandatory.
func (b *Builder[T]) Mandatory(k int) *Builder[T] {
	b.mandatory = k
	b.hasMand = true
	return b
}

// Positional switches the wire shape to a JSON array holding the members in
// declaration order (tuple semantics; arity between the mandatory count and
// the member count).
func (b *Builder[T]) Positional() *Builder[T] {
	b.positional = true
	return b
}

// Ctor switches assembly to constructor mode: decoded member values are
// collected in declaration order and passed to fn. Members are typically
// declared with Getter.
func (b *Builder[T]) Ctor(fn func(args []any) (T, error)) *Builder[T] {
	b.ctor = fn
	return b
}

// Register validates the declaration and installs the aggregate converter.
func (b *Builder[T]) Register() (jsonconv.Converter, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if len(b.members) == 0 {
		return nil, fmt.Errorf("bind: %s declares no members", b.name)
	}
	k := len(b.members)
	if b.hasMand {
		k = b.mandatory
	}
	if k < 0 || k > len(b.members) {
		return nil, fmt.Errorf("bind: %s: mandatory count %d out of range [0,%d]", b.name, k, len(b.members))
	}
	if b.ctor == nil {
		for i := range b.members {
			m := &b.members[i]
			if m.index == nil && m.set == nil && !m.readOnly {
				return nil, fmt.Errorf("bind: %s.%s: getter-only member requires Ctor assembly or ReadOnly", b.name, m.key)
			}
		}
	}
	seen := map[string]struct{}{}
	for i := range b.members {
		key := b.members[i].key
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("bind: %s declares duplicate wire key %q", b.name, key)
		}
		seen[key] = struct{}{}
	}
	var ctor func([]any) (any, error)
	if b.ctor != nil {
		inner := b.ctor
		ctor = func(args []any) (any, error) { return inner(args) }
	}
	conv := &aggregateConv{
		name:       b.name,
		rtype:      b.rtype,
		members:    b.members,
		mandatory:  k,
		positional: b.positional,
		ctor:       ctor,
	}
	jsonconv.RegisterConverter(b.rtype, conv)
	return conv, nil
}

// MustRegister is like Register but panics on a declaration error.
func (b *Builder[T]) MustRegister() jsonconv.Converter {
	c, err := b.Register()
	if err != nil {
		panic(err)
	}
	return c
}
