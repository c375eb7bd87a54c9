// Package bind is the declarative registration surface of jsonconv.
//
// A binding associates one Go type with the conversion engine: aggregates
// (Object), enums (Enum), ordered alternative sets (Variant) and polymorphic
// subtype sets (Polymorphic). Registration is expected to happen during
// program initialization; the resulting tables are immutable afterwards and
// safe for concurrent readers.
//
//	var _ = bind.Object[Book]("Book").
//		Field("Author").
//		Field("Title").
//		Field("Price").
//		Field("ISBN").
//		Mandatory(3).
//		MustRegister()
//
// Members are declared in order; the first K (Mandatory(K)) form the
// mandatory prefix that must be present in a JSON object for the type to
// match. Remaining members are optional and default to their zero value when
// absent.
package bind
