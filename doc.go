// Package jsonconv maps between a dynamic, tagged JSON Value and statically
// typed Go data structures without per-type marshalling code.
//
// It provides:
//
//   - A uniform conversion contract per type: Is (shape test), TryAs (checked
//     decode into T), ToJSON (encode to a Value), TryEncode (streaming encode
//     through a Visitor)
//   - A fixed-priority rule set covering primitives, strings, byte containers,
//     slices, fixed arrays, maps, pairs, pointers, durations, bitsets, bignums
//     and custom containers
//   - Declarative per-type registration (aggregates, enums, variants,
//     polymorphic subtype sets) under bind/
//   - A stable error model via ConvError (code + "TypeName: fieldName" context)
//
// Design policy:
//   - Keep only public APIs in the root package; the registration DSL lives in bind/.
//   - Decode-path failures are reported through ConvError, never panics; the
//     panic tier is reserved for encoding values outside their declared domain.
//   - Rule tables are immutable after registration; concurrent readers need no
//     coordination.
//
// Typical usage:
//
//	v, err := jsonconv.ParseBytes(data)
//	book, err := jsonconv.TryAs[Book](v)
//
//	out := jsonconv.ToJSON(book)
//	text, err := jsonconv.Encode(book)
package jsonconv
