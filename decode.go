package jsonconv

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
)

// ParseOptions bundles text-parsing options.
type ParseOptions struct {
	// MaxDepth bounds container nesting; 0 means the default (256).
	MaxDepth int
}

const defaultMaxDepth = 256

// ParseError reports malformed input text. Unlike ConvError it is not part of
// the recoverable conversion channel; it means the input was not JSON at all.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsonconv: parse error at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseBytes parses JSON text into a Value. Object member order is preserved
// and integer fidelity is kept (int64, then uint64; integral literals beyond
// uint64 become BigNum-tagged strings).
func ParseBytes(data []byte, opts ...ParseOptions) (Value, error) {
	return ParseReader(bytes.NewReader(data), opts...)
}

// ParseString parses JSON text into a Value.
func ParseString(s string, opts ...ParseOptions) (Value, error) {
	return ParseReader(strings.NewReader(s), opts...)
}

// ParseReader parses JSON text from r into a Value.
func ParseReader(r io.Reader, opts ...ParseOptions) (Value, error) {
	maxDepth := defaultMaxDepth
	if len(opts) > 0 && opts[0].MaxDepth > 0 {
		maxDepth = opts[0].MaxDepth
	}
	dec := j.NewDecoder(r)
	dec.UseNumber()
	p := &parser{dec: dec, maxDepth: maxDepth}
	tok, err := dec.Token()
	if err != nil {
		return Value{}, p.fail(err)
	}
	v, err := p.value(tok)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, p.fail(fmt.Errorf("trailing content after value"))
	}
	return v, nil
}

// Decode parses JSON text and converts the result into a T.
func Decode[T any](data []byte, opts ...ParseOptions) (T, error) {
	v, err := ParseBytes(data, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return TryAs[T](v)
}

// DecodeString parses JSON text from a string and converts it into a T.
func DecodeString[T any](s string, opts ...ParseOptions) (T, error) {
	return Decode[T]([]byte(s), opts...)
}

type parser struct {
	dec      *j.Decoder
	depth    int
	maxDepth int
}

func (p *parser) fail(err error) error {
	return &ParseError{Offset: p.dec.InputOffset(), Err: err}
}

func (p *parser) value(tok j.Token) (Value, error) {
	switch t := tok.(type) {
	case j.Delim:
		switch t {
		case '{':
			return p.object()
		case '[':
			return p.array()
		}
		return Value{}, p.fail(fmt.Errorf("unexpected delimiter %q", t.String()))
	case string:
		return NewString(t), nil
	case bool:
		return NewBool(t), nil
	case j.Number:
		return numberValue(string(t)), nil
	case nil:
		return Null(), nil
	}
	return Value{}, p.fail(fmt.Errorf("unexpected token %v", tok))
}

func (p *parser) object() (Value, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return Value{}, p.fail(fmt.Errorf("max depth %d exceeded", p.maxDepth))
	}
	out := Value{kind: KindObject}
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return Value{}, p.fail(err)
		}
		if d, ok := tok.(j.Delim); ok && d == '}' {
			return out, nil
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, p.fail(fmt.Errorf("object key is not a string"))
		}
		vt, err := p.dec.Token()
		if err != nil {
			return Value{}, p.fail(err)
		}
		v, err := p.value(vt)
		if err != nil {
			return Value{}, err
		}
		// last write wins for duplicate keys, matching encoding/json
		out.Set(key, v)
	}
}

func (p *parser) array() (Value, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return Value{}, p.fail(fmt.Errorf("max depth %d exceeded", p.maxDepth))
	}
	out := Value{kind: KindArray}
	for {
		if p.dec.More() {
			tok, err := p.dec.Token()
			if err != nil {
				return Value{}, p.fail(err)
			}
			v, err := p.value(tok)
			if err != nil {
				return Value{}, err
			}
			out.PushBack(v)
			continue
		}
		tok, err := p.dec.Token()
		if err != nil {
			return Value{}, p.fail(err)
		}
		if d, ok := tok.(j.Delim); ok && d == ']' {
			return out, nil
		}
		return Value{}, p.fail(fmt.Errorf("unterminated array"))
	}
}

// numberValue picks the narrowest faithful storage for a JSON number literal:
// int64, then uint64, then a BigNum-tagged string for wider integers, then
// double.
func numberValue(text string) Value {
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return NewInt64(i)
		}
		if u, err := strconv.ParseUint(text, 10, 64); err == nil {
			return NewUint64(u)
		}
		return NewString(text).WithTag(TagBigNum)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// the tokenizer validated the literal; fall back to a raw string
		return NewString(text)
	}
	return NewFloat64(f)
}
