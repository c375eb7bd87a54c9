package jsonconv

import (
	"bytes"
	"strconv"

	j "github.com/goccy/go-json"
)

// Encode converts x to JSON text through the streaming visitor path.
func Encode[T any](x T) ([]byte, error) {
	w := NewTextVisitor()
	if err := TryEncode(x, w); err != nil {
		return nil, err
	}
	return w.Result(), nil
}

// EncodeString converts x to JSON text as a string.
func EncodeString[T any](x T) (string, error) {
	b, err := Encode[T](x)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DumpBytes renders an already materialized Value as JSON text.
func DumpBytes(v Value) []byte {
	w := NewTextVisitor()
	// the text visitor never fails on a well-formed Value
	_ = EmitValue(v, w)
	return w.Result()
}

// DumpString renders a Value as a JSON string.
func DumpString(v Value) string { return string(DumpBytes(v)) }

// textVisitor writes visitor events as compact JSON text. Byte strings are
// written as encoded strings per their semantic tag (hex for Base16, std
// base64 for Base64, base64url otherwise); BigNum-tagged strings are written
// as raw number literals.
type textVisitor struct {
	buf   bytes.Buffer
	first []bool // per open container: no element written yet
	key   bool   // next event is a value following a key
}

// NewTextVisitor returns a Visitor producing compact JSON text, retrievable
// via Result.
func NewTextVisitor() *textVisitor { return &textVisitor{} }

func (w *textVisitor) Result() []byte { return w.buf.Bytes() }

func (w *textVisitor) sep() {
	if w.key {
		w.key = false
		return
	}
	if n := len(w.first); n > 0 {
		if w.first[n-1] {
			w.first[n-1] = false
		} else {
			w.buf.WriteByte(',')
		}
	}
}

func (w *textVisitor) BeginObject(int) error {
	w.sep()
	w.buf.WriteByte('{')
	w.first = append(w.first, true)
	return nil
}

func (w *textVisitor) Key(name string) error {
	w.sep()
	w.writeString(name)
	w.buf.WriteByte(':')
	w.key = true
	return nil
}

func (w *textVisitor) EndObject() error {
	w.first = w.first[:len(w.first)-1]
	w.buf.WriteByte('}')
	return nil
}

func (w *textVisitor) BeginArray(int) error {
	w.sep()
	w.buf.WriteByte('[')
	w.first = append(w.first, true)
	return nil
}

func (w *textVisitor) EndArray() error {
	w.first = w.first[:len(w.first)-1]
	w.buf.WriteByte(']')
	return nil
}

func (w *textVisitor) Null() error {
	w.sep()
	w.buf.WriteString("null")
	return nil
}

func (w *textVisitor) Bool(b bool) error {
	w.sep()
	w.buf.WriteString(strconv.FormatBool(b))
	return nil
}

func (w *textVisitor) Int64(v int64, _ Tag) error {
	w.sep()
	w.buf.WriteString(strconv.FormatInt(v, 10))
	return nil
}

func (w *textVisitor) Uint64(v uint64, _ Tag) error {
	w.sep()
	w.buf.WriteString(strconv.FormatUint(v, 10))
	return nil
}

func (w *textVisitor) Float64(v float64, _ Tag) error {
	w.sep()
	b, err := j.Marshal(v)
	if err != nil {
		return err
	}
	w.buf.Write(b)
	return nil
}

func (w *textVisitor) String(s string, tag Tag) error {
	w.sep()
	if tag == TagBigNum {
		w.buf.WriteString(s)
		return nil
	}
	w.writeString(s)
	return nil
}

func (w *textVisitor) Bytes(b []byte, tag Tag) error {
	w.sep()
	w.writeString(encodeByteText(b, tag))
	return nil
}

func (w *textVisitor) writeString(s string) {
	// delegate escaping to the JSON codec
	out, err := j.Marshal(s)
	if err != nil {
		out = []byte(strconv.Quote(s))
	}
	w.buf.Write(out)
}
