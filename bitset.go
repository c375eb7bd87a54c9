package jsonconv

import "math/bits"

// Bitset is a fixed-width bit array. Bit i lives in byte i/8 at position i%8
// (little-endian bit order). The zero value is an empty bitset.
type Bitset struct {
	n    int
	data []byte
}

// NewBitset returns a bitset holding n bits, all clear.
func NewBitset(n int) Bitset {
	return Bitset{n: n, data: make([]byte, (n+7)/8)}
}

// BitsetFromBytes wraps b as a bitset of 8*len(b) bits. The slice is copied.
func BitsetFromBytes(b []byte) Bitset {
	return Bitset{n: len(b) * 8, data: append([]byte(nil), b...)}
}

// BitsetFromUint64 builds a bitset from the set bits of u, sized to the
// smallest whole number of bytes that holds them.
func BitsetFromUint64(u uint64) Bitset {
	width := bits.Len64(u)
	if width == 0 {
		width = 8
	}
	bs := NewBitset((width + 7) / 8 * 8)
	for i := 0; i < 64 && u != 0; i++ {
		if u&(1<<uint(i)) != 0 {
			bs.Set(i, true)
		}
	}
	return bs
}

// Size returns the bit width.
func (b Bitset) Size() int { return b.n }

// Test reports whether bit i is set; out-of-range bits read as clear.
func (b Bitset) Test(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}
	return b.data[i/8]&(1<<uint(i%8)) != 0
}

// Set writes bit i. Out-of-range writes are ignored.
func (b Bitset) Set(i int, on bool) {
	if i < 0 || i >= b.n {
		return
	}
	if on {
		b.data[i/8] |= 1 << uint(i%8)
	} else {
		b.data[i/8] &^= 1 << uint(i%8)
	}
}

// Bytes exposes the backing storage; callers must not mutate it.
func (b Bitset) Bytes() []byte { return b.data }

// bitsetConv accepts a byte string or a Base16-tagged hex string; TryAs
// additionally accepts a plain unsigned integer under the width. Encode emits
// Base16-tagged bytes.
type bitsetConv struct{}

func (bitsetConv) Is(v Value) bool {
	if v.IsBytes() {
		return true
	}
	if s, ok := v.Str(); ok && v.Tag() == TagBase16 {
		_, err := decodeByteText(s, TagBase16)
		return err == nil
	}
	return false
}

func (bitsetConv) TryAs(v Value) (any, error) {
	if b, ok := v.BytesVal(); ok {
		return BitsetFromBytes(b), nil
	}
	if s, ok := v.Str(); ok && v.Tag() == TagBase16 {
		raw, err := decodeByteText(s, TagBase16)
		if err != nil {
			return nil, convErr(ErrNotBitset)
		}
		return BitsetFromBytes(raw), nil
	}
	if u, ok := v.Uint64(); ok {
		return BitsetFromUint64(u), nil
	}
	return nil, convErr(ErrNotBitset)
}

func (bitsetConv) ToJSON(x any) Value {
	bs := x.(Bitset)
	return NewBytes(append([]byte(nil), bs.data...)).WithTag(TagBase16)
}
