package jsonconv

import "math/big"

// bigIntConv maps big.Int to a BigNum-tagged decimal string, accepting
// native integer storage on decode. Registered for the value type; *big.Int
// composes through the pointer rule.
type bigIntConv struct{}

func (bigIntConv) Is(v Value) bool {
	if v.IsInteger() {
		return true
	}
	if s, ok := v.Str(); ok && v.Tag() == TagBigNum {
		_, valid := new(big.Int).SetString(s, 10)
		return valid
	}
	return false
}

func (bigIntConv) TryAs(v Value) (any, error) {
	if i, ok := v.Int64(); ok {
		return *big.NewInt(i), nil
	}
	if u, ok := v.Uint64(); ok {
		return *new(big.Int).SetUint64(u), nil
	}
	if s, ok := v.Str(); ok && v.Tag() == TagBigNum {
		n, valid := new(big.Int).SetString(s, 10)
		if !valid {
			return nil, convErr(ErrNotBigint)
		}
		return *n, nil
	}
	return nil, convErr(ErrNotBigint)
}

func (bigIntConv) ToJSON(x any) Value {
	n := x.(big.Int)
	return NewString(n.String()).WithTag(TagBigNum)
}
