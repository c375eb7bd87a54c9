package jsonconv

import (
	"math"
	"strconv"
	"time"
)

// epochUnit returns the duration of one unit under the given epoch tag.
func epochUnit(tag Tag) (time.Duration, bool) {
	switch tag {
	case TagEpochSecond:
		return time.Second, true
	case TagEpochMilli:
		return time.Millisecond, true
	case TagEpochNano:
		return time.Nanosecond, true
	}
	return 0, false
}

// epochTicks extracts the numeric payload of an epoch-tagged value.
// Integer, float and decimal-string representations are all accepted; the
// tag, not the representation, is what is mandatory.
func epochTicks(v Value) (float64, bool) {
	if f, ok := v.Float64(); ok {
		return f, true
	}
	if s, ok := v.Str(); ok {
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

// durationConv maps time.Duration to epoch-tagged numbers. Decode requires
// one of the three epoch tags; encode always emits nanosecond precision.
type durationConv struct{}

func (durationConv) Is(v Value) bool {
	if _, ok := epochUnit(v.Tag()); !ok {
		return false
	}
	_, ok := epochTicks(v)
	return ok
}

func (durationConv) TryAs(v Value) (any, error) {
	unit, ok := epochUnit(v.Tag())
	if !ok {
		return nil, convErr(ErrNotEpoch)
	}
	// Integral payloads stay in integer arithmetic; float64 cannot carry
	// tick counts beyond 2^53 exactly.
	if i, ok := v.Int64(); ok {
		return time.Duration(i) * unit, nil
	}
	ticks, ok := epochTicks(v)
	if !ok {
		return nil, convErr(ErrNotEpoch)
	}
	return time.Duration(ticks * float64(unit)), nil
}

func (durationConv) ToJSON(x any) Value {
	d := x.(time.Duration)
	return NewInt64(d.Nanoseconds()).WithTag(TagEpochNano)
}

// timeConv maps time.Time through the same epoch tags. Encode emits epoch
// seconds, switching to a fractional representation only when sub-second
// precision is present.
type timeConv struct{}

func (timeConv) Is(v Value) bool {
	if _, ok := epochUnit(v.Tag()); !ok {
		return false
	}
	_, ok := epochTicks(v)
	return ok
}

func (timeConv) TryAs(v Value) (any, error) {
	unit, ok := epochUnit(v.Tag())
	if !ok {
		return nil, convErr(ErrNotEpoch)
	}
	if i, ok := v.Int64(); ok {
		switch unit {
		case time.Second:
			return time.Unix(i, 0).UTC(), nil
		case time.Millisecond:
			return time.UnixMilli(i).UTC(), nil
		default:
			return time.Unix(0, i).UTC(), nil
		}
	}
	ticks, ok := epochTicks(v)
	if !ok {
		return nil, convErr(ErrNotEpoch)
	}
	sec, frac := math.Modf(ticks * float64(unit) / float64(time.Second))
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC(), nil
}

func (timeConv) ToJSON(x any) Value {
	t := x.(time.Time)
	if t.Nanosecond() == 0 {
		return NewInt64(t.Unix()).WithTag(TagEpochSecond)
	}
	f := float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
	return NewFloat64(f).WithTag(TagEpochSecond)
}
