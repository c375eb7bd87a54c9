package jsonconv_test

import (
	"testing"

	"github.com/reoring/jsonconv"
)

func TestValue_KindQueries(t *testing.T) {
	cases := []struct {
		v    jsonconv.Value
		kind jsonconv.Kind
	}{
		{jsonconv.Null(), jsonconv.KindNull},
		{jsonconv.NewBool(true), jsonconv.KindBool},
		{jsonconv.NewInt64(-1), jsonconv.KindInt},
		{jsonconv.NewUint64(1), jsonconv.KindUint},
		{jsonconv.NewFloat64(1.5), jsonconv.KindDouble},
		{jsonconv.NewString("s"), jsonconv.KindString},
		{jsonconv.NewBytes([]byte{1}), jsonconv.KindBytes},
		{jsonconv.NewArray(), jsonconv.KindArray},
		{jsonconv.NewObject(), jsonconv.KindObject},
	}
	for _, c := range cases {
		if c.v.Kind() != c.kind {
			t.Fatalf("kind = %v, want %v", c.v.Kind(), c.kind)
		}
	}
	if !jsonconv.NewInt64(1).IsNumber() || !jsonconv.NewUint64(1).IsNumber() || !jsonconv.NewFloat64(1).IsNumber() {
		t.Fatalf("numeric kinds should report IsNumber")
	}
	if jsonconv.NewFloat64(1).IsInteger() {
		t.Fatalf("double storage should not report IsInteger")
	}
}

func TestValue_MemberOrderPreserved(t *testing.T) {
	v := jsonconv.NewObject()
	v.Set("zulu", jsonconv.NewInt64(1))
	v.Set("alpha", jsonconv.NewInt64(2))
	v.Set("mike", jsonconv.NewInt64(3))
	ms := v.Members()
	if len(ms) != 3 || ms[0].Key != "zulu" || ms[1].Key != "alpha" || ms[2].Key != "mike" {
		t.Fatalf("members out of insertion order: %v", v)
	}
	// Set on an existing key overwrites in place
	v.Set("alpha", jsonconv.NewInt64(9))
	if got, _ := v.Member("alpha"); !got.Equal(jsonconv.NewInt64(9)) {
		t.Fatalf("Set did not overwrite: %v", got)
	}
	if v.Len() != 3 {
		t.Fatalf("len = %d after overwrite, want 3", v.Len())
	}
}

func TestValue_TryEmplaceKeepsExisting(t *testing.T) {
	v := jsonconv.NewObject()
	if !v.TryEmplace("k", jsonconv.NewInt64(1)) {
		t.Fatalf("first TryEmplace should insert")
	}
	if v.TryEmplace("k", jsonconv.NewInt64(2)) {
		t.Fatalf("second TryEmplace should keep the existing member")
	}
	got, _ := v.Member("k")
	if !got.Equal(jsonconv.NewInt64(1)) {
		t.Fatalf("member = %v, want 1", got)
	}
}

func TestValue_EqualAcrossNumericKinds(t *testing.T) {
	if !jsonconv.NewInt64(1).Equal(jsonconv.NewUint64(1)) {
		t.Fatalf("int 1 != uint 1")
	}
	if !jsonconv.NewInt64(1).Equal(jsonconv.NewFloat64(1)) {
		t.Fatalf("int 1 != double 1")
	}
	if jsonconv.NewInt64(-1).Equal(jsonconv.NewUint64(1<<63 + 1)) {
		t.Fatalf("negative int compared equal to a wide uint")
	}
	if jsonconv.NewInt64(1).Equal(jsonconv.NewInt64(1).WithTag(jsonconv.TagEpochSecond)) {
		t.Fatalf("tag mismatch should not compare equal")
	}
}

func TestValue_IntegerExtraction(t *testing.T) {
	if i, ok := jsonconv.NewUint64(5).Int64(); !ok || i != 5 {
		t.Fatalf("small uint should extract as int64")
	}
	if _, ok := jsonconv.NewUint64(1 << 63).Int64(); ok {
		t.Fatalf("wide uint should not extract as int64")
	}
	if _, ok := jsonconv.NewInt64(-1).Uint64(); ok {
		t.Fatalf("negative int should not extract as uint64")
	}
	if f, ok := jsonconv.NewInt64(3).Float64(); !ok || f != 3 {
		t.Fatalf("int should extract as float64")
	}
}
