package jsonconv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonconv"
)

func TestParseYAML_Scalars(t *testing.T) {
	v, err := jsonconv.ParseYAML([]byte("name: widget\ncount: 3\nratio: 0.5\nlive: true\ngone: null\n"))
	require.NoError(t, err)

	name, _ := v.Member("name")
	require.True(t, name.Equal(jsonconv.NewString("widget")))
	count, _ := v.Member("count")
	require.True(t, count.Equal(jsonconv.NewInt64(3)))
	ratio, _ := v.Member("ratio")
	require.True(t, ratio.Equal(jsonconv.NewFloat64(0.5)))
	live, _ := v.Member("live")
	require.True(t, live.Equal(jsonconv.NewBool(true)))
	gone, _ := v.Member("gone")
	require.True(t, gone.IsNull())
}

func TestParseYAML_KeyOrderPreserved(t *testing.T) {
	v, err := jsonconv.ParseYAML([]byte("bravo: 1\nalpha: 2\n"))
	require.NoError(t, err)
	ms := v.Members()
	require.Len(t, ms, 2)
	require.Equal(t, "bravo", ms[0].Key)
	require.Equal(t, "alpha", ms[1].Key)
}

func TestParseYAML_Sequences(t *testing.T) {
	v, err := jsonconv.ParseYAML([]byte("- x\n- 2\n- false\n"))
	require.NoError(t, err)
	require.True(t, v.Equal(jsonconv.NewArray(
		jsonconv.NewString("x"), jsonconv.NewInt64(2), jsonconv.NewBool(false),
	)))
}

func TestDecodeYAML_TypedTarget(t *testing.T) {
	got, err := jsonconv.DecodeYAML[map[string]int]([]byte("a: 1\nb: 2\n"))
	require.NoError(t, err)
	require.Equal(t, map[string]int{"a": 1, "b": 2}, got)

	_, err = jsonconv.DecodeYAML[[]int]([]byte("- 1\n- x\n"))
	require.Equal(t, jsonconv.ErrNotSigned, jsonconv.CodeOf(err))
}

func TestEncodeYAML_RoundTrip(t *testing.T) {
	out, err := jsonconv.EncodeYAML(map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	back, err := jsonconv.ParseYAML(out)
	require.NoError(t, err)
	require.True(t, back.Equal(jsonconv.ToJSON(map[string]int{"a": 1, "b": 2})))

	out, err = jsonconv.EncodeYAML([]string{"x", "y"})
	require.NoError(t, err)
	back, err = jsonconv.ParseYAML(out)
	require.NoError(t, err)
	require.True(t, back.Equal(jsonconv.NewArray(jsonconv.NewString("x"), jsonconv.NewString("y"))))
}

func TestParseYAML_Malformed(t *testing.T) {
	_, err := jsonconv.ParseYAML([]byte("a: [1, 2\n"))
	var pe *jsonconv.ParseError
	require.ErrorAs(t, err, &pe)
}
