package bind_test

import (
	"math"
	"testing"

	"github.com/reoring/jsonconv"
	"github.com/reoring/jsonconv/bind"
)

type Book struct {
	Author string  `json:"author"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	ISBN   *string `json:"isbn"`
}

var _ = bind.Object[Book]("Book").
	Field("Author").
	Field("Title").
	Field("Price").
	Field("ISBN").
	Mandatory(3).
	MustRegister()

func TestBook_DecodeWithOptionalAbsent(t *testing.T) {
	got, err := jsonconv.DecodeString[Book](`{"author":"Haruki Murakami","title":"Kafka on the Shore","price":25.17}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Author != "Haruki Murakami" || got.Title != "Kafka on the Shore" || got.Price != 25.17 {
		t.Fatalf("book = %+v", got)
	}
	if got.ISBN != nil {
		t.Fatalf("absent optional member should stay nil, got %q", *got.ISBN)
	}
}

func TestBook_DecodeWithOptionalPresent(t *testing.T) {
	got, err := jsonconv.DecodeString[Book](`{"author":"A","title":"T","price":9.99,"isbn":"978-4-06-312957-2"}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ISBN == nil || *got.ISBN != "978-4-06-312957-2" {
		t.Fatalf("isbn = %v", got.ISBN)
	}
}

func TestBook_MissingMandatoryMember(t *testing.T) {
	v, err := jsonconv.ParseString(`{"author":"A","title":"T"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if jsonconv.Is[Book](v) {
		t.Fatalf("object without price should not match")
	}
	_, err = jsonconv.TryAs[Book](v)
	ce, ok := jsonconv.AsConvError(err)
	if !ok || ce.Code != jsonconv.ErrMissingMember {
		t.Fatalf("error = %v", err)
	}
	if ce.Context != "Book: price" {
		t.Fatalf("context = %q, want %q", ce.Context, "Book: price")
	}
}

func TestBook_MemberTypeMismatchKeepsCode(t *testing.T) {
	_, err := jsonconv.DecodeString[Book](`{"author":"A","title":"T","price":"cheap"}`)
	ce, ok := jsonconv.AsConvError(err)
	if !ok || ce.Code != jsonconv.ErrNotDouble || ce.Context != "Book: price" {
		t.Fatalf("error = %v", err)
	}
}

func TestBook_NonObjectInput(t *testing.T) {
	_, err := jsonconv.TryAs[Book](jsonconv.NewArray())
	ce, ok := jsonconv.AsConvError(err)
	if !ok || ce.Code != jsonconv.ErrExpectedObject {
		t.Fatalf("error = %v", err)
	}
}

func TestBook_IsIgnoresExtraMembers(t *testing.T) {
	v, err := jsonconv.ParseString(`{"author":"A","title":"T","price":1,"edition":3}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !jsonconv.Is[Book](v) {
		t.Fatalf("extra members should not reject the match")
	}
}

func TestBook_EncodeDeclarationOrderAndOmission(t *testing.T) {
	out, err := jsonconv.EncodeString(Book{Author: "A", Title: "T", Price: 9.99})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if out != `{"author":"A","title":"T","price":9.99}` {
		t.Fatalf("encoded = %s", out)
	}

	isbn := "978"
	out, err = jsonconv.EncodeString(Book{Author: "A", Title: "T", Price: 1, ISBN: &isbn})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if out != `{"author":"A","title":"T","price":1,"isbn":"978"}` {
		t.Fatalf("encoded = %s", out)
	}
}

type point struct {
	X float64
	Y float64
}

var _ = bind.Object[point]("Point").
	Field("X").
	Field("Y").
	Positional().
	MustRegister()

func TestPositional_RoundTrip(t *testing.T) {
	got, err := jsonconv.DecodeString[point]("[1.5,2.5]")
	if err != nil || got != (point{X: 1.5, Y: 2.5}) {
		t.Fatalf("point = %+v, %v", got, err)
	}
	out, err := jsonconv.EncodeString(got)
	if err != nil || out != "[1.5,2.5]" {
		t.Fatalf("encoded = %s, %v", out, err)
	}
}

func TestPositional_Arity(t *testing.T) {
	_, err := jsonconv.DecodeString[point]("[1.5]")
	ce, ok := jsonconv.AsConvError(err)
	if !ok || ce.Code != jsonconv.ErrMissingMember || ce.Context != "Point: Y" {
		t.Fatalf("short tuple error = %v", err)
	}
	_, err = jsonconv.DecodeString[point]("[1,2,3]")
	if jsonconv.CodeOf(err) != jsonconv.ErrNotArray {
		t.Fatalf("long tuple error = %v", err)
	}
	if jsonconv.Is[point](jsonconv.NewArray(jsonconv.NewString("x"), jsonconv.NewInt64(1))) {
		t.Fatalf("positional Is must check per-position shapes")
	}
}

// temperature is immutable; decoding goes through the constructor.
type temperature struct{ celsius float64 }

func newTemperature(c float64) temperature { return temperature{celsius: c} }

func (t temperature) Celsius() float64 { return t.celsius }

var _ = bind.Object[temperature]("Temperature").
	Member(bind.Getter[temperature, float64]("celsius", temperature.Celsius)).
	Ctor(func(args []any) (temperature, error) {
		return newTemperature(args[0].(float64)), nil
	}).
	MustRegister()

func TestCtorGetter_RoundTrip(t *testing.T) {
	got, err := jsonconv.DecodeString[temperature](`{"celsius":21.5}`)
	if err != nil || got.Celsius() != 21.5 {
		t.Fatalf("temperature = %+v, %v", got, err)
	}
	out, err := jsonconv.EncodeString(got)
	if err != nil || out != `{"celsius":21.5}` {
		t.Fatalf("encoded = %s, %v", out, err)
	}
}

type counter struct{ n int }

func (c *counter) Count() int     { return c.n }
func (c *counter) SetCount(v int) { c.n = v }

var _ = bind.Object[counter]("Counter").
	Member(bind.Access[counter, int]("count", (*counter).Count, (*counter).SetCount)).
	MustRegister()

func TestAccessorPair_RoundTrip(t *testing.T) {
	got, err := jsonconv.DecodeString[counter](`{"count":3}`)
	if err != nil || got.n != 3 {
		t.Fatalf("counter = %+v, %v", got, err)
	}
	out, err := jsonconv.EncodeString(got)
	if err != nil || out != `{"count":3}` {
		t.Fatalf("encoded = %s, %v", out, err)
	}
}

// payment stores the amount in cents but speaks decimal units on the wire;
// kind is an encode-only discriminator.
type payment struct {
	Amount int    `json:"amount"`
	Kind   string `json:"kind"`
}

var _ = bind.Object[payment]("Payment").
	Named("Amount", "amount",
		bind.Into(func(field any) jsonconv.Value {
			return jsonconv.NewFloat64(float64(field.(int)) / 100)
		}),
		bind.From(func(v jsonconv.Value) (any, error) {
			f, ok := v.Float64()
			if !ok {
				return nil, &jsonconv.ConvError{Code: jsonconv.ErrNotDouble}
			}
			return int(math.Round(f * 100)), nil
		})).
	Named("Kind", "kind",
		bind.ReadOnly(),
		bind.Match(func(v jsonconv.Value) bool {
			s, ok := v.Str()
			return ok && s == "card"
		})).
	MustRegister()

func TestProjectedMember(t *testing.T) {
	got, err := jsonconv.DecodeString[payment](`{"amount":12.5,"kind":"card"}`)
	if err != nil || got.Amount != 1250 {
		t.Fatalf("payment = %+v, %v", got, err)
	}
	if got.Kind != "" {
		t.Fatalf("read-only member must not be written on decode, got %q", got.Kind)
	}
	out, err := jsonconv.EncodeString(payment{Amount: 1250, Kind: "card"})
	if err != nil || out != `{"amount":12.5,"kind":"card"}` {
		t.Fatalf("encoded = %s, %v", out, err)
	}
}

func TestMatchPredicateGuardsIs(t *testing.T) {
	good, _ := jsonconv.ParseString(`{"amount":1,"kind":"card"}`)
	bad, _ := jsonconv.ParseString(`{"amount":1,"kind":"cash"}`)
	if !jsonconv.Is[payment](good) {
		t.Fatalf("matching discriminator should be accepted")
	}
	if jsonconv.Is[payment](bad) {
		t.Fatalf("non-matching discriminator should be rejected")
	}
}

func TestBuilder_DeclarationErrors(t *testing.T) {
	if _, err := bind.Object[Book]("Bad").Field("Nope").Register(); err == nil {
		t.Fatalf("unknown field should fail registration")
	}
	if _, err := bind.Object[Book]("Bad").Field("Author").Field("Author").Register(); err == nil {
		t.Fatalf("duplicate wire key should fail registration")
	}
	if _, err := bind.Object[Book]("Bad").Field("Author").Mandatory(5).Register(); err == nil {
		t.Fatalf("mandatory count past the member list should fail registration")
	}
	if _, err := bind.Object[Book]("Bad").Register(); err == nil {
		t.Fatalf("empty declaration should fail registration")
	}
	_, err := bind.Object[temperature]("Bad").
		Member(bind.Getter[temperature, float64]("celsius", temperature.Celsius)).
		Register()
	if err == nil {
		t.Fatalf("getter-only member without Ctor should fail registration")
	}
}
