package visit

import (
	"errors"
	"testing"
)

type shape struct {
	sides int
}

type polygon struct {
	shape shape
}

type square struct {
	polygon polygon
}

type circle struct {
	shape shape
}

func init() {
	Register[shape]()
	Register[polygon](Parent(func(p *polygon) *shape { return &p.shape }))
	Register[square](Parent(func(s *square) *polygon { return &s.polygon }))
	Register[circle](Parent(func(c *circle) *shape { return &c.shape }))
}

func TestEndToEndDispatch(t *testing.T) {
	sq := &square{}
	sq.polygon.shape.sides = 4

	var seen string
	v := NewVisitor()
	Handle(v, func(p *polygon) { seen = "polygon" })
	Handle(v, func(s *shape) { seen = "shape" })

	if err := Of(sq).Accept(v); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if seen != "polygon" {
		t.Errorf("dispatched to %q, want the most-derived interest polygon", seen)
	}
}

func TestEndToEndCast(t *testing.T) {
	sq := &square{}

	if got := Cast[shape](Of(sq)); got != &sq.polygon.shape {
		t.Errorf("cast must alias the embedded shape")
	}
	if got := Cast[circle](Of(sq)); got != nil {
		t.Errorf("a square is not a circle")
	}

	_, err := CastRef[circle](Of(sq))
	var invalid *InvalidVisitorError
	if !errors.As(err, &invalid) {
		t.Fatalf("reference cast must fail with an invalid-visitor error, got %v", err)
	}
}

func TestEndToEndRecursive(t *testing.T) {
	sq := &square{}

	var chain []string
	rv := NewRecursiveVisitor()
	Recurse(rv, func(*square) bool { chain = append(chain, "square"); return true })
	Recurse(rv, func(*polygon) bool { chain = append(chain, "polygon"); return true })
	Recurse(rv, func(*shape) bool { chain = append(chain, "shape"); return true })

	if !Of(sq).Traverse(rv) {
		t.Errorf("continuing walk must run to completion")
	}
	want := []string{"square", "polygon", "shape"}
	for i := range want {
		if i >= len(chain) || chain[i] != want[i] {
			t.Fatalf("chain = %v, want %v", chain, want)
		}
	}
}

func TestEndToEndData(t *testing.T) {
	d := Data(uint16(7), ConvertTo(func(v uint16) uint64 { return uint64(v) }))

	got, err := CastValue[uint64](d)
	if err != nil || got != 7 {
		t.Errorf("CastValue = %v, %v; want 7", got, err)
	}
}
