package dispatch

import (
	"github.com/funvibe/typewalk/internal/ancestry"
	"github.com/funvibe/typewalk/internal/typeid"
)

// Conversion declares a by-value conversion target for a data visitable.
type Conversion[T any] struct {
	key  typeid.Key
	conv func(T) any
}

// ConvertTo declares that the held value converts to U, e.g. a numeric
// widening. The callback receives the converted value, not a reference.
func ConvertTo[T, U any](conv func(T) U) Conversion[T] {
	return Conversion[T]{
		key: typeid.For[U]().ByValue(),
		conv: func(v T) any {
			return conv(v)
		},
	}
}

// Data wraps a plain value that is not part of any hierarchy. Its candidate
// list is flat: the held type itself by reference, then the declared
// conversion targets by value, in declaration order.
type Data[T any] struct {
	value  T
	refs   ancestry.List
	consts ancestry.List
	convs  map[typeid.Key]func(T) any
}

// NewData wraps value with the given conversion targets.
func NewData[T any](value T, convs ...Conversion[T]) *Data[T] {
	self := typeid.For[T]()
	d := &Data[T]{
		value:  value,
		refs:   ancestry.List{{Key: self}},
		consts: ancestry.List{{Key: self.Const()}},
		convs:  make(map[typeid.Key]func(T) any, len(convs)),
	}
	for _, c := range convs {
		e := ancestry.Entry{Key: c.key}
		d.refs = append(d.refs, e)
		d.consts = append(d.consts, e)
		if _, dup := d.convs[c.key]; !dup {
			d.convs[c.key] = c.conv
		}
	}
	return d
}

// Value returns the held value.
func (d *Data[T]) Value() T {
	return d.value
}

// Ref returns a reference to the held value.
func (d *Data[T]) Ref() *T {
	return &d.value
}

func (d *Data[T]) view(k typeid.Key) (any, bool) {
	if k.Qualifier() != typeid.Value && k.Base() == typeid.For[T]() {
		return &d.value, true
	}
	if conv, ok := d.convs[k]; ok {
		return conv(d.value), true
	}
	return nil, false
}

func (d *Data[T]) Accept(v *Visitor) error {
	return acceptWalk(d.refs, d.view, v, typeid.NameFor[T]())
}

func (d *Data[T]) AcceptConst(v *Visitor) error {
	return acceptWalk(d.consts, d.view, v, typeid.NameFor[T]())
}

func (d *Data[T]) Traverse(v *RecursiveVisitor) bool {
	return traverseWalk(d.refs, d.view, v)
}

func (d *Data[T]) TraverseConst(v *RecursiveVisitor) bool {
	return traverseWalk(d.consts, d.view, v)
}
