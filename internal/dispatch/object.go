package dispatch

import (
	"fmt"

	"github.com/funvibe/typewalk/internal/ancestry"
	"github.com/funvibe/typewalk/internal/typeid"
)

// Of wraps a value of a registered hierarchy type for dispatch. The wrapper
// shares the value's lifetime; no state beyond the two pointers is kept.
// Wrapping an unregistered type panics, as does forgetting to register a
// parent: both are registration-time mistakes.
func Of[T any](v *T) Visitable {
	d, ok := ancestry.DescriptorOf[T]()
	if !ok {
		panic(fmt.Sprintf("dispatch: type %s is not registered", typeid.NameFor[T]()))
	}
	return &object{desc: d, self: v}
}

type object struct {
	desc *ancestry.Descriptor
	self any
}

func (o *object) view(k typeid.Key) (any, bool) {
	return o.desc.View(k, o.self)
}

func (o *object) Accept(v *Visitor) error {
	return acceptWalk(o.desc.Refs, o.view, v, o.desc.Name())
}

func (o *object) AcceptConst(v *Visitor) error {
	return acceptWalk(o.desc.Consts, o.view, v, o.desc.Name())
}

func (o *object) Traverse(v *RecursiveVisitor) bool {
	return traverseWalk(o.desc.Refs, o.view, v)
}

func (o *object) TraverseConst(v *RecursiveVisitor) bool {
	return traverseWalk(o.desc.Consts, o.view, v)
}

// ReadOnly returns a read-only presentation of v: both walk flavors use the
// read-only ancestor list, so mutable interests never match. This is how a
// value reached through a read-only reference takes part in dispatch.
func ReadOnly(v Visitable) Visitable {
	return &readOnly{inner: v}
}

type readOnly struct {
	inner Visitable
}

func (r *readOnly) Accept(v *Visitor) error           { return r.inner.AcceptConst(v) }
func (r *readOnly) AcceptConst(v *Visitor) error      { return r.inner.AcceptConst(v) }
func (r *readOnly) Traverse(v *RecursiveVisitor) bool { return r.inner.TraverseConst(v) }
func (r *readOnly) TraverseConst(v *RecursiveVisitor) bool {
	return r.inner.TraverseConst(v)
}

// Empty is a visitable with no dispatchable ancestors. Plain dispatch
// always fails on it; recursive dispatch reports no continuation needed.
type Empty struct{}

func (Empty) Accept(*Visitor) error              { return NewIncompatibleVisitorError("Empty") }
func (Empty) AcceptConst(*Visitor) error         { return NewIncompatibleVisitorError("Empty") }
func (Empty) Traverse(*RecursiveVisitor) bool    { return false }
func (Empty) TraverseConst(*RecursiveVisitor) bool { return false }
