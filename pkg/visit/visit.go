// Package visit is the public surface of typewalk: multiple dispatch and
// safe downcasting over explicitly registered type hierarchies.
//
// Types register once, typically from init:
//
//	visit.Register[Shape]()
//	visit.Register[Circle](visit.Parent(func(c *Circle) *Shape { return &c.Shape }))
//
// and objects then present themselves to visitors:
//
//	v := visit.NewVisitor()
//	visit.Handle(v, func(s *Shape) { ... })
//	err := visit.Of(&circle).Accept(v)
//
// or cast through the same machinery:
//
//	if s := visit.Cast[Shape](visit.Of(&circle)); s != nil { ... }
package visit

import (
	"github.com/funvibe/typewalk/internal/ancestry"
	"github.com/funvibe/typewalk/internal/dispatch"
	"github.com/funvibe/typewalk/internal/typeid"
)

// Core type aliases.
type (
	Key                      = typeid.Key
	Descriptor               = ancestry.Descriptor
	Edge                     = ancestry.Edge
	Universe                 = ancestry.Universe
	Visitor                  = dispatch.Visitor
	RecursiveVisitor         = dispatch.RecursiveVisitor
	Visitable                = dispatch.Visitable
	Empty                    = dispatch.Empty
	ForeignView              = dispatch.ForeignView
	IncompatibleVisitorError = dispatch.IncompatibleVisitorError
	InvalidVisitorError      = dispatch.InvalidVisitorError
)

// KeyFor returns the identity key for T.
func KeyFor[T any]() Key {
	return typeid.For[T]()
}

// Registration.

// Parent builds the edge from child type C to the parent P it embeds.
func Parent[C, P any](up func(*C) *P) Edge {
	return ancestry.ParentOf(up)
}

// Register records T with the given parent edges; T itself is dispatchable.
func Register[T any](parents ...Edge) *Descriptor {
	return ancestry.Register[T](parents...)
}

// RegisterJoin records T as a bare join of its parents.
func RegisterJoin[T any](parents ...Edge) *Descriptor {
	return ancestry.RegisterJoin[T](parents...)
}

// Visitors.

// NewVisitor creates a first-match-stops visitor.
func NewVisitor() *Visitor {
	return dispatch.NewVisitor()
}

// Handle registers a callback for mutable references to T.
func Handle[T any](v *Visitor, fn func(*T)) *Visitor {
	return dispatch.Handle(v, fn)
}

// HandleConst registers a callback for read-only references to T.
func HandleConst[T any](v *Visitor, fn func(*T)) *Visitor {
	return dispatch.HandleConst(v, fn)
}

// HandleValue registers a callback for by-value conversions to T.
func HandleValue[T any](v *Visitor, fn func(T)) *Visitor {
	return dispatch.HandleValue(v, fn)
}

// NewRecursiveVisitor creates a match-then-continue visitor.
func NewRecursiveVisitor() *RecursiveVisitor {
	return dispatch.NewRecursiveVisitor()
}

// Recurse registers a continuing callback for mutable references to T.
func Recurse[T any](v *RecursiveVisitor, fn func(*T) bool) *RecursiveVisitor {
	return dispatch.Recurse(v, fn)
}

// RecurseConst registers a continuing callback for read-only references to T.
func RecurseConst[T any](v *RecursiveVisitor, fn func(*T) bool) *RecursiveVisitor {
	return dispatch.RecurseConst(v, fn)
}

// RecurseValue registers a continuing callback for by-value conversions to T.
func RecurseValue[T any](v *RecursiveVisitor, fn func(T) bool) *RecursiveVisitor {
	return dispatch.RecurseValue(v, fn)
}

// Visitables.

// Of wraps a value of a registered hierarchy type for dispatch.
func Of[T any](v *T) Visitable {
	return dispatch.Of(v)
}

// ReadOnly returns a read-only presentation of v.
func ReadOnly(v Visitable) Visitable {
	return dispatch.ReadOnly(v)
}

// View declares that a foreign value of type T presents itself as A.
func View[T, A any](view func(*T) *A) ForeignView {
	return dispatch.ViewAs(view)
}

// Foreign wraps an externally-owned value with an explicit ancestor list.
func Foreign[T any](data *T, views ...ForeignView) Visitable {
	return dispatch.NewForeign(data, views...)
}

// Data wraps a plain value with by-value conversion targets.
func Data[T any](value T, convs ...dispatch.Conversion[T]) *dispatch.Data[T] {
	return dispatch.NewData(value, convs...)
}

// ConvertTo declares that a held value of type T converts to U.
func ConvertTo[T, U any](conv func(T) U) dispatch.Conversion[T] {
	return dispatch.ConvertTo(conv)
}

// Casts.

// Cast returns v viewed as *T, or nil; it never fails.
func Cast[T any](v Visitable) *T {
	return dispatch.Cast[T](v)
}

// CastConst is the read-only pointer-flavored cast.
func CastConst[T any](v Visitable) *T {
	return dispatch.CastConst[T](v)
}

// CastRef fails with an invalid-visitor error when T is unreachable.
func CastRef[T any](v Visitable) (*T, error) {
	return dispatch.CastRef[T](v)
}

// CastConstRef is the reference-flavored read-only cast.
func CastConstRef[T any](v Visitable) (*T, error) {
	return dispatch.CastConstRef[T](v)
}

// CastValue extracts a data visitable's held value converted to T.
func CastValue[T any](v Visitable) (T, error) {
	return dispatch.CastValue[T](v)
}
