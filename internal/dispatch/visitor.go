// Package dispatch implements the visitor protocol over ancestor lists:
// first-match dispatch, recursive traversal and visitor-based safe casts.
//
// A Visitor holds a closed set of per-type callbacks keyed by qualified
// type key. Dispatch walks an object's ancestor list most-derived-first and
// consults the visitor at every position; the visitor is never authoritative
// about ordering. Visitors carrying accumulator state are not safe for
// concurrent dispatch calls; use one instance per goroutine.
package dispatch

import "github.com/funvibe/typewalk/internal/typeid"

// Visitor dispatches to the first matching callback and stops.
type Visitor struct {
	handlers map[typeid.Key]func(any)
}

// NewVisitor creates a visitor with an empty interest set.
func NewVisitor() *Visitor {
	return &Visitor{handlers: make(map[typeid.Key]func(any))}
}

func (v *Visitor) lookup(k typeid.Key) (func(any), bool) {
	fn, ok := v.handlers[k]
	return fn, ok
}

// Handle registers a callback for mutable references to T.
func Handle[T any](v *Visitor, fn func(*T)) *Visitor {
	v.handlers[typeid.For[T]()] = func(ref any) { fn(ref.(*T)) }
	return v
}

// HandleConst registers a callback for read-only references to T. The
// callback must not mutate the value it receives.
func HandleConst[T any](v *Visitor, fn func(*T)) *Visitor {
	v.handlers[typeid.For[T]().Const()] = func(ref any) { fn(ref.(*T)) }
	return v
}

// HandleValue registers a callback for by-value conversions to T, as
// presented by data visitables.
func HandleValue[T any](v *Visitor, fn func(T)) *Visitor {
	v.handlers[typeid.For[T]().ByValue()] = func(val any) { fn(val.(T)) }
	return v
}

// RecursiveVisitor dispatches to every matching callback along the
// ancestor list; each callback reports whether to continue the walk.
type RecursiveVisitor struct {
	handlers map[typeid.Key]func(any) bool
}

// NewRecursiveVisitor creates a recursive visitor with an empty interest set.
func NewRecursiveVisitor() *RecursiveVisitor {
	return &RecursiveVisitor{handlers: make(map[typeid.Key]func(any) bool)}
}

func (v *RecursiveVisitor) lookup(k typeid.Key) (func(any) bool, bool) {
	fn, ok := v.handlers[k]
	return fn, ok
}

// Recurse registers a continuing callback for mutable references to T.
func Recurse[T any](v *RecursiveVisitor, fn func(*T) bool) *RecursiveVisitor {
	v.handlers[typeid.For[T]()] = func(ref any) bool { return fn(ref.(*T)) }
	return v
}

// RecurseConst registers a continuing callback for read-only references to T.
func RecurseConst[T any](v *RecursiveVisitor, fn func(*T) bool) *RecursiveVisitor {
	v.handlers[typeid.For[T]().Const()] = func(ref any) bool { return fn(ref.(*T)) }
	return v
}

// RecurseValue registers a continuing callback for by-value conversions to T.
func RecurseValue[T any](v *RecursiveVisitor, fn func(T) bool) *RecursiveVisitor {
	v.handlers[typeid.For[T]().ByValue()] = func(val any) bool { return fn(val.(T)) }
	return v
}
