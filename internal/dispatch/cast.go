package dispatch

import "github.com/funvibe/typewalk/internal/typeid"

// Cast returns v viewed as *T, or nil when T is not reachable from v. It is
// the pointer-flavored cast: speculative, never fails. The cast is a
// one-shot recursive dispatch whose sole interest is T and which stops at
// the first hit.
func Cast[T any](v Visitable) *T {
	var result *T
	rv := NewRecursiveVisitor()
	Recurse(rv, func(t *T) bool {
		result = t
		return false
	})
	v.Traverse(rv)
	return result
}

// CastConst is the read-only pointer-flavored cast. It succeeds for both
// read-only and mutable sources. The caller must not mutate the result.
func CastConst[T any](v Visitable) *T {
	var result *T
	rv := NewRecursiveVisitor()
	RecurseConst(rv, func(t *T) bool {
		result = t
		return false
	})
	v.TraverseConst(rv)
	return result
}

// CastRef is the reference-flavored mutable cast: it fails with an
// invalid-visitor error naming the requested target when T is not
// reachable. Mutable targets require a mutable source.
func CastRef[T any](v Visitable) (*T, error) {
	if r := Cast[T](v); r != nil {
		return r, nil
	}
	return nil, NewInvalidVisitorError(typeid.NameFor[T]())
}

// CastConstRef is the reference-flavored read-only cast.
func CastConstRef[T any](v Visitable) (*T, error) {
	if r := CastConst[T](v); r != nil {
		return r, nil
	}
	return nil, NewInvalidVisitorError(typeid.NameFor[T]())
}

// CastValue extracts the held value of a data visitable converted to T,
// one of its declared conversion targets. Targets outside the declared
// candidate list fail with an invalid-visitor error.
func CastValue[T any](v Visitable) (T, error) {
	var result T
	found := false
	rv := NewRecursiveVisitor()
	RecurseValue(rv, func(t T) bool {
		result = t
		found = true
		return false
	})
	v.Traverse(rv)
	if !found {
		var zero T
		return zero, NewInvalidVisitorError(typeid.NameFor[T]())
	}
	return result, nil
}
