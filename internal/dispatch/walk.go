package dispatch

import (
	"github.com/funvibe/typewalk/internal/ancestry"
	"github.com/funvibe/typewalk/internal/typeid"
)

// Visitable is an object that can present itself to a visitor by walking
// its ancestor list, most derived first. Accept walks the mutable flavor,
// AcceptConst the read-only flavor; both produce the same ordering.
// Traverse and TraverseConst run the recursive protocol and report whether
// the walk ran to completion (true) or a callback stopped it (false).
type Visitable interface {
	Accept(*Visitor) error
	AcceptConst(*Visitor) error
	Traverse(*RecursiveVisitor) bool
	TraverseConst(*RecursiveVisitor) bool
}

// viewFunc resolves a flavored list entry to the reference (or converted
// value) the callback receives.
type viewFunc func(typeid.Key) (any, bool)

// acceptWalk is the plain dispatch algorithm: first hit wins and ends the
// walk. Exhaustion is an error naming the object's most-derived type.
// Repeated keys (a re-declared self deeper in the list) are skipped by the
// first-occurrence rule.
func acceptWalk(list ancestry.List, view viewFunc, v *Visitor, owner string) error {
	seen := make(map[typeid.Key]bool, len(list))
	for _, e := range list {
		if seen[e.Key] {
			continue
		}
		seen[e.Key] = true
		fn, ok := v.lookup(e.Key)
		if !ok {
			continue
		}
		ref, ok := view(e.Key)
		if !ok {
			continue
		}
		fn(ref)
		return nil
	}
	return NewIncompatibleVisitorError(owner)
}

// traverseWalk is the recursive dispatch algorithm: every hit runs and its
// result decides continuation. Exhaustion without any hit is not an error.
func traverseWalk(list ancestry.List, view viewFunc, v *RecursiveVisitor) bool {
	seen := make(map[typeid.Key]bool, len(list))
	for _, e := range list {
		if seen[e.Key] {
			continue
		}
		seen[e.Key] = true
		fn, ok := v.lookup(e.Key)
		if !ok {
			continue
		}
		ref, ok := view(e.Key)
		if !ok {
			continue
		}
		if !fn(ref) {
			return false
		}
	}
	return true
}
