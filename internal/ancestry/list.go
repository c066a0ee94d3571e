// Package ancestry computes the ordered, de-duplicated ancestor lists that
// drive dispatch. Every registered type gets a Descriptor holding both list
// flavors and the upcast table used to present a value as one of its
// ancestors. Lists are computed once at registration and never mutated.
package ancestry

import (
	"sort"

	"github.com/funvibe/typewalk/internal/typeid"
)

// Entry pairs a type key with its derivation rank. Rank 0 is a leaf; a
// derived type ranks one above the highest-ranked ancestor it pushes onto.
type Entry struct {
	Key  typeid.Key
	Rank int
}

// List is an ordered sequence of ancestor entries, most derived first.
type List []Entry

// Merge combines ancestor lists from several parents into one. The first
// occurrence of a key wins and later repeats are dropped, so a shared
// (diamond) ancestor appears exactly once, at the position claimed by the
// leftmost parent that reaches it. Entries are ordered by descending rank,
// stable by first appearance at equal rank, which keeps a more derived type
// ahead of its own ancestors no matter which operand contributed it.
func Merge(lists ...List) List {
	var out List
	seen := make(map[typeid.Key]bool)
	for _, l := range lists {
		for _, e := range l {
			if seen[e.Key] {
				continue
			}
			seen[e.Key] = true
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank > out[j].Rank
	})
	return out
}

// Push prepends a type's own entry to its merged parent list. Self always
// lands at position 0. A re-declared key deeper in the parent list is left
// in place; the walk's first-occurrence rule suppresses it at traversal
// time, not at construction time.
func Push(self Entry, parents List) List {
	out := make(List, 0, len(parents)+1)
	out = append(out, self)
	out = append(out, parents...)
	return out
}

// Flavored returns a copy of the list under the given qualifier.
func (l List) Flavored(q typeid.Qualifier) List {
	out := make(List, len(l))
	for i, e := range l {
		switch q {
		case typeid.ConstRef:
			e.Key = e.Key.Const()
		case typeid.Value:
			e.Key = e.Key.ByValue()
		default:
			e.Key = e.Key.Base()
		}
		out[i] = e
	}
	return out
}

// Keys returns just the keys of the list, in order.
func (l List) Keys() []typeid.Key {
	out := make([]typeid.Key, len(l))
	for i, e := range l {
		out[i] = e.Key
	}
	return out
}

func maxRank(l List) int {
	r := -1
	for _, e := range l {
		if e.Rank > r {
			r = e.Rank
		}
	}
	return r
}
