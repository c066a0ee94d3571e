package ancestry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/funvibe/typewalk/internal/typeid"
)

// Descriptor is the per-type registration record: the type's key, its
// derivation rank, both ancestor-list flavors and the upcast table. It is
// computed once and immutable afterwards, so it can be shared across
// concurrent dispatches without synchronization.
type Descriptor struct {
	Key    typeid.Key
	Rank   int
	Refs   List // mutable-reference flavor, most derived first
	Consts List // read-only flavor, identical ordering

	views map[typeid.Key]func(any) any
}

// Name returns the descriptor's human-readable type name.
func (d *Descriptor) Name() string {
	return d.Key.Name()
}

// View presents self (a pointer to the descriptor's most-derived type) as
// the ancestor identified by the base key.
func (d *Descriptor) View(key typeid.Key, self any) (any, bool) {
	fn, ok := d.views[key.Base()]
	if !ok {
		return nil, false
	}
	return fn(self), true
}

// Edge declares a parent of a type being registered, together with the
// conversion from the child to the parent value it embeds.
type Edge struct {
	parent typeid.Key
	up     func(any) any
}

// ParentOf builds the edge from child type C to the parent P it embeds.
// The conversion must return a reference aliasing the child, not a copy.
func ParentOf[C, P any](up func(*C) *P) Edge {
	return Edge{
		parent: typeid.For[P](),
		up: func(v any) any {
			return up(v.(*C))
		},
	}
}

// Universe is a closed set of type descriptors. Go types register into the
// Default universe; hierarchy manifests resolve into their own.
type Universe struct {
	mu    sync.RWMutex
	types map[typeid.Key]*Descriptor
}

// NewUniverse creates an empty universe.
func NewUniverse() *Universe {
	return &Universe{types: make(map[typeid.Key]*Descriptor)}
}

// Default is the process-wide universe used by the generic registration
// and dispatch API.
var Default = NewUniverse()

// Register records the Go type T with the given parent edges and returns
// its descriptor. T itself is dispatchable: its own key is pushed to
// position 0 of the merged parent list. Registration is a programming-time
// step, typically from init; misuse panics.
func Register[T any](parents ...Edge) *Descriptor {
	d, err := Default.define(typeid.For[T](), parents, true)
	if err != nil {
		panic("ancestry: " + err.Error())
	}
	return d
}

// RegisterJoin records T as a bare join of its parents: the ancestor list
// is the merge of the parent lists and T itself is not dispatchable.
// Shared (virtual-style) joins use the same merge; the diamond collapse
// falls out of the first-occurrence rule.
func RegisterJoin[T any](parents ...Edge) *Descriptor {
	d, err := Default.define(typeid.For[T](), parents, false)
	if err != nil {
		panic("ancestry: " + err.Error())
	}
	return d
}

// DescriptorOf returns the Default-universe descriptor for T.
func DescriptorOf[T any]() (*Descriptor, bool) {
	return Default.Lookup(typeid.For[T]())
}

// Lookup returns the descriptor registered under the key's base identity.
func (u *Universe) Lookup(key typeid.Key) (*Descriptor, bool) {
	u.mu.RLock()
	d, ok := u.types[key.Base()]
	u.mu.RUnlock()
	return d, ok
}

// Define records a name-only type (no upcast table) with the given parent
// keys, self included in the list. Used by hierarchy manifests.
func (u *Universe) Define(key typeid.Key, parents ...typeid.Key) (*Descriptor, error) {
	return u.define(key, bareEdges(parents), true)
}

// DefineJoin records a name-only bare join of the given parent keys.
func (u *Universe) DefineJoin(key typeid.Key, parents ...typeid.Key) (*Descriptor, error) {
	return u.define(key, bareEdges(parents), false)
}

// Descriptors returns every descriptor in the universe, sorted by name.
func (u *Universe) Descriptors() []*Descriptor {
	u.mu.RLock()
	out := make([]*Descriptor, 0, len(u.types))
	for _, d := range u.types {
		out = append(out, d)
	}
	u.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})
	return out
}

// Len returns the number of registered types.
func (u *Universe) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.types)
}

func bareEdges(parents []typeid.Key) []Edge {
	edges := make([]Edge, len(parents))
	for i, p := range parents {
		edges[i] = Edge{parent: p}
	}
	return edges
}

func (u *Universe) define(key typeid.Key, parents []Edge, pushSelf bool) (*Descriptor, error) {
	key = key.Base()

	u.mu.Lock()
	defer u.mu.Unlock()

	if _, exists := u.types[key]; exists {
		return nil, fmt.Errorf("type %s already registered", key.Name())
	}

	views := make(map[typeid.Key]func(any) any)
	parentLists := make([]List, 0, len(parents))
	for _, e := range parents {
		pd, ok := u.types[e.parent.Base()]
		if !ok {
			return nil, fmt.Errorf("parent %s of %s is not registered", e.parent.Name(), key.Name())
		}
		parentLists = append(parentLists, pd.Refs)
		if e.up == nil {
			continue
		}
		// Leftmost parent reaching an ancestor claims its view.
		for k, fn := range pd.views {
			if _, dup := views[k]; dup {
				continue
			}
			views[k] = compose(e.up, fn)
		}
	}

	merged := Merge(parentLists...)
	rank := maxRank(merged)
	refs := merged
	if pushSelf {
		rank++
		refs = Push(Entry{Key: key, Rank: rank}, merged)
	}
	if pushSelf || len(parents) == 0 {
		views[key] = func(v any) any { return v }
	}
	if rank < 0 {
		rank = 0
	}

	d := &Descriptor{
		Key:    key,
		Rank:   rank,
		Refs:   refs,
		Consts: refs.Flavored(typeid.ConstRef),
		views:  views,
	}
	u.types[key] = d
	return d, nil
}

func compose(up func(any) any, inner func(any) any) func(any) any {
	return func(v any) any {
		return inner(up(v))
	}
}
