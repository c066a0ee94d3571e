package dispatch

import (
	"github.com/funvibe/typewalk/internal/ancestry"
	"github.com/funvibe/typewalk/internal/typeid"
)

// ForeignView declares one type a wrapped foreign value can present itself
// as, together with the aliasing conversion to it.
type ForeignView struct {
	key  typeid.Key
	view func(any) any
}

// ViewAs declares that a foreign value of type T presents itself as A. The
// conversion must return a reference aliasing the wrapped value.
func ViewAs[T, A any](view func(*T) *A) ForeignView {
	return ForeignView{
		key: typeid.For[A](),
		view: func(v any) any {
			return view(v.(*T))
		},
	}
}

// NewForeign wraps an externally-owned value for dispatch through an
// explicitly supplied ancestor list, given in declaration order, rather
// than one computed from registered parents. T itself does not need to be
// registered; declare it with ViewAs if it should be reachable.
func NewForeign[T any](data *T, views ...ForeignView) Visitable {
	f := &foreign{
		self:  data,
		name:  typeid.NameFor[T](),
		views: make(map[typeid.Key]func(any) any, len(views)),
	}
	refs := make(ancestry.List, 0, len(views))
	for _, vw := range views {
		refs = append(refs, ancestry.Entry{Key: vw.key.Base()})
		if _, dup := f.views[vw.key.Base()]; !dup {
			f.views[vw.key.Base()] = vw.view
		}
	}
	f.refs = refs
	f.consts = refs.Flavored(typeid.ConstRef)
	return f
}

type foreign struct {
	self   any
	name   string
	refs   ancestry.List
	consts ancestry.List
	views  map[typeid.Key]func(any) any
}

func (f *foreign) view(k typeid.Key) (any, bool) {
	fn, ok := f.views[k.Base()]
	if !ok {
		return nil, false
	}
	return fn(f.self), true
}

func (f *foreign) Accept(v *Visitor) error {
	return acceptWalk(f.refs, f.view, v, f.name)
}

func (f *foreign) AcceptConst(v *Visitor) error {
	return acceptWalk(f.consts, f.view, v, f.name)
}

func (f *foreign) Traverse(v *RecursiveVisitor) bool {
	return traverseWalk(f.refs, f.view, v)
}

func (f *foreign) TraverseConst(v *RecursiveVisitor) bool {
	return traverseWalk(f.consts, f.view, v)
}
