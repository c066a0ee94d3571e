// Package typeid assigns stable runtime identity keys to types.
//
// A Key is comparable and hashable: two keys are equal iff they denote the
// same type under the same qualifier. Keys for Go types are derived from the
// type's qualified name, so the same type yields the same key anywhere in the
// process. Named keys cover types that exist only by name (hierarchy
// manifests); Fresh keys are unique per call and cover anonymous foreign
// values.
package typeid

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
	"lukechampine.com/blake3"

	"github.com/funvibe/typewalk/internal/config"
)

// Qualifier distinguishes the presentation flavors of a type. A mutable
// reference, a read-only reference and a by-value conversion target are
// three distinct dispatch interests over the same base identity.
type Qualifier uint8

const (
	Ref      Qualifier = iota // mutable reference
	ConstRef                  // read-only reference
	Value                     // by-value conversion target
)

// Key is an opaque identity token for a type.
type Key struct {
	digest [config.KeyDigestSize]byte
	qual   Qualifier
}

var (
	namesMu sync.RWMutex
	names   = make(map[[config.KeyDigestSize]byte]string)
)

func newKey(seed, name string) Key {
	sum := blake3.Sum256([]byte(seed))
	var k Key
	copy(k.digest[:], sum[:config.KeyDigestSize])
	registerName(k.digest, name)
	return k
}

func registerName(digest [config.KeyDigestSize]byte, name string) {
	namesMu.Lock()
	names[digest] = name
	namesMu.Unlock()
}

// For returns the mutable-reference key for the Go type T.
func For[T any]() Key {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	path := rt.String()
	if rt.Name() != "" && rt.PkgPath() != "" {
		path = rt.PkgPath() + "." + rt.Name()
	}
	return newKey("go:"+path, NameFor[T]())
}

// NameFor returns the human-readable name used in diagnostics for T.
func NameFor[T any]() string {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Name() != "" {
		return rt.Name()
	}
	return rt.String()
}

// Named returns the key for a type known only by name, such as a type
// declared in a hierarchy manifest. The same name always yields the same
// key.
func Named(name string) Key {
	return newKey("named:"+name, name)
}

// Fresh returns a unique key carrying the given diagnostic name. Two Fresh
// calls never collide, even with the same name.
func Fresh(name string) Key {
	var k Key
	k.digest = uuid.New()
	registerName(k.digest, name)
	return k
}

// Const returns the read-only flavor of the key.
func (k Key) Const() Key {
	k.qual = ConstRef
	return k
}

// ByValue returns the by-value flavor of the key.
func (k Key) ByValue() Key {
	k.qual = Value
	return k
}

// Base returns the key stripped of any qualifier.
func (k Key) Base() Key {
	k.qual = Ref
	return k
}

// Qualifier reports the key's flavor.
func (k Key) Qualifier() Qualifier {
	return k.qual
}

// Digest returns the raw identity digest shared by all flavors of the key.
func (k Key) Digest() [config.KeyDigestSize]byte {
	return k.digest
}

// Name returns the human-readable name recorded for the key.
func (k Key) Name() string {
	namesMu.RLock()
	name, ok := names[k.digest]
	namesMu.RUnlock()
	if !ok {
		return "<unknown>"
	}
	return name
}

func (k Key) String() string {
	switch k.qual {
	case ConstRef:
		return "const " + k.Name()
	case Value:
		return k.Name() + " (value)"
	default:
		return k.Name()
	}
}
