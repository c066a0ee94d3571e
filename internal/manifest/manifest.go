// Package manifest loads type-hierarchy declarations from YAML. A manifest
// names the types of a hierarchy and their parent edges; resolving it
// computes the same ancestor lists the in-process registration API builds
// for Go types, which lets tooling inspect hierarchies that live outside
// the program.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/typewalk/internal/ancestry"
	"github.com/funvibe/typewalk/internal/typeid"
)

// Manifest is a parsed hierarchy declaration.
type Manifest struct {
	Hierarchy []TypeDecl `yaml:"hierarchy"`
}

// TypeDecl declares one type. Parents lists the dispatchable parents the
// type pushes itself onto; Join instead declares a bare join whose own type
// is not dispatchable. A declaration uses one or the other, never both.
type TypeDecl struct {
	Type    string   `yaml:"type"`
	Parents []string `yaml:"parents,omitempty"`
	Join    []string `yaml:"join,omitempty"`
}

// Parse decodes and validates a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest parse error: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// Validate checks the declarations without resolving them. Parents must be
// declared before use, so a valid manifest is always resolvable in order.
func (m *Manifest) Validate() error {
	if len(m.Hierarchy) == 0 {
		return fmt.Errorf("manifest declares no types")
	}
	declared := make(map[string]bool, len(m.Hierarchy))
	for i, decl := range m.Hierarchy {
		if decl.Type == "" {
			return fmt.Errorf("declaration %d has no type name", i)
		}
		if declared[decl.Type] {
			return fmt.Errorf("type %s declared twice", decl.Type)
		}
		if len(decl.Parents) > 0 && len(decl.Join) > 0 {
			return fmt.Errorf("type %s declares both parents and join", decl.Type)
		}
		for _, p := range decl.parents() {
			if p == decl.Type {
				return fmt.Errorf("type %s cannot be its own parent", decl.Type)
			}
			if !declared[p] {
				return fmt.Errorf("type %s references undeclared parent %s", decl.Type, p)
			}
		}
		declared[decl.Type] = true
	}
	return nil
}

// Resolve defines every declared type in the universe, in declaration
// order, and returns the resulting descriptors.
func (m *Manifest) Resolve(u *ancestry.Universe) ([]*ancestry.Descriptor, error) {
	out := make([]*ancestry.Descriptor, 0, len(m.Hierarchy))
	for _, decl := range m.Hierarchy {
		key := typeid.Named(decl.Type)
		parents := make([]typeid.Key, 0, len(decl.parents()))
		for _, p := range decl.parents() {
			parents = append(parents, typeid.Named(p))
		}

		var (
			d   *ancestry.Descriptor
			err error
		)
		if len(decl.Join) > 0 {
			d, err = u.DefineJoin(key, parents...)
		} else {
			d, err = u.Define(key, parents...)
		}
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", decl.Type, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func (d *TypeDecl) parents() []string {
	if len(d.Join) > 0 {
		return d.Join
	}
	return d.Parents
}
