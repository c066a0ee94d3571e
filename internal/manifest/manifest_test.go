package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/typewalk/internal/ancestry"
)

const diamondManifest = `
hierarchy:
  - type: A
  - type: B
  - type: X
  - type: D
    parents: [A, B]
  - type: E
    parents: [D, A, X]
  - type: F
    parents: [B, E]
  - type: CX
    join: [D, X]
`

func chainNames(d *ancestry.Descriptor) []string {
	out := make([]string, len(d.Refs))
	for i, e := range d.Refs {
		out[i] = e.Key.Name()
	}
	return out
}

func TestParseAndResolve(t *testing.T) {
	m, err := Parse([]byte(diamondManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	descs, err := m.Resolve(ancestry.NewUniverse())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(descs) != 7 {
		t.Fatalf("resolved %d types, want 7", len(descs))
	}

	byName := make(map[string]*ancestry.Descriptor)
	for _, d := range descs {
		byName[d.Name()] = d
	}

	tests := []struct {
		name string
		want string
	}{
		{"A", "A"},
		{"D", "D A B"},
		{"E", "E D A B X"},
		{"F", "F E D B A X"},
		{"CX", "D A B X"},
	}
	for _, tt := range tests {
		got := strings.Join(chainNames(byName[tt.name]), " ")
		if got != tt.want {
			t.Errorf("%s: chain = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hierarchy.yaml")
	if err := os.WriteFile(path, []byte(diamondManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Hierarchy) != 7 {
		t.Errorf("loaded %d declarations, want 7", len(m.Hierarchy))
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("loading a missing file must fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			"empty manifest",
			`hierarchy: []`,
			"no types",
		},
		{
			"missing type name",
			"hierarchy:\n  - parents: [A]\n",
			"no type name",
		},
		{
			"duplicate declaration",
			"hierarchy:\n  - type: A\n  - type: A\n",
			"declared twice",
		},
		{
			"undeclared parent",
			"hierarchy:\n  - type: B\n    parents: [A]\n",
			"undeclared parent",
		},
		{
			"parent declared later",
			"hierarchy:\n  - type: B\n    parents: [A]\n  - type: A\n",
			"undeclared parent",
		},
		{
			"self parent",
			"hierarchy:\n  - type: A\n    parents: [A]\n",
			"its own parent",
		},
		{
			"parents and join together",
			"hierarchy:\n  - type: A\n  - type: B\n    parents: [A]\n    join: [A]\n",
			"both parents and join",
		},
		{
			"not yaml",
			"{{{",
			"parse error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestResolveIsolation(t *testing.T) {
	m, err := Parse([]byte(diamondManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// The same manifest resolves independently into separate universes.
	if _, err := m.Resolve(ancestry.NewUniverse()); err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	if _, err := m.Resolve(ancestry.NewUniverse()); err != nil {
		t.Fatalf("second Resolve: %v", err)
	}

	// Resolving twice into one universe collides.
	u := ancestry.NewUniverse()
	if _, err := m.Resolve(u); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := m.Resolve(u); err == nil {
		t.Errorf("re-resolving into the same universe must fail")
	}
}
