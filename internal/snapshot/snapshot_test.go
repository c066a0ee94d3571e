package snapshot

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/typewalk/internal/ancestry"
	"github.com/funvibe/typewalk/internal/config"
	"github.com/funvibe/typewalk/internal/manifest"
)

const testManifest = `
hierarchy:
  - type: A
  - type: B
  - type: D
    parents: [A, B]
`

func resolve(t *testing.T, doc string) *ancestry.Universe {
	t.Helper()
	m, err := manifest.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	u := ancestry.NewUniverse()
	if _, err := m.Resolve(u); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return u
}

func TestFromUniverse(t *testing.T) {
	records := FromUniverse(resolve(t, testManifest))
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	// Sorted by name.
	if records[0].Name != "A" || records[1].Name != "B" || records[2].Name != "D" {
		t.Errorf("unexpected record order: %v", records)
	}

	d := records[2]
	if got := strings.Join(d.Ancestors, " "); got != "D A B" {
		t.Errorf("D chain = %q, want %q", got, "D A B")
	}
	if d.Rank != 1 {
		t.Errorf("D rank = %d, want 1", d.Rank)
	}
	if len(d.Digest) != 2*config.KeyDigestSize {
		t.Errorf("digest %q has unexpected length", d.Digest)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hierarchy.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	records := FromUniverse(resolve(t, testManifest))
	if err := store.Write(records); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := store.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("read %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i].Name != records[i].Name ||
			got[i].Digest != records[i].Digest ||
			got[i].Rank != records[i].Rank ||
			!sameChain(got[i].Ancestors, records[i].Ancestors) {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestWriteReplacesPreviousSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hierarchy.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.Write(FromUniverse(resolve(t, testManifest))); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := store.Write(FromUniverse(resolve(t, "hierarchy:\n  - type: A\n"))); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	got, err := store.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 1 || got[0].Name != "A" {
		t.Errorf("snapshot not replaced: %v", got)
	}
}

func TestDiff(t *testing.T) {
	old := FromUniverse(resolve(t, testManifest))

	// B gains a parent, D's chain reorders, C appears, nothing removed.
	changed := resolve(t, `
hierarchy:
  - type: A
  - type: B
    parents: [A]
  - type: C
  - type: D
    parents: [B, A]
`)
	changes := Diff(old, FromUniverse(changed))

	kinds := make(map[string][]string)
	for _, c := range changes {
		kinds[c.Kind] = append(kinds[c.Kind], c.Name)
	}
	if got := kinds[config.ChangeAdded]; len(got) != 1 || got[0] != "C" {
		t.Errorf("added = %v, want [C]", got)
	}
	if got := kinds[config.ChangeRemoved]; len(got) != 0 {
		t.Errorf("removed = %v, want none", got)
	}
	chains := kinds[config.ChangeChain]
	if len(chains) != 2 {
		t.Fatalf("chain changes = %v, want B and D", chains)
	}

	if same := Diff(old, old); len(same) != 0 {
		t.Errorf("identical snapshots must produce no changes, got %v", same)
	}
}
