package config

// ManifestFileExt is the default hierarchy manifest extension.
const ManifestFileExt = ".yaml"

// ManifestFileExtensions are all recognized manifest file extensions.
var ManifestFileExtensions = []string{".yaml", ".yml"}

// SnapshotSchemaVersion is bumped whenever the snapshot table layout changes.
const SnapshotSchemaVersion = 1

// KeyDigestSize is the size in bytes of a type key digest.
const KeyDigestSize = 16

// Snapshot change kinds reported by diffing two hierarchy snapshots.
const (
	ChangeAdded   = "added"
	ChangeRemoved = "removed"
	ChangeChain   = "chain-changed"
)
