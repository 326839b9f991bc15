package domain

import "path/filepath"

const (
	// StateDirName is the name of the local state directory.
	StateDirName = ".fixstatus"

	// CacheDirName is the name of the inclusion cache directory.
	CacheDirName = "cache"

	// ConfigBaseName is the base name of the configuration file, without extension.
	ConfigBaseName = "fixstatus"

	// SQLiteFileName is the name of the SQLite cache database.
	SQLiteFileName = "inclusion.db"

	// DefaultSnapshotPath is where the release snapshot is read from when none is configured.
	DefaultSnapshotPath = "public/data/releases.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// ConfigExtensions lists the configuration file extensions probed, in order.
var ConfigExtensions = []string{".yaml", ".yml", ".toml"}

// DefaultCachePath returns the default path for the inclusion cache.
// It joins .fixstatus and cache.
func DefaultCachePath() string {
	return filepath.Join(StateDirName, CacheDirName)
}
