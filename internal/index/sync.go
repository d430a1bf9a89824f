package index

import (
	"log/slog"

	"github.com/veitsen/skald/internal/storage"
)

// Sync walks the vault and brings the index up to date:
//   - new/changed files are fed through the indexer
//   - files removed from disk are dropped from the index
//
// The link store carries no persistence, so every file is re-fed on
// startup even when its checksum is unchanged: the checksum diff only
// decides what to log as changed.
func Sync(db *DB, store storage.Provider, indexer FileIndexer, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexer.IndexFile(m.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else if checksums[m.Path] != m.Checksum {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := indexer.RemoveFile(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}
