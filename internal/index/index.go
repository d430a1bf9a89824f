package index

// NoteIndex defines the interface for note metadata operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type NoteIndex interface {
	UpsertNote(n NoteRow, body string) error
	DeleteNote(path string) error
	GetNote(path string) (*NoteRow, error)
	GetNoteID(path string) (string, error)
	GetChecksum(path string) (string, error)
	ListNotes(limit, offset int, tag, sort string) ([]NoteRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	AllPaths() (map[string]struct{}, error)
	AllChecksums() (map[string]string, error)
	PathExists(path string) (bool, error)
	FindByStem(stem string) ([]string, error)
	Close() error
}

// Verify *DB satisfies NoteIndex at compile time.
var _ NoteIndex = (*DB)(nil)

// FileIndexer is the ingestion pipeline fed by the watcher and the
// startup sync. The note service implements it: one call updates the
// SQLite metadata index and the link store together.
type FileIndexer interface {
	IndexFile(path string, data []byte) error
	RemoveFile(path string) error
}
