// Package noteservice coordinates vault storage, the metadata index, and
// the link store. Every mutation goes through IndexFile/RemoveFile so the
// two indexes never drift apart.
package noteservice

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/veitsen/skald/internal/apperr"
	"github.com/veitsen/skald/internal/checksum"
	"github.com/veitsen/skald/internal/index"
	"github.com/veitsen/skald/internal/linkgraph"
	"github.com/veitsen/skald/internal/parser"
	"github.com/veitsen/skald/internal/storage"
)

// NoteDetail is the full representation of a note.
type NoteDetail struct {
	Path        string         `json:"path"`
	NoteID      string         `json:"note_id,omitempty"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Checksum    string         `json:"checksum"`
	Tags        []string       `json:"tags"`
	Frontmatter map[string]any `json:"frontmatter,omitempty"`
	Outbound    []string       `json:"outbound"`
	Backlinks   []string       `json:"backlinks"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NoteListItem is a lightweight item in a list response.
type NoteListItem struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum"`
	Tags      []string  `json:"tags"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteLinks is the inbound/outbound pair for a single note.
type NoteLinks struct {
	Inbound  []string `json:"inbound"`
	Outbound []string `json:"outbound"`
}

// Service coordinates storage, index, and link store operations.
type Service struct {
	store storage.Provider
	db    *index.DB
	links *linkgraph.Store
}

// NewService creates a new note service.
func NewService(store storage.Provider, db *index.DB, links *linkgraph.Store) *Service {
	return &Service{store: store, db: db, links: links}
}

// The watcher and startup sync feed files through the service.
var _ index.FileIndexer = (*Service)(nil)

// GetNote reads a note from storage, parses it, and enriches it with its
// link neighborhood.
func (s *Service) GetNote(_ context.Context, path string) (*NoteDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.buildNoteDetail(path, data)
}

// CreateNote writes a new note and indexes it.
func (s *Service) CreateNote(_ context.Context, path string, content []byte) (*NoteDetail, error) {
	if _, err := s.store.Read(path); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return s.buildNoteDetail(path, content)
}

// UpdateNote writes updated content with optimistic concurrency.
func (s *Service) UpdateNote(_ context.Context, path string, content []byte, ifMatch string) (*NoteDetail, error) {
	existing, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return s.buildNoteDetail(path, content)
}

// DeleteNote removes a note from storage and both indexes.
func (s *Service) DeleteNote(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		return err
	}
	return s.RemoveFile(path)
}

// ListNotes returns paginated notes with optional tag filter.
func (s *Service) ListNotes(_ context.Context, limit, offset int, tag, sort string) ([]NoteListItem, int, error) {
	rows, total, err := s.db.ListNotes(limit, offset, tag, sort)
	if err != nil {
		return nil, 0, err
	}
	items := make([]NoteListItem, len(rows))
	for i, r := range rows {
		items[i] = NoteListItem{
			Path:      r.Path,
			Title:     r.Title,
			Checksum:  r.Checksum,
			Tags:      nonNilSlice(r.Tags),
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Graph builds the current link graph snapshot: nodes with isolate flags
// and component labels, directed edges, component list.
func (s *Service) Graph(_ context.Context) (*linkgraph.Graph, error) {
	return s.links.Build()
}

// Links returns the inbound and outbound link sets of a note.
func (s *Service) Links(_ context.Context, path string) (*NoteLinks, error) {
	return &NoteLinks{
		Inbound:  s.links.Inbound(path),
		Outbound: s.links.Outbound(path),
	}, nil
}

// IndexFile parses data and updates the metadata index and the link
// store as one logical operation.
// Exported so that sync and watcher can reuse it.
func (s *Service) IndexFile(path string, data []byte) error {
	res, err := parser.Parse(data)
	if err != nil {
		return err
	}
	cs := checksum.Sum(data)
	if err := s.db.UpsertNote(index.NoteRow{
		Path:      path,
		NoteID:    res.NoteID,
		Title:     res.Title,
		Checksum:  cs,
		Tags:      nonNilSlice(res.Tags),
		UpdatedAt: time.Now(),
	}, res.Body); err != nil {
		return err
	}
	s.links.Report(path, res.Links, res.NoteID)
	return nil
}

// RemoveFile drops a note from the metadata index and the link store.
// The stored note id is looked up first so the id entry is released too.
func (s *Service) RemoveFile(path string) error {
	noteID, err := s.db.GetNoteID(path)
	if err != nil {
		return err
	}
	if err := s.db.DeleteNote(path); err != nil {
		return err
	}
	s.links.Remove(path, noteID)
	return nil
}

// buildNoteDetail constructs a NoteDetail from raw data without re-reading the file.
func (s *Service) buildNoteDetail(path string, data []byte) (*NoteDetail, error) {
	res, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	return &NoteDetail{
		Path:        path,
		NoteID:      res.NoteID,
		Title:       res.Title,
		Content:     string(data),
		Checksum:    checksum.Sum(data),
		Tags:        nonNilSlice(res.Tags),
		Frontmatter: res.Frontmatter,
		Outbound:    s.links.Outbound(path),
		Backlinks:   s.links.Inbound(path),
		UpdatedAt:   time.Now(),
	}, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
