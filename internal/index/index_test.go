package index

import (
	"os"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "skald-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM notes`).Scan(&count); err != nil {
		t.Fatalf("notes table missing: %v", err)
	}
}

func TestUpsertAndGetChecksum(t *testing.T) {
	db := testDB(t)
	row := NoteRow{
		Path:      "hello.md",
		Title:     "Hello World",
		Checksum:  "abc123",
		Tags:      []string{"go", "test"},
		UpdatedAt: time.Now(),
	}
	if err := db.UpsertNote(row, "This is a hello world note."); err != nil {
		t.Fatalf("UpsertNote: %v", err)
	}
	cs, err := db.GetChecksum("hello.md")
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "abc123" {
		t.Errorf("checksum = %q, want %q", cs, "abc123")
	}
}

func TestGetNoteAndNoteID(t *testing.T) {
	db := testDB(t)
	row := NoteRow{
		Path:      "withid.md",
		NoteID:    "note-7",
		Title:     "With ID",
		Checksum:  "c",
		Tags:      []string{"x"},
		UpdatedAt: time.Now(),
	}
	if err := db.UpsertNote(row, "body"); err != nil {
		t.Fatalf("UpsertNote: %v", err)
	}

	got, err := db.GetNote("withid.md")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got == nil || got.NoteID != "note-7" || got.Title != "With ID" {
		t.Errorf("GetNote = %+v", got)
	}

	id, err := db.GetNoteID("withid.md")
	if err != nil {
		t.Fatalf("GetNoteID: %v", err)
	}
	if id != "note-7" {
		t.Errorf("note id = %q, want note-7", id)
	}
	if id, _ := db.GetNoteID("unknown.md"); id != "" {
		t.Errorf("unknown note id = %q, want empty", id)
	}
}

func TestDeleteNote(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(NoteRow{Path: "del.md", Checksum: "x", Tags: []string{}, UpdatedAt: time.Now()}, "body")

	if err := db.DeleteNote("del.md"); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	cs, _ := db.GetChecksum("del.md")
	if cs != "" {
		t.Errorf("deleted note still has checksum %q", cs)
	}
	n, _ := db.GetNote("del.md")
	if n != nil {
		t.Errorf("deleted note still present: %+v", n)
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertNote(NoteRow{Path: "up.md", Title: "Old", Checksum: "1", Tags: []string{}, UpdatedAt: now}, "old body")
	_ = db.UpsertNote(NoteRow{Path: "up.md", Title: "New", Checksum: "2", Tags: []string{"new"}, UpdatedAt: now}, "new body")

	cs, _ := db.GetChecksum("up.md")
	if cs != "2" {
		t.Errorf("checksum = %q, want %q", cs, "2")
	}
	n, _ := db.GetNote("up.md")
	if n == nil || n.Title != "New" {
		t.Errorf("row not replaced: %+v", n)
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum("nonexistent.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestListNotes_PaginationAndTagFilter(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertNote(NoteRow{Path: "a.md", Title: "A", Checksum: "1", Tags: []string{"keep"}, UpdatedAt: now}, "a")
	_ = db.UpsertNote(NoteRow{Path: "b.md", Title: "B", Checksum: "2", Tags: []string{"drop"}, UpdatedAt: now}, "b")
	_ = db.UpsertNote(NoteRow{Path: "c.md", Title: "C", Checksum: "3", Tags: []string{"keep"}, UpdatedAt: now}, "c")

	rows, total, err := db.ListNotes(10, 0, "keep", "path")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("total = %d, rows = %d, want 2/2", total, len(rows))
	}
	if rows[0].Path != "a.md" || rows[1].Path != "c.md" {
		t.Errorf("rows = %v, want [a.md c.md] sorted by path", rows)
	}

	rows, total, err = db.ListNotes(1, 1, "", "path")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if total != 3 || len(rows) != 1 || rows[0].Path != "b.md" {
		t.Errorf("page 2 of size 1 = %v (total %d), want [b.md] of 3", rows, total)
	}
}

func TestPathExistsAndAllPaths(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(NoteRow{Path: "yes.md", Checksum: "1", Tags: []string{}, UpdatedAt: time.Now()}, "y")

	ok, err := db.PathExists("yes.md")
	if err != nil || !ok {
		t.Errorf("PathExists(yes.md) = %v, %v", ok, err)
	}
	ok, err = db.PathExists("no.md")
	if err != nil || ok {
		t.Errorf("PathExists(no.md) = %v, %v", ok, err)
	}

	paths, err := db.AllPaths()
	if err != nil {
		t.Fatalf("AllPaths: %v", err)
	}
	if _, ok := paths["yes.md"]; !ok || len(paths) != 1 {
		t.Errorf("AllPaths = %v", paths)
	}
}

func TestFindByStem(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertNote(NoteRow{Path: "topics/graph.md", Checksum: "1", Tags: []string{}, UpdatedAt: now}, "")
	_ = db.UpsertNote(NoteRow{Path: "inbox/graph.md", Checksum: "2", Tags: []string{}, UpdatedAt: now}, "")
	_ = db.UpsertNote(NoteRow{Path: "telegraph.md", Checksum: "3", Tags: []string{}, UpdatedAt: now}, "")

	matches, err := db.FindByStem("graph")
	if err != nil {
		t.Fatalf("FindByStem: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches = %v, want the two graph.md files only", matches)
	}
	for _, m := range matches {
		if m == "telegraph.md" {
			t.Error("substring match leaked into stem lookup")
		}
	}

	matches, err = db.FindByStem("Graph")
	if err != nil {
		t.Fatalf("FindByStem: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("stem lookup should be case-insensitive, got %v", matches)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(NoteRow{Path: "s.md", Title: "Search Me", Checksum: "1", Tags: []string{}, UpdatedAt: time.Now()}, "uniqueword appears here")

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "s.md" {
		t.Errorf("search results = %+v, want 1 hit for s.md", results)
	}
}
