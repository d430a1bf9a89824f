package api

import (
	"github.com/veitsen/skald/internal/linkgraph"
	"github.com/veitsen/skald/internal/noteservice"
)

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Path    string `json:"path" example:"notes/hello.md" validate:"required"`
	Content string `json:"content" example:"# Hello\nWorld" validate:"required"`
}

// UpdateNoteRequest is the request body for updating a note.
type UpdateNoteRequest struct {
	Content string `json:"content" example:"# Updated\nContent" validate:"required"`
}

// NoteDetail is the full note response type (aliased from the domain layer).
type NoteDetail = noteservice.NoteDetail

// NoteListItem is a lightweight item in a list response (aliased from the domain layer).
type NoteListItem = noteservice.NoteListItem

// NoteListResponse wraps paginated note listings.
type NoteListResponse struct {
	Notes []NoteListItem `json:"notes" validate:"required"`
	Total int            `json:"total" example:"42" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path" example:"notes/hello.md" validate:"required"`
	Title   string `json:"title" example:"Hello" validate:"required"`
	Snippet string `json:"snippet" example:"...matched text..." validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// GraphNode is a labeled node in the link graph.
type GraphNode struct {
	ID        string `json:"id" example:"notes/hello.md" validate:"required"`
	Label     string `json:"label" example:"hello.md" validate:"required"`
	Component string `json:"component" example:"1" validate:"required"`
	Isolate   bool   `json:"isolate" example:"false" validate:"required"`
}

// GraphLink is a directed edge in the link graph.
type GraphLink struct {
	Source string `json:"source" example:"notes/hello.md" validate:"required"`
	Target string `json:"target" example:"notes/world.md" validate:"required"`
	Weight int    `json:"weight" example:"1" validate:"required"`
}

// GraphResponse is the full graph snapshot: nodes, edges, and the
// connected-component identifiers in discovery order.
type GraphResponse = linkgraph.Graph

// NoteLinksResponse is the inbound/outbound pair for one note.
type NoteLinksResponse = noteservice.NoteLinks
