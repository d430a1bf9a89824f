// Package models defines the shared domain types for Skald.
package models

import "time"

// NoteMetadata is a lightweight representation of a vault file returned
// by storage list operations.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
