// Package resolve turns raw wikilink tokens into canonical vault paths.
package resolve

import (
	"path"
	"strings"
)

// PathLookup is the slice of the note index the resolver needs.
type PathLookup interface {
	PathExists(path string) (bool, error)
	FindByStem(stem string) ([]string, error)
}

// Vault resolves wikilink tokens against the indexed vault.
//
// Resolution order: exact relative path (with .md appended when the
// token has no extension), then a unique filename-stem match anywhere in
// the vault, then the normalized token itself — so links to notes that
// do not exist yet stay live and resolve once the note is created.
// Empty tokens, URLs, absolute paths, and traversal escapes fail.
type Vault struct {
	lookup PathLookup
}

// NewVault creates a resolver backed by the given index.
func NewVault(lookup PathLookup) *Vault {
	return &Vault{lookup: lookup}
}

// Resolve implements linkgraph.Resolver.
func (v *Vault) Resolve(token string) (string, bool) {
	normalized, ok := normalize(token)
	if !ok {
		return "", false
	}

	if exists, err := v.lookup.PathExists(normalized); err == nil && exists {
		return normalized, true
	}

	// Short links: [[note]] may live anywhere in the vault.
	if !strings.Contains(normalized, "/") {
		stem := strings.TrimSuffix(normalized, ".md")
		if matches, err := v.lookup.FindByStem(stem); err == nil && len(matches) == 1 {
			return matches[0], true
		}
	}

	return normalized, true
}

// normalize cleans a token into a vault-relative .md path, rejecting
// anything that is not a plain note reference.
func normalize(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, "://") {
		return "", false
	}
	token = strings.ReplaceAll(token, "\\", "/")
	if strings.HasPrefix(token, "/") {
		return "", false
	}

	cleaned := path.Clean(token)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	if path.Ext(cleaned) == "" {
		cleaned += ".md"
	}
	return cleaned, true
}
