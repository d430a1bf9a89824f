// Package linkgraph maintains the vault's bidirectional link index and
// builds graph snapshots with isolate flags and connected-component labels.
package linkgraph

import (
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Resolver turns a raw wikilink token into a canonical note path.
// Implementations must be synchronous and side-effect free; a failed
// resolution is expected (links to non-indexed targets) and simply drops
// the token from the outbound set.
type Resolver interface {
	Resolve(token string) (string, bool)
}

// Notifier receives a fire-and-forget signal after every index mutation.
type Notifier interface {
	NotifyChanged(topic string)
}

// TopicLinks is the topic passed to the Notifier on every index change.
const TopicLinks = "links.changed"

// Store holds the outbound-link index for the whole vault.
//
// All methods are safe for concurrent use: mutations and reads are
// serialized by a single mutex, so a Build snapshot never observes a
// half-applied report.
type Store struct {
	mu       sync.Mutex
	byPath   *orderedmap.OrderedMap[string, []string]
	byID     map[string][]string
	resolver Resolver
	notifier Notifier
}

// NewStore creates an empty link store. notifier may be nil.
func NewStore(resolver Resolver, notifier Notifier) *Store {
	return &Store{
		byPath:   orderedmap.New[string, []string](),
		byID:     make(map[string][]string),
		resolver: resolver,
		notifier: notifier,
	}
}

// Report replaces the full outbound set for sourcePath with the resolved
// form of rawLinks. Tokens the resolver cannot place are dropped; order
// and duplicates of the remaining links are preserved. When sourceID is
// non-empty the same resolved set is mirrored under that id — if two
// paths ever report the same id, the later report wins on the id entry
// while both path entries stay intact.
func (s *Store) Report(sourcePath string, rawLinks []string, sourceID string) {
	resolved := make([]string, 0, len(rawLinks))
	for _, token := range rawLinks {
		if target, ok := s.resolver.Resolve(token); ok {
			resolved = append(resolved, target)
		}
	}

	s.mu.Lock()
	s.byPath.Set(sourcePath, resolved)
	if sourceID != "" {
		s.byID[sourceID] = resolved
	}
	s.mu.Unlock()

	s.notify()
}

// Remove forgets sourcePath, and sourceID when non-empty. Removing an
// unknown key is a no-op, not an error.
func (s *Store) Remove(sourcePath, sourceID string) {
	s.mu.Lock()
	s.byPath.Delete(sourcePath)
	if sourceID != "" {
		delete(s.byID, sourceID)
	}
	s.mu.Unlock()

	s.notify()
}

// Outbound returns the current resolved outbound links of sourcePath,
// or an empty slice when the path is unknown.
func (s *Store) Outbound(sourcePath string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	links, ok := s.byPath.Get(sourcePath)
	if !ok {
		return []string{}
	}
	out := make([]string, len(links))
	copy(out, links)
	return out
}

// OutboundByID is Outbound keyed by the stable note id instead of the
// path, for callers that track notes across renames.
func (s *Store) OutboundByID(sourceID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	links, ok := s.byID[sourceID]
	if !ok {
		return []string{}
	}
	out := make([]string, len(links))
	copy(out, links)
	return out
}

// Inbound returns every source whose outbound set contains target, each
// source once, in the order the sources were first reported.
//
// Linear in the total link count. Invoked on demand only; replace with a
// maintained reverse index if it ever lands on a hot path.
func (s *Store) Inbound(target string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []string{}
	for pair := s.byPath.Oldest(); pair != nil; pair = pair.Next() {
		for _, t := range pair.Value {
			if t == target {
				out = append(out, pair.Key)
				break
			}
		}
	}
	return out
}

func (s *Store) notify() {
	if s.notifier != nil {
		s.notifier.NotifyChanged(TopicLinks)
	}
}
