package content

import (
	"embed"
	"encoding/json"
	"sync"
)

//go:embed knowledge_base.json
var contentFS embed.FS

// Entry is one knowledge-base article. The knowledge base is static content
// shipped as data, not code; editing it is a data change.
type Entry struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
	Body     string `json:"body"`
}

// Store caches the parsed knowledge base behind a read lock.
type Store struct {
	mu      sync.RWMutex
	bySlug  map[string]Entry
	ordered []Entry
}

func Load() (*Store, error) {
	raw, err := contentFS.ReadFile("knowledge_base.json")
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	s := &Store{bySlug: make(map[string]Entry, len(entries)), ordered: entries}
	for _, e := range entries {
		s.bySlug[e.Slug] = e
	}
	return s, nil
}

func (s *Store) Get(slug string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.bySlug[slug]
	return e, ok
}

// List returns entries, optionally filtered by category. Order follows the
// source file.
func (s *Store) List(category string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if category == "" {
		out := make([]Entry, len(s.ordered))
		copy(out, s.ordered)
		return out
	}

	var out []Entry
	for _, e := range s.ordered {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}
