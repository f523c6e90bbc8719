// Package leaderboard persists the best score per player in a single JSON
// document. Every write re-serializes the whole document to a temp file and
// atomically renames it into place, so readers never observe a partial
// document. All operations are serialized by one store-scoped mutex.
package leaderboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Entry is one player's record: best score, when it was last improved and
// how long the run took. The player name is a case-insensitive identity key.
type Entry struct {
	Name      string    `json:"name"`
	BestScore int       `json:"best_score"`
	Date      time.Time `json:"date"`
	TimeTaken int       `json:"time_taken"`
}

// document is the on-disk shape. Ordering on disk is not guaranteed; it is
// re-derived on every read.
type document struct {
	Players []Entry `json:"players"`
}

// Store owns the leaderboard document at a fixed path.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// Open creates a store for the document at the given path. The parent
// directory is created if needed; an empty document is written when none
// exists yet. A leading ~ expands to the home directory.
func Open(path string) (*Store, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("leaderboard: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("leaderboard: cannot create directory: %w", err)
	}

	s := &Store{path: path, now: time.Now}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.write(document{Players: []Entry{}}); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Submit records a score for the named player. The entry is created or
// overwritten only when the score is strictly greater than the stored best;
// otherwise nothing changes. Reports whether an update occurred.
func (s *Store) Submit(name string, score, timeTaken int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()

	idx := -1
	for i, p := range doc.Players {
		if strings.EqualFold(p.Name, name) {
			idx = i
			break
		}
	}

	entry := Entry{
		Name:      name,
		BestScore: score,
		Date:      s.now().UTC(),
		TimeTaken: timeTaken,
	}

	if idx >= 0 {
		if score <= doc.Players[idx].BestScore {
			return false, nil
		}
		entry.Name = doc.Players[idx].Name // Keep the originally registered casing
		doc.Players[idx] = entry
	} else {
		doc.Players = append(doc.Players, entry)
	}

	sortEntries(doc.Players)

	if err := s.write(doc); err != nil {
		return false, err
	}
	return true, nil
}

// Top returns the first n entries ordered by (score descending, name
// ascending). A non-positive n returns no entries.
func (s *Store) Top(n int) ([]Entry, error) {
	if n <= 0 {
		return []Entry{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	players := s.sorted()
	if n < len(players) {
		players = players[:n]
	}
	return players, nil
}

// All returns every entry in rank order.
func (s *Store) All() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sorted(), nil
}

// Player looks up a player's entry case-insensitively.
func (s *Store) Player(name string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.load().Players {
		if strings.EqualFold(p.Name, name) {
			return p, true, nil
		}
	}
	return Entry{}, false, nil
}

// Rank returns the player's 1-indexed position in the full ranked list, or
// found=false if the player has no entry.
func (s *Store) Rank(name string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.sorted() {
		if strings.EqualFold(p.Name, name) {
			return i + 1, true, nil
		}
	}
	return 0, false, nil
}

// Path returns the document path the store owns.
func (s *Store) Path() string {
	return s.path
}

// sorted loads the document and returns its entries in rank order.
// Caller must hold s.mu.
func (s *Store) sorted() []Entry {
	players := s.load().Players
	sortEntries(players)
	return players
}

// load reads the document. A missing or unparseable document reads as
// empty; the next successful write heals it. Caller must hold s.mu.
func (s *Store) load() document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return document{}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}
	}
	return doc
}

// write re-serializes the whole document to a temp file and renames it over
// the final path. On any failure the temp artifact is removed and the
// persisted document is left unchanged. Caller must hold s.mu.
func (s *Store) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("leaderboard: cannot encode document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("leaderboard: cannot write document: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("leaderboard: cannot replace document: %w", err)
	}

	return nil
}

// sortEntries orders entries by score descending, then name ascending.
func sortEntries(players []Entry) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].BestScore != players[j].BestScore {
			return players[i].BestScore > players[j].BestScore
		}
		return players[i].Name < players[j].Name
	})
}
