package leaderboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "leaderboard.json"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return store
}

func TestOpenCreatesEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "leaderboard.json")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Document was not initialized: %v", err)
	}

	all, err := store.All()
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("Fresh store should be empty, got %d entries", len(all))
	}
}

func TestSubmitOnlyImproves(t *testing.T) {
	store := newTestStore(t)

	updated, err := store.Submit("Alice", 100, 60)
	if err != nil || !updated {
		t.Fatalf("First submit should update, got %v, %v", updated, err)
	}

	// Lower score under a different casing must not overwrite.
	updated, err = store.Submit("ALICE", 80, 45)
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if updated {
		t.Error("Lower score should report not updated")
	}

	entry, found, _ := store.Player("alice")
	if !found || entry.BestScore != 100 {
		t.Errorf("Best score should remain 100, got %d (found=%v)", entry.BestScore, found)
	}

	// Equal score is not an improvement either.
	if updated, _ := store.Submit("Alice", 100, 30); updated {
		t.Error("Equal score should report not updated")
	}

	updated, err = store.Submit("aLiCe", 150, 90)
	if err != nil || !updated {
		t.Fatalf("Higher score should update, got %v, %v", updated, err)
	}

	entry, _, _ = store.Player("Alice")
	if entry.BestScore != 150 || entry.TimeTaken != 90 {
		t.Errorf("Entry should hold new best 150 with time 90, got %d/%d", entry.BestScore, entry.TimeTaken)
	}
	if entry.Name != "Alice" {
		t.Errorf("Originally registered casing should be kept, got %q", entry.Name)
	}
}

func TestRankingOrder(t *testing.T) {
	store := newTestStore(t)

	store.Submit("Carol", 200, 10)
	store.Submit("Bob", 300, 10)
	store.Submit("Alice", 200, 10)
	store.Submit("Dave", 100, 10)

	all, err := store.All()
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}

	want := []string{"Bob", "Alice", "Carol", "Dave"}
	for i, name := range want {
		if all[i].Name != name {
			t.Errorf("Rank %d should be %s, got %s", i+1, name, all[i].Name)
		}
	}

	// Equal scores: alphabetically earlier name ranks higher.
	rank, found, _ := store.Rank("alice")
	if !found || rank != 2 {
		t.Errorf("Alice should rank 2, got %d (found=%v)", rank, found)
	}
	rank, found, _ = store.Rank("carol")
	if !found || rank != 3 {
		t.Errorf("Carol should rank 3, got %d (found=%v)", rank, found)
	}

	if _, found, _ := store.Rank("nobody"); found {
		t.Error("Rank for an unknown player should report not found")
	}
}

func TestTopLimits(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		store.Submit(fmt.Sprintf("player%d", i), (i+1)*10, 0)
	}

	top, err := store.Top(3)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Top(3) should return 3 entries, got %d", len(top))
	}
	if top[0].BestScore != 50 || top[1].BestScore != 40 || top[2].BestScore != 30 {
		t.Errorf("Top(3) not in rank order: %v", top)
	}

	top, _ = store.Top(100)
	if len(top) != 5 {
		t.Errorf("Top beyond size should return all 5 entries, got %d", len(top))
	}

	// Non-positive limits return nothing rather than panicking.
	for _, n := range []int{0, -1} {
		top, err = store.Top(n)
		if err != nil {
			t.Fatalf("Top(%d) failed: %v", n, err)
		}
		if len(top) != 0 {
			t.Errorf("Top(%d) should return no entries, got %d", n, len(top))
		}
	}
}

func TestCorruptDocumentReadsAsEmpty(t *testing.T) {
	store := newTestStore(t)
	store.Submit("Alice", 100, 10)

	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	all, err := store.All()
	if err != nil {
		t.Fatalf("All() on a corrupt document should not fail: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("Corrupt document should read as empty, got %d entries", len(all))
	}

	// Next successful write heals the document.
	if updated, err := store.Submit("Bob", 50, 5); err != nil || !updated {
		t.Fatalf("Submit after corruption failed: %v, %v", updated, err)
	}
	all, _ = store.All()
	if len(all) != 1 || all[0].Name != "Bob" {
		t.Errorf("Store should be self-healing, got %v", all)
	}
}

func TestWriteFailureSurfacedAndCleanedUp(t *testing.T) {
	store := newTestStore(t)
	store.Submit("Alice", 100, 10)

	// Force the atomic replace to fail by turning the final path into a
	// non-empty directory.
	if err := os.Remove(store.Path()); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(store.Path(), "block"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Submit("Bob", 200, 10); err == nil {
		t.Fatal("Submit should surface the persistence failure")
	}

	if _, err := os.Stat(store.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temp artifact should be removed after a failed write")
	}
}

func TestPersistedShape(t *testing.T) {
	store := newTestStore(t)
	store.now = func() time.Time {
		return time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	}

	store.Submit("Alice", 120, 75)

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Players []struct {
			Name      string `json:"name"`
			BestScore int    `json:"best_score"`
			Date      string `json:"date"`
			TimeTaken int    `json:"time_taken"`
		} `json:"players"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Document is not valid JSON: %v", err)
	}

	if len(doc.Players) != 1 {
		t.Fatalf("Expected 1 player on disk, got %d", len(doc.Players))
	}
	p := doc.Players[0]
	if p.Name != "Alice" || p.BestScore != 120 || p.TimeTaken != 75 {
		t.Errorf("Unexpected persisted entry: %+v", p)
	}
	if _, err := time.Parse(time.RFC3339, p.Date); err != nil {
		t.Errorf("Date %q should be RFC 3339: %v", p.Date, err)
	}
}

func TestConcurrentSubmissions(t *testing.T) {
	store := newTestStore(t)

	const players = 32
	var wg sync.WaitGroup
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("player%02d", i)
			for score := 10; score <= 30; score += 10 {
				if _, err := store.Submit(name, score, score); err != nil {
					t.Errorf("Submit(%s, %d) failed: %v", name, score, err)
				}
			}
		}(i)
	}
	wg.Wait()

	all, err := store.All()
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(all) != players {
		t.Fatalf("Expected %d distinct entries, got %d", players, len(all))
	}
	for _, e := range all {
		if e.BestScore != 30 {
			t.Errorf("%s should end at best score 30, got %d", e.Name, e.BestScore)
		}
	}

	// The final document must be a complete, parseable state.
	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Final document is not complete JSON: %v", err)
	}
	if len(doc.Players) != players {
		t.Errorf("Final document holds %d players, want %d", len(doc.Players), players)
	}
}
