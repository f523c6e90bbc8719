package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tushaaaaaarr/SnakeRush/internal/config"
	"github.com/tushaaaaaarr/SnakeRush/internal/engine"
	"github.com/tushaaaaaarr/SnakeRush/internal/leaderboard"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	store, err := leaderboard.Open(filepath.Join(t.TempDir(), "leaderboard.json"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	cfg := config.Default()
	srv := New(cfg, store)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return srv, ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status = %d, want 200", resp.StatusCode)
	}

	body := decode[healthResponse](t, resp)
	if body.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", body.Status)
	}
}

func TestStartGame(t *testing.T) {
	srv, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/game/start", startGameRequest{PlayerName: "  Alice  "})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status = %d, want 200", resp.StatusCode)
	}

	body := decode[startGameResponse](t, resp)
	if body.PlayerName != "Alice" {
		t.Errorf("Player name should be trimmed, got %q", body.PlayerName)
	}
	if body.SessionID == "" {
		t.Fatal("Expected a session ID")
	}
	if _, ok := srv.sessions.get(body.SessionID); !ok {
		t.Error("Session should be registered")
	}
}

func TestStartGameRejectsBadNames(t *testing.T) {
	_, ts := newTestServer(t)

	for _, name := range []string{"", "   ", strings.Repeat("x", 51)} {
		resp := postJSON(t, ts.URL+"/game/start", startGameRequest{PlayerName: name})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Name %q: status = %d, want 400", name, resp.StatusCode)
		}
		body := decode[errorResponse](t, resp)
		if !body.Error {
			t.Errorf("Name %q: expected error body, got %+v", name, body)
		}
	}
}

func TestSubmitScoreFlow(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/scores/submit", submitScoreRequest{
		PlayerName: "Alice", Score: 100, TimeTaken: 60,
	})
	body := decode[submitScoreResponse](t, resp)
	if !body.Success || !body.NewPersonalBest || body.LeaderboardPosition != 1 {
		t.Errorf("First submit: %+v", body)
	}

	// Lower score: accepted by the API but not a personal best.
	resp = postJSON(t, ts.URL+"/scores/submit", submitScoreRequest{
		PlayerName: "alice", Score: 80, TimeTaken: 30,
	})
	body = decode[submitScoreResponse](t, resp)
	if !body.Success || body.NewPersonalBest {
		t.Errorf("Lower submit: %+v", body)
	}

	// Negative score rejected at the boundary.
	resp = postJSON(t, ts.URL+"/scores/submit", submitScoreRequest{
		PlayerName: "Alice", Score: -1,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Negative score: status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	// Player endpoint reflects the stored best.
	resp, err := http.Get(ts.URL + "/leaderboard/player/ALICE")
	if err != nil {
		t.Fatal(err)
	}
	player := decode[playerResponse](t, resp)
	if !player.Found || player.BestScore != 100 || player.Rank != 1 {
		t.Errorf("Player lookup: %+v", player)
	}
}

func TestPlayerNotFound(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/leaderboard/player/nobody")
	if err != nil {
		t.Fatal(err)
	}
	body := decode[playerResponse](t, resp)
	if body.Found {
		t.Errorf("Unknown player should report found=false, got %+v", body)
	}
}

func TestLeaderboardTop(t *testing.T) {
	_, ts := newTestServer(t)

	for _, sub := range []submitScoreRequest{
		{PlayerName: "Carol", Score: 200},
		{PlayerName: "Bob", Score: 300},
		{PlayerName: "Alice", Score: 200},
	} {
		postJSON(t, ts.URL+"/scores/submit", sub).Body.Close()
	}

	resp, err := http.Get(ts.URL + "/leaderboard/top?limit=2")
	if err != nil {
		t.Fatal(err)
	}
	body := decode[leaderboardResponse](t, resp)
	if body.TotalCount != 2 {
		t.Fatalf("TotalCount = %d, want 2", body.TotalCount)
	}
	if body.Entries[0].Name != "Bob" || body.Entries[0].Rank != 1 {
		t.Errorf("Rank 1 should be Bob: %+v", body.Entries[0])
	}
	if body.Entries[1].Name != "Alice" || body.Entries[1].Rank != 2 {
		t.Errorf("Rank 2 should be Alice (tie broken by name): %+v", body.Entries[1])
	}

	resp, err = http.Get(ts.URL + "/leaderboard/top?limit=0")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("limit=0: status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/leaderboard/all")
	if err != nil {
		t.Fatal(err)
	}
	all := decode[leaderboardResponse](t, resp)
	if all.TotalCount != 3 {
		t.Errorf("All: TotalCount = %d, want 3", all.TotalCount)
	}
}

func TestCORSPreflight(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/leaderboard/top", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Origin", "http://example.com")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Preflight status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestWebSocketPlay(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/game/start", startGameRequest{PlayerName: "Alice"})
	started := decode[startGameResponse](t, resp)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=" + started.SessionID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first serverMessage
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("Read initial state: %v", err)
	}
	if first.Type != "state" || first.State == nil {
		t.Fatalf("Unexpected first message: %+v", first)
	}
	if first.State.PlayerName != "Alice" || len(first.State.Snake) != 1 {
		t.Errorf("Initial snapshot: %+v", first.State)
	}

	if err := conn.WriteJSON(clientMessage{Action: "down"}); err != nil {
		t.Fatal(err)
	}

	// The initial head sits at the grid center; after a few ticks it must
	// have moved.
	start := first.State.Snake[0]
	moved := false
	for i := 0; i < 4; i++ {
		var msg serverMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("Read state %d: %v", i, err)
		}
		if msg.State != nil && len(msg.State.Snake) > 0 && msg.State.Snake[0] != start {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("Snake should move across ticks")
	}
}

func TestWebSocketUnknownSession(t *testing.T) {
	_, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=bogus"
	if _, _, err := websocket.DefaultDialer.Dial(wsURL, nil); err == nil {
		t.Error("Dial with an unknown session should fail")
	}
}

func TestSessionSweep(t *testing.T) {
	srv, _ := newTestServer(t)

	sess := srv.sessions.create(20, 20, "Alice")
	sess.mu.Lock()
	sess.lastActive = time.Now().Add(-time.Hour)
	sess.mu.Unlock()

	fresh := srv.sessions.create(20, 20, "Bob")

	if removed := srv.sessions.sweep(sessionMaxIdle); removed != 1 {
		t.Errorf("Sweep removed %d sessions, want 1", removed)
	}
	if _, ok := srv.sessions.get(sess.id); ok {
		t.Error("Idle session should be gone")
	}
	if _, ok := srv.sessions.get(fresh.id); !ok {
		t.Error("Fresh session should survive the sweep")
	}
}

func TestTickInterval(t *testing.T) {
	if got := tickInterval(engine.BaseSpeed); got != 250*time.Millisecond {
		t.Errorf("tickInterval(4) = %v, want 250ms", got)
	}
	if got := tickInterval(0); got != 250*time.Millisecond {
		t.Errorf("tickInterval(0) should fall back to base speed, got %v", got)
	}
}
