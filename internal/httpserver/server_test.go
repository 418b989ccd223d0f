package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lumikids/playbox/internal/audio"
	"github.com/lumikids/playbox/internal/content"
	"github.com/lumikids/playbox/internal/game"
	"github.com/lumikids/playbox/internal/session"
	"github.com/lumikids/playbox/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	if err := content.Init(); err != nil {
		t.Fatalf("content.Init: %v", err)
	}
	return New(store.NewMemoryStore(), audio.Config{Enabled: true})
}

// startSession POSTs /session/new and returns the session ID, its ticket
// cookie, and the first view.
func startSession(t *testing.T, s *Server, gameType string) (string, *http.Cookie, session.View) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"gameType": gameType})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/session/new", bytes.NewReader(body))
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("new session: status %d, body %s", rr.Code, rr.Body.String())
	}

	var res newSessionRes
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var ticket *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == getEnv("COOKIE_NAME", "playbox_ticket") {
			ticket = c
		}
	}
	if ticket == nil {
		t.Fatal("no ticket cookie set")
	}
	return res.SessionID, ticket, res.View
}

func TestNewSessionValidation(t *testing.T) {
	s := newTestServer(t)

	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/session/new",
		bytes.NewReader([]byte(`{"gameType":"roulette"}`))))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown game type: status %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	s.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/session/new",
		bytes.NewReader([]byte(`{`))))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status %d", rr.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)
	id, ticket, view := startSession(t, s, "pattern")
	if view.Screen != session.ScreenGame || view.GameType != game.KindPattern || view.Level != 1 {
		t.Fatalf("initial view: %+v", view)
	}

	// Reads require the ticket.
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/session/"+id, nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("no ticket: status %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/session/"+id, nil)
	req.AddCookie(ticket)
	rr = httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("with ticket: status %d", rr.Code)
	}

	// Level 1's single pattern challenge completes via /input.
	body, _ := json.Marshal(game.Input{Value: content.Pattern(1, 0).Answer})
	req = httptest.NewRequest(http.MethodPost, "/session/"+id+"/input", bytes.NewReader(body))
	req.AddCookie(ticket)
	rr = httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("input: status %d, body %s", rr.Code, rr.Body.String())
	}
	var res inputRes
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Outcome != game.OutcomeComplete || res.View.Score != 10 {
		t.Fatalf("input result: %+v", res)
	}
	if res.View.Feedback != session.FeedbackLevelClear {
		t.Fatalf("feedback: %q", res.View.Feedback)
	}

	// Restart zeroes the session.
	req = httptest.NewRequest(http.MethodPost, "/session/"+id+"/restart", nil)
	req.AddCookie(ticket)
	rr = httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	var v session.View
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatal(err)
	}
	if v.Score != 0 || v.Level != 1 || v.Feedback != session.FeedbackNone {
		t.Fatalf("after restart: %+v", v)
	}

	// Menu tears the session down; it is gone afterwards.
	req = httptest.NewRequest(http.MethodPost, "/session/"+id+"/menu", nil)
	req.AddCookie(ticket)
	rr = httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("menu: status %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/session/"+id, nil)
	req.AddCookie(ticket)
	rr = httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("after menu: status %d", rr.Code)
	}
}

func TestTicketBoundToSession(t *testing.T) {
	s := newTestServer(t)
	idA, _, _ := startSession(t, s, "memory")
	_, ticketB, _ := startSession(t, s, "colors")

	// Session B's ticket must not open session A.
	req := httptest.NewRequest(http.MethodGet, "/session/"+idA, nil)
	req.AddCookie(ticketB)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("cross-session ticket: status %d", rr.Code)
	}
}

func TestHealthAndDebug(t *testing.T) {
	s := newTestServer(t)

	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("health: status %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	s.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/debug/content", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("debug: status %d", rr.Code)
	}
	var stats map[string]int
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats["patternLevels"] != game.MaxLevel(game.KindPattern) {
		t.Fatalf("stats: %v", stats)
	}
}
