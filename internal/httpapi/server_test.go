package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vitadek/survival/internal/logging"
	"github.com/vitadek/survival/internal/store"
	"github.com/vitadek/survival/internal/worldgen"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := worldgen.SeedWorld(tx, "httpapi-test-world"); err != nil {
		t.Fatalf("SeedWorld: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	return New(db, logging.Discard(), 42)
}

func doRequest(h http.Handler, method, path, identity string, payload interface{}) *httptest.ResponseRecorder {
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if identity != "" {
		req.Header.Set("X-Player-Identity", identity)
		req.Header.Set("X-Connection-Id", "conn-"+identity)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestStatusEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rr := doRequest(srv.Handler(), http.MethodGet, "/status", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", rr.Code)
	}
}

func TestReducerRequiresIdentity(t *testing.T) {
	srv := newTestServer(t)
	rr := doRequest(srv.Handler(), http.MethodPost, "/reducer/register_player", "", map[string]string{"Username": "nobody"})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without X-Player-Identity", rr.Code)
	}
}

func TestRegisterPlayerReducer(t *testing.T) {
	srv := newTestServer(t)
	rr := doRequest(srv.Handler(), http.MethodPost, "/reducer/register_player", "alice-identity",
		map[string]string{"Username": "alice"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rr.Code, rr.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["Username"] != "alice" {
		t.Errorf("Username = %v, want alice", resp["Username"])
	}
}

func TestUnknownReducerReturns404(t *testing.T) {
	srv := newTestServer(t)
	rr := doRequest(srv.Handler(), http.MethodPost, "/reducer/not_a_real_reducer", "alice-identity", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestReducerErrorMapsNotFoundToHTTP404(t *testing.T) {
	srv := newTestServer(t)
	rr := doRequest(srv.Handler(), http.MethodPost, "/reducer/respawn_at_sleeping_bag", "alice-identity",
		map[string]int64{"StructureID": 999})
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for a missing sleeping bag, body=%s", rr.Code, rr.Body.String())
	}
}

func TestSnapshotWithoutViewportReturns400(t *testing.T) {
	srv := newTestServer(t)
	rr := doRequest(srv.Handler(), http.MethodPost, "/reducer/register_player", "bob-identity", map[string]string{"Username": "bob"})
	if rr.Code != http.StatusOK {
		t.Fatalf("register failed: %s", rr.Body.String())
	}
	rr = doRequest(srv.Handler(), http.MethodGet, "/world/snapshot", "bob-identity", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 before update_viewport has been called", rr.Code)
	}
}

func TestSnapshotAfterViewportReturnsRegisteredPlayer(t *testing.T) {
	srv := newTestServer(t)
	rr := doRequest(srv.Handler(), http.MethodPost, "/reducer/register_player", "carol-identity", map[string]string{"Username": "carol"})
	if rr.Code != http.StatusOK {
		t.Fatalf("register failed: %s", rr.Body.String())
	}

	rr = doRequest(srv.Handler(), http.MethodPost, "/reducer/update_viewport", "carol-identity",
		map[string]float64{"MinX": -100000, "MinY": -100000, "MaxX": 100000, "MaxY": 100000})
	if rr.Code != http.StatusOK {
		t.Fatalf("update_viewport failed: %s", rr.Body.String())
	}

	rr = doRequest(srv.Handler(), http.MethodGet, "/world/snapshot", "carol-identity", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("snapshot failed: %s", rr.Body.String())
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	players, ok := body["players"].([]interface{})
	if !ok || len(players) != 1 {
		t.Errorf("players = %v, want one entry for carol", body["players"])
	}
}

func TestCORSPreflightIsHandled(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/reducer/register_player", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("OPTIONS status = %d, want 200", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("missing CORS header on preflight response")
	}
}
