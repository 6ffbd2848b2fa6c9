// Package httpapi adapts the teacher's bare net/http + ServeMux server
// shape (main.go/utils.go) to §6's POST /reducer/{name} transport and
// §10.2's GET /world/snapshot, trading the teacher's federation routes
// for a reducer dispatch table and its IP rate limiter for an
// identity-keyed one.
package httpapi

import (
	"database/sql"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/logging"
	"github.com/vitadek/survival/internal/model"
	"github.com/vitadek/survival/internal/reducer"
	"github.com/vitadek/survival/internal/wire"
)

// Server holds everything a handler needs: the database, a logger in the
// teacher's Info/Error shape, the identity rate limiter, and the single
// seeded RNG every reducer invocation draws its own per-call seed from
// under rngMu (math/rand's
// default source is not goroutine-safe, and the teacher's own mrand use
// was similarly single-threaded).
type Server struct {
	db       *sql.DB
	log      *logging.Logger
	limiters *identityLimiters
	rngMu    sync.Mutex
	rng      *rand.Rand
}

func New(db *sql.DB, log *logging.Logger, seed int64) *Server {
	return &Server{
		db:       db,
		log:      log,
		limiters: newIdentityLimiters(),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Handler builds the routed, middleware-wrapped http.Handler, mirroring
// the teacher's main() "mux then wrap" sequence.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/reducer/", s.handleReducer)
	mux.HandleFunc("/world/snapshot", s.handleSnapshot)
	mux.HandleFunc("/status", s.handleStatus)

	var handler http.Handler = mux
	handler = middlewareIdentity(handler)
	handler = s.middlewareSecurity(handler)
	handler = middlewareCORS(handler)
	return handler
}

// NewHTTPServer wraps Handler() in the same ReadTimeout/WriteTimeout/
// IdleTimeout envelope as the teacher's main().
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
}

// handleReducer implements POST /reducer/{name}: look up the named
// reducer, decode its body, run it inside one transaction via
// reducer.Run, and translate the result (or gameerr.GameError) to JSON.
func (s *Server) handleReducer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/reducer/")
	fn, ok := dispatch[name]
	if !ok {
		http.Error(w, "unknown reducer "+name, http.StatusNotFound)
		return
	}

	var body []byte
	if r.Body != nil {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "reading body", http.StatusBadRequest)
			return
		}
	}

	identity := identityFromContext(r.Context())
	connection := connectionFromContext(r.Context())

	// S8: a call carrying a stale connection id (the identity has since
	// reconnected under a different one) is rejected before the reducer
	// body runs. connect itself is exempt since its job is to establish
	// the new mapping.
	if name != "connect" && reducer.ConnectionMismatch(identity, connection) {
		s.writeReducerError(w, name, gameerr.New(gameerr.Internal, "stale connection id"))
		return
	}

	s.rngMu.Lock()
	rng := rand.New(rand.NewSource(s.rng.Int63()))
	s.rngMu.Unlock()

	result, err := reducer.Run(s.db, identity, connection, time.Now(), rng, func(ctx *reducer.Context) (interface{}, error) {
		return fn(ctx, body)
	})
	if err != nil {
		s.writeReducerError(w, name, err)
		return
	}
	if result == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeReducerError maps a gameerr.Kind to an HTTP status the way §7's
// propagation policy implies: validation/ownership failures are 4xx,
// anything that reached gameerr.Internal (including errors that never
// went through gameerr.New at all) is a 500.
func (s *Server) writeReducerError(w http.ResponseWriter, reducerName string, err error) {
	kind := gameerr.KindOf(err)
	status := http.StatusBadRequest
	switch kind {
	case gameerr.NotFound:
		status = http.StatusNotFound
	case gameerr.NotOwned:
		status = http.StatusForbidden
	case gameerr.Cooldown, gameerr.Occupied:
		status = http.StatusConflict
	case gameerr.Internal:
		status = http.StatusInternalServerError
		s.log.Error.Printf("reducer %s: %v", reducerName, err)
	}
	writeJSON(w, status, map[string]interface{}{"error": err.Error(), "kind": string(kind)})
}

// handleSnapshot implements GET /world/snapshot (§10.2): load the
// caller's last-saved viewport, read every table filtered to its bounds,
// and optionally LZ4-compress the body per the x-ownworld-lz4 Accept path
// the teacher's compressLZ4 established.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	identity := identityFromContext(r.Context())
	if identity == "" {
		http.Error(w, "missing X-Player-Identity", http.StatusUnauthorized)
		return
	}

	var v model.ClientViewport
	err := s.db.QueryRow(`SELECT identity, min_x, min_y, max_x, max_y, last_update FROM client_viewport WHERE identity = ?`, identity).
		Scan(&v.Identity, &v.MinX, &v.MinY, &v.MaxX, &v.MaxY, &v.LastUpdate)
	if err != nil {
		http.Error(w, "no viewport subscribed; call update_viewport first", http.StatusBadRequest)
		return
	}

	snap, err := wire.LoadSnapshot(s.db, v)
	if err != nil {
		s.log.Error.Printf("snapshot: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	useLZ4 := strings.Contains(r.Header.Get("Accept-Encoding"), "x-ownworld-lz4")
	body, err := wire.EncodeSnapshot(snap, useLZ4)
	if err != nil {
		s.log.Error.Printf("snapshot encode: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if useLZ4 {
		w.Header().Set("Content-Encoding", "x-ownworld-lz4")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
