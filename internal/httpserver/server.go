// internal/httpserver/server.go
//
// HTTP host for the GeoQuiz core.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Quiz endpoints mounted under /quiz (see routes_quiz.go).
//   - Owning the live quiz.Session and cheat.Ledger and serializing access to them.
//
// Notes:
//   - The core is single-writer; every handler that touches it holds s.mu.
//   - Only the current question index leaves the process (suspend/resume).

package httpserver

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/geoquiz/internal/cheat"
	"github.com/robalobadob/geoquiz/internal/quiz"
	"github.com/robalobadob/geoquiz/internal/store"
)

// Options configures a Server.
type Options struct {
	Bank          []quiz.Question // question bank each new session starts from
	CheatTokens   int             // ledger budget for each new session
	Store         store.Store     // snapshot persistence
	Secret        []byte          // HMAC key for snapshot tokens
	SnapshotTTL   time.Duration   // snapshot token lifetime
	ClientOrigin  string          // allowed CORS origin
	Strict        bool            // panic on cheat precondition violations
	SecureCookies bool            // production cookie attributes
}

// Server bundles router, the live quiz session and the snapshot store.
type Server struct {
	r    *chi.Mux
	opts Options

	mu      sync.Mutex // guards session and ledger
	session *quiz.Session
	ledger  *cheat.Ledger
}

// New constructs a Server with a fresh session, installs middleware, and
// registers routes.
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("httpserver: nil snapshot store")
	}
	if opts.SnapshotTTL <= 0 {
		opts.SnapshotTTL = 24 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), opts: opts}
	if err := s.resetSession(); err != nil {
		return nil, err
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics (strict mode)
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"geoquiz-go","endpoints":["/health","GET /quiz","POST /quiz/{new,next,prev,answer,cheat,suspend,resume}","GET /quiz/summary"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountQuiz(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s, nil
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// resetSession replaces the live session and ledger with fresh ones.
// Callers other than New must hold s.mu.
func (s *Server) resetSession() error {
	sess, err := quiz.New(s.opts.Bank)
	if err != nil {
		return err
	}
	s.session = sess
	s.ledger = cheat.NewLedger(s.opts.CheatTokens)
	log.Info().
		Int("questions", sess.Len()).
		Int("tokens", s.ledger.TokensRemaining()).
		Msg("session created")
	return nil
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
