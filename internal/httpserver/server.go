// internal/httpserver/server.go
//
// HTTP server wiring for the games backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Hangman endpoints: mounted under /hangman.
//   - Memory endpoints: mounted under /memory.
//   - Best scores for the calling browser: GET /scores/{game}.
//   - Sweeping idle games out of the in-memory session stores.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled so the browser cookie is sent.
//   - Every request is tagged with a browser ID (see browser.go); scores and
//     games are scoped to it.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ethos-games/internal/kv"
	"github.com/robalobadob/ethos-games/internal/memory"
	"github.com/robalobadob/ethos-games/internal/metrics"
	"github.com/robalobadob/ethos-games/internal/scores"
	"github.com/robalobadob/ethos-games/internal/store"
	"github.com/robalobadob/ethos-games/internal/words"
)

// Options configures a Server.
type Options struct {
	ClientOrigin  string
	BrowserSecret string
	DailySalt     string
	Timing        memory.Timing
	SessionTTL    time.Duration
	TickInterval  time.Duration    // memory clock period; one second when zero
	Now           func() time.Time // defaults to time.Now
	Logger        *zerolog.Logger  // defaults to the global logger
}

// Server bundles the router, session stores and the score KV.
type Server struct {
	r       *chi.Mux
	lists   *words.Lists
	kv      kv.KV
	hangman store.Store[*hangmanSession]
	memory  store.Store[*memorySession]
	opts    Options
	log     zerolog.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(lists *words.Lists, scoreKV kv.KV, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 2 * time.Hour
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	s := &Server{
		r:       chi.NewRouter(),
		lists:   lists,
		kv:      scoreKV,
		hangman: store.NewMemoryStore[*hangmanSession](),
		memory:  store.NewMemoryStore[*memorySession](),
		opts:    opts,
		log:     logger,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(s.corsFromOrigin)
	s.r.Use(jsonContentType)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		entries, tokens := s.lists.Stats()
		writeJSON(w, http.StatusOK, map[string]any{
			"service":    "ethos-games",
			"dictionary": entries,
			"faces":      tokens,
			"endpoints":  []string{"/health", "/metrics", "POST /hangman/new", "POST /memory/new", "GET /scores/{game}"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Handle("/metrics", promhttp.Handler())

	// Game + score endpoints are scoped to the calling browser.
	s.r.Group(func(r chi.Router) {
		r.Use(s.withBrowser)
		s.mountHangman(r)
		s.mountMemory(r)
		r.Get("/scores/{game}", s.handleScores)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	go s.sweepLoop(ctx)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// sweepLoop evicts idle games once a minute.
func (s *Server) sweepLoop(ctx context.Context) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweep()
		}
	}
}

// sweep drops games idle for longer than SessionTTL and stops their timers.
func (s *Server) sweep() {
	cutoff := s.opts.Now().Add(-s.opts.SessionTTL)
	hm := s.hangman.Sweep(cutoff)
	mm := s.memory.Sweep(cutoff)
	for _, ms := range mm {
		ms.game.Close()
	}
	metrics.ActiveSessions.WithLabelValues(gameHangman).Set(float64(s.hangman.Len()))
	metrics.ActiveSessions.WithLabelValues(gameMemory).Set(float64(s.memory.Len()))
	if len(hm)+len(mm) > 0 {
		s.log.Info().Int("hangman", len(hm)).Int("memory", len(mm)).Msg("evicted idle games")
	}
}

// scoresFor returns the score store scoped to one browser.
func (s *Server) scoresFor(browser string) *scores.Store {
	return scores.New(kv.Prefixed(s.kv, browser), s.log)
}

// handleScores returns the calling browser's bests for one game.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	v, ok := scores.Lookup(chi.URLParam(r, "game"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_game")
		return
	}
	writeJSON(w, http.StatusOK, s.scoresFor(browserID(r)).Read(r.Context(), v))
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromOrigin enables credentialed CORS for the configured client origin.
func (s *Server) corsFromOrigin(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin != "" {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
