// internal/httpserver/server.go
//
// HTTP adapter for the browser page.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Session endpoints under /session: start/resume today's session, submit,
//     shuffle, progress, summary.
//
// Notes:
//   - The page holds a signed session token (cookie or bearer header). The token
//     names the session and the date it was started; a token from another day
//     is refused so the page starts a fresh session, exactly like a reload on a
//     new day.
//   - Sessions live in the Store only; nothing is written to disk.
//   - Every mutation goes through Store.Update, so actions are atomic.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rooted/internal/daily"
	"github.com/robalobadob/rooted/internal/game"
	"github.com/robalobadob/rooted/internal/puzzle"
	"github.com/robalobadob/rooted/internal/store"
)

// Options configures a Server.
type Options struct {
	Puzzles       []puzzle.Puzzle  // rotation; must be non-empty
	Secret        string           // HMAC key for session tokens
	ClientOrigin  string           // CORS origin allowed to send credentials
	SecureCookies bool             // Secure + SameSite=None cookies (production)
	RequireRoot   bool             // words must contain the root
	Now           func() time.Time // clock; defaults to time.Now
}

// Server bundles router, session store and the puzzle rotation.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options

	mu      sync.Mutex // guards lastKey
	lastKey string     // date key of the most recent session start
}

// New constructs a Server, installs middleware, and registers routes.
// It fails with a *game.ConfigError when the rotation is empty.
func New(st store.Store, opts Options) (*Server, error) {
	if len(opts.Puzzles) == 0 {
		return nil, &game.ConfigError{Err: game.ErrNoPuzzles}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"rooted","endpoints":["/health","POST /session/new","GET /session","POST /session/submit","POST /session/shuffle","GET /session/progress","GET /session/summary"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "sessions": s.store.Len()})
	})

	s.r.Route("/session", func(r chi.Router) {
		r.Post("/new", s.handleNew)
		r.Get("/", s.handleView)
		r.Post("/submit", s.handleSubmit)
		r.Post("/shuffle", s.handleShuffle)
		r.Get("/progress", s.handleProgress)
		r.Get("/summary", s.handleSummary)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s, nil
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ SESSION ------------------------------------

// sessionView is the full state the page needs to render the board.
type sessionView struct {
	Token     string                `json:"token,omitempty"`
	ExpiresAt *time.Time            `json:"expiresAt,omitempty"`
	SessionID string                `json:"sessionId"`
	Date      string                `json:"date"`
	Root      string                `json:"root"`
	Extras    string                `json:"extras"` // display order
	Progress  []game.LengthProgress `json:"progress"`
	Summary   game.Summary          `json:"summary"`
	Found     []string              `json:"found"` // alphabetical
	Completed bool                  `json:"completed"`
}

func viewOf(sess *game.Session, date, extras string) sessionView {
	return sessionView{
		SessionID: sess.ID,
		Date:      date,
		Root:      sess.Puzzle().Root,
		Extras:    extras,
		Progress:  sess.Progress(),
		Summary:   sess.Summary(),
		Found:     sess.FoundSorted(),
		Completed: sess.Completed(),
	}
}

// handleNew resumes the caller's session for today, or starts a new one.
// A token from an earlier day is discarded together with its session.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	now := s.opts.Now()
	date := daily.DateKey(now)
	s.pruneOnRollover(r, date)

	if claims, err := s.parseToken(bearerOrCookie(r)); err == nil {
		if claims.Date == date {
			var view sessionView
			err := s.store.Update(r.Context(), claims.SID, func(sess *game.Session) error {
				view = viewOf(sess, date, string(sess.ShuffleExtras()))
				return nil
			})
			if err == nil {
				_ = json.NewEncoder(w).Encode(view)
				return
			}
		} else {
			_ = s.store.Delete(r.Context(), claims.SID)
		}
	}

	sess, err := game.Start(s.opts.Puzzles, daily.DayIndex(now), game.WithRootCheck(s.opts.RequireRoot))
	if err != nil {
		log.Error().Err(err).Msg("start session")
		writeError(w, http.StatusInternalServerError, "config_error")
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signToken(sess.ID, date, now)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)

	log.Info().
		Str("sessionId", sess.ID).
		Str("date", date).
		Str("root", sess.Puzzle().Root).
		Msg("session started")

	view := viewOf(sess, date, string(sess.ShuffleExtras()))
	view.Token = tok
	view.ExpiresAt = &exp
	_ = json.NewEncoder(w).Encode(view)
}

// handleView returns the board with extras in puzzle order.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *game.Session, date string) any {
		return viewOf(sess, date, sess.Puzzle().Extras)
	})
}

// submitReq is the request payload for /session/submit.
type submitReq struct {
	Word string `json:"word"`
}

// submitRes is the response payload for /session/submit.
type submitRes struct {
	game.Result
	Message string       `json:"message"`
	Summary game.Summary `json:"summary"`
}

// handleSubmit validates a word against the caller's session.
// Rejections are 200 responses; the kind tells the page what to show.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.withSession(w, r, func(sess *game.Session, date string) any {
		res := sess.Submit(req.Word)
		ev := log.Debug()
		if res.Accepted() {
			ev = log.Info()
		}
		ev.Str("sessionId", sess.ID).
			Str("word", res.Word).
			Str("kind", string(res.Kind)).
			Bool("lengthCompleted", res.LengthCompleted).
			Msg("word submitted")
		return submitRes{Result: res, Message: res.Message(), Summary: sess.Summary()}
	})
}

// shuffleRes is returned by /session/shuffle.
type shuffleRes struct {
	Extras string `json:"extras"`
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *game.Session, _ string) any {
		return shuffleRes{Extras: string(sess.ShuffleExtras())}
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *game.Session, _ string) any {
		return sess.Progress()
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *game.Session, _ string) any {
		return sess.Summary()
	})
}

// withSession resolves the caller's session for today and runs fn on it
// under the store lock, encoding whatever fn returns.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*game.Session, string) any) {
	claims, err := s.parseToken(bearerOrCookie(r))
	if err != nil {
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	date := daily.DateKey(s.opts.Now())
	if claims.Date != date {
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	var out any
	err = s.store.Update(r.Context(), claims.SID, func(sess *game.Session) error {
		out = fn(sess, date)
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("sessionId", claims.SID).Msg("session update")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

// pruneOnRollover drops every session from earlier days the first time a
// session is requested on a new date.
func (s *Server) pruneOnRollover(r *http.Request, date string) {
	s.mu.Lock()
	changed := s.lastKey != "" && s.lastKey != date
	s.lastKey = date
	s.mu.Unlock()
	if !changed {
		return
	}
	today := daily.DayIndex(s.opts.Now())
	n := s.store.Prune(r.Context(), func(sess *game.Session) bool { return sess.Day == today })
	log.Info().Str("date", date).Int("dropped", n).Msg("daily rollover")
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
