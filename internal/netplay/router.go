package netplay

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries the dependencies NewRouter wires into routes,
// grounded in the teacher's internal/api/router.go RouterConfig
// dependency-injection shape (kept minimal: this relay has one real
// collaborator, the Session).
type RouterConfig struct {
	Session        *Session
	AllowedOrigins []string
	RateLimiter    *IPRateLimiter
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Demo relay: origin enforcement is the HTTP CORS middleware's job
	// for the plain routes; the WebSocket upgrade itself stays
	// permissive the way the teacher's CheckOrigin defers to
	// IsAllowedOrigin rather than gorilla's same-origin default.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewRouter builds the relay's HTTP handler. No listener is opened, so
// it is safe to use with httptest.NewServer. When cfg.RateLimiter is
// nil it builds a default IPRateLimiter, which starts that limiter's
// cleanup goroutine.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	origins := cfg.AllowedOrigins
	if origins == nil {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET"},
	}))

	limiter := cfg.RateLimiter
	if limiter == nil {
		limiter = NewIPRateLimiter(DefaultRateLimitConfig)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWS(w, r, cfg.Session, limiter)
	})

	return r
}

func handleWS(w http.ResponseWriter, r *http.Request, sess *Session, limiter *IPRateLimiter) {
	ip := ClientIP(r)
	if !limiter.Allow(ip) {
		recordRejected("rate_limit")
		http.Error(w, "too many connection attempts", http.StatusTooManyRequests)
		return
	}

	seatStr := r.URL.Query().Get("player")
	seat, err := strconv.Atoi(seatStr)
	if err != nil || (seat != 0 && seat != 1) {
		recordRejected("bad_player")
		http.Error(w, "player query param must be 0 or 1", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	sess.Attach(seat, conn)
	setWSConnections(sess.connCount())
}
