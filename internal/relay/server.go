package relay

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"parley/internal/domain"
)

// Server is the store-and-forward relay: a key directory plus one envelope
// mailbox per user. All state is held in memory and lost on process exit.
// The relay never sees plaintext or secret keys.
type Server struct {
	log      zerolog.Logger
	metrics  *Metrics
	limiter  *mapLimiter
	queueCap int

	mu     sync.RWMutex
	keys   map[domain.Username]domain.Profile
	queues map[domain.Username][]domain.Envelope
}

// NewServer builds a relay server from cfg. Metrics must come from
// NewMetrics; a zero QueueCap falls back to the default.
func NewServer(cfg Config, log zerolog.Logger, metrics *Metrics) *Server {
	if cfg.QueueCap <= 0 {
		cfg.QueueCap = DefaultConfig().QueueCap
	}
	return &Server{
		log:      log,
		metrics:  metrics,
		limiter:  newMapLimiter(cfg.RPS, cfg.Burst, 10*time.Minute),
		queueCap: cfg.QueueCap,
		keys:     make(map[domain.Username]domain.Profile),
		queues:   make(map[domain.Username][]domain.Envelope),
	}
}

// Handler returns the relay's route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/register", s.wrap("register", s.handleRegister))
	mux.HandleFunc("GET /v1/keys/{username}", s.wrap("lookup", s.handleLookup))
	mux.HandleFunc("POST /v1/messages/{username}", s.wrap("push", s.handlePush))
	mux.HandleFunc("GET /v1/messages/{username}", s.wrap("fetch", s.handleFetch))
	mux.HandleFunc("POST /v1/messages/{username}/ack", s.wrap("ack", s.handleAck))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// wrap applies the per-client rate limit, records the request metric and
// writes one access log line per request.
func (s *Server) wrap(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if !s.limiter.allow(clientKey(r), start) {
			s.metrics.RateLimited.Inc()
			s.log.Warn().
				Str("route", route).
				Str("remote", r.RemoteAddr).
				Msg("rate limited")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h(sw, r)

		elapsed := time.Since(start)
		s.metrics.RequestSeconds.WithLabelValues(route).Observe(elapsed.Seconds())
		s.log.Info().
			Str("route", route).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("elapsed", elapsed).
			Str("remote", r.RemoteAddr).
			Msg("request")
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var p domain.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if p.Username == "" || p.Key == (domain.PublicKey{}) {
		http.Error(w, "username and public key required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	existing, taken := s.keys[p.Username]
	if taken && existing.Key != p.Key {
		s.mu.Unlock()
		http.Error(w, "username already registered", http.StatusConflict)
		return
	}
	s.keys[p.Username] = p
	s.mu.Unlock()

	s.metrics.Registrations.Inc()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	username := domain.Username(r.PathValue("username"))

	s.mu.RLock()
	p, ok := s.keys[username]
	s.mu.RUnlock()

	if !ok {
		s.metrics.Lookups.WithLabelValues("miss").Inc()
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	s.metrics.Lookups.WithLabelValues("ok").Inc()
	_ = json.NewEncoder(w).Encode(p)
}

func (s *Server) handlePush(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	username := domain.Username(r.PathValue("username"))

	var env domain.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if env.To != username {
		http.Error(w, "envelope not addressed to this mailbox", http.StatusBadRequest)
		return
	}
	if env.From == "" || len(env.Ciphertext) == 0 {
		http.Error(w, "sender and ciphertext required", http.StatusBadRequest)
		return
	}
	if env.ID == "" {
		env.ID = domain.MessageID(uuid.NewString())
	}
	if env.SentAt == 0 {
		env.SentAt = time.Now().Unix()
	}

	s.mu.Lock()
	if len(s.queues[username]) >= s.queueCap {
		s.mu.Unlock()
		http.Error(w, "mailbox full", http.StatusServiceUnavailable)
		return
	}
	s.queues[username] = append(s.queues[username], env)
	s.mu.Unlock()

	s.metrics.Pushed.Inc()
	s.metrics.QueueDepth.Inc()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	username := domain.Username(r.PathValue("username"))

	max := 0
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "bad max", http.StatusBadRequest)
			return
		}
		max = n
	}

	s.mu.RLock()
	q := s.queues[username]
	if max > 0 && max < len(q) {
		q = q[:max]
	}
	out := make([]domain.Envelope, len(q))
	copy(out, q)
	s.mu.RUnlock()

	s.metrics.Fetched.Add(float64(len(out)))
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleAck(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	username := domain.Username(r.PathValue("username"))

	var req ackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	drop := make(map[domain.MessageID]bool, len(req.IDs))
	for _, id := range req.IDs {
		drop[id] = true
	}

	s.mu.Lock()
	q := s.queues[username]
	kept := q[:0]
	for _, env := range q {
		if !drop[env.ID] {
			kept = append(kept, env)
		}
	}
	removed := len(q) - len(kept)
	s.queues[username] = kept
	s.mu.Unlock()

	s.metrics.Acked.Add(float64(removed))
	s.metrics.QueueDepth.Sub(float64(removed))
	w.WriteHeader(http.StatusOK)
}

// clientKey buckets requests by remote host for rate limiting.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// statusWriter remembers the status code for the access log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
