package directory

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"ristkey/internal/crypto/keycodec"
	"ristkey/internal/domain"
)

// maxBody caps request bodies; a registration is well under 1 KiB.
const maxBody = 64 << 10

// Server serves the directory HTTP API over a RecordStore.
type Server struct {
	store  RecordStore
	apiKey string
	logger *log.Logger
	now    func() time.Time
}

// NewServer returns a server over store. A non-empty apiKey is required as a
// bearer token on registration. A nil logger uses the standard logger.
func NewServer(store RecordStore, apiKey string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: store, apiKey: apiKey, logger: logger, now: time.Now}
}

// Handler returns the routed handler wrapped with access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /keys", s.handleRegister)
	mux.HandleFunc("GET /keys/{username}", s.handleLookup)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	return s.accessLog(mux)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	if !s.authorized(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Username  string `json:"username"`
		PublicKey string `json:"public_key"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	username := req.Username
	if strings.TrimSpace(username) == "" {
		http.Error(w, "username required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(username) != username {
		http.Error(w, "username must not start or end with whitespace", http.StatusBadRequest)
		return
	}
	pub, err := keycodec.ParsePublicKey(req.PublicKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec := domain.KeyRecord{
		Username:     domain.Username(username),
		PublicKey:    pub,
		RegisteredAt: s.now().UTC().Unix(),
	}
	stored, created, err := s.store.Insert(rec)
	switch {
	case errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		s.logger.Printf("directory: insert %q: %v", username, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		s.logger.Printf("directory: registered %q", username)
	}
	writeJSON(w, status, stored)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	username := domain.Username(r.PathValue("username"))
	rec, ok, err := s.store.Lookup(username)
	if err != nil {
		s.logger.Printf("directory: lookup %q: %v", username, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) authorized(r *http.Request) bool {
	if s.apiKey == "" {
		return true
	}
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.apiKey)) == 1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		s.logger.Printf("%s %s %s %d %dB %s",
			r.Method, r.URL.Path, r.RemoteAddr, rec.status, rec.bytes, time.Since(start).Round(time.Microsecond))
	})
}
