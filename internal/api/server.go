package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wmannis/lexifer/internal/domain"
	"github.com/wmannis/lexifer/internal/prose"
	"github.com/wmannis/lexifer/internal/soundsys"
	"github.com/wmannis/lexifer/internal/store"
)

const (
	defaultWords = 20
	maxWords     = 5000
	maxSentences = 200
)

// Server exposes a sound system and the lexicon store over HTTP
type Server struct {
	// mu serializes access to sys, which is not safe for concurrent use
	mu        sync.Mutex
	sys       *soundsys.System
	last      soundsys.Stats
	store     *store.Store
	source    string
	addr      string
	wrapWidth int
	log       logr.Logger
	metrics   *metrics
}

// New creates a new API server
func New(sys *soundsys.System, s *store.Store, source, addr string, wrapWidth int, log logr.Logger) *Server {
	return &Server{
		sys:       sys,
		store:     s,
		source:    source,
		addr:      addr,
		wrapWidth: wrapWidth,
		log:       log,
		metrics:   newMetrics(),
	}
}

// Handler returns the routed HTTP handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Generation
	mux.HandleFunc("GET /words", s.words)
	mux.HandleFunc("GET /paragraph", s.paragraph)

	// Lexicons
	mux.HandleFunc("GET /lexicons", s.listLexicons)
	mux.HandleFunc("POST /lexicons", s.saveLexicon)
	mux.HandleFunc("GET /lexicons/{name}", s.getLexicon)

	mux.HandleFunc("GET /health", s.health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	return withCORS(mux)
}

// Run starts the HTTP server
func (s *Server) Run() error {
	s.log.Info("starting server", "addr", s.addr, "source", s.source)
	return http.ListenAndServe(s.addr, s.Handler())
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// generate runs fn with exclusive access to the sound system and records
// the work it did
func (s *Server) generate(endpoint string, fn func(sys *soundsys.System) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn(s.sys)

	now := s.sys.Stats()
	s.metrics.observe(endpoint, now, s.last, err)
	s.last = now
	return err
}

func (s *Server) words(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "n", defaultWords, maxWords)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	unsorted := r.URL.Query().Get("unsorted") == "true"

	var words []string
	err = s.generate("words", func(sys *soundsys.System) error {
		var err error
		words, err = sys.Generate(n, unsorted)
		return err
	})
	if err != nil {
		s.generationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domain.WordList{
		Source: s.source,
		Sorted: !unsorted,
		Words:  words,
	})
}

func (s *Server) paragraph(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "sentences", prose.DefaultSentences, maxSentences)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var text string
	err = s.generate("paragraph", func(sys *soundsys.System) error {
		var err error
		text, err = prose.Paragraph(sys, n, s.wrapWidth, sys.Rand())
		return err
	})
	if err != nil {
		s.generationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sentences": n,
		"text":      text,
	})
}

// SaveLexiconRequest is the request body for generating into a lexicon
type SaveLexiconRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SaveLexiconResponse reports what was saved
type SaveLexiconResponse struct {
	Lexicon *domain.Lexicon `json:"lexicon"`
	Added   int             `json:"added"`
}

func (s *Server) saveLexicon(w http.ResponseWriter, r *http.Request) {
	var req SaveLexiconRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Count <= 0 || req.Count > maxWords {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("count must be between 1 and %d", maxWords))
		return
	}

	var words []string
	err := s.generate("lexicons", func(sys *soundsys.System) error {
		var err error
		words, err = sys.Generate(req.Count, false)
		return err
	})
	if err != nil {
		s.generationError(w, err)
		return
	}

	lex, added, err := s.store.SaveWords(req.Name, s.source, words)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, SaveLexiconResponse{Lexicon: lex, Added: added})
}

func (s *Server) getLexicon(w http.ResponseWriter, r *http.Request) {
	lex, err := s.store.GetLexicon(r.PathValue("name"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "lexicon not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, lex)
}

func (s *Server) listLexicons(w http.ResponseWriter, r *http.Request) {
	lexicons, err := s.store.ListLexicons()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lexicons": lexicons,
	})
}

// generationError maps engine failures to responses. An exhausted rule
// set is the client's problem; anything else is a broken definition.
func (s *Server) generationError(w http.ResponseWriter, err error) {
	var exhausted *soundsys.ExhaustedError
	if errors.As(err, &exhausted) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.log.Error(err, "generation failed")
	writeError(w, http.StatusInternalServerError, err.Error())
}

func intParam(r *http.Request, name string, def, limit int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > limit {
		return 0, fmt.Errorf("%s must be between 1 and %d", name, limit)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
