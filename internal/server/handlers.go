package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"

	"GoMatch/internal/automaton"
)

// Handler holds HTTP handlers for the GoMatch API.
type Handler struct {
	cache     *PatternCache
	metrics   *Metrics
	maxInputs int
	logger    *slog.Logger
}

// NewHandler creates a Handler backed by cache. maxInputs bounds the inputs
// of a single match request; metrics may be nil.
func NewHandler(cache *PatternCache, metrics *Metrics, maxInputs int, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{cache: cache, metrics: metrics, maxInputs: maxInputs, logger: logger}
}

// RegisterRoutes registers all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /compile", h.handleCompile)
	mux.HandleFunc("POST /match", h.handleMatch)
	mux.HandleFunc("POST /dump", h.handleDump)
	mux.HandleFunc("GET /patterns", h.handlePatterns)
}

type matchResult struct {
	Input   string `json:"input"`
	Matched bool   `json:"matched"`
}

func (h *Handler) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pattern string `json:"pattern"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fsm, ok := h.compile(w, r, req.Pattern)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pattern": fsm.Pattern(),
		"states":  fsm.NumStates(),
	})
}

func (h *Handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pattern string   `json:"pattern"`
		Inputs  []string `json:"inputs"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Inputs) > h.maxInputs {
		writeError(w, http.StatusBadRequest,
			"too many inputs: "+strconv.Itoa(len(req.Inputs))+" > "+strconv.Itoa(h.maxInputs))
		return
	}

	fsm, ok := h.compile(w, r, req.Pattern)
	if !ok {
		return
	}

	results := make([]matchResult, len(req.Inputs))
	for i, in := range req.Inputs {
		matched := fsm.MatchString(in)
		if h.metrics != nil {
			h.metrics.observeMatch(matched)
		}
		results[i] = matchResult{Input: in, Matched: matched}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pattern": fsm.Pattern(),
		"states":  fsm.NumStates(),
		"results": results,
	})
}

func (h *Handler) handleDump(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pattern   string `json:"pattern"`
		OmitEmpty bool   `json:"omit_empty"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fsm, ok := h.compile(w, r, req.Pattern)
	if !ok {
		return
	}

	// Render fully before writing so a failure can still become a 500.
	var buf bytes.Buffer
	if err := fsm.Dump(&buf, automaton.DumpOptions{OmitEmpty: req.OmitEmpty}); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handlePatterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cache.Stats())
}

// compile fetches pattern from the cache, writing an error response and
// returning false on failure.
func (h *Handler) compile(w http.ResponseWriter, r *http.Request, pattern string) (*automaton.FSM, bool) {
	fsm, err := h.cache.Get(pattern)
	if err == nil {
		return fsm, true
	}
	if errors.HasAssertionFailure(err) {
		h.logger.Error("internal compiler error",
			"request_id", RequestID(r.Context()),
			"pattern", pattern,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal compiler error")
		return nil, false
	}
	writeError(w, http.StatusBadRequest, err.Error())
	return nil, false
}
