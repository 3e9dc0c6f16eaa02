// Package settings serves the user settings consumed by the log
// visualisation frontend: GET /get_settings and POST /update_settings.
package settings

import (
	"encoding/json"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
)

// Settings is the persisted structure. Visualization keys are free-form
// since the frontend owns them.
type Settings struct {
	Logging       map[string]any `json:"logging"`
	Visualization map[string]any `json:"visualization"`
}

func defaultSettings() Settings {
	return Settings{
		Logging: map[string]any{"log_interval": 60},
		Visualization: map[string]any{
			"time_range":       "1h",
			"auto_refresh":     true,
			"refresh_interval": 60000,
		},
	}
}

// Handler persists settings updates to a JSON file.
type Handler struct {
	path string
	mu   sync.Mutex
}

// NewHandler creates a Handler storing settings at path.
func NewHandler(path string) *Handler {
	return &Handler{path: path}
}

// ServeHTTP routes the two settings endpoints.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/get_settings":
		h.get(w)
	case r.Method == http.MethodPost && r.URL.Path == "/update_settings":
		h.update(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) get(w http.ResponseWriter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.load()
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	normalized, _ := normalizeKeys(patch).(map[string]any)

	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.load()
	for k, v := range normalized {
		s.Visualization[k] = v
	}
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if err := os.WriteFile(h.path, data, 0644); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *Handler) load() Settings {
	s := defaultSettings()
	data, err := os.ReadFile(h.path)
	if err != nil {
		return s
	}
	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		return s
	}
	if loaded.Logging != nil {
		s.Logging = loaded.Logging
	}
	if loaded.Visualization != nil {
		s.Visualization = loaded.Visualization
	}
	return s
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// normalizeKeys converts camelCase map keys to snake_case recursively,
// so frontend payloads match the persisted schema.
func normalizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			snake := strings.ToLower(camelBoundary.ReplaceAllString(k, "${1}_${2}"))
			out[snake] = normalizeKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeKeys(val)
		}
		return out
	default:
		return v
	}
}
