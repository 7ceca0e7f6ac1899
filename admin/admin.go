// Package admin exposes a bridge's configuration surface over HTTP.
//
//	GET /thresholds        resolved thresholds and raw settings
//	GET /settings          raw value of every setting
//	PUT /settings/{name}   set one setting, body is the raw value
//	GET /classify/{level}  tier of a level name or integer
//	GET /stats             forwarding statistics
package admin

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/philipp01105/nlogbridge/bridge"
	"github.com/philipp01105/nlogbridge/severity"
)

// maxBody bounds PUT request bodies
const maxBody = 4 << 10

// ThresholdsResponse is returned by GET /thresholds
type ThresholdsResponse struct {
	Thresholds        Thresholds      `json:"thresholds"`
	Settings          bridge.Settings `json:"settings"`
	EndSessionOnClose bool            `json:"endSessionOnClose"`
}

// Thresholds mirrors severity.Thresholds for JSON
type Thresholds struct {
	Critical int `json:"critical"`
	Error    int `json:"error"`
	Warn     int `json:"warn"`
	Info     int `json:"info"`
	Verbose  int `json:"verbose"`
}

func thresholds(t severity.Thresholds) Thresholds {
	return Thresholds{
		Critical: t.Critical,
		Error:    t.Error,
		Warn:     t.Warn,
		Info:     t.Info,
		Verbose:  t.Verbose,
	}
}

// SettingResponse is returned by PUT /settings/{name}
type SettingResponse struct {
	Name       string     `json:"name"`
	Value      string     `json:"value"`
	Thresholds Thresholds `json:"thresholds"`
}

// ClassifyResponse is returned by GET /classify/{level}
type ClassifyResponse struct {
	Level string `json:"level"`
	Value int    `json:"value"`
	Tier  string `json:"tier"`
}

// StatsResponse is returned by GET /stats
type StatsResponse struct {
	Forwarded  map[string]uint64 `json:"forwarded"`
	Dropped    map[string]uint64 `json:"dropped"`
	Suppressed uint64            `json:"suppressed"`
	Blocked    uint64            `json:"blocked"`
	Failed     uint64            `json:"failed"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// NewRouter returns the admin routes for h. log may be nil.
func NewRouter(h *bridge.Handler, log *zap.Logger) *mux.Router {
	if log == nil {
		log = zap.NewNop()
	}
	router := mux.NewRouter()
	router.HandleFunc("/thresholds", ThresholdsHandler(h)).Methods(http.MethodGet)
	router.HandleFunc("/settings", SettingsHandler(h)).Methods(http.MethodGet)
	router.HandleFunc("/settings/{name}", SetSettingHandler(h, log)).Methods(http.MethodPut)
	router.HandleFunc("/classify/{level}", ClassifyHandler(h)).Methods(http.MethodGet)
	router.HandleFunc("/stats", StatsHandler(h)).Methods(http.MethodGet)
	return router
}

// ThresholdsHandler serves the resolved thresholds and raw settings
func ThresholdsHandler(h *bridge.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ThresholdsResponse{
			Thresholds:        thresholds(h.Thresholds()),
			Settings:          h.Settings(),
			EndSessionOnClose: h.EndSessionOnClose(),
		})
	}
}

// SettingsHandler serves the raw settings by canonical name
func SettingsHandler(h *bridge.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make(map[string]string, len(bridge.SettingNames()))
		for _, name := range bridge.SettingNames() {
			v, err := h.Get(name)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error(), "")
				return
			}
			out[name] = v
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// SetSettingHandler updates one setting from the raw request body
func SetSettingHandler(h *bridge.Handler, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		canonical, ok := bridge.CanonicalSetting(name)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown setting "+name, "")
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		value := strings.TrimRight(string(body), "\r\n")

		if err := h.Set(canonical, value); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, bridge.ErrUnknownSetting) {
				status = http.StatusNotFound
			}
			writeError(w, status, err.Error(), "")
			return
		}
		log.Info("setting changed",
			zap.String("name", canonical),
			zap.String("value", value),
			zap.String("remote", r.RemoteAddr),
		)

		current, _ := h.Get(canonical)
		writeJSON(w, http.StatusOK, SettingResponse{
			Name:       canonical,
			Value:      current,
			Thresholds: thresholds(h.Thresholds()),
		})
	}
}

// ClassifyHandler reports the tier of a level name or integer
func ClassifyHandler(h *bridge.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := mux.Vars(r)["level"]
		levels := h.Levels()

		level, ok := levels.Parse(raw)
		if !ok {
			suggestion, _ := levels.Suggest(raw)
			writeError(w, http.StatusBadRequest, "unknown level "+raw, suggestion)
			return
		}
		writeJSON(w, http.StatusOK, ClassifyResponse{
			Level: levels.Name(level),
			Value: int(level),
			Tier:  h.Classify(level).String(),
		})
	}
}

// StatsHandler serves the bridge statistics snapshot
func StatsHandler(h *bridge.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := h.Stats().GetSnapshot()
		resp := StatsResponse{
			Forwarded:  make(map[string]uint64, len(snap.Forwarded)),
			Dropped:    make(map[string]uint64, len(snap.Dropped)),
			Suppressed: snap.Suppressed,
			Blocked:    snap.Blocked,
			Failed:     snap.Failed,
		}
		for t, n := range snap.Forwarded {
			resp.Forwarded[t.String()] = n
		}
		for t, n := range snap.Dropped {
			resp.Dropped[t.String()] = n
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, suggestion string) {
	writeJSON(w, status, errorResponse{Error: msg, Suggestion: suggestion})
}
