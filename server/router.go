package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"skillrate/pkg/logger"
	"skillrate/rating"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func parseOutcome(s string) (rating.Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win":
		return rating.Win, nil
	case "loss":
		return rating.Loss, nil
	case "draw":
		return rating.Draw, nil
	}
	return 0, rating.ErrInvalidOutcome
}

// Router wires the JSON API over the in-memory registry.
func Router(reg *Registry) http.Handler {
	r := chi.NewRouter()

	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	// Register a player. Omitted numbers mean the standard defaults.
	r.Post("/api/players", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Name       string  `json:"name"`
			Rating     float64 `json:"rating"`
			Deviation  float64 `json:"deviation"`
			Volatility float64 `json:"volatility"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			writeError(w, http.StatusBadRequest, errors.New("name is required"))
			return
		}
		pv, err := reg.Register(body.Name, body.Rating, body.Deviation, body.Volatility)
		if err != nil {
			writeError(w, http.StatusConflict, err)
			return
		}
		logger.Info("player registered", "name", pv.Name, "rating", pv.Rating)
		writeJSON(w, http.StatusCreated, pv)
	})

	r.Get("/api/players/{name}", func(w http.ResponseWriter, req *http.Request) {
		pv, err := reg.Get(chi.URLParam(req, "name"))
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, pv)
	})

	// Record a game for both sides; result is from home's point of view.
	r.Post("/api/results", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Home   string `json:"home"`
			Away   string `json:"away"`
			Result string `json:"result"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		outcome, err := parseOutcome(body.Result)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := reg.RecordGame(strings.TrimSpace(body.Home), strings.TrimSpace(body.Away), outcome); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, errUnknownPlayer) {
				status = http.StatusNotFound
			}
			writeError(w, status, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	// Close the current rating period: rate everyone's pending results.
	r.Post("/api/period/close", func(w http.ResponseWriter, req *http.Request) {
		updated, failed := reg.ClosePeriod()
		if len(failed) > 0 {
			logger.Warn("period closed with failures", "updated", updated, "failed", len(failed))
		} else {
			logger.Info("period closed", "updated", updated)
		}
		writeJSON(w, http.StatusOK, map[string]any{"updated": updated, "failed": failed})
	})

	r.Get("/api/leaderboard", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, reg.Leaderboard())
	})

	return r
}
