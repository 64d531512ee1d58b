package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/unrolled/render"

	"github.com/pfrederiksen/curling-standings/internal/board"
	"github.com/pfrederiksen/curling-standings/internal/calendar"
	"github.com/pfrederiksen/curling-standings/internal/logger"
)

const maxBodyBytes = 1 << 20

const (
	msgStandingsFailed = "Failed to fetch standings from World Curling."
	msgMessageRequired = "Message is required."
	msgInvalidBody     = "Invalid JSON body."
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type smackRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func standingsHandler(src Standings, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := src.Get(r.Context())
		if err != nil {
			if clientGone(r) {
				logger.Debug("client left before standings were ready", logger.Fields{"path": r.URL.Path})
				return
			}
			logger.Error("error fetching standings", nil, err)
			rnd.JSON(w, http.StatusInternalServerError, errorResponse{
				Error:  msgStandingsFailed,
				Detail: err.Error(),
			})
			return
		}
		rnd.JSON(w, http.StatusOK, snap)
	}
}

func calendarHandler(src Standings, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := src.Get(r.Context())
		if err != nil {
			if clientGone(r) {
				logger.Debug("client left before standings were ready", logger.Fields{"path": r.URL.Path})
				return
			}
			logger.Error("error fetching standings for calendar", nil, err)
			rnd.JSON(w, http.StatusInternalServerError, errorResponse{
				Error:  msgStandingsFailed,
				Detail: err.Error(),
			})
			return
		}

		stamp := time.Now().UTC()
		if snap.UpdatedAt != nil {
			stamp = *snap.UpdatedAt
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, calendar.GenerateICS(snap.Upcoming, "Olympic Curling - Upcoming Games", stamp))
	}
}

func listSmackHandler(b Board, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rnd.JSON(w, http.StatusOK, map[string]interface{}{
			"posts": b.List(),
		})
	}
}

func postSmackHandler(b Board, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req smackRequest
		if err := readJSON(w, r, &req); err != nil {
			rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidBody, Detail: err.Error()})
			return
		}

		post, err := b.Post(req.Name, req.Message)
		if err != nil {
			if errors.Is(err, board.ErrMessageRequired) {
				rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: msgMessageRequired})
				return
			}
			logger.Error("error saving smack post", nil, err)
			rnd.JSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to save post.", Detail: err.Error()})
			return
		}

		rnd.JSON(w, http.StatusCreated, map[string]interface{}{
			"post": post,
		})
	}
}

// metricsHandler reports the logger metrics plus cache and board state. It never
// triggers an upstream refresh.
func metricsHandler(src Standings, b Board, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := logger.GetMetricsSnapshot()

		cached := src.Peek()
		out["cache"] = map[string]interface{}{
			"populated": cached.Populated(),
			"updatedAt": cached.UpdatedAt,
		}
		out["board"] = map[string]interface{}{
			"posts":  len(b.List()),
			"nextId": b.NextID(),
		}

		rnd.JSON(w, http.StatusOK, out)
	}
}

// clientGone reports whether the request was cancelled by the client
func clientGone(r *http.Request) bool {
	return errors.Is(r.Context().Err(), context.Canceled)
}

// readJSON decodes a single JSON value from the body. An empty body decodes as {}.
func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}
