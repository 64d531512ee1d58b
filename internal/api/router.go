// Package api exposes the standings snapshot and the smack talk board over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/unrolled/render"

	"github.com/pfrederiksen/curling-standings/internal/board"
	"github.com/pfrederiksen/curling-standings/internal/standings"
)

// Standings is satisfied by *cache.Cache
type Standings interface {
	Get(ctx context.Context) (standings.Snapshot, error)
	Peek() standings.Snapshot
}

// Board is satisfied by *board.Store
type Board interface {
	List() []board.Post
	Post(name, message string) (board.Post, error)
	NextID() int
}

// Deps are the components the router serves
type Deps struct {
	Standings Standings
	Board     Board
	StaticDir string
}

func NewRouter(deps Deps) *chi.Mux {
	rnd := render.New()
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/standings", standingsHandler(deps.Standings, rnd))
		r.Get("/upcoming.ics", calendarHandler(deps.Standings, rnd))
		r.Get("/smack", listSmackHandler(deps.Board, rnd))
		r.Post("/smack", postSmackHandler(deps.Board, rnd))
		r.Get("/metrics", metricsHandler(deps.Standings, deps.Board, rnd))
	})

	if deps.StaticDir != "" {
		files := http.FileServer(http.Dir(deps.StaticDir))
		r.Get("/*", files.ServeHTTP)
		r.Head("/*", files.ServeHTTP)
	}

	return r
}
