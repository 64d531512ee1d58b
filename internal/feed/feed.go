// Package feed fans out the upstream fetches for both divisions and combines them
// into a single standings snapshot.
//
// Upstream failures never escape this package: each division's fetch is contained,
// logged, and reduced to an empty list so one bad page cannot hide the other.
package feed

import (
	"context"
	"fmt"
	"sort"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/curling-standings/internal/logger"
	"github.com/pfrederiksen/curling-standings/internal/standings"
)

// Source fetches one division's pages. Implemented by *scraper.Scraper.
type Source interface {
	FetchStandings(ctx context.Context, div standings.Division) ([]standings.Row, error)
	FetchSchedule(ctx context.Context, div standings.Division) ([]standings.Game, error)
}

// Feed builds snapshots from a Source
type Feed struct {
	src   Source
	clock clockwork.Clock
}

// New creates a Feed. A nil clock means the real clock.
func New(src Source, clock clockwork.Clock) *Feed {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Feed{src: src, clock: clock}
}

// outcome is one division's fetch result; unavailable marks a contained failure.
type outcome[T any] struct {
	items       []T
	unavailable bool
}

func (o outcome[T]) orEmpty() []T {
	if o.unavailable || o.items == nil {
		return make([]T, 0)
	}
	return o.items
}

func contain[T any](div standings.Division, what string, items []T, err error) outcome[T] {
	if err != nil {
		logger.IncrCounter("upstream.errors")
		logger.Error("upstream fetch failed", logger.Fields{
			"division": div.Label,
			"event_id": div.ID,
			"page":     what,
		}, err)
		return outcome[T]{unavailable: true}
	}
	return outcome[T]{items: items}
}

// Standings returns one division's standings, or an empty list if the fetch failed.
func (f *Feed) Standings(ctx context.Context, div standings.Division) []standings.Row {
	rows, err := f.src.FetchStandings(ctx, div)
	return contain(div, "standings", rows, err).orEmpty()
}

// Upcoming fetches both divisions' games concurrently and returns the games that started
// no more than standings.PastStartTolerance ago, earliest first. Fetch failures are
// contained; the error is only set if a fetch panicked.
func (f *Feed) Upcoming(ctx context.Context) ([]standings.Game, error) {
	perDivision := make([][]standings.Game, len(standings.Divisions))

	var g errgroup.Group
	for i, div := range standings.Divisions {
		i, div := i, div
		g.Go(guard(func() {
			games, err := f.src.FetchSchedule(ctx, div)
			perDivision[i] = contain(div, "games", games, err).orEmpty()
		}))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := f.clock.Now()
	upcoming := make([]standings.Game, 0)
	for _, games := range perDivision {
		for _, game := range games {
			if game.IsUpcoming(now) {
				upcoming = append(upcoming, game)
			}
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartTime.Before(upcoming[j].StartTime)
	})
	return upcoming, nil
}

// Refresh fetches men's standings, women's standings and the upcoming schedule
// concurrently and waits for all three before building the snapshot. It only fails
// on unexpected errors such as a canceled context or a panic in a fetch.
func (f *Feed) Refresh(ctx context.Context) (standings.Snapshot, error) {
	var men, women []standings.Row
	var upcoming []standings.Game

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(guard(func() {
		men = f.Standings(gCtx, standings.Men)
	}))
	g.Go(guard(func() {
		women = f.Standings(gCtx, standings.Women)
	}))
	g.Go(func() (err error) {
		upcoming, err = f.Upcoming(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return standings.Snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return standings.Snapshot{}, fmt.Errorf("refreshing standings: %w", err)
	}

	updatedAt := f.clock.Now().UTC()
	return standings.Snapshot{
		Men:       men,
		Women:     women,
		Upcoming:  upcoming,
		UpdatedAt: &updatedAt,
	}, nil
}

// guard turns a panic in fn into an error
func guard(fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("fetch panicked: %v", r)
			}
		}()
		fn()
		return nil
	}
}
