package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/curling-standings/internal/standings"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortNone    SortOrder = ""
	SortByWins  SortOrder = "wins"
	SortByTeam  SortOrder = "team"
	SortByGames SortOrder = "games"
)

// Valid reports whether the order is one the standings command accepts
func (s SortOrder) Valid() bool {
	switch s {
	case SortNone, SortByWins, SortByTeam, SortByGames:
		return true
	}
	return false
}

// sortRows reorders rows in place. SortNone keeps the site's order.
func sortRows(rows []standings.Row, order SortOrder) {
	switch order {
	case SortByWins:
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Wins != rows[j].Wins {
				return rows[i].Wins > rows[j].Wins
			}
			// fewer losses ranks higher on equal wins
			if rows[i].Losses != rows[j].Losses {
				return rows[i].Losses < rows[j].Losses
			}
			return compareTeams(rows[i], rows[j])
		})
	case SortByTeam:
		sort.SliceStable(rows, func(i, j int) bool {
			return compareTeams(rows[i], rows[j])
		})
	case SortByGames:
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Games != rows[j].Games {
				return rows[i].Games > rows[j].Games
			}
			return compareTeams(rows[i], rows[j])
		})
	}
}

func compareTeams(a, b standings.Row) bool {
	return strings.ToLower(a.Team) < strings.ToLower(b.Team)
}
