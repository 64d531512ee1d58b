package cli

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pfrederiksen/curling-standings/internal/standings"
)

// minSimilarity is the edit-distance similarity a misspelled query must reach
const minSimilarity = 0.6

// matchTeam reports whether query plausibly names team. Team labels look like
// "SUI - Switzerland"; the query may be the code, part of the name, or a typo.
func matchTeam(query, team string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	if fuzzy.MatchFold(query, team) {
		return true
	}

	q := strings.ToLower(query)
	for _, part := range teamParts(team) {
		if similarity(q, part) >= minSimilarity {
			return true
		}
	}
	return false
}

// teamParts splits a label into its code and name, lowercased
func teamParts(team string) []string {
	parts := []string{strings.ToLower(strings.TrimSpace(team))}
	if code, name, ok := strings.Cut(team, "-"); ok {
		parts = append(parts,
			strings.ToLower(strings.TrimSpace(code)),
			strings.ToLower(strings.TrimSpace(name)))
	}
	return parts
}

func similarity(a, b string) float64 {
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(longest)
}

func filterRows(rows []standings.Row, query string) []standings.Row {
	if strings.TrimSpace(query) == "" {
		return rows
	}
	out := make([]standings.Row, 0, len(rows))
	for _, r := range rows {
		if matchTeam(query, r.Team) {
			out = append(out, r)
		}
	}
	return out
}

func filterGames(games []standings.Game, query string) []standings.Game {
	if strings.TrimSpace(query) == "" {
		return games
	}
	out := make([]standings.Game, 0, len(games))
	for _, g := range games {
		if matchTeam(query, g.TeamA) || matchTeam(query, g.TeamB) {
			out = append(out, g)
		}
	}
	return out
}
