package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/curling-standings/internal/standings"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt time.Time        `json:"checked_at"`
	Team      string           `json:"team,omitempty"`
	Men       []standings.Row  `json:"men"`
	Women     []standings.Row  `json:"women"`
	Upcoming  []standings.Game `json:"upcoming"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeText(w io.Writer, result *OutputResult) error {
	writeTable(w, standings.Men.Label, result.Men)
	writeTable(w, standings.Women.Label, result.Women)

	fmt.Fprintf(w, "\nUpcoming (%d):\n", len(result.Upcoming))
	if len(result.Upcoming) == 0 {
		fmt.Fprintln(w, "  No upcoming games.")
	}
	for _, g := range result.Upcoming {
		fmt.Fprintf(w, "  %s  %-5s %s vs %s  [%s]\n",
			g.StartTime.UTC().Format("2006-01-02 15:04"), g.Division, g.TeamA, g.TeamB, g.Status)
	}

	if result.Team != "" {
		fmt.Fprintf(w, "\nFiltered by team: %q\n", result.Team)
	}
	return nil
}

func writeTable(w io.Writer, title string, rows []standings.Row) {
	fmt.Fprintf(w, "\n%s:\n", title)
	if len(rows) == 0 {
		fmt.Fprintln(w, "  No standings available.")
		return
	}
	fmt.Fprintf(w, "  %-32s %5s %4s %6s\n", "Team", "Games", "Wins", "Losses")
	for _, r := range rows {
		fmt.Fprintf(w, "  %-32s %5d %4d %6d\n", r.Team, r.Games, r.Wins, r.Losses)
	}
}
