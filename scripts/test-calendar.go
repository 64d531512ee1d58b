package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/curling-standings/internal/calendar"
	"github.com/pfrederiksen/curling-standings/internal/standings"
)

func main() {
	start := time.Now().UTC().Add(2 * time.Hour).Truncate(5 * time.Minute)
	games := []standings.Game{
		{
			Division:  standings.Men.Label,
			TeamA:     "CAN - Canada",
			TeamB:     "SUI - Switzerland",
			TeamACode: "CAN",
			TeamBCode: "SUI",
			StartTime: start,
			Status:    standings.DefaultStatus,
		},
		{
			Division:  standings.Women.Label,
			TeamA:     "SWE - Sweden",
			TeamB:     "GBR - Great Britain",
			TeamACode: "SWE",
			TeamBCode: "GBR",
			StartTime: start.Add(calendar.GameDuration),
			Status:    standings.DefaultStatus,
		},
	}

	icsContent := calendar.GenerateICS(games, "Olympic Curling (sample)", time.Now().UTC())

	filename := "test-curling-games.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file: %s\n\n", filename)
	fmt.Println("Import it into a calendar app to check the events, or compare with /api/upcoming.ics.")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
