// Package calendar renders upcoming curling games as an iCalendar (RFC 5545) feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/curling-standings/internal/standings"
)

// GameDuration is the length given to each calendar entry
const GameDuration = 3 * time.Hour

const uidDomain = "livescores.worldcurling.org"

// GenerateICS builds a calendar with one VEVENT per game. An empty game list still
// produces a valid, empty calendar so subscribed clients keep polling.
func GenerateICS(games []standings.Game, calName string, stamp time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Curling Standings//curling-standings//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	if calName != "" {
		ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(calName)))
	}

	for _, g := range games {
		writeGame(&ics, g, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeGame(ics *strings.Builder, g standings.Game, stamp time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@%s\r\n", gameUID(g), uidDomain))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(g.StartTime)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(g.StartTime.Add(GameDuration))))

	summary := fmt.Sprintf("%s: %s vs %s", g.Division, g.TeamACode, g.TeamBCode)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("%s vs %s\nStatus: %s", g.TeamA, g.TeamB, g.Status)
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// gameUID is stable for the same pairing at the same start time
func gameUID(g standings.Game) string {
	return strings.ToLower(fmt.Sprintf("%s-%s-%s-%s",
		g.Division, g.TeamACode, g.TeamBCode, g.StartTime.UTC().Format("20060102T1504")))
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes text values according to RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
