package standings

import (
	"strings"
	"time"
)

// DefaultStatus is used when no cell of a games row names a status
const DefaultStatus = "Scheduled"

// PastStartTolerance keeps games that started recently (likely in progress)
const PastStartTolerance = 30 * time.Minute

var statusKeywords = []string{"scheduled", "live", "final", "start", "complete", "finished"}

var completedKeywords = []string{"final", "finished", "completed"}

// ExtractCode returns the short team code from a team label.
// "CAN - Canada" -> "CAN", "Switzerland" -> "SWITZERLAND"
func ExtractCode(team string) string {
	code := team
	if i := strings.Index(team, "-"); i >= 0 {
		code = team[:i]
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// MatchStatus returns the first cell that reads like a match status,
// or DefaultStatus when none does.
func MatchStatus(cells []string) string {
	for _, cell := range cells {
		lower := strings.ToLower(cell)
		for _, kw := range statusKeywords {
			if strings.Contains(lower, kw) {
				return cell
			}
		}
	}
	return DefaultStatus
}

// IsCompleted reports whether a status describes a finished match
func IsCompleted(status string) bool {
	lower := strings.ToLower(status)
	for _, kw := range completedKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsUpcoming reports whether the game has not started more than
// PastStartTolerance before now.
func (g Game) IsUpcoming(now time.Time) bool {
	return !g.StartTime.Before(now.Add(-PastStartTolerance))
}
