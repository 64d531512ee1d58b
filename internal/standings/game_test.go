package standings

import (
	"testing"
	"time"
)

func TestExtractCode(t *testing.T) {
	tests := []struct {
		team string
		want string
	}{
		{"CAN - Canada", "CAN"},
		{"Switzerland", "SWITZERLAND"},
		{"  swe-Sweden", "SWE"},
		{"  Great Britain  ", "GREAT BRITAIN"},
		{"KOR - Korea - Team Kim", "KOR"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.team, func(t *testing.T) {
			if got := ExtractCode(tt.team); got != tt.want {
				t.Errorf("ExtractCode(%q) = %q, want %q", tt.team, got, tt.want)
			}
		})
	}
}

func TestMatchStatus(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  string
	}{
		{"no status cell", []string{"26/2/26", "09:30", "Sheet A"}, DefaultStatus},
		{"final", []string{"26/2/26", "09:30", "Final"}, "Final"},
		{"case insensitive", []string{"26/2/26", "09:30", "LIVE - End 4"}, "LIVE - End 4"},
		{"first match wins", []string{"Game Start", "Completed"}, "Game Start"},
		{"empty", nil, DefaultStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchStatus(tt.cells); got != tt.want {
				t.Errorf("MatchStatus(%v) = %q, want %q", tt.cells, got, tt.want)
			}
		})
	}
}

func TestIsCompleted(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"Final", true},
		{"Final/EE", true},
		{"finished", true},
		{"Completed", true},
		{"Scheduled", false},
		{"Live", false},
		{"Game Start", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := IsCompleted(tt.status); got != tt.want {
				t.Errorf("IsCompleted(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestGame_IsUpcoming(t *testing.T) {
	now := time.Date(2026, time.February, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"future", now.Add(2 * time.Hour), true},
		{"started 10 minutes ago", now.Add(-10 * time.Minute), true},
		{"started exactly 30 minutes ago", now.Add(-30 * time.Minute), true},
		{"started 31 minutes ago", now.Add(-31 * time.Minute), false},
		{"yesterday", now.AddDate(0, 0, -1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Game{StartTime: tt.start}
			if got := g.IsUpcoming(now); got != tt.want {
				t.Errorf("Game.IsUpcoming() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshot_Populated(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{"zero value", Snapshot{}, false},
		{"empty but present", Snapshot{Men: []Row{}, Women: []Row{}, Upcoming: []Game{}}, true},
		{"missing upcoming", Snapshot{Men: []Row{}, Women: []Row{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.Populated(); got != tt.want {
				t.Errorf("Snapshot.Populated() = %v, want %v", got, tt.want)
			}
		})
	}
}
