package standings

import "time"

// Division identifies one competition division on the upstream site
type Division struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

var (
	Men   = Division{ID: 1, Label: "Men"}
	Women = Division{ID: 2, Label: "Women"}
)

// Divisions lists every division in fetch order
var Divisions = []Division{Men, Women}

// Row is one team's line in a division standings table
type Row struct {
	Team   string `json:"team"` // e.g. "CAN - Canada"
	Games  int    `json:"games"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// Game is a scheduled or in-progress match taken from the games page
type Game struct {
	Division  string    `json:"division"`
	TeamA     string    `json:"teamA"`
	TeamB     string    `json:"teamB"`
	TeamACode string    `json:"teamACode"`
	TeamBCode string    `json:"teamBCode"`
	StartTime time.Time `json:"startTime"`
	Status    string    `json:"status"`
}

// Snapshot is the combined result served by /api/standings.
// A nil slice means the field has never been populated.
type Snapshot struct {
	Men       []Row      `json:"men"`
	Women     []Row      `json:"women"`
	Upcoming  []Game     `json:"upcoming"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// Populated reports whether all three data fields are present
func (s Snapshot) Populated() bool {
	return s.Men != nil && s.Women != nil && s.Upcoming != nil
}
