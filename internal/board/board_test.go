package board

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

var now = time.Date(2026, time.February, 20, 18, 30, 0, 0, time.UTC)

func TestOpen_MissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "smack-board.json"), nil)

	if got := s.List(); len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
	if got := s.NextID(); got != 1 {
		t.Errorf("NextID() = %d, want 1", got)
	}
}

func TestOpen_FileContents(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantIDs    []int
		wantNextID int
	}{
		{
			name:       "malformed JSON",
			content:    `[{"id": 1, "message": "go`,
			wantIDs:    []int{},
			wantNextID: 1,
		},
		{
			name:       "object instead of array",
			content:    `{"posts": []}`,
			wantIDs:    []int{},
			wantNextID: 1,
		},
		{
			name:       "empty array",
			content:    `[]`,
			wantIDs:    []int{},
			wantNextID: 1,
		},
		{
			name: "entries without string message dropped",
			content: `[
				{"id": 7, "name": "Ann", "message": "Hurry hard!", "createdAt": "2026-02-19T10:00:00Z"},
				{"id": 9, "name": "Bob"},
				{"id": 12, "message": 42},
				{"id": 13, "message": null},
				"just a string",
				{"id": 3, "name": "Cy", "message": "Sweep!", "createdAt": "2026-02-18T10:00:00Z"}
			]`,
			wantIDs:    []int{7, 3},
			wantNextID: 8,
		},
		{
			name:       "entry without numeric id kept",
			content:    `[{"id": "x", "message": "no id"}, {"id": 2, "message": "two"}]`,
			wantIDs:    []int{0, 2},
			wantNextID: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "smack-board.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("WriteFile() error: %v", err)
			}

			s := Open(path, nil)

			ids := make([]int, 0)
			for _, p := range s.List() {
				ids = append(ids, p.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
			if got := s.NextID(); got != tt.wantNextID {
				t.Errorf("NextID() = %d, want %d", got, tt.wantNextID)
			}
		})
	}
}

func TestPost(t *testing.T) {
	longName := strings.Repeat("n", 50)
	longMessage := strings.Repeat("m", 350)

	tests := []struct {
		name        string
		inName      string
		inMessage   string
		wantErr     error
		wantName    string
		wantMessage string
	}{
		{
			name:        "name and message trimmed",
			inName:      "  Rachel  ",
			inMessage:   "  Hurry hard!  ",
			wantName:    "Rachel",
			wantMessage: "Hurry hard!",
		},
		{
			name:        "missing name becomes Anonymous",
			inMessage:   "Sweep!",
			wantName:    DefaultName,
			wantMessage: "Sweep!",
		},
		{
			name:        "blank name becomes Anonymous",
			inName:      "   ",
			inMessage:   "Sweep!",
			wantName:    DefaultName,
			wantMessage: "Sweep!",
		},
		{
			name:        "long fields truncated",
			inName:      longName,
			inMessage:   longMessage,
			wantName:    longName[:MaxNameLength],
			wantMessage: longMessage[:MaxMessageLength],
		},
		{
			name:        "truncation counts characters",
			inName:      strings.Repeat("é", 45),
			inMessage:   "ok",
			wantName:    strings.Repeat("é", MaxNameLength),
			wantMessage: "ok",
		},
		{
			name:      "empty message rejected",
			inName:    "Rachel",
			inMessage: "   \n\t",
			wantErr:   ErrMessageRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Open(filepath.Join(t.TempDir(), "smack-board.json"), clockwork.NewFakeClockAt(now))

			post, err := s.Post(tt.inName, tt.inMessage)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Post() error = %v, want %v", err, tt.wantErr)
				}
				if len(s.List()) != 0 {
					t.Error("rejected post was stored")
				}
				if s.NextID() != 1 {
					t.Errorf("NextID() = %d after rejected post, want 1", s.NextID())
				}
				return
			}
			if err != nil {
				t.Fatalf("Post() error: %v", err)
			}

			if post.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", post.Name, tt.wantName)
			}
			if post.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", post.Message, tt.wantMessage)
			}
			if post.ID != 1 {
				t.Errorf("ID = %d, want 1", post.ID)
			}
			if !post.CreatedAt.Equal(now) {
				t.Errorf("CreatedAt = %v, want %v", post.CreatedAt, now)
			}
		})
	}
}

func TestPost_NewestFirstAndPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smack-board.json")
	clock := clockwork.NewFakeClockAt(now)
	s := Open(path, clock)

	for _, msg := range []string{"first", "second", "third"} {
		if _, err := s.Post("Ann", msg); err != nil {
			t.Fatalf("Post(%q) error: %v", msg, err)
		}
		clock.Advance(time.Minute)
	}

	posts := s.List()
	if len(posts) != 3 || posts[0].Message != "third" || posts[0].ID != 3 || posts[2].ID != 1 {
		t.Fatalf("List() = %+v, want newest first with ids 3,2,1", posts)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("board file not written: %v", err)
	}
	var onDisk []Post
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("board file is not a JSON array: %v", err)
	}
	if !reflect.DeepEqual(onDisk, posts) {
		t.Errorf("file = %+v, want %+v", onDisk, posts)
	}

	// simulated restart
	reopened := Open(path, clock)
	if !reflect.DeepEqual(reopened.List(), posts) {
		t.Errorf("reloaded List() = %+v, want %+v", reopened.List(), posts)
	}
	if got := reopened.NextID(); got != 4 {
		t.Errorf("reloaded NextID() = %d, want 4", got)
	}

	next, err := reopened.Post("Bob", "after restart")
	if err != nil {
		t.Fatalf("Post() error: %v", err)
	}
	if next.ID != 4 {
		t.Errorf("ID after restart = %d, want 4", next.ID)
	}
}

func TestOpen_ReloadWithoutWritesIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smack-board.json")
	content := `[{"id": 5, "name": "Ann", "message": "Hammer!", "createdAt": "2026-02-19T10:00:00Z"},
		{"id": 2, "name": "Bob", "message": "Takeout", "createdAt": "2026-02-18T10:00:00Z"}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	first := Open(path, nil)
	second := Open(path, nil)

	if !reflect.DeepEqual(first.List(), second.List()) {
		t.Errorf("lists differ: %+v vs %+v", first.List(), second.List())
	}
	if first.NextID() != second.NextID() || first.NextID() != 6 {
		t.Errorf("NextID() = %d and %d, want 6", first.NextID(), second.NextID())
	}
}

func TestPost_PersistFailureStillSucceeds(t *testing.T) {
	dir := t.TempDir()
	// a directory where the file should be makes WriteFile fail
	path := filepath.Join(dir, "board")
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatalf("Mkdir() error: %v", err)
	}

	s := Open(path, nil)
	post, err := s.Post("Ann", "still visible")
	if err != nil {
		t.Fatalf("Post() error = %v, want nil", err)
	}
	if got := s.List(); len(got) != 1 || got[0].ID != post.ID {
		t.Errorf("List() = %+v, want the new post", got)
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "b.json"), nil)
	s.Post("Ann", "original")

	list := s.List()
	list[0].Message = "changed"

	if s.List()[0].Message != "original" {
		t.Error("List() exposed internal state")
	}
}
