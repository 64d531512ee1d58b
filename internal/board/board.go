package board

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"

	"github.com/pfrederiksen/curling-standings/internal/logger"
)

const (
	MaxNameLength    = 40
	MaxMessageLength = 300
	DefaultName      = "Anonymous"
)

// ErrMessageRequired is returned when a post has no message after trimming
var ErrMessageRequired = errors.New("message is required")

// Post is one message board entry
type Post struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the in-memory board mirrored to a file
type Store struct {
	path  string
	clock clockwork.Clock

	mu     sync.Mutex
	posts  []Post
	nextID int
}

// Open loads the board from path. A nil clock means the real clock.
func Open(path string, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &Store{
		path:   path,
		clock:  clock,
		posts:  make([]Post, 0),
		nextID: 1,
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("could not read board file, starting empty", logger.Fields{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("malformed board file, starting empty", logger.Fields{
			"path":  s.path,
			"error": err.Error(),
		})
		return
	}

	posts := make([]Post, 0, len(raw))
	maxID := 0
	for _, item := range raw {
		post, ok := decodePost(item)
		if !ok {
			continue
		}
		posts = append(posts, post)
		if post.ID > maxID {
			maxID = post.ID
		}
	}

	s.posts = posts
	s.nextID = maxID + 1
	logger.SetGauge("board.size", float64(len(posts)))
	logger.Info("board loaded", logger.Fields{
		"path":    s.path,
		"posts":   len(posts),
		"next_id": s.nextID,
	})
}

// decodePost keeps entries with a string message; other fields are best effort.
func decodePost(item json.RawMessage) (Post, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return Post{}, false
	}

	msg := bytes.TrimSpace(fields["message"])
	if len(msg) == 0 || msg[0] != '"' {
		return Post{}, false
	}

	var post Post
	if err := json.Unmarshal(msg, &post.Message); err != nil {
		return Post{}, false
	}
	_ = json.Unmarshal(fields["name"], &post.Name)
	_ = json.Unmarshal(fields["createdAt"], &post.CreatedAt)

	var id float64
	if err := json.Unmarshal(fields["id"], &id); err == nil {
		post.ID = int(id)
	}
	return post, true
}

// List returns a copy of the posts, newest first
func (s *Store) List() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// NextID returns the id the next post will get
func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID
}

// Post validates and adds a message, then persists the board. A persistence failure is
// logged and does not fail the post.
func (s *Store) Post(name, message string) (Post, error) {
	message = truncate(strings.TrimSpace(message), MaxMessageLength)
	if message == "" {
		return Post{}, ErrMessageRequired
	}

	name = truncate(strings.TrimSpace(name), MaxNameLength)
	if name == "" {
		name = DefaultName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := Post{
		ID:        s.nextID,
		Name:      name,
		Message:   message,
		CreatedAt: s.clock.Now().UTC(),
	}
	s.nextID++
	s.posts = append([]Post{post}, s.posts...)

	if err := s.save(); err != nil {
		logger.Error("failed to persist board", logger.Fields{"path": s.path}, err)
	}

	logger.IncrCounter("board.posts")
	logger.SetGauge("board.size", float64(len(s.posts)))
	return post, nil
}

// save writes the full list; callers hold s.mu
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.posts, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding board: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating board directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing board: %w", err)
	}
	return nil
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
