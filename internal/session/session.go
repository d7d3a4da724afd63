// Package session holds per-document editing state between upload and split.
// The HTTP server owns the store; the core pipeline packages never touch it.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mjhall/chapterize/internal/chapters"
)

// Session is the state for one uploaded document: the source bytes, the
// current chapter table, and the archive from the most recent split.
type Session struct {
	ID          string
	Filename    string
	PageCount   int
	Data        []byte
	Definitions []chapters.ChapterDefinition
	Diagnostics []chapters.Diagnostic
	FromOutline bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Archive is nil until a split has produced at least one chapter.
	Archive     []byte
	ArchiveName string
}

// Store keeps sessions in memory keyed by ID. Creating a session for a
// filename that already has one replaces the old session, so editing state
// resets when the underlying document changes. Sessions returned by Get and
// List are snapshots; all mutation goes through store methods.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	limit    int
}

// NewStore creates an empty store. limit caps the number of live sessions;
// zero or negative means unlimited. When full, the oldest session is evicted.
func NewStore(limit int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		limit:    limit,
	}
}

// Create registers sess under a fresh ID, replacing any existing session with
// the same filename. The store takes ownership of sess.
func (s *Store) Create(sess *Session) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.sessions {
		if existing.Filename == sess.Filename {
			delete(s.sessions, id)
		}
	}
	if s.limit > 0 && len(s.sessions) >= s.limit {
		s.evictOldest()
	}

	now := time.Now().UTC()
	sess.ID = uuid.New().String()
	sess.CreatedAt = now
	sess.UpdatedAt = now
	s.sessions[sess.ID] = sess

	copied := *sess
	return &copied
}

// evictOldest removes the session with the earliest creation time.
// Caller must hold s.mu.
func (s *Store) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.sessions {
		if oldestID == "" || sess.CreatedAt.Before(oldest) {
			oldestID = id
			oldest = sess.CreatedAt
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}

// Get returns a snapshot of the session with the given ID.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	copied := *sess
	return &copied, true
}

// List returns snapshots of all sessions, newest first.
func (s *Store) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		copied := *sess
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Delete removes a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// SetDefinitions replaces a session's chapter table verbatim. Rows are not
// validated here; the splitter checks each one when a split runs.
func (s *Store) SetDefinitions(id string, defs []chapters.ChapterDefinition) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.Definitions = defs
	sess.UpdatedAt = time.Now().UTC()
	return true
}

// SetArchive records the archive produced by the latest split.
func (s *Store) SetArchive(id, name string, data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.Archive = data
	sess.ArchiveName = name
	sess.UpdatedAt = time.Now().UTC()
	return true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
