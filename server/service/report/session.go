package report

import "sync"

// Step is one stage of the fixed three-stage conversation.
type Step int

const (
	// StepAwaitingSite waits for the user to pick a coffee shop.
	StepAwaitingSite Step = iota
	// StepAwaitingAck waits for the instruction acknowledgment phrase.
	StepAwaitingAck
	// StepCollectingEvidence accumulates photos until the quota is reached.
	StepCollectingEvidence
)

func (s Step) String() string {
	switch s {
	case StepAwaitingSite:
		return "awaiting_site"
	case StepAwaitingAck:
		return "awaiting_ack"
	case StepCollectingEvidence:
		return "collecting_evidence"
	default:
		return "unknown"
	}
}

// Session is the per-user conversation state. At most one live session exists
// per user; it is owned by the SessionStore and mutated only by the Engine.
type Session struct {
	UserID int64
	Step   Step
	// SelectedSite is the chosen catalog display name; set when leaving
	// StepAwaitingSite and immutable until reset.
	SelectedSite string
	// Evidence holds accepted photo file ids in submission order.
	// Invariant: len(Evidence) <= RequiredEvidenceCount.
	Evidence []string
}

func newSession(userID int64) *Session {
	return &Session{
		UserID:   userID,
		Step:     StepAwaitingSite,
		Evidence: []string{},
	}
}

// SessionStore owns all live sessions, keyed by user id. The internal map is
// safe for concurrent use; per-user event ordering is enforced with the lock
// handed out by Acquire.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	locks    map[int64]*sync.Mutex
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// Acquire takes the per-user lock and returns its release func. Events for
// one user are processed under this lock so they never overlap; events for
// different users proceed independently.
func (s *SessionStore) Acquire(userID int64) func() {
	s.mu.Lock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// GetOrCreate returns the user's session, creating a fresh one at
// StepAwaitingSite if none exists.
func (s *SessionStore) GetOrCreate(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[userID]; ok {
		return sess
	}
	sess := newSession(userID)
	s.sessions[userID] = sess
	return sess
}

// Reset unconditionally replaces any existing session with a fresh one.
// Used for explicit start-over requests and as the terminal action of
// finalization, whatever its outcome.
func (s *SessionStore) Reset(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := newSession(userID)
	s.sessions[userID] = sess
	return sess
}

// Save persists a mutated session.
func (s *SessionStore) Save(userID int64, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
}

// Get returns the user's session without creating one.
func (s *SessionStore) Get(userID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
