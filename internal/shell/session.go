package shell

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/travelsaathi/travelsaathi/internal/planner"
)

// State is the request lifecycle state of a session.
type State int

const (
	// StateIdle means no result, no error, not loading.
	StateIdle State = iota
	// StateLoading means a search is in flight.
	StateLoading
	// StateSuccess means a validated result is held.
	StateSuccess
	// StateError means the last search failed.
	StateError
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Overlay names the auxiliary informational panels.
type Overlay string

const (
	OverlayHelp    Overlay = "help"
	OverlaySupport Overlay = "support"
	OverlayAbout   Overlay = "about"
)

// KnownOverlay reports whether o is one of the defined overlays.
func KnownOverlay(o Overlay) bool {
	return o == OverlayHelp || o == OverlaySupport || o == OverlayAbout
}

// Session is the per-visitor shell state: the four-state request lifecycle,
// the active route selection, and the overlay toggles. The original app runs
// on a single UI thread; here multiple requests may touch one session, so
// state is mutex-guarded while keeping the same visible semantics.
//
// Each submission is tagged with a monotonically increasing sequence number
// and only the latest submission may resolve or reject the loading state, so
// a slow stale search can never overwrite a newer one.
type Session struct {
	mu sync.Mutex

	id       string
	state    State
	result   *planner.TravelResponse
	errMsg   string
	activeID string
	seq      uint64
	overlays map[Overlay]bool
	lastSeen time.Time
}

// NewSession creates an idle session with a fresh id.
func NewSession() *Session {
	return &Session{
		id:       "sess_" + uuid.New().String()[:22],
		state:    StateIdle,
		overlays: make(map[Overlay]bool),
		lastSeen: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Begin starts a new search: the session enters Loading, the previous error
// is cleared, and the returned sequence number must be presented back to
// Resolve or Reject. Allowed from any state; a newer Begin supersedes any
// search still in flight.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.state = StateLoading
	s.errMsg = ""
	s.lastSeen = time.Now()
	return s.seq
}

// Resolve applies a successful result for the given submission. Stale
// completions (seq no longer the latest) are discarded and false is
// returned. On success the first route becomes the active selection.
func (s *Session) Resolve(seq uint64, resp *planner.TravelResponse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq || s.state != StateLoading {
		return false
	}

	s.state = StateSuccess
	s.result = resp
	s.errMsg = ""
	s.activeID = ""
	if len(resp.Data.Routes) > 0 {
		s.activeID = resp.Data.Routes[0].ID
	}
	s.lastSeen = time.Now()
	return true
}

// Reject applies a failure for the given submission; stale completions are
// discarded. The previous result is dropped so the error panel replaces the
// results area.
func (s *Session) Reject(seq uint64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq || s.state != StateLoading {
		return false
	}

	s.state = StateError
	s.errMsg = message
	s.result = nil
	s.activeID = ""
	s.lastSeen = time.Now()
	return true
}

// Dismiss clears the error state and returns to Idle. No-op outside Error.
func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateError {
		return
	}
	s.state = StateIdle
	s.errMsg = ""
	s.lastSeen = time.Now()
}

// Reset returns to Idle from any state, clearing result and error together
// and closing every overlay. This is the primary "home" action.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateIdle
	s.result = nil
	s.errMsg = ""
	s.activeID = ""
	s.overlays = make(map[Overlay]bool)
	s.lastSeen = time.Now()
}

// SelectRoute switches the active route by id. It is a pure selection
// change: no re-fetch, the held result is never mutated, re-selecting the
// active id is a no-op, and unknown ids are ignored. Returns whether the
// selection is (now) the given id.
func (s *Session) SelectRoute(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSuccess || s.result == nil {
		return false
	}

	for _, route := range s.result.Data.Routes {
		if route.ID == id {
			s.activeID = id
			s.lastSeen = time.Now()
			return true
		}
	}
	return false
}

// OpenOverlay shows the named overlay. Overlays are independent toggles;
// lifecycle state and other overlays are untouched.
func (s *Session) OpenOverlay(o Overlay) {
	if !KnownOverlay(o) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.overlays[o] = true
	s.lastSeen = time.Now()
}

// CloseOverlay hides the named overlay. Lifecycle state is untouched.
func (s *Session) CloseOverlay(o Overlay) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.overlays, o)
	s.lastSeen = time.Now()
}

// Snapshot is an immutable view of session state for rendering.
type Snapshot struct {
	State         State
	Result        *planner.TravelResponse
	ErrorMessage  string
	ActiveRouteID string
	Overlays      map[Overlay]bool
}

// Snapshot returns a copy of the current state. The result pointer is shared
// but treated as immutable by all consumers.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	overlays := make(map[Overlay]bool, len(s.overlays))
	for k, v := range s.overlays {
		overlays[k] = v
	}

	return Snapshot{
		State:         s.state,
		Result:        s.result,
		ErrorMessage:  s.errMsg,
		ActiveRouteID: s.activeID,
		Overlays:      overlays,
	}
}

// Manager is the registry of live sessions, keyed by the id stored in the
// visitor's cookie.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty session registry.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the session for id, or nil if unknown.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

// GetOrCreate returns the session for id, creating a fresh one when id is
// empty or unknown.
func (m *Manager) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[id]; ok {
		return sess
	}

	sess := NewSession()
	m.sessions[sess.id] = sess
	return sess
}

// Sweep drops sessions idle for longer than maxAge and returns how many
// were removed.
func (m *Manager) Sweep(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, sess := range m.sessions {
		sess.mu.Lock()
		stale := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if stale {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
