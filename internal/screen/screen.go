package screen

import (
	"context"
	"log"
	"sync"

	"github.com/nekogravitycat/user-list-screen/internal/userrecord"
)

// Screen owns the state of one activation of the user list.
// It starts in PhaseLoading and leaves it exactly once.
type Screen struct {
	id      string
	fetcher userrecord.Fetcher
	mode    userrecord.MatchMode

	once sync.Once
	done chan struct{}

	mu          sync.Mutex
	state       State
	cancel      context.CancelFunc
	deactivated bool
}

// New creates a screen in PhaseLoading. Nothing is fetched until Activate.
func New(id string, fetcher userrecord.Fetcher, mode userrecord.MatchMode) *Screen {
	return &Screen{
		id:      id,
		fetcher: fetcher,
		mode:    mode,
		done:    make(chan struct{}),
		state:   State{Phase: PhaseLoading},
	}
}

// ID returns the screen identifier.
func (s *Screen) ID() string {
	return s.id
}

// Activate starts the one-time load in the background. Calls after the
// first are no-ops. ctx bounds the load and must outlive the caller's request.
func (s *Screen) Activate(ctx context.Context) {
	s.once.Do(func() {
		s.mu.Lock()
		if s.deactivated {
			s.mu.Unlock()
			close(s.done)
			return
		}
		loadCtx, cancel := context.WithCancel(ctx)
		s.cancel = cancel
		s.mu.Unlock()

		go s.load(loadCtx)
	})
}

func (s *Screen) load(ctx context.Context) {
	defer close(s.done)

	users, err := s.fetcher.FetchUsers(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deactivated {
		// Result arrived after deactivation; nothing observes this screen anymore.
		return
	}
	if s.cancel != nil {
		s.cancel()
	}

	if err != nil {
		log.Printf("screen %s: load failed: %v", s.id, err)
		s.state = State{Phase: PhaseErrored, Cause: err}
		return
	}

	s.state = State{
		Phase:   PhaseReady,
		Full:    users,
		Visible: userrecord.Filter(users, "", s.mode),
		Query:   "",
	}
}

// Done is closed once the load has resolved or been abandoned.
func (s *Screen) Done() <-chan struct{} {
	return s.done
}

// State returns a snapshot of the current state. The returned slices are
// shared and must not be modified.
func (s *Screen) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetQuery recomputes the visible records for query and stores both in one
// step. It fails with ErrNotReady until the load has succeeded.
func (s *Screen) SetQuery(query string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deactivated {
		return State{}, ErrDeactivated
	}
	if s.state.Phase != PhaseReady {
		return s.state, ErrNotReady
	}

	s.state.Visible = userrecord.Filter(s.state.Full, query, s.mode)
	s.state.Query = query
	return s.state, nil
}

// Row returns the visible record at index.
func (s *Screen) Row(index int) (userrecord.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase != PhaseReady {
		return userrecord.UserRecord{}, ErrNotReady
	}
	if index < 0 || index >= len(s.state.Visible) {
		return userrecord.UserRecord{}, ErrRowNotFound
	}
	return s.state.Visible[index], nil
}

// Deactivate cancels an in-flight load and drops any later result.
func (s *Screen) Deactivate() {
	s.mu.Lock()
	s.deactivated = true
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	// Close done for screens that were never activated.
	s.once.Do(func() { close(s.done) })
}
