package screen

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/user-list-screen/internal/userrecord"
)

// Service manages live screen activations.
type Service interface {
	Activate(ctx context.Context) *Screen
	Get(ctx context.Context, id string) (*Screen, error)
	Search(ctx context.Context, id, query string) (State, error)
	Row(ctx context.Context, id string, index int) (userrecord.UserRecord, error)
	Deactivate(ctx context.Context, id string) error
	Close()
}

// entry tracks when a screen was last used.
type entry struct {
	screen   *Screen
	lastSeen time.Time
}

type service struct {
	fetcher userrecord.Fetcher
	mode    userrecord.MatchMode
	idleTTL time.Duration
	now     func() time.Time

	// base outlives individual requests; Close cancels every load.
	base       context.Context
	cancelBase context.CancelFunc
	closeOnce  sync.Once
	sweepDone  chan struct{}

	mu      sync.Mutex
	screens map[string]*entry
}

// NewService creates a screen Service loading users through fetcher.
// Screens not used for idleTTL are deactivated by a background sweeper;
// a zero idleTTL keeps screens until they are deactivated explicitly.
func NewService(fetcher userrecord.Fetcher, mode userrecord.MatchMode, idleTTL time.Duration) Service {
	base, cancel := context.WithCancel(context.Background())
	s := &service{
		fetcher:    fetcher,
		mode:       mode,
		idleTTL:    idleTTL,
		now:        time.Now,
		base:       base,
		cancelBase: cancel,
		sweepDone:  make(chan struct{}),
		screens:    make(map[string]*entry),
	}

	if idleTTL > 0 {
		go s.runSweeper(sweepInterval(idleTTL))
	} else {
		close(s.sweepDone)
	}
	return s
}

// sweepInterval checks twice per TTL so a screen lives at most 1.5x idleTTL.
func sweepInterval(idleTTL time.Duration) time.Duration {
	interval := idleTTL / 2
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	return interval
}

func (s *service) runSweeper(interval time.Duration) {
	defer close(s.sweepDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.base.Done():
			return
		case <-ticker.C:
			s.sweep(s.now())
		}
	}
}

// sweep deactivates every screen last seen more than idleTTL before now.
func (s *service) sweep(now time.Time) {
	s.mu.Lock()
	var expired []*Screen
	for id, e := range s.screens {
		if now.Sub(e.lastSeen) > s.idleTTL {
			expired = append(expired, e.screen)
			delete(s.screens, id)
		}
	}
	s.mu.Unlock()

	for _, sc := range expired {
		log.Printf("screen %s: deactivated after %s idle", sc.ID(), s.idleTTL)
		sc.Deactivate()
	}
}

// Activate creates a screen and starts its load. The request context is not
// used for the load: the load must survive the request that started it.
func (s *service) Activate(ctx context.Context) *Screen {
	sc := New(uuid.NewString(), s.fetcher, s.mode)

	s.mu.Lock()
	s.screens[sc.ID()] = &entry{screen: sc, lastSeen: s.now()}
	s.mu.Unlock()

	sc.Activate(s.base)
	return sc
}

// Get returns a live screen and marks it as used.
func (s *service) Get(ctx context.Context, id string) (*Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.screens[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = s.now()
	return e.screen, nil
}

func (s *service) Search(ctx context.Context, id, query string) (State, error) {
	sc, err := s.Get(ctx, id)
	if err != nil {
		return State{}, err
	}
	return sc.SetQuery(query)
}

func (s *service) Row(ctx context.Context, id string, index int) (userrecord.UserRecord, error) {
	sc, err := s.Get(ctx, id)
	if err != nil {
		return userrecord.UserRecord{}, err
	}
	return sc.Row(index)
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	s.mu.Lock()
	e, ok := s.screens[id]
	delete(s.screens, id)
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	e.screen.Deactivate()
	return nil
}

// Close stops the sweeper and deactivates every screen.
func (s *service) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		screens := s.screens
		s.screens = make(map[string]*entry)
		s.mu.Unlock()

		for _, e := range screens {
			e.screen.Deactivate()
		}

		s.cancelBase()
		<-s.sweepDone
	})
}
