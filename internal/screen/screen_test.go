package screen

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/user-list-screen/internal/userrecord"
)

// stubFetcher returns fixed results. When gate is non-nil the fetch blocks
// until gate is closed or ctx is cancelled.
type stubFetcher struct {
	users []userrecord.UserRecord
	err   error
	gate  chan struct{}
	calls int32
}

func (f *stubFetcher) FetchUsers(ctx context.Context) ([]userrecord.UserRecord, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", userrecord.ErrNetwork, ctx.Err())
		}
	}
	return f.users, f.err
}

// twentyUsers returns 20 records of which exactly two (Diana and Frank)
// have a first name containing "an".
func twentyUsers() []userrecord.UserRecord {
	firsts := []string{
		"Alice", "Bob", "Carl", "Diana", "Eve", "Frank", "Gus", "Hilde", "Ivo", "Jill",
		"Kim", "Lou", "Mei", "Ned", "Olu", "Pia", "Quin", "Rex", "Sue", "Tod",
	}
	users := make([]userrecord.UserRecord, 0, len(firsts))
	for i, first := range firsts {
		users = append(users, userrecord.UserRecord{
			Name:    userrecord.Name{First: first, Last: fmt.Sprintf("Smith%d", i)},
			Email:   fmt.Sprintf("user%d@example.com", i),
			Picture: userrecord.Picture{Thumbnail: fmt.Sprintf("https://example.com/t/%d.jpg", i)},
		})
	}
	return users
}

func waitLoaded(t *testing.T, sc *Screen) {
	t.Helper()
	select {
	case <-sc.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("screen load did not resolve")
	}
}

func TestScreenStartsLoading(t *testing.T) {
	sc := New("s1", &stubFetcher{}, userrecord.MatchFaithful)
	assert.Equal(t, PhaseLoading, sc.State().Phase)

	_, err := sc.SetQuery("a")
	assert.ErrorIs(t, err, ErrNotReady, "search box does not exist while loading")
}

func TestScreenLoadSuccess(t *testing.T) {
	f := &stubFetcher{users: twentyUsers()}
	sc := New("s1", f, userrecord.MatchFaithful)
	sc.Activate(context.Background())
	waitLoaded(t, sc)

	st := sc.State()
	require.Equal(t, PhaseReady, st.Phase)
	assert.Len(t, st.Full, 20)
	assert.Equal(t, st.Full, st.Visible, "all records visible with no query")
	assert.Equal(t, "", st.Query)
	assert.NoError(t, st.Cause)
}

func TestScreenLoadFailure(t *testing.T) {
	f := &stubFetcher{err: fmt.Errorf("%w: connection refused", userrecord.ErrNetwork)}
	sc := New("s1", f, userrecord.MatchFaithful)
	sc.Activate(context.Background())
	waitLoaded(t, sc)

	st := sc.State()
	require.Equal(t, PhaseErrored, st.Phase)
	assert.ErrorIs(t, st.Cause, userrecord.ErrNetwork)
	assert.Empty(t, st.Visible)

	_, err := sc.SetQuery("a")
	assert.ErrorIs(t, err, ErrNotReady, "errored is terminal")
}

func TestScreenActivateOnce(t *testing.T) {
	f := &stubFetcher{users: twentyUsers()}
	sc := New("s1", f, userrecord.MatchFaithful)

	for i := 0; i < 5; i++ {
		sc.Activate(context.Background())
	}
	waitLoaded(t, sc)
	sc.Activate(context.Background())

	assert.Equal(t, int32(1), atomic.LoadInt32(&f.calls), "exactly one request per activation")
}

func TestScreenSearch(t *testing.T) {
	sc := New("s1", &stubFetcher{users: twentyUsers()}, userrecord.MatchFaithful)
	sc.Activate(context.Background())
	waitLoaded(t, sc)

	t.Run("Typing Filters", func(t *testing.T) {
		st, err := sc.SetQuery("an")
		require.NoError(t, err)
		require.Len(t, st.Visible, 2)
		assert.Equal(t, "Diana", st.Visible[0].Name.First)
		assert.Equal(t, "Frank", st.Visible[1].Name.First)
		assert.Equal(t, "an", st.Query)
		assert.Len(t, st.Full, 20, "full dataset untouched")
	})

	t.Run("No Match Is Empty Not Error", func(t *testing.T) {
		st, err := sc.SetQuery("zzzzz_no_such_user")
		require.NoError(t, err)
		assert.Equal(t, PhaseReady, st.Phase)
		assert.Empty(t, st.Visible)
	})

	t.Run("Clearing Restores Full List", func(t *testing.T) {
		_, err := sc.SetQuery("an")
		require.NoError(t, err)
		st, err := sc.SetQuery("")
		require.NoError(t, err)
		assert.Equal(t, st.Full, st.Visible)
		assert.Equal(t, "", st.Query)
	})
}

func TestScreenRow(t *testing.T) {
	sc := New("s1", &stubFetcher{users: twentyUsers()}, userrecord.MatchFaithful)

	_, err := sc.Row(0)
	assert.ErrorIs(t, err, ErrNotReady)

	sc.Activate(context.Background())
	waitLoaded(t, sc)

	_, err = sc.SetQuery("an")
	require.NoError(t, err)

	u, err := sc.Row(1)
	require.NoError(t, err)
	assert.Equal(t, "Frank", u.Name.First, "row index is positional within visible")

	_, err = sc.Row(2)
	assert.ErrorIs(t, err, ErrRowNotFound)
	_, err = sc.Row(-1)
	assert.ErrorIs(t, err, ErrRowNotFound)
}

func TestScreenDeactivateDuringLoad(t *testing.T) {
	f := &stubFetcher{users: twentyUsers(), gate: make(chan struct{})}
	sc := New("s1", f, userrecord.MatchFaithful)
	sc.Activate(context.Background())

	sc.Deactivate()
	waitLoaded(t, sc)

	assert.Equal(t, PhaseLoading, sc.State().Phase, "late result is dropped")
	_, err := sc.SetQuery("a")
	assert.ErrorIs(t, err, ErrDeactivated)
}

func TestScreenDeactivateBeforeActivate(t *testing.T) {
	f := &stubFetcher{users: twentyUsers()}
	sc := New("s1", f, userrecord.MatchFaithful)
	sc.Deactivate()
	sc.Activate(context.Background())
	waitLoaded(t, sc)

	assert.Equal(t, int32(0), atomic.LoadInt32(&f.calls))
}

func TestScreenParentCancellation(t *testing.T) {
	f := &stubFetcher{gate: make(chan struct{})}
	sc := New("s1", f, userrecord.MatchFaithful)

	ctx, cancel := context.WithCancel(context.Background())
	sc.Activate(ctx)
	cancel()
	waitLoaded(t, sc)

	st := sc.State()
	assert.Equal(t, PhaseErrored, st.Phase)
	assert.True(t, errors.Is(st.Cause, userrecord.ErrNetwork))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "errored", PhaseErrored.String())
	assert.Equal(t, "ready", PhaseReady.String())
}
