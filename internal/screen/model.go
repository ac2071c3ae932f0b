package screen

import (
	"errors"

	"github.com/nekogravitycat/user-list-screen/internal/userrecord"
)

var (
	ErrNotFound    = errors.New("screen not found")
	ErrNotReady    = errors.New("screen is not ready for search")
	ErrDeactivated = errors.New("screen is deactivated")
	ErrRowNotFound = errors.New("row not found")
)

// Phase is the tag of a screen's state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseErrored
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseErrored:
		return "errored"
	case PhaseReady:
		return "ready"
	default:
		return "loading"
	}
}

// State is a point-in-time copy of a screen.
// Cause is set only when Phase is PhaseErrored.
// Full, Visible and Query are meaningful only when Phase is PhaseReady.
type State struct {
	Phase   Phase
	Cause   error
	Full    []userrecord.UserRecord
	Visible []userrecord.UserRecord
	Query   string
}
