package userrecord

import "errors"

// Loader failures. Both collapse into the screen's errored state.
var (
	ErrNetwork = errors.New("failed to reach user endpoint")
	ErrParse   = errors.New("failed to parse user endpoint response")
)

// UserRecord is one entry of the remote "results" array.
// Records are never mutated after decoding.
type UserRecord struct {
	Name    Name    `json:"name"`
	Email   string  `json:"email"`
	Picture Picture `json:"picture"`
}

// Name holds the first and last name of a user.
type Name struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// Picture holds avatar URLs. Only the thumbnail is consumed.
type Picture struct {
	Thumbnail string `json:"thumbnail"`
}

// FullName returns the display name shown in a list row.
func (u UserRecord) FullName() string {
	return u.Name.First + " " + u.Name.Last
}
