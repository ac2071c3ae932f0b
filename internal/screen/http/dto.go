package http

import (
	"fmt"

	"github.com/nekogravitycat/user-list-screen/internal/screen"
)

// ErrorMessage is the only text shown for a failed load.
const ErrorMessage = "Error fetching data. Check your data connection or with your backend engineer."

// SearchRequest is the payload of a keystroke. Query is a pointer so that an
// empty string (clearing the box) passes the required check.
type SearchRequest struct {
	Query *string `json:"query" binding:"required"`
}

// Validate performs custom validation for SearchRequest.
func (r *SearchRequest) Validate() error {
	return nil
}

// ByIDRequest binds the screen ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// RowRequest identifies one visible row of a screen.
type RowRequest struct {
	ByIDRequest
	Index int `uri:"index" binding:"min=0"`
}

// RowResponse is one list row. Key is the position within the visible list.
type RowResponse struct {
	Key       int    `json:"key"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Thumbnail string `json:"thumbnail"`
	Avatar    string `json:"avatar"`
}

// ScreenResponse is the view model of a screen in any phase.
type ScreenResponse struct {
	ID    string        `json:"id"`
	Phase string        `json:"phase"`
	Error *string       `json:"error,omitempty"`
	Query string        `json:"query"`
	Total int           `json:"total"`
	Rows  []RowResponse `json:"rows"`
}

// NewScreenResponse converts a screen state into its view model.
// Rows is empty unless the screen is ready.
func NewScreenResponse(id string, st screen.State) ScreenResponse {
	resp := ScreenResponse{
		ID:    id,
		Phase: st.Phase.String(),
		Rows:  make([]RowResponse, 0, len(st.Visible)),
	}

	switch st.Phase {
	case screen.PhaseErrored:
		msg := ErrorMessage
		resp.Error = &msg
	case screen.PhaseReady:
		resp.Query = st.Query
		resp.Total = len(st.Full)
		for i, u := range st.Visible {
			resp.Rows = append(resp.Rows, RowResponse{
				Key:       i,
				Name:      u.FullName(),
				Email:     u.Email,
				Thumbnail: u.Picture.Thumbnail,
				Avatar:    avatarPath(id, i),
			})
		}
	}

	return resp
}

func avatarPath(id string, index int) string {
	return fmt.Sprintf("/v1/screens/%s/rows/%d/avatar", id, index)
}
