package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/user-list-screen/internal/pkg/apperror"
	"github.com/nekogravitycat/user-list-screen/internal/pkg/avatar"
	"github.com/nekogravitycat/user-list-screen/internal/pkg/response"
	"github.com/nekogravitycat/user-list-screen/internal/screen"
)

type ScreenHandler struct {
	screenService screen.Service
	thumbnailer   *avatar.Thumbnailer
}

func NewHandler(screenService screen.Service, thumbnailer *avatar.Thumbnailer) *ScreenHandler {
	return &ScreenHandler{
		screenService: screenService,
		thumbnailer:   thumbnailer,
	}
}

// translateError maps screen errors onto HTTP statuses.
func translateError(err error) error {
	switch {
	case errors.Is(err, screen.ErrNotFound), errors.Is(err, screen.ErrDeactivated):
		return apperror.NotFound(err, "screen not found")
	case errors.Is(err, screen.ErrNotReady):
		return apperror.Conflict(err, "screen is not ready")
	case errors.Is(err, screen.ErrRowNotFound):
		return apperror.NotFound(err, "row not found")
	case errors.Is(err, avatar.ErrUpstream):
		return apperror.BadGateway(err, "failed to load avatar")
	default:
		return err
	}
}

// Activate starts a new screen activation and returns its initial state.
// The load continues in the background; clients poll Get until the phase
// leaves "loading".
func (h *ScreenHandler) Activate(c *gin.Context) {
	sc := h.screenService.Activate(c.Request.Context())
	c.JSON(http.StatusCreated, NewScreenResponse(sc.ID(), sc.State()))
}

// Get returns the current view model of a screen.
func (h *ScreenHandler) Get(c *gin.Context) {
	var req ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	sc, err := h.screenService.Get(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, translateError(err))
		return
	}

	c.JSON(http.StatusOK, NewScreenResponse(sc.ID(), sc.State()))
}

// Search applies one keystroke: the query replaces the previous one and the
// visible rows are recomputed from the full dataset.
func (h *ScreenHandler) Search(c *gin.Context) {
	var uri ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body SearchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid body", err)
		return
	}

	if err := body.Validate(); err != nil {
		response.BadRequest(c, err.Error(), nil)
		return
	}

	st, err := h.screenService.Search(c.Request.Context(), uri.ID, *body.Query)
	if err != nil {
		response.Error(c, translateError(err))
		return
	}

	c.JSON(http.StatusOK, NewScreenResponse(uri.ID, st))
}

// Deactivate ends a screen activation, cancelling its load if still pending.
func (h *ScreenHandler) Deactivate(c *gin.Context) {
	var req ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.screenService.Deactivate(c.Request.Context(), req.ID); err != nil {
		response.Error(c, translateError(err))
		return
	}

	c.Status(http.StatusNoContent)
}

// Avatar serves the thumbnail of a visible row resized to the row size.
// The row is resolved by position at request time: after a later search the
// same URL can point at a different record.
func (h *ScreenHandler) Avatar(c *gin.Context) {
	var req RowRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	ctx := c.Request.Context()

	u, err := h.screenService.Row(ctx, req.ID, req.Index)
	if err != nil {
		response.Error(c, translateError(err))
		return
	}

	thumb, err := h.thumbnailer.Thumbnail(ctx, u.Picture.Thumbnail)
	if err != nil {
		response.Error(c, translateError(err))
		return
	}

	c.Header("Content-Type", "image/jpeg")
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, thumb); err != nil {
		// Response already started
		return
	}
}
