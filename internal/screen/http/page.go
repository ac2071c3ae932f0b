package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/user-list-screen/internal/pkg/response"
	"github.com/nekogravitycat/user-list-screen/internal/screen"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PageTemplate is the name of the screen page template.
const PageTemplate = "screen.tmpl"

// Templates parses the embedded HTML templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))
}

// pageView is the data passed to the screen page template.
type pageView struct {
	Title         string
	ThumbnailSize int
	Screen        ScreenResponse
}

func (v pageView) Loading() bool { return v.Screen.Phase == screen.PhaseLoading.String() }
func (v pageView) Errored() bool { return v.Screen.Phase == screen.PhaseErrored.String() }
func (v pageView) Ready() bool   { return v.Screen.Phase == screen.PhaseReady.String() }

func (v pageView) ErrorText() string {
	if v.Screen.Error == nil {
		return ""
	}
	return *v.Screen.Error
}

// Index activates a screen and redirects the browser to it.
func (h *ScreenHandler) Index(c *gin.Context) {
	sc := h.screenService.Activate(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/screens/"+sc.ID())
}

// Page renders a screen as HTML. A "q" query parameter is applied as a
// keystroke first; it is ignored while the search box does not exist yet.
func (h *ScreenHandler) Page(c *gin.Context) {
	var req ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	ctx := c.Request.Context()

	sc, err := h.screenService.Get(ctx, req.ID)
	if err != nil {
		response.Error(c, translateError(err))
		return
	}

	st := sc.State()
	if q, ok := c.GetQuery("q"); ok && st.Phase == screen.PhaseReady {
		st, err = h.screenService.Search(ctx, req.ID, q)
		if err != nil {
			response.Error(c, translateError(err))
			return
		}
	}

	size := 60
	if h.thumbnailer != nil {
		size = h.thumbnailer.Size()
	}

	c.HTML(http.StatusOK, PageTemplate, pageView{
		Title:         "User list",
		ThumbnailSize: size,
		Screen:        NewScreenResponse(sc.ID(), st),
	})
}
