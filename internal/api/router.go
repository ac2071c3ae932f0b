package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/user-list-screen/internal/pkg/avatar"
	"github.com/nekogravitycat/user-list-screen/internal/screen"
	screenHttp "github.com/nekogravitycat/user-list-screen/internal/screen/http"
)

// Config holds the dependencies required by the router.
type Config struct {
	IsProduction  bool
	ProdOrigins   string
	ScreenService screen.Service
	Thumbnailer   *avatar.Thumbnailer
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins(cfg.IsProduction, cfg.ProdOrigins)
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type"}
	r.Use(cors.New(config))

	r.SetHTMLTemplate(screenHttp.Templates())

	screenHandler := screenHttp.NewHandler(cfg.ScreenService, cfg.Thumbnailer)

	screenHttp.RegisterPageRoutes(r, screenHandler)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		screenHttp.RegisterRoutes(v1, screenHandler)
	}

	return r
}

// allowedOrigins returns the CORS origins for the environment.
// Production uses the comma-separated PROD_ORIGINS list.
func allowedOrigins(isProduction bool, prodOrigins string) []string {
	if !isProduction {
		return []string{
			"http://localhost:8081", // Expo dev server
			"http://localhost:3000",
		}
	}

	origins := make([]string, 0)
	for _, o := range strings.Split(prodOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		// cors.New panics on an empty origin list without AllowAllOrigins.
		origins = append(origins, "http://localhost")
	}
	return origins
}
