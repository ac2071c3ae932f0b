package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/user-list-screen/internal/api"
	"github.com/nekogravitycat/user-list-screen/internal/pkg/avatar"
	"github.com/nekogravitycat/user-list-screen/internal/screen"
	"github.com/nekogravitycat/user-list-screen/internal/userrecord"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UsersEndpoint  string
	FetchTimeout   time.Duration
	ScreenIdleTTL  time.Duration
	EmailMatchMode userrecord.MatchMode
	ThumbnailSize  int

	// HTTPClient is used for the user list and avatar requests.
	// When nil, a client honoring FetchTimeout is created.
	HTTPClient *http.Client
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router        *gin.Engine
	ScreenService screen.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	thumbSize := cfg.ThumbnailSize
	if thumbSize <= 0 {
		thumbSize = 60
	}

	// User list loader and avatars share the injected client when given.
	var userClient *userrecord.Client
	var thumbnailer *avatar.Thumbnailer
	if cfg.HTTPClient != nil {
		userClient = userrecord.NewClientWithHTTP(cfg.UsersEndpoint, cfg.HTTPClient)
		thumbnailer = avatar.NewThumbnailer(cfg.HTTPClient, thumbSize)
	} else {
		userClient = userrecord.NewClient(cfg.UsersEndpoint, cfg.FetchTimeout)
		thumbnailer = avatar.NewThumbnailer(&http.Client{Timeout: cfg.FetchTimeout}, thumbSize)
	}

	// Screen Module
	screenService := screen.NewService(userClient, cfg.EmailMatchMode, cfg.ScreenIdleTTL)

	// API Router Config
	routerParams := api.Config{
		IsProduction:  cfg.IsProduction,
		ProdOrigins:   cfg.ProdOrigins,
		ScreenService: screenService,
		Thumbnailer:   thumbnailer,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:        router,
		ScreenService: screenService,
	}
}
