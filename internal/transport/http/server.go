package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/presence-server/internal/auth"
	"github.com/vovakirdan/presence-server/internal/config"
	"github.com/vovakirdan/presence-server/internal/identity"
	"github.com/vovakirdan/presence-server/internal/service/rooms"
)

// NewServer builds the HTTP server with all routes.
func NewServer(svc *rooms.Service, sessions *auth.Service, resolver *identity.Resolver, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(svc, sessions, resolver, cfg, logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter builds the gin engine.
func NewRouter(svc *rooms.Service, sessions *auth.Service, resolver *identity.Resolver, cfg *config.Config, logger *zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)

	roomHandlers := NewRoomHandlers(svc, logger)
	wsHandler := NewWSHandler(svc, cfg.WSRateLimit, logger)

	session := router.Group("/", SessionMiddleware(sessions, resolver, CookieOptions{
		Name:   cfg.SessionCookie,
		TTL:    cfg.SessionTTL,
		Secure: cfg.SecureCookies,
	}, logger))
	{
		session.GET("/me", roomHandlers.Me)
		session.POST("/rooms/new", roomHandlers.CreateRoom)
		session.POST("/rooms/join", roomHandlers.JoinRoomForm)
		session.GET("/rooms/:id", roomHandlers.ViewRoom)
		session.GET("/rooms/:id/join", roomHandlers.JoinPage)
		session.POST("/rooms/:id/join", roomHandlers.JoinRoom)
		session.GET("/ws/", wsHandler.Handle)
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
