package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/presence-server/internal/auth"
	"github.com/vovakirdan/presence-server/internal/core"
	"github.com/vovakirdan/presence-server/internal/identity"
)

const (
	// ContextKeyIdentity is the context key for storing the caller's core.Member.
	ContextKeyIdentity = "identity"
	// ContextKeyRequestID is the context key for storing the request id.
	ContextKeyRequestID = "request_id"

	headerRequestID = "X-Request-ID"
)

// CookieOptions controls how the session cookie is written.
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// SessionMiddleware loads the session cookie, resolves the caller's identity
// and stores it in the gin context. A new or changed session is written back
// before the handler runs.
func SessionMiddleware(sessions *auth.Service, resolver *identity.Resolver, opts CookieOptions, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := auth.NewSession()
		if token, err := c.Cookie(opts.Name); err == nil {
			loaded, loadErr := sessions.Load(token)
			if loadErr != nil {
				logger.Debug().Err(loadErr).Msg("discarding session cookie")
			} else {
				sess = loaded
			}
		}

		who, err := resolver.Resolve(sess)
		if err != nil {
			logger.Debug().Err(err).Msg("session rejected")
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "session corrupt", Code: ErrCodeSessionCorrupt})
			return
		}

		if sess.Dirty() {
			token, err := sessions.Save(sess)
			if err != nil {
				logger.Error().Err(err).Msg("failed to save session")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: core.ErrCodeInternal})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(opts.Name, token, int(opts.TTL.Seconds()), "/", "", opts.Secure, true)
			logger.Debug().Str("user_id", who.ID.String()).Str("nick", who.Nick).Msg("new session issued")
		}

		c.Set(ContextKeyIdentity, who)
		c.Next()
	}
}

// identityFrom returns the identity stored by SessionMiddleware.
func identityFrom(c *gin.Context) (core.Member, bool) {
	v, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return core.Member{}, false
	}
	who, ok := v.(core.Member)
	return who, ok
}

// RequestIDMiddleware tags every request with an id, reusing an inbound X-Request-ID.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// LoggerMiddleware creates a middleware that logs HTTP requests.
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info().
			Str("request_id", c.GetString(ContextKeyRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}
