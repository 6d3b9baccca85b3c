package rest

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/recetario/internal/common"
	"github.com/dmitrijs2005/recetario/internal/server/models"
	"github.com/dmitrijs2005/recetario/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userKey = "user"

var errNotAuthenticated = &services.Error{Kind: common.ErrorUnauthorized, Detail: "Not authenticated"}

// corsMiddleware answers preflight requests and echoes allowed origins.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && slices.Contains(allowedOrigins, origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
			c.Writer.Header().Set("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// loggerMiddleware logs every request once it has been served. The client's
// X-Request-ID is reused and echoed back; a new one is minted otherwise.
func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(common.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(common.RequestIDHeader, requestID)

		c.Next()

		s.logger.Info(c.Request.Context(), "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", requestID,
			"remote_addr", c.ClientIP(),
		)
	}
}

func (s *Server) recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec any) {
		s.logger.Error(c.Request.Context(), "panic while serving request", "panic", fmt.Sprint(rec), "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Detail: "Internal Server Error"})
	})
}

// authMiddleware resolves the bearer token to a user and stores it in the
// gin context.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeader)
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, strings.TrimSpace(common.BearerPrefix)) || strings.TrimSpace(token) == "" {
			s.writeError(c, errNotAuthenticated)
			return
		}

		user, err := s.svc.Users.UserFromToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			s.writeError(c, err)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// currentUser returns the user stored by authMiddleware.
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
