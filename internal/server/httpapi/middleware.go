package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/metrics"
	"github.com/dmitrijs2005/tasktracker/internal/server/shared"
	"github.com/gin-gonic/gin"
)

// extractToken reads the session token from x-auth-token, falling back to
// "Authorization: Bearer <token>".
func extractToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(common.LegacyTokenHeaderName)); token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func (s *HTTPServer) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := s.users.Authenticate(extractToken(c))
		if err != nil {
			s.abortWithError(c, err)
			return
		}
		c.Request = c.Request.WithContext(shared.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method + " " + route
		code := c.Writer.Status()
		elapsed := time.Since(start)

		metrics.RequestsTotal.WithLabelValues("http", method, strconv.Itoa(code)).Inc()
		metrics.RequestDuration.WithLabelValues("http", method).Observe(elapsed.Seconds())

		if code >= http.StatusInternalServerError {
			s.logger.Error(c.Request.Context(), "http request", "method", method, "code", code, "duration", elapsed)
			return
		}
		s.logger.Info(c.Request.Context(), "http request", "method", method, "code", code, "duration", elapsed)
	}
}

// callerID returns the id requireAuth stored on the request.
func callerID(c *gin.Context) string {
	id, _ := shared.UserIDFromContext(c.Request.Context())
	return id
}
