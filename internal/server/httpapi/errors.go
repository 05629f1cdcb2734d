package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/gin-gonic/gin"
)

// httpStatus maps service errors to HTTP status codes.
func httpStatus(err error) int {
	switch {
	case common.IsAuthError(err), errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrInvalidQuery),
		errors.Is(err, common.ErrInvalidTask),
		errors.Is(err, common.ErrInvalidUser):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrDuplicateCredential):
		return http.StatusConflict
	case errors.Is(err, common.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *HTTPServer) abortWithError(c *gin.Context, err error) {
	code := httpStatus(err)

	msg := err.Error()
	switch code {
	case http.StatusInternalServerError:
		s.logger.Error(c.Request.Context(), "request failed", "error", msg)
		msg = common.ErrInternal.Error()
	case http.StatusServiceUnavailable:
		s.logger.Warn(c.Request.Context(), "store unavailable", "error", msg)
		msg = common.ErrStoreUnavailable.Error()
		c.Header("Retry-After", "1")
	}

	c.AbortWithStatusJSON(code, api.ErrorResponse{Msg: msg})
}
