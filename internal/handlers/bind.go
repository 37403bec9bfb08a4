package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/logger"
	"go.uber.org/zap"
)

// bindJSON decodes and validates the request body into req. It writes the
// error response itself and reports whether the handler may continue.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		apierrors.RequestTooLarge(c)
		return false
	}
	if details := dto.ValidationDetails(err); details != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", details)
		return false
	}
	apierrors.BadRequest(c, "Invalid request body")
	return false
}

// internalError logs err with the request logger and answers 500.
func internalError(c *gin.Context, message string, err error) {
	logger.FromContext(c).Error(message, zap.Error(err))
	apierrors.InternalError(c, message)
}

func stringsPtr(l *dto.StringList) *[]string {
	if l == nil {
		return nil
	}
	s := l.Strings()
	return &s
}

func timePtr(d *dto.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
