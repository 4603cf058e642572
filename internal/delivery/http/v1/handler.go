package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"go-careers-backend/internal/delivery/http/middleware"
	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/validation"
)

// bindJSON decodes and validates the body, answering 400 itself on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Fail(c, http.StatusBadRequest, apperror.KindBadRequest, "Invalid request body", validation.FormatValidationErrors(err)...)
		return false
	}
	return true
}

// actorLabel is the audit value for the current session
func actorLabel(c *gin.Context) string {
	return middleware.ActorFromContext(c).Label()
}

func queryBool(c *gin.Context, key string) bool {
	switch strings.ToLower(c.Query(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// parseDate accepts a calendar day or a full RFC 3339 timestamp
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperror.BadRequest("Application deadline must be a date (YYYY-MM-DD)")
	}
	return t.UTC(), nil
}
