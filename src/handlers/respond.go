package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asset-ops/src/apperrors"
	"asset-ops/src/logger"
)

// respondData wraps a successful result in the {ok, data} envelope the
// table-refresh clients expect.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"ok": true, "data": data})
}

func respondList(c *gin.Context, data interface{}, page, limit int, total int64) {
	totalPages := (int(total) + limit - 1) / limit
	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"data": data,
		"meta": gin.H{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

// respondError maps an error kind to a status code and the {ok, error_kind,
// message} envelope. No partial state change ever accompanies one of these;
// services roll back wholesale.
func respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)

	status := http.StatusInternalServerError
	message := err.Error()

	switch kind {
	case apperrors.KindValidation, apperrors.KindInvalidSchedule:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindInvalidTransition, apperrors.KindConcurrencyConflict:
		status = http.StatusConflict
	default:
		logger.FromContext(c).Error("unhandled error", zap.Error(err))
		message = "internal error"
	}

	c.JSON(status, gin.H{
		"ok":         false,
		"error_kind": string(kind),
		"message":    message,
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"ok":         false,
		"error_kind": string(apperrors.KindValidation),
		"message":    err.Error(),
	})
}

// parseDate accepts RFC3339 or plain YYYY-MM-DD, the two formats the
// admin forms send.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t, err = time.Parse("2006-01-02", value)
	}
	return t, err
}

func intQuery(c *gin.Context, key string, defaultValue int) int {
	if value, err := strconv.Atoi(c.Query(key)); err == nil {
		return value
	}
	return defaultValue
}

func uintQuery(c *gin.Context, key string) uint {
	value, err := strconv.ParseUint(c.Query(key), 10, 32)
	if err != nil {
		return 0
	}
	return uint(value)
}

func uintParam(c *gin.Context, key string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(key), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

func pagination(c *gin.Context) (int, int) {
	page := intQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := intQuery(c, "limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return page, limit
}
