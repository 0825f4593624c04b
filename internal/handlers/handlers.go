package handlers

import (
	"strconv"

	"mind-service/internal/apperr"

	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, e *apperr.Error) {
	c.JSON(e.Status, gin.H{"errorCode": e.Code, "error": e.Message})
}

// parseTestID converts the wire-format test id (sent as a string) to an
// int. ok is false when the value is absent or not numeric.
func parseTestID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}
