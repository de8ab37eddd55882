package utils

import (
	"strconv"

	"lead-capture-backend/models"

	"github.com/gin-gonic/gin"
)

// ClientInfo extracts the request metadata stored alongside submissions.
func ClientInfo(c *gin.Context) models.ClientInfo {
	return models.ClientInfo{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	}
}

// QueryInt reads an integer query parameter. ok is false when the value is present but not a number.
func QueryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
