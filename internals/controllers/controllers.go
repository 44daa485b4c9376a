// Package controllers holds the gin handlers. Requests are bound and
// validated here; everything after validation is delegated to the services.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"librarium/apperr"
)

// respondError translates a tagged error into the HTTP response. Internal
// failures are logged and masked.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	c.JSON(status, gin.H{"detail": apperr.Message(err)})
}

// pathID parses a positive integer path parameter. Zero and negative values
// answer 417, non-numeric ones 400; both abort the request.
func pathID(c *gin.Context, param, entity string) (uint, bool) {
	raw := c.Param(param)
	id, err := strconv.Atoi(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": entity + " ID must be an integer"})
		return 0, false
	}
	if id <= 0 {
		c.AbortWithStatusJSON(http.StatusExpectationFailed, gin.H{"detail": entity + " ID must not be zero"})
		return 0, false
	}
	return uint(id), true
}

// queryUint parses an optional numeric query parameter, 0 when absent.
func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, false
	}
	return uint(value), true
}

// queryInt parses an optional numeric query parameter with a default.
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
