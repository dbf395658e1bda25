package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	authMiddleware "prode-api/packages/auth/middleware"
	"prode-api/packages/core/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError writes the status and body for a service error. Internal
// errors are logged and their text is not sent to the client.
func respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindInternal {
		log.Printf("[api] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var appErr *apperrors.Error
	errors.As(err, &appErr)
	c.JSON(kind.HTTPStatus(), gin.H{"error": appErr.Message, "kind": kind})
}

func parseID(c *gin.Context, param, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return 0, false
	}
	return uint(id), true
}

func parseOptionalID(c *gin.Context, query string) (*uint, bool) {
	raw := c.Query(query)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + query})
		return nil, false
	}
	v := uint(id)
	return &v, true
}

func currentUser(c *gin.Context) (uint, bool) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}
