// Package resp writes the backend's JSON envelopes: bodies straight through
// on success, { message, errors? } on failure.
package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
func Message(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"message": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	Message(c, http.StatusUnauthorized, msg)
}
func Forbidden(c *gin.Context, msg string) {
	Message(c, http.StatusForbidden, msg)
}
func NotFound(c *gin.Context, msg string) {
	Message(c, http.StatusNotFound, msg)
}

// Validation is the 422 shape: message plus per-field error lists.
func Validation(c *gin.Context, msg string, fields map[string][]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"message": msg, "errors": fields})
}
