package controllers

import (
	"log"

	"github.com/gin-gonic/gin"

	"tasklist-be/internal/apperrors"
	"tasklist-be/internal/middleware"
)

// respondError writes the error envelope for err. Internal failures are logged
// with the request id; the client only sees a generic message.
func respondError(c *gin.Context, err error) {
	status, body := apperrors.Response(err)
	if body.Error.Code == apperrors.CodeInternal {
		log.Printf("request %s: %s %s failed: %v", middleware.GetRequestID(c), c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, body)
}
