package handlers

import (
	"errors"
	"net/http"

	"gallery/gallery"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

var (
	OKResponse = Response{}
)

// abortWithError maps the store and validation errors to HTTP statuses and
// writes the error response.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var verr *gallery.ValidationError
	switch {
	case errors.Is(err, gallery.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, gallery.ErrPermissionDenied):
		status = http.StatusUnauthorized
	case errors.As(err, &verr):
		status = http.StatusBadRequest
	}
	c.JSON(status, Response{Error: err.Error()})
}
