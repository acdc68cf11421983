package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"juegos/backend/internal/repository"
)

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Status  bool     `json:"status"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Token   string   `json:"token,omitempty"`
}

const msgInternal = "internal server error"

func ok(c *gin.Context, resp Response) {
	resp.Status = true
	c.JSON(http.StatusOK, resp)
}

func badRequest(c *gin.Context, messages ...string) {
	c.JSON(http.StatusBadRequest, Response{Status: false, Errors: messages})
}

// fail maps an operation error onto the response. Unexpected errors are
// logged in full; the client only gets the message text.
func fail(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		badRequest(c, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Status: false, Errors: []string{err.Error()}})
	default:
		_ = c.Error(err)
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, Response{
			Status:  false,
			Message: msgInternal,
			Errors:  []string{err.Error()},
		})
	}
}
