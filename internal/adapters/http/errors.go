package httpadapter

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"svw.info/tenmatch/internal/usecase"
)

type errorResp struct {
	Error string `json:"error"`
}

func (h *Handler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrRoundNotFound):
		c.JSON(http.StatusNotFound, errorResp{Error: err.Error()})
	case errors.Is(err, usecase.ErrInvalidGrid):
		c.JSON(http.StatusBadRequest, errorResp{Error: err.Error()})
	case errors.Is(err, usecase.ErrNotConfigured):
		c.JSON(http.StatusNotImplemented, errorResp{Error: err.Error()})
	default:
		h.log.WithError(err).Error("unhandled service error")
		c.JSON(http.StatusInternalServerError, errorResp{Error: "internal error"})
	}
}
