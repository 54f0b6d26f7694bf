package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const genericStoreError = "Internal Server Error"

// writeRows: общий контракт всех query-роутов:
// err → 500, пусто → 404 {message}, иначе 200 {key: rows}.
func (h *Handlers) writeRows(c *gin.Context, key string, n int, rows any, err error, notFound string) {
	if err != nil {
		h.storeFailure(c, err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": notFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{key: rows})
}

func (h *Handlers) storeFailure(c *gin.Context, err error) {
	h.log.Error("store query failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", requestID(c),
		"error", err,
	)
	msg := genericStoreError
	if h.exposeErrors {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": msg})
}

func badParam(c *gin.Context, err error) {
	var pe *ParamError
	if errors.As(err, &pe) {
		c.JSON(http.StatusBadRequest, gin.H{"message": pe.Error(), "param": pe.Param})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
