package server

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qudata/gatekeeper/internal/allowlist"
)

// Handler serves an allow-list file from disk.
type Handler struct {
	file    string
	metrics *Metrics
	logger  *slog.Logger
}

// NewHandler serves the token file at path. The file is re-read on every
// request so approvals take effect without a restart.
func NewHandler(path string, metrics *Metrics, logger *slog.Logger) *Handler {
	return &Handler{file: path, metrics: metrics, logger: logger}
}

func (h *Handler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) allowList(c *gin.Context) {
	data, err := os.ReadFile(h.file)
	if err != nil {
		h.logger.Error("read allow-list file", "file", h.file, "err", err)
		h.metrics.requests.WithLabelValues(strconv.Itoa(http.StatusServiceUnavailable)).Inc()
		c.String(http.StatusServiceUnavailable, "allow-list unavailable\n")
		return
	}

	list, _ := allowlist.Parse(data, false)
	h.metrics.listSize.Set(float64(len(list)))
	h.metrics.tokensServed.Add(float64(len(list)))
	h.metrics.requests.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()

	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}
