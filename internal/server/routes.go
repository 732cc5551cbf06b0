package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultListPath is where the allow-list is published.
const DefaultListPath = "/approved.txt"

// RegisterRoutes mounts the public endpoints on router.
func RegisterRoutes(router *gin.Engine, h *Handler, listPath string) {
	if listPath == "" {
		listPath = DefaultListPath
	}
	router.GET("/ping", h.ping)
	router.GET(listPath, NoCacheMiddleware(), h.allowList)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.metrics.Registry(), promhttp.HandlerOpts{})))
}
