package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/rentify/internal/infrastructure/filestore"
	"github.com/oksasatya/rentify/internal/interface/middleware"
	"github.com/oksasatya/rentify/internal/metrics"
)

// SystemModule serves the liveness text, local uploads and /metrics.
type SystemModule struct {
	// UploadsDir is served under /uploads when non-empty.
	UploadsDir string
	Metrics    bool
}

func NewSystemModule(uploadsDir string, metricsEnabled bool) *SystemModule {
	return &SystemModule{UploadsDir: uploadsDir, Metrics: metricsEnabled}
}

func (m *SystemModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is running!")
	})
	if m.UploadsDir != "" {
		rg.Static(filestore.PublicPrefix, m.UploadsDir)
	}
	if m.Metrics {
		metrics.Register()
		// Private and loopback addresses only
		rg.GET("/metrics", middleware.RequireAllowed(middleware.AllowPrivateIP()), gin.WrapH(promhttp.Handler()))
	}
}
