package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/bookshare/internal/interface/http"
)

// SystemModule routes GET /healthz and, when Files is set, GET /uploads/*key.
type SystemModule struct {
	Health *handlers.HealthHandler
	Files  *handlers.FileHandler
}

func NewSystemModule(health *handlers.HealthHandler, files *handlers.FileHandler) *SystemModule {
	return &SystemModule{Health: health, Files: files}
}

func (m *SystemModule) Name() string { return "system" }

func (m *SystemModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.Health.Health)
	if m.Files != nil {
		rg.GET("/uploads/*key", m.Files.Serve)
	}
}
