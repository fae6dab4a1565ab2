package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	logger  *logrus.Logger
	modules []Module
}

// NewRegistry mounts modules under prefix ("" for the root).
func NewRegistry(engine *gin.Engine, prefix string, logger *logrus.Logger) *Registry {
	return &Registry{Engine: engine, API: engine.Group(prefix), logger: logger}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
		if r.logger != nil {
			r.logger.WithField("module", m.Name()).WithField("prefix", r.API.BasePath()).Debug("routes registered")
		}
	}
}
