package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/bookshare/internal/interface/http"
)

// AuthModule routes account endpoints.
// Public: POST /signup, POST /login, POST /logout
// Protected: GET /me
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Name() string { return "auth" }

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/signup", m.Handler.Signup)
	rg.POST("/login", m.Handler.Login)
	// logout resolves the token itself so a missing session is a 404
	rg.POST("/logout", m.Handler.Logout)
	rg.GET("/me", m.Auth, m.Handler.Me)
}
