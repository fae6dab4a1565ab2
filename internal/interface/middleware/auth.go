package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/pkg/response"
)

// AuthHeader carries the opaque session token.
const AuthHeader = "x-auth-token"

// Gin context keys set by Auth.
const (
	CtxUserID    = "userID"
	CtxUserName  = "userName"
	CtxUserEmail = "userEmail"
	CtxUser      = "user"
	CtxAuthToken = "authToken"
)

// SessionResolver is satisfied by application.SessionService.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entity.User, error)
}

// Auth resolves the x-auth-token header to a user and rejects the request
// with 401 otherwise.
func Auth(sessions SessionResolver, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AuthHeader)
		u, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			response.FromError(c, logger, err)
			return
		}
		c.Set(CtxUserID, u.ID)
		c.Set(CtxUserName, u.DisplayName)
		c.Set(CtxUserEmail, u.Email)
		c.Set(CtxUser, u)
		c.Set(CtxAuthToken, token)
		c.Next()
	}
}

// CurrentUser returns the user stored by Auth, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(CtxUser); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}
