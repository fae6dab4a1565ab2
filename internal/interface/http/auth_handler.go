package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshare/internal/application"
	"github.com/oksasatya/bookshare/internal/interface/middleware"
	"github.com/oksasatya/bookshare/pkg/apperror"
	"github.com/oksasatya/bookshare/pkg/response"
	"github.com/oksasatya/bookshare/pkg/validation"
)

type AuthHandler struct {
	Auth   *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger}
}

type signupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	DisplayName string `json:"displayName" binding:"required,displayname"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message string `json:"message"`
	application.LoginResult
}

type meResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "all fields are required for signup", validation.ToDetails(err))
		return
	}
	if _, err := h.Auth.Signup(c.Request.Context(), application.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	}); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, messageResponse{Message: "Signup successful! Please log in."})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "email and password are required for login", validation.ToDetails(err))
		return
	}
	res, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Message: "Login successful!", LoginResult: *res})
}

// Logout reads the token itself so an unknown session reports 404.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetHeader(middleware.AuthHeader)
	if token == "" {
		response.FromError(c, h.Logger, apperror.Unauthenticated("authentication token required").WithReason(apperror.ReasonMissingToken))
		return
	}
	if err := h.Auth.Logout(c.Request.Context(), token); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Logged out."})
}

func (h *AuthHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.FromError(c, h.Logger, apperror.Unauthenticated("authentication token required"))
		return
	}
	c.JSON(http.StatusOK, meResponse{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, CreatedAt: u.CreatedAt})
}
