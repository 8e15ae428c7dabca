package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"echome-server/internal/app"
	"echome-server/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgMissingFields)
		return
	}

	result, err := h.authService.Register(app.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.MsgMissingFields)
		case errors.Is(err, app.ErrEmailExists):
			response.Error(c, http.StatusBadRequest, response.MsgUserExists)
		default:
			log.Printf("register failed: %v", err)
			response.Error(c, http.StatusInternalServerError, response.MsgRegisterFailed)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    result.User.ID,
		"name":  result.User.Name,
		"email": result.User.Email,
		"token": result.Token,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgMissingFields)
		return
	}

	result, err := h.authService.Login(app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.MsgMissingFields)
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusBadRequest, response.MsgUserNotFound)
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusUnauthorized, response.MsgInvalidPassword)
		default:
			log.Printf("login failed: %v", err)
			response.Error(c, http.StatusInternalServerError, response.MsgLoginFailed)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    result.User.ID,
			"name":  result.User.Name,
			"email": result.User.Email,
		},
		"token": result.Token,
	})
}
