package http_auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/moviehistory/core/internal/delivery/http/common"
	usecase_auth "github.com/moviehistory/core/internal/usecase/auth"
)

type Controller struct {
	auth   *usecase_auth.Usecase
	logger *slog.Logger
}

func New(auth *usecase_auth.Usecase) *Controller {
	return &Controller{
		auth:   auth,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("/register", c.register)
	auth.POST("/login", c.login)
	auth.POST("/logout", c.logout)
}

type RegisterRequestDTO struct {
	Login    string `json:"login" binding:"required" example:"neo"`
	Name     string `json:"name" example:"Thomas Anderson"`
	Password string `json:"password" binding:"required"`
}

type LoginRequestDTO struct {
	Login    string `json:"login" binding:"required" example:"neo"`
	Password string `json:"password" binding:"required"`
}

type SessionResponseDTO struct {
	Token string    `json:"token"`
	ID    uuid.UUID `json:"id"`
	Login string    `json:"login"`
	Name  string    `json:"name"`
}

func (c *Controller) register(ctx *gin.Context) {
	var req RegisterRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	user, err := c.auth.Register(ctx.Request.Context(), req.Login, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, usecase_auth.ErrLoginTaken) {
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Error: "Login already registered",
				Code:  http.StatusConflict,
			})
			return
		}
		if errors.Is(err, usecase_auth.ErrInvalidInput) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error:   "Invalid input",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}
		c.logger.Error("failed to register user", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error: "Failed to register",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusCreated, SessionResponseDTO{
		ID:    user.ID,
		Login: user.Login,
		Name:  user.Name,
	})
}

func (c *Controller) login(ctx *gin.Context) {
	var req LoginRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	token, user, err := c.auth.Login(ctx.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, usecase_auth.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Error: "Invalid login or password",
				Code:  http.StatusUnauthorized,
			})
			return
		}
		c.logger.Error("failed to login", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error: "Failed to login",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	// Cookie lets the browser script use plain navigations for track
	// links; API clients use the bearer token instead.
	ctx.SetCookie("session", token, 0, "/", "", false, true)
	ctx.JSON(http.StatusOK, SessionResponseDTO{
		Token: token,
		ID:    user.ID,
		Login: user.Login,
		Name:  user.Name,
	})
}

func (c *Controller) logout(ctx *gin.Context) {
	token, _ := ctx.Cookie("session")
	if token == "" {
		token = strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
	}

	if err := c.auth.Logout(ctx.Request.Context(), token); err != nil {
		if errors.Is(err, usecase_auth.ErrUnauthenticated) {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Error: "No active session",
				Code:  http.StatusUnauthorized,
			})
			return
		}
		c.logger.Error("failed to logout", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error: "Failed to logout",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	ctx.SetCookie("session", "", -1, "/", "", false, true)
	ctx.Status(http.StatusOK)
}
