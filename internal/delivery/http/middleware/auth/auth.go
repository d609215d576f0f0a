package http_auth_middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	http_common "github.com/moviehistory/core/internal/delivery/http/common"
	"github.com/moviehistory/core/internal/model"
	usecase_auth "github.com/moviehistory/core/internal/usecase/auth"
)

const (
	userKey       = "currentUser"
	sessionCookie = "session"
)

type Middleware struct {
	auth   *usecase_auth.Usecase
	logger *slog.Logger
}

func New(auth *usecase_auth.Usecase) *Middleware {
	return &Middleware{
		auth:   auth,
		logger: slog.Default(),
	}
}

// AuthRequired resolves the current user from the bearer token or the
// session cookie and aborts with 401 when neither yields one. The
// request never proceeds as an anonymous user.
func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			if cookie, err := ctx.Cookie(sessionCookie); err == nil {
				token = cookie
			}
		}

		user, err := m.auth.CurrentUser(ctx.Request.Context(), token)
		if err != nil {
			m.logger.Warn("unauthenticated request",
				slog.String("path", ctx.Request.URL.Path),
				slog.String("error", err.Error()),
			)
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Error: "Authentication required",
				Code:  http.StatusUnauthorized,
			})
			ctx.Abort()
			return
		}

		ctx.Set(userKey, user)
		ctx.Next()
	}
}

// CurrentUser returns the user resolved by AuthRequired.
func CurrentUser(ctx *gin.Context) model.User {
	if v, ok := ctx.Get(userKey); ok {
		if user, ok := v.(model.User); ok {
			return user
		}
	}
	return model.User{}
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
