package http_movie

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/moviehistory/core/internal/delivery/http/common"
	http_auth_middleware "github.com/moviehistory/core/internal/delivery/http/middleware/auth"
	http_requestid_middleware "github.com/moviehistory/core/internal/delivery/http/middleware/requestid"
	"github.com/moviehistory/core/internal/model"
	usecase_listing "github.com/moviehistory/core/internal/usecase/listing"
	usecase_recommendation "github.com/moviehistory/core/internal/usecase/recommendation"
	usecase_tracking "github.com/moviehistory/core/internal/usecase/tracking"
)

const trackedPath = "/api/v1/movie/tracked"

type TrackedEntryDTO struct {
	ID        uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	APIID     int64     `json:"api_id" example:"603"`
	Title     string    `json:"title" example:"The Matrix"`
	ImgURL    string    `json:"img_url" example:"/poster.jpg"`
	Genre     string    `json:"genre" example:"sci-fi"`
	Favorited bool      `json:"favorited"`
	Watched   bool      `json:"watched"`
}

type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Login string    `json:"login"`
	Name  string    `json:"name"`
}

// TrackedListDTO is the listing view model: the caller's tracked
// movies plus the users eligible to receive a recommendation.
type TrackedListDTO struct {
	Entries    []TrackedEntryDTO `json:"entries"`
	OtherUsers []UserDTO         `json:"other_users"`
	Total      int               `json:"total"`
}

type ReceivedRecommendationDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	ImgURL    string    `json:"img_url"`
	FromLogin string    `json:"from_login"`
	FromName  string    `json:"from_name"`
	CreatedAt time.Time `json:"created_at"`
}

type SetFlagRequestDTO struct {
	Value bool `json:"value"`
}

type SetGenreRequestDTO struct {
	Genre string `json:"genre" binding:"required"`
}

func convertTrackedList(list model.TrackedList) TrackedListDTO {
	entries := make([]TrackedEntryDTO, len(list.Entries))
	for i, e := range list.Entries {
		entries[i] = TrackedEntryDTO{
			ID:        e.ID,
			APIID:     e.APIID,
			Title:     e.Title,
			ImgURL:    e.ImgURL,
			Genre:     e.Genre,
			Favorited: e.Favorited,
			Watched:   e.Watched,
		}
	}
	users := make([]UserDTO, len(list.OtherUsers))
	for i, u := range list.OtherUsers {
		users[i] = UserDTO{
			ID:    u.ID,
			Login: u.Login,
			Name:  u.Name,
		}
	}
	return TrackedListDTO{
		Entries:    entries,
		OtherUsers: users,
		Total:      len(entries),
	}
}

type Controller struct {
	tracking       *usecase_tracking.Usecase
	listing        *usecase_listing.Usecase
	recommendation *usecase_recommendation.Usecase
	authMiddleware *http_auth_middleware.Middleware

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	tracking *usecase_tracking.Usecase,
	listing *usecase_listing.Usecase,
	recommendation *usecase_recommendation.Usecase,
	authMiddleware *http_auth_middleware.Middleware,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		tracking:       tracking,
		listing:        listing,
		recommendation: recommendation,
		authMiddleware: authMiddleware,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	movie := router.Group("/movie")
	movie.Use(c.authMiddleware.AuthRequired())

	movie.GET("/track", c.track)
	movie.POST("/track", c.track)
	movie.GET("/tracked", c.listTracked)
	movie.POST("/recommend", c.recommend)
	movie.GET("/recommended", c.listRecommended)

	movie.POST("/tracked/:entry_id/favorite", c.setFavorited)
	movie.POST("/tracked/:entry_id/watched", c.setWatched)
	movie.POST("/tracked/:entry_id/genre", c.setGenre)
	movie.DELETE("/tracked/:entry_id", c.untrack)
}

// track records a movie from the browser search grid. All three query
// values are untrusted client input; only apiId is validated beyond
// parsing. Responds with a redirect to the listing view whether the
// movie was tracked just now or earlier.
func (c *Controller) track(ctx *gin.Context) {
	apiIDParam := ctx.Query("apiId")
	apiID, err := strconv.ParseInt(apiIDParam, 10, 64)
	if err != nil {
		c.logger.Warn("invalid apiId", slog.String("apiId", apiIDParam))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "apiId must be an integer",
			Code:  http.StatusBadRequest,
		})
		return
	}

	user := http_auth_middleware.CurrentUser(ctx)
	result, err := c.tracking.Track(ctx.Request.Context(), user, apiID, ctx.Query("title"), ctx.Query("img"))
	if err != nil {
		c.fail(ctx, err, "failed to track movie")
		return
	}

	if result.AlreadyTracked {
		c.logger.Info("movie already tracked",
			slog.Int64("api_id", apiID),
			slog.String("user", user.Login),
		)
	}

	ctx.Redirect(http.StatusMovedPermanently, trackedPath)
}

func (c *Controller) listTracked(ctx *gin.Context) {
	user := http_auth_middleware.CurrentUser(ctx)

	list, err := c.listing.ForUser(ctx.Request.Context(), user)
	if err != nil {
		c.fail(ctx, err, "failed to load tracked movies")
		return
	}

	ctx.JSON(http.StatusOK, convertTrackedList(list))
}

func (c *Controller) recommend(ctx *gin.Context) {
	entryID, err := uuid.Parse(ctx.Query("movieUserId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "movieUserId must be a valid id",
			Code:  http.StatusBadRequest,
		})
		return
	}

	toUserID, err := uuid.Parse(ctx.Query("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "userId must be a valid id",
			Code:  http.StatusBadRequest,
		})
		return
	}

	user := http_auth_middleware.CurrentUser(ctx)
	result, err := c.recommendation.Recommend(ctx.Request.Context(), user, entryID, toUserID)
	if err != nil {
		c.fail(ctx, err, "failed to recommend movie")
		return
	}

	if result.AlreadyRecommended {
		c.logger.Info("recommendation already exists",
			slog.String("entry_id", entryID.String()),
			slog.String("to_user_id", toUserID.String()),
		)
	}

	ctx.Redirect(http.StatusMovedPermanently, trackedPath)
}

func (c *Controller) listRecommended(ctx *gin.Context) {
	user := http_auth_middleware.CurrentUser(ctx)

	recs, err := c.recommendation.ReceivedBy(ctx.Request.Context(), user)
	if err != nil {
		c.fail(ctx, err, "failed to load recommendations")
		return
	}

	dtos := make([]ReceivedRecommendationDTO, len(recs))
	for i, r := range recs {
		dtos[i] = ReceivedRecommendationDTO{
			ID:        r.ID,
			Title:     r.Title,
			ImgURL:    r.ImgURL,
			FromLogin: r.FromLogin,
			FromName:  r.FromName,
			CreatedAt: r.CreatedAt,
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"recommendations": dtos, "total": len(dtos)})
}

func (c *Controller) setFavorited(ctx *gin.Context) {
	c.setFlag(ctx, c.tracking.SetFavorited)
}

func (c *Controller) setWatched(ctx *gin.Context) {
	c.setFlag(ctx, c.tracking.SetWatched)
}

func (c *Controller) setFlag(ctx *gin.Context, set func(ctx context.Context, user model.User, entryID uuid.UUID, value bool) error) {
	entryID, ok := c.entryID(ctx)
	if !ok {
		return
	}

	var req SetFlagRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	user := http_auth_middleware.CurrentUser(ctx)
	if err := set(ctx.Request.Context(), user, entryID, req.Value); err != nil {
		c.fail(ctx, err, "failed to update tracked entry")
		return
	}

	ctx.Status(http.StatusOK)
}

func (c *Controller) setGenre(ctx *gin.Context) {
	entryID, ok := c.entryID(ctx)
	if !ok {
		return
	}

	var req SetGenreRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	user := http_auth_middleware.CurrentUser(ctx)
	if err := c.tracking.SetGenre(ctx.Request.Context(), user, entryID, req.Genre); err != nil {
		c.fail(ctx, err, "failed to set genre")
		return
	}

	ctx.Status(http.StatusOK)
}

func (c *Controller) untrack(ctx *gin.Context) {
	entryID, ok := c.entryID(ctx)
	if !ok {
		return
	}

	user := http_auth_middleware.CurrentUser(ctx)
	if err := c.tracking.Untrack(ctx.Request.Context(), user, entryID); err != nil {
		c.fail(ctx, err, "failed to untrack movie")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) entryID(ctx *gin.Context) (uuid.UUID, bool) {
	idParam := ctx.Param("entry_id")
	entryID, err := uuid.Parse(idParam)
	if err != nil {
		c.logger.Warn("invalid entry ID",
			slog.String("id", idParam),
			slog.String("error", err.Error()),
		)
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid entry ID",
			Code:  http.StatusBadRequest,
		})
		return uuid.Nil, false
	}
	return entryID, true
}

// fail maps usecase failures onto user-facing responses instead of a
// generic error page. Unknown failures carry the correlation id.
func (c *Controller) fail(ctx *gin.Context, err error, msg string) {
	c.logger.Error(msg,
		slog.String("error", err.Error()),
		slog.String("request_id", http_requestid_middleware.FromContext(ctx)),
	)

	switch {
	case errors.Is(err, usecase_tracking.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error:   "Invalid input",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	case errors.Is(err, usecase_tracking.ErrUnauthenticated),
		errors.Is(err, usecase_listing.ErrUnauthenticated),
		errors.Is(err, usecase_recommendation.ErrUnauthenticated):
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Error: "Authentication required",
			Code:  http.StatusUnauthorized,
		})
	case errors.Is(err, usecase_recommendation.ErrNotOwner):
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
			Error:   "Tracked entry belongs to another user",
			Message: err.Error(),
			Code:    http.StatusForbidden,
		})
	case errors.Is(err, usecase_tracking.ErrNotFound),
		errors.Is(err, usecase_recommendation.ErrEntryNotFound),
		errors.Is(err, usecase_recommendation.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Error:   "Not found",
			Message: err.Error(),
			Code:    http.StatusNotFound,
		})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "Internal error",
			Message: "request id: " + http_requestid_middleware.FromContext(ctx),
			Code:    http.StatusInternalServerError,
		})
	}
}
