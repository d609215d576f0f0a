package http_movie

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_auth_middleware "github.com/moviehistory/core/internal/delivery/http/middleware/auth"
	"github.com/moviehistory/core/internal/model"
	usecase_auth "github.com/moviehistory/core/internal/usecase/auth"
	usecase_listing "github.com/moviehistory/core/internal/usecase/listing"
	listing_mocks "github.com/moviehistory/core/internal/usecase/listing/mocks"
	usecase_recommendation "github.com/moviehistory/core/internal/usecase/recommendation"
	recommendation_mocks "github.com/moviehistory/core/internal/usecase/recommendation/mocks"
	usecase_tracking "github.com/moviehistory/core/internal/usecase/tracking"
	tracking_mocks "github.com/moviehistory/core/internal/usecase/tracking/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryUsers struct {
	byLogin map[string]model.User
	byID    map[uuid.UUID]model.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{
		byLogin: make(map[string]model.User),
		byID:    make(map[uuid.UUID]model.User),
	}
}

func (m *memoryUsers) Create(_ context.Context, u model.User) error {
	if _, ok := m.byLogin[u.Login]; ok {
		return usecase_auth.ErrLoginTaken
	}
	m.byLogin[u.Login] = u
	m.byID[u.ID] = u
	return nil
}

func (m *memoryUsers) ByLogin(_ context.Context, login string) (model.User, error) {
	u, ok := m.byLogin[login]
	if !ok {
		return model.User{}, usecase_auth.ErrInvalidCredentials
	}
	return u, nil
}

func (m *memoryUsers) ByID(_ context.Context, id uuid.UUID) (model.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return model.User{}, errors.New("user not found")
	}
	return u, nil
}

type memorySessions map[string]string

func (m memorySessions) Set(key, value string, _ time.Duration) error {
	m[key] = value
	return nil
}

func (m memorySessions) Get(key string) (string, error) { return m[key], nil }

func (m memorySessions) Delete(key string) error {
	delete(m, key)
	return nil
}

type env struct {
	router *gin.Engine
	user   model.User
	token  string

	trackingRepo *tracking_mocks.Repository
	listTracked  *listing_mocks.TrackedRepository
	listUsers    *listing_mocks.UserRepository
	recRepo      *recommendation_mocks.Repository
	recEntries   *recommendation_mocks.EntryRepository
	recUsers     *recommendation_mocks.UserRepository
	notifier     *recommendation_mocks.Notifier
}

func initEnv(t *testing.T) *env {
	e := &env{
		trackingRepo: tracking_mocks.NewRepository(t),
		listTracked:  listing_mocks.NewTrackedRepository(t),
		listUsers:    listing_mocks.NewUserRepository(t),
		recRepo:      recommendation_mocks.NewRepository(t),
		recEntries:   recommendation_mocks.NewEntryRepository(t),
		recUsers:     recommendation_mocks.NewUserRepository(t),
		notifier:     recommendation_mocks.NewNotifier(t),
	}

	auth := usecase_auth.New(newMemoryUsers(), memorySessions{}, "test-secret", time.Hour)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice", "Alice", "password")
	require.NoError(t, err)
	token, _, err := auth.Login(ctx, "alice", "password")
	require.NoError(t, err)
	e.user = user
	e.token = token

	controller := New(
		usecase_tracking.New(e.trackingRepo),
		usecase_listing.New(e.listTracked, e.listUsers),
		usecase_recommendation.New(e.recRepo, e.recEntries, e.recUsers, e.notifier),
		http_auth_middleware.New(auth),
	)

	e.router = gin.New()
	controller.RegisterRoutes(e.router.Group("/api/v1"))
	return e
}

func (e *env) do(method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+e.token)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestTrackRedirectsToListing(t *testing.T) {
	e := initEnv(t)

	e.trackingRepo.On("Track", mock.Anything, e.user.ID, int64(603), "The Matrix", "/poster.jpg").
		Return(model.TrackedEntry{ID: uuid.New(), UserID: e.user.ID}, nil)

	w := e.do(http.MethodGet, "/api/v1/movie/track?apiId=603&title=The+Matrix&img=/poster.jpg", "")

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/api/v1/movie/tracked", w.Header().Get("Location"))
}

func TestTrackRejectsMalformedAPIID(t *testing.T) {
	e := initEnv(t)

	w := e.do(http.MethodGet, "/api/v1/movie/track?apiId=abc&title=The+Matrix", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackRequiresAuthentication(t *testing.T) {
	e := initEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movie/track?apiId=603&title=The+Matrix", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListTracked(t *testing.T) {
	e := initEnv(t)
	other := model.User{ID: uuid.New(), Login: "bob", Name: "Bob"}

	e.listTracked.On("ListByUser", mock.Anything, e.user.ID).
		Return([]model.TrackedEntryView{
			{ID: uuid.New(), APIID: 603, Title: "The Matrix", Favorited: true},
		}, nil)
	e.listUsers.On("ListExcept", mock.Anything, e.user.ID).
		Return([]model.User{other}, nil)

	w := e.do(http.MethodGet, "/api/v1/movie/tracked", "")

	require.Equal(t, http.StatusOK, w.Code)

	var list TrackedListDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "The Matrix", list.Entries[0].Title)
	require.Len(t, list.OtherUsers, 1)
	assert.Equal(t, "bob", list.OtherUsers[0].Login)
}

func TestRecommendRedirectsToListing(t *testing.T) {
	e := initEnv(t)
	entryID := uuid.New()
	toUserID := uuid.New()

	e.recEntries.On("LoadEntry", mock.Anything, entryID).
		Return(model.TrackedEntry{ID: entryID, UserID: e.user.ID}, model.Movie{Title: "The Matrix"}, nil)
	e.recUsers.On("ByID", mock.Anything, toUserID).
		Return(model.User{ID: toUserID, Login: "bob"}, nil)
	e.recRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	e.notifier.On("RecommendationReceived", toUserID, e.user.Login, "The Matrix").Return()

	w := e.do(http.MethodPost, "/api/v1/movie/recommend?movieUserId="+entryID.String()+"&userId="+toUserID.String(), "")

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/api/v1/movie/tracked", w.Header().Get("Location"))
}

func TestRecommendUnknownTarget(t *testing.T) {
	e := initEnv(t)
	entryID := uuid.New()
	toUserID := uuid.New()

	e.recEntries.On("LoadEntry", mock.Anything, entryID).
		Return(model.TrackedEntry{ID: entryID, UserID: e.user.ID}, model.Movie{Title: "The Matrix"}, nil)
	e.recUsers.On("ByID", mock.Anything, toUserID).
		Return(model.User{}, usecase_recommendation.ErrUserNotFound)

	w := e.do(http.MethodPost, "/api/v1/movie/recommend?movieUserId="+entryID.String()+"&userId="+toUserID.String(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendRejectsMalformedIDs(t *testing.T) {
	e := initEnv(t)

	w := e.do(http.MethodPost, "/api/v1/movie/recommend?movieUserId=abc&userId=def", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetFavorited(t *testing.T) {
	e := initEnv(t)
	entryID := uuid.New()

	e.trackingRepo.On("SetFavorited", mock.Anything, e.user.ID, entryID, true).Return(nil)

	w := e.do(http.MethodPost, "/api/v1/movie/tracked/"+entryID.String()+"/favorite", `{"value": true}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUntrack(t *testing.T) {
	e := initEnv(t)
	entryID := uuid.New()

	e.trackingRepo.On("Delete", mock.Anything, e.user.ID, entryID).Return(nil)

	w := e.do(http.MethodDelete, "/api/v1/movie/tracked/"+entryID.String(), "")

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUntrackUnknownEntry(t *testing.T) {
	e := initEnv(t)
	entryID := uuid.New()

	e.trackingRepo.On("Delete", mock.Anything, e.user.ID, entryID).
		Return(usecase_tracking.ErrNotFound)

	w := e.do(http.MethodDelete, "/api/v1/movie/tracked/"+entryID.String(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
