package app

import (
	"context"

	"github.com/moviehistory/core/internal/config"
	http_auth "github.com/moviehistory/core/internal/delivery/http/auth"
	http_init "github.com/moviehistory/core/internal/delivery/http/init"
	http_auth_middleware "github.com/moviehistory/core/internal/delivery/http/middleware/auth"
	http_requestid_middleware "github.com/moviehistory/core/internal/delivery/http/middleware/requestid"
	http_movie "github.com/moviehistory/core/internal/delivery/http/movie"
	http_pages "github.com/moviehistory/core/internal/delivery/http/pages"
	ws_notify "github.com/moviehistory/core/internal/delivery/ws/notify"
	infra_pg_init "github.com/moviehistory/core/internal/infra/postgres/init"
	infra_postgres_recommendation "github.com/moviehistory/core/internal/infra/postgres/recommendation"
	infra_postgres_tracked "github.com/moviehistory/core/internal/infra/postgres/tracked"
	infra_postgres_user "github.com/moviehistory/core/internal/infra/postgres/user"
	infra_redis_init "github.com/moviehistory/core/internal/infra/redis/init"
	infra_session_cache "github.com/moviehistory/core/internal/infra/redis/session"
	usecase_auth "github.com/moviehistory/core/internal/usecase/auth"
	usecase_listing "github.com/moviehistory/core/internal/usecase/listing"
	usecase_recommendation "github.com/moviehistory/core/internal/usecase/recommendation"
	usecase_tracking "github.com/moviehistory/core/internal/usecase/tracking"
)

// Go wires every dependency explicitly and starts the HTTP server.
// Nothing here is a process-wide singleton: each usecase receives its
// collaborators through its constructor.
func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	infra_pg_init.MustEnsureSchema(context.Background(), pgConn)

	trackedRepository := infra_postgres_tracked.New(pgConn)
	userRepository := infra_postgres_user.New(pgConn)
	recommendationRepository := infra_postgres_recommendation.New(pgConn)
	sessionCache := infra_session_cache.New(redisConn, "session_cache")

	hub := ws_notify.NewHub()
	go hub.Run()

	authUC := usecase_auth.New(userRepository, sessionCache, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	trackingUC := usecase_tracking.New(trackedRepository)
	listingUC := usecase_listing.New(trackedRepository, userRepository)
	recommendationUC := usecase_recommendation.New(recommendationRepository, trackedRepository, userRepository, hub)

	authMiddleware := http_auth_middleware.New(authUC)

	controllerPool := http_init.NewControllerPool(http_requestid_middleware.RequestID())
	controllerPool.Add(http_auth.New(authUC))
	controllerPool.Add(http_movie.New(trackingUC, listingUC, recommendationUC, authMiddleware))
	controllerPool.Add(http_pages.New())
	controllerPool.Add(ws_notify.NewController(hub, authMiddleware))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
