package server

import (
	"backend-vietrip/internal/auth"
	"backend-vietrip/internal/catalog"
	"backend-vietrip/internal/config"
	"backend-vietrip/internal/custom"
	"backend-vietrip/internal/db"
	"backend-vietrip/internal/itinerary"
	"backend-vietrip/internal/live"
	"backend-vietrip/internal/livequery"
	"backend-vietrip/internal/migration"
	"backend-vietrip/internal/resolver"
	"backend-vietrip/internal/stream"
	"backend-vietrip/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
	Log    zerolog.Logger

	Trips     *trip.Service
	Custom    *custom.Service
	Itinerary *itinerary.Service
	Resolver  *resolver.Resolver
	Migrator  *migration.Migrator
}

func NewServer(cfg config.Config, pool *pgxpool.Pool, redisClient *redis.Client, log zerolog.Logger) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	// keep a nil pool a nil interface
	var q db.Querier
	if pool != nil {
		q = pool
	}

	hub := stream.NewHub(redisClient, log, cfg.RealtimeBuffer)
	customSvc := custom.NewService(q, hub)
	res := resolver.New(customSvc, log)
	trips := trip.NewService(q, hub, cfg.InviteTTL())
	visits := itinerary.NewService(q, res, hub)
	migrator := migration.NewMigrator(cfg.LegacyStoreDir, migration.NewFlags(q), migration.Services{
		Custom:    customSvc,
		Trips:     trips,
		Itinerary: visits,
	}, log)

	s := &Server{
		App:       app,
		Cfg:       cfg,
		DB:        pool,
		Redis:     redisClient,
		Stream:    hub,
		Log:       log,
		Trips:     trips,
		Custom:    customSvc,
		Itinerary: visits,
		Resolver:  res,
		Migrator:  migrator,
	}

	registerRoutes(s, q)
	return s
}

func registerRoutes(s *Server, q db.Querier) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, q), jwtMiddleware)
	catalog.RegisterRoutes(s.App.Group("/catalog"))
	resolver.RegisterRoutes(s.App.Group("/resolve"), s.Resolver, jwtMiddleware)
	custom.RegisterRoutes(s.App.Group("/custom"), s.Custom, jwtMiddleware)
	trip.RegisterRoutes(s.App.Group("/trips"), s.Trips, jwtMiddleware)
	trip.RegisterInviteRoutes(s.App.Group("/invites"), s.Trips, jwtMiddleware)
	itinerary.RegisterRoutes(s.App, s.Itinerary, s.Trips, jwtMiddleware)
	migration.RegisterRoutes(s.App.Group("/me"), s.Migrator, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream, s.Trips, jwtMiddleware)
	live.NewHandler(livequery.HubSubscriber{Hub: s.Stream}, s.Trips, s.Itinerary, s.Log).
		RegisterRoutes(s.App.Group("/live"), jwtMiddleware)
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.Stream.Close()
}
