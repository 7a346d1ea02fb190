package server

import (
	"time"

	"github.com/Reubrecht/KairnGpx/internal/analysis"
	"github.com/Reubrecht/KairnGpx/internal/config"
	"github.com/Reubrecht/KairnGpx/internal/db"
	"github.com/Reubrecht/KairnGpx/internal/track"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    db.Querier
	Redis *redis.Client
}

func NewServer(cfg config.Config, database db.Querier, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    database,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	ttl := time.Duration(s.Cfg.CacheTTLMinutes) * time.Minute
	svc := track.NewService(s.DB, s.Redis, analysis.DefaultConfig(), ttl)
	track.RegisterRoutes(s.App.Group("/tracks"), svc)
}
