package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/ai"
	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/config"
	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/handlers"
	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/repository"
	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/services"
	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/storage"
	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/utils"
)

func main() {
	_ = godotenv.Load() // pick up .env if present

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}
	dev := cfg.App.Env == "development"

	logger, err := utils.NewLogger(dev, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Mongo
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectMax)
	mc, err := repository.Connect(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatalf("mongo connect: %v", err)
	}
	db := mc.Database(cfg.Mongo.Database)

	// media store
	var store storage.Store
	var local *storage.LocalStore
	switch cfg.Storage.Driver {
	case "s3":
		store, err = storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket)
		if err != nil {
			logger.Fatalf("s3 init: %v", err)
		}
	default:
		local, err = storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.PublicPath)
		if err != nil {
			logger.Fatalf("upload dir: %v", err)
		}
		store = local
	}

	// optional redis, only for caching the discovered Ollama model name
	var modelCache ai.ModelCache
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		modelCache = ai.NewRedisModelCache(rdb, cfg.ModelCacheTTL)
	}

	// services
	gallery := services.NewGalleryService(repository.NewPhotoRepo(db), store, logger)
	content := services.NewContentService(
		repository.NewAwardRepo(db),
		repository.NewTickerRepo(db),
		repository.NewEventRepo(db),
	)
	assistant := ai.NewClient(cfg.Ollama.URI, cfg.Ollama.DefaultModel, cfg.OllamaTimeout,
		cfg.Ollama.BreakerFailures, modelCache, logger)

	// orphan sweep (local store only)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Sweep.Enabled && local != nil {
		sweeper := services.NewSweeper(local, repository.NewPhotoRepo(db), cfg.SweepInterval, cfg.SweepGrace, logger)
		go sweeper.Run(sweepCtx)
	}

	// fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.App.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Content-Type, Authorization",
	}))
	app.Use(fiberlog.New())
	if local != nil {
		app.Static(cfg.Storage.PublicPath, local.Dir())
	}

	h := handlers.NewHandler(gallery, content, assistant, logger)
	h.Register(app)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutdown requested")
	stopSweep()

	timeoutCtx, cancel2 := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel2()
	_ = app.ShutdownWithContext(timeoutCtx)
	_ = mc.Disconnect(timeoutCtx)
	if rdb != nil {
		_ = rdb.Close()
	}
	logger.Info("shutdown completed")
}
