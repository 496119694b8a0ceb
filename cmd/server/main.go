package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/analyzer"
	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/database"
	"github.com/fadilmartias/resume-analyzer/internal/domain/fiber/handler"
	appLogger "github.com/fadilmartias/resume-analyzer/internal/logger"
	"github.com/fadilmartias/resume-analyzer/internal/middleware"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/service"
	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	logConfig := config.LoadLogConfig()

	zlog, err := appLogger.New(appConfig.Name, logConfig.JSON, logConfig.Debug)
	if err != nil {
		log.Fatalf("cannot create logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{
		AppName:      appConfig.Name,
		BodyLimit:    (appConfig.MaxUploadMB + 1) * 1024 * 1024,
		ErrorHandler: errorHandler(appConfig.IsProduction()),
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db, err := database.Connect(config.LoadDBConfig(), appConfig, zlog)
	if err != nil {
		zlog.Fatal("database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("database", zap.Error(err))
	}

	storage, err := service.NewFileStorage(ctx, config.LoadStorageConfig(), appConfig.UploadDir)
	if err != nil {
		zlog.Fatal("storage", zap.Error(err))
	}

	var skills service.SkillExtractorInterface
	if config.LoadGeminiConfig().Enabled() {
		gemini, err := service.NewGeminiService(ctx, zlog)
		if err != nil {
			zlog.Fatal("gemini", zap.Error(err))
		}
		skills = gemini
	} else {
		zlog.Info("GEMINI_API_KEY not set, using keyword skill extraction")
	}

	adminConfig := config.LoadAdminConfig()
	sessions := middleware.NewSessionStore(adminConfig.SessionTTL, appConfig.IsProduction())

	analysisRepo := repository.NewAnalysisRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	analysisUC := usecase.NewAnalysisUsecase(
		analysisRepo,
		storage,
		service.NewGeoService(config.LoadGeoConfig(), zlog),
		skills,
		analyzer.New(analyzer.NewRandomSource(appConfig.RandomSeed)),
		appConfig.MaxUploadMB,
		zlog,
	)
	feedbackUC := usecase.NewFeedbackUsecase(feedbackRepo, zlog)
	adminUC := usecase.NewAdminUsecase(analysisRepo, adminConfig, zlog)

	api := app.Group("/api")
	handler.NewAnalyzeHandler(analysisUC, zlog).RegisterRoutes(api)
	handler.NewFeedbackHandler(feedbackUC).RegisterRoutes(api)
	handler.NewAdminHandler(adminUC, sessions, zlog).RegisterRoutes(api)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				zlog.Debug("runtime", zap.Int("goroutines", runtime.NumGoroutine()))
			}
		}
	}()

	go func() {
		<-ctx.Done()
		zlog.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zlog.Error("shutdown", zap.Error(err))
		}
	}()

	zlog.Info("server running", zap.String("port", appConfig.Port), zap.String("env", appConfig.Env))
	if err := app.Listen(appConfig.Port); err != nil {
		zlog.Fatal("listen", zap.Error(err))
	}
}

// errorHandler renders errors that escape the handlers. In production the
// detail of a 5xx error stays in the log and the client gets the status text.
func errorHandler(production bool) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		message := err.Error()
		if message == "" || (production && code >= fiber.StatusInternalServerError) {
			message = utils.StatusMessage(code)
		}

		return ctx.Status(code).JSON(fiber.Map{"success": false, "message": message})
	}
}
