package main

import (
	"catalog/app/auth"
	"catalog/app/item"
	"catalog/infra/postgres"
	"catalog/infra/rabbitmq"
	"catalog/internal/middleware"
	"catalog/pkg/config"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Request any
type Response any

type HandlerInterface[R Request, Res Response] interface {
	Handle(ctx context.Context, req *R) (*Res, error)
}

func handle[R Request, Res Response](handler HandlerInterface[R, Res], status ...int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return writeError(c, httperror.BadRequest(
				"request.invalid_body",
				"Invalid body",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ParamsParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_path_params",
				"Invalid path params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.QueryParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_query_params",
				"Invalid query params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ReqHeaderParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_headers",
				"Invalid headers",
				fiber.Map{"error": err.Error()},
			))
		}

		ctx := c.UserContext()

		res, err := handler.Handle(ctx, &req)
		if err != nil {
			return writeError(c, err)
		}

		if len(status) > 0 {
			c.Status(status[0])
		}

		return c.JSON(res)
	}
}

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	appConfig := config.Read()
	zap.L().Info("app starting...")
	zap.L().Info("app config",
		zap.String("port", appConfig.Port),
		zap.String("serviceName", appConfig.ServiceName),
	)

	if appConfig.JWTSecret == "" {
		zap.L().Fatal("JWT_SECRET is required")
	}
	if appConfig.AdminPasswordHash == "" {
		zap.L().Fatal("ADMIN_PASSWORD_HASH is required")
	}

	app := fiber.New(fiber.Config{
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Concurrency:  256 * 1024,
	})

	pgRepository := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
	)

	if err := pgRepository.Migrate(context.Background()); err != nil {
		zap.L().Fatal("Failed to ensure schema", zap.Error(err))
	}

	var publisher events.Publisher
	if appConfig.RabbitMQURL != "" {
		rmqPublisher, err := rabbitmq.NewRabbitMQPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Error("Failed to connect event publisher, continuing without events", zap.Error(err))
		} else {
			publisher = rmqPublisher
			defer rmqPublisher.Close()
		}
	}

	loginHandler := auth.NewLoginHandler(auth.Credentials{
		Username:     appConfig.AdminUsername,
		PasswordHash: appConfig.AdminPasswordHash,
	}, appConfig.JWTSecret)

	getItemsHandler := item.NewGetItemsHandler(pgRepository)
	createItemHandler := item.NewCreateItemHandler(pgRepository, publisher)
	updateItemHandler := item.NewUpdateItemHandler(pgRepository, publisher)
	deleteItemHandler := item.NewDeleteItemHandler(pgRepository, publisher)

	requireAuth := middleware.NewAuthMiddleware(appConfig.JWTSecret)

	api := app.Group("/api")
	api.Post("/auth/login", handle[auth.LoginRequest, auth.LoginResponse](loginHandler))
	api.Get("/items", handle[item.GetItemsRequest, item.GetItemsResponse](getItemsHandler))
	api.Post("/items", requireAuth, handle[item.CreateItemRequest, item.CreateItemResponse](createItemHandler, fiber.StatusCreated))
	api.Put("/items", requireAuth, handle[item.UpdateItemRequest, item.UpdateItemResponse](updateItemHandler))
	api.Delete("/items", requireAuth, handle[item.DeleteItemRequest, item.DeleteItemResponse](deleteItemHandler))

	// Start server in a goroutine
	go func() {
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(app, pgRepository.Close)
}

func gracefulShutdown(app *fiber.App, closers ...func() error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	for _, close := range closers {
		if err := close(); err != nil {
			zap.L().Error("Error during shutdown", zap.Error(err))
		}
	}

	zap.L().Info("Server gracefully stopped")
}

func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		payload := fiber.Map{
			"success": false,
			"code":    httpErr.Code,
			"message": httpErr.Message,
		}

		if httpErr.Details != nil {
			payload["details"] = httpErr.Details
		}

		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).JSON(payload)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		zap.L().Warn("Fiber validation error", zap.String("message", fiberErr.Message), zap.Error(err))
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"code":    "request.invalid",
			"message": fiberErr.Message,
		})
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"code":    "internal_server_error",
		"message": "Internal server error.",
	})
}
