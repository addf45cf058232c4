package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/sbilibin2017/recipe-api/internal/db"
	"github.com/sbilibin2017/recipe-api/internal/facades"
	"github.com/sbilibin2017/recipe-api/internal/handlers"
	"github.com/sbilibin2017/recipe-api/internal/jwt"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/middlewares"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/sbilibin2017/recipe-api/internal/services"
)

const (
	shutdownTimeout     = 10 * time.Second
	healthCheckInterval = 15 * time.Second
)

func newServeCmd(getConfig func() *config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and start the HTTP and gRPC health servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			printBuildInfo(cmd.OutOrStdout())
			return run(cmd.Context(), getConfig())
		},
	}
}

// connectPostgres opens the pool and applies pending migrations.
func connectPostgres(ctx context.Context, cfg *config) (*sqlx.DB, error) {
	dsn := db.DSN(cfg.PGHost, cfg.PGPort, cfg.PGUser, cfg.PGPassword, cfg.PGDB)
	logger.Log.Infow("connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	conn, err := db.Connect(ctx, dsn, cfg.PGMaxOpenConns, cfg.PGMaxIdleConns)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, conn.DB); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// newImageStorage picks the configured image backend.
func newImageStorage(ctx context.Context, cfg *config) (services.ImageStorage, error) {
	switch cfg.StorageBackend {
	case storageS3:
		client, err := facades.NewS3Client(ctx, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Endpoint)
		if err != nil {
			return nil, err
		}
		return facades.NewImageS3Facade(client, cfg.S3Bucket, cfg.S3PublicURL), nil
	default:
		return facades.NewImageFSFacade(cfg.MediaRoot, cfg.MediaURL), nil
	}
}

// newKafkaWriter returns nil when no brokers are configured.
func newKafkaWriter(cfg *config) services.KafkaWriter {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Log.Warn("KAFKA_BROKERS is empty, recipe events are disabled")
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// watchHealth reports NOT_SERVING while PostgreSQL or Redis is unreachable.
func watchHealth(ctx context.Context, hs *health.Server, conn *sqlx.DB, rdb *redis.Client) {
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	for {
		status := healthpb.HealthCheckResponse_SERVING
		if err := conn.PingContext(ctx); err != nil {
			logger.Log.Errorw("PostgreSQL health check failed", "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		} else if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Log.Errorw("Redis health check failed", "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		hs.SetServingStatus("", status)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// run initializes the database, Redis, Kafka, image storage, the HTTP server
// and the gRPC health server, and handles graceful shutdown.
func run(ctx context.Context, cfg *config) error {
	// Connect to PostgreSQL
	conn, err := connectPostgres(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writer
	writer := newKafkaWriter(cfg)
	if writer != nil {
		defer writer.Close()
	}

	images, err := newImageStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("image storage: %w", err)
	}

	// Initialize JWT service
	tokens := jwt.New(jwt.WithSecretKey(cfg.JWTSecretKey), jwt.WithExpiration(cfg.JWTExp))

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(conn, db.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(conn, db.GetTxFromContext)
	userDetailsRepo := repositories.NewUserDetailsRepository(conn, db.GetTxFromContext)
	recipeReadRepo := repositories.NewRecipeReadRepository(conn, db.GetTxFromContext)
	recipeWriteRepo := repositories.NewRecipeWriteRepository(conn, db.GetTxFromContext)
	tagRepo := repositories.NewTagRepository(conn, db.GetTxFromContext)
	ingredientRepo := repositories.NewIngredientRepository(conn, db.GetTxFromContext)
	blacklistRepo := repositories.NewTokenBlacklistRepository(rdb)

	// Initialize services
	userService := services.NewUserService(userReadRepo, userWriteRepo)
	authService := services.NewAuthService(userReadRepo, tokens, blacklistRepo)
	userDetailsService := services.NewUserDetailsService(userDetailsRepo)
	recipeService := services.NewRecipeService(
		db.NewTransactor(conn),
		recipeReadRepo,
		recipeWriteRepo,
		services.NewReconciler(tagRepo, ingredientRepo),
		tagRepo,
		ingredientRepo,
		images,
		services.NewEventPublisher(writer),
	)
	tagService := services.NewNamedService(models.KindTag, tagRepo)
	ingredientService := services.NewNamedService(models.KindIngredient, ingredientRepo)

	routerCfg := handlers.RouterConfig{
		Auth:        authService,
		Users:       userService,
		UserDetails: userDetailsService,
		Recipes:     recipeService,
		Tags:        tagService,
		Ingredients: ingredientService,
		RequireAuth: middlewares.RequireUser(tokens, blacklistRepo, userReadRepo),
		SwaggerURL:  fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort),
	}
	if cfg.StorageBackend == storageFS {
		routerCfg.MediaRoot = cfg.MediaRoot
		routerCfg.MediaURL = cfg.MediaURL
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.AppHost, cfg.AppPort),
		Handler:           handlers.NewRouter(routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// gRPC health server
	grpcAddr := net.JoinHostPort(cfg.AppHost, cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("gRPC listen on %s: %w", grpcAddr, err)
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Graceful shutdown
	errChan := make(chan error, 2)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go watchHealth(ctxShutdown, healthServer, conn, rdb)

	go func() {
		logger.Log.Infof("gRPC health server listening on %s", grpcAddr)
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server failed: %w", err)
		}
	}()

	go func() {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping servers...")
	case serveErr = <-errChan:
	}

	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}
	grpcServer.GracefulStop()

	if serveErr != nil {
		return serveErr
	}
	logger.Log.Info("Servers stopped gracefully")
	return nil
}
