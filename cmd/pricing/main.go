package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/wyfcoding/optionpricing/internal/pricing/application"
	pricinghttp "github.com/wyfcoding/optionpricing/internal/pricing/interfaces/http"

	"github.com/wyfcoding/optionpricing/internal/pricing/infrastructure/messaging"
	"github.com/wyfcoding/optionpricing/internal/pricing/infrastructure/persistence/mysql"
	redisrepo "github.com/wyfcoding/optionpricing/internal/pricing/infrastructure/persistence/redis"
	"github.com/wyfcoding/optionpricing/pkg/cache"
	"github.com/wyfcoding/optionpricing/pkg/config"
	"github.com/wyfcoding/optionpricing/pkg/db"
	"github.com/wyfcoding/optionpricing/pkg/logger"
	"github.com/wyfcoding/optionpricing/pkg/metrics"
	"github.com/wyfcoding/optionpricing/pkg/middleware"
	"github.com/wyfcoding/optionpricing/pkg/mq"
)

func main() {
	configPath := flag.String("config", "configs/pricing/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger.Info(ctx, "starting pricing service", "version", cfg.Version, "environment", cfg.Environment)

	// 数据库
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init database", "error", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(&mysql.PricingResultModel{}); err != nil {
		logger.Fatal(ctx, "failed to migrate database", "error", err)
	}

	// Redis
	redisCache, err := cache.New(cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init redis", "error", err)
	}
	defer redisCache.Close()

	// Kafka
	producer, err := mq.NewProducer(mq.KafkaConfig{
		Brokers:      cfg.Kafka.Brokers,
		MaxRetries:   cfg.Kafka.MaxRetries,
		RetryBackoff: cfg.Kafka.RetryBackoff,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init kafka producer", "error", err)
	}
	defer producer.Close()

	m := metrics.New(cfg.ServiceName)

	// 依赖装配
	repo := redisrepo.NewCachedPricingRepository(mysql.NewPricingRepository(database), redisCache)
	publisher := messaging.NewKafkaEventPublisher(producer, cfg.Kafka.EventTopic)
	cmdService := application.NewPricingCommandService(repo, publisher, m, application.PricingDefaults{
		Paths:  cfg.Pricing.DefaultPaths,
		Steps:  cfg.Pricing.DefaultSteps,
		Degree: cfg.Pricing.DefaultDegree,
		Basis:  cfg.Pricing.Basis,
		Seed:   cfg.Pricing.Seed,
	})
	queryService := application.NewPricingQueryService(repo)
	handler := pricinghttp.NewPricingHandler(cmdService, queryService)

	// HTTP 服务
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.GinRecovery(), middleware.GinLogging(), middleware.GinMetrics(m), middleware.CORS())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})
	handler.RegisterRoutes(&router.RouterGroup)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server failed", "error", err)
		}
	}()

	// gRPC 服务（健康检查与反射）
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(cfg.ServiceName, healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.GRPC.Host, cfg.GRPC.Port)
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			logger.Fatal(ctx, "failed to listen for gRPC", "addr", addr, "error", err)
		}
		logger.Info(ctx, "gRPC server listening", "addr", addr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal(ctx, "gRPC server failed", "error", err)
		}
	}()

	// 指标服务
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = m.Serve(cfg.Metrics.Port, cfg.Metrics.Path)
		logger.Info(ctx, "metrics server listening", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
	}

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "shutting down pricing service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	healthServer.SetServingStatus(cfg.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "HTTP server shutdown failed", "error", err)
	}
	grpcServer.GracefulStop()
	if metricsServer != nil {
		_ = metricsServer.Shutdown(shutdownCtx)
	}

	logger.Info(ctx, "pricing service stopped")
}
