package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/workdesk/work-control-api/api/swagger"
	"github.com/workdesk/work-control-api/internal/handler"
	"github.com/workdesk/work-control-api/internal/middleware"
	"github.com/workdesk/work-control-api/internal/models"
	"github.com/workdesk/work-control-api/internal/repository"
	"github.com/workdesk/work-control-api/internal/service"
	"github.com/workdesk/work-control-api/pkg/cache"
	"github.com/workdesk/work-control-api/pkg/config"
	"github.com/workdesk/work-control-api/pkg/database"
	"github.com/workdesk/work-control-api/pkg/logger"
	corsmiddleware "github.com/workdesk/work-control-api/pkg/middleware/cors"
	reqidmiddleware "github.com/workdesk/work-control-api/pkg/middleware/requestid"
)

// @title Work Control API
// @version 1.0.0
// @description Aggregated engineering work tracking and correction/closure request workflow
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	var respCache *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, response cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		respCache = service.NewCacheService(cacheRepo, metrics, cfg.Cache.ResponseTTL, logr, cfg.Cache.ResponseEnabled)
	}

	userRepo := repository.NewUserRepository(db)
	divisionRepo := repository.NewDivisionRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	requestRepo := repository.NewRequestRepository(db)

	var audit *service.AuditSink
	if cfg.Audit.Enabled {
		audit = service.NewAuditSink(userRepo, logr)
		audit.Start(context.Background())
		defer audit.Stop()
	}

	validate := validator.New()
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            "work-control-api",
	})
	divisionSvc := service.NewDivisionService(divisionRepo, logr)
	workSvc := service.NewWorkService(assignmentRepo, service.NewDivisionCache(cfg.Cache.DivisionTTL), respCache, logr)
	requestSvc := service.NewRequestService(requestRepo, workSvc, audit, logr)
	userSvc := service.NewUserService(userRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	workHandler := handler.NewWorkHandler(workSvc, requestSvc, divisionSvc, respCache)
	requestHandler := handler.NewRequestHandler(requestSvc, divisionSvc, respCache)
	divisionHandler := handler.NewDivisionHandler(divisionSvc)
	userHandler := handler.NewUserHandler(userSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/auth/login", authHandler.Login)

	authed := r.Group("/", middleware.JWT(authSvc))
	{
		authed.GET("/works", workHandler.GetWorks)

		authed.GET("/divisions", divisionHandler.List)
		authed.GET("/divisions/:id/executors", workHandler.Executors)
		authed.GET("/divisions/:id/approvers", workHandler.Approvers)

		clearCache := authed.Group("/", middleware.RequireRoles(models.RoleAdmin))
		if audit != nil {
			clearCache.Use(middleware.Audit(audit, models.AuditActionCacheClear, "division_cache"))
		}
		clearCache.DELETE("/divisions/:id/cache", workHandler.ClearCache)

		authed.POST("/users", middleware.RequireRoles(models.RoleAdmin), userHandler.Register)
		authed.GET("/users/:id", middleware.RequireRolesOrSelf(models.RoleAdmin), userHandler.Get)
		authed.GET("/users/:id/divisions", middleware.RequireRolesOrSelf(models.RoleAdmin), divisionHandler.Allowed)
		replaceDivisions := []gin.HandlerFunc{middleware.RequireRoles(models.RoleAdmin)}
		if audit != nil {
			replaceDivisions = append(replaceDivisions, middleware.Audit(audit, models.AuditActionDivisionsReplace, "user_divisions"))
		}
		authed.PUT("/users/:id/divisions", append(replaceDivisions, divisionHandler.ReplaceAllowed)...)

		authed.POST("/requests", middleware.RequireRoles(models.RoleExecutor), requestHandler.Create)
		authed.GET("/requests", requestHandler.ListByDocument)
		authed.GET("/requests/inbox", requestHandler.Inbox)
		authed.POST("/requests/:id/resolve", middleware.RequireRoles(models.RoleController, models.RoleApprover), requestHandler.Resolve)
		authed.PATCH("/requests/:id", middleware.RequireRoles(models.RoleExecutor), requestHandler.Update)
		authed.DELETE("/requests/:id", middleware.RequireRoles(models.RoleExecutor), requestHandler.Delete)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
	logr.Info("server stopped")
}
