package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campusdesk/feedback-api/api/swagger"
	"github.com/campusdesk/feedback-api/internal/authz"
	"github.com/campusdesk/feedback-api/internal/handler"
	"github.com/campusdesk/feedback-api/internal/middleware"
	"github.com/campusdesk/feedback-api/internal/repository"
	"github.com/campusdesk/feedback-api/internal/service"
	"github.com/campusdesk/feedback-api/pkg/cache"
	"github.com/campusdesk/feedback-api/pkg/config"
	"github.com/campusdesk/feedback-api/pkg/database"
	"github.com/campusdesk/feedback-api/pkg/logger"
	corsmiddleware "github.com/campusdesk/feedback-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusdesk/feedback-api/pkg/middleware/requestid"
)

// @title Campus Feedback API
// @version 1.0.0
// @description Role-scoped feedback and complaint service for an academic institution
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	formRepo := repository.NewFormRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, cacheRepo, metricsSvc, validate, logr, cfg.Directory.CacheTTL)
	formSvc := service.NewFormService(formRepo, subjectSvc, validate, logr)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, formRepo, validate, logr)
	complaintSvc := service.NewComplaintService(complaintRepo, userRepo, validate, logr)
	facultySvc := service.NewFacultyService(facultyRepo, validate, logr)
	replySvc := service.NewReplyService(replyRepo, validate, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	formHandler := handler.NewFormHandler(formSvc, userSvc)
	feedbackHandler := handler.NewFeedbackHandler(feedbackSvc, userSvc)
	complaintHandler := handler.NewComplaintHandler(complaintSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	facultyHandler := handler.NewFacultyHandler(facultySvc)
	replyHandler := handler.NewReplyHandler(replySvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metricsSvc != nil {
		r.Use(middleware.Metrics(metricsSvc))
	}

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if metricsSvc != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	users := api.Group("/users", middleware.JWT(authSvc))
	{
		users.POST("", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD), userHandler.Create)
		users.GET("", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD), userHandler.List)
		users.GET("/:id", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD), userHandler.Get)
	}

	forms := api.Group("/forms", middleware.JWT(authSvc))
	{
		forms.POST("", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD, authz.RoleFaculty), formHandler.Create)
		forms.GET("/mine", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD, authz.RoleFaculty), formHandler.ListMine)
		forms.GET("/category/:category", formHandler.ListByCategory)
		forms.GET("/:id", formHandler.Get)
		forms.DELETE("/:id", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD, authz.RoleFaculty), formHandler.Delete)
	}

	feedback := api.Group("/feedback", middleware.JWT(authSvc))
	{
		feedback.POST("", middleware.RequireRoles(metricsSvc, authz.RoleStudent), feedbackHandler.Submit)
		feedback.GET("/mine/count", middleware.RequireRoles(metricsSvc, authz.RoleStudent), feedbackHandler.MyCount)
		feedback.GET("/category/:category", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD, authz.RoleFaculty), feedbackHandler.ListByCategory)
		if cfg.Exports.Enabled {
			feedback.GET("/category/:category/export", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD, authz.RoleFaculty), feedbackHandler.Export)
		}
	}

	complaints := api.Group("/complaints", middleware.JWT(authSvc))
	{
		complaints.POST("", middleware.RequireRoles(metricsSvc, authz.RoleStudent), complaintHandler.Submit)
		complaints.GET("/mine", middleware.RequireRoles(metricsSvc, authz.RoleStudent), complaintHandler.ListMine)
		complaints.GET("/mine/count", middleware.RequireRoles(metricsSvc, authz.RoleStudent), complaintHandler.MyCount)
		complaints.GET("/category/:category", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD, authz.RoleFaculty), complaintHandler.ListByCategory)
		complaints.POST("/category/:category/:id/resolve", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD, authz.RoleFaculty), complaintHandler.Resolve)
		complaints.GET("/blocks", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD), complaintHandler.ListBlocks)
		complaints.POST("/blocks", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD), complaintHandler.Block)
		complaints.POST("/blocks/remove", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD), complaintHandler.Unblock)
	}

	subjects := api.Group("/subjects", middleware.JWT(authSvc))
	{
		subjects.GET("", subjectHandler.List)
		subjects.GET("/:id", subjectHandler.Get)
		subjects.POST("", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD), subjectHandler.Create)
		subjects.PUT("/:id", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD), subjectHandler.Update)
		subjects.DELETE("/:id", middleware.RequireRoles(metricsSvc, authz.RoleAdmin), subjectHandler.Delete)
	}

	faculty := api.Group("/faculty", middleware.JWT(authSvc))
	{
		faculty.GET("", facultyHandler.List)
		faculty.GET("/:id", facultyHandler.Get)
		faculty.POST("", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD), facultyHandler.Create)
		faculty.PUT("/:id", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD), facultyHandler.Update)
		faculty.DELETE("/:id", middleware.RequireRoles(metricsSvc, authz.RoleAdmin), facultyHandler.Delete)
	}

	replies := api.Group("/replies", middleware.JWT(authSvc))
	{
		replies.POST("", middleware.RequireRoles(metricsSvc, authz.RoleAdmin, authz.RoleHOD, authz.RoleFaculty), replyHandler.Send)
		replies.GET("/mine", middleware.RequireRoles(metricsSvc, authz.RoleStudent), replyHandler.ListMine)
	}

	if metricsSvc != nil {
		api.GET("/metrics/snapshot", middleware.JWT(authSvc), middleware.RequireRoles(metricsSvc, authz.RoleAdmin), metricsHandler.Snapshot)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
