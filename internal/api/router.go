package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	authHandler "fordinner/internal/api/handlers/auth"
	"fordinner/internal/api/handlers/health"
	recipeHandler "fordinner/internal/api/handlers/recipe"
	"fordinner/internal/api/middleware"
	"fordinner/internal/core/mealdb"
	recipeService "fordinner/internal/core/recipe"
	userService "fordinner/internal/core/user"
	"fordinner/internal/infrastructure/cache"
	"fordinner/internal/infrastructure/config"
	"fordinner/internal/pkg/common"
	"fordinner/internal/repository/repomanager"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// per-request deadline; covers the external source call too
	timeoutDuration = 30 * time.Second
	// request body limit (1MB) — this API only carries small JSON
	maxBodySize = 1 << 20
)

// SetupRouter wires services, middleware and routes.
func SetupRouter(cfg *config.Config, db *sql.DB, cacheService *cache.Service) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// per-request timeout
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeTimeout,
			})
		}
	})

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("mealdb_base_url", cfg.MealDB.BaseURL),
		zap.Duration("mealdb_timeout", cfg.MealDB.Timeout),
	)

	rm := repomanager.NewPostgresRepositoryManager()
	source := mealdb.NewClient(cfg.MealDB, cacheService)

	users := userService.NewService(db, rm, cfg)
	recipes := recipeService.NewService(db, rm, source)

	includeDetails := !cfg.App.IsProduction()
	authH := authHandler.NewHandler(users, includeDetails)
	recipeH := recipeHandler.NewHandler(source, recipes, includeDetails)

	// health probes
	router.GET("/health", health.HealthCheck(cfg))
	router.GET("/ready", health.ReadinessCheck(db))
	router.GET("/live", health.LivenessCheck)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authH.HandleRegister)
			authGroup.POST("/login", authH.HandleLogin)
			authGroup.GET("/profile", middleware.Auth([]byte(cfg.JWT.Secret)), authH.HandleProfile)
		}

		recipeGroup := api.Group("/recipes")
		{
			// public discovery endpoints
			recipeGroup.GET("/search", recipeH.HandleSearch)
			recipeGroup.GET("/random", recipeH.HandleRandom)

			// saved-recipe endpoints (auth required)
			authed := recipeGroup.Group("", middleware.Auth([]byte(cfg.JWT.Secret)))
			{
				authed.POST("/save", recipeH.HandleSave)
				authed.GET("/saved", recipeH.HandleListSaved)
				authed.DELETE("/saved/:recipeId", recipeH.HandleUnsave)
			}

			recipeGroup.GET("/:mealId", recipeH.HandleGetByID)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
