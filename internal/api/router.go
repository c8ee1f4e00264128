package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jengzang/tours-backend-go/internal/cache"
	"github.com/jengzang/tours-backend-go/internal/config"
	"github.com/jengzang/tours-backend-go/internal/database"
	"github.com/jengzang/tours-backend-go/internal/handler"
	"github.com/jengzang/tours-backend-go/internal/middleware"
	"github.com/jengzang/tours-backend-go/internal/repository"
	"github.com/jengzang/tours-backend-go/internal/service"
	"github.com/jengzang/tours-backend-go/pkg/response"
)

// Dependencies are the collaborators the router wires into handlers
type Dependencies struct {
	DB    *database.DB
	Cache cache.TourCache
	// Stop ends background work started by middleware
	Stop <-chan struct{}
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	tourRepo := repository.NewTourRepository(deps.DB)
	poiRepo := repository.NewPOIRepository(deps.DB)
	projectRepo := repository.NewProjectRepository(deps.DB)
	membershipRepo := repository.NewMembershipRepository(deps.DB)

	members := service.NewMembershipChecker(membershipRepo)
	notifier := service.NewChangeNotifier()
	geometry := service.NewTourGeometryUpdater(tourRepo, poiRepo)
	poiService := service.NewPOIService(deps.DB, tourRepo, poiRepo, members, notifier)
	tourService := service.NewTourService(deps.DB, tourRepo, projectRepo, poiRepo, poiService, members, notifier, deps.Cache)
	projectService := service.NewProjectService(projectRepo, members)

	notifier.Subscribe(geometry.HandleChange)
	notifier.OnCommitted(tourService.InvalidatePublished)

	tourHandler := handler.NewTourHandler(tourService, poiService)
	poiHandler := handler.NewPOIHandler(poiService)
	projectHandler := handler.NewProjectHandler(projectService)
	publicHandler := handler.NewPublicHandler(tourService)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		status, message := http.StatusOK, "Tours Backend API is running"
		if err := deps.DB.PingContext(c.Request.Context()); err != nil {
			status, message = http.StatusServiceUnavailable, "database unavailable"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "message": message})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	api := r.Group("/api")
	{
		public := api.Group("/public")
		limiter := middleware.NewRateLimiter(cfg.RateLimit.PublicPerHour, time.Hour, cfg.RateLimit.Burst)
		public.Use(middleware.RateLimit(limiter, deps.Stop))
		{
			public.GET("/tours", publicHandler.ListTours)
			public.GET("/tours/:id", publicHandler.GetTour)
		}

		authed := api.Group("")
		authed.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Issuer))
		{
			projects := authed.Group("/projects")
			{
				projects.GET("", projectHandler.ListProjects)
				projects.POST("", projectHandler.CreateProject)
				projects.GET("/:id", projectHandler.GetProject)
			}

			tours := authed.Group("/tours")
			{
				tours.GET("", tourHandler.ListTours)
				tours.POST("", tourHandler.CreateTour)
				tours.GET("/:id", tourHandler.GetTour)
				tours.PATCH("/:id", tourHandler.UpdateTour)
				tours.DELETE("/:id", tourHandler.DeleteTour)
				tours.PUT("/:id/pois/order", tourHandler.ReorderPOIs)
			}

			pois := authed.Group("/pois")
			{
				pois.POST("", poiHandler.CreatePOI)
				pois.GET("/:id", poiHandler.GetPOI)
				pois.PATCH("/:id", poiHandler.UpdatePOI)
				pois.DELETE("/:id", poiHandler.DeletePOI)
			}
		}
	}

	return r
}
