package app

import (
	"github.com/Collinul/home-task-management-sub001/internal/auth"
	"github.com/Collinul/home-task-management-sub001/internal/cache"
	"github.com/Collinul/home-task-management-sub001/internal/config"
	"github.com/Collinul/home-task-management-sub001/internal/handlers"
	"github.com/Collinul/home-task-management-sub001/internal/repo"
	"github.com/Collinul/home-task-management-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", livenessHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api")

	sessionStore := auth.NewStore(rdb, cfg.Redis.SessionTTL.Duration())
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireSession(sessionStore))

	taskRepo := repo.NewPGTaskRepo(db)
	categoryRepo := repo.NewPGCategoryRepo(db)
	householdRepo := repo.NewPGHouseholdRepo(db)
	taskCache := cache.NewTaskCache(rdb, cfg.Redis.DefaultTTL.Duration())

	taskSvc := service.NewTaskService(taskRepo, categoryRepo, householdRepo, userRepo, taskCache)
	registerTaskRoutes(protected, handlers.NewTaskHandler(taskSvc))

	categorySvc := service.NewCategoryService(categoryRepo, householdRepo)
	registerCategoryRoutes(protected, handlers.NewCategoryHandler(categorySvc))

	householdSvc := service.NewHouseholdService(householdRepo, userRepo)
	registerHouseholdRoutes(protected, handlers.NewHouseholdHandler(householdSvc))

	dashboardSvc := service.NewDashboardService(taskRepo, taskCache)
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc)
	protected.GET("/dashboard/stats", dashboardHandler.Stats)

	healthHandler := handlers.NewHealthHandler(repo.NewPGHealthRepo(db))
	protected.GET("/health", healthHandler.Check)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Household Tasks API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api",
		})
	}
}

func livenessHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.POST("/tasks", h.Create)
	api.GET("/tasks", h.List)
	api.GET("/tasks/upcoming", h.Upcoming)
	api.GET("/tasks/:id", h.GetByID)
	api.PATCH("/tasks/:id", h.Update)
	api.DELETE("/tasks/:id", h.Delete)
}

func registerCategoryRoutes(api *gin.RouterGroup, h *handlers.CategoryHandler) {
	api.GET("/categories", h.List)
	api.POST("/categories", h.Create)
	api.POST("/categories/initialize", h.Initialize)
	api.PATCH("/categories/:id", h.Update)
	api.DELETE("/categories/:id", h.Delete)
}

func registerHouseholdRoutes(api *gin.RouterGroup, h *handlers.HouseholdHandler) {
	api.GET("/households", h.List)
	api.POST("/households", h.Create)
	api.POST("/households/invite", h.Invite)
}
