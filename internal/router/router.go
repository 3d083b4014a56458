package router

import (
	"net/http"
	"time"

	"github.com/Charusm03/todo-app/internal/apierror"
	"github.com/Charusm03/todo-app/internal/config"
	"github.com/Charusm03/todo-app/internal/handler"
	"github.com/Charusm03/todo-app/internal/middleware"
	"github.com/Charusm03/todo-app/internal/policy"
	"github.com/Charusm03/todo-app/internal/repository"
	"github.com/Charusm03/todo-app/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	todoSvc := service.NewTodoService(todoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	todosH := handler.NewTodosHandler(todoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "RBAC Todo API Server",
			"endpoints": []string{
				"POST /api/auth/register",
				"POST /api/auth/login",
				"GET /api/todos",
				"POST /api/todos",
				"PUT /api/todos/:id",
				"PATCH /api/todos/:id/toggle",
				"DELETE /api/todos/:id",
			},
		})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apierror.New("Route not found"))
	})

	api := r.Group("/api")

	api.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(rdb), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	// Every todo route is permission-gated before its handler runs, so a
	// denied role gets 403 no matter what the target id looks like.
	todos := api.Group("/todos", jwtMW)
	{
		todos.GET("", middleware.RequirePermission(policy.OpRead), todosH.List)
		todos.POST("", middleware.RequirePermission(policy.OpCreate), todosH.Create)
		todos.PUT("/:id", middleware.RequirePermission(policy.OpUpdate), todosH.Update)
		todos.PATCH("/:id/toggle", middleware.RequirePermission(policy.OpToggle), todosH.Toggle)
		todos.DELETE("/:id", middleware.RequirePermission(policy.OpDelete), todosH.Delete)
	}

	// User listing sits outside the todo policy table — plain role gate.
	api.GET("/users", jwtMW, middleware.RequireRole(policy.RoleAdmin), usersH.List)

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
