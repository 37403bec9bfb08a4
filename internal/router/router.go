package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/dto"
	"github.com/yukikurage/project-management-api/internal/handlers"
	"github.com/yukikurage/project-management-api/internal/logger"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/services"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Dependencies are the services the routes are served from.
type Dependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	AuthService    *services.AuthService
	ProjectService *services.ProjectService
	TaskService    *services.TaskService
	Tracing        bool
}

// New builds the gin engine with the full route table.
func New(deps Dependencies) *gin.Engine {
	dto.RegisterValidators()

	cfg := deps.Config
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
	)
	if deps.Tracing {
		r.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	r.Use(
		middleware.CORS(cfg.HTTP.CORSAllowOrigins),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	userHandler := handlers.NewUserHandler(deps.AuthService)
	projectHandler := handlers.NewProjectHandler(deps.ProjectService)
	taskHandler := handlers.NewTaskHandler(deps.TaskService)

	requireAuth := middleware.RequireAuth(deps.AuthService)

	r.GET("/", handlers.Root)
	r.GET("/health", handlers.Health)

	// Auth routes
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", requireAuth, authHandler.Logout)
	r.GET("/me", requireAuth, authHandler.GetCurrentUser)

	// Resource routes are public unless auth.require_token is set.
	resources := r.Group("")
	if cfg.Auth.RequireToken {
		resources.Use(requireAuth)
	} else {
		resources.Use(middleware.OptionalAuth(deps.AuthService))
	}
	{
		resources.GET("/users", userHandler.ListUsers)

		resources.POST("/addprojects", projectHandler.CreateProject)
		resources.GET("/getprojects", projectHandler.ListProjects)
		resources.GET("/projects/:id", projectHandler.GetProject)
		resources.PUT("/updateprojects/:id", projectHandler.UpdateProject)
		resources.DELETE("/deleteprojects/:id", projectHandler.DeleteProject)

		resources.POST("/tasks", taskHandler.CreateTask)
		resources.POST("/addtasks", taskHandler.CreateTask)
		resources.GET("/gettasks", taskHandler.ListTasks)
		resources.GET("/projects/:id/tasks", taskHandler.ListProjectTasks)
		resources.POST("/projects/:id/tasks/generate", taskHandler.GenerateTasks)
		resources.PUT("/updatetasks/:id", taskHandler.UpdateTask)
		resources.DELETE("/deletetasks/:id", taskHandler.DeleteTask)
	}

	return r
}
