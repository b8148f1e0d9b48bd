package servehttp

import (
	"net/http"
	"time"
	"tracker/account"
	"tracker/bizerror"
	"tracker/config"
	"tracker/domain/issue"
	"tracker/domain/team"
	"tracker/domain/workspace"
	"tracker/infra/ratelimit"
	"tracker/infra/tracing"
	"tracker/session"
	"tracker/sessions"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Health struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
}

// BuildEngine assembles middleware and every route of the service.
func BuildEngine(cfg *config.Config) *gin.Engine {
	engine := gin.Default()
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// ErrorHandling stays inside TracingIngress so recovered failures are tagged
	engine.Use(tracing.TracingIngress())
	engine.Use(bizerror.ErrorHandling())
	engine.Use(ratelimit.NewLimiter(cfg.RateLimitWindow, cfg.RateLimitMax).Middleware())
	engine.NoRoute(bizerror.NoRoute)

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, &Health{
			Success:     true,
			Message:     cfg.ServiceName + " is running",
			Timestamp:   time.Now().UTC(),
			Environment: cfg.Environment,
		})
	})

	securityMiddle := session.SimpleAuthFilter()
	account.RegisterUsersHandler(engine)
	sessions.RegisterSessionsHandler(engine)
	sessions.RegisterSessionHandler(engine, securityMiddle)
	workspace.RegisterWorkspaceRestApis(engine, securityMiddle)
	team.RegisterTeamsRestApis(engine, securityMiddle)
	issue.RegisterIssuesRestApis(engine, securityMiddle)

	return engine
}
