package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/handler/api"
	"course-enrollment/internal/handler/middleware"
	"course-enrollment/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Settlement *api.SettlementHandler
	Enrollment *api.EnrollmentHandler
	Class      *api.ClassHandler
	Selection  *api.SelectionHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, gatherer prometheus.Gatherer) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware, gatherer)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, auth *middleware.AuthMiddleware, gatherer prometheus.Gatherer) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := auth.RequireAuth()
	students := auth.RequireRole(user.RoleStudent, user.RoleAdmin)
	instructors := auth.RequireRole(user.RoleInstructor, user.RoleAdmin)
	admins := auth.RequireRole(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup.Group("/settlements"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Settlement.Settle, Mw: []gin.HandlerFunc{requireAuth, students}},
		})

		addRoutes(apiGroup.Group("/enrollments"), []route{
			{Method: http.MethodGet, Path: "/by-class", Handler: h.Enrollment.ByClass},
			{Method: http.MethodGet, Path: "/count", Handler: h.Enrollment.CountByInstructor},
			{Method: http.MethodGet, Path: "", Handler: h.Enrollment.ListByStudent, Mw: []gin.HandlerFunc{requireAuth}},
		})

		addRoutes(apiGroup.Group("/classes"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Class.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Class.Get},
			{Method: http.MethodPost, Path: "", Handler: h.Class.Create, Mw: []gin.HandlerFunc{requireAuth, instructors}},
			{Method: http.MethodPatch, Path: "/:id/approve", Handler: h.Class.Approve, Mw: []gin.HandlerFunc{requireAuth, admins}},
			{Method: http.MethodPatch, Path: "/:id/deny", Handler: h.Class.Deny, Mw: []gin.HandlerFunc{requireAuth, admins}},
		})

		selections := apiGroup.Group("/selections")
		selections.Use(requireAuth)
		{
			addRoutes(selections, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Selection.Create, Mw: []gin.HandlerFunc{students}},
				{Method: http.MethodGet, Path: "", Handler: h.Selection.List},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Selection.Remove},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
