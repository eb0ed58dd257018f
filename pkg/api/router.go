package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"portfolio-site/pkg/config"
	"portfolio-site/pkg/middleware"
	"portfolio-site/pkg/services"
	"portfolio-site/pkg/site"
)

const apiPrefix = "/api"

// IntakePath is the route an intake form posts to.
func IntakePath(kind services.Kind) string {
	return apiPrefix + "/" + string(kind)
}

// Endpoints lists the intake routes for the page script.
func Endpoints() site.Endpoints {
	return site.Endpoints{
		Quote:      IntakePath(services.KindQuote),
		Newsletter: IntakePath(services.KindNewsletter),
		Contact:    IntakePath(services.KindContact),
	}
}

// NewRouter builds the single route table for the site.
func NewRouter(cfg *config.Config, h *Handlers, log *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Recovered from panic",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.Logger(log))
	router.Use(middleware.Security())

	if cfg.MetricsEnabled {
		p := ginprometheus.NewPrometheus("portfolio")
		p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
			if route := c.FullPath(); route != "" {
				return route
			}
			return "unmatched"
		}
		p.Use(router)
	}

	router.GET("/", h.Index)
	router.HEAD("/", h.Index)
	router.GET("/health", h.HealthCheck)
	router.StaticFS("/static", site.StaticFS())

	api := router.Group(apiPrefix,
		middleware.CORS(cfg.AllowedOrigins),
		middleware.BodyLimit(cfg.MaxBodyBytes),
	)
	for _, form := range services.Forms() {
		api.POST("/"+string(form.Kind), h.Intake(form))
	}
	api.OPTIONS("/*path", middleware.Preflight)

	return router
}
