package httpapi

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Innocent9712/much-to-do/Server/TodoKV/docs"
	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/todo"
)

type Handler struct {
	svc    *todo.Service
	assets http.Handler
	log    logrus.FieldLogger
}

type Options struct {
	// Assets receives every request no API route matches. Nil means 404.
	Assets      http.Handler
	Logger      logrus.FieldLogger
	CORSOrigins []string
	Swagger     bool
}

func NewHandler(svc *todo.Service, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	h := &Handler{svc: svc, assets: opts.Assets, log: log}

	r := gin.New()
	// Paths are matched exactly, on the escaped form the client sent;
	// anything else belongs to the assets.
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.HandleMethodNotAllowed = false
	r.UseRawPath = true
	r.UnescapePathValues = false

	r.Use(loggingMiddleware(log), gin.Recovery())

	// CORS covers the API only; asset responses pass through untouched.
	withCORS := corsMiddleware(opts.CORSOrigins)

	r.GET("/healthz", withCORS, h.handleHealth)

	api := r.Group("/api", withCORS)
	api.GET("/todos", h.handleListTodos)
	api.POST("/todos", h.handleCreateTodo)
	api.PUT("/todos/*id", h.handleUpdateTodo)
	api.DELETE("/todos/*id", h.handleDeleteTodo)
	// Preflights are answered by withCORS; plain OPTIONS requests fall
	// through like any unmatched method.
	api.OPTIONS("/todos", h.handleFallback)
	api.OPTIONS("/todos/*id", h.handleFallback)

	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(h.handleFallback)
	return r
}

func loggingMiddleware(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Info("request")
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
