// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"consultor-ai-api/internal/config"
	"consultor-ai-api/internal/infrastructure/persistence/redis"
	"consultor-ai-api/internal/interfaces/http/handler"
	"consultor-ai-api/internal/interfaces/http/middleware"
)

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Health    *handler.HealthHandler
	Chat      *handler.ChatHandler
	Session   *handler.SessionHandler
	Retrieval *handler.RetrievalHandler
	Knowledge *handler.KnowledgeHandler
}

// Router HTTP 路由器
type Router struct {
	engine   *gin.Engine
	cfg      *config.Config
	handlers Handlers
	redis    *redis.Client
}

// New 创建新的路由器
func New(cfg *config.Config, handlers Handlers, redisClient *redis.Client) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:   gin.New(),
		cfg:      cfg,
		handlers: handlers,
		redis:    redisClient,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	r.engine.GET("/health", r.handlers.Health.Health)
	r.engine.GET("/live", r.handlers.Health.Live)
	r.engine.GET("/ready", r.handlers.Health.Ready)

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	var rateLimit gin.HandlerFunc
	if r.redis != nil {
		rateLimit = middleware.NewRateLimitMiddleware(middleware.RateLimitConfig{
			Enabled:           r.cfg.Security.RateLimit.Enabled,
			RequestsPerMinute: r.cfg.Security.RateLimit.RequestsPerMinute,
		}, r.redis.Redis())
	} else {
		rateLimit = func(c *gin.Context) { c.Next() }
	}

	v1 := r.engine.Group("/v1", rateLimit)
	{
		v1.POST("/chat", r.handlers.Chat.Chat)

		sessions := v1.Group("/sessions")
		{
			sessions.PUT("/:id/profile", r.handlers.Session.UpdateProfile)
			sessions.GET("/:id/profile", r.handlers.Session.GetProfile)
			sessions.GET("/:id/turns", r.handlers.Session.ListTurns)
			sessions.DELETE("/:id", r.handlers.Session.DeleteSession)
		}

		retrieval := v1.Group("/retrieval")
		{
			retrieval.POST("/search", r.handlers.Retrieval.Search)
		}

		knowledge := v1.Group("/knowledge")
		{
			knowledge.GET("/chunks", r.handlers.Knowledge.ListChunks)
			knowledge.GET("/chunks/:id/similar", r.handlers.Knowledge.SimilarChunks)
		}
	}
}
