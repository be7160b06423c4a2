package server

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lk2023060901/ai-chatbox-backend/internal/chat/service"
	"github.com/lk2023060901/ai-chatbox-backend/internal/conf"
	"github.com/lk2023060901/ai-chatbox-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-chatbox-backend/internal/pkg/metrics"
	"github.com/lk2023060901/ai-chatbox-backend/web"
)

type HTTPServer struct {
	server *http.Server
	logger *logger.Logger
}

func NewHTTPServer(
	config *conf.Config,
	log *logger.Logger,
	chatService *service.ChatService,
) (*HTTPServer, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(logger.GinRecovery(log))
	router.Use(logger.GinLogger(log))
	router.Use(metricsMiddleware())
	if len(config.CORS.AllowedOrigins) > 0 {
		router.Use(corsMiddleware(config.CORS.AllowedOrigins))
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 内嵌浏览器聊天客户端
	if err := registerWebClient(router); err != nil {
		return nil, err
	}

	// API routes
	api := router.Group("/api/v1")
	chatService.RegisterRoutes(api)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)

	return &HTTPServer{
		server: &http.Server{
			Addr:    addr,
			Handler: router,
		},
		logger: log,
	}, nil
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// registerWebClient 注册内嵌静态站点：/ 返回 index.html，/static/* 为资源
func registerWebClient(router *gin.Engine) error {
	staticFS, err := fs.Sub(web.Assets, "static")
	if err != nil {
		return fmt.Errorf("failed to mount embedded web client: %w", err)
	}

	router.GET("/", func(c *gin.Context) {
		index, err := web.Assets.ReadFile("static/index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "web client unavailable")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// metricsMiddleware 记录请求计数与耗时
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// 用路由模板做 path 标签，避免基数爆炸
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}

// corsMiddleware 按配置的来源白名单加 CORS 头
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			if allowAll {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
