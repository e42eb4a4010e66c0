package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"leds/device"
	"leds/state"
)

// Server HTTP API 服务器
type Server struct {
	engine    *device.AnimationEngine
	handler   *state.Handler
	startTime time.Time
	version   string
}

// NewServer 创建新的 API 服务器实例
func NewServer(engine *device.AnimationEngine, handler *state.Handler) *Server {
	return &Server{
		engine:    engine,
		handler:   handler,
		startTime: time.Now(),
		version:   "1.0.0",
	}
}

// NewRouter 创建带 CORS 的 gin 引擎并注册路由
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // 允许的域，*表示允许所有
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s.SetupRoutes(r)
	return r
}

// SetupRoutes 设置 API 路由
func (s *Server) SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth) // 健康检查
		api.GET("/status", s.handleStatus) // 引擎状态

		// 动画控制路由
		animations := api.Group("/animations")
		{
			animations.GET("", s.handleGetAnimations)         // 获取可用动画列表
			animations.POST("/start", s.handleStartAnimation) // 启动动画
		}

		// 对话状态路由
		states := api.Group("/states")
		{
			states.GET("", s.handleGetStates)  // 获取所有状态
			states.POST("", s.handleSetState) // 注入一个状态
		}
	}
}
