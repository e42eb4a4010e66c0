package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"leds/define"
)

// handleGetAnimations 获取可用动画列表
func (s *Server) handleGetAnimations(c *gin.Context) {
	response := AnimationListResponse{
		AvailableList: s.engine.GetRegisteredAnimations(),
	}
	if name, _, ok := s.engine.Current(); ok {
		response.Current = name.String()
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   response,
	})
}

// handleStartAnimation 启动动画
func (s *Server) handleStartAnimation(c *gin.Context) {
	var req AnimationStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "无效的动画请求：" + err.Error(),
		})
		return
	}

	name, ok := define.ParseAnimationName(req.Name)
	if !ok {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("无效的动画类型：%s，可用动画: %v", req.Name, s.engine.GetRegisteredAnimations()),
		})
		return
	}

	if !s.engine.HasSink() {
		c.JSON(http.StatusServiceUnavailable, ApiResponse{
			Status: "error",
			Error:  "未连接 LED 设备",
		})
		return
	}

	s.engine.Start(name)

	c.JSON(http.StatusOK, ApiResponse{
		Status:  "success",
		Message: fmt.Sprintf("%s 动画已启动", name),
		Data: map[string]any{
			"name": name.String(),
		},
	})
}
