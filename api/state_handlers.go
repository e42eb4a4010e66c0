package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"leds/define"
	"leds/state"
)

// handleGetStates 列出所有状态及其对应的动画
func (s *Server) handleGetStates(c *gin.Context) {
	states := make([]map[string]any, 0, len(define.SystemStates()))
	for _, st := range define.SystemStates() {
		entry := map[string]any{"state": st.String()}
		if name, ok := state.AnimationFor(st); ok {
			entry["animation"] = name.String()
		}
		states = append(states, entry)
	}

	current, _ := s.handler.State()
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data: map[string]any{
			"current": current.String(),
			"states":  states,
		},
	})
}

// handleSetState 注入一个状态，与收到对应的 MQTT 消息效果相同
func (s *Server) handleSetState(c *gin.Context) {
	var req StateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "无效的状态请求：" + err.Error(),
		})
		return
	}

	st, ok := define.ParseSystemState(req.State)
	if !ok {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  fmt.Sprintf("无效的状态：%s", req.State),
		})
		return
	}

	s.handler.OnStateChange(st)

	c.JSON(http.StatusOK, ApiResponse{
		Status:  "success",
		Message: fmt.Sprintf("状态已切换为 %s", st),
		Data: map[string]any{
			"state": st.String(),
		},
	})
}
