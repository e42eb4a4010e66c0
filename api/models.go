package api

import (
	"time"

	"leds/device"
)

// ApiResponse 统一 API 响应格式
type ApiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ===== 动画控制相关模型 =====

// AnimationStartRequest 启动动画请求
type AnimationStartRequest struct {
	Name string `json:"name" binding:"required"`
}

// AnimationListResponse 动画列表响应
type AnimationListResponse struct {
	Current       string   `json:"current,omitempty"`
	AvailableList []string `json:"availableList"`
}

// ===== 状态相关模型 =====

// StateRequest 注入状态请求
type StateRequest struct {
	State string `json:"state" binding:"required"`
}

// ===== 系统状态相关模型 =====

// StatusResponse 引擎状态响应
type StatusResponse struct {
	HasDevice      bool               `json:"hasDevice"`
	Animation      string             `json:"animation,omitempty"`
	Token          uint64             `json:"token,omitempty"`
	State          string             `json:"state"`
	StateChangedAt *time.Time         `json:"stateChangedAt,omitempty"`
	RunningWorkers int                `json:"runningWorkers"`
	Workers        []WorkerInfo       `json:"workers"`
	Stats          device.EngineStats `json:"stats"`
	Uptime         string             `json:"uptime"`
	Version        string             `json:"version"`
}

// WorkerInfo 播放 goroutine 信息
type WorkerInfo struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	StartedAt time.Time `json:"startedAt"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
