package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// handleStatus 获取引擎状态
func (s *Server) handleStatus(c *gin.Context) {
	current, changedAt := s.handler.State()

	workers := s.engine.Registry().Workers()
	sort.Slice(workers, func(i, j int) bool { return workers[i].ID < workers[j].ID })
	infos := make([]WorkerInfo, 0, len(workers))
	for _, w := range workers {
		infos = append(infos, WorkerInfo{
			ID:        w.ID,
			Name:      w.Name,
			State:     w.State().String(),
			StartedAt: w.StartedAt,
		})
	}

	response := StatusResponse{
		HasDevice:      s.engine.HasSink(),
		State:          current.String(),
		RunningWorkers: len(infos),
		Workers:        infos,
		Stats:          s.engine.Stats(),
		Uptime:         time.Since(s.startTime).Round(time.Second).String(),
		Version:        s.version,
	}
	if !changedAt.IsZero() {
		response.StateChangedAt = &changedAt
	}
	if name, token, ok := s.engine.Current(); ok {
		response.Animation = name.String()
		response.Token = uint64(token)
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   response,
	})
}

// handleHealth 健康检查
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status:  "success",
		Message: "LED ring service is running",
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
			Version:   s.version,
		},
	})
}
