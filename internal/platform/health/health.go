package health

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"web-gateway/internal/httputil"
	"web-gateway/internal/platform/config"
	"web-gateway/internal/platform/converter"

	"github.com/gin-gonic/gin"
)

const (
	statusHealthy = "healthy"
	statusWarning = "warning"

	memoryMB        = 1024 * 1024
	memoryThreshold = 1024 // 1GB
)

// 記錄服務啟動時間.
var startTime = time.Now()

// Handler 健康檢查處理器.
type Handler struct {
	converters converter.List
}

// NewHealthHandler 創建新的健康檢查處理器.
func NewHealthHandler(converters converter.List) *Handler {
	return &Handler{converters: converters}
}

// Report 健康檢查結果.
type Report struct {
	Status    string       `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	App       AppInfo      `json:"app"`
	System    SystemStatus `json:"system"`
}

// AppInfo 應用程式資訊.
type AppInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Debug   bool   `json:"debug"`
}

// SystemStatus 系統狀態.
type SystemStatus struct {
	Status  string                 `json:"status"`
	Uptime  string                 `json:"uptime"`
	Details map[string]interface{} `json:"details"`
}

// HealthCheck 健康檢查端點.
func (h *Handler) HealthCheck(c *gin.Context) {
	h.converters.Respond(c, http.StatusOK, httputil.Success(h.report()))
}

func (h *Handler) report() Report {
	app := AppInfo{Version: os.Getenv("APP_VERSION")}
	if cfg := config.Get(); cfg != nil {
		app.Name = cfg.App.Name
		app.Debug = cfg.App.Debug
		if app.Version == "" {
			app.Version = cfg.App.Version
		}
	}
	if app.Version == "" {
		app.Version = "NO_VERSION_SET"
	}

	system := checkSystemResources()
	status := statusHealthy
	if system.Status != statusHealthy {
		status = system.Status
	}

	return Report{
		Status:    status,
		Timestamp: time.Now(),
		App:       app,
		System:    system,
	}
}

// checkSystemResources 檢查系統資源.
func checkSystemResources() SystemStatus {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	details := map[string]interface{}{
		"goroutines": runtime.NumGoroutine(),
		"memory": map[string]interface{}{
			"alloc":       fmt.Sprintf("%.2f MB", float64(m.Alloc)/memoryMB),
			"total_alloc": fmt.Sprintf("%.2f MB", float64(m.TotalAlloc)/memoryMB),
			"sys":         fmt.Sprintf("%.2f MB", float64(m.Sys)/memoryMB),
			"num_gc":      m.NumGC,
		},
		"num_cpu": runtime.NumCPU(),
	}

	status := statusHealthy
	if m.Sys/memoryMB > memoryThreshold {
		status = statusWarning
		details["memory_warning"] = "Memory usage is high"
	}

	return SystemStatus{
		Status:  status,
		Uptime:  time.Since(startTime).String(),
		Details: details,
	}
}
