package middleware

import (
	"fmt"
	"time"

	"web-gateway/internal/platform/logger"

	"github.com/gin-gonic/gin"
)

// AccessLogMiddleware 以 GCP httpRequest 格式記錄每個請求
func AccessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		req := c.Request
		logger.Info(req.Context(), fmt.Sprintf("%s %s", req.Method, req.URL.Path),
			logger.WithAction("access"),
			logger.WithHTTPRequest(&logger.HTTPRequest{
				RequestMethod: req.Method,
				RequestURL:    req.URL.RequestURI(),
				RequestSize:   req.ContentLength,
				Status:        c.Writer.Status(),
				ResponseSize:  int64(c.Writer.Size()),
				UserAgent:     req.UserAgent(),
				RemoteIP:      GetClientIP(c),
				Latency:       fmt.Sprintf("%.3fs", time.Since(start).Seconds()),
				Protocol:      req.Proto,
			}))
	}
}

// GetClientIP 獲取客戶端真實 IP
func GetClientIP(c *gin.Context) string {
	// 反向代理會帶 X-Real-IP
	if realIP := c.Request.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.ClientIP()
}
