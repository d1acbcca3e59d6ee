package server

import (
	"web-gateway/internal/demo"
	"web-gateway/internal/httputil"
	"web-gateway/internal/platform/config"
	"web-gateway/internal/platform/converter"
	"web-gateway/internal/platform/health"
	"web-gateway/internal/platform/middleware"

	"github.com/gin-gonic/gin"
)

// securityHeadersMiddleware 添加安全標頭
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// Converters 依配置建立轉換器清單：預設清單經替代 JSON 與文字轉換器設定.
func Converters(cfg *config.Config) (converter.List, error) {
	var opts converter.Options
	if cfg != nil {
		opts = converter.Options{
			DateLayout: cfg.Codec.DateLayout(),
			Location:   cfg.Codec.Location(),
			Charset:    cfg.Codec.TextCharset(),
		}
	}
	return converter.Configure(converter.Defaults(), opts)
}

// Router 設定路由
//
// 錯誤處理中間件放在最後，緊貼業務處理器，其 panic 與 c.Errors 由它統一寫出.
func Router(converters converter.List) *gin.Engine {
	r := gin.New()

	jsonConverter, ok := converters.JSON()
	if !ok {
		jsonConverter = converter.NewJSON(converter.Options{})
	}

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.AccessLogMiddleware())
	r.Use(securityHeadersMiddleware())
	r.Use(httputil.ExceptionResolver(jsonConverter))

	healthHandler := health.NewHealthHandler(converters)
	r.GET("/health", healthHandler.HealthCheck)

	demo.NewHandler(converters).Register(r)

	return r
}
