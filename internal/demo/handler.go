// Package demo 提供走完整轉換與錯誤處理流程的示範端點.
package demo

import (
	"net/http"

	"web-gateway/internal/apperror"
	"web-gateway/internal/httputil"
	"web-gateway/internal/platform/converter"

	"github.com/gin-gonic/gin"
)

// Handler 示範端點.
type Handler struct {
	converters converter.List
	orders     map[string]*Order
}

// NewHandler 建立示範端點.
func NewHandler(converters converter.List) *Handler {
	return &Handler{
		converters: converters,
		orders:     map[string]*Order{},
	}
}

// Register 註冊路由.
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/api/v1/demo")
	g.POST("/echo", h.Echo)
	g.POST("/text", h.Text)
	g.GET("/app-error", h.AppError)
	g.GET("/panic", h.Panic)
}

// Echo 以 JSON 轉換器讀入訂單後原樣回傳.
func (h *Handler) Echo(c *gin.Context) {
	var order Order
	if err := h.converters.Bind(c, &order); err != nil {
		_ = c.Error(err)
		return
	}
	h.converters.Respond(c, http.StatusOK, httputil.Success(order))
}

// Text 以文字轉換器讀入本文後回傳.
func (h *Handler) Text(c *gin.Context) {
	var text string
	if err := h.converters.Bind(c, &text); err != nil {
		_ = c.Error(err)
		return
	}
	h.converters.Respond(c, http.StatusOK, "收到："+text)
}

// AppError 拋出應用錯誤.
func (h *Handler) AppError(c *gin.Context) {
	_ = c.Error(apperror.New(c.DefaultQuery("reason", "insufficient balance")))
}

// Panic 查詢不存在的訂單，觸發 nil pointer panic.
func (h *Handler) Panic(c *gin.Context) {
	order := h.orders[c.Query("id")]
	h.converters.Respond(c, http.StatusOK, order.ID)
}
