package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"web-gateway/internal/platform/config"
	"web-gateway/internal/platform/logger"
	"web-gateway/internal/platform/server"
)

func main() {
	if err := mainNoExit(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// mainNoExit 分離主要邏輯以避免 exitAfterDefer 問題，確保 defer 函數正常執行.
func mainNoExit() error {
	// APP_ENV 決定讀取 ./configs/<env>.yaml
	if env := os.Getenv("APP_ENV"); env != "" {
		config.SetEnv(env)
	}

	// 載入配置，日誌輪轉參數取自配置.
	if err := config.Load(); err != nil {
		return err
	}

	// 初始化日誌.
	if err := logger.InitLogger(); err != nil {
		return err
	}
	defer logger.CloseLogger()

	// 等待中斷信號
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "[System] 服務啟動", logger.WithAction("startup"), logger.WithDetails(map[string]interface{}{
		"env":  config.GetEnv(),
		"addr": config.GetServerAddr(),
	}))

	if err := server.Start(ctx); err != nil {
		logger.Critical(ctx, "HTTP 服務器異常結束", logger.WithDetails(map[string]interface{}{"error": err.Error()}))
		return err
	}

	logger.Info(context.Background(), "[System] 服務已關閉", logger.WithAction("shutdown"))
	return nil
}
