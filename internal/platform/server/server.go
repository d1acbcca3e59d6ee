package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"web-gateway/internal/platform/config"
	"web-gateway/internal/platform/logger"

	"github.com/gin-gonic/gin"
)

// Start 啟動伺服器，ctx 取消後優雅關閉.
func Start(ctx context.Context) error {
	cfg := config.Get()
	if cfg == nil {
		return errors.New("config not loaded")
	}

	if !config.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}

	converters, err := Converters(cfg)
	if err != nil {
		return fmt.Errorf("configure converters: %w", err)
	}

	timeout := time.Duration(cfg.Server.Timeout) * time.Second
	srv := &http.Server{
		Addr:         config.GetServerAddr(),
		Handler:      Router(converters),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof(ctx, "伺服器正在監聽: %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("伺服器啟動失敗: %w", err)
	case <-ctx.Done():
	}

	logger.Infof(context.Background(), "收到關閉信號，正在優雅關閉伺服器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(context.Background(), "伺服器關閉逾時: %v", err)
		return fmt.Errorf("伺服器關閉失敗: %w", err)
	}

	logger.Infof(context.Background(), "伺服器已優雅關閉")
	return nil
}
