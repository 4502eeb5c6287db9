package main

// @title           TrustaLab API
// @version         1.0
// @description     检测结果上链演示平台后端 API：结果上传、验证码/二维码验证、扫码会话与钱包连接
// @host            localhost:8080
// @BasePath        /api/v1

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/web3labscientis/trustlab/internal/app/config"
	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 2. 初始化日志
	zlog, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// 3. 初始化应用
	app, cleanup, err := InitializeApp(ctx, cfg, zlog)
	if err != nil {
		zlog.Errorf(ctx, "Failed to initialize app: %v", err)
		os.Exit(1)
	}
	defer cleanup()

	// 4. 创建 HTTP Server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. 启动 HTTP Server（后台 goroutine）
	serverErrChan := make(chan error, 1)
	go func() {
		zlog.Infof(ctx, "Starting HTTP server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	// 6. 优雅停机处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		zlog.Infof(ctx, "Received shutdown signal, gracefully shutting down...")
		gracefulShutdown(ctx, server, app, zlog)
	case err := <-serverErrChan:
		zlog.Errorf(ctx, "HTTP server error: %v", err)
		app.ScanService.Shutdown(ctx)
	}

	zlog.Infof(ctx, "Application stopped")
}

// gracefulShutdown 优雅停机
func gracefulShutdown(parent context.Context, server *http.Server, app *App, zlog logger.Logger) {
	ctx, cancel := context.WithTimeout(parent, 10*time.Second)
	defer cancel()

	// 1. 停止扫码会话，释放媒体流
	zlog.Infof(ctx, "Stopping scan session...")
	app.ScanService.Shutdown(ctx)

	// 2. 停止 HTTP Server
	zlog.Infof(ctx, "Stopping HTTP server...")
	if err := server.Shutdown(ctx); err != nil {
		zlog.Errorf(ctx, "HTTP server shutdown error: %v", err)
	} else {
		zlog.Infof(ctx, "HTTP server stopped gracefully")
	}
}
