package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lk2023060901/ai-chatbox-backend/internal/ai/provider/openai"
	providertypes "github.com/lk2023060901/ai-chatbox-backend/internal/ai/provider/types"
	chatbiz "github.com/lk2023060901/ai-chatbox-backend/internal/chat/biz"
	chatservice "github.com/lk2023060901/ai-chatbox-backend/internal/chat/service"
	chatstorage "github.com/lk2023060901/ai-chatbox-backend/internal/chat/storage"
	"github.com/lk2023060901/ai-chatbox-backend/internal/conf"
	"github.com/lk2023060901/ai-chatbox-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-chatbox-backend/internal/server"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	// .env 先于配置加载，OPENAI_API_KEY 可以不落配置文件
	_ = godotenv.Load()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger with config
	logConfig := &logger.Config{
		Level:            config.Log.Level,
		Format:           config.Log.Format,
		Output:           config.Log.Output,
		EnableCaller:     config.Log.EnableCaller,
		EnableStacktrace: config.Log.EnableStacktrace,
		File: logger.FileConfig{
			Filename:   config.Log.File.Filename,
			MaxSize:    config.Log.File.MaxSize,
			MaxAge:     config.Log.File.MaxAge,
			MaxBackups: config.Log.File.MaxBackups,
			Compress:   config.Log.File.Compress,
		},
	}

	log, err := logger.New(logConfig)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize global logger
	if err := logger.InitGlobal(logConfig); err != nil {
		log.Fatal("failed to initialize global logger", zap.Error(err))
	}

	log.Info("config loaded successfully")

	// Initialize attachment staging store
	store, err := newStagingStore(config, log.Logger)
	if err != nil {
		log.Fatal("failed to initialize staging store", zap.Error(err))
	}

	// Initialize hosted API provider
	provider, err := openai.New(&providertypes.Config{
		APIKey:         config.OpenAI.APIKey,
		BaseURL:        config.OpenAI.BaseURL,
		Model:          config.OpenAI.Model,
		Timeout:        config.OpenAI.Timeout,
		FilePurpose:    config.OpenAI.FilePurpose,
		VectorStoreIDs: config.OpenAI.VectorStoreIDs,
	})
	if err != nil {
		log.Fatal("failed to initialize openai provider", zap.Error(err))
	}

	// Initialize use cases and services
	shaper := &chatbiz.Shaper{
		Model:          config.OpenAI.Model,
		VectorStoreIDs: config.OpenAI.VectorStoreIDs,
		FallbackPrompt: config.Upload.FallbackPrompt,
	}
	chatUseCase := chatbiz.NewChatUseCase(shaper, provider, provider, store, log.Logger)
	chatService := chatservice.NewChatService(chatUseCase, store, config.Upload.MaxSizeBytes, log.Logger)

	// Initialize HTTP server
	httpServer, err := server.NewHTTPServer(config, log, chatService)
	if err != nil {
		log.Fatal("failed to initialize HTTP server", zap.Error(err))
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

// newStagingStore 按配置选择附件暂存后端
func newStagingStore(config *conf.Config, log *zap.Logger) (chatstorage.Store, error) {
	switch config.Storage.Backend {
	case "minio":
		return chatstorage.NewMinIOStore(context.Background(), &chatstorage.MinIOConfig{
			Endpoint:  config.Storage.MinIO.Endpoint,
			AccessKey: config.Storage.MinIO.AccessKey,
			SecretKey: config.Storage.MinIO.SecretKey,
			UseSSL:    config.Storage.MinIO.UseSSL,
			Bucket:    config.Storage.MinIO.Bucket,
		}, log)
	default:
		return chatstorage.NewLocalStore(config.Storage.Local.Dir, log)
	}
}
