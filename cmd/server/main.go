// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ask-docs-go/internal/chunker"
	"ask-docs-go/internal/config"
	"ask-docs-go/internal/handler"
	"ask-docs-go/internal/middleware"
	"ask-docs-go/internal/pipeline"
	"ask-docs-go/internal/service"
	"ask-docs-go/pkg/embedding"
	"ask-docs-go/pkg/llm"
	"ask-docs-go/pkg/log"
	"ask-docs-go/pkg/pdf"
	"ask-docs-go/pkg/vectorstore"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 加载 .env 并校验凭证，缺失则直接退出
	_ = godotenv.Load()
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		log.Fatalf("GOOGLE_API_KEY 未设置，服务无法启动")
	}

	// 4. 初始化外部客户端与向量库（共享只读依赖，注入到请求处理链）
	ctx := context.Background()
	embeddingClient, err := embedding.NewClient(ctx, cfg.Embedding, apiKey)
	if err != nil {
		log.Fatal("Embedding 客户端初始化失败", err)
	}
	defer embeddingClient.Close()

	llmClient, err := llm.NewClient(ctx, cfg.LLM, apiKey)
	if err != nil {
		log.Fatal("LLM 客户端初始化失败", err)
	}
	defer llmClient.Close()

	store, err := vectorstore.NewStore(cfg.VectorStore.Path)
	if err != nil {
		log.Fatal("向量库初始化失败", err)
	}

	// 5. 组装请求处理管道与服务
	extractor := pdf.NewExtractor()
	splitter := chunker.New(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap)
	processor := pipeline.NewProcessor(extractor, splitter, embeddingClient, store, cfg.Retrieval.TopK)
	qaService := service.NewQAService(processor, llmClient)

	// 6. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 7. 注册路由
	qaHandler := handler.NewQAHandler(qaService)
	r.GET("/", qaHandler.Root)
	r.POST("/ask_question/", qaHandler.AskQuestion)

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
