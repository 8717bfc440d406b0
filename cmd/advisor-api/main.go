// Package main 业务咨询 API 服务入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"consultor-ai-api/internal/application/advisor"
	"consultor-ai-api/internal/application/retrieval"
	"consultor-ai-api/internal/application/simulation"
	"consultor-ai-api/internal/config"
	"consultor-ai-api/internal/domain/repository"
	"consultor-ai-api/internal/infrastructure/knowledge"
	"consultor-ai-api/internal/infrastructure/llm"
	"consultor-ai-api/internal/infrastructure/persistence/postgres"
	"consultor-ai-api/internal/infrastructure/persistence/redis"
	"consultor-ai-api/internal/interfaces/http/handler"
	"consultor-ai-api/internal/interfaces/http/router"
	"consultor-ai-api/pkg/logger"
	"consultor-ai-api/pkg/tracer"
)

// Version 版本信息，构建时注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件（如果存在）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting advisor-api",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
	)

	shutdownTracer, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init tracer", err)
	}
	defer func() {
		if err := shutdownTracer(ctx); err != nil {
			log.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// 知识目录：外部文件优先，缺省内置目录
	var knowledgeRepo *knowledge.Repository
	if cfg.Knowledge.CatalogPath != "" {
		knowledgeRepo, err = knowledge.NewRepositoryFromFile(cfg.Knowledge.CatalogPath)
		if err != nil {
			logger.Fatal(ctx, "failed to load knowledge catalog", err)
		}
	} else {
		knowledgeRepo = knowledge.NewRepository()
	}

	// 会话存储（必需）
	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Fatal(ctx, "failed to connect redis", err)
	}
	defer redisClient.Close()
	sessions := redis.NewSessionStore(redisClient, cfg.Session.TTL)

	// 审计持久化（可选）
	var (
		pgClient *postgres.Client
		turns    repository.ConversationRepository
	)
	if cfg.Database.Postgres.Enabled {
		pgClient, err = postgres.NewClient(&cfg.Database.Postgres)
		if err != nil {
			logger.Fatal(ctx, "failed to connect postgres", err)
		}
		defer pgClient.Close()
		turns = postgres.NewConversationRepo(pgClient)
	}

	// LLM 客户端：凭证缺失在此即失败
	factory, err := llm.NewEinoFactory(cfg)
	if err != nil {
		logger.Fatal(ctx, "failed to init llm factory", err)
	}
	llmClient := llm.NewClient(factory, &cfg.LLM)

	// 管线装配
	retriever := retrieval.NewEngine(knowledgeRepo)
	composer := advisor.NewComposer(llmClient, nil, cfg.Advisor.CitationsEnabled)
	simulator := simulation.NewEngine(llmClient)
	service := advisor.NewService(
		sessions,
		retriever,
		advisor.NewClassifier(),
		composer,
		simulator,
		turns,
		cfg.Knowledge.DefaultLanguage,
		cfg.Advisor.PersistTurns,
	)

	r := router.New(cfg, router.Handlers{
		Health:    handler.NewHealthHandler(Version, redisClient, pgClient),
		Chat:      handler.NewChatHandler(service),
		Session:   handler.NewSessionHandler(service),
		Retrieval: handler.NewRetrievalHandler(retriever),
		Knowledge: handler.NewKnowledgeHandler(knowledgeRepo, retriever),
	}, redisClient)

	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
