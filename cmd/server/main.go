package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/boardflow/backend/api/handler"
	"github.com/boardflow/backend/internal/bus"
	"github.com/boardflow/backend/internal/config"
	"github.com/boardflow/backend/internal/infrastructure/journal"
	"github.com/boardflow/backend/internal/infrastructure/monitor"
	pgInfra "github.com/boardflow/backend/internal/infrastructure/postgres"
	redisInfra "github.com/boardflow/backend/internal/infrastructure/redis"
	"github.com/boardflow/backend/internal/middleware"
	"github.com/boardflow/backend/internal/router"
	"github.com/boardflow/backend/internal/services"
	"github.com/boardflow/backend/internal/services/lifecycle"
	"github.com/boardflow/backend/pkg/httpcontext"
	"github.com/boardflow/backend/pkg/logger"
	"github.com/boardflow/backend/repository/postgres"
	activityUC "github.com/boardflow/backend/usecase/activity"
	boardUC "github.com/boardflow/backend/usecase/board"
	checklistUC "github.com/boardflow/backend/usecase/checklist"
	columnUC "github.com/boardflow/backend/usecase/column"
	commentUC "github.com/boardflow/backend/usecase/comment"
	labelUC "github.com/boardflow/backend/usecase/label"
	memberUC "github.com/boardflow/backend/usecase/member"
	taskUC "github.com/boardflow/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	journalStore, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		zapLogger.Fatal("failed to open activity journal", zap.Error(err))
	}
	manager.Register("journal", func(ctx context.Context) error {
		return journalStore.Close()
	})

	mon := monitor.New(pool, redisClient, journalStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	boardRepo := postgres.NewBoardRepository(pool)
	columnRepo := postgres.NewColumnRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	checklistRepo := postgres.NewChecklistRepository(pool)
	labelRepo := postgres.NewLabelRepository(pool)
	memberRepo := postgres.NewMemberRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	eventBus := bus.New(logger.Component(zapLogger, "bus"))
	presence := services.NewPresence(redisClient, cfg.Stream.PresenceTTL, logger.Component(zapLogger, "presence"))

	flusher := services.NewJournalFlusher(
		journalStore,
		mon,
		activityRepo,
		notificationRepo,
		logger.Component(zapLogger, "journal_flusher"),
		services.FlusherConfig{
			Interval:   cfg.Journal.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Journal.MaxRetry,
		},
	)
	flusher.Start()
	manager.Register("journal_flusher", func(ctx context.Context) error {
		flusher.Stop(ctx)
		return nil
	})

	recorder := activityUC.NewRecorder(activityRepo, notificationRepo, eventBus, flusher, logger.Component(zapLogger, "activity"))

	boardUseCase := boardUC.New(boardRepo, columnRepo, taskRepo, labelRepo, memberRepo, eventBus, zapLogger)
	columnUseCase := columnUC.New(columnRepo, taskRepo, eventBus, recorder, zapLogger)
	taskUseCase := taskUC.New(taskRepo, columnRepo, eventBus, recorder, zapLogger)
	commentUseCase := commentUC.New(commentRepo, taskRepo, columnRepo, eventBus, recorder, zapLogger)
	checklistUseCase := checklistUC.New(checklistRepo, taskRepo, eventBus, zapLogger)
	labelUseCase := labelUC.New(labelRepo, eventBus, zapLogger)
	memberUseCase := memberUC.New(memberRepo, eventBus, zapLogger)
	activityUseCase := activityUC.New(activityRepo, notificationRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Board:     apiHandler.NewBoardHandler(boardUseCase, presence, ctxAdapter, zapLogger),
		Column:    apiHandler.NewColumnHandler(columnUseCase, ctxAdapter, zapLogger),
		Task:      apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Comment:   apiHandler.NewCommentHandler(commentUseCase, ctxAdapter, zapLogger),
		Checklist: apiHandler.NewChecklistHandler(checklistUseCase, ctxAdapter, zapLogger),
		Label:     apiHandler.NewLabelHandler(labelUseCase, ctxAdapter, zapLogger),
		Member:    apiHandler.NewMemberHandler(memberUseCase, ctxAdapter, zapLogger),
		Activity:  apiHandler.NewActivityHandler(activityUseCase, ctxAdapter, zapLogger),
		Stream: apiHandler.NewStreamHandler(
			eventBus,
			presence,
			cfg.Stream.KeepaliveInterval,
			cfg.Stream.BufferSize,
			ctxAdapter,
			logger.Component(zapLogger, "stream"),
		),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
