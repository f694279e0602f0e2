package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"messaging-back/internal/api/http/handler"
	"messaging-back/internal/api/http/route"
	"messaging-back/internal/apperrors"
	"messaging-back/internal/config"
	"messaging-back/internal/identity"
	"messaging-back/internal/msg/outbox"
	"messaging-back/internal/realtime"
	"messaging-back/internal/repository"
	"messaging-back/internal/repository/cache"
	"messaging-back/internal/service"
	"messaging-back/pkg/jwt"
	"messaging-back/pkg/postgres"
	"messaging-back/pkg/redis"
	"messaging-back/pkg/server"
)

const dispatcherName = "chat"

type App struct {
	Cfg        *config.Config
	Log        *zap.Logger
	DB         postgres.Postgres
	RDB        redis.Redis // nil when redis is disabled
	Service    *Service
	Handler    *Handler
	Gateway    *realtime.Gateway
	Dispatcher *outbox.Dispatcher
	HTTPServer server.HTTPServer

	dispatchCtx    context.Context
	stopDispatcher context.CancelFunc
	dispatchers    sync.WaitGroup
}

type Repository struct {
	Tx           *repository.TxManager
	Conversation *repository.ConversationRepository
	Message      *repository.MessageRepository
	Receipt      *repository.ReceiptRepository
	Outbox       *repository.OutboxRepository
	Health       *repository.HealthRepository
}

type Service struct {
	Conversation *service.ConversationService
	Message      *service.MessageService
	Receipt      *service.ReceiptService
	Health       *service.HealthService
}

type Handler struct {
	Health       *handler.HealthHandler
	Conversation *handler.ConversationHandler
	Message      *handler.MessageHandler
	Receipt      *handler.ReceiptHandler
	Socket       *handler.SocketHandler
}

func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := initDB(&cfg.Database)
	if err != nil {
		log.Error("Failed to initialize database", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var rdb redis.Redis
	if cfg.Redis.Enable {
		rdb, err = initRedis(&cfg.Redis)
		if err != nil {
			db.Close()
			log.Error("Failed to initialize redis", zap.Error(err))
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
	}

	verifier, err := initVerifier(log, cfg.Key)
	if err != nil {
		closeStores(db, rdb)
		log.Error("Failed to initialize security", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize security: %w", err)
	}

	repo := initRepository(log, db)

	var participants service.ParticipantCache
	if rdb != nil {
		participants = cache.NewParticipantCache(rdb.Client(), cfg.ParticipantsCacheTTL)
		log.Debug("Participant cache initialized")
	}

	events := outbox.NewLog(repo.Outbox, outbox.LogConfig{
		BackoffUnit: cfg.Outbox.BackoffUnit,
		BackoffCap:  cfg.Outbox.BackoffCap,
		ClaimLease:  cfg.Outbox.ClaimLease,
	})

	svc := &Service{}

	svc.Conversation = service.NewConversationService(log, repo.Tx, repo.Conversation, participants)
	log.Debug("Conversation service initialized")

	svc.Message = service.NewMessageService(log, repo.Tx, repo.Message, repo.Conversation, events, svc.Conversation, cfg.MaxMessageLength)
	log.Debug("Message service initialized")

	svc.Receipt = service.NewReceiptService(log, repo.Receipt, svc.Message, svc.Conversation)
	log.Debug("Receipt service initialized")

	gateway := realtime.NewGateway(
		log,
		realtime.Config{
			FrameTimeout: cfg.WebSocket.FrameTimeout,
			Conn: realtime.ConnConfig{
				SendBuffer:   cfg.WebSocket.SendBuffer,
				ReadLimit:    cfg.WebSocket.ReadLimit,
				PingInterval: cfg.WebSocket.PingInterval,
				PongWait:     cfg.WebSocket.PongWait,
				WriteWait:    cfg.WebSocket.WriteWait,
			},
		},
		realtime.NewMemoryRooms(),
		svc.Conversation,
		svc.Message,
		svc.Receipt,
	)
	log.Debug("Realtime gateway initialized")

	svc.Health = service.NewHealthService(log, repo.Health, events, gateway)
	log.Debug("Health service initialized")

	registry := outbox.NewRegistry()
	gateway.Register(registry)

	dispatcher := outbox.NewDispatcher(log, outbox.Config{
		Name:           dispatcherName,
		PollInterval:   cfg.Outbox.PollInterval,
		BatchSize:      cfg.Outbox.BatchSize,
		WorkerCount:    cfg.Outbox.WorkerCount,
		HandlerTimeout: cfg.Outbox.HandlerTimeout,
	}, events, registry)
	log.Debug("Outbox dispatcher initialized")

	hdl := initHandler(log, cfg, verifier, svc, gateway)

	httpServer := initHTTPServer(log, cfg, verifier, hdl, gateway)

	dispatchCtx, stopDispatcher := context.WithCancel(context.Background())

	return &App{
		Cfg:        cfg,
		Log:        log,
		DB:         db,
		RDB:        rdb,
		Service:    svc,
		Handler:    hdl,
		Gateway:    gateway,
		Dispatcher: dispatcher,
		HTTPServer: httpServer,

		dispatchCtx:    dispatchCtx,
		stopDispatcher: stopDispatcher,
	}, nil
}

func MustNew(cfg *config.Config, log *zap.Logger) *App {
	app, err := New(cfg, log)
	if err != nil {
		panic(err)
	}
	return app
}

// Run blocks until the http server fails or stops. The dispatcher keeps running until Shutdown
// so that events committed by in-flight requests are still delivered.
func (a *App) Run() error {
	a.dispatchers.Go(func() {
		a.Dispatcher.Run(a.dispatchCtx)
	})

	a.Log.Info("Http server started", zap.Uint16("port", a.Cfg.HTTPServer.Port))

	return a.HTTPServer.Run()
}

// Shutdown stops intake first, then drains the dispatcher, then releases the stores.
func (a *App) Shutdown() error {
	var errs []error

	if err := a.HTTPServer.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("failed to shutdown http server: %w", err))
	}

	a.Log.Debug("Http server shutdown")

	a.stopDispatcher()
	a.dispatchers.Wait()

	a.Log.Debug("Outbox dispatcher stopped")

	a.Gateway.Close()

	a.Log.Debug("Realtime gateway closed")

	if a.RDB != nil {
		if err := a.RDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close RDB: %w", err))
		}

		a.Log.Debug("Redis closed")
	}

	a.DB.Close()
	a.Log.Debug("Database closed")

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", apperrors.ErrShutdown, errors.Join(errs...))
	}

	return nil
}

func initDB(cfg *config.Database) (postgres.Postgres, error) {
	postgresCfg := &postgres.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		Name:     cfg.Name,
		SSLMode:  cfg.SSLMode,
		MaxConns: cfg.MaxConns,
		MinConns: cfg.MinConns,
		Migration: postgres.Migration{
			Path:      cfg.Migration.Path,
			AutoApply: cfg.Migration.AutoApply,
		},
	}

	db, err := postgres.New(postgresCfg)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func initRedis(cfg *config.Redis) (redis.Redis, error) {
	redisCfg := &redis.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	rdb, err := redis.New(redisCfg)
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func closeStores(db postgres.Postgres, rdb redis.Redis) {
	if rdb != nil {
		_ = rdb.Close()
	}
	db.Close()
}

// Tokens are issued elsewhere; only the public key is needed to verify them.
func initVerifier(log *zap.Logger, cfg config.Key) (identity.Verifier, error) {
	publicKey, err := jwt.LoadECDSAPublicKey(cfg.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load public key: %w", err)
	}

	log.Debug("Public key loaded")

	return identity.NewJWTVerifier(publicKey), nil
}

func initRepository(log *zap.Logger, db postgres.Postgres) *Repository {
	repo := &Repository{
		Tx:           repository.NewTxManager(db.Pool()),
		Conversation: repository.NewConversationRepository(db.Pool()),
		Message:      repository.NewMessageRepository(db.Pool()),
		Receipt:      repository.NewReceiptRepository(db.Pool()),
		Outbox:       repository.NewOutboxRepository(db.Pool()),
		Health:       repository.NewHealthRepository(db.Pool()),
	}

	log.Debug("Repositories initialized")

	return repo
}

func initHandler(log *zap.Logger, cfg *config.Config, verifier identity.Verifier, svc *Service, gateway *realtime.Gateway) *Handler {
	hdl := &Handler{
		Health:       handler.NewHealthHandler(log, svc.Health),
		Conversation: handler.NewConversationHandler(log, svc.Conversation, gateway),
		Message:      handler.NewMessageHandler(log, svc.Message, gateway),
		Receipt:      handler.NewReceiptHandler(log, svc.Receipt, gateway),
		Socket:       handler.NewSocketHandler(log, verifier, gateway, cfg.WebSocket.AllowedOrigins),
	}

	log.Debug("Handlers initialized")

	return hdl
}

func initHTTPServer(log *zap.Logger, cfg *config.Config, verifier identity.Verifier, hdl *Handler, gateway *realtime.Gateway) server.HTTPServer {
	router := route.SetupRouter(
		log,
		cfg,
		verifier,
		hdl.Health,
		hdl.Conversation,
		hdl.Message,
		hdl.Receipt,
		hdl.Socket,
	)

	httpServer := server.NewHTTPServer(
		server.WithAddr(cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		server.WithTimeout(cfg.HTTPServer.Timeout.Read, cfg.HTTPServer.Timeout.Write, cfg.HTTPServer.Timeout.Idle),
		server.WithHandler(router),
		// hijacked sockets are not tracked by http.Server
		server.WithShutdownHook(gateway.Close),
	)

	return httpServer
}
