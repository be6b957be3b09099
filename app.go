package panel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/penpot-ir/panel/adapters/events"
	"github.com/penpot-ir/panel/adapters/hasher"
	"github.com/penpot-ir/panel/adapters/store"
	"github.com/penpot-ir/panel/adapters/tokenizer"
	"github.com/penpot-ir/panel/config"
	"github.com/penpot-ir/panel/core"
	"github.com/penpot-ir/panel/ports"
	"github.com/penpot-ir/panel/service"
	transport "github.com/penpot-ir/panel/transport/http"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// App wires the panel's stores, services and HTTP router
type App struct {
	cfg    config.Config
	logger *zap.Logger

	db        *sqlx.DB
	store     *store.SQLStore
	hasher    *hasher.BcryptHasher
	publisher message.Publisher
	redis     *redis.Client
	router    *gin.Engine
}

// New opens and migrates the database, connects the event backend and builds the router
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{
		cfg:    cfg,
		logger: logger,
		hasher: hasher.NewBcryptHasher(cfg.Auth.BcryptCost),
	}

	db, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	app.db = db

	if err := store.Migrate(db); err != nil {
		app.Close()
		return nil, err
	}
	app.store = store.NewSQLStore(db)

	if cfg.UsesDevSecret() {
		logger.Warn("signing sessions with the development secret; set JWT_SECRET before deploying")
	}
	tk, err := tokenizer.NewJWTTokenizer(cfg.SigningSecret(), logger.Named("tokenizer"))
	if err != nil {
		app.Close()
		return nil, err
	}

	eventPub, err := app.setupEvents(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	sessions := service.NewSessionManager(tk, service.SessionOptions{
		CookieName: cfg.Auth.CookieName,
		TTL:        cfg.Auth.SessionTTL,
		Secure:     cfg.IsProduction(),
	})

	app.router = transport.SetupRouter(transport.RouterDeps{
		Auth:      service.NewAuthService(app.store, app.hasher, logger.Named("auth")),
		Sessions:  sessions,
		Dashboard: service.NewDashboardService(app.store),
		Events:    eventPub,
		Logger:    logger.Named("http"),
	})

	return app, nil
}

func (a *App) setupEvents(ctx context.Context) (ports.EventPublisher, error) {
	if !a.cfg.Events.Enabled {
		return events.NopPublisher{}, nil
	}

	wmLogger := events.NewZapLogger(a.logger.Named("events"))

	if a.cfg.Events.RedisURL == "" {
		a.logger.Info("publishing session events in-process")
		a.publisher = events.NewChannelPubSub(wmLogger)
		return events.NewWatermillPublisher(a.publisher), nil
	}

	client, err := events.NewRedisClient(a.cfg.Events.RedisURL)
	if err != nil {
		return nil, err
	}
	a.redis = client

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	publisher, err := events.NewRedisPublisher(client, wmLogger)
	if err != nil {
		return nil, err
	}
	a.publisher = publisher
	// closing the stream publisher closes the client
	a.redis = nil

	return events.NewWatermillPublisher(publisher), nil
}

// Router returns the HTTP handler of the panel
func (a *App) Router() *gin.Engine {
	return a.router
}

// Seed loads the demo accounts and catalog into an empty database
func (a *App) Seed(ctx context.Context) (bool, error) {
	return a.store.Seed(ctx, a.hasher)
}

// CreateUser provisions an account with a freshly hashed password
func (a *App) CreateUser(ctx context.Context, email, password, name string, role core.Role) (*core.CredentialRecord, error) {
	hash, err := a.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	record := &core.CredentialRecord{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		IsActive:     true,
	}
	if err := a.store.CreateUser(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.cfg.HTTP.Addr,
		Handler:      a.router,
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
		IdleTimeout:  a.cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", zap.String("addr", a.cfg.HTTP.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// Close releases the database, event publisher and redis connections
func (a *App) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("failed to close event publisher", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
}
