package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/room-booking/internal/application"
	"github.com/example/room-booking/internal/config"
	"github.com/example/room-booking/internal/events"
	"github.com/example/room-booking/internal/grid"
	httptransport "github.com/example/room-booking/internal/http"
	"github.com/example/room-booking/internal/persistence"
	"github.com/example/room-booking/internal/persistence/memory"
	"github.com/example/room-booking/internal/persistence/redis"
	"github.com/example/room-booking/internal/persistence/sqlite"
	"github.com/example/room-booking/internal/persistence/writebehind"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		logger.Error("failed to load .env file", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	policy, err := cfg.Policy()
	if err != nil {
		logger.Error("failed to load room catalog", "error", err)
		os.Exit(1)
	}

	backend, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := backend.close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	publisher, closePublisher, err := openPublisher(cfg, logger)
	if err != nil {
		logger.Error("failed to connect event broker", "error", err)
		os.Exit(1)
	}
	defer closePublisher()

	state := application.NewState(backend.adapter,
		application.WithPolicy(policy),
		application.WithPublisher(publisher),
		application.WithStateLogger(logger),
	)
	if err := state.Load(ctx); err != nil {
		logger.Error("failed to load stored data", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	roomService := application.NewRoomServiceWithLogger(state, idGenerator, now, logger)
	reservationService := application.NewReservationServiceWithLogger(state, idGenerator, now, logger)
	gridService := application.NewGridServiceWithLogger(state, grid.DefaultLayout(), nil, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Rooms:        httptransport.NewRoomHandler(roomService, logger),
		Reservations: httptransport.NewReservationHandler(reservationService, logger),
		Grid:         httptransport.NewGridHandler(gridService),
		Logger:       logger,
		CORSOrigins:  cfg.CORSOrigins,
		Health:       backend.health,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("room booking API listening", "addr", server.Addr, "store", cfg.Store, "events", cfg.EventsEnabled())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// store bundles the adapter handed to the application with the hooks main
// needs around it.
type store struct {
	adapter persistence.Adapter
	health  func(ctx context.Context) error
	close   func() error
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (store, error) {
	var s store
	switch cfg.Store {
	case config.StoreMemory:
		s.adapter = memory.Open()
	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, sqlite.DefaultConfig(cfg.SQLiteDSN), logger)
		if err != nil {
			return store{}, err
		}
		s.adapter = db
		s.health = db.Pool().Ping
	case config.StoreRedis:
		client, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return store{}, err
		}
		s.adapter = redis.New(client, cfg.RedisKeyPrefix)
		s.health = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	default:
		return store{}, fmt.Errorf("unsupported store %q", cfg.Store)
	}

	if cfg.AsyncPersist {
		async := writebehind.New(s.adapter, writebehind.WithLogger(logger))
		s.adapter = async
		s.close = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return errors.Join(async.Flush(ctx), async.Close())
		}
		return s, nil
	}

	s.close = func() error {
		if c, ok := s.adapter.(persistence.Closer); ok {
			return c.Close()
		}
		return nil
	}
	return s, nil
}

func openPublisher(cfg config.Config, logger *slog.Logger) (events.Publisher, func(), error) {
	if !cfg.EventsEnabled() {
		return events.Nop{}, func() {}, nil
	}
	publisher, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPQueue)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("publishing events", "queue", publisher.Queue())
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close event publisher", "error", err)
		}
	}, nil
}
