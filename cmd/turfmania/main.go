package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"turfmania/internal/app/commands"
	bookingapp "turfmania/internal/app/handlers/booking"
	reviewsapp "turfmania/internal/app/handlers/reviews"
	slotsapp "turfmania/internal/app/handlers/slots"
	"turfmania/internal/app/middleware"
	appoutbox "turfmania/internal/app/outbox"
	"turfmania/internal/app/queries"
	"turfmania/internal/app/uow"
	"turfmania/internal/domain/shared/money"
	domainturf "turfmania/internal/domain/turf"
	"turfmania/internal/infra/broker/kafka"
	"turfmania/internal/infra/config"
	mongodb "turfmania/internal/infra/db/mongo"
	ginserver "turfmania/internal/infra/http/gin"
	"turfmania/internal/infra/obs"
	infraoutbox "turfmania/internal/infra/outbox"
	"turfmania/internal/infra/security"
	"turfmania/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, cleanup, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := loadTurfFixtures(ctx, app.turfs, fixturesPath(cfg), logger); err != nil {
		logger.Warn("turf fixtures load failed", "error", err)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	turfs    domainturf.Repository
	ready    func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, func(), error) {
	var (
		uowFactory  uow.UoWFactory
		outboxStore appoutbox.Outbox
		idStore     middleware.IdempotencyStore
		turfs       domainturf.Repository
		ready       func() error
		cleanup     = func() {}
	)

	switch cfg.StorageMode {
	case config.StorageMongo:
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, nil, fmt.Errorf("mongo connect: %w", err)
		}
		turfRepo := mongodb.NewTurfRepository(client.DB)
		store := infraoutbox.NewStore(client.DB)
		uowFactory = mongodb.Factory{
			DB:          client.DB,
			TurfRepo:    turfRepo,
			SlotRepo:    mongodb.NewSlotRepository(client.DB),
			BookingRepo: mongodb.NewBookingRepository(client.DB),
			ReviewRepo:  mongodb.NewReviewRepository(client.DB),
		}
		outboxStore = store
		idStore = mongodb.NewIdempotencyStore(client.DB, cfg.IdempotencyTTL)
		turfs = turfRepo
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}

		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			_ = client.Close(context.Background())
			return application{}, nil, fmt.Errorf("kafka producer: %w", err)
		}
		worker := &infraoutbox.Worker{
			Store:       store,
			Producer:    producer,
			Logger:      logger,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Backoff:     cfg.RetryBackoff,
		}
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
		cleanup = func() {
			if err := producer.Close(); err != nil {
				logger.Warn("kafka producer close failed", "error", err)
			}
			if err := client.Close(context.Background()); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		}
	default:
		turfRepo := memory.NewTurfRepository()
		uowFactory = memory.Factory{
			TurfRepo:    turfRepo,
			SlotRepo:    memory.NewSlotRepository(),
			BookingRepo: memory.NewBookingRepository(),
			ReviewRepo:  memory.NewReviewRepository(),
		}
		outboxStore = memory.NewOutbox()
		idStore = memory.NewIdempotencyStore()
		turfs = turfRepo
		ready = func() error { return nil }
	}

	commandBus := commands.NewInMemoryBus()
	encoder := appoutbox.JSONEventEncoder{}

	generateHandler := &slotsapp.GenerateSlotsHandler{UoWFactory: uowFactory, Outbox: outboxStore, Encoder: encoder}
	commands.RegisterHandler(commandBus, slotsapp.GenerateSlotsCommand{}.Key(), generateHandler)

	createHandler := &bookingapp.CreateBookingHandler{
		UoWFactory:     uowFactory,
		Outbox:         outboxStore,
		Encoder:        encoder,
		AdvancePercent: cfg.AdvancePercent,
	}
	commands.RegisterHandler(commandBus, bookingapp.CreateBookingCommand{}.Key(), createHandler)

	completeHandler := &bookingapp.CompleteBookingHandler{UoWFactory: uowFactory, Outbox: outboxStore, Encoder: encoder}
	commands.RegisterHandler(commandBus, bookingapp.CompleteCashCommand{}.Key(), bookingapp.CashHandler{CompleteBookingHandler: completeHandler})
	commands.RegisterHandler(commandBus, bookingapp.CompleteStripeCommand{}.Key(), bookingapp.StripeHandler{CompleteBookingHandler: completeHandler})

	rejectHandler := &bookingapp.RejectBookingHandler{UoWFactory: uowFactory, Outbox: outboxStore, Encoder: encoder}
	commands.RegisterHandler(commandBus, bookingapp.RejectBookingCommand{}.Key(), rejectHandler)

	submitReviewHandler := &reviewsapp.SubmitReviewHandler{UoWFactory: uowFactory, Outbox: outboxStore, Encoder: encoder}
	commands.RegisterHandler(commandBus, reviewsapp.SubmitReviewCommand{}.Key(), submitReviewHandler)

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, slotsapp.GetAvailabilityQuery{}.Key(), &slotsapp.GetAvailabilityHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, bookingapp.ListTurfBookingsQuery{}.Key(), &bookingapp.ListTurfBookingsHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, bookingapp.MyBookingsQuery{}.Key(), &bookingapp.MyBookingsHandler{UoWFactory: uowFactory})
	earningsHandler := &bookingapp.EarningsHandler{UoWFactory: uowFactory, Logger: logger}
	queries.RegisterHandler(queryBus, bookingapp.MonthlyEarningsQuery{}.Key(), bookingapp.MonthlyEarningsHandler{EarningsHandler: earningsHandler})
	queries.RegisterHandler(queryBus, bookingapp.CurrentMonthEarningsQuery{}.Key(), bookingapp.CurrentMonthEarningsHandler{EarningsHandler: earningsHandler})
	queries.RegisterHandler(queryBus, reviewsapp.ListReviewsQuery{}.Key(), &reviewsapp.ListReviewsHandler{UoWFactory: uowFactory})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(outboxStore),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	authMW := ginserver.AuthMiddleware{
		Verifier: security.TokenVerifier{Secret: []byte(cfg.JWTSecret)},
		Logger:   logger,
	}

	return application{
		handlers: ginserver.Handlers{
			Slots:          ginserver.SlotHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
			Bookings:       ginserver.BookingHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
			Reviews:        ginserver.ReviewHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
			AuthMiddleware: authMW.Handle,
		},
		turfs: turfs,
		ready: ready,
	}, cleanup, nil
}

type turfFixture struct {
	ID             string                   `json:"id"`
	OrganizationID string                   `json:"organization_id"`
	Name           string                   `json:"name"`
	BasePrice      fixtureMoney             `json:"base_price"`
	Sports         []string                 `json:"sports"`
	TeamSize       int                      `json:"team_size"`
	OperatingHours map[string]fixtureWindow `json:"operating_hours"`
	ImageURLs      []string                 `json:"image_urls"`
}

type fixtureMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type fixtureWindow struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

func loadTurfFixtures(ctx context.Context, repo domainturf.Repository, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("turf fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures []turfFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now().UTC()
	for _, fx := range fixtures {
		price, err := money.New(fx.BasePrice.Amount, fx.BasePrice.Currency)
		if err != nil {
			logger.Error("fixture invalid", "turf_id", fx.ID, "error", err)
			continue
		}
		hours := make(domainturf.OperatingHours, len(fx.OperatingHours))
		for day, w := range fx.OperatingHours {
			hours[day] = domainturf.OperatingWindow{Open: w.Open, Close: w.Close}
		}
		turf := &domainturf.Turf{
			ID:             domainturf.TurfID(fx.ID),
			OrganizationID: fx.OrganizationID,
			Name:           fx.Name,
			BasePrice:      price,
			Sports:         append([]string(nil), fx.Sports...),
			TeamSize:       fx.TeamSize,
			OperatingHours: hours,
			ImageURLs:      append([]string(nil), fx.ImageURLs...),
			CreatedAt:      now,
		}
		if err := repo.Save(ctx, turf); err != nil {
			logger.Error("cannot store fixture turf", "turf_id", fx.ID, "error", err)
			continue
		}
		logger.Info("turf fixture imported", "turf_id", turf.ID)
	}
	return nil
}

func fixturesPath(cfg config.Config) string {
	if cfg.TurfFixtures != "" {
		return cfg.TurfFixtures
	}
	return filepath.Join("data", "turfs.json")
}
