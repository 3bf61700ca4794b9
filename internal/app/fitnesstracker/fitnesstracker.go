// Package fitnesstracker собирает HTTP API трекера: хранилище, кеш,
// брокер аудита, сервисы и маршруты.
package fitnesstracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/fitness-tracker/internal/aggregate"
	"github.com/magabrotheeeer/fitness-tracker/internal/cache"
	"github.com/magabrotheeeer/fitness-tracker/internal/config"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/migrations"
	"github.com/magabrotheeeer/fitness-tracker/internal/rabbitmq"
	"github.com/magabrotheeeer/fitness-tracker/internal/services/audit"
	authservice "github.com/magabrotheeeer/fitness-tracker/internal/services/auth"
	goalservice "github.com/magabrotheeeer/fitness-tracker/internal/services/goal"
	mealservice "github.com/magabrotheeeer/fitness-tracker/internal/services/meal"
	userservice "github.com/magabrotheeeer/fitness-tracker/internal/services/user"
	workoutservice "github.com/magabrotheeeer/fitness-tracker/internal/services/workout"
	"github.com/magabrotheeeer/fitness-tracker/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	cfg    *config.Config
	db     *repository.Storage
	cache  cache.Store
	conn   *amqp.Connection
	pub    *rabbitmq.Publisher
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	db, err := repository.New(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	app := &App{
		logger: logger,
		cfg:    cfg,
		db:     db,
	}

	version, err := migrations.Run(db.DB, cfg.Storage.MigrationsPath)
	if err != nil {
		app.close()
		return nil, err
	}
	logger.Info("schema is up to date", slog.Uint64("version", uint64(version)))

	if app.cache, err = cache.New(ctx, cfg.Redis); err != nil {
		app.close()
		return nil, err
	}
	if _, ok := app.cache.(cache.Noop); ok {
		logger.Info("redis address is not set, search cache disabled")
	}

	var pub audit.Publisher
	if cfg.RabbitMQ.URL != "" {
		if err = app.connectBroker(ctx); err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		pub = app.pub
	} else {
		logger.Info("rabbitmq url is not set, audit events stay in the database")
	}

	recorder := audit.NewRecorder(db, pub, logger)
	meals := aggregate.NewMeals(ctx, db, db, logger)
	workouts := aggregate.NewWorkouts(ctx, db, db, logger)

	services := Services{
		Auth:     authservice.NewAuthService(db, jwt.NewJWTMaker(cfg.JWTToken.SecretKey, cfg.JWTToken.TokenTTL), recorder, logger),
		Users:    userservice.NewUserService(db, recorder),
		Meals:    mealservice.NewMealService(db, meals, app.cache, cfg.Redis.SearchTTL, recorder, logger),
		Workouts: workoutservice.NewWorkoutService(db, workouts, app.cache, cfg.Redis.SearchTTL, recorder, logger),
		Goals:    goalservice.NewGoalService(db, recorder),
		DB:       db,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services)

	app.server = &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	return app, nil
}

func (a *App) connectBroker(ctx context.Context) error {
	conn, err := rabbitmq.Connect(ctx, a.cfg.RabbitMQ.URL, a.cfg.RabbitMQ.Retries, a.cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return err
	}
	ch, err := rabbitmq.SetupChannel(conn, a.cfg.RabbitMQ.Exchange)
	if err != nil {
		conn.Close()
		return err
	}
	a.conn = conn
	a.pub = rabbitmq.NewPublisher(ch, a.cfg.RabbitMQ.Exchange)
	a.logger.Info("audit events are published", slog.String("exchange", a.cfg.RabbitMQ.Exchange))
	return nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.ShutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// close освобождает внешние ресурсы. Ошибки только логируются.
func (a *App) close() {
	if a.pub != nil {
		if err := a.pub.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if c, ok := a.cache.(*cache.Cache); ok {
		if err := c.Close(); err != nil {
			a.logger.Warn("failed to close redis", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
