package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/totegamma/agenda/internal/config"
	"github.com/totegamma/agenda/internal/domain"
	"github.com/totegamma/agenda/internal/infra/cache"
	"github.com/totegamma/agenda/internal/infra/database"
	"github.com/totegamma/agenda/internal/infra/memory"
	"github.com/totegamma/agenda/internal/infra/repository"
	"github.com/totegamma/agenda/internal/present/rest"
	"github.com/totegamma/agenda/internal/service"
	"github.com/totegamma/agenda/internal/tracing"
	"github.com/totegamma/agenda/internal/usecase"
)

const serviceName = "agenda"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, conf)
	},
}

type repositories struct {
	contacts   usecase.Repository[domain.Contact]
	categories usecase.CategoryRepository
	expenses   usecase.ExpenseRepository
}

func serve(ctx context.Context, conf config.Config) error {
	if conf.Server.EnableTrace {
		shutdown, err := tracing.Setup(ctx, serviceName, conf.Server.TraceEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				slog.Warn("failed to flush traces", slog.String("error", err.Error()), slog.String("module", "main"))
			}
		}()
	}

	repos, err := openRepositories(conf)
	if err != nil {
		return err
	}

	if conf.Server.MemcachedAddr != "" {
		repos = repos.withCache(database.NewMemcached(conf.Server.MemcachedAddr))
	}

	// interface values stay untyped nil when redis is not configured
	var publisher usecase.ChangePublisher
	var subscriber rest.ChangeSubscriber
	if conf.Server.RedisAddr != "" {
		rdb, err := database.NewRedis(ctx, conf.Server.RedisAddr, "", conf.Server.RedisDB)
		if err != nil {
			return errors.Wrap(err, "failed to connect redis")
		}
		defer rdb.Close()

		signals := service.NewSignalService(rdb)
		publisher = signals
		subscriber = signals
	}

	validator := usecase.NewValidator()
	handler := rest.NewHandler(
		usecase.NewContactUsecase(repos.contacts, validator, publisher),
		usecase.NewCategoryUsecase(repos.categories, repos.expenses, validator, publisher),
		usecase.NewExpenseUsecase(repos.expenses, repos.categories, validator, publisher),
		subscriber,
	)

	e := rest.NewEcho(rest.ServerOptions{
		ServiceName: serviceName,
		EnableTrace: conf.Server.EnableTrace,
		AccessLog:   conf.Server.AccessLog,
	})
	handler.RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		slog.Info(
			"server starting",
			slog.String("addr", conf.Server.ListenAddr),
			slog.String("storage", conf.Server.Storage),
			slog.String("module", "main"),
		)
		if err := e.Start(conf.Server.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("server shutting down", slog.String("module", "main"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openRepositories(conf config.Config) (repositories, error) {
	switch conf.Server.Storage {
	case config.StoragePostgres:
		db, err := database.NewPostgres(conf.Server.PostgresDsn)
		if err != nil {
			return repositories{}, errors.Wrap(err, "failed to connect database")
		}
		if err := database.MigratePostgres(db); err != nil {
			return repositories{}, errors.Wrap(err, "failed to migrate database")
		}
		return postgresRepositories(db), nil
	default:
		categories := memory.NewCategoryRepository()
		return repositories{
			contacts:   memory.NewRepository[domain.Contact]("contact"),
			categories: categories,
			expenses:   memory.NewExpenseRepository(categories),
		}, nil
	}
}

// withCache puts memcache in front of contacts and categories. Expenses stay
// uncached: they embed category titles, and a category rename would not
// reach a cached expense.
func (r repositories) withCache(client cache.Client) repositories {
	r.contacts = cache.NewRepository(r.contacts, client, "contact")
	r.categories = cache.NewCategoryRepository(r.categories, client)
	return r
}

func postgresRepositories(db *gorm.DB) repositories {
	return repositories{
		contacts:   repository.NewContactRepository(db),
		categories: repository.NewCategoryRepository(db),
		expenses:   repository.NewExpenseRepository(db),
	}
}
