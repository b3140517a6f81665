package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"shopfront/config"
	"shopfront/internal/delivery"
	"shopfront/internal/delivery/worker"
	"shopfront/internal/delivery/worker/handler"
	"shopfront/internal/domain/service"
	logs "shopfront/internal/infra/log"
	"shopfront/internal/infra/notification"
	"shopfront/internal/infra/persistence/firestore"
	"shopfront/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		firestore.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			firestore.NewUserRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newFirebaseService,
		),
	)
}

// newFirebaseService creates the FCM sender with dependency injection
func newFirebaseService(ctx context.Context, cfg *config.Config) (service.NotificationService, error) {
	if cfg.Firebase == nil {
		return nil, fmt.Errorf("firebase must be configured for the push worker")
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewNotificationService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
