package main

import (
	"context"
	"log/slog"
	"os"

	"shopfront/config"
	"shopfront/internal/delivery"
	"shopfront/internal/delivery/http"
	"shopfront/internal/delivery/http/middleware"
	"shopfront/internal/delivery/http/router/handler"
	"shopfront/internal/domain/service"
	"shopfront/internal/infra/auth"
	"shopfront/internal/infra/geocode"
	logs "shopfront/internal/infra/log"
	"shopfront/internal/infra/persistence/firestore"
	"shopfront/internal/infra/persistence/postgres"
	"shopfront/internal/infra/pubsub"
	"shopfront/internal/infra/qrcode"
	"shopfront/internal/infra/storage"
	"shopfront/internal/observe"
	"shopfront/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
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
		postgres.New,
		firestore.New,
		observe.NewHub,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAddressRepository,
			postgres.NewAdminRepository,
			postgres.NewTransactionManager,
			firestore.NewUserRepository,
			firestore.NewProductRepository,
			firestore.NewCartRepository,
			firestore.NewOrderRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewFirebaseVerifier,
			geocode.NewMapsService,
			geocode.AsGeocodingService,
			geocode.AsPlacesService,
			pubsub.NewEventPublisher,
			storage.NewBlobStorage,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAddressService,
			impl.NewAddressCoordinatorFactory,
			impl.NewProductService,
			impl.NewCartService,
			impl.NewOrderService,
			impl.NewUserService,
			impl.NewAdminAuthService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAddressHandler,
			handler.NewProductHandler,
			handler.NewCartHandler,
			handler.NewOrderHandler,
			handler.NewUserHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
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
				os.Exit(1)
			}
		}()
	}
}
