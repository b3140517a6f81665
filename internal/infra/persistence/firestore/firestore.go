// Package firestore contains the concrete implementation of the remote
// document store using Cloud Firestore.
package firestore

import (
	"context"

	"shopfront/config"
	"shopfront/internal/errors"

	fs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// Collection names used by the document repositories.
const (
	usersCollection    = "users"
	productsCollection = "products"
	cartsCollection    = "carts"
	cartItemsSub       = "items"
	ordersCollection   = "orders"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// New creates the Firestore client through the Firebase app.
func New(params Params) (*fs.Client, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if params.Config.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(params.Config.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID: params.Config.Firebase.ProjectID,
	}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firestore client")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
