package auth

import (
	"context"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"shopfront/config"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"
)

// firebaseVerifier is a concrete implementation of the TokenVerifier interface
// backed by the Firebase Auth admin SDK.
type firebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier creates the token verifier for customer bearer tokens.
func NewFirebaseVerifier(ctx context.Context, cfg *config.Config) (service.TokenVerifier, error) {
	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID: cfg.Firebase.ProjectID,
	}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firebase auth client")
	}

	return &firebaseVerifier{client: client}, nil
}

// VerifyIDToken checks the token signature and expiry and returns the claims it carries.
func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*service.AuthClaims, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify ID token")
	}

	email, _ := token.Claims["email"].(string)

	return &service.AuthClaims{
		UID:   token.UID,
		Email: email,
	}, nil
}
