// Package constants holds shared environment and provider identifiers.
package constants

const (
	// EnvDevelop marks a development deployment.
	EnvDevelop = "develop"
	// EnvProduction marks a production deployment.
	EnvProduction = "production"

	// PubSubProviderLocal publishes events over local HTTP for development.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes events to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)
