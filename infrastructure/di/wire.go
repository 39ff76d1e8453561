//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"coursehub-backend/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideCourseRepository,
	ProvideRegistrationRepository,
	ProvideWriteSetFactory,
	ProvideCatalogService,
	ProvideRegistrationService,
	ProvideAllotmentService,
	ProvideCancellationService,
	ProvideJWTValidator,
	ProvideRateLimiter,
	ProvideCourseHandler,
	ProvideRegistrationHandler,
	ProvideRouter,
	ProvideHTTPHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
