package di

import (
	"context"
	"net/http"
	"time"

	"coursehub-backend/application/ports"
	"coursehub-backend/application/services"
	"coursehub-backend/infrastructure/config"
	"coursehub-backend/infrastructure/persistence/dynamodb"
	"coursehub-backend/interfaces/http/rest"
	"coursehub-backend/interfaces/http/rest/handlers"
	"coursehub-backend/pkg/auth"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideCourseRepository creates a course repository
func ProvideCourseRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CourseRepository {
	return dynamodb.NewCourseRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideRegistrationRepository creates a registration repository
func ProvideRegistrationRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.RegistrationRepository {
	return dynamodb.NewRegistrationRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideWriteSetFactory creates the atomic write set factory
func ProvideWriteSetFactory(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.WriteSetFactory {
	return dynamodb.NewWriteSetFactory(client, cfg.DynamoDBTable, logger)
}

// ProvideCatalogService creates the catalog service
func ProvideCatalogService(
	courses ports.CourseRepository,
	registrations ports.RegistrationRepository,
	logger *zap.Logger,
) *services.CatalogService {
	return services.NewCatalogService(courses, registrations, logger)
}

// ProvideRegistrationService creates the registration service
func ProvideRegistrationService(
	courses ports.CourseRepository,
	registrations ports.RegistrationRepository,
	writes ports.WriteSetFactory,
	logger *zap.Logger,
) *services.RegistrationService {
	return services.NewRegistrationService(courses, registrations, writes, logger)
}

// ProvideAllotmentService creates the allotment service
func ProvideAllotmentService(
	courses ports.CourseRepository,
	registrations ports.RegistrationRepository,
	writes ports.WriteSetFactory,
	logger *zap.Logger,
) *services.AllotmentService {
	return services.NewAllotmentService(courses, registrations, writes, logger)
}

// ProvideCancellationService creates the cancellation service
func ProvideCancellationService(
	courses ports.CourseRepository,
	registrations ports.RegistrationRepository,
	writes ports.WriteSetFactory,
	logger *zap.Logger,
) *services.CancellationService {
	return services.NewCancellationService(courses, registrations, writes, logger)
}

// ProvideJWTValidator creates the bearer token validator. A development
// stack without a configured secret gets an ephemeral one.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" && !cfg.IsProduction() {
		secret = "development-only-secret"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideRateLimiter creates the per-IP rate limiter
func ProvideRateLimiter(cfg *config.Config) auth.RateLimiter {
	return auth.NewIPRateLimiter(cfg.RateLimitPerMinute)
}

// ProvideCourseHandler creates the course handler
func ProvideCourseHandler(
	catalog *services.CatalogService,
	allotment *services.AllotmentService,
	logger *zap.Logger,
) *handlers.CourseHandler {
	return handlers.NewCourseHandler(catalog, allotment, logger)
}

// ProvideRegistrationHandler creates the registration handler
func ProvideRegistrationHandler(
	registration *services.RegistrationService,
	cancellation *services.CancellationService,
	logger *zap.Logger,
) *handlers.RegistrationHandler {
	return handlers.NewRegistrationHandler(registration, cancellation, logger)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	courses *handlers.CourseHandler,
	registration *handlers.RegistrationHandler,
	validator *auth.JWTValidator,
	limiter auth.RateLimiter,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(cfg, courses, registration, validator, limiter, logger)
}

// ProvideHTTPHandler builds the final handler tree
func ProvideHTTPHandler(router *rest.Router) http.Handler {
	return router.Setup()
}

// EnsureTable provisions the table when the container's config asks for it
func (c *Container) EnsureTable(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()
	return dynamodb.EnsureTable(ctx, c.DynamoDBClient, c.Config.DynamoDBTable, c.Logger)
}
