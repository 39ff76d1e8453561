package di

import (
	"net/http"

	"coursehub-backend/application/ports"
	"coursehub-backend/application/services"
	"coursehub-backend/infrastructure/config"
	"coursehub-backend/interfaces/http/rest"
	"coursehub-backend/interfaces/http/rest/handlers"
	"coursehub-backend/pkg/auth"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	DynamoDBClient *awsdynamodb.Client

	CourseRepo       ports.CourseRepository
	RegistrationRepo ports.RegistrationRepository
	WriteSets        ports.WriteSetFactory

	Catalog      *services.CatalogService
	Registration *services.RegistrationService
	Allotment    *services.AllotmentService
	Cancellation *services.CancellationService

	JWTValidator *auth.JWTValidator
	RateLimiter  auth.RateLimiter

	CourseHandler       *handlers.CourseHandler
	RegistrationHandler *handlers.RegistrationHandler
	Router              *rest.Router
	HTTPHandler         http.Handler
}

// Shutdown flushes buffered log output
func (c *Container) Shutdown() {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
