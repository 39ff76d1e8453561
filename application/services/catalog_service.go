package services

import (
	"context"

	"coursehub-backend/application/ports"
	"coursehub-backend/domain/config"
	"coursehub-backend/domain/core/entities"
	"coursehub-backend/domain/core/valueobjects"
	pkgerrors "coursehub-backend/pkg/errors"
	"coursehub-backend/pkg/utils"

	"go.uber.org/zap"
)

// CreateOfferingInput carries the already-parsed fields for a new offering
type CreateOfferingInput struct {
	Name       string
	Instructor string
	StartDate  string // calendar date, utils.DateLayout
	MinSeats   int
	MaxSeats   int
}

// CatalogService creates and reads course offerings
type CatalogService struct {
	courses       ports.CourseRepository
	registrations ports.RegistrationRepository
	cfg           *config.DomainConfig
	logger        *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	courses ports.CourseRepository,
	registrations ports.RegistrationRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		courses:       courses,
		registrations: registrations,
		cfg:           config.DefaultDomainConfig(),
		logger:        logger,
	}
}

// CreateOffering validates and persists a new course offering and returns it.
// Duplicate derived ids surface as a conflict; the put is conditional, not a
// transaction, because no other row depends on the offering's absence.
func (s *CatalogService) CreateOffering(ctx context.Context, in CreateOfferingInput) (*entities.Course, error) {
	if in.StartDate == "" {
		return nil, pkgerrors.NewValidationError("start date is required")
	}
	startDate, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return nil, pkgerrors.NewValidationError("start date must be a calendar date in " + utils.DateLayout + " format")
	}

	course, err := entities.NewCourseWithConfig(in.Name, in.Instructor, startDate, in.MinSeats, in.MaxSeats, s.cfg)
	if err != nil {
		return nil, err
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("Course offering created",
		zap.String("courseID", course.ID().String()),
		zap.String("instructor", course.Instructor()),
		zap.Int("minSeats", course.MinSeats()),
		zap.Int("maxSeats", course.MaxSeats()),
	)

	return course, nil
}

// GetOffering retrieves a course offering by its id
func (s *CatalogService) GetOffering(ctx context.Context, courseID string) (*entities.Course, error) {
	id, err := valueobjects.NewCourseIDFromString(courseID)
	if err != nil {
		return nil, err
	}
	return s.courses.GetByID(ctx, id)
}

// ListRegistrations returns every registration for a course, sorted by
// registration id ascending. The by-course rows are a pre-materialized view;
// no cross-entity lookup happens at query time.
func (s *CatalogService) ListRegistrations(ctx context.Context, courseID string) ([]*entities.Registration, error) {
	id, err := valueobjects.NewCourseIDFromString(courseID)
	if err != nil {
		return nil, err
	}

	// The listing is only meaningful for an existing offering
	if _, err := s.courses.GetByID(ctx, id); err != nil {
		return nil, err
	}

	return s.registrations.ListByCourse(ctx, id)
}
