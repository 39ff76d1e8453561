package services

import (
	"context"

	"coursehub-backend/application/ports"
	"coursehub-backend/domain/core/entities"
	"coursehub-backend/domain/core/valueobjects"
	pkgerrors "coursehub-backend/pkg/errors"

	"go.uber.org/zap"
)

// RegistrationService commits new registrations as consistent sets of
// denormalized writes.
type RegistrationService struct {
	courses       ports.CourseRepository
	registrations ports.RegistrationRepository
	writes        ports.WriteSetFactory
	logger        *zap.Logger
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	courses ports.CourseRepository,
	registrations ports.RegistrationRepository,
	writes ports.WriteSetFactory,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		courses:       courses,
		registrations: registrations,
		writes:        writes,
		logger:        logger,
	}
}

// Register validates and commits a registration for an employee.
//
// The pre-checks below reject early with precise errors; the capacity and
// duplicate guards are then re-evaluated as write conditions inside the
// commit, so concurrent registrations cannot overshoot max seats or
// double-admit the same employee.
func (s *RegistrationService) Register(ctx context.Context, courseID, employeeName, email string) (*entities.Registration, error) {
	id, err := valueobjects.NewCourseIDFromString(courseID)
	if err != nil {
		return nil, err
	}

	// Input validation never touches the store
	reg, err := entities.NewRegistration(employeeName, email, id)
	if err != nil {
		return nil, err
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if course.Status() == entities.CourseStatusCanceled {
		return nil, pkgerrors.NewConflictError("course canceled")
	}
	if course.IsAllotted() {
		return nil, pkgerrors.NewConflictError("course already allotted")
	}

	exists, err := s.registrations.ExistsForEmployee(ctx, reg.Email(), id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkgerrors.NewConflictError("employee already registered for this course")
	}

	if course.IsFull() {
		return nil, pkgerrors.NewConflictError("course full")
	}

	expectedCount := course.CurrentCount()
	if err := course.RegisterSeat(); err != nil {
		return nil, err
	}

	// Both denormalized copies and the count increment commit together
	ws := s.writes.NewWriteSet()
	if err := ws.CreateRegistration(reg, course, expectedCount); err != nil {
		return nil, err
	}
	if err := ws.Commit(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Registration committed",
		zap.String("registrationID", reg.ID().String()),
		zap.String("courseID", course.ID().String()),
		zap.Int("currentCount", course.CurrentCount()),
	)

	return reg, nil
}
