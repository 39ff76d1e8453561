package services

import (
	"context"

	"coursehub-backend/application/ports"
	"coursehub-backend/domain/core/valueobjects"

	"go.uber.org/zap"
)

// CancellationOutcome classifies the result of a cancellation request
type CancellationOutcome string

const (
	// CancellationAccepted means both registration copies were removed and
	// the seat returned
	CancellationAccepted CancellationOutcome = "ACCEPTED"
	// CancellationRejected means the course was already allotted; nothing
	// was mutated. This is an expected business result, not an error.
	CancellationRejected CancellationOutcome = "REJECTED"
)

// CancellationResult carries the outcome of a cancellation request
type CancellationResult struct {
	RegistrationID valueobjects.RegistrationID
	Outcome        CancellationOutcome
	Reason         string
}

// CancellationService removes registrations and returns their seats
type CancellationService struct {
	courses       ports.CourseRepository
	registrations ports.RegistrationRepository
	writes        ports.WriteSetFactory
	logger        *zap.Logger
}

// NewCancellationService creates a new cancellation service
func NewCancellationService(
	courses ports.CourseRepository,
	registrations ports.RegistrationRepository,
	writes ports.WriteSetFactory,
	logger *zap.Logger,
) *CancellationService {
	return &CancellationService{
		courses:       courses,
		registrations: registrations,
		writes:        writes,
		logger:        logger,
	}
}

// Cancel removes a registration before allotment: both denormalized copies
// are deleted and the course seat count decremented in one atomic write.
// After allotment the request is rejected without touching any row.
func (s *CancellationService) Cancel(ctx context.Context, registrationID string) (*CancellationResult, error) {
	rid, err := valueobjects.NewRegistrationIDFromString(registrationID)
	if err != nil {
		return nil, err
	}

	// The owning course is embedded in the registration id; no secondary
	// index lookup is needed.
	cid, err := rid.CourseID()
	if err != nil {
		return nil, err
	}

	reg, err := s.registrations.GetByID(ctx, rid)
	if err != nil {
		return nil, err
	}

	course, err := s.courses.GetByID(ctx, cid)
	if err != nil {
		return nil, err
	}

	if course.IsAllotted() {
		s.logger.Info("Cancellation rejected after allotment",
			zap.String("registrationID", rid.String()),
			zap.String("courseID", cid.String()),
		)
		return &CancellationResult{
			RegistrationID: rid,
			Outcome:        CancellationRejected,
			Reason:         "course already allotted",
		}, nil
	}

	expectedCount := course.CurrentCount()
	if err := course.ReleaseSeat(); err != nil {
		return nil, err
	}

	ws := s.writes.NewWriteSet()
	if err := ws.RemoveRegistration(reg, course, expectedCount); err != nil {
		return nil, err
	}
	if err := ws.Commit(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Registration canceled",
		zap.String("registrationID", rid.String()),
		zap.String("courseID", cid.String()),
		zap.Int("currentCount", course.CurrentCount()),
	)

	return &CancellationResult{
		RegistrationID: rid,
		Outcome:        CancellationAccepted,
	}, nil
}
