package services

import (
	"context"
	"time"

	"coursehub-backend/application/ports"
	"coursehub-backend/domain/core/entities"
	"coursehub-backend/domain/core/valueobjects"
	pkgerrors "coursehub-backend/pkg/errors"

	"go.uber.org/zap"
)

// AllotmentResult carries the outcome of the allotment decision
type AllotmentResult struct {
	Course        *entities.Course
	FinalStatus   entities.CourseStatus
	Registrations []*entities.Registration
}

// AllotmentService makes the one-time confirm-or-cancel decision for a
// course and transitions every related record atomically.
type AllotmentService struct {
	courses       ports.CourseRepository
	registrations ports.RegistrationRepository
	writes        ports.WriteSetFactory
	logger        *zap.Logger
	now           func() time.Time
}

// NewAllotmentService creates a new allotment service
func NewAllotmentService(
	courses ports.CourseRepository,
	registrations ports.RegistrationRepository,
	writes ports.WriteSetFactory,
	logger *zap.Logger,
) *AllotmentService {
	return &AllotmentService{
		courses:       courses,
		registrations: registrations,
		writes:        writes,
		logger:        logger,
		now:           time.Now,
	}
}

// WithClock overrides the service clock
func (s *AllotmentService) WithClock(now func() time.Time) *AllotmentService {
	s.now = now
	return s
}

// Allot evaluates the course's registrations against its minimum-seats
// threshold and commits the terminal transition: every registration's status
// plus the course's is_allotted and course_status change in one atomic write.
// The decision must happen strictly before the course start date and is
// never reverted.
func (s *AllotmentService) Allot(ctx context.Context, courseID string) (*AllotmentResult, error) {
	id, err := valueobjects.NewCourseIDFromString(courseID)
	if err != nil {
		return nil, err
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if course.IsAllotted() {
		return nil, pkgerrors.NewConflictError("course already allotted")
	}
	if course.HasStarted(s.now()) {
		return nil, pkgerrors.NewConflictError("course start date has passed")
	}

	regs, err := s.registrations.ListByCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	final, err := course.Allot(len(regs))
	if err != nil {
		return nil, err
	}

	// With zero registrations the course alone is finalized as canceled
	ws := s.writes.NewWriteSet()
	for _, reg := range regs {
		if err := reg.Finalize(final); err != nil {
			return nil, err
		}
		if err := ws.FinalizeRegistration(reg); err != nil {
			return nil, err
		}
	}
	if err := ws.FinalizeCourse(course, len(regs)); err != nil {
		return nil, err
	}
	if err := ws.Commit(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Course allotted",
		zap.String("courseID", course.ID().String()),
		zap.String("finalStatus", string(final)),
		zap.Int("registrations", len(regs)),
	)

	return &AllotmentResult{
		Course:        course,
		FinalStatus:   final,
		Registrations: regs,
	}, nil
}
