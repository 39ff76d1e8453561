package ports

import (
	"context"

	"coursehub-backend/domain/core/entities"
	"coursehub-backend/domain/core/valueobjects"
)

// CourseRepository defines the interface for course offering persistence.
// This is a port in hexagonal architecture - the domain doesn't know about
// the implementation.
type CourseRepository interface {
	// Create persists a new course offering. The write is conditional on the
	// derived id not existing yet; a duplicate surfaces as a conflict error.
	// A single-item put suffices here: no other row depends on its absence.
	Create(ctx context.Context, course *entities.Course) error

	// GetByID retrieves a course offering by its derived id
	GetByID(ctx context.Context, id valueobjects.CourseID) (*entities.Course, error)
}

// RegistrationRepository defines the read interface for registrations
type RegistrationRepository interface {
	// GetByID retrieves the by-course copy of a registration
	GetByID(ctx context.Context, id valueobjects.RegistrationID) (*entities.Registration, error)

	// ListByCourse retrieves every registration filed under a course,
	// sorted by registration id ascending
	ListByCourse(ctx context.Context, courseID valueobjects.CourseID) ([]*entities.Registration, error)

	// ExistsForEmployee checks the employee-addressed lookup row that guards
	// against duplicate registration of the same (employee, course) pair
	ExistsForEmployee(ctx context.Context, email string, courseID valueobjects.CourseID) (bool, error)
}

// WriteSet collects denormalized writes that must become visible together.
// The store's multi-item transaction is the only atomicity unit in the
// system; the core never emits one half of a dual-write outside a WriteSet.
//
// Capacity and duplicate guards are re-evaluated inside the commit as write
// conditions, so two racing callers cannot both succeed off the same read.
type WriteSet interface {
	// CreateRegistration stages both registration copies plus the seat-count
	// increment. expectedCount is the course's seat count as last read; the
	// commit fails if the stored count has moved, the course has been
	// allotted, or either registration row already exists.
	CreateRegistration(reg *entities.Registration, course *entities.Course, expectedCount int) error

	// RemoveRegistration stages the deletion of both registration copies plus
	// the guarded seat-count decrement, symmetric to CreateRegistration.
	RemoveRegistration(reg *entities.Registration, course *entities.Course, expectedCount int) error

	// FinalizeCourse stages the one-time allotment outcome on the course row,
	// conditional on the decision not having been made yet AND on the
	// registration count the decision was based on. A registration that
	// commits after the listing fails the whole finalization rather than
	// being stranded un-finalized on an allotted course.
	FinalizeCourse(course *entities.Course, expectedCount int) error

	// FinalizeRegistration stages the terminal status on both copies of a
	// registration.
	FinalizeRegistration(reg *entities.Registration) error

	// Commit applies every staged write in one all-or-nothing transaction.
	// A failed condition surfaces as a conflict error; any other failure as a
	// store error. Either way no row is left half-written.
	Commit(ctx context.Context) error
}

// WriteSetFactory creates empty write sets. One write set backs exactly one
// workflow invocation; they are not reused across commits.
type WriteSetFactory interface {
	NewWriteSet() WriteSet
}
