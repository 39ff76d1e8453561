package entities

import (
	"time"
	"unicode/utf8"

	"coursehub-backend/domain/config"
	"coursehub-backend/domain/core/valueobjects"
	pkgerrors "coursehub-backend/pkg/errors"
	"coursehub-backend/pkg/utils"
)

// CourseStatus represents the lifecycle state of a course offering
type CourseStatus string

const (
	// CourseStatusActive is the implicit state before the allotment decision
	CourseStatusActive CourseStatus = "ACTIVE"
	// CourseStatusConfirmed means the offering met its minimum-seats threshold
	CourseStatusConfirmed CourseStatus = "CONFIRMED"
	// CourseStatusCanceled means the offering missed its minimum-seats threshold
	CourseStatusCanceled CourseStatus = "COURSE_CANCELED"
)

// Course is the course offering entity. It is a rich domain model: every
// count and status mutation goes through a method that preserves the
// invariants 0 <= currentCount <= maxSeats and the one-way isAllotted flag.
type Course struct {
	id           valueobjects.CourseID
	name         string
	instructor   string
	startDate    time.Time
	minSeats     int
	maxSeats     int
	currentCount int
	isAllotted   bool
	status       CourseStatus
	createdAt    time.Time
}

// NewCourse creates a course offering with full business rule validation
// using the default domain configuration.
func NewCourse(name, instructor string, startDate time.Time, minSeats, maxSeats int) (*Course, error) {
	return NewCourseWithConfig(name, instructor, startDate, minSeats, maxSeats, config.DefaultDomainConfig())
}

// NewCourseWithConfig creates a course offering with validation and configuration
func NewCourseWithConfig(name, instructor string, startDate time.Time, minSeats, maxSeats int, cfg *config.DomainConfig) (*Course, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	if name == "" {
		return nil, pkgerrors.NewValidationError("course name cannot be empty")
	}
	if instructor == "" {
		return nil, pkgerrors.NewValidationError("instructor cannot be empty")
	}
	if utf8.RuneCountInString(name) > cfg.MaxNameLength {
		return nil, pkgerrors.NewValidationError("course name is too long")
	}
	if utf8.RuneCountInString(instructor) > cfg.MaxInstructorLength {
		return nil, pkgerrors.NewValidationError("instructor name is too long")
	}
	if minSeats < 0 || maxSeats < 0 {
		return nil, pkgerrors.NewValidationError("seat counts cannot be negative")
	}
	if minSeats > maxSeats {
		return nil, pkgerrors.NewValidationError("minimum seats cannot exceed maximum seats")
	}
	if maxSeats > cfg.MaxSeatsPerOffering {
		return nil, pkgerrors.NewValidationError("maximum seats exceeds the per-offering limit")
	}
	if startDate.IsZero() {
		return nil, pkgerrors.NewValidationError("start date is required")
	}
	if !cfg.AllowPastStartDate && utils.DateBefore(startDate, time.Now()) {
		return nil, pkgerrors.NewValidationError("start date cannot be in the past")
	}

	return &Course{
		id:           valueobjects.DeriveCourseID(name, instructor),
		name:         name,
		instructor:   instructor,
		startDate:    startDate,
		minSeats:     minSeats,
		maxSeats:     maxSeats,
		currentCount: 0,
		isAllotted:   false,
		status:       CourseStatusActive,
		createdAt:    time.Now(),
	}, nil
}

// ReconstructCourse rebuilds a course from repository data with preserved state
func ReconstructCourse(
	id valueobjects.CourseID,
	name, instructor string,
	startDate time.Time,
	minSeats, maxSeats, currentCount int,
	isAllotted bool,
	status CourseStatus,
	createdAt time.Time,
) (*Course, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("course id cannot be empty")
	}
	if currentCount < 0 || currentCount > maxSeats {
		return nil, pkgerrors.NewInternalError("stored seat count violates course capacity")
	}
	if status == "" {
		status = CourseStatusActive
	}

	return &Course{
		id:           id,
		name:         name,
		instructor:   instructor,
		startDate:    startDate,
		minSeats:     minSeats,
		maxSeats:     maxSeats,
		currentCount: currentCount,
		isAllotted:   isAllotted,
		status:       status,
		createdAt:    createdAt,
	}, nil
}

// ID returns the derived course identifier
func (c *Course) ID() valueobjects.CourseID {
	return c.id
}

// Name returns the offering name
func (c *Course) Name() string {
	return c.name
}

// Instructor returns the instructor name
func (c *Course) Instructor() string {
	return c.instructor
}

// StartDate returns the course start date
func (c *Course) StartDate() time.Time {
	return c.startDate
}

// MinSeats returns the allotment threshold
func (c *Course) MinSeats() int {
	return c.minSeats
}

// MaxSeats returns the offering capacity
func (c *Course) MaxSeats() int {
	return c.maxSeats
}

// CurrentCount returns the number of live registrations
func (c *Course) CurrentCount() int {
	return c.currentCount
}

// IsAllotted reports whether the allotment decision has been made
func (c *Course) IsAllotted() bool {
	return c.isAllotted
}

// Status returns the course lifecycle status
func (c *Course) Status() CourseStatus {
	return c.status
}

// CreatedAt returns the creation timestamp
func (c *Course) CreatedAt() time.Time {
	return c.createdAt
}

// IsFull reports whether the offering is at capacity
func (c *Course) IsFull() bool {
	return c.currentCount >= c.maxSeats
}

// HasStarted reports whether the course start date has been reached.
// Allotment must happen strictly before the start date.
func (c *Course) HasStarted(now time.Time) bool {
	return !utils.DateBefore(now, c.startDate)
}

// RegisterSeat claims one seat. The caller must commit the matching
// registration rows in the same atomic write set.
func (c *Course) RegisterSeat() error {
	if c.status == CourseStatusCanceled {
		return pkgerrors.NewConflictError("course canceled")
	}
	if c.isAllotted {
		return pkgerrors.NewConflictError("course already allotted")
	}
	if c.IsFull() {
		return pkgerrors.NewConflictError("course full")
	}
	c.currentCount++
	return nil
}

// ReleaseSeat returns one seat. The caller must commit the matching
// registration deletes in the same atomic write set.
func (c *Course) ReleaseSeat() error {
	if c.isAllotted {
		return pkgerrors.NewConflictError("course already allotted")
	}
	if c.currentCount == 0 {
		return pkgerrors.NewInternalError("seat count underflow: no registrations to release")
	}
	c.currentCount--
	return nil
}

// Allot makes the one-time allotment decision for the given registration
// count and returns the final status. The transition is terminal: once
// allotted, no operation reverts it.
func (c *Course) Allot(registrationCount int) (CourseStatus, error) {
	if c.isAllotted {
		return "", pkgerrors.NewConflictError("course already allotted")
	}

	final := CourseStatusCanceled
	if registrationCount >= c.minSeats {
		final = CourseStatusConfirmed
	}

	c.isAllotted = true
	c.status = final
	return final, nil
}
