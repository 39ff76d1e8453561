package entities

import (
	"strings"
	"time"

	"coursehub-backend/domain/core/valueobjects"
	pkgerrors "coursehub-backend/pkg/errors"
)

// RegistrationStatus represents the lifecycle state of a registration
type RegistrationStatus string

const (
	// RegistrationStatusAccepted is the state of every new registration
	RegistrationStatusAccepted RegistrationStatus = "ACCEPTED"
	// RegistrationStatusConfirmed is the terminal state after a confirmed allotment
	RegistrationStatusConfirmed RegistrationStatus = "CONFIRMED"
	// RegistrationStatusCourseCanceled is the terminal state after a canceled allotment
	RegistrationStatusCourseCanceled RegistrationStatus = "COURSE_CANCELED"
)

// Registration is an employee's registration for a course offering.
// It is stored twice (by course and by employee); both copies are always
// written and deleted together and always agree on status.
type Registration struct {
	id           valueobjects.RegistrationID
	employeeName string
	email        string
	courseID     valueobjects.CourseID
	status       RegistrationStatus
	registeredAt time.Time
}

// NewRegistration creates a registration in the ACCEPTED state
func NewRegistration(employeeName, email string, courseID valueobjects.CourseID) (*Registration, error) {
	employeeName = strings.TrimSpace(employeeName)
	email = strings.TrimSpace(email)

	if employeeName == "" {
		return nil, pkgerrors.NewValidationError("employee name cannot be empty")
	}
	if email == "" {
		return nil, pkgerrors.NewValidationError("email cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, pkgerrors.NewValidationError("email is malformed")
	}
	if courseID.IsZero() {
		return nil, pkgerrors.NewValidationError("course id cannot be empty")
	}

	return &Registration{
		id:           valueobjects.DeriveRegistrationID(employeeName, courseID),
		employeeName: employeeName,
		email:        email,
		courseID:     courseID,
		status:       RegistrationStatusAccepted,
		registeredAt: time.Now(),
	}, nil
}

// ReconstructRegistration rebuilds a registration from repository data
func ReconstructRegistration(
	id valueobjects.RegistrationID,
	employeeName, email string,
	courseID valueobjects.CourseID,
	status RegistrationStatus,
	registeredAt time.Time,
) (*Registration, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("registration id cannot be empty")
	}
	if courseID.IsZero() {
		return nil, pkgerrors.NewValidationError("course id cannot be empty")
	}
	if status == "" {
		status = RegistrationStatusAccepted
	}

	return &Registration{
		id:           id,
		employeeName: employeeName,
		email:        email,
		courseID:     courseID,
		status:       status,
		registeredAt: registeredAt,
	}, nil
}

// ID returns the derived registration identifier
func (r *Registration) ID() valueobjects.RegistrationID {
	return r.id
}

// EmployeeName returns the registrant's name
func (r *Registration) EmployeeName() string {
	return r.employeeName
}

// Email returns the registrant's email
func (r *Registration) Email() string {
	return r.email
}

// CourseID returns the owning course identifier
func (r *Registration) CourseID() valueobjects.CourseID {
	return r.courseID
}

// Status returns the registration lifecycle status
func (r *Registration) Status() RegistrationStatus {
	return r.status
}

// RegisteredAt returns the creation timestamp
func (r *Registration) RegisteredAt() time.Time {
	return r.registeredAt
}

// IsTerminal reports whether the registration has reached a final status
func (r *Registration) IsTerminal() bool {
	return r.status == RegistrationStatusConfirmed || r.status == RegistrationStatusCourseCanceled
}

// Finalize applies the allotment outcome to this registration.
// Only ACCEPTED -> {CONFIRMED, COURSE_CANCELED} transitions exist.
func (r *Registration) Finalize(courseStatus CourseStatus) error {
	if r.IsTerminal() {
		return pkgerrors.NewConflictError("registration already finalized")
	}

	switch courseStatus {
	case CourseStatusConfirmed:
		r.status = RegistrationStatusConfirmed
	case CourseStatusCanceled:
		r.status = RegistrationStatusCourseCanceled
	default:
		return pkgerrors.NewValidationError("allotment outcome must be CONFIRMED or COURSE_CANCELED")
	}
	return nil
}
