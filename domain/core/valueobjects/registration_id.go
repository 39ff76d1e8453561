package valueobjects

import (
	"strings"

	pkgerrors "coursehub-backend/pkg/errors"
)

// RegistrationID is a value object identifying a registration.
// Format: <EMPLOYEE>-<course_id>. Because the course id is embedded, the
// owning course is recoverable from the registration id alone, which is how
// cancellation locates the course without a secondary index.
type RegistrationID struct {
	value string
}

// DeriveRegistrationID builds the registration identifier from the employee
// name and the owning course. Total and deterministic: two employees sharing
// a normalized name collide for the same course (accepted behavior).
func DeriveRegistrationID(employeeName string, courseID CourseID) RegistrationID {
	return RegistrationID{value: normalize(employeeName) + "-" + courseID.String()}
}

// NewRegistrationIDFromString creates a RegistrationID from an existing identifier
func NewRegistrationIDFromString(id string) (RegistrationID, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return RegistrationID{}, pkgerrors.NewValidationError("registration id cannot be empty")
	}
	rid := RegistrationID{value: id}
	if _, err := rid.CourseID(); err != nil {
		return RegistrationID{}, pkgerrors.NewValidationError("registration id must have the form <EMPLOYEE>-OFFERING-<NAME>-<INSTRUCTOR>")
	}
	return rid, nil
}

// CourseID recovers the owning course identifier by dropping the first
// hyphen-delimited segment and rejoining the remainder.
func (id RegistrationID) CourseID() (CourseID, error) {
	idx := strings.Index(id.value, "-")
	if idx <= 0 || idx == len(id.value)-1 {
		return CourseID{}, pkgerrors.NewValidationError("registration id has no embedded course id")
	}
	return NewCourseIDFromString(id.value[idx+1:])
}

// String returns the string representation of the RegistrationID
func (id RegistrationID) String() string {
	return id.value
}

// Equals checks if two RegistrationIDs are equal
func (id RegistrationID) Equals(other RegistrationID) bool {
	return id.value == other.value
}

// IsZero checks if the RegistrationID is the zero value
func (id RegistrationID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id RegistrationID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *RegistrationID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return pkgerrors.NewValidationError("registration id must be a string")
	}
	parsed, err := NewRegistrationIDFromString(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
