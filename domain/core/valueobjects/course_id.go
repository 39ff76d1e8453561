package valueobjects

import (
	"strings"

	pkgerrors "coursehub-backend/pkg/errors"
)

// courseIDPrefix marks every derived course identifier
const courseIDPrefix = "OFFERING"

// CourseID is a value object identifying a course offering.
// It is derived deterministically from the offering name and instructor,
// so the same human input always addresses the same row.
type CourseID struct {
	value string
}

// DeriveCourseID builds the course identifier from human-entered names.
// The derivation is total: it never fails, and two offerings sharing a
// normalized name and instructor collide (accepted behavior).
func DeriveCourseID(name, instructor string) CourseID {
	return CourseID{value: courseIDPrefix + "-" + normalize(name) + "-" + normalize(instructor)}
}

// NewCourseIDFromString creates a CourseID from an already-derived identifier
func NewCourseIDFromString(id string) (CourseID, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return CourseID{}, pkgerrors.NewValidationError("course id cannot be empty")
	}
	if !strings.HasPrefix(id, courseIDPrefix+"-") || len(id) <= len(courseIDPrefix)+1 {
		return CourseID{}, pkgerrors.NewValidationError("course id must have the form OFFERING-<NAME>-<INSTRUCTOR>")
	}
	return CourseID{value: id}, nil
}

// String returns the string representation of the CourseID
func (id CourseID) String() string {
	return id.value
}

// Equals checks if two CourseIDs are equal
func (id CourseID) Equals(other CourseID) bool {
	return id.value == other.value
}

// IsZero checks if the CourseID is the zero value
func (id CourseID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id CourseID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *CourseID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return pkgerrors.NewValidationError("course id must be a string")
	}
	parsed, err := NewCourseIDFromString(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// normalize folds a human-entered name into its identifier segment
func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
