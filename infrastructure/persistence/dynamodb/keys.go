package dynamodb

import (
	"strings"

	"coursehub-backend/domain/core/valueobjects"
)

// Single-table key layout. All three row kinds share one table:
//
//	COURSE#<course_id>   / METADATA              course offering
//	COURSE#<course_id>   / REG#<registration_id> registration, by-course copy
//	EMPLOYEE#<EMAIL>     / COURSE#<course_id>    registration, by-employee copy
//
// The by-employee copy doubles as the duplicate-registration guard.
const (
	coursePartitionPrefix   = "COURSE#"
	employeePartitionPrefix = "EMPLOYEE#"
	registrationSortPrefix  = "REG#"
	metadataSortKey         = "METADATA"
)

func coursePK(id valueobjects.CourseID) string {
	return coursePartitionPrefix + id.String()
}

func registrationSK(id valueobjects.RegistrationID) string {
	return registrationSortPrefix + id.String()
}

func employeePK(email string) string {
	return employeePartitionPrefix + strings.ToUpper(strings.TrimSpace(email))
}

func employeeSK(id valueobjects.CourseID) string {
	return coursePartitionPrefix + id.String()
}
