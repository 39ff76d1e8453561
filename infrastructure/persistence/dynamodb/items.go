package dynamodb

import (
	"time"

	"coursehub-backend/domain/core/entities"
	"coursehub-backend/domain/core/valueobjects"
	pkgerrors "coursehub-backend/pkg/errors"
	"coursehub-backend/pkg/utils"
)

// courseItem represents the DynamoDB item structure for a course offering
type courseItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	EntityType   string `dynamodbav:"EntityType"`
	CourseID     string `dynamodbav:"CourseID"`
	Name         string `dynamodbav:"Name"`
	Instructor   string `dynamodbav:"Instructor"`
	StartDate    string `dynamodbav:"StartDate"`
	MinSeats     int    `dynamodbav:"MinSeats"`
	MaxSeats     int    `dynamodbav:"MaxSeats"`
	CurrentCount int    `dynamodbav:"CurrentCount"`
	IsAllotted   bool   `dynamodbav:"IsAllotted"`
	CourseStatus string `dynamodbav:"CourseStatus"`
	CreatedAt    string `dynamodbav:"CreatedAt"`
}

func newCourseItem(c *entities.Course) courseItem {
	return courseItem{
		PK:           coursePK(c.ID()),
		SK:           metadataSortKey,
		EntityType:   "COURSE",
		CourseID:     c.ID().String(),
		Name:         c.Name(),
		Instructor:   c.Instructor(),
		StartDate:    c.StartDate().Format(utils.DateLayout),
		MinSeats:     c.MinSeats(),
		MaxSeats:     c.MaxSeats(),
		CurrentCount: c.CurrentCount(),
		IsAllotted:   c.IsAllotted(),
		CourseStatus: string(c.Status()),
		CreatedAt:    c.CreatedAt().Format(time.RFC3339),
	}
}

func (i courseItem) toEntity() (*entities.Course, error) {
	id, err := valueobjects.NewCourseIDFromString(i.CourseID)
	if err != nil {
		return nil, pkgerrors.NewInternalError("stored course id is malformed").WithCause(err)
	}

	startDate, err := utils.ParseDate(i.StartDate)
	if err != nil {
		return nil, pkgerrors.NewInternalError("stored course start date is malformed").WithCause(err)
	}

	createdAt, err := utils.ParseRFC3339(i.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	return entities.ReconstructCourse(
		id,
		i.Name,
		i.Instructor,
		startDate,
		i.MinSeats,
		i.MaxSeats,
		i.CurrentCount,
		i.IsAllotted,
		entities.CourseStatus(i.CourseStatus),
		createdAt,
	)
}

// registrationItem represents the DynamoDB item structure for a registration.
// The same attribute set is written under both key addressings; only PK/SK
// differ between the by-course and by-employee copies.
type registrationItem struct {
	PK             string `dynamodbav:"PK"`
	SK             string `dynamodbav:"SK"`
	EntityType     string `dynamodbav:"EntityType"`
	RegistrationID string `dynamodbav:"RegistrationID"`
	EmployeeName   string `dynamodbav:"EmployeeName"`
	Email          string `dynamodbav:"Email"`
	CourseID       string `dynamodbav:"CourseID"`
	Status         string `dynamodbav:"Status"`
	RegisteredAt   string `dynamodbav:"RegisteredAt"`
}

func newRegistrationByCourseItem(r *entities.Registration) registrationItem {
	item := newRegistrationAttributes(r)
	item.PK = coursePK(r.CourseID())
	item.SK = registrationSK(r.ID())
	return item
}

func newRegistrationByEmployeeItem(r *entities.Registration) registrationItem {
	item := newRegistrationAttributes(r)
	item.PK = employeePK(r.Email())
	item.SK = employeeSK(r.CourseID())
	return item
}

func newRegistrationAttributes(r *entities.Registration) registrationItem {
	return registrationItem{
		EntityType:     "REGISTRATION",
		RegistrationID: r.ID().String(),
		EmployeeName:   r.EmployeeName(),
		Email:          r.Email(),
		CourseID:       r.CourseID().String(),
		Status:         string(r.Status()),
		RegisteredAt:   r.RegisteredAt().Format(time.RFC3339),
	}
}

func (i registrationItem) toEntity() (*entities.Registration, error) {
	id, err := valueobjects.NewRegistrationIDFromString(i.RegistrationID)
	if err != nil {
		return nil, pkgerrors.NewInternalError("stored registration id is malformed").WithCause(err)
	}

	courseID, err := valueobjects.NewCourseIDFromString(i.CourseID)
	if err != nil {
		return nil, pkgerrors.NewInternalError("stored course id is malformed").WithCause(err)
	}

	registeredAt, err := utils.ParseRFC3339(i.RegisteredAt)
	if err != nil {
		registeredAt = time.Time{}
	}

	return entities.ReconstructRegistration(
		id,
		i.EmployeeName,
		i.Email,
		courseID,
		entities.RegistrationStatus(i.Status),
		registeredAt,
	)
}
