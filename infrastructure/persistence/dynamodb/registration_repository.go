package dynamodb

import (
	"context"

	"coursehub-backend/application/ports"
	"coursehub-backend/domain/core/entities"
	"coursehub-backend/domain/core/valueobjects"
	pkgerrors "coursehub-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// RegistrationRepository implements ports.RegistrationRepository using DynamoDB
type RegistrationRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.RegistrationRepository {
	return &RegistrationRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// GetByID retrieves the by-course copy of a registration. The owning course
// partition is recovered from the registration id itself.
func (r *RegistrationRepository) GetByID(ctx context.Context, id valueobjects.RegistrationID) (*entities.Registration, error) {
	courseID, err := id.CourseID()
	if err != nil {
		return nil, err
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: coursePK(courseID)},
			"SK": &types.AttributeValueMemberS{Value: registrationSK(id)},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get registration", err)
	}
	if len(result.Item) == 0 {
		return nil, pkgerrors.NewNotFoundError("registration")
	}

	var item registrationItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal registration").WithCause(err)
	}

	return item.toEntity()
}

// ListByCourse retrieves every registration filed under a course's partition.
// The sort key carries the registration id, so the store's ascending scan
// order is already the required lexicographic order.
func (r *RegistrationRepository) ListByCourse(ctx context.Context, courseID valueobjects.CourseID) ([]*entities.Registration, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: coursePK(courseID)},
			":sk": &types.AttributeValueMemberS{Value: registrationSortPrefix},
		},
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list registrations", err)
	}

	regs := make([]*entities.Registration, 0, len(result.Items))
	for _, raw := range result.Items {
		var item registrationItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Failed to unmarshal registration item",
				zap.String("courseID", courseID.String()),
				zap.Error(err),
			)
			continue
		}

		reg, err := item.toEntity()
		if err != nil {
			r.logger.Warn("Skipping malformed registration row",
				zap.String("courseID", courseID.String()),
				zap.Error(err),
			)
			continue
		}
		regs = append(regs, reg)
	}

	return regs, nil
}

// ExistsForEmployee checks the employee-addressed lookup row for the given
// (employee, course) pair
func (r *RegistrationRepository) ExistsForEmployee(ctx context.Context, email string, courseID valueobjects.CourseID) (bool, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: employeePK(email)},
			"SK": &types.AttributeValueMemberS{Value: employeeSK(courseID)},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return false, pkgerrors.NewDatabaseError("check duplicate registration", err)
	}

	return len(result.Item) > 0, nil
}
