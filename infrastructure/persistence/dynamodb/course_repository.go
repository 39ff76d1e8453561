package dynamodb

import (
	"context"
	"errors"

	"coursehub-backend/application/ports"
	"coursehub-backend/domain/core/entities"
	"coursehub-backend/domain/core/valueobjects"
	pkgerrors "coursehub-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// CourseRepository implements ports.CourseRepository using DynamoDB
type CourseRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.CourseRepository {
	return &CourseRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// Create writes the course metadata row, conditional on the derived id not
// existing yet. A lost race surfaces as the same conflict a pre-existing
// offering would.
func (r *CourseRepository) Create(ctx context.Context, course *entities.Course) error {
	av, err := attributevalue.MarshalMap(newCourseItem(course))
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal course").WithCause(err)
	}

	condition := expression.Name("PK").AttributeNotExists().And(expression.Name("SK").AttributeNotExists())
	expr, err := expression.NewBuilder().WithCondition(condition).Build()
	if err != nil {
		return pkgerrors.NewInternalError("failed to build condition expression").WithCause(err)
	}

	input := &dynamodb.PutItemInput{
		TableName:                 aws.String(r.tableName),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewConflictError("course offering already exists")
		}
		return pkgerrors.NewDatabaseError("create course", err)
	}

	r.logger.Debug("Course row written",
		zap.String("courseID", course.ID().String()),
		zap.String("PK", coursePK(course.ID())),
	)

	return nil
}

// GetByID retrieves a course offering by its derived id
func (r *CourseRepository) GetByID(ctx context.Context, id valueobjects.CourseID) (*entities.Course, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: coursePK(id)},
			"SK": &types.AttributeValueMemberS{Value: metadataSortKey},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get course", err)
	}
	if len(result.Item) == 0 {
		return nil, pkgerrors.NewNotFoundError("course offering")
	}

	var item courseItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal course").WithCause(err)
	}

	return item.toEntity()
}
