package dynamodb

import (
	"context"
	"errors"
	"strconv"

	"coursehub-backend/application/ports"
	"coursehub-backend/domain/core/entities"
	pkgerrors "coursehub-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxTransactItems is the store's ceiling for one TransactWriteItems call
const maxTransactItems = 100

// WriteSetFactory creates DynamoDB-backed atomic write sets
type WriteSetFactory struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewWriteSetFactory creates a new WriteSetFactory
func NewWriteSetFactory(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.WriteSetFactory {
	return &WriteSetFactory{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// NewWriteSet creates an empty write set bound to the shared table
func (f *WriteSetFactory) NewWriteSet() ports.WriteSet {
	return &writeSet{
		client:    f.client,
		tableName: f.tableName,
		logger:    f.logger,
		items:     make([]types.TransactWriteItem, 0, 4),
	}
}

// msgConcurrentConflict is the fallback for lost conditions that carry no
// more specific business meaning
const msgConcurrentConflict = "a concurrent write changed the course state; retry the operation"

// writeSet accumulates TransactWriteItems and commits them all-or-nothing.
// Every business guard that was checked by a prior read is restated here as
// a ConditionExpression, so a concurrent writer makes the commit fail
// instead of silently breaking an invariant.
//
// reasons holds one conflict message per staged item, index-aligned with
// items, so a lost condition can be reported as the business rule it guards.
type writeSet struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
	items     []types.TransactWriteItem
	reasons   []string
	committed bool
}

func (w *writeSet) stage(reason string, item types.TransactWriteItem) {
	w.items = append(w.items, item)
	w.reasons = append(w.reasons, reason)
}

// CreateRegistration stages both registration copies plus the guarded seat
// increment. The registration puts are conditional on their keys being
// absent (duplicate guard); the count update is conditional on the count the
// workflow read and on the allotment not having happened.
func (w *writeSet) CreateRegistration(reg *entities.Registration, course *entities.Course, expectedCount int) error {
	byCourse, err := attributevalue.MarshalMap(newRegistrationByCourseItem(reg))
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal registration").WithCause(err)
	}
	byEmployee, err := attributevalue.MarshalMap(newRegistrationByEmployeeItem(reg))
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal registration").WithCause(err)
	}

	w.stage("employee already registered for this course", types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(w.tableName),
			Item:                byCourse,
			ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
		},
	})
	w.stage("employee already registered for this course", types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(w.tableName),
			Item:                byEmployee,
			ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
		},
	})
	w.stage(msgConcurrentConflict, w.seatCountUpdate(course, expectedCount, expectedCount+1))
	return nil
}

// RemoveRegistration stages the dual delete plus the guarded seat decrement
func (w *writeSet) RemoveRegistration(reg *entities.Registration, course *entities.Course, expectedCount int) error {
	w.stage("registration no longer exists", types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: aws.String(w.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: coursePK(reg.CourseID())},
				"SK": &types.AttributeValueMemberS{Value: registrationSK(reg.ID())},
			},
			ConditionExpression: aws.String("attribute_exists(PK)"),
		},
	})
	w.stage("registration no longer exists", types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: aws.String(w.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: employeePK(reg.Email())},
				"SK": &types.AttributeValueMemberS{Value: employeeSK(reg.CourseID())},
			},
			ConditionExpression: aws.String("attribute_exists(PK)"),
		},
	})
	w.stage(msgConcurrentConflict, w.seatCountUpdate(course, expectedCount, expectedCount-1))
	return nil
}

// FinalizeCourse stages the terminal allotment outcome on the course row.
// The write is conditioned on the registration count the decision was based
// on, so a registration that lands between the listing and this commit makes
// the whole finalization fail instead of being stranded un-finalized.
func (w *writeSet) FinalizeCourse(course *entities.Course, expectedCount int) error {
	w.stage(msgConcurrentConflict, types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(w.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: coursePK(course.ID())},
				"SK": &types.AttributeValueMemberS{Value: metadataSortKey},
			},
			UpdateExpression:    aws.String("SET IsAllotted = :allotted, CourseStatus = :status"),
			ConditionExpression: aws.String("attribute_exists(PK) AND IsAllotted = :notAllotted AND CurrentCount = :expected"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":allotted":    &types.AttributeValueMemberBOOL{Value: true},
				":notAllotted": &types.AttributeValueMemberBOOL{Value: false},
				":status":      &types.AttributeValueMemberS{Value: string(course.Status())},
				":expected":    &types.AttributeValueMemberN{Value: strconv.Itoa(expectedCount)},
			},
		},
	})
	return nil
}

// FinalizeRegistration stages the terminal status on both copies so the
// denormalized rows can never disagree
func (w *writeSet) FinalizeRegistration(reg *entities.Registration) error {
	status := &types.AttributeValueMemberS{Value: string(reg.Status())}

	w.stage(msgConcurrentConflict, types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(w.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: coursePK(reg.CourseID())},
				"SK": &types.AttributeValueMemberS{Value: registrationSK(reg.ID())},
			},
			UpdateExpression:          aws.String("SET #status = :status"),
			ConditionExpression:       aws.String("attribute_exists(PK)"),
			ExpressionAttributeNames:  map[string]string{"#status": "Status"},
			ExpressionAttributeValues: map[string]types.AttributeValue{":status": status},
		},
	})
	w.stage(msgConcurrentConflict, types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(w.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: employeePK(reg.Email())},
				"SK": &types.AttributeValueMemberS{Value: employeeSK(reg.CourseID())},
			},
			UpdateExpression:          aws.String("SET #status = :status"),
			ConditionExpression:       aws.String("attribute_exists(PK)"),
			ExpressionAttributeNames:  map[string]string{"#status": "Status"},
			ExpressionAttributeValues: map[string]types.AttributeValue{":status": status},
		},
	})
	return nil
}

// seatCountUpdate writes the new seat count conditioned on the count the
// workflow read, closing the read-then-write race on CurrentCount
func (w *writeSet) seatCountUpdate(course *entities.Course, expected, next int) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(w.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: coursePK(course.ID())},
				"SK": &types.AttributeValueMemberS{Value: metadataSortKey},
			},
			UpdateExpression:    aws.String("SET CurrentCount = :next"),
			ConditionExpression: aws.String("attribute_exists(PK) AND CurrentCount = :expected AND IsAllotted = :notAllotted"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":next":        &types.AttributeValueMemberN{Value: strconv.Itoa(next)},
				":expected":    &types.AttributeValueMemberN{Value: strconv.Itoa(expected)},
				":notAllotted": &types.AttributeValueMemberBOOL{Value: false},
			},
		},
	}
}

// Commit executes the staged writes as one transaction
func (w *writeSet) Commit(ctx context.Context) error {
	if w.committed {
		return pkgerrors.NewInternalError("write set already committed")
	}
	if len(w.items) == 0 {
		return pkgerrors.NewInternalError("write set is empty")
	}
	if len(w.items) > maxTransactItems {
		return pkgerrors.NewInternalError("write set exceeds the store's transaction limit")
	}
	w.committed = true

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: w.items,
		// Token makes a network-level retry of the same commit idempotent
		ClientRequestToken: aws.String(uuid.New().String()),
	}

	if _, err := w.client.TransactWriteItems(ctx, input); err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			if msg, ok := w.conflictReason(canceled); ok {
				w.logger.Info("Write set lost a conditional check",
					zap.Int("items", len(w.items)),
					zap.String("reason", msg),
					zap.Error(err),
				)
				return pkgerrors.NewConflictError(msg)
			}
		}
		return pkgerrors.NewDatabaseError("commit write set", err)
	}

	w.logger.Debug("Write set committed", zap.Int("items", len(w.items)))
	return nil
}

// conflictReason reports whether a canceled transaction was rejected by a
// ConditionExpression, and if so returns the business-rule message staged for
// the first item whose condition failed. Cancellation reasons come back
// index-aligned with the submitted items.
func (w *writeSet) conflictReason(canceled *types.TransactionCanceledException) (string, bool) {
	for i, reason := range canceled.CancellationReasons {
		if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
			continue
		}
		if i < len(w.reasons) {
			return w.reasons[i], true
		}
		return msgConcurrentConflict, true
	}
	return "", false
}
