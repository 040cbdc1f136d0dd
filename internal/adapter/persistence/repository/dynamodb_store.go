package repository

import (
	"context"
	"errors"

	"garage_admin/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of *dynamodb.Client the stores use.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// dynamoStore keeps one record type in one table.
//
// Table requirements:
//   - PK: id (string)
type dynamoStore[R record] struct {
	ddb       DynamoAPI
	tableName string
}

var _ recordStore[customerRecord] = (*dynamoStore[customerRecord])(nil)

func newDynamoStore[R record](ddb DynamoAPI, tableName string) *dynamoStore[R] {
	return &dynamoStore[R]{ddb: ddb, tableName: tableName}
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func isConditionFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return errors.As(err, &cfe)
}

func (s *dynamoStore[R]) scan(ctx context.Context) ([]R, error) {
	return s.scanAll(ctx, &dynamodb.ScanInput{TableName: aws.String(s.tableName)})
}

func (s *dynamoStore[R]) findBy(ctx context.Context, field, value string) ([]R, error) {
	return s.scanAll(ctx, &dynamodb.ScanInput{
		TableName:                aws.String(s.tableName),
		FilterExpression:         aws.String("#f = :v"),
		ExpressionAttributeNames: map[string]string{"#f": field},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
}

func (s *dynamoStore[R]) scanAll(ctx context.Context, in *dynamodb.ScanInput) ([]R, error) {
	out := make([]R, 0)
	p := dynamodb.NewScanPaginator(s.ddb, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []R
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}

func (s *dynamoStore[R]) get(ctx context.Context, id string) (R, bool, error) {
	var r R
	out, err := s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return r, false, err
	}
	if len(out.Item) == 0 {
		return r, false, nil
	}
	if err := attributevalue.UnmarshalMap(out.Item, &r); err != nil {
		return r, false, err
	}
	return r, true, nil
}

func (s *dynamoStore[R]) put(ctx context.Context, r R, condition string) error {
	av, err := attributevalue.MarshalMap(r)
	if err != nil {
		return err
	}
	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String(condition),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}

func (s *dynamoStore[R]) insert(ctx context.Context, r R) error {
	err := s.put(ctx, r, "attribute_not_exists(#id)")
	if isConditionFailed(err) {
		return interfaces.ErrAlreadyExists
	}
	return err
}

func (s *dynamoStore[R]) replace(ctx context.Context, r R) (bool, error) {
	err := s.put(ctx, r, "attribute_exists(#id)")
	if isConditionFailed(err) {
		return false, nil
	}
	return err == nil, err
}

func (s *dynamoStore[R]) remove(ctx context.Context, id string) (bool, error) {
	_, err := s.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(s.tableName),
		Key:                      idKey(id),
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if isConditionFailed(err) {
		return false, nil
	}
	return err == nil, err
}

func (s *dynamoStore[R]) swap(ctx context.Context, id, field, from, to string) (R, bool, error) {
	var r R
	out, err := s.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id) AND #f = :from"),
		UpdateExpression:    aws.String("SET #f = :to"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from": &types.AttributeValueMemberS{Value: from},
			":to":   &types.AttributeValueMemberS{Value: to},
		},
		ExpressionAttributeNames: map[string]string{"#id": "id", "#f": field},
		ReturnValues:             types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return r, false, nil
		}
		return r, false, err
	}
	if len(out.Attributes) == 0 {
		return r, false, nil
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &r); err != nil {
		return r, false, err
	}
	return r, true, nil
}
