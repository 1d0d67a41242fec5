package report

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/mediscribe/platform/pkg/logging"
)

// dynamoAPI is the subset of the DynamoDB client used by DynamoRepository.
type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoRepository persists report records to the reports collection.
type DynamoRepository struct {
	client    dynamoAPI
	tableName string
	logger    *logging.Logger
}

// NewDynamoRepository builds a repository backed by the provided DynamoDB client.
func NewDynamoRepository(client dynamoAPI, tableName string, logger *logging.Logger) *DynamoRepository {
	if client == nil {
		panic("report: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("report: table name cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DynamoRepository{client: client, tableName: tableName, logger: logger.Named("report")}
}

// Append inserts a report record.
func (r *DynamoRepository) Append(ctx context.Context, rec *Record) error {
	fillRecord(rec)

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("report: marshal record: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("report: persist record: %w", err)
	}

	r.logger.Info("report record appended", "id", rec.ID, "kind", rec.Kind)
	return nil
}

// List scans the whole reports collection. The admin view is an aggregate
// over a small collection, so a paging loop over Scan is sufficient.
func (r *DynamoRepository) List(ctx context.Context) ([]*Record, error) {
	var out []*Record
	var startKey map[string]types.AttributeValue

	for {
		resp, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("report: scan collection: %w", err)
		}

		var page []*Record
		if err := attributevalue.UnmarshalListOfMaps(resp.Items, &page); err != nil {
			return nil, fmt.Errorf("report: decode records: %w", err)
		}
		out = append(out, page...)

		if len(resp.LastEvaluatedKey) == 0 {
			break
		}
		startKey = resp.LastEvaluatedKey
	}

	return out, nil
}
