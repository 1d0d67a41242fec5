package report

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/mediscribe/platform/pkg/logging"
)

type fakeDynamo struct {
	items   []map[string]types.AttributeValue
	scanErr error
	putErr  error
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.items = append(f.items, params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	// Return one item per page to exercise the paging loop.
	if len(f.items) == 0 {
		return &dynamodb.ScanOutput{}, nil
	}
	idx := 0
	if params.ExclusiveStartKey != nil {
		if v, ok := params.ExclusiveStartKey["idx"].(*types.AttributeValueMemberN); ok && v.Value == "1" {
			idx = 1
		}
	}
	out := &dynamodb.ScanOutput{Items: f.items[idx : idx+1]}
	if idx+1 < len(f.items) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"idx": &types.AttributeValueMemberN{Value: "1"},
		}
	}
	return out, nil
}

func TestDynamoRepositoryAppend(t *testing.T) {
	client := &fakeDynamo{}
	repo := NewDynamoRepository(client, "reports", logging.Default())

	rec := &Record{Specialist: "Orthopedist", Kind: KindAnalysis}
	if err := repo.Append(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.ID == "" {
		t.Error("append should assign an ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("append should assign a timestamp")
	}
	if len(client.items) != 1 {
		t.Fatalf("expected one item, got %d", len(client.items))
	}

	var stored Record
	if err := attributevalue.UnmarshalMap(client.items[0], &stored); err != nil {
		t.Fatalf("failed to decode stored item: %v", err)
	}
	if stored.Specialist != "Orthopedist" || stored.Kind != KindAnalysis {
		t.Errorf("unexpected stored record %+v", stored)
	}
}

func TestDynamoRepositoryListPaginates(t *testing.T) {
	client := &fakeDynamo{}
	repo := NewDynamoRepository(client, "reports", logging.Default())

	for _, spec := range []string{"Orthopedist", "Cardiologist"} {
		if err := repo.Append(context.Background(), &Record{Specialist: spec, Kind: KindAnalysis}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records across pages, got %d", len(records))
	}
}

func TestDynamoRepositoryListError(t *testing.T) {
	client := &fakeDynamo{scanErr: errors.New("throttled")}
	repo := NewDynamoRepository(client, "reports", logging.Default())

	if _, err := repo.List(context.Background()); err == nil {
		t.Fatal("expected scan error to surface")
	}
}

func TestDynamoRepositoryAppendError(t *testing.T) {
	client := &fakeDynamo{putErr: errors.New("conditional check failed")}
	repo := NewDynamoRepository(client, "reports", logging.Default())

	err := repo.Append(context.Background(), &Record{Specialist: "x", Kind: KindAnalysis})
	if err == nil {
		t.Fatal("expected put error to surface")
	}
}
