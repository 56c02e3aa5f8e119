package dynamo

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamotypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"lettergen/internal/members"
	"lettergen/internal/members/store"
)

// API is the subset of the DynamoDB client the store uses.
type API interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Store persists member rows in a DynamoDB table with a numeric ttl
// attribute consumed by the table's TTL sweep.
type Store struct {
	api   API
	table string
}

// New builds a DynamoDB-backed member store.
func New(ctx context.Context, region, table string) (*Store, error) {
	if strings.TrimSpace(table) == "" {
		return nil, fmt.Errorf("member table is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Store{api: dynamodb.NewFromConfig(cfg), table: table}, nil
}

// NewWithAPI builds a store around an existing client, used by tests.
func NewWithAPI(api API, table string) *Store {
	return &Store{api: api, table: table}
}

type rowItem struct {
	ResourceType string `dynamodbav:"resourceType"`
	ResourceKey  string `dynamodbav:"resourceKey"`
	Name         string `dynamodbav:"name"`
	TTL          *int64 `dynamodbav:"ttl,omitempty"`
}

// List scans the table for USER rows, following pagination until the
// snapshot is complete.
func (s *Store) List(ctx context.Context) ([]members.Row, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.table),
		FilterExpression: aws.String("resourceType = :t"),
		ExpressionAttributeValues: map[string]dynamotypes.AttributeValue{
			":t": &dynamotypes.AttributeValueMemberS{Value: members.ResourceTypeUser},
		},
	}

	var rows []members.Row
	for {
		out, err := s.api.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan table %s: %w", s.table, err)
		}

		var items []rowItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal member rows: %w", err)
		}
		for _, item := range items {
			rows = append(rows, members.Row{
				ResourceType: item.ResourceType,
				ResourceKey:  item.ResourceKey,
				Name:         item.Name,
				TTL:          item.TTL,
			})
		}

		if len(out.LastEvaluatedKey) == 0 {
			return rows, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// Put overwrites the row for its resourceKey.
func (s *Store) Put(ctx context.Context, row members.Row) error {
	item, err := attributevalue.MarshalMap(rowItem{
		ResourceType: row.ResourceType,
		ResourceKey:  row.ResourceKey,
		Name:         row.Name,
		TTL:          row.TTL,
	})
	if err != nil {
		return fmt.Errorf("marshal member row: %w", err)
	}

	if _, err := s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put member row key=%s: %w", row.ResourceKey, err)
	}
	return nil
}

var _ store.Store = (*Store)(nil)
