// Package kvstore is a small expiring key-value layer on top of a single
// DynamoDB table. Values are stored JSON-encoded under a string key with a
// TTL attribute; callers get typed reads back via the generic Get.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/fluxpay/dummy-connector/internal/aws"
)

// ErrNotFound indicates the key is absent (or already expired).
var ErrNotFound = errors.New("kvstore: key not found")

// ErrDecode indicates the stored value could not be decoded into the
// requested type. Distinct from ErrNotFound so callers can tell a missing
// key from a corrupted one.
var ErrDecode = errors.New("kvstore: decode value")

// Store encapsulates key-value operations against one DynamoDB table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore returns a Store bound to tableName. The table is expected to
// have a string partition key "k" and TTL enabled on "expires_at".
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// item is the persisted shape of a single entry.
type item struct {
	Key       string `dynamodbav:"k"`
	Value     string `dynamodbav:"v"`
	ExpiresAt int64  `dynamodbav:"expires_at"`
}

// Put JSON-encodes value and writes it under key, replacing any existing
// entry and stamping the expiry ttl from now.
func (s *Store) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for key %q: %w", key, err)
	}

	entry := item{
		Key:       key,
		Value:     string(raw),
		ExpiresAt: s.nowFunc().Add(ttl).Unix(),
	}
	av, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      av,
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("put item (%s): %w", apiErr.ErrorCode(), err)
		}
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Get reads the entry under key and decodes it into T.
// Returns ErrNotFound when the key is absent or past its expiry (DynamoDB
// removes expired items lazily, so the expiry is checked here too), and
// ErrDecode when the stored value does not decode as T.
func Get[T any](ctx context.Context, s *Store, key string) (T, error) {
	var zero T

	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"k": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return zero, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return zero, fmt.Errorf("%w: %q", ErrNotFound, key)
	}

	var entry item
	if err := attributevalue.UnmarshalMap(out.Item, &entry); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if entry.ExpiresAt <= s.nowFunc().Unix() {
		return zero, fmt.Errorf("%w: %q expired at %d", ErrNotFound, key, entry.ExpiresAt)
	}

	var value T
	if err := json.Unmarshal([]byte(entry.Value), &value); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return value, nil
}
