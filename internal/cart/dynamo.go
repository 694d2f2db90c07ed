package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ErenSahind/qr-menu/internal/awsx"
)

// SlotName identifies the durable slot backing cart state across reloads.
const SlotName = "qr-menu-cart"

// slotRecord is the shape persisted in the cart slots DynamoDB table.
// Keyed by (session_id, slot) so a session could carry other slots later.
type slotRecord struct {
	SessionID string    `dynamodbav:"session_id"` // PK
	Slot      string    `dynamodbav:"slot"`       // SK, fixed to SlotName
	Lines     []Line    `dynamodbav:"lines"`
	UpdatedAt time.Time `dynamodbav:"updated_at"`
	ExpiresAt int64     `dynamodbav:"expires_at"` // TTL epoch seconds
}

// DynamoSlot persists one session's cart under the fixed slot name.
type DynamoSlot struct {
	client    awsx.DynamoDBAPI
	tableName string
	sessionID string
	ttlWindow time.Duration // abandoned table sessions age out via TTL
	nowFunc   func() time.Time
}

// NewDynamoSlot returns a Slot bound to a session.
// ttlWindow: how long an untouched cart survives (e.g., 24*time.Hour).
func NewDynamoSlot(client awsx.DynamoDBAPI, tableName, sessionID string, ttlWindow time.Duration) *DynamoSlot {
	return &DynamoSlot{
		client:    client,
		tableName: tableName,
		sessionID: sessionID,
		ttlWindow: ttlWindow,
		nowFunc:   time.Now,
	}
}

// Load reads the persisted snapshot. Returns (nil, nil) when the session has
// no stored cart yet.
func (s *DynamoSlot) Load(ctx context.Context) ([]Line, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key:       s.key(),
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var rec slotRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal slot: %w", err)
	}
	return rec.Lines, nil
}

// Save overwrites the persisted snapshot with the current lines.
func (s *DynamoSlot) Save(ctx context.Context, lines []Line) error {
	now := s.nowFunc()
	rec := slotRecord{
		SessionID: s.sessionID,
		Slot:      SlotName,
		Lines:     lines,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttlWindow).Unix(),
	}
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal slot: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

func (s *DynamoSlot) key() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"session_id": &types.AttributeValueMemberS{Value: s.sessionID},
		"slot":       &types.AttributeValueMemberS{Value: SlotName},
	}
}
