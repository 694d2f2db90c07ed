package main

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ErenSahind/qr-menu/internal/awsx"
	"github.com/ErenSahind/qr-menu/internal/idempotency"
	"github.com/ErenSahind/qr-menu/internal/orders"
)

// --- mock implementations ---

type mockDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{
		tables: map[string]map[string]map[string]types.AttributeValue{
			"idempotency": {},
			"orders":      {},
		},
	}
}

func pkOf(attrs map[string]types.AttributeValue) string {
	if v, ok := attrs["order_id"]; ok {
		return v.(*types.AttributeValueMemberS).Value
	}
	return attrs["idempotency_key"].(*types.AttributeValueMemberS).Value
}

func (m *mockDynamo) PutItem(ctx context.Context, in *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[*in.TableName][pkOf(in.Item)] = in.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, in *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.tables[*in.TableName][pkOf(in.Key)]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, in *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	return &dyn.DeleteItemOutput{}, nil
}

func (m *mockDynamo) UpdateItem(ctx context.Context, in *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.tables[*in.TableName][pkOf(in.Key)]
	if !ok {
		return nil, &types.ConditionalCheckFailedException{}
	}
	if in.ConditionExpression != nil && strings.Contains(*in.ConditionExpression, ":expected") {
		cur, _ := item["status"].(*types.AttributeValueMemberS)
		want := in.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberS)
		if cur == nil || cur.Value != want.Value {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	for placeholder, attr := range in.ExpressionAttributeValues {
		switch placeholder {
		case ":new", ":done", ":failed":
			item["status"] = attr
		case ":rb":
			item["response_body"] = attr
		case ":rs":
			item["response_status"] = attr
		}
	}
	return &dyn.UpdateItemOutput{}, nil
}

func (m *mockDynamo) Query(ctx context.Context, in *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	return &dyn.QueryOutput{}, nil
}

func (m *mockDynamo) TransactWriteItems(ctx context.Context, in *dyn.TransactWriteItemsInput, optFns ...func(*dyn.Options)) (*dyn.TransactWriteItemsOutput, error) {
	return &dyn.TransactWriteItemsOutput{}, nil
}

// --- helpers ---

func seedOrder(t *testing.T, mock *mockDynamo, id, status string) {
	t.Helper()
	order := orders.Order{
		OrderID:           id,
		BranchID:          "b1",
		TableID:           "t1",
		CustomerSessionID: "sess-1",
		Status:            status,
		TotalAmount:       90,
		Items:             []orders.Item{{ProductID: "p1", Name: "Latte", Price: 90, Quantity: 1}},
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	item, err := attributevalue.MarshalMap(order)
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	mock.tables["orders"][id] = item
}

func seedIdempotency(t *testing.T, mock *mockDynamo, key, orderID string) {
	t.Helper()
	rec := idempotency.Record{
		IdempotencyKey: key,
		Status:         idempotency.StatusInProgress,
		OrderID:        orderID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		t.Fatalf("seed idempotency: %v", err)
	}
	mock.tables["idempotency"][key] = item
}

func sqsEvent(t *testing.T, msg WorkerMessage) events.SQSEvent {
	t.Helper()
	body, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal message: %v", err)
	}
	return events.SQSEvent{Records: []events.SQSMessage{{Body: string(body)}}}
}

func statusOf(mock *mockDynamo, table, pk string) string {
	if st, ok := mock.tables[table][pk]["status"].(*types.AttributeValueMemberS); ok {
		return st.Value
	}
	return ""
}

// --- test cases ---

func TestWorkerProcess_Success(t *testing.T) {
	mock := newMockDynamo()
	seedOrder(t, mock, "o1", orders.StatusPending)
	seedIdempotency(t, mock, "k1", "o1")

	clients := &awsx.Clients{DynamoDB: mock}
	p := NewProcessor(clients, "idempotency", "orders")

	err := p.Handle(context.Background(), sqsEvent(t, WorkerMessage{OrderID: "o1", IdempotencyKey: "k1"}))
	if err != nil {
		t.Fatalf("unexpected worker error: %v", err)
	}

	if got := statusOf(mock, "orders", "o1"); got != orders.StatusCompleted {
		t.Fatalf("expected completed order, got %s", got)
	}
	if got := statusOf(mock, "idempotency", "k1"); got != idempotency.StatusDone {
		t.Fatalf("expected DONE idempotency record, got %s", got)
	}
}

func TestWorkerProcess_DuplicateMessageSwallowed(t *testing.T) {
	mock := newMockDynamo()
	seedOrder(t, mock, "o1", orders.StatusCompleted)
	seedIdempotency(t, mock, "k1", "o1")

	p := NewProcessor(&awsx.Clients{DynamoDB: mock}, "idempotency", "orders")

	err := p.Handle(context.Background(), sqsEvent(t, WorkerMessage{OrderID: "o1", IdempotencyKey: "k1"}))
	if err != nil {
		t.Fatalf("duplicate message must be swallowed, got %v", err)
	}
	if got := statusOf(mock, "orders", "o1"); got != orders.StatusCompleted {
		t.Fatalf("completed order must stay completed, got %s", got)
	}
}

func TestWorkerProcess_CancelledOrderSkipped(t *testing.T) {
	mock := newMockDynamo()
	seedOrder(t, mock, "o1", orders.StatusCancelled)
	seedIdempotency(t, mock, "k1", "o1")

	p := NewProcessor(&awsx.Clients{DynamoDB: mock}, "idempotency", "orders")

	err := p.Handle(context.Background(), sqsEvent(t, WorkerMessage{OrderID: "o1", IdempotencyKey: "k1"}))
	if err != nil {
		t.Fatalf("cancelled order must be skipped, got %v", err)
	}
	if got := statusOf(mock, "orders", "o1"); got != orders.StatusCancelled {
		t.Fatalf("cancelled order must stay cancelled, got %s", got)
	}
}

func TestWorkerProcess_MissingOrderErrors(t *testing.T) {
	mock := newMockDynamo()
	p := NewProcessor(&awsx.Clients{DynamoDB: mock}, "idempotency", "orders")

	err := p.Handle(context.Background(), sqsEvent(t, WorkerMessage{OrderID: "ghost", IdempotencyKey: "k1"}))
	if err == nil {
		t.Fatal("expected error for missing order (message should go to DLQ)")
	}
}

func TestWorkerProcess_InvalidBodyErrors(t *testing.T) {
	mock := newMockDynamo()
	p := NewProcessor(&awsx.Clients{DynamoDB: mock}, "idempotency", "orders")

	ev := events.SQSEvent{Records: []events.SQSMessage{{Body: "not-json"}}}
	if err := p.Handle(context.Background(), ev); err == nil {
		t.Fatal("expected error for invalid message body")
	}
}
