package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/ErenSahind/qr-menu/internal/awsx"
	"github.com/ErenSahind/qr-menu/internal/idempotency"
	"github.com/ErenSahind/qr-menu/internal/orders"
)

// Processor handles SQS messages and walks placed orders through the kitchen
// lifecycle: pending -> preparing -> served -> completed.
type Processor struct {
	idempStore *idempotency.Store
	orderStore *orders.Store
}

// NewProcessor creates a worker processor with AWS clients injected.
func NewProcessor(clients *awsx.Clients, idempTable, ordersTable string) *Processor {
	return &Processor{
		idempStore: idempotency.NewStore(clients.DynamoDB, idempTable, 48*time.Hour),
		orderStore: orders.NewStore(clients.DynamoDB, ordersTable),
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			log.Printf("worker error: %v", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg WorkerMessage
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	log.Printf("[worker] received order=%s idempotency_key=%s corr=%s",
		msg.OrderID, msg.IdempotencyKey, msg.CorrelationID)

	order, err := p.orderStore.Get(ctx, msg.OrderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}
	if order == nil {
		// Should never happen, let the message land in the DLQ
		return fmt.Errorf("order not found: %s", msg.OrderID)
	}

	// pending -> preparing (idempotent kitchen ack)
	err = p.orderStore.UpdateStatus(ctx, msg.OrderID, orders.StatusPending, orders.StatusPreparing)
	if err == orders.ErrStatusMismatch {
		// Already past pending or a competing worker took it:
		// completed/served -> success; cancelled -> staff pulled it, swallow;
		// preparing -> duplicated message, swallow.
		o2, _ := p.orderStore.Get(ctx, msg.OrderID)
		if o2 == nil {
			return fmt.Errorf("order vanished: %s", msg.OrderID)
		}
		switch o2.Status {
		case orders.StatusCompleted, orders.StatusServed:
			log.Printf("[worker] already processed order=%s status=%s", msg.OrderID, o2.Status)
			return nil
		case orders.StatusCancelled:
			log.Printf("[worker] order=%s was cancelled, skipping", msg.OrderID)
			return nil
		case orders.StatusPreparing:
			log.Printf("[worker] duplicate preparing event for order=%s", msg.OrderID)
			return nil
		default:
			return fmt.Errorf("unexpected status for order=%s: %s", msg.OrderID, o2.Status)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to update status to preparing: %w", err)
	}

	if err := p.orderStore.IncrementAttempts(ctx, msg.OrderID); err != nil {
		log.Printf("[worker] attempts increment failed for order=%s: %v", msg.OrderID, err)
	}

	// Kitchen work happens here; simulated for now.
	log.Printf("[worker] preparing order=%s (%d items)", msg.OrderID, len(order.Items))
	time.Sleep(200 * time.Millisecond)

	if err := p.orderStore.UpdateStatus(ctx, msg.OrderID, orders.StatusPreparing, orders.StatusServed); err != nil {
		return fmt.Errorf("failed to update status to served: %w", err)
	}
	if err := p.orderStore.UpdateStatus(ctx, msg.OrderID, orders.StatusServed, orders.StatusCompleted); err != nil {
		return fmt.Errorf("failed to update status to completed: %w", err)
	}

	// Mark idempotency DONE (the API created the record)
	response := fmt.Sprintf(`{"order_id":"%s","status":"%s"}`, msg.OrderID, orders.StatusCompleted)
	if err := p.idempStore.MarkDone(ctx, msg.IdempotencyKey, response, 200); err != nil {
		return fmt.Errorf("failed to update idempotency: %w", err)
	}

	log.Printf("[worker] completed order=%s", msg.OrderID)
	return nil
}
