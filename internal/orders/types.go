package orders

import "time"

// Order statuses, walked pending -> preparing -> served -> completed.
// cancelled is terminal from any non-completed state.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusServed    = "served"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Item is one order line, snapshotted from the cart at checkout so later
// menu edits don't rewrite history.
type Item struct {
	ProductID string                 `dynamodbav:"product_id" json:"product_id"`
	Name      string                 `dynamodbav:"name" json:"name"`
	Price     float64                `dynamodbav:"price" json:"price"`
	Quantity  int                    `dynamodbav:"quantity" json:"quantity"`
	Options   map[string]interface{} `dynamodbav:"options,omitempty" json:"options,omitempty"`
}

// Order represents the item stored in the orders DynamoDB table.
type Order struct {
	OrderID           string    `dynamodbav:"order_id"` // PK
	BranchID          string    `dynamodbav:"branch_id"`
	TableID           string    `dynamodbav:"table_id"`
	CustomerSessionID string    `dynamodbav:"customer_session_id"`
	Status            string    `dynamodbav:"status"`
	TotalAmount       float64   `dynamodbav:"total_amount"`
	Items             []Item    `dynamodbav:"items,omitempty"`
	Note              string    `dynamodbav:"note,omitempty"`
	CreatedAt         time.Time `dynamodbav:"created_at"`
	UpdatedAt         time.Time `dynamodbav:"updated_at"`
	Attempts          int       `dynamodbav:"attempts,omitempty"`
}
