package catalog

import "time"

// Branch is a single physical restaurant location owned by a tenant.
type Branch struct {
	ID                string    `dynamodbav:"id"` // PK
	OwnerID           string    `dynamodbav:"owner_id"`
	Name              string    `dynamodbav:"name"`
	Slug              string    `dynamodbav:"slug"` // GSI slug-index
	Currency          string    `dynamodbav:"currency,omitempty"`
	Address           string    `dynamodbav:"address,omitempty"`
	Phone             string    `dynamodbav:"phone,omitempty"`
	IsOrderingEnabled bool      `dynamodbav:"is_ordering_enabled"`
	CreatedAt         time.Time `dynamodbav:"created_at"`
}

// Category groups products on the menu. Name is localized per two-letter code.
type Category struct {
	ID        string            `dynamodbav:"id"` // PK
	BranchID  string            `dynamodbav:"branch_id"`
	Name      map[string]string `dynamodbav:"name"`
	Type      string            `dynamodbav:"type,omitempty"` // e.g. food, drink
	SortOrder int               `dynamodbav:"sort_order"`
	IsActive  bool              `dynamodbav:"is_active"`
	CreatedAt time.Time         `dynamodbav:"created_at"`
}

// Product is one purchasable menu item.
type Product struct {
	ID          string            `dynamodbav:"id"` // PK
	BranchID    string            `dynamodbav:"branch_id"`
	CategoryID  string            `dynamodbav:"category_id"`
	Name        map[string]string `dynamodbav:"name"`
	Description map[string]string `dynamodbav:"description,omitempty"`
	Price       float64           `dynamodbav:"price"`
	Allergens   []string          `dynamodbav:"allergens,omitempty"`
	Badges      []string          `dynamodbav:"badges,omitempty"`
	Calories    int               `dynamodbav:"calories,omitempty"`
	SortOrder   int               `dynamodbav:"sort_order"`
	IsActive    bool              `dynamodbav:"is_active"`
	IsAvailable bool              `dynamodbav:"is_available"`
	CreatedAt   time.Time         `dynamodbav:"created_at"`
}

// Table is one physical table in a branch; QRCode is the short code baked
// into the printed QR sticker.
type Table struct {
	ID        string    `dynamodbav:"id"` // PK
	BranchID  string    `dynamodbav:"branch_id"`
	Name      string    `dynamodbav:"name"`
	QRCode    string    `dynamodbav:"qr_code"` // GSI qr_code-index
	CreatedAt time.Time `dynamodbav:"created_at"`
}
