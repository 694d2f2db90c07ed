package validation

// AddLineRequest is the payload for POST /:locale/cart/items.
// Options is the opaque variant/add-on selection attached to the line.
type AddLineRequest struct {
	ProductID string                 `json:"product_id" validate:"required"`
	Name      string                 `json:"name" validate:"required"`
	Price     float64                `json:"price" validate:"gte=0"`     // unit price, non-negative
	Quantity  int                    `json:"quantity" validate:"min=1"`  // must be >= 1
	Options   map[string]interface{} `json:"options,omitempty"`
}

// UpdateQuantityRequest is the payload for PUT /:locale/cart/items/:productId.
// Quantity is an absolute value; zero or below removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest is the payload for POST /:locale/cart/checkout. The QR page
// knows which branch/table the customer sits at and sends both along.
type CheckoutRequest struct {
	BranchID string `json:"branch_id" validate:"required"`
	TableID  string `json:"table_id" validate:"required"`
	Note     string `json:"note,omitempty" validate:"max=500"`
}

// SetupRequest is the onboarding-wizard payload creating the first branch.
type SetupRequest struct {
	BranchName      string `json:"branch_name" validate:"required"`
	Slug            string `json:"slug" validate:"required,slug"`
	TableCount      int    `json:"table_count" validate:"min=1,max=200"`
	UseTableNumbers bool   `json:"use_table_numbers"`
}

// RegisterRequest is the payload for POST /api/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name,omitempty"`
}

// LoginRequest is the payload for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
