package validation

import "testing"

func TestAddLineRequest_Valid(t *testing.T) {
	v := New()

	req := AddLineRequest{
		ProductID: "p1",
		Name:      "Latte",
		Price:     90,
		Quantity:  1,
		Options:   map[string]interface{}{"milk": "oat"},
	}
	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}

	// free items are legal, prices never negative
	req.Price = 0
	if err := v.Struct(req); err != nil {
		t.Fatalf("zero price should validate: %v", err)
	}
	req.Price = -1
	if err := v.Struct(req); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestAddLineRequest_QuantityFloor(t *testing.T) {
	v := New()

	req := AddLineRequest{ProductID: "p1", Name: "Latte", Price: 90, Quantity: 0}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for quantity < 1")
	}
}

func TestAddLineRequest_MissingFields(t *testing.T) {
	v := New()

	req := AddLineRequest{Quantity: 1}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation errors for missing product_id and name")
	}
}

func TestSetupRequest_SlugFormat(t *testing.T) {
	v := New()

	ok := SetupRequest{BranchName: "Kahve Durağı", Slug: "kahve-duragi", TableCount: 5}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("expected valid setup request: %v", err)
	}

	bad := []string{"Kahve Durağı", "UPPER", "trailing-", "-leading", "two--dashes", "a b"}
	for _, slug := range bad {
		req := SetupRequest{BranchName: "X", Slug: slug, TableCount: 1}
		if err := v.Struct(req); err == nil {
			t.Fatalf("expected slug %q to be rejected", slug)
		}
	}
}

func TestSetupRequest_TableCountBounds(t *testing.T) {
	v := New()

	req := SetupRequest{BranchName: "X", Slug: "x", TableCount: 0}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected error for zero tables")
	}
	req.TableCount = 201
	if err := v.Struct(req); err == nil {
		t.Fatal("expected error for too many tables")
	}
}

func TestRegisterRequest(t *testing.T) {
	v := New()

	if err := v.Struct(RegisterRequest{Email: "a@b.co", Password: "secret1"}); err != nil {
		t.Fatalf("expected valid: %v", err)
	}
	if err := v.Struct(RegisterRequest{Email: "not-an-email", Password: "secret1"}); err == nil {
		t.Fatal("expected error for bad email")
	}
	if err := v.Struct(RegisterRequest{Email: "a@b.co", Password: "short"}); err == nil {
		t.Fatal("expected error for short password")
	}
}
