package usecase

import (
	"context"
	"testing"

	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/delivery/http/middleware"
	"felanocare-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newCartFixture(t *testing.T) (CartUsecase, *mockCartRepo, *mockMedicineRepo, *mockNotifier, context.Context, *entity.Medicine) {
	t.Helper()

	cartRepo := newMockCartRepo()
	medicineRepo := newMockMedicineRepo()
	notifier := &mockNotifier{}

	medicine := medicineRepo.add(&entity.Medicine{
		Name:  "Paracetamol 500mg",
		Price: decimal.RequireFromString("12.50"),
		Stock: 100,
	})

	usecase := NewCartUsecase(testLogger(), cartRepo, medicineRepo, notifier, &mockAudit{})
	ctx := middleware.WithUser(context.Background(), uuid.New(), entity.RoleIDPatient)

	return usecase, cartRepo, medicineRepo, notifier, ctx, medicine
}

func TestAddItemNewMedicine(t *testing.T) {
	usecase, _, _, notifier, ctx, medicine := newCartFixture(t)

	cart, err := usecase.AddItem(ctx, &dto.AddCartItemRequest{MedicineID: medicine.ID.String()})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(cart.Items))
	}
	item := cart.Items[0]
	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", item.Quantity)
	}
	if item.Name != medicine.Name {
		t.Errorf("name snapshot = %q, want %q", item.Name, medicine.Name)
	}
	if !cart.Total.Equal(medicine.Price) {
		t.Errorf("total = %s, want %s", cart.Total, medicine.Price)
	}
	if len(notifier.published()) != 1 {
		t.Errorf("published events = %d, want 1", len(notifier.published()))
	}
}

func TestAddItemExistingIncrementsQuantity(t *testing.T) {
	usecase, _, _, _, ctx, medicine := newCartFixture(t)
	req := &dto.AddCartItemRequest{MedicineID: medicine.ID.String()}

	if _, err := usecase.AddItem(ctx, req); err != nil {
		t.Fatalf("first AddItem: %v", err)
	}
	cart, err := usecase.AddItem(ctx, req)
	if err != nil {
		t.Fatalf("second AddItem: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(cart.Items))
	}
	if cart.Items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", cart.Items[0].Quantity)
	}
	want := medicine.Price.Mul(decimal.NewFromInt(2))
	if !cart.Total.Equal(want) {
		t.Errorf("total = %s, want %s", cart.Total, want)
	}
}

func TestAddItemUnknownMedicine(t *testing.T) {
	usecase, _, _, _, ctx, _ := newCartFixture(t)

	_, err := usecase.AddItem(ctx, &dto.AddCartItemRequest{MedicineID: uuid.NewString()})
	if err != ErrMedicineNotFound {
		t.Fatalf("err = %v, want ErrMedicineNotFound", err)
	}
}

func TestChangeQuantityRejectsDropBelowOne(t *testing.T) {
	usecase, _, _, _, ctx, medicine := newCartFixture(t)

	if _, err := usecase.AddItem(ctx, &dto.AddCartItemRequest{MedicineID: medicine.ID.String()}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	_, err := usecase.ChangeQuantity(ctx, medicine.ID, &dto.ChangeQuantityRequest{Delta: -1})
	if err != ErrInvalidQuantity {
		t.Fatalf("err = %v, want ErrInvalidQuantity", err)
	}

	// The line is untouched
	cart, err := usecase.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if cart.Items[0].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", cart.Items[0].Quantity)
	}
}

func TestChangeQuantityAppliesDelta(t *testing.T) {
	usecase, _, _, _, ctx, medicine := newCartFixture(t)

	if _, err := usecase.AddItem(ctx, &dto.AddCartItemRequest{MedicineID: medicine.ID.String()}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	cart, err := usecase.ChangeQuantity(ctx, medicine.ID, &dto.ChangeQuantityRequest{Delta: 3})
	if err != nil {
		t.Fatalf("ChangeQuantity: %v", err)
	}
	if cart.Items[0].Quantity != 4 {
		t.Errorf("quantity = %d, want 4", cart.Items[0].Quantity)
	}
}

func TestChangeQuantityMissingItem(t *testing.T) {
	usecase, _, _, _, ctx, medicine := newCartFixture(t)

	_, err := usecase.ChangeQuantity(ctx, medicine.ID, &dto.ChangeQuantityRequest{Delta: 1})
	if err != ErrCartItemNotFound {
		t.Fatalf("err = %v, want ErrCartItemNotFound", err)
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	usecase, _, _, _, ctx, medicine := newCartFixture(t)

	if _, err := usecase.AddItem(ctx, &dto.AddCartItemRequest{MedicineID: medicine.ID.String()}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	cart, err := usecase.RemoveItem(ctx, medicine.ID)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("items = %d, want 0", len(cart.Items))
	}

	// Removing again is a no-op, not an error
	if _, err := usecase.RemoveItem(ctx, medicine.ID); err != nil {
		t.Fatalf("second RemoveItem: %v", err)
	}
}

func TestCartTotalSumsLines(t *testing.T) {
	usecase, _, medicineRepo, _, ctx, medicine := newCartFixture(t)

	other := medicineRepo.add(&entity.Medicine{
		Name:  "Vitamin C",
		Price: decimal.RequireFromString("5.25"),
	})

	if _, err := usecase.AddItem(ctx, &dto.AddCartItemRequest{MedicineID: medicine.ID.String()}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := usecase.AddItem(ctx, &dto.AddCartItemRequest{MedicineID: other.ID.String()}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	cart, err := usecase.ChangeQuantity(ctx, other.ID, &dto.ChangeQuantityRequest{Delta: 1})
	if err != nil {
		t.Fatalf("ChangeQuantity: %v", err)
	}

	// 12.50 + 2*5.25 = 23.00
	want := decimal.RequireFromString("23.00")
	if !cart.Total.Equal(want) {
		t.Errorf("total = %s, want %s", cart.Total, want)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	usecase, _, _, _, ctx, medicine := newCartFixture(t)

	if _, err := usecase.AddItem(ctx, &dto.AddCartItemRequest{MedicineID: medicine.ID.String()}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	otherCtx := middleware.WithUser(context.Background(), uuid.New(), entity.RoleIDPatient)
	cart, err := usecase.GetCart(otherCtx)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("other user's cart has %d items, want 0", len(cart.Items))
	}
}
