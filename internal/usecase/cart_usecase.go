package usecase

import (
	"context"
	"errors"

	"felanocare-backend/internal/converter"
	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/delivery/http/middleware"
	"felanocare-backend/internal/domain/entity"
	"felanocare-backend/internal/domain/repository"
	"felanocare-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity change would drop below one")
)

// CollectionCarts is the change-event collection for cart snapshots.
const CollectionCarts = "carts"

type CartUsecase interface {
	GetCart(ctx context.Context) (*dto.CartResponse, error)
	AddItem(ctx context.Context, req *dto.AddCartItemRequest) (*dto.CartResponse, error)
	ChangeQuantity(ctx context.Context, medicineID uuid.UUID, req *dto.ChangeQuantityRequest) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, medicineID uuid.UUID) (*dto.CartResponse, error)
}

type cartUsecase struct {
	log          *logrus.Logger
	cartRepo     repository.CartRepository
	medicineRepo repository.MedicineRepository
	notifier     service.Notifier
	auditService service.AuditService
}

func NewCartUsecase(
	log *logrus.Logger,
	cartRepo repository.CartRepository,
	medicineRepo repository.MedicineRepository,
	notifier service.Notifier,
	auditService service.AuditService,
) CartUsecase {
	return &cartUsecase{
		log:          log,
		cartRepo:     cartRepo,
		medicineRepo: medicineRepo,
		notifier:     notifier,
		auditService: auditService,
	}
}

// GetCart returns the full cart snapshot for the logged-in user.
func (u *cartUsecase) GetCart(ctx context.Context) (*dto.CartResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	return u.snapshot(ctx, userID)
}

// AddItem puts one unit of a medicine into the cart. Adding a medicine that
// is already present increments its quantity by one; the write is a single
// atomic upsert, so concurrent adds never lose an increment.
func (u *cartUsecase) AddItem(ctx context.Context, req *dto.AddCartItemRequest) (*dto.CartResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	medicineID, err := uuid.Parse(req.MedicineID)
	if err != nil {
		return nil, ErrMedicineNotFound
	}

	// Snapshot catalog fields at add time
	medicine, err := u.medicineRepo.FindByID(ctx, medicineID)
	if err != nil {
		u.log.Warnf("Failed to find medicine %s: %+v", medicineID, err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}

	item := &entity.CartItem{
		UserID:     userID,
		MedicineID: medicine.ID,
		Name:       medicine.Name,
		Price:      medicine.Price,
		Image:      medicine.Image,
		Quantity:   1,
	}

	if err := u.cartRepo.Upsert(ctx, item); err != nil {
		u.log.Warnf("Failed to upsert cart item for user %s: %+v", userID, err)
		return nil, err
	}

	u.publish(ctx, userID, "add")
	u.auditService.Record(ctx, &userID, entity.AuditActionCartAdd, entity.JSON{"medicine_id": medicine.ID.String()})

	return u.snapshot(ctx, userID)
}

// ChangeQuantity applies a signed delta to an item's quantity. A delta that
// would push the quantity below one matches no row and is rejected, so the
// only way to empty a line is RemoveItem.
func (u *cartUsecase) ChangeQuantity(ctx context.Context, medicineID uuid.UUID, req *dto.ChangeQuantityRequest) (*dto.CartResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	affected, err := u.cartRepo.AddQuantity(ctx, userID, medicineID, req.Delta)
	if err != nil {
		u.log.Warnf("Failed to change quantity for user %s medicine %s: %+v", userID, medicineID, err)
		return nil, err
	}
	if affected == 0 {
		// Either the item is missing or the delta would drop below one
		item, err := u.cartRepo.FindItem(ctx, userID, medicineID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, ErrCartItemNotFound
		}
		return nil, ErrInvalidQuantity
	}

	u.publish(ctx, userID, "update")
	u.auditService.Record(ctx, &userID, entity.AuditActionCartUpdate, entity.JSON{"medicine_id": medicineID.String(), "delta": req.Delta})

	return u.snapshot(ctx, userID)
}

// RemoveItem deletes a cart line. Removing an absent item is a no-op.
func (u *cartUsecase) RemoveItem(ctx context.Context, medicineID uuid.UUID) (*dto.CartResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	if err := u.cartRepo.Delete(ctx, userID, medicineID); err != nil {
		u.log.Warnf("Failed to remove cart item for user %s: %+v", userID, err)
		return nil, err
	}

	u.publish(ctx, userID, "remove")
	u.auditService.Record(ctx, &userID, entity.AuditActionCartRemove, entity.JSON{"medicine_id": medicineID.String()})

	return u.snapshot(ctx, userID)
}

func (u *cartUsecase) snapshot(ctx context.Context, userID uuid.UUID) (*dto.CartResponse, error) {
	items, err := u.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to load cart for user %s: %+v", userID, err)
		return nil, err
	}
	return converter.CartToResponse(items), nil
}

func (u *cartUsecase) publish(ctx context.Context, userID uuid.UUID, action string) {
	u.notifier.Publish(ctx, service.ChangeEvent{
		Collection: CollectionCarts,
		OwnerID:    userID.String(),
		Action:     action,
	})
}
