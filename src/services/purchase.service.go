package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"asset-ops/src/apperrors"
	"asset-ops/src/models"
	"asset-ops/src/repositories"
)

// ============ REQUEST STRUCTS ============
type OrderItemInput struct {
	ItemID    uint
	Quantity  int
	UnitPrice float64
}

type CreateOrderRequest struct {
	SupplierID       uint
	OrderDate        time.Time
	ExpectedDelivery *time.Time
	Notes            *string
	Items            []OrderItemInput
}

type ReceiptInput struct {
	ItemID           uint
	ReceivedQuantity int
}

type ReceiveItemsRequest struct {
	PurchaseOrderID uint
	Receipts        []ReceiptInput
	ReceiveDate     time.Time
	Notes           *string
	ReceivedBy      string
}

// ============ PURCHASE SERVICE ============
type PurchaseService struct {
	DB    *gorm.DB
	Repo  *repositories.PurchaseRepository
	Stock *repositories.StockRepository
	Catal *repositories.AssetRepository
}

// NextPONumber derives the next purchase order number for a year from the
// numbers already issued in it. Same max-plus-one rule as work orders,
// four-digit padding.
func NextPONumber(year int, existing []string) string {
	prefix := fmt.Sprintf("PO-%04d-", year)

	maxSuffix := 0
	for _, number := range existing {
		if !strings.HasPrefix(number, prefix) {
			continue
		}
		suffix, err := strconv.Atoi(strings.TrimPrefix(number, prefix))
		if err != nil {
			continue
		}
		if suffix > maxSuffix {
			maxSuffix = suffix
		}
	}

	return fmt.Sprintf("%s%04d", prefix, maxSuffix+1)
}

// validateItems enforces one line per item; receiving addresses lines by
// item_id, so a duplicate would shadow its sibling.
func validateItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return apperrors.Validation("purchase order requires at least one line item")
	}
	seen := make(map[uint]bool, len(items))
	for i, item := range items {
		if item.ItemID == 0 {
			return apperrors.Validation("line %d: item_id is required", i+1)
		}
		if seen[item.ItemID] {
			return apperrors.Validation("line %d: item %d appears on more than one line", i+1, item.ItemID)
		}
		seen[item.ItemID] = true
		if item.Quantity < 1 {
			return apperrors.Validation("line %d: quantity must be at least 1", i+1)
		}
		if item.UnitPrice < 0 {
			return apperrors.Validation("line %d: unit_price cannot be negative", i+1)
		}
	}
	return nil
}

func buildLines(poID uint, items []OrderItemInput) []models.PurchaseOrderItem {
	lines := make([]models.PurchaseOrderItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.PurchaseOrderItem{
			PurchaseOrderID: poID,
			ItemID:          item.ItemID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			LineTotal:       models.RoundMoney(float64(item.Quantity) * item.UnitPrice),
		})
	}
	return lines
}

// CreateOrder - Create a draft purchase order with its line items. The
// total is always recomputed server-side, never trusted from the caller.
func (s *PurchaseService) CreateOrder(req CreateOrderRequest) (*models.PurchaseOrder, error) {
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	var order *models.PurchaseOrder

	for attempt := 0; attempt < numberAttempts; attempt++ {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			exists, err := s.Catal.SupplierExists(tx, req.SupplierID)
			if err != nil {
				return err
			}
			if !exists {
				return apperrors.NotFound("supplier %d not found", req.SupplierID)
			}

			for _, item := range req.Items {
				exists, err := s.Stock.ItemExists(tx, item.ItemID)
				if err != nil {
					return err
				}
				if !exists {
					return apperrors.NotFound("inventory item %d not found", item.ItemID)
				}
			}

			numbers, err := s.Repo.NumbersForYear(tx, orderDate.Year())
			if err != nil {
				return err
			}

			order = &models.PurchaseOrder{
				PONumber:         NextPONumber(orderDate.Year(), numbers),
				SupplierID:       req.SupplierID,
				OrderDate:        orderDate,
				ExpectedDelivery: req.ExpectedDelivery,
				Notes:            req.Notes,
				Status:           models.PurchaseOrderStatusDraft,
			}
			if err := tx.Create(order).Error; err != nil {
				return err
			}

			order.Items = buildLines(order.ID, req.Items)
			if err := tx.Create(&order.Items).Error; err != nil {
				return err
			}

			order.TotalAmount = order.CalculateTotalAmount()
			return tx.Model(&models.PurchaseOrder{}).
				Where("id = ?", order.ID).
				Update("total_amount", order.TotalAmount).Error
		})

		if err == nil {
			return order, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}

	return nil, apperrors.ConcurrencyConflict("could not allocate a purchase order number after %d attempts", numberAttempts)
}

// UpdateItems - Replace a draft order's line set and recompute the total.
func (s *PurchaseService) UpdateItems(poID uint, items []OrderItemInput) (*models.PurchaseOrder, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	var order *models.PurchaseOrder
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.Repo.Get(tx, poID)
		if repositories.IsNotFound(err) {
			return apperrors.NotFound("purchase order %d not found", poID)
		}
		if err != nil {
			return err
		}

		if order.Status != models.PurchaseOrderStatusDraft {
			return apperrors.InvalidTransition("line items can only be changed on a draft order, not %s", order.Status)
		}

		for _, item := range items {
			exists, err := s.Stock.ItemExists(tx, item.ItemID)
			if err != nil {
				return err
			}
			if !exists {
				return apperrors.NotFound("inventory item %d not found", item.ItemID)
			}
		}

		if err := tx.Where("purchase_order_id = ?", order.ID).
			Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			return err
		}

		order.Items = buildLines(order.ID, items)
		if err := tx.Create(&order.Items).Error; err != nil {
			return err
		}

		order.TotalAmount = order.CalculateTotalAmount()
		return tx.Model(&models.PurchaseOrder{}).
			Where("id = ?", order.ID).
			Update("total_amount", order.TotalAmount).Error
	})

	if err != nil {
		return nil, err
	}
	return order, nil
}

// Submit - draft → pending
func (s *PurchaseService) Submit(poID uint) (*models.PurchaseOrder, error) {
	return s.transition(poID, models.PurchaseOrderStatusPending)
}

// Approve - pending → approved
func (s *PurchaseService) Approve(poID uint) (*models.PurchaseOrder, error) {
	return s.transition(poID, models.PurchaseOrderStatusApproved)
}

// Cancel - Terminal from any non-received state. Cancelling a received or
// already-cancelled order fails rather than silently succeeding.
func (s *PurchaseService) Cancel(poID uint) (*models.PurchaseOrder, error) {
	return s.transition(poID, models.PurchaseOrderStatusCancelled)
}

func (s *PurchaseService) transition(poID uint, next models.PurchaseOrderStatus) (*models.PurchaseOrder, error) {
	var order *models.PurchaseOrder

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.Repo.Get(tx, poID)
		if repositories.IsNotFound(err) {
			return apperrors.NotFound("purchase order %d not found", poID)
		}
		if err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(next) {
			return apperrors.InvalidTransition("cannot move purchase order from %s to %s", order.Status, next)
		}

		order.Status = next
		return tx.Model(&models.PurchaseOrder{}).
			Where("id = ?", order.ID).
			Update("status", next).Error
	})

	if err != nil {
		return nil, err
	}
	return order, nil
}

// ReceiveItems - Apply a batch of receipts to an approved order in one
// transaction: every receipt is validated before anything is written, so
// a rejected line leaves no partial state behind. Full receipt of every
// line flips the order to received; anything less keeps it approved.
func (s *PurchaseService) ReceiveItems(req ReceiveItemsRequest) (*models.PurchaseOrder, error) {
	if len(req.Receipts) == 0 {
		return nil, apperrors.Validation("at least one receipt is required")
	}
	receiveDate := req.ReceiveDate
	if receiveDate.IsZero() {
		receiveDate = time.Now()
	}

	var order *models.PurchaseOrder

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var po models.PurchaseOrder
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&po, req.PurchaseOrderID).Error
		if repositories.IsNotFound(err) {
			return apperrors.NotFound("purchase order %d not found", req.PurchaseOrderID)
		}
		if err != nil {
			return err
		}

		if po.Status != models.PurchaseOrderStatusApproved {
			return apperrors.InvalidTransition("cannot receive items on a %s order", po.Status)
		}

		if err := tx.Where("purchase_order_id = ?", po.ID).
			Order("id ASC").
			Find(&po.Items).Error; err != nil {
			return err
		}

		lines := make(map[uint]*models.PurchaseOrderItem, len(po.Items))
		for i := range po.Items {
			lines[po.Items[i].ItemID] = &po.Items[i]
		}

		// Validate the whole batch before touching anything.
		pending := make(map[uint]int, len(req.Receipts))
		for _, receipt := range req.Receipts {
			line, ok := lines[receipt.ItemID]
			if !ok {
				return apperrors.NotFound("item %d is not on purchase order %s", receipt.ItemID, po.PONumber)
			}
			if receipt.ReceivedQuantity < 0 {
				return apperrors.Validation("received quantity for item %d cannot be negative", receipt.ItemID)
			}
			pending[receipt.ItemID] += receipt.ReceivedQuantity
			if line.QuantityReceived+pending[receipt.ItemID] > line.Quantity {
				return apperrors.Validation("receiving %d of item %d would exceed the ordered quantity %d",
					pending[receipt.ItemID], receipt.ItemID, line.Quantity)
			}
		}

		receiptRef := uuid.New()
		for itemID, qty := range pending {
			if qty == 0 {
				continue
			}
			line := lines[itemID]
			line.QuantityReceived += qty

			if err := tx.Model(&models.PurchaseOrderItem{}).
				Where("id = ?", line.ID).
				Update("quantity_received", line.QuantityReceived).Error; err != nil {
				return err
			}

			if _, err := s.Stock.AddStock(tx, itemID, qty, models.MovementSourcePOReceipt,
				&receiptRef, receiveDate, req.Notes, req.ReceivedBy); err != nil {
				return err
			}
		}

		if po.FullyReceived() {
			po.Status = models.PurchaseOrderStatusReceived
			if err := tx.Model(&models.PurchaseOrder{}).
				Where("id = ?", po.ID).
				Update("status", po.Status).Error; err != nil {
				return err
			}
		}

		order = &po
		return nil
	})

	if err != nil {
		return nil, err
	}
	return order, nil
}

// Get - Load one purchase order with items
func (s *PurchaseService) Get(poID uint) (*models.PurchaseOrder, error) {
	order, err := s.Repo.Get(s.DB, poID)
	if repositories.IsNotFound(err) {
		return nil, apperrors.NotFound("purchase order %d not found", poID)
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// List - Paginated purchase order listing with filters
func (s *PurchaseService) List(supplierID uint, status models.PurchaseOrderStatus,
	page, limit int) ([]models.PurchaseOrder, int64, error) {
	return s.Repo.List(supplierID, status, page, limit)
}
