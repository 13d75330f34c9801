package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"asset-ops/src/apperrors"
	"asset-ops/src/services"
)

// Receiving addresses order lines by item_id, so an order must never carry
// two lines for the same item: with a duplicate, receipts could only ever
// reach one of the lines and the order could never be fully received.
func TestOrderRejectsDuplicateItemLines(t *testing.T) {
	svc := &services.PurchaseService{}

	t.Run("create with the same item on two lines", func(t *testing.T) {
		_, err := svc.CreateOrder(services.CreateOrderRequest{
			SupplierID: 1,
			Items: []services.OrderItemInput{
				{ItemID: 7, Quantity: 5, UnitPrice: 10.00},
				{ItemID: 7, Quantity: 5, UnitPrice: 10.00},
			},
		})
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})

	t.Run("update items with a duplicate line", func(t *testing.T) {
		_, err := svc.UpdateItems(1, []services.OrderItemInput{
			{ItemID: 3, Quantity: 1, UnitPrice: 2.50},
			{ItemID: 4, Quantity: 2, UnitPrice: 1.00},
			{ItemID: 3, Quantity: 4, UnitPrice: 2.50},
		})
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})
}
