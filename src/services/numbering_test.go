package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"asset-ops/src/services"
)

func TestNextWorkOrderNumber(t *testing.T) {
	t.Run("first number in an empty bucket", func(t *testing.T) {
		got := services.NextWorkOrderNumber(2025, 1, nil)
		assert.Equal(t, "WO-2025-01-001", got)
	})

	t.Run("increments past the highest existing suffix", func(t *testing.T) {
		existing := []string{"WO-2025-01-001", "WO-2025-01-002"}
		got := services.NextWorkOrderNumber(2025, 1, existing)
		assert.Equal(t, "WO-2025-01-003", got)
	})

	t.Run("gaps are never refilled", func(t *testing.T) {
		existing := []string{"WO-2025-01-001", "WO-2025-01-007"}
		got := services.NextWorkOrderNumber(2025, 1, existing)
		assert.Equal(t, "WO-2025-01-008", got)
	})

	t.Run("buckets are independent", func(t *testing.T) {
		existing := []string{
			"WO-2025-01-005",
			"WO-2025-02-001",
			"WO-2024-12-009",
		}
		assert.Equal(t, "WO-2025-01-006", services.NextWorkOrderNumber(2025, 1, existing))
		assert.Equal(t, "WO-2025-02-002", services.NextWorkOrderNumber(2025, 2, existing))
		assert.Equal(t, "WO-2024-12-010", services.NextWorkOrderNumber(2024, 12, existing))
		assert.Equal(t, "WO-2025-03-001", services.NextWorkOrderNumber(2025, 3, existing))
	})

	t.Run("grows past three digits without truncation", func(t *testing.T) {
		existing := []string{"WO-2025-01-999"}
		assert.Equal(t, "WO-2025-01-1000", services.NextWorkOrderNumber(2025, 1, existing))

		existing = []string{"WO-2025-01-1000"}
		assert.Equal(t, "WO-2025-01-1001", services.NextWorkOrderNumber(2025, 1, existing))
	})

	t.Run("malformed numbers are ignored", func(t *testing.T) {
		existing := []string{"WO-2025-01-abc", "WO-2025-01-002", "garbage"}
		assert.Equal(t, "WO-2025-01-003", services.NextWorkOrderNumber(2025, 1, existing))
	})
}

func TestNextPONumber(t *testing.T) {
	t.Run("first number in an empty year", func(t *testing.T) {
		assert.Equal(t, "PO-2025-0001", services.NextPONumber(2025, nil))
	})

	t.Run("increments within the year", func(t *testing.T) {
		existing := []string{"PO-2025-0001", "PO-2025-0002", "PO-2025-0003"}
		assert.Equal(t, "PO-2025-0004", services.NextPONumber(2025, existing))
	})

	t.Run("years are independent", func(t *testing.T) {
		existing := []string{"PO-2024-0042", "PO-2025-0007"}
		assert.Equal(t, "PO-2024-0043", services.NextPONumber(2024, existing))
		assert.Equal(t, "PO-2025-0008", services.NextPONumber(2025, existing))
		assert.Equal(t, "PO-2026-0001", services.NextPONumber(2026, existing))
	})

	t.Run("grows past four digits without truncation", func(t *testing.T) {
		existing := []string{"PO-2025-9999"}
		assert.Equal(t, "PO-2025-10000", services.NextPONumber(2025, existing))
	})
}
