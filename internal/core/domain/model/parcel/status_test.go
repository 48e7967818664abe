package parcel_test

import (
	"testing"

	"warehouse/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept all defined statuses", func(t *testing.T) {
		statuses := []parcel.Status{parcel.PendingShipping, parcel.Ready, parcel.Shipped}

		for _, s := range statuses {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		err := parcel.Unknown.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status is invalid")
	})

	t.Run("should reject out of range status", func(t *testing.T) {
		err := parcel.Status(99).Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "99 is not a valid status")
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return readable names", func(t *testing.T) {
		assert.Equal(t, "PendingShipping", parcel.PendingShipping.String())
		assert.Equal(t, "Ready", parcel.Ready.String())
		assert.Equal(t, "Shipped", parcel.Shipped.String())
	})

	t.Run("should return Unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "Unknown", parcel.Unknown.String())
		assert.Equal(t, "Unknown", parcel.Status(42).String())
	})
}

func TestStatus_MakeReady(t *testing.T) {
	t.Run("should transition from pending shipping", func(t *testing.T) {
		newStatus, err := parcel.PendingShipping.MakeReady()

		require.NoError(t, err)
		assert.Equal(t, parcel.Ready, newStatus)
	})

	t.Run("should be idempotent on ready", func(t *testing.T) {
		newStatus, err := parcel.Ready.MakeReady()

		require.NoError(t, err)
		assert.Equal(t, parcel.Ready, newStatus)
	})

	t.Run("should fail on shipped", func(t *testing.T) {
		_, err := parcel.Shipped.MakeReady()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Shipped is not a valid status to make ready")
	})
}

func TestStatus_Ship(t *testing.T) {
	t.Run("should transition from pending shipping", func(t *testing.T) {
		newStatus, err := parcel.PendingShipping.Ship()

		require.NoError(t, err)
		assert.Equal(t, parcel.Shipped, newStatus)
	})

	t.Run("should transition from ready", func(t *testing.T) {
		newStatus, err := parcel.Ready.Ship()

		require.NoError(t, err)
		assert.Equal(t, parcel.Shipped, newStatus)
	})

	t.Run("should fail on already shipped", func(t *testing.T) {
		_, err := parcel.Shipped.Ship()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Shipped is not a valid status to ship")
	})
}

func TestServiceStatus(t *testing.T) {
	t.Run("should accept all defined service statuses", func(t *testing.T) {
		statuses := []parcel.ServiceStatus{parcel.ServiceNone, parcel.ServicePending, parcel.ServiceCompleted}

		for _, s := range statuses {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("should reject out of range service status", func(t *testing.T) {
		err := parcel.ServiceStatus(7).Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "service status is invalid")
	})

	t.Run("should return readable names", func(t *testing.T) {
		assert.Equal(t, "None", parcel.ServiceNone.String())
		assert.Equal(t, "Pending", parcel.ServicePending.String())
		assert.Equal(t, "Completed", parcel.ServiceCompleted.String())
		assert.Equal(t, "Unknown", parcel.ServiceStatus(7).String())
	})
}
