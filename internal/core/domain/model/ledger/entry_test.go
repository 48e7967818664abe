package ledger_test

import (
	"testing"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	recordedAt := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create debit entry", func(t *testing.T) {
		id := kernel.NewUUID()
		accountID := kernel.NewUUID()
		parcelID := kernel.NewUUID()

		e, err := ledger.NewEntry(id, accountID, &parcelID, -450, ledger.KindDisposal, "disposal fee", recordedAt)

		require.NoError(t, err)
		require.NoError(t, e.Validate())
		assert.True(t, e.ID().IsEqual(id))
		assert.True(t, e.AccountID().IsEqual(accountID))
		require.NotNil(t, e.ParcelID())
		assert.True(t, e.ParcelID().IsEqual(parcelID))
		assert.Equal(t, int64(-450), e.AmountYen())
		assert.Equal(t, ledger.KindDisposal, e.Kind())
		assert.Equal(t, recordedAt, e.RecordedAt())
	})

	t.Run("should create credit entry without parcel", func(t *testing.T) {
		e, err := ledger.NewEntry(kernel.NewUUID(), kernel.NewUUID(), nil, 450, ledger.KindDisposalRefund, "disposal declined", recordedAt)

		require.NoError(t, err)
		assert.Nil(t, e.ParcelID())
		assert.Equal(t, int64(450), e.AmountYen())
	})

	t.Run("should reject zero amount", func(t *testing.T) {
		e, err := ledger.NewEntry(kernel.NewUUID(), kernel.NewUUID(), nil, 0, ledger.KindStorageFee, "", recordedAt)

		require.Error(t, err)
		assert.Nil(t, e)
		assert.Contains(t, err.Error(), "must not be zero")
	})

	t.Run("should reject invalid kind", func(t *testing.T) {
		e, err := ledger.NewEntry(kernel.NewUUID(), kernel.NewUUID(), nil, 100, ledger.Kind("bogus"), "", recordedAt)

		require.Error(t, err)
		assert.Nil(t, e)
		assert.Contains(t, err.Error(), "kind is invalid")
	})

	t.Run("should reject zero recording time", func(t *testing.T) {
		e, err := ledger.NewEntry(kernel.NewUUID(), kernel.NewUUID(), nil, 100, ledger.KindStorageFee, "", time.Time{})

		require.Error(t, err)
		assert.Nil(t, e)
		assert.Contains(t, err.Error(), "recordedAt")
	})
}
