package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
)

// Warning throttles: a parcel accruing fees is warned at most every other
// day, a parcel nearing the end of its free window at most daily.
const (
	feeWarningInterval        = 48 * time.Hour
	freeWindowWarningInterval = 24 * time.Hour
	freeWindowWarningDays     = 5
)

// SweepReport summarizes one storage sweep pass.
type SweepReport struct {
	// Scanned is the number of active parcels inspected
	Scanned int

	// Disposed is the number of expired parcels force-disposed
	Disposed int

	// Warned is the number of storage warnings sent
	Warned int
}

// SweepStorageCommandHandler runs the periodic storage sweep. Parcels past
// the grace period are disposed without refund, bypassing the owner-driven
// request/decline pair. Parcels accruing fees or running out of free days
// get a warning, throttled through the per-parcel fee check timestamp.
//
// A failure on one parcel is logged and skipped so a single bad record
// cannot stall the whole sweep.
type SweepStorageCommandHandler struct {
	uowFactory ParcelUoWFactory
	calculator services.StorageCalculator
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewSweepStorageCommandHandler creates a handler for storage sweep
// operations.
func NewSweepStorageCommandHandler(
	uowFactory ParcelUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) SweepStorageCommandHandler {
	return SweepStorageCommandHandler{
		uowFactory: uowFactory,
		calculator: services.NewStorageCalculator(),
		notifier:   notifier,
		logger:     logger.With("component", "storage_sweep"),
	}
}

// Handle scans every active parcel once and applies disposal or warnings.
func (h *SweepStorageCommandHandler) Handle(ctx context.Context, cmd SweepStorageCommand) (SweepReport, error) {
	if err := cmd.Validate(); err != nil {
		return SweepReport{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SweepReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	active, err := uow.ParcelRepository().GetAllActive(ctx)
	if err != nil {
		return SweepReport{}, err
	}

	report := SweepReport{}
	now := time.Now().UTC()
	for _, stored := range active {
		if stored.Status() == parcel.Shipped {
			continue
		}
		report.Scanned++

		disposed, warned, err := h.sweepOne(ctx, uow, stored, now)
		if err != nil {
			h.logger.ErrorContext(ctx, "Storage sweep failed for parcel",
				"parcelID", stored.ID().String(), "error", err)
			continue
		}
		if disposed {
			report.Disposed++
		}
		if warned {
			report.Warned++
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return SweepReport{}, err
	}

	return report, nil
}

// sweepOne applies the storage policy to a single parcel.
func (h *SweepStorageCommandHandler) sweepOne(
	ctx context.Context,
	uow ParcelUoW,
	stored *parcel.Parcel,
	now time.Time,
) (disposed bool, warned bool, err error) {
	info := h.calculator.Calculate(stored.ArrivedAt(), stored.LastStoragePayment(), now)

	if info.IsExpired {
		if err := stored.Dispose(); err != nil {
			return false, false, err
		}
		if err := uow.ParcelRepository().Update(ctx, stored); err != nil {
			return false, false, err
		}
		h.notify(ctx, stored, "parcel disposed",
			"Your parcel exceeded the storage deadline and was disposed of. The storage fee is not refundable.")
		return true, false, nil
	}

	if info.UnpaidDays > 0 {
		if !h.due(stored.LastFeeCheck(), now, feeWarningInterval) {
			return false, false, nil
		}
		stored.RecordFeeCheck(now)
		if err := uow.ParcelRepository().Update(ctx, stored); err != nil {
			return false, false, err
		}
		h.notify(ctx, stored, "storage fee due", fmt.Sprintf(
			"Your parcel has accrued ¥%d in storage fees over %d days. It will be disposed of in %d days unless the fee is paid.",
			info.CurrentFeeYen, info.UnpaidDays, info.DaysUntilDisposal))
		return false, true, nil
	}

	if info.FreeDaysRemaining <= freeWindowWarningDays {
		if !h.due(stored.LastFeeCheck(), now, freeWindowWarningInterval) {
			return false, false, nil
		}
		stored.RecordFeeCheck(now)
		if err := uow.ParcelRepository().Update(ctx, stored); err != nil {
			return false, false, err
		}
		h.notify(ctx, stored, "free storage ending", fmt.Sprintf(
			"Your parcel has %d free storage days left. After that, storage costs ¥%d per day.",
			info.FreeDaysRemaining, services.StorageDailyFeeYen))
		return false, true, nil
	}

	return false, false, nil
}

// due reports whether enough time passed since the last warning.
func (h *SweepStorageCommandHandler) due(lastCheck *time.Time, now time.Time, interval time.Duration) bool {
	return lastCheck == nil || now.Sub(*lastCheck) >= interval
}

func (h *SweepStorageCommandHandler) notify(ctx context.Context, stored *parcel.Parcel, subject, body string) {
	if h.notifier == nil {
		return
	}
	parcelID := stored.ID()
	_ = h.notifier.Notify(ctx, ports.Notification{
		AccountID: stored.OwnerID(),
		ParcelID:  &parcelID,
		Subject:   subject,
		Body:      body,
	})
}
