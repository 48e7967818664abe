package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/ledger"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

type optionCharge struct {
	amountYen   int64
	kind        ledger.Kind
	description string
}

// ConfigureOptionsCommandHandler applies owner service choices to a parcel
// and collects the fees they incur.
type ConfigureOptionsCommandHandler struct {
	uowFactory GroupBillingUoWFactory
	notifier   ports.Notifier
}

// NewConfigureOptionsCommandHandler creates a handler for option
// configuration operations.
func NewConfigureOptionsCommandHandler(
	uowFactory GroupBillingUoWFactory,
	notifier ports.Notifier,
) ConfigureOptionsCommandHandler {
	return ConfigureOptionsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle applies the requested options and returns the total charged in yen.
// The domestic shipping charge must be settled before any option can be
// configured. Every fee is debited in one transaction with one ledger entry
// per service; a purchase cancellation only notifies staff.
func (h *ConfigureOptionsCommandHandler) Handle(ctx context.Context, cmd ConfigureOptionsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	configured, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return 0, err
	}
	if configured.OwnerID() != cmd.OwnerID() {
		return 0, errs.NewAuthorizationError("parcelID", cmd.ParcelID())
	}

	if err := h.ensureDomesticSettled(ctx, uow, configured); err != nil {
		return 0, err
	}

	charges, err := h.applyOptions(ctx, uow, cmd, configured)
	if err != nil {
		return 0, err
	}

	var charged int64
	for _, charge := range charges {
		charged += charge.amountYen
	}
	if charged > 0 {
		if err := h.collect(ctx, uow, configured, charges, charged); err != nil {
			return 0, err
		}
	}

	if err := uow.ParcelRepository().Update(ctx, configured); err != nil {
		return 0, err
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	if cmd.CancelPurchase() {
		h.notifyCancelPurchase(ctx, cmd)
	}

	return charged, nil
}

// ensureDomesticSettled rejects option changes while the inbound courier
// charge is outstanding, checking the group row for grouped parcels.
func (h *ConfigureOptionsCommandHandler) ensureDomesticSettled(
	ctx context.Context,
	uow GroupBillingUoW,
	configured *parcel.Parcel,
) error {
	if groupID := configured.SharedShippingGroupID(); groupID != nil {
		group, err := uow.ShipGroupRepository().Get(ctx, *groupID)
		if err != nil {
			return err
		}
		if !group.IsPaid() {
			return errs.NewPreconditionError("domestic shipping is not paid")
		}
		return nil
	}

	if !configured.IsDomesticShippingPaid() {
		return errs.NewPreconditionError("domestic shipping is not paid")
	}
	return nil
}

func (h *ConfigureOptionsCommandHandler) applyOptions(
	ctx context.Context,
	uow GroupBillingUoW,
	cmd ConfigureOptionsCommand,
	configured *parcel.Parcel,
) ([]optionCharge, error) {
	var charges []optionCharge

	if method := cmd.ShippingMethod(); method != "" {
		if err := configured.SetShippingMethod(method); err != nil {
			return nil, err
		}
	}

	if cmd.PhotoService() {
		if err := configured.RequestPhotoService(); err != nil {
			return nil, err
		}
		charges = append(charges, optionCharge{
			amountYen:   parcel.PhotoServiceFeeYen,
			kind:        ledger.KindPhotoService,
			description: "content photo service",
		})
	}

	if cmd.Reinforcement() {
		if err := configured.RequestReinforcement(); err != nil {
			return nil, err
		}
		charges = append(charges, optionCharge{
			amountYen:   parcel.ReinforcementFeeYen,
			kind:        ledger.KindReinforcement,
			description: "packaging reinforcement",
		})
	}

	if cover := cmd.InsuranceCoverYen(); cover != nil {
		owed, err := configured.SetInsuranceCover(*cover)
		if err != nil {
			return nil, err
		}
		if owed > 0 {
			charges = append(charges, optionCharge{
				amountYen:   owed,
				kind:        ledger.KindInsurance,
				description: "additional insurance premium",
			})
		}
	}

	if cmd.CancelConsolidation() {
		if err := configured.CancelConsolidationRequest(); err != nil {
			return nil, err
		}
	}

	if with := cmd.ConsolidateWith(); len(with) > 0 {
		if err := h.requestConsolidation(ctx, uow, configured, with); err != nil {
			return nil, err
		}
	}

	return charges, nil
}

// requestConsolidation vets the named siblings before filing the merge
// request: all must exist, belong to the same owner, and still be active.
// The successor identifier is reserved here so the owner can reference the
// future parcel before the merge is performed.
func (h *ConfigureOptionsCommandHandler) requestConsolidation(
	ctx context.Context,
	uow GroupBillingUoW,
	configured *parcel.Parcel,
	with []kernel.UUID,
) error {
	siblings, err := uow.ParcelRepository().GetMany(ctx, with)
	if err != nil {
		return err
	}
	for _, sibling := range siblings {
		if sibling.OwnerID() != configured.OwnerID() {
			return errs.NewAuthorizationError("consolidateWith", sibling.ID())
		}
		if !sibling.Lifecycle().IsActive() {
			return errs.NewPreconditionError("sibling parcel is not active")
		}
	}

	return configured.RequestConsolidation(with, kernel.NewUUID())
}

func (h *ConfigureOptionsCommandHandler) collect(
	ctx context.Context,
	uow GroupBillingUoW,
	configured *parcel.Parcel,
	charges []optionCharge,
	total int64,
) error {
	owner, err := uow.AccountRepository().Get(ctx, configured.OwnerID())
	if err != nil {
		return err
	}
	if err := owner.Debit(total); err != nil {
		return err
	}
	if err := uow.AccountRepository().Update(ctx, owner); err != nil {
		return err
	}

	now := time.Now().UTC()
	parcelID := configured.ID()
	for _, charge := range charges {
		entry, err := ledger.NewEntry(
			kernel.NewUUID(),
			owner.ID(),
			&parcelID,
			-charge.amountYen,
			charge.kind,
			charge.description,
			now,
		)
		if err != nil {
			return err
		}
		if err := uow.LedgerRepository().Add(ctx, entry); err != nil {
			return err
		}
	}

	return nil
}

func (h *ConfigureOptionsCommandHandler) notifyCancelPurchase(ctx context.Context, cmd ConfigureOptionsCommand) {
	if h.notifier == nil {
		return
	}

	parcelID := cmd.ParcelID()
	_ = h.notifier.Notify(ctx, ports.Notification{
		AccountID: cmd.OwnerID(),
		ParcelID:  &parcelID,
		Subject:   "purchase cancellation requested",
		Body:      "A purchase cancellation was requested for your parcel. Staff will follow up.",
	})
}
