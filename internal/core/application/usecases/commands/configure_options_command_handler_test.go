package commands_test

import (
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/account"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/ledger"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfigureOptionsCommandHandler_Handle_ChargesServices(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	p := newUnpaidParcel(t, ownerID, 0) // no domestic charge to settle
	owner := newRichAccount(t, ownerID, 10000)
	cover := int64(30000) // two brackets, 100 yen premium
	cmd, _ := commands.NewConfigureOptionsCommand(
		p.ID(), ownerID, "", true, true, &cover, nil, false, false)

	parcelRepo := new(MockParcelRepository)
	accountRepo := new(MockAccountRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Twice()
	parcelRepo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.On("AccountRepository").Return(accountRepo).Twice()
	accountRepo.On("Get", mock.Anything, ownerID).Return(owner, nil).Once()
	accountRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *account.Account) bool {
		return updated.BalanceYen() == 10000-500-1000-100
	})).Return(nil).Once()
	uow.On("LedgerRepository").Return(ledgerRepo).Times(3)
	ledgerRepo.On("Add", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.Kind() == ledger.KindPhotoService && e.AmountYen() == -500
	})).Return(nil).Once()
	ledgerRepo.On("Add", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.Kind() == ledger.KindReinforcement && e.AmountYen() == -1000
	})).Return(nil).Once()
	ledgerRepo.On("Add", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.Kind() == ledger.KindInsurance && e.AmountYen() == -100
	})).Return(nil).Once()
	parcelRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *parcel.Parcel) bool {
		return updated.PhotoStatus() == parcel.ServicePending &&
			updated.ReinforcementStatus() == parcel.ServicePending &&
			updated.InsuranceCover() == 30000
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockGroupBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfigureOptionsCommandHandler(factory, nil)
	charged, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(1600), charged)
	parcelRepo.AssertExpectations(t)
	accountRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
}

func TestConfigureOptionsCommandHandler_Handle_SetsShippingMethod(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	p := newUnpaidParcel(t, ownerID, 0)
	cmd, _ := commands.NewConfigureOptionsCommand(
		p.ID(), ownerID, "fedex", false, false, nil, nil, false, false)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Twice()
	parcelRepo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	parcelRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *parcel.Parcel) bool {
		return updated.ShippingMethod() == parcel.MethodCarrier
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockGroupBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfigureOptionsCommandHandler(factory, nil)
	charged, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, charged)
	parcelRepo.AssertExpectations(t)
}

func TestConfigureOptionsCommandHandler_Handle_ConsolidationRequest(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	p := newUnpaidParcel(t, ownerID, 0)
	sibling := newUnpaidParcel(t, ownerID, 0)
	cmd, _ := commands.NewConfigureOptionsCommand(
		p.ID(), ownerID, "", false, false, nil, []kernel.UUID{sibling.ID()}, false, false)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Times(3)
	parcelRepo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	parcelRepo.On("GetMany", mock.Anything, cmd.ConsolidateWith()).
		Return([]*parcel.Parcel{sibling}, nil).Once()
	parcelRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *parcel.Parcel) bool {
		return updated.IsConsolidationRequested() && updated.ReservedSuccessorID() != nil
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockGroupBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfigureOptionsCommandHandler(factory, nil)
	charged, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, charged)
	parcelRepo.AssertExpectations(t)
}

func TestConfigureOptionsCommandHandler_Handle_ForeignSibling(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	p := newUnpaidParcel(t, ownerID, 0)
	foreign := newUnpaidParcel(t, kernel.NewUUID(), 0)
	cmd, _ := commands.NewConfigureOptionsCommand(
		p.ID(), ownerID, "", false, false, nil, []kernel.UUID{foreign.ID()}, false, false)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Twice()
	parcelRepo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	parcelRepo.On("GetMany", mock.Anything, cmd.ConsolidateWith()).
		Return([]*parcel.Parcel{foreign}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockGroupBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfigureOptionsCommandHandler(factory, nil)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrAuthorization)
}

func TestConfigureOptionsCommandHandler_Handle_UnpaidDomesticRejected(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	p := newUnpaidParcel(t, ownerID, 800)
	cmd, _ := commands.NewConfigureOptionsCommand(
		p.ID(), ownerID, "", true, false, nil, nil, false, false)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	parcelRepo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockGroupBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfigureOptionsCommandHandler(factory, nil)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPrecondition)
}

func TestConfigureOptionsCommandHandler_Handle_CancelPurchaseNotifies(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	p := newUnpaidParcel(t, ownerID, 0)
	cmd, _ := commands.NewConfigureOptionsCommand(
		p.ID(), ownerID, "", false, false, nil, nil, false, true)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Twice()
	parcelRepo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	parcelRepo.On("Update", mock.Anything, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.AccountID == ownerID && n.ParcelID != nil && *n.ParcelID == p.ID()
	})).Return(nil).Once()

	factory := new(MockGroupBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfigureOptionsCommandHandler(factory, notifier)
	_, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestConfigureOptionsCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ConfigureOptionsCommand{} // not constructed properly
	factory := new(MockGroupBillingUoWFactory)
	h := commands.NewConfigureOptionsCommandHandler(factory, nil)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
