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

func newDisposalRequestedParcel(t *testing.T, ownerID kernel.UUID) *parcel.Parcel {
	t.Helper()
	p := newUnpaidParcel(t, ownerID, 0)
	require.NoError(t, p.RequestDisposal(parcel.DisposalCost(p.WeightKg())))
	return p
}

func TestNewDeclineDisposalCommand_ValidInput(t *testing.T) {
	parcelID := kernel.NewUUID()
	cmd, err := commands.NewDeclineDisposalCommand(parcelID, "hazardous contents")
	require.NoError(t, err)
	assert.Equal(t, parcelID, cmd.ParcelID())
	assert.Equal(t, "hazardous contents", cmd.Reason())
}

func TestNewDeclineDisposalCommand_EmptyReason(t *testing.T) {
	_, err := commands.NewDeclineDisposalCommand(kernel.NewUUID(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrReasonIsRequired)
}

func TestDeclineDisposalCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	p := newDisposalRequestedParcel(t, ownerID) // 450 yen collected
	owner := newRichAccount(t, ownerID, 1000)
	cmd, _ := commands.NewDeclineDisposalCommand(p.ID(), "hazardous contents")

	parcelRepo := new(MockParcelRepository)
	accountRepo := new(MockAccountRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Twice()
	parcelRepo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	parcelRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *parcel.Parcel) bool {
		return !updated.IsDisposalRequested()
	})).Return(nil).Once()
	uow.On("AccountRepository").Return(accountRepo).Twice()
	accountRepo.On("Get", mock.Anything, ownerID).Return(owner, nil).Once()
	accountRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *account.Account) bool {
		return updated.BalanceYen() == 1450
	})).Return(nil).Once()
	uow.On("LedgerRepository").Return(ledgerRepo).Once()
	ledgerRepo.On("Add", mock.Anything, mock.MatchedBy(func(e *ledger.Entry) bool {
		return e.AmountYen() == 450 && e.Kind() == ledger.KindDisposalRefund
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.AccountID == ownerID
	})).Return(nil).Once()

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeclineDisposalCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))
	parcelRepo.AssertExpectations(t)
	accountRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestDeclineDisposalCommandHandler_Handle_NoPendingRequest(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	p := newUnpaidParcel(t, ownerID, 0)
	cmd, _ := commands.NewDeclineDisposalCommand(p.ID(), "nothing pending")

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	parcelRepo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeclineDisposalCommandHandler(factory, nil)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPrecondition)
}

func TestDeclineDisposalCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.DeclineDisposalCommand{} // not constructed properly
	factory := new(MockBillingUoWFactory)
	h := commands.NewDeclineDisposalCommandHandler(factory, nil)
	require.Error(t, h.Handle(ctx, cmd))
}
