package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweepStorageCommandHandler_Handle_DisposesExpired(t *testing.T) {
	ctx := t.Context()
	expired := newStoredParcel(t, kernel.NewUUID(), 75)
	cmd := commands.NewSweepStorageCommand()

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Twice()
	parcelRepo.On("GetAllActive", mock.Anything).Return([]*parcel.Parcel{expired}, nil).Once()
	parcelRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *parcel.Parcel) bool {
		return p.Lifecycle().IsDisposed()
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Subject == "parcel disposed"
	})).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSweepStorageCommandHandler(factory, notifier, discardLogger())
	report, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 1, report.Disposed)
	assert.Zero(t, report.Warned)
	parcelRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSweepStorageCommandHandler_Handle_WarnsUnpaidFees(t *testing.T) {
	ctx := t.Context()
	overdue := newStoredParcel(t, kernel.NewUUID(), 65)
	cmd := commands.NewSweepStorageCommand()

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Twice()
	parcelRepo.On("GetAllActive", mock.Anything).Return([]*parcel.Parcel{overdue}, nil).Once()
	parcelRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *parcel.Parcel) bool {
		return p.LastFeeCheck() != nil && p.Lifecycle().IsActive()
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Subject == "storage fee due"
	})).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSweepStorageCommandHandler(factory, notifier, discardLogger())
	report, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Warned)
	assert.Zero(t, report.Disposed)
	notifier.AssertExpectations(t)
}

func TestSweepStorageCommandHandler_Handle_ThrottlesRepeatWarnings(t *testing.T) {
	ctx := t.Context()
	overdue := newStoredParcel(t, kernel.NewUUID(), 65)
	overdue.RecordFeeCheck(time.Now().UTC().Add(-24 * time.Hour))
	cmd := commands.NewSweepStorageCommand()

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	parcelRepo.On("GetAllActive", mock.Anything).Return([]*parcel.Parcel{overdue}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier := new(MockNotifier)
	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSweepStorageCommandHandler(factory, notifier, discardLogger())
	report, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, report.Warned)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestSweepStorageCommandHandler_Handle_WarnsFreeWindowEnding(t *testing.T) {
	ctx := t.Context()
	ending := newStoredParcel(t, kernel.NewUUID(), 56)
	cmd := commands.NewSweepStorageCommand()

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Twice()
	parcelRepo.On("GetAllActive", mock.Anything).Return([]*parcel.Parcel{ending}, nil).Once()
	parcelRepo.On("Update", mock.Anything, ending).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Subject == "free storage ending"
	})).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSweepStorageCommandHandler(factory, notifier, discardLogger())
	report, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Warned)
	notifier.AssertExpectations(t)
}

func TestSweepStorageCommandHandler_Handle_SkipsFailingParcel(t *testing.T) {
	ctx := t.Context()
	broken := newStoredParcel(t, kernel.NewUUID(), 75)
	expired := newStoredParcel(t, kernel.NewUUID(), 80)
	cmd := commands.NewSweepStorageCommand()

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Times(3)
	parcelRepo.On("GetAllActive", mock.Anything).Return([]*parcel.Parcel{broken, expired}, nil).Once()
	parcelRepo.On("Update", mock.Anything, broken).Return(errors.New("update error")).Once()
	parcelRepo.On("Update", mock.Anything, expired).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSweepStorageCommandHandler(factory, notifier, discardLogger())
	report, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Disposed)
	parcelRepo.AssertExpectations(t)
}

func TestSweepStorageCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.SweepStorageCommand{} // not constructed properly
	factory := new(MockParcelUoWFactory)
	h := commands.NewSweepStorageCommandHandler(factory, nil, discardLogger())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrSweepStorageCommandIsNotConstructed)
}