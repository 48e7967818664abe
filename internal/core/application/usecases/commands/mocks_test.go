package commands_test

import (
	"context"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/account"
	"warehouse/internal/core/domain/model/address"
	"warehouse/internal/core/domain/model/item"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/ledger"
	"warehouse/internal/core/domain/model/parcel"
	"warehouse/internal/core/domain/model/shipgroup"
	"warehouse/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetBySharedGroup(ctx context.Context, groupID kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAllActive(ctx context.Context) ([]*parcel.Parcel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockItemRepository struct{ mock.Mock }

func (m *MockItemRepository) Add(ctx context.Context, aggregate *item.Item) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*item.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*item.Item), args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Add(ctx context.Context, aggregate *account.Account) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, aggregate *account.Account) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

type MockShipGroupRepository struct{ mock.Mock }

func (m *MockShipGroupRepository) Add(ctx context.Context, group *shipgroup.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockShipGroupRepository) Update(ctx context.Context, group *shipgroup.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockShipGroupRepository) Get(ctx context.Context, id kernel.UUID) (*shipgroup.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipgroup.Group), args.Error(1)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) Add(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) Get(ctx context.Context, id kernel.UUID) (*address.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddressRepository) GetFirstByOwner(ctx context.Context, ownerID kernel.UUID) (*address.Address, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

type MockRateQuoter struct{ mock.Mock }

func (m *MockRateQuoter) GetQuotes(ctx context.Context, request ports.QuoteRequest) (ports.QuoteResult, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(ports.QuoteResult), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// MockUoW implements every composed unit of work interface so each handler
// test wires only the repositories it needs.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) ItemRepository() ports.ItemRepository {
	args := m.Called()
	return args.Get(0).(ports.ItemRepository)
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

func (m *MockUoW) ShipGroupRepository() ports.ShipGroupRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipGroupRepository)
}

func (m *MockUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

func (m *MockUoW) AddressRepository() ports.AddressRepository {
	args := m.Called()
	return args.Get(0).(ports.AddressRepository)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockBillingUoWFactory struct{ mock.Mock }

func (m *MockBillingUoWFactory) Create() commands.BillingUoW {
	args := m.Called()
	return args.Get(0).(commands.BillingUoW)
}

type MockGroupBillingUoWFactory struct{ mock.Mock }

func (m *MockGroupBillingUoWFactory) Create() commands.GroupBillingUoW {
	args := m.Called()
	return args.Get(0).(commands.GroupBillingUoW)
}

type MockIntakeUoWFactory struct{ mock.Mock }

func (m *MockIntakeUoWFactory) Create() commands.IntakeUoW {
	args := m.Called()
	return args.Get(0).(commands.IntakeUoW)
}

type MockMergeUoWFactory struct{ mock.Mock }

func (m *MockMergeUoWFactory) Create() commands.MergeUoW {
	args := m.Called()
	return args.Get(0).(commands.MergeUoW)
}

type MockShippingUoWFactory struct{ mock.Mock }

func (m *MockShippingUoWFactory) Create() commands.ShippingUoW {
	args := m.Called()
	return args.Get(0).(commands.ShippingUoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}
