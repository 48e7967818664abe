// Package postgres provides the GORM-based implementation of the Unit of
// Work pattern. The unit of work maintains the set of aggregates affected
// by a business transaction and coordinates writing out changes within a
// single database transaction.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.ParcelRepository().Update(ctx, parcel); err != nil {
//	    return err
//	}
//	if err := uow.AccountRepository().Update(ctx, account); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"warehouse/internal/adapters/out/postgres/accountrepo"
	"warehouse/internal/adapters/out/postgres/addressrepo"
	"warehouse/internal/adapters/out/postgres/itemrepo"
	"warehouse/internal/adapters/out/postgres/ledgerrepo"
	"warehouse/internal/adapters/out/postgres/parcelrepo"
	"warehouse/internal/adapters/out/postgres/shipgrouprepo"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// This is useful for implementing patterns like event sourcing or outbox pattern.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{} // Will be changed to a common Aggregate interface in the future
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Each business operation gets a fresh unit of work with its
// own transaction state, isolated from concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. The provided database connection is shared by all instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate
// changes for business operations. Repositories obtained from it run inside
// the current transaction when one is active, so a shipping charge, its
// ledger entry, and the parcel state change land or roll back together.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls on the same instance are safe and will not create nested
// transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit, the transaction is closed and cannot be reused.
//
// Returns error if no active transaction exists or if the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// After rollback, the transaction is closed and cannot be reused.
//
// Returns error if no active transaction exists or if the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// ParcelRepository returns a parcel repository bound to the current
// transaction if one is active, otherwise to the main connection.
// Added and updated aggregates are tracked on this unit of work.
func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.session(), uow)
}

// ItemRepository returns an item repository bound to the current transaction.
func (uow *GormUnitOfWork) ItemRepository() ports.ItemRepository {
	return itemrepo.NewGormItemRepository(uow.session(), uow)
}

// AccountRepository returns an account repository bound to the current
// transaction. Account reads lock the row until commit so concurrent
// debits serialize.
func (uow *GormUnitOfWork) AccountRepository() ports.AccountRepository {
	return accountrepo.NewGormAccountRepository(uow.session(), uow)
}

// ShipGroupRepository returns a shipping group repository bound to the
// current transaction. Group reads lock the row until commit so the shared
// cost is charged at most once.
func (uow *GormUnitOfWork) ShipGroupRepository() ports.ShipGroupRepository {
	return shipgrouprepo.NewGormShipGroupRepository(uow.session(), uow)
}

// LedgerRepository returns a ledger repository bound to the current
// transaction.
func (uow *GormUnitOfWork) LedgerRepository() ports.LedgerRepository {
	return ledgerrepo.NewGormLedgerRepository(uow.session())
}

// AddressRepository returns an address repository bound to the current
// transaction.
func (uow *GormUnitOfWork) AddressRepository() ports.AddressRepository {
	return addressrepo.NewGormAddressRepository(uow.session())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Repository implementations call it when aggregates are added or
// updated.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) session() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
