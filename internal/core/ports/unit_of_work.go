package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ParcelRepository returns a ParcelRepository bound to the current transaction.
	ParcelRepository() ParcelRepository

	// ItemRepository returns an ItemRepository bound to the current transaction.
	ItemRepository() ItemRepository

	// AccountRepository returns an AccountRepository bound to the current transaction.
	AccountRepository() AccountRepository

	// ShipGroupRepository returns a ShipGroupRepository bound to the current transaction.
	ShipGroupRepository() ShipGroupRepository

	// LedgerRepository returns a LedgerRepository bound to the current transaction.
	LedgerRepository() LedgerRepository

	// AddressRepository returns an AddressRepository bound to the current transaction.
	AddressRepository() AddressRepository
}
