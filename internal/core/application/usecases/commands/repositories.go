// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"warehouse/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// ItemRepoFactory provides access to the item repository within a transaction.
	ItemRepoFactory interface {
		ItemRepository() ports.ItemRepository
	}

	// AccountRepoFactory provides access to the account repository within a transaction.
	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// ShipGroupRepoFactory provides access to the shipping group repository within a transaction.
	ShipGroupRepoFactory interface {
		ShipGroupRepository() ports.ShipGroupRepository
	}

	// LedgerRepoFactory provides access to the ledger repository within a transaction.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// AddressRepoFactory provides access to the address repository within a transaction.
	AddressRepoFactory interface {
		AddressRepository() ports.AddressRepository
	}

	// ParcelUoW manages transactions for parcel-only operations such as
	// service completion and weighing.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
	}

	// ParcelUoWFactory creates new parcel unit of work instances.
	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// BillingUoW manages transactions that move money against a parcel:
	// balance debit or credit, parcel mutation, and ledger entry must land
	// together or not at all.
	BillingUoW interface {
		TxManager
		ParcelRepoFactory
		AccountRepoFactory
		LedgerRepoFactory
	}

	// BillingUoWFactory creates new billing unit of work instances.
	BillingUoWFactory interface {
		Create() BillingUoW
	}

	// GroupBillingUoW extends billing with shared shipping groups, used by
	// domestic shipping payment where the charge may land on a group row.
	GroupBillingUoW interface {
		TxManager
		ParcelRepoFactory
		ShipGroupRepoFactory
		AccountRepoFactory
		LedgerRepoFactory
	}

	// GroupBillingUoWFactory creates new group billing unit of work instances.
	GroupBillingUoWFactory interface {
		Create() GroupBillingUoW
	}

	// IntakeUoW manages transactions for parcel registration at arrival,
	// which touches parcels, items, and shipping groups.
	IntakeUoW interface {
		TxManager
		ParcelRepoFactory
		ItemRepoFactory
		ShipGroupRepoFactory
	}

	// IntakeUoWFactory creates new intake unit of work instances.
	IntakeUoWFactory interface {
		Create() IntakeUoW
	}

	// MergeUoW manages transactions for consolidation completion and
	// reversal, which mutate several parcels and items all-or-nothing.
	MergeUoW interface {
		TxManager
		ParcelRepoFactory
		ItemRepoFactory
	}

	// MergeUoWFactory creates new merge unit of work instances.
	MergeUoWFactory interface {
		Create() MergeUoW
	}

	// ShippingUoW manages transactions for outbound shipping requests:
	// address resolution, customs valuation, quote lock-in, balance debit,
	// and ledger entry.
	ShippingUoW interface {
		TxManager
		ParcelRepoFactory
		ItemRepoFactory
		ShipGroupRepoFactory
		AccountRepoFactory
		LedgerRepoFactory
		AddressRepoFactory
	}

	// ShippingUoWFactory creates new shipping unit of work instances.
	ShippingUoWFactory interface {
		Create() ShippingUoW
	}

	// ShipmentUoW manages transactions for marking parcels shipped, which
	// checks the shared group but moves no money.
	ShipmentUoW interface {
		TxManager
		ParcelRepoFactory
		ShipGroupRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}
)
