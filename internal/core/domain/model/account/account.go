package account

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

var (
	// ErrAccountIsNotConstructed is returned when an Account instance was not
	// created through a factory method.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount constructor")
)

// Account represents a customer's prepaid balance at the forwarding service.
// All fees (domestic shipping, storage, services, disposal, outbound
// shipping) are debited from this balance; declined requests credit it back.
//
// Account follows these invariants:
//   - Must have a valid unique identifier and a non-empty email
//   - The balance never goes negative; debits exceeding it are rejected
//   - Can only be created through NewAccount or RestoreAccount
type Account struct {
	// id is the unique identifier for the account
	id kernel.UUID

	// email is the notification address for the account
	email string

	// name is the display name of the account holder
	name string

	// balanceYen is the prepaid balance in yen
	balanceYen int64

	// isConstructed ensures the account was created via a constructor
	isConstructed bool
}

// NewAccount creates a new Account with a zero balance.
func NewAccount(id kernel.UUID, email string, name string) (*Account, error) {
	account := &Account{
		isConstructed: true,
	}

	if err := errors.Join(
		account.setID(id),
		account.setEmail(email),
	); err != nil {
		return nil, err
	}

	account.name = name
	return account, nil
}

// RestoreAccount reconstructs an Account from persistent storage.
func RestoreAccount(id kernel.UUID, email string, name string, balanceYen int64) (*Account, error) {
	account, err := NewAccount(id, email, name)
	if err != nil {
		return nil, err
	}

	if balanceYen < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"balanceYen is invalid",
			fmt.Errorf("%d is negative", balanceYen),
		)
	}

	account.balanceYen = balanceYen
	return account, nil
}

// Validate ensures the Account instance was properly constructed.
func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}

	return nil
}

// IsEqual compares two accounts by their unique identifiers.
func (a *Account) IsEqual(other *Account) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Email returns the notification address.
func (a *Account) Email() string {
	return a.email
}

// Name returns the display name of the account holder.
func (a *Account) Name() string {
	return a.name
}

// BalanceYen returns the prepaid balance in yen.
func (a *Account) BalanceYen() int64 {
	return a.balanceYen
}

// Debit withdraws the given amount from the balance.
//
// Business rules:
//   - The amount must be positive
//   - A debit exceeding the balance is rejected with the shortfall reported
func (a *Account) Debit(amountYen int64) error {
	if amountYen <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amountYen is invalid",
			fmt.Errorf("%d is not greater than 0", amountYen),
		)
	}
	if amountYen > a.balanceYen {
		return errs.NewInsufficientBalanceError(amountYen, a.balanceYen)
	}

	a.balanceYen -= amountYen
	return nil
}

// Credit deposits the given amount into the balance. It serves both top-ups
// and refunds for declined requests.
func (a *Account) Credit(amountYen int64) error {
	if amountYen <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amountYen is invalid",
			fmt.Errorf("%d is not greater than 0", amountYen),
		)
	}

	a.balanceYen += amountYen
	return nil
}

// setID validates and sets the account's unique identifier.
func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

// setEmail validates and sets the notification address.
func (a *Account) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	a.email = email
	return nil
}
