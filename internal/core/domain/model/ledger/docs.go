// Package ledger provides the append-only Entry record tracking every
// balance movement. Each fee debit and refund credit produces one entry in
// the same transaction as the balance change.
package ledger
