// Package account provides the Account aggregate holding a customer's
// prepaid balance. Every fee in the warehouse is settled against this
// balance, and refunds for declined requests flow back into it.
package account
