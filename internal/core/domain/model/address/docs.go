// Package address provides the Address entity describing saved delivery
// destinations. Addresses are managed elsewhere; the warehouse reads them
// for carrier quotes and outbound shipping requests.
package address
