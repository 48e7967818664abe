// Package services contains domain services implementing business logic
// that spans multiple aggregates.
//
// The package includes:
//   - StorageCalculator: Derives storage billing snapshots (fees, grace
//     period, forced-disposal eligibility) from a parcel's arrival and
//     payment times
//   - Consolidator: Merges several parcels into one successor, combining
//     weights, costs, insurance, and photos under the merge rules
//
// Domain services are stateless and operate purely on domain objects,
// keeping orchestration concerns (persistence, payments, notifications)
// in the application layer.
package services
