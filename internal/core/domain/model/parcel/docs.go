// Package parcel provides domain entities and business logic for package
// management in the forwarding warehouse. It implements the Parcel aggregate
// root with lifecycle management and state transitions.
//
// The package includes:
//   - Parcel: The aggregate root that manages package identity, fees, services,
//     consolidation, disposal, and shipping
//   - Status: A state machine that enforces shipping progress transitions
//   - Lifecycle: A value object separating the record's fate (active,
//     superseded by a merge, disposed) from its shipping progress
//   - ServiceStatus: Tracks optional paid services such as photos and
//     packaging reinforcement
//
// Key business rules:
//   - Shipping progress follows PendingShipping -> Ready -> Shipped
//   - Superseded and disposed records reject all mutating operations
//   - A parcel cannot ship with unpaid domestic fees, pending services, or
//     open consolidation or disposal requests
//   - Service fees, disposal fees, and insurance premiums are collected by
//     the application layer before the aggregate records the state change
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package parcel
