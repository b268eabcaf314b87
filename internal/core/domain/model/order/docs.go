// Package order models the parcel order as the dispatch and settlement core sees it: its
// status, who pays the fee, the cod ladder, the shipper bound to it and the settlement batch
// it was closed into.
//
// Key business rules:
//   - a delivery shipper can only be bound at AT_DEST_OFFICE and moves the order to READY_FOR_PICKUP
//   - a pickup shipper can only be bound for PICKUP_BY_COURIER orders still before pickup
//   - an order joins at most one settlement batch, and only once DELIVERED or RETURNED
//   - the cod status never moves backwards
package order
