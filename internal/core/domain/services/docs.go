// Package services contains stateless domain services: shipper selection, settlement
// arithmetic and the overdue-batch escalation policy. They never touch storage.
package services
