// Package settlement models the periodic per-shop closing of COD money: the batch holding the
// signed balance, the payout transaction it may produce and the weekly schedule that decides
// when a shop's batch is created.
//
// Key business rules:
//   - a batch is created PENDING with a zero balance and only ever moves to COMPLETED or FAILED
//   - a closed batch accepts no further contributions
//   - a payout is only created for a strictly positive balance
//   - overdue warning and shop lock notifications are sent at most once per batch
package settlement
