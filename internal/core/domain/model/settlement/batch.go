package settlement

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch or RestoreBatch")
	// ErrBatchClosed is returned when a COMPLETED or FAILED batch is asked to change its balance or status.
	ErrBatchClosed = errors.New("settlement batch is closed")

	ErrCodeIsRequired = errs.NewValueIsRequiredError("code")
)

// NewBatchCode returns a human-readable unique batch reference, e.g. SB-20260504-1A2B3C4D.
func NewBatchCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("SB-%s-%s", now.Format("20060102"), suffix)
}

// BatchSnapshot carries the persisted state of a batch.
type BatchSnapshot struct {
	ID          kernel.ID
	Code        string
	ShopID      kernel.ID
	Balance     decimal.Decimal
	Status      BatchStatus
	WarningSent bool
	LockedSent  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Batch aggregates one shop's closed-out orders into a single signed balance.
// A positive balance is owed to the shop; a negative one is owed by the shop.
type Batch struct {
	id          kernel.ID
	code        string
	shopID      kernel.ID
	balance     decimal.Decimal
	status      BatchStatus
	warningSent bool
	lockedSent  bool
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewBatch opens an empty PENDING batch.
func NewBatch(code string, shopID kernel.ID, now time.Time) (*Batch, error) {
	if err := errors.Join(validateCode(code), shopID.Validate()); err != nil {
		return nil, err
	}
	return &Batch{
		code:          code,
		shopID:        shopID,
		balance:       decimal.Zero,
		status:        BatchPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

func RestoreBatch(s BatchSnapshot) (*Batch, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.ShopID.Validate(),
		s.Status.Validate(),
		validateCode(s.Code),
	); err != nil {
		return nil, err
	}
	return &Batch{
		id:            s.ID,
		code:          s.Code,
		shopID:        s.ShopID,
		balance:       s.Balance,
		status:        s.Status,
		warningSent:   s.WarningSent,
		lockedSent:    s.LockedSent,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}, nil
}

func (b *Batch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBatchIsNotConstructed
	}
	return nil
}

func (b *Batch) ID() kernel.ID {
	return b.id
}

// SetID is called by the repository once storage assigned the identifier.
func (b *Batch) SetID(id kernel.ID) {
	b.id = id
}

func (b *Batch) Code() string {
	return b.code
}

func (b *Batch) ShopID() kernel.ID {
	return b.shopID
}

func (b *Batch) Balance() decimal.Decimal {
	return b.balance
}

func (b *Batch) Status() BatchStatus {
	return b.status
}

func (b *Batch) WarningSent() bool {
	return b.warningSent
}

func (b *Batch) LockedSent() bool {
	return b.lockedSent
}

func (b *Batch) CreatedAt() time.Time {
	return b.createdAt
}

func (b *Batch) UpdatedAt() time.Time {
	return b.updatedAt
}

// Age is the time elapsed since creation.
func (b *Batch) Age(now time.Time) time.Duration {
	return now.Sub(b.createdAt)
}

// AddContribution adds one order's signed contribution to the balance.
func (b *Batch) AddContribution(amount decimal.Decimal, now time.Time) error {
	if !b.status.IsOpen() {
		return fmt.Errorf("%w: %s is %s", ErrBatchClosed, b.code, b.status)
	}
	b.balance = b.balance.Add(amount)
	b.updatedAt = now
	return nil
}

// Complete closes the batch after a successful payout.
func (b *Batch) Complete(now time.Time) error {
	return b.close(BatchCompleted, now)
}

// Fail closes the batch when there is nothing to pay out this cycle.
func (b *Batch) Fail(now time.Time) error {
	return b.close(BatchFailed, now)
}

func (b *Batch) close(status BatchStatus, now time.Time) error {
	if !b.status.IsOpen() {
		return fmt.Errorf("%w: %s is %s", ErrBatchClosed, b.code, b.status)
	}
	b.status = status
	b.updatedAt = now
	return nil
}

// MarkWarningSent sets the one-shot overdue warning flag.
func (b *Batch) MarkWarningSent(now time.Time) {
	b.warningSent = true
	b.updatedAt = now
}

// MarkLockedSent sets the one-shot shop lock flag.
func (b *Batch) MarkLockedSent(now time.Time) {
	b.lockedSent = true
	b.updatedAt = now
}

func validateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrCodeIsRequired
	}
	return nil
}
