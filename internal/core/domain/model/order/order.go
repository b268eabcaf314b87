package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built through RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder constructor")
	// ErrAlreadyInBatch guards the "one settlement batch per order, ever" rule.
	ErrAlreadyInBatch = errors.New("order is already attached to a settlement batch")
	// ErrCODStatusRegression is returned when the cod status would move backwards.
	ErrCODStatusRegression = errors.New("cod status cannot move backwards")
	// ErrTrackingCodeIsRequired is returned for an empty tracking code.
	ErrTrackingCodeIsRequired = errs.NewValueIsRequiredError("trackingCode")
)

// Office is the network office an order leaves from or arrives at.
type Office struct {
	ID   kernel.ID
	Zone kernel.Zone
}

// Snapshot carries the persisted state of an order. Zero zones and nil offices mean "absent".
type Snapshot struct {
	ID                kernel.ID
	TrackingCode      string
	ShopID            kernel.ID
	OwnerAccountID    *kernel.ID
	Status            Status
	PickupType        PickupType
	COD               decimal.Decimal
	TotalFee          decimal.Decimal
	Payer             Payer
	PaymentStatus     PaymentStatus
	PaidAt            *time.Time
	CODStatus         CODStatus
	SettlementBatchID *kernel.ID
	SettlementAmount  decimal.Decimal
	ShipperProfileID  *kernel.ID
	SenderZone        kernel.Zone
	RecipientZone     kernel.Zone
	OriginOffice      *Office
	DestinationOffice *Office
}

// Order is the parcel aggregate as seen by the dispatch and settlement core. Creation and the
// bulk of the status workflow live elsewhere; this type only exposes the transitions the core
// performs and guards their invariants.
type Order struct {
	id                kernel.ID
	trackingCode      string
	shopID            kernel.ID
	ownerAccountID    *kernel.ID
	status            Status
	pickupType        PickupType
	cod               decimal.Decimal
	totalFee          decimal.Decimal
	payer             Payer
	paymentStatus     PaymentStatus
	paidAt            *time.Time
	codStatus         CODStatus
	settlementBatchID *kernel.ID
	settlementAmount  decimal.Decimal
	shipperProfileID  *kernel.ID
	senderZone        kernel.Zone
	recipientZone     kernel.Zone
	originOffice      *Office
	destinationOffice *Office

	isConstructed bool
}

// RestoreOrder rebuilds an order from storage and validates every field.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.ShopID.Validate(),
		s.Status.Validate(),
		s.PickupType.Validate(),
		s.Payer.Validate(),
		s.PaymentStatus.Validate(),
		s.CODStatus.Validate(),
		validateTrackingCode(s.TrackingCode),
		validateMoney("cod", s.COD),
		validateMoney("totalFee", s.TotalFee),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:                s.ID,
		trackingCode:      strings.TrimSpace(s.TrackingCode),
		shopID:            s.ShopID,
		ownerAccountID:    s.OwnerAccountID,
		status:            s.Status,
		pickupType:        s.PickupType,
		cod:               s.COD,
		totalFee:          s.TotalFee,
		payer:             s.Payer,
		paymentStatus:     s.PaymentStatus,
		paidAt:            s.PaidAt,
		codStatus:         s.CODStatus,
		settlementBatchID: s.SettlementBatchID,
		settlementAmount:  s.SettlementAmount,
		shipperProfileID:  s.ShipperProfileID,
		senderZone:        s.SenderZone,
		recipientZone:     s.RecipientZone,
		originOffice:      s.OriginOffice,
		destinationOffice: s.DestinationOffice,
		isConstructed:     true,
	}, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.ID {
	return o.id
}

func (o *Order) TrackingCode() string {
	return o.trackingCode
}

func (o *Order) ShopID() kernel.ID {
	return o.shopID
}

func (o *Order) OwnerAccountID() *kernel.ID {
	return o.ownerAccountID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PickupType() PickupType {
	return o.pickupType
}

func (o *Order) COD() decimal.Decimal {
	return o.cod
}

func (o *Order) TotalFee() decimal.Decimal {
	return o.totalFee
}

func (o *Order) Payer() Payer {
	return o.payer
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

func (o *Order) CODStatus() CODStatus {
	return o.codStatus
}

func (o *Order) SettlementBatchID() *kernel.ID {
	return o.settlementBatchID
}

// SettlementAmount is the signed contribution the order added to its batch balance.
func (o *Order) SettlementAmount() decimal.Decimal {
	return o.settlementAmount
}

func (o *Order) ShipperProfileID() *kernel.ID {
	return o.shipperProfileID
}

func (o *Order) SenderZone() kernel.Zone {
	return o.senderZone
}

func (o *Order) RecipientZone() kernel.Zone {
	return o.recipientZone
}

func (o *Order) OriginOffice() *Office {
	return o.originOffice
}

func (o *Order) DestinationOffice() *Office {
	return o.destinationOffice
}

// DeliveryZone is the recipient's zone, falling back to the destination office's zone.
func (o *Order) DeliveryZone() (kernel.Zone, bool) {
	if !o.recipientZone.IsZero() {
		return o.recipientZone, true
	}
	if o.destinationOffice != nil && !o.destinationOffice.Zone.IsZero() {
		return o.destinationOffice.Zone, true
	}
	return kernel.Zone{}, false
}

// PickupZone is the sender's zone, falling back to the origin office's zone.
func (o *Order) PickupZone() (kernel.Zone, bool) {
	if !o.senderZone.IsZero() {
		return o.senderZone, true
	}
	if o.originOffice != nil && !o.originOffice.Zone.IsZero() {
		return o.originOffice.Zone, true
	}
	return kernel.Zone{}, false
}

// CanAssignForDelivery reports whether the order waits for a final-mile shipper.
func (o *Order) CanAssignForDelivery() bool {
	return o.status == AtDestOffice
}

// CanAssignForPickup reports whether a courier pickup shipper may be attached.
func (o *Order) CanAssignForPickup() bool {
	return o.pickupType == PickupByCourier && o.status.IsPickupAssignable()
}

// AssignDeliveryShipper binds a shipper profile for final-mile delivery and marks the order
// ready to be picked up by that shipper at the destination office.
func (o *Order) AssignDeliveryShipper(profileID kernel.ID) error {
	if err := profileID.Validate(); err != nil {
		return err
	}

	next, err := o.status.AssignForDelivery()
	if err != nil {
		return err
	}

	o.shipperProfileID = &profileID
	o.status = next
	return nil
}

// AssignPickupShipper binds a shipper profile for courier pickup. The status is left alone:
// pickup confirmation is a separate step.
func (o *Order) AssignPickupShipper(profileID kernel.ID) error {
	if err := profileID.Validate(); err != nil {
		return err
	}

	if !o.CanAssignForPickup() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order with %s is not assignable for pickup", o.status, o.pickupType),
		)
	}

	o.shipperProfileID = &profileID
	return nil
}

// IsSettleable reports whether the order can be attached to a settlement batch.
func (o *Order) IsSettleable() bool {
	return o.status.IsSettleable() && o.settlementBatchID == nil
}

// AttachToBatch links the order to a settlement batch together with the signed amount it
// contributed. An order may be attached once, ever.
func (o *Order) AttachToBatch(batchID kernel.ID, amount decimal.Decimal) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	if o.settlementBatchID != nil {
		return fmt.Errorf("%w: order %s, batch %s", ErrAlreadyInBatch, o.id, *o.settlementBatchID)
	}
	if !o.status.IsSettleable() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to settle", o.status),
		)
	}

	o.settlementBatchID = &batchID
	o.settlementAmount = amount
	return nil
}

// MarkCODCollected records that the shipper took the cash (EXPECTED -> PENDING).
func (o *Order) MarkCODCollected() error {
	if o.codStatus != CODExpected {
		return errs.NewValueIsInvalidErrorWithCause(
			"codStatus",
			fmt.Errorf("%s is not a valid cod status to collect", o.codStatus),
		)
	}
	o.codStatus = CODPending
	return nil
}

// MarkTransferred closes the cod ladder once the order's batch has been processed.
func (o *Order) MarkTransferred() error {
	next, err := o.codStatus.Advance(CODTransferred)
	if err != nil {
		return err
	}
	o.codStatus = next
	return nil
}

// MarkPaid records the fee as settled. It is a no-op for an already paid order so the
// original paid timestamp survives.
func (o *Order) MarkPaid(at time.Time) {
	if o.paymentStatus == PaymentPaid {
		return
	}
	o.paymentStatus = PaymentPaid
	o.paidAt = &at
}

func validateTrackingCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrTrackingCodeIsRequired
	}
	return nil
}

func validateMoney(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return errs.NewValueIsOutOfRangeError(name, v.String(), 0, "unbounded")
	}
	return nil
}
