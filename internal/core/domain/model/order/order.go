package order

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order represents a retail order read by the dispatch core.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a public-facing number
//   - Coordinate is optional; it stays nil until the order has been geocoded
//   - Status transitions performed by this core follow the rules in Status
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id           kernel.UUID
	number       string
	customerName string
	phone        string
	address      string
	postalCode   string
	coordinate   *kernel.Coordinate
	status       Status

	isConstructed bool
}

// NewOrder creates an Order with validation. The coordinate may be nil for
// orders not yet geocoded.
func NewOrder(
	id kernel.UUID,
	number string,
	customerName string,
	phone string,
	address string,
	postalCode string,
	coordinate *kernel.Coordinate,
	status Status,
) (*Order, error) {
	o := &Order{
		phone:         phone,
		postalCode:    postalCode,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomerName(customerName),
		o.setAddress(address),
		o.setCoordinate(coordinate),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. The same validation as
// NewOrder applies: stored data must still satisfy the invariants.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerName string,
	phone string,
	address string,
	postalCode string,
	coordinate *kernel.Coordinate,
	status Status,
) (*Order, error) {
	return NewOrder(id, number, customerName, phone, address, postalCode, coordinate, status)
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the public-facing order number.
func (o *Order) Number() string {
	return o.number
}

// CustomerName returns the customer's name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Phone returns the customer's phone number.
func (o *Order) Phone() string {
	return o.phone
}

// Address returns the delivery address text.
func (o *Order) Address() string {
	return o.address
}

// PostalCode returns the delivery postal code.
func (o *Order) PostalCode() string {
	return o.postalCode
}

// Coordinate returns the geocoded delivery coordinate, or nil when the order
// has not been geocoded yet. The returned pointer is a copy; mutating it does
// not affect the order.
func (o *Order) Coordinate() *kernel.Coordinate {
	if o.coordinate == nil {
		return nil
	}
	c := *o.coordinate
	return &c
}

// Status returns the current delivery-readiness status.
func (o *Order) Status() Status {
	return o.status
}

// IsPlannable reports whether the order is eligible for route planning:
// ready-for-delivery with a geocoded coordinate.
func (o *Order) IsPlannable() bool {
	return o.status == ReadyForDelivery && o.coordinate != nil
}

// StartDelivery marks the order out-for-delivery. Called when a route is
// materialized with this order as a stop.
func (o *Order) StartDelivery() error {
	newStatus, err := o.status.StartDelivery()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ReturnToReady reverts the order to ready-for-delivery. Called when the
// route carrying this order is cancelled before its stop resolved.
func (o *Order) ReturnToReady() error {
	newStatus, err := o.status.ReturnToReady()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	o.customerName = customerName
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setCoordinate(coordinate *kernel.Coordinate) error {
	if coordinate == nil {
		return nil
	}
	if err := coordinate.Validate(); err != nil {
		return err
	}
	c := *coordinate
	o.coordinate = &c
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
