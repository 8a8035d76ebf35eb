// Package deliverer models the people who drive routes. Deliverers are
// registered and managed by an external back office; this core reads them to
// assign routes and never mutates them.
package deliverer

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrDelivererIsNotConstructed is returned when a Deliverer instance was not
// created through the NewDeliverer factory method.
var ErrDelivererIsNotConstructed = errors.New("Deliverer must be created via NewDeliverer constructor")

// Deliverer is a read-only record of a route driver.
type Deliverer struct {
	id      kernel.UUID
	name    string
	phone   string
	vehicle string
	active  bool

	isConstructed bool
}

// NewDeliverer creates a Deliverer with validation.
func NewDeliverer(id kernel.UUID, name string, phone string, vehicle string, active bool) (*Deliverer, error) {
	d := &Deliverer{
		phone:         phone,
		vehicle:       vehicle,
		active:        active,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Deliverer instance was properly constructed.
func (d *Deliverer) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDelivererIsNotConstructed
	}
	return nil
}

// ID returns the deliverer's unique identifier.
func (d *Deliverer) ID() kernel.UUID {
	return d.id
}

// Name returns the deliverer's display name.
func (d *Deliverer) Name() string {
	return d.name
}

// Phone returns the deliverer's contact phone.
func (d *Deliverer) Phone() string {
	return d.phone
}

// Vehicle returns the free-text vehicle description.
func (d *Deliverer) Vehicle() string {
	return d.vehicle
}

// IsActive reports whether the deliverer can currently be assigned routes.
func (d *Deliverer) IsActive() bool {
	return d.active
}

func (d *Deliverer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Deliverer) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("deliverer name")
	}
	d.name = name
	return nil
}
