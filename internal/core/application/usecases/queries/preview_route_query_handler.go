package queries

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/depot"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/core/domain/services"
)

// DefaultSequencingDelay is the pause between the side A and side B
// optimizer calls, respecting the matrix provider's rate limits.
const DefaultSequencingDelay = 500 * time.Millisecond

// OrderReader is the read-only order access the preview needs.
type OrderReader interface {
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)
}

// PreviewRouteQueryHandler assembles an advisory route plan: it filters
// orders against depot radius and exclusion zones, splits survivors into
// the two delivery sides, and sequences each side independently.
//
// The handler is strictly best-effort. A problem with one order yields a
// warning and the rest of the batch proceeds; an optimizer failure on
// one side falls back to a local ordering without affecting the other
// side. Only an entirely empty fetch short-circuits.
type PreviewRouteQueryHandler struct {
	orders        OrderReader
	depot         *depot.Depot
	zones         *zone.Zones
	classifier    services.DirectionClassifier
	sequencer     services.StopSequencer
	sequencingGap time.Duration
}

// NewPreviewRouteQueryHandler creates a preview handler. A negative
// sequencingGap selects DefaultSequencingDelay; tests pass zero to
// avoid sleeping.
func NewPreviewRouteQueryHandler(
	orders OrderReader,
	depotRef *depot.Depot,
	zones *zone.Zones,
	classifier services.DirectionClassifier,
	sequencer services.StopSequencer,
	sequencingGap time.Duration,
) PreviewRouteQueryHandler {
	if sequencingGap < 0 {
		sequencingGap = DefaultSequencingDelay
	}
	return PreviewRouteQueryHandler{
		orders:        orders,
		depot:         depotRef,
		zones:         zones,
		classifier:    classifier,
		sequencer:     sequencer,
		sequencingGap: sequencingGap,
	}
}

// Handle builds the preview.
func (h PreviewRouteQueryHandler) Handle(
	ctx context.Context,
	query PreviewRouteQuery,
) (PreviewRouteResponse, error) {
	if err := query.Validate(); err != nil {
		return PreviewRouteResponse{}, err
	}

	response := PreviewRouteResponse{}

	requested := query.OrderIDs()
	fetched, err := h.orders.GetByIDs(ctx, requested)
	if err != nil {
		return PreviewRouteResponse{}, err
	}
	if len(fetched) == 0 {
		response.Warnings = append(response.Warnings, "no orders found for the requested ids")
		return response, nil
	}

	response.Warnings = append(response.Warnings, missingOrderWarnings(requested, fetched)...)

	sideOrders := map[services.Side][]*order.Order{}
	for _, o := range fetched {
		bucket, warning := h.admit(o)
		if warning != "" {
			response.Warnings = append(response.Warnings, warning)
		}
		if bucket == "" {
			continue
		}
		if bucket == services.SideUnknown {
			response.UnknownOrders = append(response.UnknownOrders, UnknownOrderPreview{
				Position:    len(response.UnknownOrders) + 1,
				OrderID:     o.ID(),
				OrderNumber: o.Number(),
				Address:     o.Address(),
			})
			continue
		}
		sideOrders[bucket] = append(sideOrders[bucket], o)
	}

	bothSides := len(sideOrders[services.SideA]) > 0 && len(sideOrders[services.SideB]) > 0

	for i, side := range []services.Side{services.SideA, services.SideB} {
		orders := sideOrders[side]
		if len(orders) == 0 {
			continue
		}

		if i > 0 && bothSides {
			if err = h.pause(ctx); err != nil {
				return PreviewRouteResponse{}, err
			}
		}

		preview := h.previewSide(ctx, side, orders)
		if !preview.Sequenced {
			response.Warnings = append(response.Warnings, fmt.Sprintf(
				"matrix provider unavailable for side %s; stops fall back to straight-line ordering", side))
		}
		if side == services.SideA {
			response.SideA = &preview
		} else {
			response.SideB = &preview
		}
		response.TotalPlanned += preview.TotalStops
	}

	return response, nil
}

// admit decides what happens to one order: a side bucket, the unknown
// bucket (SideUnknown), or rejection (empty side). The warning is empty
// only when the order lands in a side bucket.
func (h PreviewRouteQueryHandler) admit(o *order.Order) (services.Side, string) {
	if o.Status() != order.ReadyForDelivery {
		return "", fmt.Sprintf("order %s is not ready for delivery (status %s)", o.Number(), o.Status())
	}

	point := o.Coordinate()
	if point == nil {
		return services.SideUnknown, fmt.Sprintf("order %s has no coordinates resolved", o.Number())
	}

	distance, err := h.depot.DistanceFromKm(*point)
	if err != nil {
		return "", fmt.Sprintf("order %s has unusable coordinates: %v", o.Number(), err)
	}
	if distance > h.depot.RadiusKm() {
		return "", fmt.Sprintf("order %s is %.1f km from the depot, beyond the %.1f km delivery radius",
			o.Number(), distance, h.depot.RadiusKm())
	}

	if zones := h.zones.ContainingZones(*point); len(zones) > 0 {
		return "", fmt.Sprintf("order %s falls inside exclusion zone %q", o.Number(), zones[0])
	}

	return h.classifier.Classify(point), ""
}

func (h PreviewRouteQueryHandler) previewSide(
	ctx context.Context,
	side services.Side,
	orders []*order.Order,
) SidePreview {
	points := make([]kernel.Coordinate, 0, len(orders))
	for _, o := range orders {
		points = append(points, *o.Coordinate())
	}

	visitOrder, usedFallback := h.sequencer.Sequence(ctx, h.depot.Coordinate(), points)

	stops := make([]PreviewStop, 0, len(orders))
	total := 0.0
	previous := h.depot.Coordinate()
	for i, idx := range visitOrder {
		o := orders[idx]
		point := *o.Coordinate()

		// admit already ran DistanceFromKm over every coordinate on this
		// side, and previous is either the depot coordinate or one of
		// them, so neither distance call can fail here.
		fromDepot, _ := h.depot.DistanceFromKm(point)
		leg, _ := previous.DistanceKm(point)
		total += leg
		previous = point

		stops = append(stops, PreviewStop{
			Sequence:            i + 1,
			OrderID:             o.ID(),
			OrderNumber:         o.Number(),
			CustomerName:        o.CustomerName(),
			Address:             o.Address(),
			DistanceFromDepotKm: fromDepot,
		})
	}

	return SidePreview{
		Side:                string(side),
		Label:               side.Label(),
		Stops:               stops,
		TotalStops:          len(stops),
		EstimatedDistanceKm: total,
		Sequenced:           !usedFallback,
	}
}

func (h PreviewRouteQueryHandler) pause(ctx context.Context) error {
	if h.sequencingGap <= 0 {
		return nil
	}

	timer := time.NewTimer(h.sequencingGap)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func missingOrderWarnings(requested []kernel.UUID, fetched []*order.Order) []string {
	found := make(map[string]struct{}, len(fetched))
	for _, o := range fetched {
		found[o.ID().String()] = struct{}{}
	}

	var warnings []string
	for _, id := range requested {
		if _, ok := found[id.String()]; !ok {
			warnings = append(warnings, fmt.Sprintf("order %s was not found", id))
		}
	}
	return warnings
}
