// Package http exposes the dispatch use cases over a REST API.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createRouteHandler  commands.CreateRouteCommandHandler
	startRouteHandler   commands.StartRouteCommandHandler
	completeStopHandler commands.CompleteStopCommandHandler
	cancelRouteHandler  commands.CancelRouteCommandHandler

	// Query handlers
	previewRouteHandler   queries.PreviewRouteQueryHandler
	getRouteHandler       queries.GetRouteQueryHandler
	getReadyOrdersHandler queries.GetReadyOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createRouteHandler commands.CreateRouteCommandHandler,
	startRouteHandler commands.StartRouteCommandHandler,
	completeStopHandler commands.CompleteStopCommandHandler,
	cancelRouteHandler commands.CancelRouteCommandHandler,
	previewRouteHandler queries.PreviewRouteQueryHandler,
	getRouteHandler queries.GetRouteQueryHandler,
	getReadyOrdersHandler queries.GetReadyOrdersQueryHandler,
) *Server {
	return &Server{
		createRouteHandler:    createRouteHandler,
		startRouteHandler:     startRouteHandler,
		completeStopHandler:   completeStopHandler,
		cancelRouteHandler:    cancelRouteHandler,
		previewRouteHandler:   previewRouteHandler,
		getRouteHandler:       getRouteHandler,
		getReadyOrdersHandler: getReadyOrdersHandler,
	}
}

// RegisterRoutes binds every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/routes", s.CreateRoute)
	v1.POST("/routes/preview", s.PreviewRoute)
	v1.GET("/routes/:routeId", s.GetRoute)
	v1.POST("/routes/:routeId/start", s.StartRoute)
	v1.POST("/routes/:routeId/cancel", s.CancelRoute)
	v1.POST("/routes/:routeId/stops/:stopId/complete", s.CompleteStop)
	v1.GET("/orders/ready", s.GetReadyOrders)
}

// CreateRoute handles POST /api/v1/routes - builds a route from ready orders.
func (s *Server) CreateRoute(ctx echo.Context) error {
	var req CreateRouteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	delivererID, err := kernel.UUIDFromString(req.DelivererID)
	if err != nil {
		return badRequest(ctx, "Invalid deliverer id: "+req.DelivererID)
	}

	orderIDs, err := parseUUIDs(req.OrderIDs)
	if err != nil {
		return badRequest(ctx, "Invalid order id in request")
	}

	cmd, err := commands.NewCreateRouteCommand(delivererID, orderIDs, req.Side)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.createRouteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	stops := make([]RouteStopResponse, len(result.Stops))
	for i, stop := range result.Stops {
		stops[i] = RouteStopResponse{
			ID:           stop.StopID.String(),
			Sequence:     stop.Sequence,
			OrderNumber:  stop.OrderNumber,
			CustomerName: stop.CustomerName,
			Status:       stop.Status,
		}
	}

	return ctx.JSON(http.StatusCreated, CreateRouteResponse{
		RouteID:  result.RouteID.String(),
		Number:   result.Number,
		Status:   result.Status,
		Stops:    stops,
		Warnings: result.Warnings,
	})
}

// PreviewRoute handles POST /api/v1/routes/preview - advisory planning
// without persisting anything.
func (s *Server) PreviewRoute(ctx echo.Context) error {
	var req PreviewRouteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderIDs, err := parseUUIDs(req.OrderIDs)
	if err != nil {
		return badRequest(ctx, "Invalid order id in request")
	}

	query, err := queries.NewPreviewRouteQuery(orderIDs)
	if err != nil {
		return writeError(ctx, err)
	}

	plan, err := s.previewRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := PreviewRouteResponse{
		SideA:        sidePreviewResponse(plan.SideA),
		SideB:        sidePreviewResponse(plan.SideB),
		Warnings:     plan.Warnings,
		TotalPlanned: plan.TotalPlanned,
	}
	for _, unknown := range plan.UnknownOrders {
		response.UnknownOrders = append(response.UnknownOrders, UnknownOrderResponse{
			Position:    unknown.Position,
			OrderID:     unknown.OrderID.String(),
			OrderNumber: unknown.OrderNumber,
			Address:     unknown.Address,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRoute handles GET /api/v1/routes/:routeId - route details with stops
// in sequence order.
func (s *Server) GetRoute(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("routeId"))
	if err != nil {
		return badRequest(ctx, "Invalid route id: "+ctx.Param("routeId"))
	}

	query, err := queries.NewGetRouteQuery(routeID)
	if err != nil {
		return writeError(ctx, err)
	}

	details, err := s.getRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	stops := make([]RouteDetailsStopResponse, len(details.Stops))
	for i, stop := range details.Stops {
		stops[i] = RouteDetailsStopResponse{
			ID:            stop.ID.String(),
			Sequence:      stop.Sequence,
			Status:        stop.Status,
			OrderNumber:   stop.OrderNumber,
			CustomerName:  stop.CustomerName,
			Address:       stop.Address,
			DeliveredAt:   stop.DeliveredAt,
			FailedAt:      stop.FailedAt,
			FailureReason: stop.FailureReason,
		}
	}

	response := RouteDetailsResponse{
		ID:          details.ID.String(),
		Number:      details.Number,
		Status:      details.Status,
		CreatedAt:   details.CreatedAt,
		StartedAt:   details.StartedAt,
		CompletedAt: details.CompletedAt,
		TotalStops:  details.TotalStops,
		Stops:       stops,
	}
	if details.DelivererID != nil {
		id := details.DelivererID.String()
		response.DelivererID = &id
	}

	return ctx.JSON(http.StatusOK, response)
}

// StartRoute handles POST /api/v1/routes/:routeId/start.
func (s *Server) StartRoute(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("routeId"))
	if err != nil {
		return badRequest(ctx, "Invalid route id: "+ctx.Param("routeId"))
	}

	cmd, err := commands.NewStartRouteCommand(routeID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.startRouteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StartRouteResponse{
		RouteID:      result.RouteID.String(),
		Status:       result.Status,
		StartedAt:    result.StartedAt,
		NextStopID:   result.NextStopID.String(),
		NextSequence: result.NextSequence,
	})
}

// CompleteStop handles POST /api/v1/routes/:routeId/stops/:stopId/complete.
func (s *Server) CompleteStop(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("routeId"))
	if err != nil {
		return badRequest(ctx, "Invalid route id: "+ctx.Param("routeId"))
	}
	stopID, err := kernel.UUIDFromString(ctx.Param("stopId"))
	if err != nil {
		return badRequest(ctx, "Invalid stop id: "+ctx.Param("stopId"))
	}

	var req CompleteStopRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	outcome, err := commands.ParseStopOutcome(req.Outcome)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCompleteStopCommand(routeID, stopID, outcome, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.completeStopHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CompleteStopResponse{
		StopID:         result.StopID.String(),
		StopStatus:     result.StopStatus,
		ResolvedAt:     result.ResolvedAt,
		RouteStatus:    result.RouteStatus,
		RouteCompleted: result.RouteCompleted,
	})
}

// CancelRoute handles POST /api/v1/routes/:routeId/cancel.
func (s *Server) CancelRoute(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("routeId"))
	if err != nil {
		return badRequest(ctx, "Invalid route id: "+ctx.Param("routeId"))
	}

	var req CancelRouteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelRouteCommand(routeID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.cancelRouteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CancelRouteResponse{
		RouteID:        result.RouteID.String(),
		Status:         result.Status,
		RevertedOrders: result.RevertedOrders,
	})
}

// GetReadyOrders handles GET /api/v1/orders/ready - orders available for
// planning.
func (s *Server) GetReadyOrders(ctx echo.Context) error {
	orders, err := s.getReadyOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetReadyOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ReadyOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = ReadyOrderResponse{
			ID:           o.ID.String(),
			Number:       o.Number,
			CustomerName: o.CustomerName,
			Address:      o.Address,
			Latitude:     o.Latitude,
			Longitude:    o.Longitude,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func sidePreviewResponse(side *queries.SidePreview) *SidePreviewResponse {
	if side == nil {
		return nil
	}

	stops := make([]PreviewStopResponse, len(side.Stops))
	for i, stop := range side.Stops {
		stops[i] = PreviewStopResponse{
			Sequence:            stop.Sequence,
			OrderID:             stop.OrderID.String(),
			OrderNumber:         stop.OrderNumber,
			CustomerName:        stop.CustomerName,
			Address:             stop.Address,
			DistanceFromDepotKm: stop.DistanceFromDepotKm,
		}
	}

	return &SidePreviewResponse{
		Side:                side.Side,
		Label:               side.Label,
		Stops:               stops,
		TotalStops:          side.TotalStops,
		EstimatedDistanceKm: side.EstimatedDistanceKm,
		Sequenced:           side.Sequenced,
	}
}

func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain errors to HTTP statuses.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrStateConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
