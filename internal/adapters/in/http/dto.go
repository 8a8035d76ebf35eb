package http

import "time"

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateRouteRequest carries the inputs for route creation. Side is
// optional: "A" or "B" restricts the route to one side of the depot.
type CreateRouteRequest struct {
	DelivererID string   `json:"delivererId"`
	OrderIDs    []string `json:"orderIds"`
	Side        string   `json:"side,omitempty"`
}

// PreviewRouteRequest carries the candidate orders for an advisory plan.
type PreviewRouteRequest struct {
	OrderIDs []string `json:"orderIds"`
}

// CompleteStopRequest resolves the active stop of a route. Reason is
// mandatory for the "failed" outcome and optional for "skipped".
type CompleteStopRequest struct {
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}

// CancelRouteRequest aborts a route with a mandatory reason.
type CancelRouteRequest struct {
	Reason string `json:"reason"`
}

type RouteStopResponse struct {
	ID           string `json:"id"`
	Sequence     int    `json:"sequence"`
	OrderNumber  string `json:"orderNumber"`
	CustomerName string `json:"customerName"`
	Status       string `json:"status"`
}

type CreateRouteResponse struct {
	RouteID  string              `json:"routeId"`
	Number   string              `json:"number"`
	Status   string              `json:"status"`
	Stops    []RouteStopResponse `json:"stops"`
	Warnings []string            `json:"warnings,omitempty"`
}

type StartRouteResponse struct {
	RouteID      string    `json:"routeId"`
	Status       string    `json:"status"`
	StartedAt    time.Time `json:"startedAt"`
	NextStopID   string    `json:"nextStopId"`
	NextSequence int       `json:"nextSequence"`
}

type CompleteStopResponse struct {
	StopID         string    `json:"stopId"`
	StopStatus     string    `json:"stopStatus"`
	ResolvedAt     time.Time `json:"resolvedAt"`
	RouteStatus    string    `json:"routeStatus"`
	RouteCompleted bool      `json:"routeCompleted"`
}

type CancelRouteResponse struct {
	RouteID        string `json:"routeId"`
	Status         string `json:"status"`
	RevertedOrders int    `json:"revertedOrders"`
}

type PreviewStopResponse struct {
	Sequence            int     `json:"sequence"`
	OrderID             string  `json:"orderId"`
	OrderNumber         string  `json:"orderNumber"`
	CustomerName        string  `json:"customerName"`
	Address             string  `json:"address"`
	DistanceFromDepotKm float64 `json:"distanceFromDepotKm"`
}

type SidePreviewResponse struct {
	Side                string                `json:"side"`
	Label               string                `json:"label"`
	Stops               []PreviewStopResponse `json:"stops"`
	TotalStops          int                   `json:"totalStops"`
	EstimatedDistanceKm float64               `json:"estimatedDistanceKm"`
	Sequenced           bool                  `json:"sequenced"`
}

type UnknownOrderResponse struct {
	Position    int    `json:"position"`
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Address     string `json:"address"`
}

type PreviewRouteResponse struct {
	SideA         *SidePreviewResponse   `json:"sideA,omitempty"`
	SideB         *SidePreviewResponse   `json:"sideB,omitempty"`
	UnknownOrders []UnknownOrderResponse `json:"unknownOrders,omitempty"`
	Warnings      []string               `json:"warnings,omitempty"`
	TotalPlanned  int                    `json:"totalPlanned"`
}

type RouteDetailsStopResponse struct {
	ID            string     `json:"id"`
	Sequence      int        `json:"sequence"`
	Status        string     `json:"status"`
	OrderNumber   string     `json:"orderNumber"`
	CustomerName  string     `json:"customerName"`
	Address       string     `json:"address"`
	DeliveredAt   *time.Time `json:"deliveredAt,omitempty"`
	FailedAt      *time.Time `json:"failedAt,omitempty"`
	FailureReason string     `json:"failureReason,omitempty"`
}

type RouteDetailsResponse struct {
	ID          string                     `json:"id"`
	Number      string                     `json:"number"`
	Status      string                     `json:"status"`
	DelivererID *string                    `json:"delivererId,omitempty"`
	CreatedAt   time.Time                  `json:"createdAt"`
	StartedAt   *time.Time                 `json:"startedAt,omitempty"`
	CompletedAt *time.Time                 `json:"completedAt,omitempty"`
	TotalStops  int                        `json:"totalStops"`
	Stops       []RouteDetailsStopResponse `json:"stops"`
}

type ReadyOrderResponse struct {
	ID           string   `json:"id"`
	Number       string   `json:"number"`
	CustomerName string   `json:"customerName"`
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}
