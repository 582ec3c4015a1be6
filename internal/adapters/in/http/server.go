// Package http exposes the dispatch use cases over a JSON API built on echo.
package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use case handlers the server delegates to.
type Handlers struct {
	SubmitOrder          commands.SubmitOrderCommandHandler
	RegisterDriver       commands.RegisterDriverCommandHandler
	AssignOrder          commands.AssignOrderCommandHandler
	StartDelivery        commands.StartDeliveryCommandHandler
	CompleteDelivery     commands.CompleteDeliveryCommandHandler
	DispatchPending      commands.DispatchPendingCommandHandler
	UpdateDriverLocation commands.UpdateDriverLocationCommandHandler
	RateDriver           commands.RateDriverCommandHandler

	GetOrderStatus   queries.GetOrderStatusQueryHandler
	GetPendingOrders queries.GetPendingOrdersQueryHandler
	GetOrderHistory  queries.GetOrderHistoryQueryHandler
	GetDrivers       queries.GetDriversQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// RegisterRoutes mounts every endpoint on e. submitLimiter, when not nil,
// guards order submission only.
func (s *Server) RegisterRoutes(e *echo.Echo, submitLimiter echo.MiddlewareFunc) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	submit := []echo.MiddlewareFunc{}
	if submitLimiter != nil {
		submit = append(submit, submitLimiter)
	}
	api.POST("/orders", s.SubmitOrder, submit...)
	api.GET("/orders/pending", s.GetPendingOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.POST("/orders/:id/assignment", s.AssignOrder)
	api.POST("/orders/:id/pickup", s.StartDelivery)
	api.POST("/orders/:id/delivery", s.CompleteDelivery)
	api.POST("/dispatch", s.DispatchPending)

	api.GET("/drivers", s.GetDrivers)
	api.POST("/drivers", s.RegisterDriver)
	api.PUT("/drivers/:id/location", s.UpdateDriverLocation)
	api.POST("/drivers/:id/ratings", s.RateDriver)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// SubmitOrder handles POST /api/v1/orders.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSubmitOrderCommand(req.toInput())
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	id, err := s.h.SubmitOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreatedResponse{ID: id})
}

// GetPendingOrders handles GET /api/v1/orders/pending.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	pending, err := s.h.GetPendingOrders.Handle(ctx.Request().Context(), queries.NewGetPendingOrdersQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderResponse, len(pending))
	for i, o := range pending {
		response[i] = newOrderResponse(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := order.ParseID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderStatusQuery(id)
	if err != nil {
		return respondError(ctx, err)
	}

	o, err := s.h.GetOrderStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newOrderResponse(o))
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	id, err := order.ParseID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderHistoryQuery(id)
	if err != nil {
		return respondError(ctx, err)
	}

	events, err := s.h.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]StatusEventResponse, len(events))
	for i, ev := range events {
		response[i] = StatusEventResponse{
			Status:     ev.Status.String(),
			DriverID:   uuidString(ev.DriverID),
			OccurredAt: ev.OccurredAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// AssignOrder handles POST /api/v1/orders/:id/assignment.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, driverID, err := orderAndDriver(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, driverID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.AssignOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StartDelivery handles POST /api/v1/orders/:id/pickup.
func (s *Server) StartDelivery(ctx echo.Context) error {
	orderID, driverID, err := orderAndDriver(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewStartDeliveryCommand(orderID, driverID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.StartDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/orders/:id/delivery.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	orderID, driverID, err := orderAndDriver(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, driverID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.CompleteDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DispatchPending handles POST /api/v1/dispatch.
func (s *Server) DispatchPending(ctx echo.Context) error {
	assigned, err := s.h.DispatchPending.Handle(ctx.Request().Context(), commands.NewDispatchPendingCommand())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, DispatchResultResponse{Assigned: assigned})
}

// GetDrivers handles GET /api/v1/drivers.
func (s *Server) GetDrivers(ctx echo.Context) error {
	drivers, err := s.h.GetDrivers.Handle(ctx.Request().Context(), queries.NewGetDriversQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]DriverResponse, len(drivers))
	for i, d := range drivers {
		response[i] = newDriverResponse(d)
	}
	return ctx.JSON(http.StatusOK, response)
}

// RegisterDriver handles POST /api/v1/drivers.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var req NewDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var driverID *kernel.UUID
	if req.ID != "" {
		id, err := kernel.UUIDFromString(req.ID)
		if err != nil {
			return badRequest(ctx, "Invalid driver id")
		}
		driverID = &id
	}

	var location *kernel.Location
	if req.Location != nil {
		loc, err := kernel.NewLocation(req.Location.X, req.Location.Y)
		if err != nil {
			return badRequest(ctx, "Invalid driver location: "+err.Error())
		}
		location = &loc
	}

	cmd, err := commands.NewRegisterDriverCommand(driverID, req.Name, req.Vehicle, location)
	if err != nil {
		return badRequest(ctx, "Invalid driver data: "+err.Error())
	}
	if err = s.h.RegisterDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, DriverCreatedResponse{ID: cmd.DriverID().String()})
}

// UpdateDriverLocation handles PUT /api/v1/drivers/:id/location.
func (s *Server) UpdateDriverLocation(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	var req LocationDTO
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	location, err := kernel.NewLocation(req.X, req.Y)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}

	cmd, err := commands.NewUpdateDriverLocationCommand(driverID, location)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.UpdateDriverLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RateDriver handles POST /api/v1/drivers/:id/ratings.
func (s *Server) RateDriver(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	var req RatingRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRateDriverCommand(driverID, req.Rating)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.RateDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type paramError string

func (e paramError) Error() string { return string(e) }

func orderAndDriver(ctx echo.Context) (order.ID, kernel.UUID, error) {
	orderID, err := order.ParseID(ctx.Param("id"))
	if err != nil {
		return 0, kernel.UUID{}, paramError("Invalid order id")
	}

	var req DriverRefRequest
	if err = ctx.Bind(&req); err != nil {
		return 0, kernel.UUID{}, paramError("Invalid request body")
	}
	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return 0, kernel.UUID{}, paramError("Invalid driver id")
	}
	return orderID, driverID, nil
}
