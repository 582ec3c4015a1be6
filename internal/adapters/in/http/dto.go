package http

import (
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

type LocationDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type AddressDTO struct {
	Street   string      `json:"street"`
	ZipCode  string      `json:"zipCode"`
	Location LocationDTO `json:"location"`
}

type LineItemDTO struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

type NewOrderRequest struct {
	CustomerID    int64         `json:"customerId"`
	Address       AddressDTO    `json:"address"`
	Email         string        `json:"email"`
	PaymentMethod string        `json:"paymentMethod"`
	Items         []LineItemDTO `json:"items"`
}

func (r NewOrderRequest) toInput() commands.SubmitOrderInput {
	items := make([]commands.SubmitOrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, commands.SubmitOrderItem{Name: it.Name, UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	return commands.SubmitOrderInput{
		CustomerID:    r.CustomerID,
		Street:        r.Address.Street,
		ZipCode:       r.Address.ZipCode,
		X:             r.Address.Location.X,
		Y:             r.Address.Location.Y,
		Email:         r.Email,
		PaymentMethod: r.PaymentMethod,
		Items:         items,
	}
}

type OrderCreatedResponse struct {
	ID order.ID `json:"id"`
}

type OrderResponse struct {
	ID                order.ID   `json:"id"`
	CustomerID        int64      `json:"customerId"`
	Status            string     `json:"status"`
	Total             string     `json:"total"`
	Address           AddressDTO `json:"address"`
	DriverID          *string    `json:"driverId,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

func newOrderResponse(o queries.GetOrderStatusQueryResponse) OrderResponse {
	return OrderResponse{
		ID:                o.ID,
		CustomerID:        o.CustomerID,
		Status:            o.Status.String(),
		Total:             o.Total.StringFixed(2),
		Address:           newAddressDTO(o.Address),
		DriverID:          uuidString(o.DriverID),
		EstimatedDelivery: o.EstimatedDelivery,
	}
}

type StatusEventResponse struct {
	Status     string    `json:"status"`
	DriverID   *string   `json:"driverId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type DriverRefRequest struct {
	DriverID string `json:"driverId"`
}

type NewDriverRequest struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Vehicle  string       `json:"vehicle"`
	Location *LocationDTO `json:"location"`
}

type DriverCreatedResponse struct {
	ID string `json:"id"`
}

type DriverResponse struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Vehicle        string       `json:"vehicle"`
	Location       *LocationDTO `json:"location,omitempty"`
	AverageRating  *float64     `json:"averageRating,omitempty"`
	RatingCount    int          `json:"ratingCount"`
	Available      bool         `json:"available"`
	CurrentOrderID *order.ID    `json:"currentOrderId,omitempty"`
}

func newDriverResponse(d queries.GetDriversQueryResponse) DriverResponse {
	resp := DriverResponse{
		ID:             d.ID.String(),
		Name:           d.Name,
		Vehicle:        d.Vehicle,
		AverageRating:  d.AverageRating,
		RatingCount:    d.RatingCount,
		Available:      d.Available,
		CurrentOrderID: d.CurrentOrder,
	}
	if d.Location != nil {
		resp.Location = &LocationDTO{X: d.Location.X(), Y: d.Location.Y()}
	}
	return resp
}

type RatingRequest struct {
	Rating int `json:"rating"`
}

type DispatchResultResponse struct {
	Assigned int `json:"assigned"`
}

func newAddressDTO(a kernel.Address) AddressDTO {
	return AddressDTO{
		Street:   a.Street(),
		ZipCode:  a.ZipCode(),
		Location: LocationDTO{X: a.Location().X(), Y: a.Location().Y()},
	}
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
