package queries

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
)

// GetDriversQueryHandler reads driver snapshots from the coordinator. The
// snapshots are copies, so the read model never aliases live drivers.
//
// Example:
//
//	handler := NewGetDriversQueryHandler(coordinator)
//	drivers, err := handler.Handle(ctx, NewGetDriversQuery())
//	if err != nil {
//	    return err
//	}
//	for _, d := range drivers {
//	    fmt.Printf("%s available=%t ratings=%d\n", d.Name, d.Available, d.RatingCount)
//	}
type GetDriversQueryHandler struct {
	drivers DriverLister
}

// NewGetDriversQueryHandler creates a handler over a DriverLister.
func NewGetDriversQueryHandler(drivers DriverLister) GetDriversQueryHandler {
	return GetDriversQueryHandler{drivers: drivers}
}

// Handle lists available drivers first, then busy ones.
func (h GetDriversQueryHandler) Handle(_ context.Context, query GetDriversQuery) ([]GetDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	available := h.drivers.AvailableDrivers()
	busy := h.drivers.BusyDrivers()

	result := make([]GetDriversQueryResponse, 0, len(available)+len(busy))
	for _, d := range available {
		result = append(result, newDriverResponse(d))
	}
	for _, d := range busy {
		result = append(result, newDriverResponse(d))
	}
	return result, nil
}

func newDriverResponse(d *driver.Driver) GetDriversQueryResponse {
	resp := GetDriversQueryResponse{
		ID:          d.ID(),
		Name:        d.Name(),
		Vehicle:     d.Vehicle(),
		RatingCount: d.Ratings().Len(),
		Available:   d.IsAvailable(),
	}
	if loc, ok := d.Location(); ok {
		resp.Location = &loc
	}
	if avg, ok := d.AverageRating(); ok {
		resp.AverageRating = &avg
	}
	if current, ok := d.CurrentOrder(); ok {
		resp.CurrentOrder = &current
	}
	return resp
}
