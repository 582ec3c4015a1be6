package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriversQueryIsNotConstructed = errors.New(
	"GetDriversQuery must be created via NewGetDriversQuery constructor",
)

// GetDriversQuery lists every registered driver: available ones first, then
// busy ones, each group in registration order.
type GetDriversQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDriversQuery creates a query for the whole driver pool.
// This is a parameterless query.
func NewGetDriversQuery() GetDriversQuery {
	return GetDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDriversQueryIsNotConstructed if validation fails.
func (q GetDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetDriversQueryIsNotConstructed)
}

// GetDriversQueryResponse is the read model of one driver. Optional values
// are nil when unknown.
type GetDriversQueryResponse struct {
	ID            kernel.UUID
	Name          string
	Vehicle       string
	Location      *kernel.Location
	AverageRating *float64
	RatingCount   int
	Available     bool
	CurrentOrder  *order.ID
}
