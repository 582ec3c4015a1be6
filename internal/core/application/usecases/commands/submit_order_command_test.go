package commands_test

import (
	"context"
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validSubmitInput() commands.SubmitOrderInput {
	return commands.SubmitOrderInput{
		CustomerID:    42,
		Street:        "12 Main St",
		ZipCode:       "94107",
		X:             3,
		Y:             4,
		Email:         "ann@example.com",
		PaymentMethod: "card",
		Items: []commands.SubmitOrderItem{
			{Name: "Margherita", UnitPrice: "9.50", Quantity: 2},
			{Name: "Cola", UnitPrice: "1.25", Quantity: 1},
		},
	}
}

func TestNewSubmitOrderCommand(t *testing.T) {
	t.Run("should build the order from raw input", func(t *testing.T) {
		cmd, err := commands.NewSubmitOrderCommand(validSubmitInput())

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		o := cmd.Order()
		require.NoError(t, o.Validate())
		assert.Equal(t, int64(42), o.CustomerID())
		assert.Equal(t, order.PaymentCard, o.PaymentMethod())
		assert.True(t, decimal.RequireFromString("20.25").Equal(o.Total()))
		assert.Equal(t, "12 Main St, 94107", o.Address().String())
	})

	t.Run("should build a fresh order each time", func(t *testing.T) {
		cmd, err := commands.NewSubmitOrderCommand(validSubmitInput())
		require.NoError(t, err)

		assert.NotSame(t, cmd.Order(), cmd.Order())
	})

	t.Run("should report address and item problems together", func(t *testing.T) {
		in := validSubmitInput()
		in.ZipCode = "x"
		in.Items = []commands.SubmitOrderItem{
			{Name: "", UnitPrice: "1", Quantity: 1},
			{Name: "Soup", UnitPrice: "cheap", Quantity: 1},
		}

		_, err := commands.NewSubmitOrderCommand(in)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "zip code")
		assert.Contains(t, err.Error(), "item 0")
		assert.Contains(t, err.Error(), "item 1")
	})

	t.Run("should leave business rules to admission", func(t *testing.T) {
		in := validSubmitInput()
		in.CustomerID = 0
		in.Email = "nope"
		in.Items = nil

		cmd, err := commands.NewSubmitOrderCommand(in)

		require.NoError(t, err)
		require.ErrorIs(t, cmd.Order().Validate(), errs.ErrOrderInvalid)
	})

	t.Run("should reject zero-value command", func(t *testing.T) {
		require.ErrorIs(t, commands.SubmitOrderCommand{}.Validate(), commands.ErrSubmitOrderCommandIsNotConstructed)
	})
}

func TestSubmitOrderCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("should submit and return the admitted id", func(t *testing.T) {
		// Arrange
		coordinator := &MockCoordinator{}
		handler := commands.NewSubmitOrderCommandHandler(coordinator)
		cmd, err := commands.NewSubmitOrderCommand(validSubmitInput())
		require.NoError(t, err)
		coordinator.On("SubmitOrder", ctx, mock.AnythingOfType("*order.Order")).Return(order.ID(7), nil).Once()

		// Act
		id, err := handler.Handle(ctx, cmd)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.ID(7), id)
		coordinator.AssertExpectations(t)
	})

	t.Run("should propagate coordinator errors", func(t *testing.T) {
		coordinator := &MockCoordinator{}
		handler := commands.NewSubmitOrderCommandHandler(coordinator)
		cmd, err := commands.NewSubmitOrderCommand(validSubmitInput())
		require.NoError(t, err)
		failure := errs.NewProcessingFailedErrorWithCause("submit order", errors.New("card declined"))
		coordinator.On("SubmitOrder", ctx, mock.Anything).Return(order.ID(0), failure)

		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrOrderProcessingFailed)
	})

	t.Run("should reject unconstructed command without calling the coordinator", func(t *testing.T) {
		coordinator := &MockCoordinator{}
		handler := commands.NewSubmitOrderCommandHandler(coordinator)

		_, err := handler.Handle(ctx, commands.SubmitOrderCommand{})

		require.ErrorIs(t, err, commands.ErrSubmitOrderCommandIsNotConstructed)
		coordinator.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
	})
}
