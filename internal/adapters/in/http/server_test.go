package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/payment"
	"dispatch/internal/core/application/dispatch"
	"dispatch/internal/core/application/intake"
	"dispatch/internal/core/application/tracking"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testAPI struct {
	t *testing.T
	e *echo.Echo
}

func newTestAPI(t *testing.T, capacity int, cfg httpadapter.RouterConfig) testAPI {
	t.Helper()

	queue, err := intake.NewOrderQueue(capacity, order.NewSequence())
	require.NoError(t, err)
	tracker := tracking.NewOrderTracker(zap.NewNop())
	history := memory.NewStatusHistoryRepository()
	require.NoError(t, tracker.Attach(tracking.NewHistoryRecorder(history, nil)))

	payments, err := payment.NewSimulator(payment.DefaultLimits(), zap.NewNop())
	require.NoError(t, err)
	coordinator, err := dispatch.NewCoordinator(queue, tracker, services.NewDriverMatcher(),
		payments, notify.NewLogNotifier(zap.NewNop()), zap.NewNop())
	require.NoError(t, err)

	server := httpadapter.NewServer(httpadapter.Handlers{
		SubmitOrder:          commands.NewSubmitOrderCommandHandler(coordinator),
		RegisterDriver:       commands.NewRegisterDriverCommandHandler(coordinator),
		AssignOrder:          commands.NewAssignOrderCommandHandler(coordinator),
		StartDelivery:        commands.NewStartDeliveryCommandHandler(coordinator),
		CompleteDelivery:     commands.NewCompleteDeliveryCommandHandler(coordinator),
		DispatchPending:      commands.NewDispatchPendingCommandHandler(coordinator),
		UpdateDriverLocation: commands.NewUpdateDriverLocationCommandHandler(coordinator),
		RateDriver:           commands.NewRateDriverCommandHandler(coordinator),
		GetOrderStatus:       queries.NewGetOrderStatusQueryHandler(coordinator),
		GetPendingOrders:     queries.NewGetPendingOrdersQueryHandler(coordinator),
		GetOrderHistory:      queries.NewGetOrderHistoryQueryHandler(coordinator, history),
		GetDrivers:           queries.NewGetDriversQueryHandler(coordinator),
	})

	e, err := httpadapter.NewRouter(server, cfg, zap.NewNop())
	require.NoError(t, err)
	return testAPI{t: t, e: e}
}

func (a testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func validOrder(x, y float64) map[string]any {
	return map[string]any{
		"customerId": 42,
		"address": map[string]any{
			"street":   "12 Main St",
			"zipCode":  "94107",
			"location": map[string]any{"x": x, "y": y},
		},
		"email":         "ann@example.com",
		"paymentMethod": "card",
		"items": []map[string]any{
			{"name": "Margherita", "unitPrice": "9.50", "quantity": 2},
		},
	}
}

func newDriver(name string, x, y float64) map[string]any {
	return map[string]any{
		"name":     name,
		"vehicle":  "bike",
		"location": map[string]any{"x": x, "y": y},
	}
}

var defaultRouter = httpadapter.RouterConfig{SubmitRatePerSecond: 1000, SubmitBurst: 1000}

func TestServer_Health(t *testing.T) {
	api := newTestAPI(t, 10, defaultRouter)

	rec := api.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestServer_SubmitOrder(t *testing.T) {
	t.Run("should admit an order and keep it pending without drivers", func(t *testing.T) {
		// Arrange
		api := newTestAPI(t, 10, defaultRouter)

		// Act
		rec := api.do(http.MethodPost, "/api/v1/orders", validOrder(1, 1))

		// Assert
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		created := decode[httpadapter.OrderCreatedResponse](t, rec)
		assert.Equal(t, order.ID(1), created.ID)

		pending := decode[[]httpadapter.OrderResponse](t, api.do(http.MethodGet, "/api/v1/orders/pending", nil))
		require.Len(t, pending, 1)
		assert.Equal(t, "placed", pending[0].Status)
		assert.Equal(t, "19.00", pending[0].Total)
	})

	t.Run("should list every business rule violation", func(t *testing.T) {
		// Arrange
		api := newTestAPI(t, 10, defaultRouter)
		body := validOrder(1, 1)
		body["email"] = "not-an-email"
		body["items"] = []map[string]any{}

		// Act
		rec := api.do(http.MethodPost, "/api/v1/orders", body)

		// Assert
		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decode[httpadapter.ErrorResponse](t, rec)
		assert.Contains(t, resp.Message, "email")
		assert.Contains(t, resp.Message, "item")
	})

	t.Run("should reject a body that breaks the contract", func(t *testing.T) {
		// Arrange
		api := newTestAPI(t, 10, defaultRouter)
		body := validOrder(1, 1)
		body["customerId"] = "forty-two"

		// Act
		rec := api.do(http.MethodPost, "/api/v1/orders", body)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should answer 503 when the queue is full", func(t *testing.T) {
		// Arrange
		api := newTestAPI(t, 1, defaultRouter)
		require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/orders", validOrder(1, 1)).Code)

		// Act
		rec := api.do(http.MethodPost, "/api/v1/orders", validOrder(2, 2))

		// Assert
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("should answer 409 when payment is declined", func(t *testing.T) {
		// Arrange
		api := newTestAPI(t, 10, defaultRouter)
		body := validOrder(1, 1)
		body["paymentMethod"] = "cash"
		body["items"] = []map[string]any{{"name": "Catering", "unitPrice": "500.00", "quantity": 1}}

		// Act
		rec := api.do(http.MethodPost, "/api/v1/orders", body)

		// Assert
		assert.Equal(t, http.StatusConflict, rec.Code)
		pending := decode[[]httpadapter.OrderResponse](t, api.do(http.MethodGet, "/api/v1/orders/pending", nil))
		assert.Empty(t, pending)
	})

	t.Run("should throttle bursts of submissions", func(t *testing.T) {
		// Arrange
		api := newTestAPI(t, 10, httpadapter.RouterConfig{SubmitRatePerSecond: 0.001, SubmitBurst: 1})
		require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/orders", validOrder(1, 1)).Code)

		// Act
		rec := api.do(http.MethodPost, "/api/v1/orders", validOrder(1, 1))

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/orders/pending", nil).Code)
	})
}

func TestServer_DeliveryLifecycle(t *testing.T) {
	// Arrange
	api := newTestAPI(t, 10, defaultRouter)
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/orders", validOrder(1, 1)).Code)

	// Act: registering a nearby driver dispatches the pending order.
	rec := api.do(http.MethodPost, "/api/v1/drivers", newDriver("Dana", 2, 2))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	driverID := decode[httpadapter.DriverCreatedResponse](t, rec).ID

	// Assert
	got := decode[httpadapter.OrderResponse](t, api.do(http.MethodGet, "/api/v1/orders/1", nil))
	assert.Equal(t, "accepted", got.Status)
	require.NotNil(t, got.DriverID)
	assert.Equal(t, driverID, *got.DriverID)

	ref := map[string]any{"driverId": driverID}
	require.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/api/v1/orders/1/pickup", ref).Code)

	got = decode[httpadapter.OrderResponse](t, api.do(http.MethodGet, "/api/v1/orders/1", nil))
	assert.Equal(t, "in_delivery", got.Status)
	assert.NotNil(t, got.EstimatedDelivery)

	require.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/api/v1/orders/1/delivery", ref).Code)

	history := decode[[]httpadapter.StatusEventResponse](t, api.do(http.MethodGet, "/api/v1/orders/1/history", nil))
	statuses := make([]string, 0, len(history))
	for _, ev := range history {
		statuses = append(statuses, ev.Status)
	}
	assert.Equal(t, []string{"accepted", "in_delivery", "delivered"}, statuses)

	drivers := decode[[]httpadapter.DriverResponse](t, api.do(http.MethodGet, "/api/v1/drivers", nil))
	require.Len(t, drivers, 1)
	assert.True(t, drivers[0].Available)
	assert.Nil(t, drivers[0].CurrentOrderID)

	// Completing twice is a conflict.
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/v1/orders/1/delivery", ref).Code)
}

func TestServer_AssignOrder(t *testing.T) {
	t.Run("should assign a far driver manually", func(t *testing.T) {
		// Arrange
		api := newTestAPI(t, 10, defaultRouter)
		rec := api.do(http.MethodPost, "/api/v1/drivers", newDriver("Far", 80, 80))
		driverID := decode[httpadapter.DriverCreatedResponse](t, rec).ID
		require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/orders", validOrder(0, 0)).Code)

		// Act
		rec = api.do(http.MethodPost, "/api/v1/orders/1/assignment", map[string]any{"driverId": driverID})

		// Assert
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
		got := decode[httpadapter.OrderResponse](t, api.do(http.MethodGet, "/api/v1/orders/1", nil))
		assert.Equal(t, "accepted", got.Status)
	})

	t.Run("should answer 409 for a busy driver", func(t *testing.T) {
		// Arrange
		api := newTestAPI(t, 10, defaultRouter)
		rec := api.do(http.MethodPost, "/api/v1/drivers", newDriver("Near", 0, 0))
		driverID := decode[httpadapter.DriverCreatedResponse](t, rec).ID
		require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/orders", validOrder(1, 0)).Code)
		require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/orders", validOrder(2, 0)).Code)

		// Act
		rec = api.do(http.MethodPost, "/api/v1/orders/2/assignment", map[string]any{"driverId": driverID})

		// Assert
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should answer 404 for an unknown driver", func(t *testing.T) {
		// Arrange
		api := newTestAPI(t, 10, defaultRouter)
		require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/orders", validOrder(1, 0)).Code)

		// Act
		rec := api.do(http.MethodPost, "/api/v1/orders/1/assignment",
			map[string]any{"driverId": "6f1c1e0a-8a43-4c4b-9d0e-1a2b3c4d5e6f"})

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_GetOrder(t *testing.T) {
	api := newTestAPI(t, 10, defaultRouter)

	t.Run("should answer 404 for an unknown order", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/api/v1/orders/77", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, http.StatusNotFound, decode[httpadapter.ErrorResponse](t, rec).Code)
	})

	t.Run("should reject a malformed id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/v1/orders/abc", nil).Code)
		assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/v1/orders/0", nil).Code)
	})

	t.Run("should answer 404 for unknown routes", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/api/v1/nowhere", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_Drivers(t *testing.T) {
	t.Run("should update location and rating", func(t *testing.T) {
		// Arrange
		api := newTestAPI(t, 10, defaultRouter)
		rec := api.do(http.MethodPost, "/api/v1/drivers", map[string]any{"name": "Lee", "vehicle": "car"})
		require.Equal(t, http.StatusCreated, rec.Code)
		driverID := decode[httpadapter.DriverCreatedResponse](t, rec).ID

		// Act
		locRec := api.do(http.MethodPut, "/api/v1/drivers/"+driverID+"/location", map[string]any{"x": 4, "y": 3})
		rateRec := api.do(http.MethodPost, "/api/v1/drivers/"+driverID+"/ratings", map[string]any{"rating": 4})

		// Assert
		assert.Equal(t, http.StatusNoContent, locRec.Code)
		assert.Equal(t, http.StatusNoContent, rateRec.Code)
		drivers := decode[[]httpadapter.DriverResponse](t, api.do(http.MethodGet, "/api/v1/drivers", nil))
		require.Len(t, drivers, 1)
		require.NotNil(t, drivers[0].Location)
		assert.InDelta(t, 4.0, drivers[0].Location.X, 1e-9)
		require.NotNil(t, drivers[0].AverageRating)
		assert.InDelta(t, 4.0, *drivers[0].AverageRating, 1e-9)
		assert.Equal(t, 1, drivers[0].RatingCount)
	})

	t.Run("should reject a rating out of range", func(t *testing.T) {
		api := newTestAPI(t, 10, defaultRouter)
		rec := api.do(http.MethodPost, "/api/v1/drivers", newDriver("Lee", 0, 0))
		driverID := decode[httpadapter.DriverCreatedResponse](t, rec).ID

		assert.Equal(t, http.StatusBadRequest,
			api.do(http.MethodPost, "/api/v1/drivers/"+driverID+"/ratings", map[string]any{"rating": 9}).Code)
	})

	t.Run("should answer 404 for an unknown driver", func(t *testing.T) {
		api := newTestAPI(t, 10, defaultRouter)

		rec := api.do(http.MethodPut, "/api/v1/drivers/6f1c1e0a-8a43-4c4b-9d0e-1a2b3c4d5e6f/location",
			map[string]any{"x": 1, "y": 1})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should reject a driver without a name", func(t *testing.T) {
		api := newTestAPI(t, 10, defaultRouter)

		rec := api.do(http.MethodPost, "/api/v1/drivers", map[string]any{"name": " ", "vehicle": "car"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_DispatchPending(t *testing.T) {
	// Arrange
	api := newTestAPI(t, 10, defaultRouter)
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/orders", validOrder(1, 1)).Code)

	// Act
	rec := api.do(http.MethodPost, "/api/v1/dispatch", nil)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[httpadapter.DispatchResultResponse](t, rec).Assigned)
}
