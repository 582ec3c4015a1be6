package cmd_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"dispatch/cmd"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestNewCompositionRoot(t *testing.T) {
	t.Run("should wire an in-memory service end to end", func(t *testing.T) {
		root, err := cmd.NewCompositionRoot(cmd.DefaultConfig(), nil, zap.NewNop())
		require.NoError(t, err)
		ctx := context.Background()

		submit, err := commands.NewSubmitOrderCommand(commands.SubmitOrderInput{
			CustomerID: 1, Street: "5 Pier Ave", ZipCode: "10001", X: 1, Y: 1,
			Email: "joe@example.com", PaymentMethod: "wallet",
			Items: []commands.SubmitOrderItem{{Name: "Tacos", UnitPrice: "8.00", Quantity: 3}},
		})
		require.NoError(t, err)
		id, err := root.CreateSubmitOrderCommandHandler().Handle(ctx, submit)
		require.NoError(t, err)

		loc := kernel.MustNewLocation(0, 0)
		register, err := commands.NewRegisterDriverCommand(nil, "Sam", "van", &loc)
		require.NoError(t, err)
		require.NoError(t, root.CreateRegisterDriverCommandHandler().Handle(ctx, register))

		query, err := queries.NewGetOrderHistoryQuery(id)
		require.NoError(t, err)
		history, err := root.CreateGetOrderHistoryQueryHandler().Handle(ctx, query)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "accepted", history[0].Status.String())
	})

	t.Run("should require a database for postgres history", func(t *testing.T) {
		cfg := cmd.DefaultConfig()
		cfg.HistoryStore = cmd.HistoryStorePostgres

		_, err := cmd.NewCompositionRoot(cfg, nil, nil)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should continue order ids after the persisted history", func(t *testing.T) {
		// Arrange
		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = sqlDB.Close() })
		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
			SkipDefaultTransaction: true,
			Logger:                 logger.Discard,
		})
		require.NoError(t, err)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(MAX(order_id), 0) FROM "order_status_events"`)).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(41))

		cfg := cmd.DefaultConfig()
		cfg.HistoryStore = cmd.HistoryStorePostgres

		// Act
		root, err := cmd.NewCompositionRoot(cfg, gormDB, nil)
		require.NoError(t, err)
		submit, err := commands.NewSubmitOrderCommand(commands.SubmitOrderInput{
			CustomerID: 1, Street: "5 Pier Ave", ZipCode: "10001", X: 1, Y: 1,
			Email: "joe@example.com", PaymentMethod: "cash",
			Items: []commands.SubmitOrderItem{{Name: "Soup", UnitPrice: "6.50", Quantity: 1}},
		})
		require.NoError(t, err)
		id, err := root.CreateSubmitOrderCommandHandler().Handle(context.Background(), submit)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "42", id.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should build the http server and jobs", func(t *testing.T) {
		root, err := cmd.NewCompositionRoot(cmd.DefaultConfig(), nil, nil)
		require.NoError(t, err)

		e, err := root.CreateHTTPServer()
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", strings.NewReader("")))
		assert.Equal(t, http.StatusOK, rec.Code)

		manager, err := root.CreateJobManager()
		require.NoError(t, err)
		assert.NotNil(t, manager)
	})
}
