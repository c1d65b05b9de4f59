package report

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/MajjiR/zingoStats/internal/config"
	"github.com/MajjiR/zingoStats/internal/database"
	"github.com/MajjiR/zingoStats/internal/entity"
	"github.com/MajjiR/zingoStats/internal/export"
	"github.com/MajjiR/zingoStats/internal/report"
	repo "github.com/MajjiR/zingoStats/internal/repository/report"
	service "github.com/MajjiR/zingoStats/internal/service/report"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) (*echo.Echo, *database.Connections) {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for _, model := range []any{
		(*entity.Restaurant)(nil),
		(*entity.Courier)(nil),
		(*entity.Order)(nil),
	} {
		_, err := db.NewCreateTable().Model(model).Exec(ctx)
		require.NoError(t, err)
	}

	conns := &database.Connections{Writer: db, Reader: db}
	svc := service.NewService(service.Params{
		Repository: repo.NewRepository(conns),
		Config:     config.Config{},
		Logger:     zap.NewNop(),
	})

	e := echo.New()
	Register(e, NewHandler(svc))
	return e, conns
}

func seedDelivered(t *testing.T, conns *database.Connections) {
	t.Helper()
	ctx := context.Background()

	restaurant := entity.Restaurant{ID: 1, Name: "Cafe X"}
	courier := entity.Courier{ID: 1, Name: "Ali"}
	_, err := conns.Writer.NewInsert().Model(&restaurant).Exec(ctx)
	require.NoError(t, err)
	_, err = conns.Writer.NewInsert().Model(&courier).Exec(ctx)
	require.NoError(t, err)

	created, err := time.Parse(report.DateLayout, "2024-03-10")
	require.NoError(t, err)
	orders := []entity.Order{
		{RestaurantID: 1, CourierID: 1, OrderAmount: 100, DeliveryCharge: 10, AdditionalCharge: 5, Status: entity.StatusDelivered, CreatedAt: created.Add(9 * time.Hour).UTC()},
		{RestaurantID: 1, CourierID: 1, OrderAmount: 250, DeliveryCharge: 25, AdditionalCharge: 0, Status: entity.StatusDelivered, CreatedAt: created.Add(20 * time.Hour).UTC()},
		{RestaurantID: 1, CourierID: 1, OrderAmount: 999, DeliveryCharge: 99, AdditionalCharge: 9, Status: "cancelled", CreatedAt: created.Add(12 * time.Hour).UTC()},
	}
	for i := range orders {
		_, err := conns.Writer.NewInsert().Model(&orders[i]).Exec(ctx)
		require.NoError(t, err)
	}
}

func doGET(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestOverallEndpoint(t *testing.T) {
	e, conns := newTestServer(t)
	seedDelivered(t, conns)

	t.Run("single day", func(t *testing.T) {
		rec := doGET(e, "/reports/overall?start=2024-03-10")
		require.Equal(t, http.StatusOK, rec.Code)

		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.True(t, env.Success)
		assert.Equal(t, "for 2024-03-10", env.Meta["range"])
		assert.NotContains(t, env.Meta, "message")

		var data struct {
			TotalOrders            int64   `json:"total_orders"`
			TotalOrderAmount       float64 `json:"total_order_amount"`
			TotalRestaurantRevenue float64 `json:"total_restaurant_revenue"`
			TotalDeliveryCharge    float64 `json:"total_delivery_charge"`
			TotalAdditionalCharge  float64 `json:"total_additional_charge"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, int64(2), data.TotalOrders)
		assert.InDelta(t, 350, data.TotalOrderAmount, 1e-6)
		assert.InDelta(t, 35, data.TotalDeliveryCharge, 1e-6)
		assert.InDelta(t, 5, data.TotalAdditionalCharge, 1e-6)
		assert.InDelta(t, 310, data.TotalRestaurantRevenue, 1e-6)
	})

	t.Run("empty range reports no data", func(t *testing.T) {
		rec := doGET(e, "/reports/overall?start=2030-01-01")
		require.Equal(t, http.StatusOK, rec.Code)

		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.True(t, env.Success)
		assert.Equal(t, "no data found for 2030-01-01", env.Meta["message"])
	})

	t.Run("bad date parameter", func(t *testing.T) {
		rec := doGET(e, "/reports/overall?start=10-03-2024")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.False(t, env.Success)
		require.NotNil(t, env.Error)
		assert.Equal(t, "bad_request", env.Error.Kind)
	})

	t.Run("end without start is rejected", func(t *testing.T) {
		rec := doGET(e, "/reports/overall?end=2024-03-10")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRestaurantsEndpoint(t *testing.T) {
	e, conns := newTestServer(t)
	seedDelivered(t, conns)

	rec := doGET(e, "/reports/restaurants")
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)

	var rows []struct {
		RestaurantName   string  `json:"restaurant_name"`
		TotalOrders      int64   `json:"total_orders"`
		TotalOrderAmount float64 `json:"total_order_amount"`
		TotalRevenue     float64 `json:"total_revenue"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Cafe X", rows[0].RestaurantName)
	assert.Equal(t, int64(2), rows[0].TotalOrders)
	assert.InDelta(t, 310, rows[0].TotalRevenue, 1e-6)
}

func TestCouriersEndpoint(t *testing.T) {
	e, conns := newTestServer(t)
	seedDelivered(t, conns)

	rec := doGET(e, "/reports/couriers?start=2024-03-01&end=2024-03-31")
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "from 2024-03-01 to 2024-03-31", env.Meta["range"])

	var rows []struct {
		DeliveryManName  string  `json:"delivery_man_name"`
		TotalDeliveries  int64   `json:"total_deliveries"`
		TotalOrderAmount float64 `json:"total_order_amount"`
		TotalDeliveryFee float64 `json:"total_delivery_fee"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Ali", rows[0].DeliveryManName)
	assert.Equal(t, int64(2), rows[0].TotalDeliveries)
	assert.InDelta(t, 350, rows[0].TotalOrderAmount, 1e-6)
	assert.InDelta(t, 35, rows[0].TotalDeliveryFee, 1e-6)
}

func TestCouriersEndpointEmpty(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doGET(e, "/reports/couriers")
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "no data found for all time", env.Meta["message"])

	var rows []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Empty(t, rows)
}

func TestExportEndpoint(t *testing.T) {
	e, conns := newTestServer(t)
	seedDelivered(t, conns)

	t.Run("download", func(t *testing.T) {
		rec := doGET(e, "/reports/restaurants/export?start=2024-03-10")
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, export.XLSXContentType, rec.Header().Get(echo.HeaderContentType))
		assert.Equal(t, `attachment; filename="restaurant_stats_2024-03-10.xlsx"`,
			rec.Header().Get(echo.HeaderContentDisposition))

		f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Sheet1")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, report.RestaurantColumns, rows[0])
		assert.Equal(t, "Cafe X", rows[1][0])
	})

	t.Run("unknown report", func(t *testing.T) {
		rec := doGET(e, "/reports/weekly/export")
		require.Equal(t, http.StatusNotFound, rec.Code)

		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.False(t, env.Success)
		require.NotNil(t, env.Error)
		assert.Equal(t, "not_found", env.Error.Kind)
	})

	t.Run("bad date parameter", func(t *testing.T) {
		rec := doGET(e, "/reports/overall/export?start=bogus")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
