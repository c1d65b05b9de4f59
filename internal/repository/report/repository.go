package report

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/MajjiR/zingoStats/internal/database"
	"github.com/MajjiR/zingoStats/internal/entity"
	"github.com/MajjiR/zingoStats/internal/report"
)

var repoTracer = otel.Tracer("github.com/MajjiR/zingoStats/repository/report")

// Repository runs the aggregation queries against the order store.
// All three queries consider delivered orders only, and every date
// boundary is passed as a bound parameter, never spliced into SQL.
type Repository struct {
	reader *bun.DB
}

// NewRepository wires a repository over the read connection.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{reader: conns.Reader}
}

// Overall returns the single summary row over delivered orders in
// range. COALESCE keeps the sums at zero when nothing matched, so an
// empty range still yields a well-formed row.
func (r *Repository) Overall(ctx context.Context, rng report.DateRange) (report.OverallStats, error) {
	ctx, span := repoTracer.Start(ctx, "ReportRepository.Overall", rangeAttrs(rng))
	defer span.End()

	var stats report.OverallStats
	q := r.reader.NewSelect().
		TableExpr("orders AS o").
		ColumnExpr("COUNT(o.id) AS total_orders").
		ColumnExpr("COALESCE(SUM(o.order_amount), 0) AS total_order_amount").
		ColumnExpr("COALESCE(SUM(o.order_amount - o.delivery_charge - o.additional_charge), 0) AS total_restaurant_revenue").
		ColumnExpr("COALESCE(SUM(o.delivery_charge), 0) AS total_delivery_charge").
		ColumnExpr("COALESCE(SUM(o.additional_charge), 0) AS total_additional_charge").
		Where("o.status = ?", entity.StatusDelivered)
	q = applyDateFilter(q, rng)

	if err := q.Scan(ctx, &stats); err != nil && !errors.Is(err, sql.ErrNoRows) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "overall aggregation failed")
		return report.OverallStats{}, err
	}
	return stats, nil
}

// PerRestaurant returns one row per restaurant with delivered orders
// in range, ordered by net revenue descending. Restaurants with no
// matching orders do not appear.
func (r *Repository) PerRestaurant(ctx context.Context, rng report.DateRange) ([]report.RestaurantStats, error) {
	ctx, span := repoTracer.Start(ctx, "ReportRepository.PerRestaurant", rangeAttrs(rng))
	defer span.End()

	rows := make([]report.RestaurantStats, 0)
	q := r.reader.NewSelect().
		TableExpr("orders AS o").
		ColumnExpr("r.name AS restaurant_name").
		ColumnExpr("COUNT(o.id) AS total_orders").
		ColumnExpr("SUM(o.order_amount) AS total_order_amount").
		ColumnExpr("SUM(o.delivery_charge) AS total_delivery_fee").
		ColumnExpr("SUM(o.additional_charge) AS total_additional_charge").
		ColumnExpr("SUM(o.order_amount - o.delivery_charge - o.additional_charge) AS total_revenue").
		Join("JOIN restaurants AS r ON o.restaurant_id = r.id").
		Where("o.status = ?", entity.StatusDelivered).
		GroupExpr("r.id, r.name").
		OrderExpr("total_revenue DESC")
	q = applyDateFilter(q, rng)

	if err := q.Scan(ctx, &rows); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "restaurant aggregation failed")
		return nil, err
	}
	return rows, nil
}

// PerCourier returns one row per courier with delivered orders in
// range, ordered by total order amount descending.
func (r *Repository) PerCourier(ctx context.Context, rng report.DateRange) ([]report.CourierStats, error) {
	ctx, span := repoTracer.Start(ctx, "ReportRepository.PerCourier", rangeAttrs(rng))
	defer span.End()

	rows := make([]report.CourierStats, 0)
	q := r.reader.NewSelect().
		TableExpr("orders AS o").
		ColumnExpr("c.name AS delivery_man_name").
		ColumnExpr("COUNT(o.id) AS total_deliveries").
		ColumnExpr("SUM(o.order_amount) AS total_order_amount").
		ColumnExpr("SUM(o.delivery_charge) AS total_delivery_fee").
		Join("JOIN couriers AS c ON o.courier_id = c.id").
		Where("o.status = ?", entity.StatusDelivered).
		GroupExpr("c.id, c.name").
		OrderExpr("total_order_amount DESC")
	q = applyDateFilter(q, rng)

	if err := q.Scan(ctx, &rows); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "courier aggregation failed")
		return nil, err
	}
	return rows, nil
}

// applyDateFilter narrows the query to the date part of created_at.
// An inverted range (end before start) is bound as given; BETWEEN
// simply matches nothing.
func applyDateFilter(q *bun.SelectQuery, rng report.DateRange) *bun.SelectQuery {
	switch {
	case rng.AllTime():
		return q
	case rng.SingleDay():
		return q.Where("DATE(o.created_at) = ?", rng.StartDate())
	default:
		return q.Where("DATE(o.created_at) BETWEEN ? AND ?", rng.StartDate(), rng.EndDate())
	}
}

func rangeAttrs(rng report.DateRange) trace.SpanStartOption {
	return trace.WithAttributes(attribute.String("report.range", rng.Slug()))
}
