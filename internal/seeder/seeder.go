package seeder

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/MajjiR/zingoStats/internal/database"
	"github.com/MajjiR/zingoStats/internal/entity"
)

// Seeder fills the reporting tables with sample data for local runs.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// Reporting seeds a few restaurants, couriers, and orders. Statuses
// are mixed so the delivered-only filter has something to exclude.
func (s *Seeder) Reporting(ctx context.Context) error {
	restaurants := []entity.Restaurant{
		{ID: 1, Name: "Cafe Zingo"},
		{ID: 2, Name: "Tandoori Express"},
		{ID: 3, Name: "Green Bowl"},
	}
	couriers := []entity.Courier{
		{ID: 1, Name: "Rahim"},
		{ID: 2, Name: "Karim"},
	}

	for _, sample := range restaurants {
		r := sample
		if _, err := s.db.NewInsert().Model(&r).Ignore().Exec(ctx); err != nil {
			return err
		}
	}
	for _, sample := range couriers {
		c := sample
		if _, err := s.db.NewInsert().Model(&c).Ignore().Exec(ctx); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1)
	orders := []entity.Order{
		{RestaurantID: 1, CourierID: 1, OrderAmount: 100, DeliveryCharge: 10, AdditionalCharge: 5, Status: entity.StatusDelivered, CreatedAt: now},
		{RestaurantID: 1, CourierID: 2, OrderAmount: 200, DeliveryCharge: 20, AdditionalCharge: 0, Status: entity.StatusDelivered, CreatedAt: now},
		{RestaurantID: 2, CourierID: 1, OrderAmount: 350.50, DeliveryCharge: 25, AdditionalCharge: 12.50, Status: entity.StatusDelivered, CreatedAt: yesterday},
		{RestaurantID: 3, CourierID: 2, OrderAmount: 80, DeliveryCharge: 8, AdditionalCharge: 2, Status: "cancelled", CreatedAt: now},
		{RestaurantID: 3, CourierID: 1, OrderAmount: 60, DeliveryCharge: 6, AdditionalCharge: 0, Status: "pending", CreatedAt: now},
	}

	for _, sample := range orders {
		o := sample
		if _, err := s.db.NewInsert().Model(&o).Exec(ctx); err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded reporting data",
			zap.Int("restaurants", len(restaurants)),
			zap.Int("couriers", len(couriers)),
			zap.Int("orders", len(orders)),
		)
	}
	return nil
}
