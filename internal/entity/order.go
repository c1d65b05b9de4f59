package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// StatusDelivered is the only order status the reporting queries
// consider. Orders in any other state never contribute to a report.
const StatusDelivered = "delivered"

// Order is a platform order as stored in the relational database. The
// reporting service only ever reads orders; they are written by the
// ordering system upstream.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID               int64     `bun:",pk,autoincrement"`
	RestaurantID     int64     `bun:"restaurant_id"`
	CourierID        int64     `bun:"courier_id"`
	OrderAmount      float64   `bun:"order_amount"`
	DeliveryCharge   float64   `bun:"delivery_charge"`
	AdditionalCharge float64   `bun:"additional_charge"`
	Status           string    `bun:"status"`
	CreatedAt        time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}
