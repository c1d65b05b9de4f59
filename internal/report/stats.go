package report

import "math"

// Kind names one of the three reports the service can compute.
type Kind string

const (
	KindOverall     Kind = "overall"
	KindRestaurants Kind = "restaurants"
	KindCouriers    Kind = "couriers"
)

// Valid reports whether k names a known report.
func (k Kind) Valid() bool {
	switch k {
	case KindOverall, KindRestaurants, KindCouriers:
		return true
	}
	return false
}

// FileStem is the report part of the export filename, e.g.
// overall_stats_2024-01-02_to_2024-01-31.xlsx.
func (k Kind) FileStem() string {
	switch k {
	case KindRestaurants:
		return "restaurant_stats"
	case KindCouriers:
		return "delivery_stats"
	default:
		return "overall_stats"
	}
}

// OverallStats is the single summary row over all delivered orders in
// range. Sums are zero, never NULL, when nothing matched.
type OverallStats struct {
	TotalOrders            int64   `bun:"total_orders"`
	TotalOrderAmount       float64 `bun:"total_order_amount"`
	TotalRestaurantRevenue float64 `bun:"total_restaurant_revenue"`
	TotalDeliveryCharge    float64 `bun:"total_delivery_charge"`
	TotalAdditionalCharge  float64 `bun:"total_additional_charge"`
}

// Empty reports whether no delivered orders matched the range.
func (s OverallStats) Empty() bool {
	return s.TotalOrders == 0
}

// Rounded returns a copy with every monetary column rounded to two
// decimal places. The order count is untouched.
func (s OverallStats) Rounded() OverallStats {
	s.TotalOrderAmount = Round2(s.TotalOrderAmount)
	s.TotalRestaurantRevenue = Round2(s.TotalRestaurantRevenue)
	s.TotalDeliveryCharge = Round2(s.TotalDeliveryCharge)
	s.TotalAdditionalCharge = Round2(s.TotalAdditionalCharge)
	return s
}

// OverallColumns is the export header order for OverallStats.
var OverallColumns = []string{
	"total_orders",
	"total_order_amount",
	"total_restaurant_revenue",
	"total_delivery_charge",
	"total_additional_charge",
}

// Row returns the cells in OverallColumns order.
func (s OverallStats) Row() []any {
	return []any{
		s.TotalOrders,
		s.TotalOrderAmount,
		s.TotalRestaurantRevenue,
		s.TotalDeliveryCharge,
		s.TotalAdditionalCharge,
	}
}

// RestaurantStats is one per-restaurant aggregation row. TotalRevenue
// is the net amount retained by the restaurant: order amount minus
// delivery charge minus additional charge. It is not clamped; data
// where charges exceed the order amount yields a negative value.
type RestaurantStats struct {
	RestaurantName        string  `bun:"restaurant_name"`
	TotalOrders           int64   `bun:"total_orders"`
	TotalOrderAmount      float64 `bun:"total_order_amount"`
	TotalDeliveryFee      float64 `bun:"total_delivery_fee"`
	TotalAdditionalCharge float64 `bun:"total_additional_charge"`
	TotalRevenue          float64 `bun:"total_revenue"`
}

// Rounded returns a copy with monetary columns rounded to two decimals.
func (s RestaurantStats) Rounded() RestaurantStats {
	s.TotalOrderAmount = Round2(s.TotalOrderAmount)
	s.TotalDeliveryFee = Round2(s.TotalDeliveryFee)
	s.TotalAdditionalCharge = Round2(s.TotalAdditionalCharge)
	s.TotalRevenue = Round2(s.TotalRevenue)
	return s
}

// RestaurantColumns is the export header order for RestaurantStats.
var RestaurantColumns = []string{
	"restaurant_name",
	"total_orders",
	"total_order_amount",
	"total_delivery_fee",
	"total_additional_charge",
	"total_revenue",
}

// Row returns the cells in RestaurantColumns order.
func (s RestaurantStats) Row() []any {
	return []any{
		s.RestaurantName,
		s.TotalOrders,
		s.TotalOrderAmount,
		s.TotalDeliveryFee,
		s.TotalAdditionalCharge,
		s.TotalRevenue,
	}
}

// CourierStats is one per-courier aggregation row.
type CourierStats struct {
	DeliveryManName  string  `bun:"delivery_man_name"`
	TotalDeliveries  int64   `bun:"total_deliveries"`
	TotalOrderAmount float64 `bun:"total_order_amount"`
	TotalDeliveryFee float64 `bun:"total_delivery_fee"`
}

// Rounded returns a copy with monetary columns rounded to two decimals.
func (s CourierStats) Rounded() CourierStats {
	s.TotalOrderAmount = Round2(s.TotalOrderAmount)
	s.TotalDeliveryFee = Round2(s.TotalDeliveryFee)
	return s
}

// CourierColumns is the export header order for CourierStats.
var CourierColumns = []string{
	"delivery_man_name",
	"total_deliveries",
	"total_order_amount",
	"total_delivery_fee",
}

// Row returns the cells in CourierColumns order.
func (s CourierStats) Row() []any {
	return []any{
		s.DeliveryManName,
		s.TotalDeliveries,
		s.TotalOrderAmount,
		s.TotalDeliveryFee,
	}
}

// Round2 rounds a monetary value to two decimal places, half away
// from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
