package dto

// OverallStatsResponse is the overall summary row as exposed over
// HTTP. Column names follow the dashboard contract.
type OverallStatsResponse struct {
	TotalOrders            int64   `json:"total_orders"`
	TotalOrderAmount       float64 `json:"total_order_amount"`
	TotalRestaurantRevenue float64 `json:"total_restaurant_revenue"`
	TotalDeliveryCharge    float64 `json:"total_delivery_charge"`
	TotalAdditionalCharge  float64 `json:"total_additional_charge"`
}

// RestaurantStatsResponse is one per-restaurant row.
type RestaurantStatsResponse struct {
	RestaurantName        string  `json:"restaurant_name"`
	TotalOrders           int64   `json:"total_orders"`
	TotalOrderAmount      float64 `json:"total_order_amount"`
	TotalDeliveryFee      float64 `json:"total_delivery_fee"`
	TotalAdditionalCharge float64 `json:"total_additional_charge"`
	TotalRevenue          float64 `json:"total_revenue"`
}

// CourierStatsResponse is one per-courier row.
type CourierStatsResponse struct {
	DeliveryManName  string  `json:"delivery_man_name"`
	TotalDeliveries  int64   `json:"total_deliveries"`
	TotalOrderAmount float64 `json:"total_order_amount"`
	TotalDeliveryFee float64 `json:"total_delivery_fee"`
}
