package domain

// --- Analytics payloads mirrored for the admin/vendor dashboards ---

type DashboardStats struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalOrders    int     `json:"totalOrders"`
	TotalProducts  int     `json:"totalProducts"`
	TotalUsers     int     `json:"totalUsers"`
	PendingOrders  int     `json:"pendingOrders"`
	PendingReviews int     `json:"pendingReviews"`
}

type VendorStats struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalOrders   int     `json:"totalOrders"`
	TotalProducts int     `json:"totalProducts"`
	AverageRating float64 `json:"averageRating"`
}

type RevenuePoint struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type TopProduct struct {
	Product   Product `json:"product"`
	UnitsSold int     `json:"unitsSold"`
	Revenue   float64 `json:"revenue"`
}
