package api

import (
	"context"
	"net/http"
	"time"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// DashboardService talks to /dashboard/*. Read-only analytics for the
// admin/vendor views.
type DashboardService struct {
	client *Client
}

// AdminStats returns the storewide KPI block.
func (s *DashboardService) AdminStats(ctx context.Context, opts ...Option) (*domain.DashboardStats, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/dashboard/admin/stats", nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	stats := &domain.DashboardStats{}
	if err := decodeData(resp, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// VendorStats returns the KPI block scoped to the authenticated vendor.
func (s *DashboardService) VendorStats(ctx context.Context, opts ...Option) (*domain.VendorStats, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/dashboard/vendor/stats", nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	stats := &domain.VendorStats{}
	if err := decodeData(resp, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// RevenueFilter bounds the revenue series. Zero times are omitted.
type RevenueFilter struct {
	Start time.Time
	End   time.Time
}

func (f RevenueFilter) query() *queryBuilder {
	q := newQuery()
	if !f.Start.IsZero() {
		q.Str("start", f.Start.Format("2006-01-02"))
	}
	if !f.End.IsZero() {
		q.Str("end", f.End.Format("2006-01-02"))
	}
	return q
}

// Revenue returns the daily revenue series for charting.
func (s *DashboardService) Revenue(ctx context.Context, filter RevenueFilter, opts ...Option) ([]domain.RevenuePoint, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/dashboard/revenue", filter.query().Values(), nil, opts...)
	if err != nil {
		return nil, err
	}
	var points []domain.RevenuePoint
	if err := decodeData(resp, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// TopProducts returns the best sellers, capped by limit.
func (s *DashboardService) TopProducts(ctx context.Context, limit int, opts ...Option) ([]domain.TopProduct, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/dashboard/products/top", newQuery().Int("limit", limit).Values(), nil, opts...)
	if err != nil {
		return nil, err
	}
	var products []domain.TopProduct
	if err := decodeData(resp, &products); err != nil {
		return nil, err
	}
	return products, nil
}
