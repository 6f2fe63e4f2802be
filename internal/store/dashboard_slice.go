package store

import (
	"context"
	"fmt"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/api"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// DashboardState mirrors the analytics payloads for admin/vendor views.
type DashboardState struct {
	Status
	AdminStats  *domain.DashboardStats
	VendorStats *domain.VendorStats
	Revenue     []domain.RevenuePoint
	TopProducts []domain.TopProduct
}

// Dashboard snapshots are the one place the client keeps a TTL cache: the
// charts are expensive server-side and stale-by-minutes is acceptable.

// FetchAdminStats loads the storewide KPI block, honoring the snapshot cache
// unless force is set. Cache keys follow the "stats:" convention.
func (s *Store) FetchAdminStats(ctx context.Context, force bool) error {
	const cacheKey = "stats:admin"

	if !force {
		if cached, found := s.statsCache.Get(cacheKey); found {
			stats := cached.(*domain.DashboardStats)
			s.dispatch("dashboard", "adminStats/cached", func(st *State) {
				st.Dashboard.fulfill("")
				st.Dashboard.AdminStats = stats
			})
			return nil
		}
	}

	s.dispatch("dashboard", "adminStats/pending", func(st *State) {
		st.Dashboard.pending()
	})

	stats, err := s.client.Dashboard.AdminStats(ctx)
	if err != nil {
		s.dispatch("dashboard", "adminStats/rejected", func(st *State) {
			st.Dashboard.reject(err)
		})
		return err
	}

	s.statsCache.Set(cacheKey, stats, s.statsTTL)
	s.dispatch("dashboard", "adminStats/fulfilled", func(st *State) {
		st.Dashboard.fulfill("")
		st.Dashboard.AdminStats = stats
	})
	return nil
}

// FetchVendorStats loads the vendor-scoped KPI block.
func (s *Store) FetchVendorStats(ctx context.Context, force bool) error {
	const cacheKey = "stats:vendor"

	if !force {
		if cached, found := s.statsCache.Get(cacheKey); found {
			stats := cached.(*domain.VendorStats)
			s.dispatch("dashboard", "vendorStats/cached", func(st *State) {
				st.Dashboard.fulfill("")
				st.Dashboard.VendorStats = stats
			})
			return nil
		}
	}

	s.dispatch("dashboard", "vendorStats/pending", func(st *State) {
		st.Dashboard.pending()
	})

	stats, err := s.client.Dashboard.VendorStats(ctx)
	if err != nil {
		s.dispatch("dashboard", "vendorStats/rejected", func(st *State) {
			st.Dashboard.reject(err)
		})
		return err
	}

	s.statsCache.Set(cacheKey, stats, s.statsTTL)
	s.dispatch("dashboard", "vendorStats/fulfilled", func(st *State) {
		st.Dashboard.fulfill("")
		st.Dashboard.VendorStats = stats
	})
	return nil
}

// FetchRevenue loads the daily revenue series for the given window.
func (s *Store) FetchRevenue(ctx context.Context, filter api.RevenueFilter, force bool) error {
	cacheKey := fmt.Sprintf("stats:revenue:%s:%s",
		filter.Start.Format("2006-01-02"), filter.End.Format("2006-01-02"))

	if !force {
		if cached, found := s.statsCache.Get(cacheKey); found {
			points := cached.([]domain.RevenuePoint)
			s.dispatch("dashboard", "revenue/cached", func(st *State) {
				st.Dashboard.fulfill("")
				st.Dashboard.Revenue = points
			})
			return nil
		}
	}

	s.dispatch("dashboard", "revenue/pending", func(st *State) {
		st.Dashboard.pending()
	})

	points, err := s.client.Dashboard.Revenue(ctx, filter)
	if err != nil {
		s.dispatch("dashboard", "revenue/rejected", func(st *State) {
			st.Dashboard.reject(err)
		})
		return err
	}

	s.statsCache.Set(cacheKey, points, s.statsTTL)
	s.dispatch("dashboard", "revenue/fulfilled", func(st *State) {
		st.Dashboard.fulfill("")
		st.Dashboard.Revenue = points
	})
	return nil
}

// FetchTopProducts loads the best-seller list.
func (s *Store) FetchTopProducts(ctx context.Context, limit int, force bool) error {
	cacheKey := fmt.Sprintf("stats:top_products:%d", limit)

	if !force {
		if cached, found := s.statsCache.Get(cacheKey); found {
			products := cached.([]domain.TopProduct)
			s.dispatch("dashboard", "topProducts/cached", func(st *State) {
				st.Dashboard.fulfill("")
				st.Dashboard.TopProducts = products
			})
			return nil
		}
	}

	s.dispatch("dashboard", "topProducts/pending", func(st *State) {
		st.Dashboard.pending()
	})

	products, err := s.client.Dashboard.TopProducts(ctx, limit)
	if err != nil {
		s.dispatch("dashboard", "topProducts/rejected", func(st *State) {
			st.Dashboard.reject(err)
		})
		return err
	}

	s.statsCache.Set(cacheKey, products, s.statsTTL)
	s.dispatch("dashboard", "topProducts/fulfilled", func(st *State) {
		st.Dashboard.fulfill("")
		st.Dashboard.TopProducts = products
	})
	return nil
}
