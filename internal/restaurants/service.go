package restaurants

import (
	"context"
	"fmt"
)

const defaultPageSize = 25

// Service wraps restaurant listing business rules.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService constructs a Service. cache may be nil.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Create registers a new restaurant owned by ownerID.
func (s *Service) Create(ctx context.Context, req CreateRestaurantRequest, ownerID int64) (*Restaurant, error) {
	id, err := s.repo.Create(ctx, Restaurant{
		Name:         req.Name,
		Address:      req.Address,
		CategoryName: req.CategoryName,
		CoverImg:     req.CoverImg,
		OwnerID:      ownerID,
	})
	if err != nil {
		return nil, err
	}
	// Stale listing pages expire with the TTL anyway.
	_ = s.cache.Invalidate(ctx)
	return s.repo.Get(ctx, id)
}

// Get fetches a restaurant by id.
func (s *Service) Get(ctx context.Context, id int64) (*Restaurant, error) {
	return s.repo.Get(ctx, id)
}

// List returns the public listing page, promoted restaurants first.
func (s *Service) List(ctx context.Context, req ListRestaurantsRequest) (*ListRestaurantsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	page, err := s.cache.FetchPage(ctx, limit, req.Offset, func(ctx context.Context) (*ListRestaurantsResponse, error) {
		items, total, err := s.repo.List(ctx, limit, req.Offset)
		if err != nil {
			return nil, fmt.Errorf("restaurants: load listing: %w", err)
		}
		if items == nil {
			items = []Restaurant{}
		}
		return &ListRestaurantsResponse{Restaurants: items, Total: total}, nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}
