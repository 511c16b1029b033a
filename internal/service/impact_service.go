package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mealshare/backend/internal/impact"
	"github.com/mealshare/backend/internal/models"
	"github.com/mealshare/backend/internal/repository"
)

// ImpactService computes the platform-wide impact dashboard
type ImpactService struct {
	store  repository.Store
	months int
	logger *slog.Logger
	now    func() time.Time
}

// NewImpactService creates a new impact service. months sets how many
// calendar months, including the current one, the monthly breakdown covers.
func NewImpactService(store repository.Store, months int, logger *slog.Logger) *ImpactService {
	return &ImpactService{
		store:  store,
		months: months,
		logger: logger,
		now:    time.Now,
	}
}

// fetchResult holds the outcome of one upstream query
type fetchResult struct {
	source string
	err    error
}

// Compute runs every upstream query concurrently and aggregates the results.
// The first failing query cancels the rest and the whole run fails; no
// partial statistics are returned.
func (s *ImpactService) Compute(ctx context.Context) (*models.Impact, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var in impact.Input
	fetches := map[string]func(ctx context.Context) error{
		"completed pickups": func(ctx context.Context) (err error) {
			in.CompletedPickups, err = s.store.ListCompletedPickups(ctx)
			return err
		},
		"food items": func(ctx context.Context) (err error) {
			in.FoodItems, err = s.store.ListAllFoodItems(ctx)
			return err
		},
		"regional data": func(ctx context.Context) (err error) {
			in.Restaurants, err = s.store.ListRestaurantsWithCompletedPickups(ctx)
			return err
		},
		"restaurant count": func(ctx context.Context) (err error) {
			in.TotalRestaurants, err = s.store.CountRestaurants(ctx)
			return err
		},
		"user count": func(ctx context.Context) (err error) {
			in.TotalUsers, err = s.store.CountProfiles(ctx)
			return err
		},
	}

	resultChan := make(chan fetchResult, len(fetches))

	var wg sync.WaitGroup
	for source, fetch := range fetches {
		wg.Add(1)
		go func(source string, fetch func(ctx context.Context) error) {
			defer wg.Done()

			err := fetch(ctx)
			resultChan <- fetchResult{source: source, err: err}
			// send before cancelling so the root cause is received first
			if err != nil {
				cancel()
			}
		}(source, fetch)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var firstErr error
	for result := range resultChan {
		if result.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to fetch %s: %w", result.source, result.err)
		}
	}
	if firstErr != nil {
		s.logger.Error("impact computation failed", "error", firstErr)
		return nil, firstErr
	}

	in.MonthlySince = s.monthlySince()
	stats := impact.Aggregate(in)
	return &stats, nil
}

// monthlySince is the first instant of the oldest month in the window. The
// window is aligned to calendar months, not a rolling cutoff from now.
func (s *ImpactService) monthlySince() time.Time {
	if s.months <= 0 {
		return time.Time{}
	}
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month()-time.Month(s.months-1), 1, 0, 0, 0, 0, time.UTC)
}
