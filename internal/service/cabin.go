package service

import (
	"context"
	"errors"

	"cabanas-backoffice/internal/cache"
	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/repository"
)

type cabinService struct {
	cabinRepo repository.CabinRepository
	cache     cache.Cache
}

func NewCabinService(cabinRepo repository.CabinRepository, c cache.Cache) CabinService {
	return &cabinService{cabinRepo: cabinRepo, cache: c}
}

func (s *cabinService) ListCabins(ctx context.Context) ([]domain.Cabin, error) {
	var cabins []domain.Cabin
	err := s.cache.Get(ctx, cache.KeyCabins, &cabins)
	if err == nil {
		return cabins, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("Cabin cache unavailable", "error", err)
	}

	cabins, err = s.cabinRepo.List(ctx)
	if err != nil {
		return nil, backendError("list cabins", err)
	}
	if cabins == nil {
		cabins = []domain.Cabin{}
	}
	if err := s.cache.Set(ctx, cache.KeyCabins, cabins); err != nil {
		logger.Warn("Failed to cache cabins", "error", err)
	}
	return cabins, nil
}
