package service

import (
	"context"

	"campuseats/internal/httpapi/models"
	"campuseats/internal/httpapi/repository"
)

// CanteenService serves the read-only canteen reference data.
type CanteenService interface {
	List(ctx context.Context) ([]models.Canteen, error)
}

type canteenService struct {
	canteenRepo repository.CanteenRepository
}

func NewCanteenService(canteenRepo repository.CanteenRepository) CanteenService {
	return &canteenService{canteenRepo: canteenRepo}
}

func (s *canteenService) List(ctx context.Context) ([]models.Canteen, error) {
	canteens, err := s.canteenRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if canteens == nil {
		canteens = []models.Canteen{}
	}
	return canteens, nil
}
