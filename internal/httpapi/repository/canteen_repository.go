package repository

import (
	"context"

	"campuseats/internal/httpapi/models"

	"gorm.io/gorm"
)

type CanteenRepository interface {
	List(ctx context.Context) ([]models.Canteen, error)
	GetByID(ctx context.Context, id int64) (*models.Canteen, error)
}

type canteenRepository struct {
	db *gorm.DB
}

func NewCanteenRepository(db *gorm.DB) CanteenRepository {
	return &canteenRepository{db: db}
}

func (r *canteenRepository) List(ctx context.Context) ([]models.Canteen, error) {
	var canteens []models.Canteen
	if err := r.db.WithContext(ctx).Order("name").Find(&canteens).Error; err != nil {
		return nil, err
	}
	return canteens, nil
}

func (r *canteenRepository) GetByID(ctx context.Context, id int64) (*models.Canteen, error) {
	var canteen models.Canteen
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&canteen).Error; err != nil {
		return nil, err
	}
	return &canteen, nil
}
