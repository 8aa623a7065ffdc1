package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yervar/yervar-backend/internal/domain"
)

type rideRepository struct {
	db *gorm.DB
}

func NewRideRepository(db *gorm.DB) *rideRepository {
	return &rideRepository{db: db}
}

func (r *rideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	return r.db.WithContext(ctx).Create(ride).Error
}

func (r *rideRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ride, error) {
	var ride domain.Ride
	err := r.db.WithContext(ctx).First(&ride, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ride, nil
}

func (r *rideRepository) ListByStatus(ctx context.Context, status domain.RideStatus) ([]*domain.Ride, error) {
	var rides []*domain.Ride
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&rides).Error
	if err != nil {
		return nil, err
	}
	return rides, nil
}

func (r *rideRepository) ApplyRating(ctx context.Context, ride *domain.Ride, driver *domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(driver).Error; err != nil {
			return err
		}
		return tx.Save(ride).Error
	})
}
