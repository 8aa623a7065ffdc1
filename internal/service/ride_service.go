package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yervar/yervar-backend/internal/domain"
	"github.com/yervar/yervar-backend/internal/repository"
)

type RideService struct {
	rideRepo repository.RideRepository
	userRepo repository.UserRepository
	notifier Notifier
}

func NewRideService(rideRepo repository.RideRepository, userRepo repository.UserRepository, notifier Notifier) *RideService {
	return &RideService{
		rideRepo: rideRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// ListOpen returns all open rides, most-recent-first, with each driver
// snapshot's rating read through from the user record.
func (s *RideService) ListOpen(ctx context.Context) ([]*domain.Ride, error) {
	rides, err := s.rideRepo.ListByStatus(ctx, domain.RideStatusOpen)
	if err != nil {
		return nil, err
	}
	s.refreshDriverRatings(ctx, rides)
	return rides, nil
}

// ListPastFor returns the past rides on which userID was a passenger.
func (s *RideService) ListPastFor(ctx context.Context, userID uuid.UUID) ([]*domain.Ride, error) {
	rides, err := s.rideRepo.ListByStatus(ctx, domain.RideStatusPast)
	if err != nil {
		return nil, err
	}

	var mine []*domain.Ride
	for _, ride := range rides {
		if ride.HasPassenger(userID) {
			mine = append(mine, ride)
		}
	}
	s.refreshDriverRatings(ctx, mine)
	return mine, nil
}

type CreateRideInput struct {
	From           string
	To             string
	Price          float64
	AvailableSeats int
	DepartureTime  time.Time
}

func (s *RideService) Create(ctx context.Context, driverID uuid.UUID, input CreateRideInput) (*domain.Ride, error) {
	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	if driver.Role != domain.RoleDriver {
		return nil, domain.ErrForbidden
	}

	if input.From == "" || input.To == "" || input.DepartureTime.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if input.Price < 0 || input.AvailableSeats < 0 {
		return nil, domain.ErrInvalidInput
	}

	ride := &domain.Ride{
		ID:             uuid.New(),
		From:           input.From,
		To:             input.To,
		DepartureTime:  input.DepartureTime,
		AvailableSeats: input.AvailableSeats,
		Price:          input.Price,
		Status:         domain.RideStatusOpen,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	ride.SetDriver(domain.RideDriver{
		ID:           driver.ID,
		Name:         driver.Name,
		Rating:       driver.Rating,
		Vehicle:      driver.Vehicle,
		AvatarLetter: driver.AvatarLetter(),
	})
	if err := ride.SetPassengerList(nil); err != nil {
		return nil, err
	}
	if err := ride.SetRatingsMap(nil); err != nil {
		return nil, err
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Broadcast("New ride available",
			fmt.Sprintf("%s → %s, departing %s", ride.From, ride.To, ride.DepartureTime.Format("15:04")))
	}

	return ride, nil
}

func (s *RideService) refreshDriverRatings(ctx context.Context, rides []*domain.Ride) {
	for _, ride := range rides {
		driver, err := s.userRepo.GetByID(ctx, ride.DriverID)
		if err != nil {
			// Snapshot rating stays as captured when the driver is gone.
			log.Printf("WARN [service.Ride] driver %s lookup failed: %v", ride.DriverID, err)
			continue
		}
		ride.DriverRating = driver.Rating
	}
}
