package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yervar/yervar-backend/internal/domain"
	"github.com/yervar/yervar-backend/internal/repository"
)

// keyedMutex hands out one mutex per key. Mutexes are retained for the
// process lifetime; the key space is bounded by the entity population.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

func (k *keyedMutex) Lock(key string)   { k.get(key).Lock() }
func (k *keyedMutex) Unlock(key string) { k.get(key).Unlock() }

type RatingService struct {
	rideRepo repository.RideRepository
	userRepo repository.UserRepository
	notifier Notifier

	// rideLocks serializes the per-ride idempotence check-and-set;
	// driverLocks serializes the per-driver average update. A ride lock is
	// always taken before its driver lock.
	rideLocks   *keyedMutex
	driverLocks *keyedMutex
}

func NewRatingService(rideRepo repository.RideRepository, userRepo repository.UserRepository, notifier Notifier) *RatingService {
	return &RatingService{
		rideRepo:    rideRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		rideLocks:   newKeyedMutex(),
		driverLocks: newKeyedMutex(),
	}
}

// RateRide records raterID's rating for a past ride and folds it into the
// driver's running average. At most one rating per (passenger, ride) pair:
// a retry after success fails with ErrAlreadyRated and leaves the driver's
// aggregate untouched.
func (s *RatingService) RateRide(ctx context.Context, raterID, rideID uuid.UUID, rating int) error {
	if rating < 1 || rating > 5 {
		return domain.ErrInvalidRating
	}

	s.rideLocks.Lock(rideID.String())
	defer s.rideLocks.Unlock(rideID.String())

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if ride.Status != domain.RideStatusPast {
		return domain.ErrNotFound
	}

	if !ride.HasPassenger(raterID) {
		return domain.ErrForbidden
	}

	ratings := ride.RatingsMap()
	if _, ok := ratings[raterID.String()]; ok {
		return domain.ErrAlreadyRated
	}

	s.driverLocks.Lock(ride.DriverID.String())
	defer s.driverLocks.Unlock(ride.DriverID.String())

	driver, err := s.userRepo.GetByID(ctx, ride.DriverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	// Incremental mean over the aggregate; no rating history is kept beyond
	// the per-ride mapping.
	newAverage := (driver.Rating*float64(driver.RatingCount) + float64(rating)) / float64(driver.RatingCount+1)
	driver.Rating = roundToTenth(newAverage)
	driver.RatingCount++

	ratings[raterID.String()] = rating
	if err := ride.SetRatingsMap(ratings); err != nil {
		return err
	}

	// One transaction: a failure must not leave the aggregate counted while
	// the ride's map forgets the rating, or a retry would count it twice.
	if err := s.rideRepo.ApplyRating(ctx, ride, driver); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.Notify(driver.ID, "New rating received",
			fmt.Sprintf("A passenger rated your ride %s → %s: %d stars", ride.From, ride.To, rating))
	}

	return nil
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
