// Package seed loads development fixtures: a couple of drivers with rating
// history, a passenger, open rides, and past rides. Past rides only ever
// enter the system this way; moving a ride from open to past is an
// administrative action with no public endpoint.
package seed

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yervar/yervar-backend/internal/domain"
	"github.com/yervar/yervar-backend/internal/repository"
)

func Run(ctx context.Context, repos *repository.Repositories) error {
	if existing, err := repos.User.GetByEmail(ctx, "rashad@example.com"); err == nil && existing != nil {
		log.Println("INFO [seed] data already present, skipping")
		return nil
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	rashad, err := createUser(ctx, repos, &domain.User{
		Name:        "Rəşad Həsənov",
		Email:       "rashad@example.com",
		Phone:       "+994559876543",
		Role:        domain.RoleDriver,
		Vehicle:     "Mercedes Vito",
		Rating:      4.8,
		RatingCount: 25,
	}, "driverpass")
	if err != nil {
		return err
	}

	leyla, err := createUser(ctx, repos, &domain.User{
		Name:        "Leyla Əliyeva",
		Email:       "leyla@example.com",
		Phone:       "+994511234567",
		Role:        domain.RoleDriver,
		Vehicle:     "Mercedes E-Class",
		Rating:      4.9,
		RatingCount: 42,
	}, "leylapass")
	if err != nil {
		return err
	}

	elvin, err := createUser(ctx, repos, &domain.User{
		Name:  "Elvin Məmmədov",
		Email: "elvin@example.com",
		Phone: "+994501234567",
		Role:  domain.RolePassenger,
	}, "password123")
	if err != nil {
		return err
	}

	now := time.Now()

	openRides := []*domain.Ride{
		newRide(rashad, "Bakı, 28 May", "Sumqayıt", now.Add(30*time.Minute), 3, 5, domain.RideStatusOpen, intPtr(45)),
		newRide(leyla, "Bakı, Nərimanov", "Gəncə", now.Add(2*time.Hour), 2, 15, domain.RideStatusOpen, intPtr(240)),
	}

	pastRide1 := newRide(rashad, "İçərişəhər", "Gənclik Mall", now.Add(-24*time.Hour), 0, 4, domain.RideStatusPast, nil)
	pastRide2 := newRide(leyla, "Heydər Əliyev Mərkəzi", "Nizami küçəsi", now.Add(-48*time.Hour), 0, 3, domain.RideStatusPast, nil)

	passenger := []domain.RidePassenger{{ID: elvin.ID, Name: elvin.Name}}
	for _, ride := range []*domain.Ride{pastRide1, pastRide2} {
		if err := ride.SetPassengerList(passenger); err != nil {
			return err
		}
	}
	// Elvin has already rated the older ride.
	if err := pastRide2.SetRatingsMap(map[string]int{elvin.ID.String(): 5}); err != nil {
		return err
	}

	for _, ride := range append(openRides, pastRide1, pastRide2) {
		if err := repos.Ride.Create(ctx, ride); err != nil {
			return err
		}
	}

	log.Println("INFO [seed] development data loaded")
	return nil
}

func createUser(ctx context.Context, repos *repository.Repositories, user *domain.User, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.ID = uuid.New()
	user.PasswordHash = string(hash)
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := repos.User.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func newRide(driver *domain.User, from, to string, departure time.Time, seats int, price float64, status domain.RideStatus, eta *int) *domain.Ride {
	ride := &domain.Ride{
		ID:             uuid.New(),
		From:           from,
		To:             to,
		DepartureTime:  departure,
		AvailableSeats: seats,
		Price:          price,
		Status:         status,
		Eta:            eta,
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
	_ = ride.SetPassengerList(nil)
	_ = ride.SetRatingsMap(nil)
	return ride
}

func intPtr(v int) *int { return &v }
