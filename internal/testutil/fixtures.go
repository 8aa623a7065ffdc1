package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yervar/yervar-backend/internal/domain"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name        string
	email       string
	phone       string
	role        domain.Role
	password    string
	vehicle     string
	rating      float64
	ratingCount int
}

// NewUserBuilder creates a new UserBuilder with passenger defaults
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:     fmt.Sprintf("Test User %s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		phone:    "+994501234567",
		role:     domain.RolePassenger,
		password: "testpassword123",
	}
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPhone(phone string) *UserBuilder {
	b.phone = phone
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) AsDriver(vehicle string) *UserBuilder {
	b.role = domain.RoleDriver
	b.vehicle = vehicle
	return b
}

// WithRating pre-loads a driver's rating aggregate.
func (b *UserBuilder) WithRating(rating float64, count int) *UserBuilder {
	b.rating = rating
	b.ratingCount = count
	return b
}

// Build creates the user in the database and returns it with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         b.name,
		Email:        b.email,
		Phone:        b.phone,
		Role:         b.role,
		PasswordHash: string(hashedPassword),
		Vehicle:      b.vehicle,
		Rating:       b.rating,
		RatingCount:  b.ratingCount,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndLogin creates the user, logs in through the API, and returns an
// HTTP client whose jar carries the session cookie.
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, *http.Client) {
	t.Helper()

	user, password := b.Build(t, ts.DB)
	client := ts.NewClient(t)

	body, _ := json.Marshal(map[string]string{
		"email":    user.Email,
		"password": password,
	})
	resp, err := client.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned status %d", resp.StatusCode)
	}

	return user, client
}

// RideBuilder creates test rides with a builder pattern
type RideBuilder struct {
	driver     *domain.User
	status     domain.RideStatus
	from       string
	to         string
	price      float64
	seats      int
	departure  time.Time
	passengers []*domain.User
	ratings    map[string]int
	eta        *int
	createdAt  time.Time
}

func NewRideBuilder(driver *domain.User) *RideBuilder {
	return &RideBuilder{
		driver:    driver,
		status:    domain.RideStatusOpen,
		from:      "Bakı, 28 May",
		to:        "Sumqayıt",
		price:     5,
		seats:     3,
		departure: time.Now().Add(time.Hour),
		ratings:   map[string]int{},
		createdAt: time.Now(),
	}
}

func (b *RideBuilder) Past() *RideBuilder {
	b.status = domain.RideStatusPast
	b.departure = time.Now().Add(-24 * time.Hour)
	b.seats = 0
	return b
}

func (b *RideBuilder) WithRoute(from, to string) *RideBuilder {
	b.from = from
	b.to = to
	return b
}

func (b *RideBuilder) WithPrice(price float64) *RideBuilder {
	b.price = price
	return b
}

func (b *RideBuilder) WithSeats(seats int) *RideBuilder {
	b.seats = seats
	return b
}

func (b *RideBuilder) WithPassengers(passengers ...*domain.User) *RideBuilder {
	b.passengers = passengers
	return b
}

// WithExistingRating marks a passenger as having already rated the ride.
func (b *RideBuilder) WithExistingRating(passengerID uuid.UUID, rating int) *RideBuilder {
	b.ratings[passengerID.String()] = rating
	return b
}

func (b *RideBuilder) WithEta(minutes int) *RideBuilder {
	b.eta = &minutes
	return b
}

// WithCreatedAt pins the insertion timestamp, which drives list ordering.
func (b *RideBuilder) WithCreatedAt(at time.Time) *RideBuilder {
	b.createdAt = at
	return b
}

func (b *RideBuilder) Build(t *testing.T, db *gorm.DB) *domain.Ride {
	t.Helper()

	ride := &domain.Ride{
		ID:             uuid.New(),
		From:           b.from,
		To:             b.to,
		DepartureTime:  b.departure,
		AvailableSeats: b.seats,
		Price:          b.price,
		Status:         b.status,
		Eta:            b.eta,
		CreatedAt:      b.createdAt,
		UpdatedAt:      b.createdAt,
	}
	ride.SetDriver(domain.RideDriver{
		ID:           b.driver.ID,
		Name:         b.driver.Name,
		Rating:       b.driver.Rating,
		Vehicle:      b.driver.Vehicle,
		AvatarLetter: b.driver.AvatarLetter(),
	})

	passengers := make([]domain.RidePassenger, 0, len(b.passengers))
	for _, p := range b.passengers {
		passengers = append(passengers, domain.RidePassenger{ID: p.ID, Name: p.Name})
	}
	if err := ride.SetPassengerList(passengers); err != nil {
		t.Fatalf("failed to set passenger list: %v", err)
	}
	if err := ride.SetRatingsMap(b.ratings); err != nil {
		t.Fatalf("failed to set ratings map: %v", err)
	}

	if err := db.Create(ride).Error; err != nil {
		t.Fatalf("failed to create ride: %v", err)
	}

	return ride
}
