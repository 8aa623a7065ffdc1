package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RideStatus string

const (
	RideStatusOpen RideStatus = "open"
	RideStatusPast RideStatus = "past"
)

// RideDriver is the point-in-time driver snapshot embedded in a ride. The
// rating is refreshed from the user record on read paths; the rest is a copy.
type RideDriver struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Rating       float64   `json:"rating"`
	Vehicle      string    `json:"vehicle"`
	AvatarLetter string    `json:"avatarLetter"`
}

type RidePassenger struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Ride struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	From           string     `json:"from" gorm:"column:from_label;not null"`
	To             string     `json:"to" gorm:"column:to_label;not null"`
	DepartureTime  time.Time  `json:"departureTime" gorm:"not null"`
	AvailableSeats int        `json:"availableSeats" gorm:"not null"`
	Price          float64    `json:"price" gorm:"not null"`
	Status         RideStatus `json:"-" gorm:"index;not null"`

	// Driver snapshot, flattened into columns.
	DriverID           uuid.UUID `json:"-" gorm:"type:uuid;index;not null"`
	DriverName         string    `json:"-"`
	DriverRating       float64   `json:"-"`
	DriverVehicle      string    `json:"-"`
	DriverAvatarLetter string    `json:"-"`

	Passengers       datatypes.JSON `json:"-" gorm:"type:jsonb;default:'[]'"`
	PassengerRatings datatypes.JSON `json:"-" gorm:"type:jsonb;default:'{}'"`
	Eta              *int           `json:"eta,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (r *Ride) Driver() RideDriver {
	return RideDriver{
		ID:           r.DriverID,
		Name:         r.DriverName,
		Rating:       r.DriverRating,
		Vehicle:      r.DriverVehicle,
		AvatarLetter: r.DriverAvatarLetter,
	}
}

func (r *Ride) SetDriver(d RideDriver) {
	r.DriverID = d.ID
	r.DriverName = d.Name
	r.DriverRating = d.Rating
	r.DriverVehicle = d.Vehicle
	r.DriverAvatarLetter = d.AvatarLetter
}

func (r *Ride) PassengerList() []RidePassenger {
	if len(r.Passengers) == 0 {
		return []RidePassenger{}
	}
	var list []RidePassenger
	if err := json.Unmarshal(r.Passengers, &list); err != nil {
		return []RidePassenger{}
	}
	return list
}

func (r *Ride) SetPassengerList(list []RidePassenger) error {
	if list == nil {
		list = []RidePassenger{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	r.Passengers = raw
	return nil
}

func (r *Ride) HasPassenger(userID uuid.UUID) bool {
	for _, p := range r.PassengerList() {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// RatingsMap returns the passenger-id → rating mapping used for the
// one-rating-per-passenger check. Keys are passenger UUIDs in string form.
func (r *Ride) RatingsMap() map[string]int {
	ratings := map[string]int{}
	if len(r.PassengerRatings) == 0 {
		return ratings
	}
	if err := json.Unmarshal(r.PassengerRatings, &ratings); err != nil {
		return map[string]int{}
	}
	return ratings
}

func (r *Ride) SetRatingsMap(ratings map[string]int) error {
	if ratings == nil {
		ratings = map[string]int{}
	}
	raw, err := json.Marshal(ratings)
	if err != nil {
		return err
	}
	r.PassengerRatings = raw
	return nil
}
