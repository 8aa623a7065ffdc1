package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RolePassenger Role = "passenger"
	RoleDriver    Role = "driver"
)

func (r Role) Valid() bool {
	return r == RolePassenger || r == RoleDriver
}

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone        string    `json:"phone" gorm:"not null"`
	Role         Role      `json:"role" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Vehicle      string    `json:"vehicle,omitempty"`
	Rating       float64   `json:"-"`
	RatingCount  int       `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the sanitized projection returned to clients. Rating fields are
// present only for drivers, matching the stored model where they are meaningful.
type PublicUser struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Role        Role      `json:"role"`
	Avatar      string    `json:"avatar"`
	Vehicle     string    `json:"vehicle,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	RatingCount *int      `json:"ratingCount,omitempty"`
}

// Public strips the password hash and attaches the generated avatar.
func (u *User) Public(avatar string) PublicUser {
	p := PublicUser{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Role:    u.Role,
		Avatar:  avatar,
		Vehicle: u.Vehicle,
	}
	if u.Role == RoleDriver {
		rating := u.Rating
		count := u.RatingCount
		p.Rating = &rating
		p.RatingCount = &count
	}
	return p
}

// AvatarLetter is the single uppercase initial shown on ride cards.
func (u *User) AvatarLetter() string {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(name)[0]))
}
