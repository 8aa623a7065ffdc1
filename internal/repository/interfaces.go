package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yervar/yervar-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type RideRepository interface {
	Create(ctx context.Context, ride *domain.Ride) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ride, error)
	// ListByStatus returns rides most-recent-first.
	ListByStatus(ctx context.Context, status domain.RideStatus) ([]*domain.Ride, error)
	// ApplyRating persists the ride's rating map and the driver's updated
	// aggregate in a single transaction: either both land or neither does.
	ApplyRating(ctx context.Context, ride *domain.Ride, driver *domain.User) error
}

type ResetTokenRepository interface {
	// Upsert replaces any existing token for the same email.
	Upsert(ctx context.Context, token *domain.PasswordResetToken) error
	GetByEmail(ctx context.Context, email string) (*domain.PasswordResetToken, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type Repositories struct {
	User       UserRepository
	Session    SessionRepository
	Ride       RideRepository
	ResetToken ResetTokenRepository
}
