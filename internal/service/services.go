package service

import (
	"github.com/google/uuid"

	"github.com/yervar/yervar-backend/internal/config"
	"github.com/yervar/yervar-backend/internal/repository"
)

// Notifier is the fire-and-forget notification sink. Implementations must
// never block the caller; delivery failures are dropped silently.
type Notifier interface {
	Broadcast(title, body string)
	Notify(userID uuid.UUID, title, body string)
}

type Services struct {
	Auth    *AuthService
	Profile *ProfileService
	Ride    *RideService
	Rating  *RatingService
	Reset   *ResetService
	Suggest *SuggestService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, notifier Notifier) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, repos.Session, cfg),
		Profile: NewProfileService(repos.User),
		Ride:    NewRideService(repos.Ride, repos.User, notifier),
		Rating:  NewRatingService(repos.Ride, repos.User, notifier),
		Reset:   NewResetService(repos.User, repos.Session, repos.ResetToken, cfg),
		Suggest: NewSuggestService(cfg),
	}
}
