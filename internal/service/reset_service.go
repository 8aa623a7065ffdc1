package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yervar/yervar-backend/internal/config"
	"github.com/yervar/yervar-backend/internal/domain"
	"github.com/yervar/yervar-backend/internal/repository"
)

type ResetService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	tokenRepo   repository.ResetTokenRepository
	cfg         *config.Config
}

func NewResetService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, tokenRepo repository.ResetTokenRepository, cfg *config.Config) *ResetService {
	return &ResetService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokenRepo:   tokenRepo,
		cfg:         cfg,
	}
}

// Request issues a recovery token when the email matches an account,
// overwriting any prior token. It succeeds either way so callers cannot
// probe which emails are registered. The token is delivered out-of-band
// through the operator log.
func (s *ResetService) Request(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token := &domain.PasswordResetToken{
		Email:     user.Email,
		Token:     newResetToken(),
		ExpiresAt: time.Now().Add(s.cfg.ResetTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := s.tokenRepo.Upsert(ctx, token); err != nil {
		return err
	}

	log.Printf("--- PASSWORD RESET REQUEST --- user=%s token=%s", user.Email, token.Token)
	return nil
}

// Redeem consumes a token exactly once: on success the password hash is
// replaced (no current-password check), every live session for the account
// is destroyed, and the token record is deleted.
func (s *ResetService) Redeem(ctx context.Context, email, token, newPassword string) error {
	record, err := s.tokenRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInvalidOrExpiredToken
		}
		return err
	}

	if record.Token != token || record.Expired(time.Now()) {
		return domain.ErrInvalidOrExpiredToken
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// Whoever held the old password loses any session they opened with it.
	if err := s.sessionRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return err
	}

	return s.tokenRepo.DeleteByEmail(ctx, email)
}

// newResetToken returns an 8-character uppercase code, short enough to type
// from the recovery message.
func newResetToken() string {
	return strings.ToUpper(uuid.New().String()[:8])
}
