package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yervar/yervar-backend/internal/domain"
)

type resetTokenRepository struct {
	db *gorm.DB
}

func NewResetTokenRepository(db *gorm.DB) *resetTokenRepository {
	return &resetTokenRepository{db: db}
}

func (r *resetTokenRepository) Upsert(ctx context.Context, token *domain.PasswordResetToken) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at"}),
	}).Create(token).Error
}

func (r *resetTokenRepository) GetByEmail(ctx context.Context, email string) (*domain.PasswordResetToken, error) {
	var token domain.PasswordResetToken
	err := r.db.WithContext(ctx).First(&token, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *resetTokenRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Delete(&domain.PasswordResetToken{}, "email = ?", email).Error
}
