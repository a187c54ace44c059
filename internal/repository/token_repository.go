package repository

import (
	"context"
	"errors"
	"fmt"

	"go_4_study_cards/internal/middleware"
	"go_4_study_cards/internal/model"

	"gorm.io/gorm"
)

// TokenRepository はアカウント有効化・パスワード再設定トークンを扱います
type TokenRepository interface {
	CreateVerificationToken(ctx context.Context, db *gorm.DB, token *model.UserVerificationToken) error
	FindVerificationToken(ctx context.Context, db *gorm.DB, token string) (*model.UserVerificationToken, error)
	DeleteVerificationToken(ctx context.Context, db *gorm.DB, token string) error
	CreatePasswordResetToken(ctx context.Context, db *gorm.DB, token *model.PasswordResetToken) error
	FindPasswordResetToken(ctx context.Context, db *gorm.DB, token string) (*model.PasswordResetToken, error)
	DeletePasswordResetToken(ctx context.Context, db *gorm.DB, token string) error
}

type gormTokenRepository struct{}

func NewGormTokenRepository() TokenRepository {
	return &gormTokenRepository{}
}

func (r *gormTokenRepository) CreateVerificationToken(ctx context.Context, db *gorm.DB, token *model.UserVerificationToken) error {
	return createToken(ctx, db, token, "verification")
}

func (r *gormTokenRepository) FindVerificationToken(ctx context.Context, db *gorm.DB, tokenStr string) (*model.UserVerificationToken, error) {
	var token model.UserVerificationToken
	if err := findToken(ctx, db, tokenStr, &token, "verification"); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *gormTokenRepository) DeleteVerificationToken(ctx context.Context, db *gorm.DB, tokenStr string) error {
	return deleteToken(ctx, db, tokenStr, &model.UserVerificationToken{}, "verification")
}

func (r *gormTokenRepository) CreatePasswordResetToken(ctx context.Context, db *gorm.DB, token *model.PasswordResetToken) error {
	return createToken(ctx, db, token, "password reset")
}

func (r *gormTokenRepository) FindPasswordResetToken(ctx context.Context, db *gorm.DB, tokenStr string) (*model.PasswordResetToken, error) {
	var token model.PasswordResetToken
	if err := findToken(ctx, db, tokenStr, &token, "password reset"); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *gormTokenRepository) DeletePasswordResetToken(ctx context.Context, db *gorm.DB, tokenStr string) error {
	return deleteToken(ctx, db, tokenStr, &model.PasswordResetToken{}, "password reset")
}

// 2種類のトークンでCRUDが同一なので共通化している

func createToken(ctx context.Context, db *gorm.DB, token interface{}, kind string) error {
	if err := db.WithContext(ctx).Create(token).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to create token", "kind", kind, "error", err)
		return fmt.Errorf("gormTokenRepository: create %s token: %w", kind, err)
	}
	return nil
}

func findToken(ctx context.Context, db *gorm.DB, tokenStr string, dst interface{}, kind string) error {
	if err := db.WithContext(ctx).Where("token = ?", tokenStr).First(dst).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Failed to find token", "kind", kind, "error", err)
		return fmt.Errorf("gormTokenRepository: find %s token: %w", kind, err)
	}
	return nil
}

func deleteToken(ctx context.Context, db *gorm.DB, tokenStr string, modelPtr interface{}, kind string) error {
	if err := db.WithContext(ctx).Where("token = ?", tokenStr).Delete(modelPtr).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to delete token", "kind", kind, "error", err)
		return fmt.Errorf("gormTokenRepository: delete %s token: %w", kind, err)
	}
	return nil
}
