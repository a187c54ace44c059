package model

import (
	"time"

	"github.com/google/uuid"
)

// UserVerificationToken はアカウント有効化メールに埋め込むワンタイムトークン。
// 使用後または期限切れで削除される。
type UserVerificationToken struct {
	Token     string    `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (t *UserVerificationToken) Expired(at time.Time) bool {
	return at.After(t.ExpiresAt)
}

func (UserVerificationToken) TableName() string {
	return "user_verification_tokens"
}

// PasswordResetToken はパスワード再設定メールに埋め込むワンタイムトークン
type PasswordResetToken struct {
	Token     string    `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (t *PasswordResetToken) Expired(at time.Time) bool {
	return at.After(t.ExpiresAt)
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}
