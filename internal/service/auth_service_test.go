// internal/service/auth_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"go_4_study_cards/internal/config"
	"go_4_study_cards/internal/model"
	"go_4_study_cards/internal/repository/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockMailer はテスト用の Mailer 実装
type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func testAuthConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "study-cards-test"
	cfg.JWT.SecretKey = "test-secret-key"
	cfg.JWT.AccessTokenTTL = time.Hour
	cfg.Frontend.BaseURL = "http://localhost:5173"
	return cfg
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	req := &model.RegisterRequest{Name: "テスト太郎", Email: "taro@example.com", Password: "password123"}

	t.Run("正常系: ユーザー作成と確認メール送信まで行う", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		mailer := new(mockMailer)
		svc := NewAuthService(db, userRepo, tokenRepo, mailer, testAuthConfig())

		userRepo.On("FindByEmail", mock.Anything, mock.Anything, req.Email).Return(nil, model.ErrNotFound).Once()
		userRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			// パスワードはハッシュで保存され、作成直後は未有効化
			return u.Email == req.Email && !u.IsActive &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) == nil
		})).Return(nil).Once()
		tokenRepo.On("CreateVerificationToken", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		mailer.On("Send", mock.Anything, req.Email, mock.Anything, mock.Anything).Return(nil).Once()

		user, err := svc.Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, req.Email, user.Email)
		assert.False(t, user.IsActive)

		userRepo.AssertExpectations(t)
		tokenRepo.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("異常系: 登録済みメールアドレスは DUPLICATE_EMAIL", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := new(mocks.UserRepository)
		svc := NewAuthService(db, userRepo, new(mocks.TokenRepository), new(mockMailer), testAuthConfig())

		existing := &model.User{UserID: uuid.New(), Email: req.Email}
		userRepo.On("FindByEmail", mock.Anything, mock.Anything, req.Email).Return(existing, nil).Once()

		_, err := svc.Register(ctx, req)
		require.Error(t, err)

		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "DUPLICATE_EMAIL", appErr.Detail.Code)
		userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("異常系: INSERT時の一意制約違反も DUPLICATE_EMAIL に倒す", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := new(mocks.UserRepository)
		svc := NewAuthService(db, userRepo, new(mocks.TokenRepository), new(mockMailer), testAuthConfig())

		userRepo.On("FindByEmail", mock.Anything, mock.Anything, req.Email).Return(nil, model.ErrNotFound).Once()
		userRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(model.ErrConflict).Once()

		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("異常系: メール送信失敗で EMAIL_SEND_FAILED", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		mailer := new(mockMailer)
		svc := NewAuthService(db, userRepo, tokenRepo, mailer, testAuthConfig())

		userRepo.On("FindByEmail", mock.Anything, mock.Anything, req.Email).Return(nil, model.ErrNotFound).Once()
		userRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		tokenRepo.On("CreateVerificationToken", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		mailer.On("Send", mock.Anything, req.Email, mock.Anything, mock.Anything).Return(assert.AnError).Once()

		_, err := svc.Register(ctx, req)
		require.Error(t, err)

		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "EMAIL_SEND_FAILED", appErr.Detail.Code)
	})
}

func TestAuthService_VerifyAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: トークン検証で有効化され、使用済みトークンは消える", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(db, userRepo, tokenRepo, new(mockMailer), testAuthConfig())

		userID := uuid.New()
		token := &model.UserVerificationToken{
			Token:     "valid-token",
			UserID:    userID,
			ExpiresAt: time.Now().Add(time.Hour),
		}
		tokenRepo.On("FindVerificationToken", mock.Anything, mock.Anything, "valid-token").Return(token, nil).Once()
		userRepo.On("Activate", mock.Anything, mock.Anything, userID).Return(nil).Once()
		tokenRepo.On("DeleteVerificationToken", mock.Anything, mock.Anything, "valid-token").Return(nil).Once()

		require.NoError(t, svc.VerifyAccount(ctx, "valid-token"))
		tokenRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("異常系: 期限切れトークンは削除して INVALID_TOKEN", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(db, userRepo, tokenRepo, new(mockMailer), testAuthConfig())

		token := &model.UserVerificationToken{
			Token:     "expired",
			UserID:    uuid.New(),
			ExpiresAt: time.Now().Add(-time.Minute),
		}
		tokenRepo.On("FindVerificationToken", mock.Anything, mock.Anything, "expired").Return(token, nil).Once()
		tokenRepo.On("DeleteVerificationToken", mock.Anything, mock.Anything, "expired").Return(nil).Once()

		err := svc.VerifyAccount(ctx, "expired")
		require.Error(t, err)

		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_TOKEN", appErr.Detail.Code)
		userRepo.AssertNotCalled(t, "Activate")
	})

	t.Run("異常系: 存在しないトークンは INVALID_TOKEN", func(t *testing.T) {
		db := setupTestDB(t)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(db, new(mocks.UserRepository), tokenRepo, new(mockMailer), testAuthConfig())

		tokenRepo.On("FindVerificationToken", mock.Anything, mock.Anything, "nope").Return(nil, model.ErrNotFound).Once()

		err := svc.VerifyAccount(ctx, "nope")
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	password := "password123"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	activeUser := &model.User{
		UserID:       uuid.New(),
		Email:        "taro@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}

	t.Run("正常系: 検証可能なJWTが返る", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := new(mocks.UserRepository)
		cfg := testAuthConfig()
		svc := NewAuthService(db, userRepo, new(mocks.TokenRepository), new(mockMailer), cfg)

		userRepo.On("FindByEmail", mock.Anything, mock.Anything, activeUser.Email).Return(activeUser, nil).Once()

		resp, err := svc.Login(ctx, &model.LoginRequest{Email: activeUser.Email, Password: password})
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)

		claims := &jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(cfg.JWT.SecretKey), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, activeUser.UserID.String(), claims.Subject)
		assert.Equal(t, cfg.App.Name, claims.Issuer)
	})

	t.Run("異常系: パスワード不一致は AUTHENTICATION_FAILED", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := new(mocks.UserRepository)
		svc := NewAuthService(db, userRepo, new(mocks.TokenRepository), new(mockMailer), testAuthConfig())

		userRepo.On("FindByEmail", mock.Anything, mock.Anything, activeUser.Email).Return(activeUser, nil).Once()

		_, err := svc.Login(ctx, &model.LoginRequest{Email: activeUser.Email, Password: "wrong-password"})
		require.Error(t, err)

		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "AUTHENTICATION_FAILED", appErr.Detail.Code)
	})

	t.Run("異常系: 未知のメールアドレスもパスワード不一致と同じ応答", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := new(mocks.UserRepository)
		svc := NewAuthService(db, userRepo, new(mocks.TokenRepository), new(mockMailer), testAuthConfig())

		userRepo.On("FindByEmail", mock.Anything, mock.Anything, "unknown@example.com").Return(nil, model.ErrNotFound).Once()

		_, err := svc.Login(ctx, &model.LoginRequest{Email: "unknown@example.com", Password: password})
		require.Error(t, err)

		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "AUTHENTICATION_FAILED", appErr.Detail.Code)
	})

	t.Run("異常系: 未有効化アカウントは ACCOUNT_NOT_ACTIVE", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := new(mocks.UserRepository)
		svc := NewAuthService(db, userRepo, new(mocks.TokenRepository), new(mockMailer), testAuthConfig())

		inactive := &model.User{
			UserID:       uuid.New(),
			Email:        "pending@example.com",
			PasswordHash: string(hash),
			IsActive:     false,
		}
		userRepo.On("FindByEmail", mock.Anything, mock.Anything, inactive.Email).Return(inactive, nil).Once()

		_, err := svc.Login(ctx, &model.LoginRequest{Email: inactive.Email, Password: password})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: リセット要求でトークン保存とメール送信が走る", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		mailer := new(mockMailer)
		svc := NewAuthService(db, userRepo, tokenRepo, mailer, testAuthConfig())

		user := &model.User{UserID: uuid.New(), Email: "taro@example.com", IsActive: true}
		userRepo.On("FindByEmail", mock.Anything, mock.Anything, user.Email).Return(user, nil).Once()
		tokenRepo.On("CreatePasswordResetToken", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		mailer.On("Send", mock.Anything, user.Email, mock.Anything, mock.Anything).Return(nil).Once()

		require.NoError(t, svc.RequestPasswordReset(ctx, user.Email))
		tokenRepo.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("正常系: 未登録メールでもエラーにしない (存在の漏洩防止)", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		mailer := new(mockMailer)
		svc := NewAuthService(db, userRepo, tokenRepo, mailer, testAuthConfig())

		userRepo.On("FindByEmail", mock.Anything, mock.Anything, "unknown@example.com").Return(nil, model.ErrNotFound).Once()

		require.NoError(t, svc.RequestPasswordReset(ctx, "unknown@example.com"))
		tokenRepo.AssertNotCalled(t, "CreatePasswordResetToken")
		mailer.AssertNotCalled(t, "Send")
	})

	t.Run("正常系: 有効なトークンでパスワードが更新される", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(db, userRepo, tokenRepo, new(mockMailer), testAuthConfig())

		userID := uuid.New()
		token := &model.PasswordResetToken{
			Token:     "reset-token",
			UserID:    userID,
			ExpiresAt: time.Now().Add(time.Hour),
		}
		tokenRepo.On("FindPasswordResetToken", mock.Anything, mock.Anything, "reset-token").Return(token, nil).Once()
		userRepo.On("UpdatePasswordHash", mock.Anything, mock.Anything, userID, mock.MatchedBy(func(h string) bool {
			return bcrypt.CompareHashAndPassword([]byte(h), []byte("newpassword1")) == nil
		})).Return(nil).Once()
		tokenRepo.On("DeletePasswordResetToken", mock.Anything, mock.Anything, "reset-token").Return(nil).Once()

		require.NoError(t, svc.ResetPassword(ctx, "reset-token", "newpassword1"))
		userRepo.AssertExpectations(t)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("異常系: 期限切れのリセットトークンは INVALID_TOKEN", func(t *testing.T) {
		db := setupTestDB(t)
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)
		svc := NewAuthService(db, userRepo, tokenRepo, new(mockMailer), testAuthConfig())

		token := &model.PasswordResetToken{
			Token:     "expired",
			UserID:    uuid.New(),
			ExpiresAt: time.Now().Add(-time.Minute),
		}
		tokenRepo.On("FindPasswordResetToken", mock.Anything, mock.Anything, "expired").Return(token, nil).Once()
		tokenRepo.On("DeletePasswordResetToken", mock.Anything, mock.Anything, "expired").Return(nil).Once()

		err := svc.ResetPassword(ctx, "expired", "newpassword1")
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		userRepo.AssertNotCalled(t, "UpdatePasswordHash")
	})
}
