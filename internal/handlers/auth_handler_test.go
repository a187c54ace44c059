// internal/handlers/auth_handler_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_4_study_cards/internal/middleware"
	"go_4_study_cards/internal/model"
	"go_4_study_cards/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("正常系: 登録を受け付けて案内メッセージを返す", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := NewAuthHandler(svc)

		svc.On("Register", mock.Anything, mock.MatchedBy(func(req *model.RegisterRequest) bool {
			return req.Email == "taro@example.com"
		})).Return(&model.User{UserID: uuid.New(), Email: "taro@example.com"}, nil).Once()

		body := `{"name":"太郎","email":"taro@example.com","password":"password123"}`
		rec := httptest.NewRecorder()
		h.Register(rec, jsonRequest(http.MethodPost, "/api/v1/auth/register", body))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "確認メール")
	})

	t.Run("異常系: パスワードが短いと400", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := NewAuthHandler(svc)

		body := `{"name":"太郎","email":"taro@example.com","password":"short"}`
		rec := httptest.NewRecorder()
		h.Register(rec, jsonRequest(http.MethodPost, "/api/v1/auth/register", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Register")
	})

	t.Run("異常系: 重複メールは409", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := NewAuthHandler(svc)

		svc.On("Register", mock.Anything, mock.Anything).
			Return(nil, model.NewAppError("DUPLICATE_EMAIL", "このメールアドレスは既に使用されています。", "email", model.ErrConflict)).Once()

		body := `{"name":"太郎","email":"taro@example.com","password":"password123"}`
		rec := httptest.NewRecorder()
		h.Register(rec, jsonRequest(http.MethodPost, "/api/v1/auth/register", body))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "DUPLICATE_EMAIL", decodeErrorCode(t, rec))
	})
}

func TestAuthHandler_VerifyAccount(t *testing.T) {
	t.Run("正常系", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := NewAuthHandler(svc)

		svc.On("VerifyAccount", mock.Anything, "some-token").Return(nil).Once()

		rec := httptest.NewRecorder()
		h.VerifyAccount(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify?token=some-token", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("異常系: トークンなしは400", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := NewAuthHandler(svc)

		rec := httptest.NewRecorder()
		h.VerifyAccount(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "VerifyAccount")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("正常系: トークンがボディとHttpOnlyクッキーの両方に載る", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := NewAuthHandler(svc)

		svc.On("Login", mock.Anything, mock.Anything).
			Return(&model.LoginResponse{AccessToken: "signed.jwt.token"}, nil).Once()

		body := `{"email":"taro@example.com","password":"password123"}`
		rec := httptest.NewRecorder()
		h.Login(rec, jsonRequest(http.MethodPost, "/api/v1/auth/login", body))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp model.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "signed.jwt.token", resp.AccessToken)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.AuthCookieName, cookies[0].Name)
		assert.Equal(t, "signed.jwt.token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("異常系: 認証失敗は400でクッキーなし", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := NewAuthHandler(svc)

		svc.On("Login", mock.Anything, mock.Anything).
			Return(nil, model.NewAppError("AUTHENTICATION_FAILED", "メールアドレスまたはパスワードが正しくありません。", "", model.ErrInvalidInput)).Once()

		body := `{"email":"taro@example.com","password":"wrong"}`
		rec := httptest.NewRecorder()
		h.Login(rec, jsonRequest(http.MethodPost, "/api/v1/auth/login", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("正常系: クッキーが破棄される", func(t *testing.T) {
		h := NewAuthHandler(new(mocks.AuthService))

		rec := httptest.NewRecorder()
		h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.AuthCookieName, cookies[0].Name)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})
}

func TestAuthHandler_GetMe(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: パスワードハッシュを含まないユーザー情報を返す", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := NewAuthHandler(svc)

		svc.On("GetUser", mock.Anything, userID).Return(&model.User{
			UserID:       userID,
			Name:         "太郎",
			Email:        "taro@example.com",
			PasswordHash: "secret-hash",
			IsActive:     true,
		}, nil).Once()

		rec := httptest.NewRecorder()
		h.GetMe(rec, authedRequest(http.MethodGet, "/api/v1/auth/me", "", userID))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret-hash")

		var resp model.UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, userID, resp.UserID)
		assert.True(t, resp.IsActive)
	})

	t.Run("異常系: 認証なしは403", func(t *testing.T) {
		h := NewAuthHandler(new(mocks.AuthService))

		rec := httptest.NewRecorder()
		h.GetMe(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAuthHandler_PasswordReset(t *testing.T) {
	t.Run("正常系: メールの存在に関わらず同じ応答を返す", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := NewAuthHandler(svc)

		svc.On("RequestPasswordReset", mock.Anything, "unknown@example.com").Return(nil).Once()

		rec := httptest.NewRecorder()
		h.RequestPasswordReset(rec, jsonRequest(http.MethodPost, "/api/v1/auth/password/forgot", `{"email":"unknown@example.com"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("正常系: 新しいパスワードで再設定できる", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := NewAuthHandler(svc)

		svc.On("ResetPassword", mock.Anything, "reset-token", "newpassword1").Return(nil).Once()

		body := `{"token":"reset-token","password":"newpassword1"}`
		rec := httptest.NewRecorder()
		h.ResetPassword(rec, jsonRequest(http.MethodPost, "/api/v1/auth/password/reset", body))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})
}
