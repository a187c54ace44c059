// internal/middleware/dev_auth.go
package middleware

import (
	"context"
	"net/http"

	"go_4_study_cards/internal/model"
	"go_4_study_cards/internal/webutil"

	"github.com/google/uuid"
)

// DevUserContextMiddleware は開発時用ミドルウェアです。
// X-User-ID ヘッダーのUUIDをそのままコンテキストに設定し、
// JWTの検証は行いません (auth.enabled=false のときのみ使用)。
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			logger.Warn("[DEV AUTH] X-User-ID header missing")
			appErr := model.NewAppError("UNAUTHORIZED", "X-User-ID ヘッダーが必要です。", "", model.ErrForbidden)
			webutil.HandleError(w, appErr)
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			logger.Warn("[DEV AUTH] invalid X-User-ID format", "value", userIDStr)
			appErr := model.NewAppError("INVALID_URL_PARAM", "X-User-ID の形式が正しくありません。", "", model.ErrInvalidInput)
			webutil.HandleError(w, appErr)
			return
		}

		ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
