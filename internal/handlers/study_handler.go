// internal/handlers/study_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_4_study_cards/internal/middleware"
	"go_4_study_cards/internal/model"
	"go_4_study_cards/internal/service"
	"go_4_study_cards/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type StudyHandler struct {
	service service.StudyService
	logger  *slog.Logger
}

func NewStudyHandler(s service.StudyService, logger *slog.Logger) *StudyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudyHandler{
		service: s,
		logger:  logger,
	}
}

// PostSession は学習セッションを開始するハンドラ。
// ボディは省略可能 (省略時は最近更新されたカードで開始)。
func (h *StudyHandler) PostSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostSession"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	var req model.StartStudySessionRequest
	if r.ContentLength > 0 {
		if err := webutil.DecodeJSONBody(r, &req); err != nil {
			logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
			webutil.HandleError(w, err)
			return
		}
		if err := webutil.ValidateStruct(req); err != nil {
			webutil.HandleError(w, err)
			return
		}
	}

	resp, err := h.service.StartSession(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error starting study session in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Study session started", slog.String("session_id", resp.SessionID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, resp)
}

// GetSession は現在のセッション状態を返すハンドラ
func (h *StudyHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSession"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	sessionID, err := sessionIDFromURL(r)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	resp, err := h.service.GetSession(r.Context(), userID, sessionID)
	if err != nil {
		logger.Warn("Study session lookup failed", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// PostAction はセッションに操作 (next / previous / reset など) を適用するハンドラ。
// キーボードのキー名でも受け付ける。
func (h *StudyHandler) PostAction(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostAction"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	sessionID, err := sessionIDFromURL(r)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.StudyActionRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		webutil.HandleError(w, err)
		return
	}

	resp, err := h.service.ApplyAction(r.Context(), userID, sessionID, &req)
	if err != nil {
		logger.Warn("Error applying study action", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// DeleteSession はセッションを終了するハンドラ
func (h *StudyHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteSession"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	sessionID, err := sessionIDFromURL(r)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	if err := h.service.EndSession(r.Context(), userID, sessionID); err != nil {
		logger.Warn("Error ending study session", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Study session ended", slog.String("session_id", sessionID.String()))
	w.WriteHeader(http.StatusNoContent)
}

func sessionIDFromURL(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, "session_id")
	sessionID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_SESSION_ID", "セッションIDの形式が正しくありません。", "session_id", model.ErrInvalidInput)
	}
	return sessionID, nil
}
