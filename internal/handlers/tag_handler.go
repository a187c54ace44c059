// internal/handlers/tag_handler.go
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

type TagHandler struct {
	service service.TagService
	logger  *slog.Logger
}

func NewTagHandler(s service.TagService, logger *slog.Logger) *TagHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TagHandler{
		service: s,
		logger:  logger,
	}
}

// GetTags はタグ一覧 (使用カード数付き) を返すハンドラ
func (h *TagHandler) GetTags(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTags"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	tags, err := h.service.ListTags(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing tags in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, tags)
}

// GetTag は単一タグの取得ハンドラ
func (h *TagHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTag"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	tagID, err := tagIDFromURL(r)
	if err != nil {
		logger.Warn("Invalid tag ID in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	tag, err := h.service.GetTag(r.Context(), userID, tagID)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, tag)
}

// PostTag は新しいタグを作成するハンドラ
func (h *TagHandler) PostTag(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostTag"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	var req model.PostTagRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	tag, err := h.service.CreateTag(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error creating tag in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Tag created successfully", slog.String("tag_id", tag.TagID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, tag)
}

// PutTag はタグの名前と色を更新するハンドラ
func (h *TagHandler) PutTag(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutTag"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	tagID, err := tagIDFromURL(r)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.PutTagRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	tag, err := h.service.UpdateTag(r.Context(), userID, tagID, &req)
	if err != nil {
		logger.Error("Error updating tag in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, tag)
}

// DeleteTag はタグを削除するハンドラ。使用中のタグは409になる。
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteTag"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	tagID, err := tagIDFromURL(r)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	if err := h.service.DeleteTag(r.Context(), userID, tagID); err != nil {
		logger.Error("Error deleting tag in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Tag deleted successfully", slog.String("tag_id", tagID.String()))
	w.WriteHeader(http.StatusNoContent)
}

func tagIDFromURL(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, "tag_id")
	tagID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_TAG_ID", "タグIDの形式が正しくありません。", "tag_id", model.ErrInvalidInput)
	}
	return tagID, nil
}
