// internal/handlers/card_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"go_4_study_cards/internal/middleware"
	"go_4_study_cards/internal/model"
	"go_4_study_cards/internal/search"
	"go_4_study_cards/internal/service"
	"go_4_study_cards/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CardHandler struct {
	service service.CardService
	logger  *slog.Logger
}

func NewCardHandler(s service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		service: s,
		logger:  logger,
	}
}

// PostCard は新しいカードを作成するためのハンドラ
func (h *CardHandler) PostCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCard"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.PostCardRequest
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

	card, err := h.service.CreateCard(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error creating card in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Card created successfully", slog.String("card_id", card.CardID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, card)
}

// GetCards はカードの検索・一覧取得ハンドラ。クエリパラメータで絞り込む。
func (h *CardHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCards"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	q := queryFromRequest(r)
	page, err := h.service.SearchCards(r.Context(), userID, q)
	if err != nil {
		logger.Error("Error searching cards in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, page)
}

// GetCard は単一カードの取得ハンドラ
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCard"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	cardID, err := cardIDFromURL(r)
	if err != nil {
		logger.Warn("Invalid card ID in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}

	card, err := h.service.GetCard(r.Context(), userID, cardID)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, card)
}

// PutCard はカード全体を置き換えるハンドラ
func (h *CardHandler) PutCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutCard"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	cardID, err := cardIDFromURL(r)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.PutCardRequest
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

	card, err := h.service.ReplaceCard(r.Context(), userID, cardID, &req)
	if err != nil {
		logger.Error("Error replacing card in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Card replaced successfully", slog.String("card_id", cardID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, card)
}

// PatchCard はカードの部分更新ハンドラ
func (h *CardHandler) PatchCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchCard"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	cardID, err := cardIDFromURL(r)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	var req model.PatchCardRequest
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

	card, err := h.service.UpdateCard(r.Context(), userID, cardID, &req)
	if err != nil {
		logger.Error("Error updating card in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, card)
}

// DeleteCard はカードを削除するハンドラ
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCard"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	cardID, err := cardIDFromURL(r)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	if err := h.service.DeleteCard(r.Context(), userID, cardID); err != nil {
		logger.Error("Error deleting card in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Card deleted successfully", slog.String("card_id", cardID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// --- ヘルパー ---

func cardIDFromURL(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, "card_id")
	cardID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_CARD_ID", "カードIDの形式が正しくありません。", "card_id", model.ErrInvalidInput)
	}
	return cardID, nil
}

// queryFromRequest はクエリパラメータを検索条件に変換します。
// 不正な値はエラーにせずデフォルトへ丸める (Normalizeに任せる)。
func queryFromRequest(r *http.Request) search.Query {
	params := r.URL.Query()

	q := search.Query{
		Search:    params.Get("search"),
		DateRange: search.DateRange(params.Get("date_range")),
		SortBy:    search.SortKey(params.Get("sort_by")),
		SortOrder: search.SortOrder(params.Get("sort_order")),
	}
	if tags := params.Get("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				q.Tags = append(q.Tags, t)
			}
		}
	}
	if page, err := strconv.Atoi(params.Get("page")); err == nil {
		q.Page = page
	}
	if limit, err := strconv.Atoi(params.Get("limit")); err == nil {
		q.PageSize = limit
	}
	return q
}
