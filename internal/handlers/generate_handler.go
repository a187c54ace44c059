// internal/handlers/generate_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go_4_study_cards/internal/middleware"
	"go_4_study_cards/internal/model"
	"go_4_study_cards/internal/service"
	"go_4_study_cards/internal/webutil"
)

type GenerateHandler struct {
	service service.GeneratorService
	logger  *slog.Logger
}

func NewGenerateHandler(s service.GeneratorService, logger *slog.Logger) *GenerateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerateHandler{
		service: s,
		logger:  logger,
	}
}

// PostGenerate はAIによるカード草案の生成ハンドラ。
// 進捗と結果を Server-Sent Events で返します。
func (h *GenerateHandler) PostGenerate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostGenerate"))

	if _, err := middleware.GetUserIDFromContext(r.Context()); err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	var req model.GenerateCardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, err)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		webutil.HandleError(w, err)
		return
	}
	// ストリームを開く前に入力を確定させる。両方空ならここで400を返す。
	if req.Topic == "" && req.SourceText == "" {
		webutil.HandleError(w, model.NewAppError("VALIDATION_ERROR", "トピックか元テキストのどちらかを指定してください。", "topic", model.ErrInvalidInput))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Error("Response writer does not support flushing")
		webutil.HandleError(w, model.NewAppError("INTERNAL_SERVER_ERROR", "ストリーミングに対応していません。", "", model.ErrInternalServer))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	emit := func(ev model.GenerationEvent) error {
		data, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if err := h.service.GenerateCard(r.Context(), &req, emit); err != nil {
		// ヘッダは送信済みなので、エラーもイベントとして流すしかない
		logger.Error("Card generation failed", slog.Any("error", err))
		msg := "カードの生成に失敗しました。"
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			msg = appErr.Detail.Message
		}
		_ = emit(model.GenerationEvent{Status: "error", Message: msg})
		return
	}

	logger.Info("Card generated successfully")
}
