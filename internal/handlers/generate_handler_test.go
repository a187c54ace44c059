// internal/handlers/generate_handler_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_4_study_cards/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator は emit に任意のイベント列を流すテスト用実装
type fakeGenerator struct {
	events []model.GenerationEvent
	err    error
}

func (f *fakeGenerator) GenerateCard(ctx context.Context, req *model.GenerateCardRequest, emit func(model.GenerationEvent) error) error {
	for _, ev := range f.events {
		if err := emit(ev); err != nil {
			return err
		}
	}
	return f.err
}

// parseSSE は "data: ..." 行をイベントにデコードする
func parseSSE(t *testing.T, body string) []model.GenerationEvent {
	t.Helper()
	var events []model.GenerationEvent
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev model.GenerationEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
		events = append(events, ev)
	}
	return events
}

func TestGenerateHandler_PostGenerate(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: 進捗と結果がSSEで流れる", func(t *testing.T) {
		gen := &fakeGenerator{
			events: []model.GenerationEvent{
				{Status: "processing", Message: "カードを生成しています..."},
				{Status: "completed", Result: &model.GeneratedCard{Title: "t", Level1: "l1"}},
			},
		}
		h := NewGenerateHandler(gen, nil)

		rec := httptest.NewRecorder()
		h.PostGenerate(rec, authedRequest(http.MethodPost, "/api/v1/cards/generate", `{"topic":"TCP"}`, userID))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

		events := parseSSE(t, rec.Body.String())
		require.Len(t, events, 2)
		assert.Equal(t, "processing", events[0].Status)
		assert.Equal(t, "completed", events[1].Status)
		require.NotNil(t, events[1].Result)
		assert.Equal(t, "t", events[1].Result.Title)
	})

	t.Run("正常系: ストリーム開始後のエラーは error イベントになる", func(t *testing.T) {
		gen := &fakeGenerator{
			events: []model.GenerationEvent{{Status: "processing"}},
			err:    model.NewAppError("GENERATOR_UNAVAILABLE", "生成サービスに接続できませんでした。", "", model.ErrInternalServer),
		}
		h := NewGenerateHandler(gen, nil)

		rec := httptest.NewRecorder()
		h.PostGenerate(rec, authedRequest(http.MethodPost, "/api/v1/cards/generate", `{"topic":"TCP"}`, userID))

		// ヘッダ送信済みなのでステータスは200のまま
		assert.Equal(t, http.StatusOK, rec.Code)

		events := parseSSE(t, rec.Body.String())
		require.Len(t, events, 2)
		assert.Equal(t, "error", events[1].Status)
		assert.Equal(t, "生成サービスに接続できませんでした。", events[1].Message)
	})

	t.Run("異常系: 入力が両方空ならストリームを開かず400", func(t *testing.T) {
		h := NewGenerateHandler(&fakeGenerator{}, nil)

		rec := httptest.NewRecorder()
		h.PostGenerate(rec, authedRequest(http.MethodPost, "/api/v1/cards/generate", `{}`, userID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, rec))
	})

	t.Run("異常系: 認証なしは403", func(t *testing.T) {
		h := NewGenerateHandler(&fakeGenerator{}, nil)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/cards/generate", strings.NewReader(`{"topic":"TCP"}`))
		rec := httptest.NewRecorder()
		h.PostGenerate(rec, r)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
