// internal/service/generator.go
package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go_4_study_cards/internal/config"
	"go_4_study_cards/internal/middleware"
	"go_4_study_cards/internal/model"
)

// GeneratorService はLLMの chat completions API をSSEで叩き、
// 進捗イベントを emit コールバックへ流しながらカード草案を生成します。
// 生成されたカードは保存しません (保存するかはクライアントが決める)。
type GeneratorService interface {
	GenerateCard(ctx context.Context, req *model.GenerateCardRequest, emit func(model.GenerationEvent) error) error
}

type generatorService struct {
	client *http.Client
	cfg    *config.Config
}

func NewGeneratorService(cfg *config.Config) GeneratorService {
	return &generatorService{
		// タイムアウトはストリーム全体にかかる
		client: &http.Client{Timeout: cfg.Generator.Timeout},
		cfg:    cfg,
	}
}

// chat completions APIのリクエスト/レスポンス構造 (必要なフィールドのみ)

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	Stream         bool          `json:"stream"`
	ResponseFormat *chatFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatFormat struct {
	Type string `json:"type"`
}

type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func (s *generatorService) GenerateCard(ctx context.Context, req *model.GenerateCardRequest, emit func(model.GenerationEvent) error) error {
	logger := middleware.GetLogger(ctx)

	if strings.TrimSpace(req.Topic) == "" && strings.TrimSpace(req.SourceText) == "" {
		return model.NewAppError("VALIDATION_ERROR", "トピックか元テキストのどちらかを指定してください。", "topic", model.ErrInvalidInput)
	}
	if s.cfg.Generator.APIKey == "" {
		return model.NewAppError("GENERATOR_NOT_CONFIGURED", "カード生成機能が設定されていません。", "", model.ErrInternalServer)
	}

	if err := emit(model.GenerationEvent{Status: "processing", Message: "カードを生成しています..."}); err != nil {
		return err
	}

	body, err := json.Marshal(chatRequest{
		Model: s.cfg.Generator.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(req)},
		},
		MaxTokens:      s.cfg.Generator.MaxTokens,
		Stream:         true,
		ResponseFormat: &chatFormat{Type: "json_object"},
	})
	if err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "リクエストの作成に失敗しました。", "", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Generator.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "リクエストの作成に失敗しました。", "", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.Generator.APIKey)
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		logger.Error("Generator API request failed", "error", err)
		return model.NewAppError("GENERATOR_UNAVAILABLE", "生成サービスに接続できませんでした。", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Error("Generator API returned non-200", "status", resp.StatusCode, "body", string(msg))
		return model.NewAppError("GENERATOR_UNAVAILABLE", "生成サービスがエラーを返しました。", "", model.ErrInternalServer)
	}

	card, err := s.consumeStream(ctx, resp.Body, emit)
	if err != nil {
		return err
	}

	return emit(model.GenerationEvent{Status: "completed", Result: card})
}

// consumeStream はSSEの data 行を読み、デルタを連結して最終的なカードJSONを組み立てます
func (s *generatorService) consumeStream(ctx context.Context, r io.Reader, emit func(model.GenerationEvent) error) (*model.GeneratedCard, error) {
	logger := middleware.GetLogger(ctx)

	var buf strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		if payload == "[DONE]" {
			break
		}

		var chunk chatChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			// 解釈できないチャンクは読み飛ばす
			logger.Debug("Skipping malformed stream chunk", "payload", payload)
			continue
		}
		if len(chunk.Choices) > 0 {
			buf.WriteString(chunk.Choices[0].Delta.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("Error reading generator stream", "error", err)
		return nil, model.NewAppError("GENERATOR_UNAVAILABLE", "生成ストリームの読み取りに失敗しました。", "", err)
	}

	var card model.GeneratedCard
	if err := json.Unmarshal([]byte(buf.String()), &card); err != nil {
		logger.Error("Failed to parse generated card", "error", err)
		return nil, model.NewAppError("GENERATION_FAILED", "生成結果の解析に失敗しました。もう一度お試しください。", "", err)
	}
	if card.Title == "" || card.Level1 == "" {
		return nil, model.NewAppError("GENERATION_FAILED", "生成結果が不完全でした。もう一度お試しください。", "", model.ErrInternalServer)
	}
	return &card, nil
}

const systemPrompt = `あなたは学習カードの作成アシスタントです。与えられたトピックまたはテキストから、段階的に深く理解できる学習カードを1枚作成してください。
必ず次のキーを持つJSONオブジェクトだけを返してください:
  title: カードのタイトル
  level1: 一言での要約 (1〜2文)
  level2: 基本的な説明 (2〜4文)
  level3: 詳細な説明 (例を含む)
  level4: 深掘りした解説 (背景・応用・注意点)
  questions: 理解を確認する質問の配列 (3〜5個)`

func buildUserPrompt(req *model.GenerateCardRequest) string {
	var b strings.Builder
	if req.Topic != "" {
		fmt.Fprintf(&b, "トピック: %s\n", req.Topic)
	}
	if req.SourceText != "" {
		fmt.Fprintf(&b, "元テキスト:\n%s\n", req.SourceText)
	}
	switch req.Difficulty {
	case "basico":
		b.WriteString("難易度: 初級者向けに平易な言葉で。\n")
	case "avanzado":
		b.WriteString("難易度: 上級者向けに専門的に。\n")
	default:
		b.WriteString("難易度: 中級者向けに。\n")
	}
	return b.String()
}
