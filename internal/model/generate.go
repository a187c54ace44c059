// internal/model/generate.go
package model

// GenerateCardRequest はAI生成APIのリクエストボディ。
// topic か source_text の少なくとも一方が必要 (ハンドラで検証)。
type GenerateCardRequest struct {
	Topic      string `json:"topic,omitempty" validate:"omitempty,max=500"`
	SourceText string `json:"source_text,omitempty" validate:"omitempty,max=20000"`
	Difficulty string `json:"difficulty,omitempty" validate:"omitempty,oneof=basico medio avanzado"`
}

// GeneratedCard は生成ストリーム完了後にパースされるカードペイロード
type GeneratedCard struct {
	Title     string   `json:"title"`
	Level1    string   `json:"level1"`
	Level2    string   `json:"level2"`
	Level3    string   `json:"level3"`
	Level4    string   `json:"level4"`
	Questions []string `json:"questions"`
}

// GenerationEvent はクライアントへ流す進捗イベント (SSEの data 部)
type GenerationEvent struct {
	Status  string         `json:"status"` // processing / completed / error
	Message string         `json:"message,omitempty"`
	Result  *GeneratedCard `json:"result,omitempty"`
}
