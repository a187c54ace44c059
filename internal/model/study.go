// internal/model/study.go
package model

import (
	"github.com/google/uuid"

	"go_4_study_cards/internal/study"
)

// StartStudySessionRequest は学習セッション開始リクエストです。
// CardID を指定すると1枚だけ、省略すると最近更新されたカードの作業セットで開始します。
type StartStudySessionRequest struct {
	CardID *uuid.UUID `json:"card_id" validate:"omitempty"`
	Limit  int        `json:"limit" validate:"omitempty,min=1,max=100"`
}

// StudyActionRequest は学習セッションへの操作リクエストです。
// Action と Key はどちらか一方を指定します (両方指定時は Action 優先)。
type StudyActionRequest struct {
	Action        string `json:"action" validate:"omitempty,max=50"`
	Key           string `json:"key" validate:"omitempty,max=20"`
	Understanding *int   `json:"understanding" validate:"omitempty,min=1,max=5"`
}

// StudySessionResponse は学習セッションの現在状態です
type StudySessionResponse struct {
	SessionID   uuid.UUID      `json:"session_id"`
	Card        *Card          `json:"card,omitempty"`
	CardIndex   int            `json:"card_index"`
	CardCount   int            `json:"card_count"`
	State       study.Snapshot `json:"state"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
	Finished    bool           `json:"finished"`
}
