// internal/model/card.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Card は4段階の深度レベルを持つ学習カードを表します
type Card struct {
	CardID uuid.UUID `gorm:"type:uuid;primaryKey" json:"card_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Title  string    `gorm:"not null" json:"title"`
	Source string    `json:"source,omitempty"`       // 生成元のテキスト（任意）
	Level1 string    `gorm:"not null" json:"level1"` // キーコンセプト
	Level2 string    `gorm:"not null" json:"level2"` // 要点サマリー
	Level3 string    `gorm:"not null" json:"level3"` // 詳細サマリー
	Level4 string    `gorm:"not null" json:"level4"` // 発展的な分析

	// 自己確認用の質問リスト (空でも可)
	Questions pq.StringArray `gorm:"type:text[]" json:"questions"`

	Tags      []Tag          `gorm:"many2many:card_tags;foreignKey:CardID;joinForeignKey:CardID;references:TagID;joinReferences:TagID" json:"tags"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用
}

func (Card) TableName() string {
	return "cards"
}

// カード作成リクエストDTO。タイトルと4レベルは必須、質問とタグは空でも良い。
type PostCardRequest struct {
	Title     string   `json:"title" validate:"required,max=200"`
	Source    string   `json:"source,omitempty"`
	Level1    string   `json:"level1" validate:"required"`
	Level2    string   `json:"level2" validate:"required"`
	Level3    string   `json:"level3" validate:"required"`
	Level4    string   `json:"level4" validate:"required"`
	Questions []string `json:"questions,omitempty"`
	Tags      []string `json:"tags,omitempty" validate:"omitempty,dive,required,max=50"`
}

// カード更新（全体置換）リクエストDTO。タグ集合も丸ごと置き換える。
type PutCardRequest struct {
	Title     string   `json:"title" validate:"required,max=200"`
	Source    string   `json:"source,omitempty"`
	Level1    string   `json:"level1" validate:"required"`
	Level2    string   `json:"level2" validate:"required"`
	Level3    string   `json:"level3" validate:"required"`
	Level4    string   `json:"level4" validate:"required"`
	Questions []string `json:"questions,omitempty"`
	Tags      []string `json:"tags,omitempty" validate:"omitempty,dive,required,max=50"`
}

// カード更新（部分）リクエストDTO
type PatchCardRequest struct {
	Title     *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Source    *string   `json:"source,omitempty"`
	Level1    *string   `json:"level1,omitempty" validate:"omitempty,min=1"`
	Level2    *string   `json:"level2,omitempty" validate:"omitempty,min=1"`
	Level3    *string   `json:"level3,omitempty" validate:"omitempty,min=1"`
	Level4    *string   `json:"level4,omitempty" validate:"omitempty,min=1"`
	Questions *[]string `json:"questions,omitempty"`
	Tags      *[]string `json:"tags,omitempty" validate:"omitempty,dive,required,max=50"`
}

// Pagination はページングされた一覧レスポンスのメタ情報
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// CardPageResponse はカード検索・一覧のレスポンスDTO
type CardPageResponse struct {
	Cards      []*Card    `json:"cards"`
	Pagination Pagination `json:"pagination"`
}
