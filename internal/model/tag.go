// internal/model/tag.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTagColor はカラー未指定時に割り当てる表示色
const DefaultTagColor = "#3B82F6"

// Tag はカードに付与できる名前付きラベルを表します。
// 名前はユーザー内で大文字小文字を区別せず一意。
type Tag struct {
	TagID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"tag_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_tags_user_name,unique" json:"-"`
	Name   string    `gorm:"not null;index:idx_tags_user_name,unique" json:"name"`
	Color  string    `gorm:"not null" json:"color"`

	// 関連カード数 (一覧・取得時に集計して詰める。カラムではない)
	CardCount int64 `gorm:"->;-:migration" json:"card_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Tag) TableName() string {
	return "tags"
}

// タグ作成リクエストDTO
type PostTagRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// タグ更新リクエストDTO (リネーム・色変更)
type PutTagRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}
