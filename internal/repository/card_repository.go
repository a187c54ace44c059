//go:generate mockery --name CardRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go_4_study_cards/internal/middleware"
	"go_4_study_cards/internal/model"
	"go_4_study_cards/internal/search"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CardRepository はカードの永続化を担います。全操作が所有者の userID で絞り込まれ、
// 他ユーザーのカードは存在しないものとして扱われます。
type CardRepository interface {
	Create(ctx context.Context, tx *gorm.DB, card *model.Card) error
	FindByID(ctx context.Context, db *gorm.DB, userID, cardID uuid.UUID) (*model.Card, error)
	FindRecent(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]*model.Card, error)
	Search(ctx context.Context, db *gorm.DB, userID uuid.UUID, q search.Query, now time.Time) ([]*model.Card, int64, error)
	Update(ctx context.Context, tx *gorm.DB, userID, cardID uuid.UUID, updates map[string]interface{}) error
	ReplaceTags(ctx context.Context, tx *gorm.DB, card *model.Card, tags []*model.Tag) error
	Delete(ctx context.Context, tx *gorm.DB, userID, cardID uuid.UUID) error
}

type gormCardRepository struct{}

func NewGormCardRepository() CardRepository {
	return &gormCardRepository{}
}

func (r *gormCardRepository) Create(ctx context.Context, tx *gorm.DB, card *model.Card) error {
	logger := middleware.GetLogger(ctx)
	// タグの関連はカードと同時に作らず ReplaceTags で張る
	result := tx.WithContext(ctx).Omit("Tags").Create(card)
	if result.Error != nil {
		logger.Error("Error creating card in DB",
			"error", result.Error,
			"user_id", card.UserID.String(),
			"title", card.Title,
		)
		return fmt.Errorf("gormCardRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCardRepository) FindByID(ctx context.Context, db *gorm.DB, userID, cardID uuid.UUID) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var card model.Card
	result := db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ? AND card_id = ?", userID, cardID).
		First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding card by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"card_id", cardID.String(),
		)
		return nil, fmt.Errorf("gormCardRepository.FindByID: %w", result.Error)
	}
	return &card, nil
}

// FindRecent は更新日時の新しい順に最大 limit 件を返します (学習モードの作業セット用)
func (r *gormCardRepository) FindRecent(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var cards []*model.Card
	result := db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&cards)
	if result.Error != nil {
		logger.Error("Error finding recent cards in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormCardRepository.FindRecent: %w", result.Error)
	}
	return cards, nil
}

// Search はクエリ仕様を適用したページと、ページングに依存しない総件数を返します。
// q は正規化済みであること。
func (r *gormCardRepository) Search(ctx context.Context, db *gorm.DB, userID uuid.UUID, q search.Query, now time.Time) ([]*model.Card, int64, error) {
	logger := middleware.GetLogger(ctx)

	query := db.WithContext(ctx).Model(&model.Card{}).Where("cards.user_id = ?", userID)

	// タイトル+全レベルへの部分一致 (大文字小文字無視)
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where(
			"LOWER(cards.title) LIKE ? OR LOWER(cards.level1) LIKE ? OR LOWER(cards.level2) LIKE ? OR LOWER(cards.level3) LIKE ? OR LOWER(cards.level4) LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	// タグ名のいずれかに一致すればヒット (match-any)
	if len(q.Tags) > 0 {
		lowered := make([]string, len(q.Tags))
		for i, name := range q.Tags {
			lowered[i] = strings.ToLower(name)
		}
		sub := db.Session(&gorm.Session{NewDB: true}).
			Table("card_tags").
			Select("card_tags.card_id").
			Joins("JOIN tags ON tags.tag_id = card_tags.tag_id").
			Where("LOWER(tags.name) IN ?", lowered)
		query = query.Where("cards.card_id IN (?)", sub)
	}

	if cutoff, ok := q.DateRange.Cutoff(now); ok {
		query = query.Where("cards.updated_at >= ?", cutoff)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Error counting cards in DB", "error", err, "user_id", userID.String())
		return nil, 0, fmt.Errorf("gormCardRepository.Search(count): %w", err)
	}

	var cards []*model.Card
	result := query.
		Preload("Tags").
		Order(q.OrderClause()).
		Offset(q.Offset()).
		Limit(q.PageSize).
		Find(&cards)
	if result.Error != nil {
		logger.Error("Error searching cards in DB", "error", result.Error, "user_id", userID.String())
		return nil, 0, fmt.Errorf("gormCardRepository.Search: %w", result.Error)
	}
	return cards, total, nil
}

func (r *gormCardRepository) Update(ctx context.Context, tx *gorm.DB, userID, cardID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Card{}).
		Where("user_id = ? AND card_id = ?", userID, cardID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating card in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"card_id", cardID.String(),
		)
		return fmt.Errorf("gormCardRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ReplaceTags はカードのタグ集合を丸ごと置き換えます
func (r *gormCardRepository) ReplaceTags(ctx context.Context, tx *gorm.DB, card *model.Card, tags []*model.Tag) error {
	logger := middleware.GetLogger(ctx)
	if err := tx.WithContext(ctx).Model(card).Association("Tags").Replace(tags); err != nil {
		logger.Error("Error replacing card tags in DB",
			"error", err,
			"card_id", card.CardID.String(),
		)
		return fmt.Errorf("gormCardRepository.ReplaceTags: %w", err)
	}
	return nil
}

// Delete はカードを論理削除します。タグへの関連はここで外しますが、
// タグ自体は残ります。
func (r *gormCardRepository) Delete(ctx context.Context, tx *gorm.DB, userID, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	var card model.Card
	result := tx.WithContext(ctx).Where("user_id = ? AND card_id = ?", userID, cardID).First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.ErrNotFound
		}
		logger.Error("Error finding card for deletion",
			"error", result.Error,
			"card_id", cardID.String(),
		)
		return fmt.Errorf("gormCardRepository.Delete(find): %w", result.Error)
	}

	if err := tx.WithContext(ctx).Model(&card).Association("Tags").Clear(); err != nil {
		logger.Error("Error clearing card tag associations",
			"error", err,
			"card_id", cardID.String(),
		)
		return fmt.Errorf("gormCardRepository.Delete(clear tags): %w", err)
	}

	deleteResult := tx.WithContext(ctx).Delete(&card)
	if deleteResult.Error != nil {
		logger.Error("Error deleting card in DB",
			"error", deleteResult.Error,
			"card_id", cardID.String(),
		)
		return fmt.Errorf("gormCardRepository.Delete: %w", deleteResult.Error)
	}
	if deleteResult.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
