//go:generate mockery --name TagRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go_4_study_cards/internal/middleware"
	"go_4_study_cards/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TagRepository はタグの永続化を担います。名前の一意性は
// 大文字小文字を区別せずユーザー単位で判定します。
type TagRepository interface {
	ListWithCounts(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Tag, error)
	FindByID(ctx context.Context, db *gorm.DB, userID, tagID uuid.UUID) (*model.Tag, error)
	FindOrCreateByName(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) (*model.Tag, error)
	Create(ctx context.Context, tx *gorm.DB, tag *model.Tag) error
	Update(ctx context.Context, tx *gorm.DB, userID, tagID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, userID, tagID uuid.UUID) error
	CheckNameExists(ctx context.Context, db *gorm.DB, userID uuid.UUID, name string, excludeTagID *uuid.UUID) (bool, error)
	CountCards(ctx context.Context, db *gorm.DB, tagID uuid.UUID) (int64, error)
}

type gormTagRepository struct{}

func NewGormTagRepository() TagRepository {
	return &gormTagRepository{}
}

// ListWithCounts は全タグを関連カード数付きで名前順に返します (フィルタチップ用)
func (r *gormTagRepository) ListWithCounts(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Tag, error) {
	logger := middleware.GetLogger(ctx)
	var tags []*model.Tag
	result := db.WithContext(ctx).Model(&model.Tag{}).
		Select("tags.*, COUNT(card_tags.card_id) AS card_count").
		Joins("LEFT JOIN card_tags ON card_tags.tag_id = tags.tag_id").
		Where("tags.user_id = ?", userID).
		Group("tags.tag_id").
		Order("tags.name ASC").
		Find(&tags)
	if result.Error != nil {
		logger.Error("Error listing tags with counts in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormTagRepository.ListWithCounts: %w", result.Error)
	}
	return tags, nil
}

func (r *gormTagRepository) FindByID(ctx context.Context, db *gorm.DB, userID, tagID uuid.UUID) (*model.Tag, error) {
	logger := middleware.GetLogger(ctx)
	var tag model.Tag
	result := db.WithContext(ctx).Model(&model.Tag{}).
		Select("tags.*, COUNT(card_tags.card_id) AS card_count").
		Joins("LEFT JOIN card_tags ON card_tags.tag_id = tags.tag_id").
		Where("tags.user_id = ? AND tags.tag_id = ?", userID, tagID).
		Group("tags.tag_id").
		First(&tag)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding tag by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"tag_id", tagID.String(),
		)
		return nil, fmt.Errorf("gormTagRepository.FindByID: %w", result.Error)
	}
	return &tag, nil
}

// FindOrCreateByName は名前でタグを探し、なければデフォルト色で作ります。
// 照合は大文字小文字を区別しません (既存の "Historia" に "historia" はヒット)。
func (r *gormTagRepository) FindOrCreateByName(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) (*model.Tag, error) {
	logger := middleware.GetLogger(ctx)
	var tag model.Tag
	result := tx.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(name)).
		First(&tag)
	if result.Error == nil {
		return &tag, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		logger.Error("Error finding tag by name in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"name", name,
		)
		return nil, fmt.Errorf("gormTagRepository.FindOrCreateByName(find): %w", result.Error)
	}

	tag = model.Tag{
		TagID:  uuid.New(),
		UserID: userID,
		Name:   name,
		Color:  model.DefaultTagColor,
	}
	if err := tx.WithContext(ctx).Create(&tag).Error; err != nil {
		logger.Error("Error creating tag in DB",
			"error", err,
			"user_id", userID.String(),
			"name", name,
		)
		return nil, fmt.Errorf("gormTagRepository.FindOrCreateByName(create): %w", err)
	}
	return &tag, nil
}

func (r *gormTagRepository) Create(ctx context.Context, tx *gorm.DB, tag *model.Tag) error {
	logger := middleware.GetLogger(ctx)
	if err := tx.WithContext(ctx).Create(tag).Error; err != nil {
		logger.Error("Error creating tag in DB",
			"error", err,
			"user_id", tag.UserID.String(),
			"name", tag.Name,
		)
		return fmt.Errorf("gormTagRepository.Create: %w", err)
	}
	return nil
}

func (r *gormTagRepository) Update(ctx context.Context, tx *gorm.DB, userID, tagID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Tag{}).
		Where("user_id = ? AND tag_id = ?", userID, tagID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating tag in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"tag_id", tagID.String(),
		)
		return fmt.Errorf("gormTagRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete はタグを物理削除します。関連カード数のガードはサービス層で行います。
func (r *gormTagRepository) Delete(ctx context.Context, tx *gorm.DB, userID, tagID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("user_id = ? AND tag_id = ?", userID, tagID).
		Delete(&model.Tag{})
	if result.Error != nil {
		logger.Error("Error deleting tag in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"tag_id", tagID.String(),
		)
		return fmt.Errorf("gormTagRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormTagRepository) CheckNameExists(ctx context.Context, db *gorm.DB, userID uuid.UUID, name string, excludeTagID *uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.Tag{}).
		Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(name))
	if excludeTagID != nil {
		query = query.Where("tag_id != ?", *excludeTagID)
	}
	if err := query.Count(&count).Error; err != nil {
		logger.Error("Error checking tag name existence in DB",
			"error", err,
			"user_id", userID.String(),
			"name", name,
		)
		return false, fmt.Errorf("gormTagRepository.CheckNameExists: %w", err)
	}
	return count > 0, nil
}

// CountCards はタグに関連付いているカード数を返します (削除ガード用)
func (r *gormTagRepository) CountCards(ctx context.Context, db *gorm.DB, tagID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	err := db.WithContext(ctx).
		Table("card_tags").
		Where("tag_id = ?", tagID).
		Count(&count).Error
	if err != nil {
		logger.Error("Error counting cards for tag in DB",
			"error", err,
			"tag_id", tagID.String(),
		)
		return 0, fmt.Errorf("gormTagRepository.CountCards: %w", err)
	}
	return count, nil
}
