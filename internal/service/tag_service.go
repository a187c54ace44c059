// internal/service/tag_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"go_4_study_cards/internal/middleware"
	"go_4_study_cards/internal/model"
	"go_4_study_cards/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagService interface {
	ListTags(ctx context.Context, userID uuid.UUID) ([]*model.Tag, error)
	GetTag(ctx context.Context, userID, tagID uuid.UUID) (*model.Tag, error)
	CreateTag(ctx context.Context, userID uuid.UUID, req *model.PostTagRequest) (*model.Tag, error)
	UpdateTag(ctx context.Context, userID, tagID uuid.UUID, req *model.PutTagRequest) (*model.Tag, error)
	DeleteTag(ctx context.Context, userID, tagID uuid.UUID) error
}

type tagService struct {
	db      *gorm.DB
	tagRepo repository.TagRepository
}

func NewTagService(db *gorm.DB, tagRepo repository.TagRepository) TagService {
	return &tagService{db: db, tagRepo: tagRepo}
}

func (s *tagService) ListTags(ctx context.Context, userID uuid.UUID) ([]*model.Tag, error) {
	logger := middleware.GetLogger(ctx)

	tags, err := s.tagRepo.ListWithCounts(ctx, s.db, userID)
	if err != nil {
		logger.Error("タグ一覧の取得に失敗しました", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "タグ一覧の取得に失敗しました。", "", err)
	}
	if tags == nil {
		tags = []*model.Tag{}
	}
	return tags, nil
}

func (s *tagService) GetTag(ctx context.Context, userID, tagID uuid.UUID) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(ctx, s.db, userID, tagID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("TAG_NOT_FOUND", "タグが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "タグの取得に失敗しました。", "", err)
	}
	return tag, nil
}

func (s *tagService) CreateTag(ctx context.Context, userID uuid.UUID, req *model.PostTagRequest) (*model.Tag, error) {
	logger := middleware.GetLogger(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "タグ名は必須です。", "name", model.ErrInvalidInput)
	}
	color := req.Color
	if color == "" {
		color = model.DefaultTagColor
	}

	var created *model.Tag
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 名前の一意性は大文字小文字を区別しない
		exists, err := s.tagRepo.CheckNameExists(ctx, tx, userID, name, nil)
		if err != nil {
			logger.Error("タグ名の重複チェックに失敗しました", "name", name, "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "タグの作成に失敗しました。", "", err)
		}
		if exists {
			return model.NewAppError("DUPLICATE_TAG", "同じ名前のタグが既に存在します。", "name", model.ErrConflict)
		}

		tag := &model.Tag{
			TagID:  uuid.New(),
			UserID: userID,
			Name:   name,
			Color:  color,
		}
		if err := s.tagRepo.Create(ctx, tx, tag); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_TAG", "同じ名前のタグが既に存在します。", "name", model.ErrConflict)
			}
			logger.Error("タグの作成に失敗しました", "name", name, "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "タグの作成に失敗しました。", "", err)
		}
		created = tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *tagService) UpdateTag(ctx context.Context, userID, tagID uuid.UUID, req *model.PutTagRequest) (*model.Tag, error) {
	logger := middleware.GetLogger(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "タグ名は必須です。", "name", model.ErrInvalidInput)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tag, err := s.tagRepo.FindByID(ctx, tx, userID, tagID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("TAG_NOT_FOUND", "タグが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "タグの取得に失敗しました。", "", err)
		}

		if !strings.EqualFold(tag.Name, name) {
			exists, err := s.tagRepo.CheckNameExists(ctx, tx, userID, name, &tagID)
			if err != nil {
				logger.Error("タグ名の重複チェックに失敗しました", "name", name, "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "タグの更新に失敗しました。", "", err)
			}
			if exists {
				return model.NewAppError("DUPLICATE_TAG", "同じ名前のタグが既に存在します。", "name", model.ErrConflict)
			}
		}

		updates := map[string]interface{}{"name": name}
		if req.Color != "" {
			updates["color"] = req.Color
		}
		if err := s.tagRepo.Update(ctx, tx, userID, tagID, updates); err != nil {
			logger.Error("タグの更新に失敗しました", "tag_id", tagID, "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "タグの更新に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tag, err := s.tagRepo.FindByID(ctx, s.db, userID, tagID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "タグの取得に失敗しました。", "", err)
	}
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, userID, tagID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.tagRepo.FindByID(ctx, tx, userID, tagID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("TAG_NOT_FOUND", "タグが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "タグの取得に失敗しました。", "", err)
		}

		// 使用中のタグは削除できない
		count, err := s.tagRepo.CountCards(ctx, tx, tagID)
		if err != nil {
			logger.Error("タグの使用数の取得に失敗しました", "tag_id", tagID, "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "タグの削除に失敗しました。", "", err)
		}
		if count > 0 {
			return model.NewAppError("TAG_IN_USE", "このタグはカードで使用されているため削除できません。", "", model.ErrConflict)
		}

		if err := s.tagRepo.Delete(ctx, tx, userID, tagID); err != nil {
			logger.Error("タグの削除に失敗しました", "tag_id", tagID, "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "タグの削除に失敗しました。", "", err)
		}
		return nil
	})
	return err
}
