// internal/service/card_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go_4_study_cards/internal/middleware"
	"go_4_study_cards/internal/model"
	"go_4_study_cards/internal/repository"
	"go_4_study_cards/internal/search"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type CardService interface {
	CreateCard(ctx context.Context, userID uuid.UUID, req *model.PostCardRequest) (*model.Card, error)
	GetCard(ctx context.Context, userID, cardID uuid.UUID) (*model.Card, error)
	SearchCards(ctx context.Context, userID uuid.UUID, q search.Query) (*model.CardPageResponse, error)
	ReplaceCard(ctx context.Context, userID, cardID uuid.UUID, req *model.PutCardRequest) (*model.Card, error)
	UpdateCard(ctx context.Context, userID, cardID uuid.UUID, req *model.PatchCardRequest) (*model.Card, error)
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}

type cardService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	cardRepo repository.CardRepository
	tagRepo  repository.TagRepository
	now      func() time.Time
}

func NewCardService(db *gorm.DB, cardRepo repository.CardRepository, tagRepo repository.TagRepository) CardService {
	return &cardService{
		db:       db,
		cardRepo: cardRepo,
		tagRepo:  tagRepo,
		now:      time.Now,
	}
}

func (s *cardService) CreateCard(ctx context.Context, userID uuid.UUID, req *model.PostCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)

	var createdID uuid.UUID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card := &model.Card{
			CardID:    uuid.New(),
			UserID:    userID,
			Title:     strings.TrimSpace(req.Title),
			Source:    req.Source,
			Level1:    req.Level1,
			Level2:    req.Level2,
			Level3:    req.Level3,
			Level4:    req.Level4,
			Questions: pq.StringArray(req.Questions),
		}
		if err := s.cardRepo.Create(ctx, tx, card); err != nil {
			logger.Error("カードの作成に失敗しました", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの作成に失敗しました。", "", err)
		}

		// タグは名前で解決する。存在しなければその場で作成する。
		tags, err := s.resolveTags(ctx, tx, userID, req.Tags)
		if err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := s.cardRepo.ReplaceTags(ctx, tx, card, tags); err != nil {
				logger.Error("タグの紐付けに失敗しました", "card_id", card.CardID, "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "タグの設定に失敗しました。", "tags", err)
			}
		}

		createdID = card.CardID
		return nil // コミット
	})
	if err != nil {
		return nil, err
	}

	// タグ込みの状態を返すため作成後に取り直す
	return s.GetCard(ctx, userID, createdID)
}

func (s *cardService) GetCard(ctx context.Context, userID, cardID uuid.UUID) (*model.Card, error) {
	card, err := s.cardRepo.FindByID(ctx, s.db, userID, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("CARD_NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
	}
	return card, nil
}

func (s *cardService) SearchCards(ctx context.Context, userID uuid.UUID, q search.Query) (*model.CardPageResponse, error) {
	logger := middleware.GetLogger(ctx)

	q = q.Normalize()
	cards, total, err := s.cardRepo.Search(ctx, s.db, userID, q, s.now())
	if err != nil {
		logger.Error("カードの検索に失敗しました", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの検索に失敗しました。", "", err)
	}

	if cards == nil {
		cards = []*model.Card{}
	}
	return &model.CardPageResponse{
		Cards: cards,
		Pagination: model.Pagination{
			Page:       q.Page,
			Limit:      q.PageSize,
			Total:      total,
			TotalPages: q.TotalPages(total),
		},
	}, nil
}

func (s *cardService) ReplaceCard(ctx context.Context, userID, cardID uuid.UUID, req *model.PutCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := s.cardRepo.FindByID(ctx, tx, userID, cardID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("CARD_NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
		}

		updates := map[string]interface{}{
			"title":     strings.TrimSpace(req.Title),
			"source":    req.Source,
			"level1":    req.Level1,
			"level2":    req.Level2,
			"level3":    req.Level3,
			"level4":    req.Level4,
			"questions": pq.StringArray(req.Questions),
		}
		if err := s.cardRepo.Update(ctx, tx, userID, cardID, updates); err != nil {
			logger.Error("カードの更新に失敗しました", "card_id", cardID, "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの更新に失敗しました。", "", err)
		}

		// PUTはタグ集合も丸ごと置き換える (空なら全て外れる)
		tags, err := s.resolveTags(ctx, tx, userID, req.Tags)
		if err != nil {
			return err
		}
		if err := s.cardRepo.ReplaceTags(ctx, tx, card, tags); err != nil {
			logger.Error("タグの付け替えに失敗しました", "card_id", cardID, "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "タグの設定に失敗しました。", "tags", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCard(ctx, userID, cardID)
}

func (s *cardService) UpdateCard(ctx context.Context, userID, cardID uuid.UUID, req *model.PatchCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := s.cardRepo.FindByID(ctx, tx, userID, cardID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("CARD_NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
		}

		updates := make(map[string]interface{})
		if req.Title != nil {
			updates["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Source != nil {
			updates["source"] = *req.Source
		}
		if req.Level1 != nil {
			updates["level1"] = *req.Level1
		}
		if req.Level2 != nil {
			updates["level2"] = *req.Level2
		}
		if req.Level3 != nil {
			updates["level3"] = *req.Level3
		}
		if req.Level4 != nil {
			updates["level4"] = *req.Level4
		}
		if req.Questions != nil {
			updates["questions"] = pq.StringArray(*req.Questions)
		}
		if len(updates) > 0 {
			if err := s.cardRepo.Update(ctx, tx, userID, cardID, updates); err != nil {
				logger.Error("カードの更新に失敗しました", "card_id", cardID, "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの更新に失敗しました。", "", err)
			}
		}

		// tags フィールドが指定されたときだけ付け替える (nil は「変更なし」)
		if req.Tags != nil {
			tags, err := s.resolveTags(ctx, tx, userID, *req.Tags)
			if err != nil {
				return err
			}
			if err := s.cardRepo.ReplaceTags(ctx, tx, card, tags); err != nil {
				logger.Error("タグの付け替えに失敗しました", "card_id", cardID, "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "タグの設定に失敗しました。", "tags", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCard(ctx, userID, cardID)
}

func (s *cardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.cardRepo.Delete(ctx, tx, userID, cardID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("CARD_NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("カードの削除に失敗しました", "card_id", cardID, "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの削除に失敗しました。", "", err)
	}
	return nil
}

// resolveTags はタグ名のリストを Tag 実体に解決します。
// 空白のみの名前は無視し、大文字小文字を無視して重複を除きます。
func (s *cardService) resolveTags(ctx context.Context, tx *gorm.DB, userID uuid.UUID, names []string) ([]*model.Tag, error) {
	logger := middleware.GetLogger(ctx)

	seen := make(map[string]bool, len(names))
	tags := make([]*model.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		tag, err := s.tagRepo.FindOrCreateByName(ctx, tx, userID, name)
		if err != nil {
			logger.Error("タグの解決に失敗しました", "name", name, "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "タグの処理中にエラーが発生しました。", "tags", err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
