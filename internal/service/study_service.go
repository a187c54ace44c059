// internal/service/study_service.go
package service

import (
	"context"
	"sync"
	"time"

	"go_4_study_cards/internal/middleware"
	"go_4_study_cards/internal/model"
	"go_4_study_cards/internal/repository"
	"go_4_study_cards/internal/study"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudyService は学習セッションを扱います。セッションはメモリ上にだけ存在し、
// 永続化しません。サーバ再起動で消えるのは仕様です。
type StudyService interface {
	StartSession(ctx context.Context, userID uuid.UUID, req *model.StartStudySessionRequest) (*model.StudySessionResponse, error)
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*model.StudySessionResponse, error)
	ApplyAction(ctx context.Context, userID, sessionID uuid.UUID, req *model.StudyActionRequest) (*model.StudySessionResponse, error)
	EndSession(ctx context.Context, userID, sessionID uuid.UUID) error
	SweepIdleSessions(idleTTL time.Duration) int
}

// studySession はサーバ側で保持する1セッション分の状態です
type studySession struct {
	sessionID uuid.UUID
	userID    uuid.UUID
	cards     []*model.Card
	session   *study.Session
	lastSeen  time.Time // 最後にアクセスされた実時刻。経過秒の計算と掃除に使う
}

type studyService struct {
	db       *gorm.DB
	cardRepo repository.CardRepository
	setLimit int

	mu       sync.Mutex
	sessions map[uuid.UUID]*studySession
	now      func() time.Time // テストで差し替える
}

func NewStudyService(db *gorm.DB, cardRepo repository.CardRepository, setLimit int) StudyService {
	return &studyService{
		db:       db,
		cardRepo: cardRepo,
		setLimit: setLimit,
		sessions: make(map[uuid.UUID]*studySession),
		now:      time.Now,
	}
}

func (s *studyService) StartSession(ctx context.Context, userID uuid.UUID, req *model.StartStudySessionRequest) (*model.StudySessionResponse, error) {
	logger := middleware.GetLogger(ctx)

	var cards []*model.Card
	if req.CardID != nil {
		card, err := s.cardRepo.FindByID(ctx, s.db, userID, *req.CardID)
		if err != nil {
			return nil, model.NewAppError("CARD_NOT_FOUND", "カードが見つかりません。", "card_id", model.ErrNotFound)
		}
		cards = []*model.Card{card}
	} else {
		limit := req.Limit
		if limit <= 0 || limit > s.setLimit {
			limit = s.setLimit
		}
		var err error
		cards, err = s.cardRepo.FindRecent(ctx, s.db, userID, limit)
		if err != nil {
			logger.Error("学習対象カードの取得に失敗しました", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習セッションの開始に失敗しました。", "", err)
		}
	}

	sess, err := study.NewSession(len(cards))
	if err != nil {
		return nil, model.NewAppError("NO_CARDS", "学習できるカードがありません。", "", model.ErrInvalidInput)
	}

	st := &studySession{
		sessionID: uuid.New(),
		userID:    userID,
		cards:     cards,
		session:   sess,
		lastSeen:  s.now(),
	}

	s.mu.Lock()
	s.sessions[st.sessionID] = st
	s.mu.Unlock()

	logger.Info("学習セッションを開始しました", "session_id", st.sessionID, "cards", len(cards))
	return s.respond(st), nil
}

func (s *studyService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*model.StudySessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	s.elapse(st)
	return s.respond(st), nil
}

func (s *studyService) ApplyAction(ctx context.Context, userID, sessionID uuid.UUID, req *model.StudyActionRequest) (*model.StudySessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	s.elapse(st)

	// 理解度はアクションと独立に記録できる
	if req.Understanding != nil {
		st.session.Navigator().SetUnderstanding(*req.Understanding)
	}

	action, err := resolveAction(req)
	if err != nil {
		return nil, err
	}
	if action != "" {
		if err := st.session.Apply(action); err != nil {
			return nil, model.NewAppError("INVALID_ACTION", "不明な操作です。", "action", model.ErrInvalidInput)
		}
	}
	return s.respond(st), nil
}

func (s *studyService) EndSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(userID, sessionID); err != nil {
		return err
	}
	delete(s.sessions, sessionID)
	return nil
}

// SweepIdleSessions は idleTTL 以上アクセスのないセッションを破棄し、
// 破棄した数を返します。main の定期タスクから呼ばれます。
func (s *studyService) SweepIdleSessions(idleTTL time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idleTTL)
	removed := 0
	for id, st := range s.sessions {
		if st.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// lookup は呼び出し元が s.mu を保持していることを前提とします。
// 他ユーザーのセッションは存在しないものとして扱う。
func (s *studyService) lookup(userID, sessionID uuid.UUID) (*studySession, error) {
	st, ok := s.sessions[sessionID]
	if !ok || st.userID != userID {
		return nil, model.NewAppError("SESSION_NOT_FOUND", "学習セッションが見つかりません。", "", model.ErrNotFound)
	}
	return st, nil
}

// elapse は前回アクセスからの実時間を秒単位で Navigator に反映します。
// タイマーを毎秒動かす代わりに、アクセス時にまとめて進める。
// lastSeen は消費した秒数分だけ進め、1秒未満の端数は次回に持ち越す。
// 端数を捨てると高頻度ポーリング時に学習時間が一切進まなくなる。
func (s *studyService) elapse(st *studySession) {
	seconds := int(s.now().Sub(st.lastSeen) / time.Second)
	if seconds > 0 {
		st.session.Tick(seconds)
		st.lastSeen = st.lastSeen.Add(time.Duration(seconds) * time.Second)
	}
}

func (s *studyService) respond(st *studySession) *model.StudySessionResponse {
	sess := st.session
	var card *model.Card
	if sess.Index() < len(st.cards) {
		card = st.cards[sess.Index()]
	}
	return &model.StudySessionResponse{
		SessionID:   st.sessionID,
		Card:        card,
		CardIndex:   sess.Index(),
		CardCount:   sess.Size(),
		State:       sess.Navigator().Snapshot(),
		HasNext:     sess.HasNext(),
		HasPrevious: sess.HasPrevious(),
		Finished:    sess.Finished(),
	}
}

// resolveAction はリクエストからアクションを決定します。
// action が優先、なければ key から引く。どちらも無ければ空 (状態照会のみ)。
func resolveAction(req *model.StudyActionRequest) (study.Action, error) {
	if req.Action != "" {
		a := study.Action(req.Action)
		if !a.Valid() {
			return "", model.NewAppError("INVALID_ACTION", "不明な操作です。", "action", model.ErrInvalidInput)
		}
		return a, nil
	}
	if req.Key != "" {
		if a, ok := study.ActionForKey(req.Key); ok {
			return a, nil
		}
		// 割り当てのないキーは何もしない (エラーにはしない)
		return "", nil
	}
	return "", nil
}
