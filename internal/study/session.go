// internal/study/session.go
package study

import "errors"

var (
	ErrNoCards       = errors.New("study: no cards available")
	ErrUnknownAction = errors.New("study: unknown action")
)

// Session はカードの作業セット上のカーソルと Navigator を束ねます。
// カード本体は保持せず、件数とインデックスだけを扱います。
type Session struct {
	nav      *Navigator
	size     int
	index    int
	finished bool
}

// NewSession は size 枚のカードからなるセッションを開始します
func NewSession(size int) (*Session, error) {
	if size < 1 {
		return nil, ErrNoCards
	}
	return &Session{nav: NewNavigator(), size: size}, nil
}

func (s *Session) Navigator() *Navigator { return s.nav }
func (s *Session) Index() int            { return s.index }
func (s *Session) Size() int             { return s.size }
func (s *Session) Finished() bool        { return s.finished }
func (s *Session) HasNext() bool         { return s.index+1 < s.size }
func (s *Session) HasPrevious() bool     { return s.index > 0 }

// Next は Navigator を先へ進め、Review を越えたら次のカードへ移ります。
// 次のカードがなければセッション完了 (それ以降の Next は何もしない)。
func (s *Session) Next() {
	if s.finished {
		return
	}
	if s.nav.Next() {
		if s.HasNext() {
			s.index++
			s.nav.Reset()
		} else {
			s.finished = true
		}
	}
}

// Previous はカード内でのみ逆方向に進みます。
// カードをまたいで戻るのは PreviousCard の役目。
func (s *Session) Previous() {
	if s.finished {
		return
	}
	s.nav.Previous()
}

// Reset は現在のカードを最初からやり直します (完了状態も解除)
func (s *Session) Reset() {
	s.finished = false
	s.nav.Reset()
}

// SkipCard は次のカードへ飛びます。次がなければ false
func (s *Session) SkipCard() bool {
	if !s.HasNext() {
		return false
	}
	s.index++
	s.finished = false
	s.nav.Reset()
	return true
}

// PreviousCard は前のカードへ戻ります。前がなければ false
func (s *Session) PreviousCard() bool {
	if !s.HasPrevious() {
		return false
	}
	s.index--
	s.finished = false
	s.nav.Reset()
	return true
}

// Tick はセッション完了後を除き Navigator に経過秒を渡します。
// 自動送りは concept フェーズ内でしか発火しないため、カード境界を
// 勝手に越えることはありません。
func (s *Session) Tick(seconds int) {
	if s.finished {
		return
	}
	s.nav.Tick(seconds)
}

// Apply は名前付きアクションを適用します。未知のアクションはエラー。
func (s *Session) Apply(a Action) error {
	switch a {
	case ActionNext:
		s.Next()
	case ActionPrevious:
		s.Previous()
	case ActionReset:
		s.Reset()
	case ActionSkipCard:
		s.SkipCard()
	case ActionPreviousCard:
		s.PreviousCard()
	case ActionToggleAutoAdvance:
		s.nav.ToggleAutoAdvance()
	case ActionToggleTimer:
		s.nav.ToggleTimer()
	default:
		return ErrUnknownAction
	}
	return nil
}
