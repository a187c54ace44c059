// internal/study/session_test.go
package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	t.Run("正常系: カードがあればセッションを開始できる", func(t *testing.T) {
		s, err := NewSession(3)
		require.NoError(t, err)
		assert.Equal(t, 0, s.Index())
		assert.Equal(t, 3, s.Size())
		assert.True(t, s.HasNext())
		assert.False(t, s.HasPrevious())
	})

	t.Run("異常系: カード0枚はエラー", func(t *testing.T) {
		_, err := NewSession(0)
		assert.ErrorIs(t, err, ErrNoCards)
	})
}

// 1枚のカードを最後 (Review) まで進めるヘルパー
func advanceToReview(s *Session) {
	for i := 0; i < 5; i++ {
		s.Next()
	}
}

func TestSession_Next(t *testing.T) {
	t.Run("正常系: Reviewを越えると次のカードへ移りNavigatorがリセットされる", func(t *testing.T) {
		s, err := NewSession(2)
		require.NoError(t, err)

		advanceToReview(s)
		s.Navigator().Tick(30)
		require.Equal(t, PhaseReview, s.Navigator().Phase())

		s.Next() // カード境界を越える
		assert.Equal(t, 1, s.Index())
		assert.Equal(t, 1, s.Navigator().Level())
		assert.Equal(t, PhaseConcept, s.Navigator().Phase())
		assert.Equal(t, 0, s.Navigator().TotalSeconds())
		assert.False(t, s.Finished())
	})

	t.Run("正常系: 最後のカードのReviewを越えるとセッション完了", func(t *testing.T) {
		s, err := NewSession(1)
		require.NoError(t, err)

		advanceToReview(s)
		s.Next()
		assert.True(t, s.Finished())

		// 完了後のNextは何もしない
		s.Next()
		assert.True(t, s.Finished())
		assert.Equal(t, 0, s.Index())
	})
}

func TestSession_SkipAndPreviousCard(t *testing.T) {
	s, err := NewSession(3)
	require.NoError(t, err)

	assert.True(t, s.SkipCard())
	assert.Equal(t, 1, s.Index())

	assert.True(t, s.SkipCard())
	assert.Equal(t, 2, s.Index())

	// 末尾ではスキップできない
	assert.False(t, s.SkipCard())
	assert.Equal(t, 2, s.Index())

	assert.True(t, s.PreviousCard())
	assert.Equal(t, 1, s.Index())

	s.PreviousCard()
	// 先頭では戻れない
	assert.False(t, s.PreviousCard())
	assert.Equal(t, 0, s.Index())
}

func TestSession_Reset(t *testing.T) {
	t.Run("正常系: 完了状態も解除される", func(t *testing.T) {
		s, err := NewSession(1)
		require.NoError(t, err)

		advanceToReview(s)
		s.Next()
		require.True(t, s.Finished())

		s.Reset()
		assert.False(t, s.Finished())
		assert.Equal(t, 1, s.Navigator().Level())
	})
}

func TestSession_Apply(t *testing.T) {
	s, err := NewSession(2)
	require.NoError(t, err)

	tests := []struct {
		name    string
		action  Action
		wantErr error
		check   func(t *testing.T)
	}{
		{
			name:   "正常系: next",
			action: ActionNext,
			check: func(t *testing.T) {
				assert.Equal(t, 2, s.Navigator().Level())
			},
		},
		{
			name:   "正常系: previous",
			action: ActionPrevious,
			check: func(t *testing.T) {
				assert.Equal(t, 1, s.Navigator().Level())
			},
		},
		{
			name:   "正常系: toggle_auto_advance",
			action: ActionToggleAutoAdvance,
			check: func(t *testing.T) {
				assert.True(t, s.Navigator().AutoAdvance())
			},
		},
		{
			name:   "正常系: toggle_timer",
			action: ActionToggleTimer,
			check: func(t *testing.T) {
				assert.False(t, s.Navigator().TimerRunning())
			},
		},
		{
			name:   "正常系: skip_card",
			action: ActionSkipCard,
			check: func(t *testing.T) {
				assert.Equal(t, 1, s.Index())
			},
		},
		{
			name:   "正常系: previous_card",
			action: ActionPreviousCard,
			check: func(t *testing.T) {
				assert.Equal(t, 0, s.Index())
			},
		},
		{
			name:    "異常系: 未知のアクション",
			action:  Action("fly"),
			wantErr: ErrUnknownAction,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Apply(tt.action)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t)
		})
	}
}

func TestActionForKey(t *testing.T) {
	tests := []struct {
		key    string
		want   Action
		wantOK bool
	}{
		{"ArrowRight", ActionNext, true},
		{" ", ActionNext, true},
		{"Space", ActionNext, true},
		{"ArrowLeft", ActionPrevious, true},
		{"r", ActionReset, true},
		{"R", ActionReset, true},
		{"x", "", false},
		{"Enter", "", false},
	}
	for _, tt := range tests {
		got, ok := ActionForKey(tt.key)
		assert.Equal(t, tt.wantOK, ok, "key=%q", tt.key)
		assert.Equal(t, tt.want, got, "key=%q", tt.key)
	}
}
