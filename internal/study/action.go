// internal/study/action.go
package study

// Action は学習セッションに対して適用できる操作の列挙です
type Action string

const (
	ActionNext              Action = "next"
	ActionPrevious          Action = "previous"
	ActionReset             Action = "reset"
	ActionSkipCard          Action = "skip_card"
	ActionPreviousCard      Action = "previous_card"
	ActionToggleAutoAdvance Action = "toggle_auto_advance"
	ActionToggleTimer       Action = "toggle_timer"
)

func (a Action) Valid() bool {
	switch a {
	case ActionNext, ActionPrevious, ActionReset,
		ActionSkipCard, ActionPreviousCard,
		ActionToggleAutoAdvance, ActionToggleTimer:
		return true
	}
	return false
}

// ActionForKey はキーボードショートカットをアクションに変換します。
// キー名はブラウザの KeyboardEvent.key に合わせています。
func ActionForKey(key string) (Action, bool) {
	switch key {
	case "ArrowRight", " ", "Space":
		return ActionNext, true
	case "ArrowLeft":
		return ActionPrevious, true
	case "r", "R":
		return ActionReset, true
	}
	return "", false
}
