// internal/study/navigator.go
package study

// Package study は学習モードの画面遷移を決定的な状態機械として実装します。
// Level(1..4) → Questions → Review の順で進み、タイマーは Tick() 経由でのみ
// 進むため、実時間に依存せずテストできます。

// Phase は1枚のカード内での学習フェーズ
type Phase string

const (
	PhaseConcept   Phase = "concept"   // レベル1〜4の内容表示
	PhaseQuestions Phase = "questions" // 自己確認の質問
	PhaseReview    Phase = "review"    // 振り返り (理解度の入力)
)

// LevelCount はカードの深度レベル数 (固定)
const LevelCount = 4

// levelEstimates はレベルごとの目安時間 (秒)。自動送りの発火閾値。
var levelEstimates = [LevelCount]int{30, 60, 120, 180}

// LevelEstimate は指定レベル (1..4) の目安時間を秒で返します
func LevelEstimate(level int) int {
	if level < 1 || level > LevelCount {
		return 0
	}
	return levelEstimates[level-1]
}

// Navigator は1枚のカードに対する学習フェーズの状態機械です。
// カードリストそのものは所有しません (Session が所有)。
type Navigator struct {
	level          int // 1..4
	phase          Phase
	totalSeconds   int
	levelSeconds   [LevelCount]int
	conceptSeconds int // 現在のレベルに入ってからの経過秒 (自動送り判定用)
	autoAdvance    bool
	timerRunning   bool
	understanding  int // 1..5、0は未入力
}

func NewNavigator() *Navigator {
	return &Navigator{
		level:        1,
		phase:        PhaseConcept,
		timerRunning: true,
	}
}

func (n *Navigator) Level() int         { return n.level }
func (n *Navigator) Phase() Phase       { return n.phase }
func (n *Navigator) TotalSeconds() int  { return n.totalSeconds }
func (n *Navigator) AutoAdvance() bool  { return n.autoAdvance }
func (n *Navigator) TimerRunning() bool { return n.timerRunning }
func (n *Navigator) Understanding() int { return n.understanding }

// LevelSeconds はレベルごとの累積秒のコピーを返します
func (n *Navigator) LevelSeconds() [LevelCount]int {
	return n.levelSeconds
}

// Next は1段階先へ進めます。Review からの呼び出しは状態を変えず、
// カード完了 (呼び出し側でカードを進めるべき) を true で通知します。
func (n *Navigator) Next() (finished bool) {
	switch {
	case n.phase == PhaseReview:
		return true
	case n.phase == PhaseQuestions:
		n.phase = PhaseReview
	case n.level < LevelCount:
		n.enterLevel(n.level + 1)
	default:
		n.phase = PhaseQuestions
	}
	return false
}

// Previous は Next の逆遷移です。Level(1) では何もしません。
func (n *Navigator) Previous() {
	switch {
	case n.phase == PhaseReview:
		n.phase = PhaseQuestions
	case n.phase == PhaseQuestions:
		n.enterLevel(LevelCount)
	case n.level > 1:
		n.enterLevel(n.level - 1)
	}
}

// enterLevel でレベルが変わると conceptSeconds が0に戻るため、
// 手動遷移後に古い自動送りが発火することはない。
func (n *Navigator) enterLevel(level int) {
	n.level = level
	n.phase = PhaseConcept
	n.conceptSeconds = 0
}

// Reset は Level(1) に戻し、全タイマーと理解度をゼロクリアします。
// 自動送りフラグは維持します (元の画面の挙動に合わせる)。
func (n *Navigator) Reset() {
	auto := n.autoAdvance
	*n = Navigator{
		level:        1,
		phase:        PhaseConcept,
		timerRunning: true,
		autoAdvance:  auto,
	}
}

// ToggleAutoAdvance は自動送りの有効/無効を切り替え、新しい状態を返します
func (n *Navigator) ToggleAutoAdvance() bool {
	n.autoAdvance = !n.autoAdvance
	return n.autoAdvance
}

// ToggleTimer は秒の積算を一時停止/再開します。状態遷移には影響しません。
func (n *Navigator) ToggleTimer() bool {
	n.timerRunning = !n.timerRunning
	return n.timerRunning
}

// SetUnderstanding は理解度 (1..5) を記録します。範囲外は無視して false を返します。
// 入力は任意で、未入力のまま先へ進んでも構いません。
func (n *Navigator) SetUnderstanding(rating int) bool {
	if rating < 1 || rating > 5 {
		return false
	}
	n.understanding = rating
	return true
}

// Tick は経過秒を1秒ずつ積算します。タイマー停止中は何も起こりません。
// 合計秒は常に進み、レベル別の秒は Review に入ると凍結されます。
// 自動送りが有効な場合、現在レベルの経過秒が目安時間に達した時点で
// Next を自動発火します (戻り値は発火回数)。
func (n *Navigator) Tick(seconds int) (advanced int) {
	if !n.timerRunning {
		return 0
	}
	for i := 0; i < seconds; i++ {
		n.totalSeconds++
		if n.phase != PhaseReview {
			n.levelSeconds[n.level-1]++
		}
		if n.phase == PhaseConcept {
			n.conceptSeconds++
			if n.autoAdvance && n.conceptSeconds >= levelEstimates[n.level-1] {
				n.Next()
				advanced++
			}
		}
	}
	return advanced
}

// Snapshot は現在状態の読み取り専用コピーです
type Snapshot struct {
	Phase         Phase `json:"phase"`
	Level         int   `json:"level"`
	TimeSpent     int   `json:"time_spent"`
	LevelTimes    []int `json:"level_times"`
	AutoAdvance   bool  `json:"auto_advance"`
	TimerRunning  bool  `json:"timer_running"`
	Understanding *int  `json:"understanding,omitempty"`
}

func (n *Navigator) Snapshot() Snapshot {
	times := make([]int, LevelCount)
	copy(times, n.levelSeconds[:])
	s := Snapshot{
		Phase:        n.phase,
		Level:        n.level,
		TimeSpent:    n.totalSeconds,
		LevelTimes:   times,
		AutoAdvance:  n.autoAdvance,
		TimerRunning: n.timerRunning,
	}
	if n.understanding != 0 {
		r := n.understanding
		s.Understanding = &r
	}
	return s
}
