// internal/search/debounce.go
package search

import (
	"sync"
	"time"
)

// Debouncer は連続して届く検索条件の変更を1回の実行にまとめます。
// Trigger のたびに保留中の実行はキャンセルされ、待ち時間をリセットして
// 最後に渡された関数だけが実行されます。Stop 後は何も発火しません。
type Debouncer struct {
	wait time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64 // 古いタイマーの発火を抑止する世代カウンタ
	stopped bool
}

func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Trigger は待ち時間経過後に fn を実行するよう予約します。
// 先行する予約はこの呼び出しで無効になります。
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		stale := d.stopped || gen != d.gen
		d.mu.Unlock()
		if stale {
			// Stop しても AfterFunc が既に走り出している場合があるため、
			// 世代を比較して追い越されたタイマーを握りつぶす
			return
		}
		fn()
	})
}

// Stop は保留中の実行をキャンセルし、以降の Trigger を無効化します
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
