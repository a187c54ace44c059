// internal/search/debounce_test.go
package search

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_Trigger(t *testing.T) {
	t.Run("正常系: 連続トリガーは最後の1回だけ実行される", func(t *testing.T) {
		d := NewDebouncer(30 * time.Millisecond)
		defer d.Stop()

		var calls int32
		var last int32
		for i := 1; i <= 5; i++ {
			n := int32(i)
			d.Trigger(func() {
				atomic.AddInt32(&calls, 1)
				atomic.StoreInt32(&last, n)
			})
			time.Sleep(5 * time.Millisecond)
		}

		// 最後のトリガーから十分待つ
		time.Sleep(100 * time.Millisecond)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		assert.Equal(t, int32(5), atomic.LoadInt32(&last))
	})

	t.Run("正常系: 間隔を空ければそれぞれ実行される", func(t *testing.T) {
		d := NewDebouncer(10 * time.Millisecond)
		defer d.Stop()

		var calls int32
		d.Trigger(func() { atomic.AddInt32(&calls, 1) })
		time.Sleep(50 * time.Millisecond)
		d.Trigger(func() { atomic.AddInt32(&calls, 1) })
		time.Sleep(50 * time.Millisecond)

		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	// 停止後のトリガーは無視される
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
