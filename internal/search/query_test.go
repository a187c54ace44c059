// internal/search/query_test.go
package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Query
		want Query
	}{
		{
			name: "正常系: ゼロ値はすべてデフォルトに解決される",
			in:   Query{},
			want: Query{SortBy: SortByUpdatedAt, SortOrder: SortDesc, DateRange: DateRangeAll, Page: 1, PageSize: DefaultPageSize},
		},
		{
			name: "正常系: 有効な値はそのまま",
			in:   Query{SortBy: SortByTitle, SortOrder: SortAsc, DateRange: DateRangeWeek, Page: 3, PageSize: 50},
			want: Query{SortBy: SortByTitle, SortOrder: SortAsc, DateRange: DateRangeWeek, Page: 3, PageSize: 50},
		},
		{
			name: "エッジケース: 不正なソートキーは updatedAt desc に落ちる",
			in:   Query{SortBy: SortKey("danger; DROP TABLE"), SortOrder: SortAsc},
			want: Query{SortBy: SortByUpdatedAt, SortOrder: SortDesc, DateRange: DateRangeAll, Page: 1, PageSize: DefaultPageSize},
		},
		{
			name: "エッジケース: 有効なキーに不正な方向は desc に落ちる",
			in:   Query{SortBy: SortByTitle, SortOrder: SortOrder("sideways")},
			want: Query{SortBy: SortByTitle, SortOrder: SortDesc, DateRange: DateRangeAll, Page: 1, PageSize: DefaultPageSize},
		},
		{
			name: "エッジケース: 不明な日付範囲は all に落ちる",
			in:   Query{DateRange: DateRange("yesterday")},
			want: Query{SortBy: SortByUpdatedAt, SortOrder: SortDesc, DateRange: DateRangeAll, Page: 1, PageSize: DefaultPageSize},
		},
		{
			name: "エッジケース: ページサイズは上限でクランプされる",
			in:   Query{PageSize: 9999},
			want: Query{SortBy: SortByUpdatedAt, SortOrder: SortDesc, DateRange: DateRangeAll, Page: 1, PageSize: MaxPageSize},
		},
		{
			name: "エッジケース: 負のページは1に丸める",
			in:   Query{Page: -5},
			want: Query{SortBy: SortByUpdatedAt, SortOrder: SortDesc, DateRange: DateRangeAll, Page: 1, PageSize: DefaultPageSize},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestQuery_OffsetAndTotalPages(t *testing.T) {
	q := Query{Page: 3, PageSize: 20}
	assert.Equal(t, 40, q.Offset())

	// 45件を20件ずつ → 3ページ
	assert.Equal(t, 3, q.TotalPages(45))
	assert.Equal(t, 1, q.TotalPages(20))
	assert.Equal(t, 2, q.TotalPages(21))
	assert.Equal(t, 0, q.TotalPages(0))
}

func TestDateRange_Cutoff(t *testing.T) {
	// 固定時刻で検証する (2026年3月15日 10:30 JST相当のローカル時刻)
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.Local)

	t.Run("正常系: today は当日0時", func(t *testing.T) {
		cutoff, ok := DateRangeToday.Cutoff(now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local), cutoff)
	})

	t.Run("正常系: week は7日前の同時刻", func(t *testing.T) {
		cutoff, ok := DateRangeWeek.Cutoff(now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 3, 8, 10, 30, 0, 0, time.Local), cutoff)
	})

	t.Run("正常系: month は暦準拠で1ヶ月前", func(t *testing.T) {
		cutoff, ok := DateRangeMonth.Cutoff(now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 2, 15, 10, 30, 0, 0, time.Local), cutoff)
	})

	t.Run("正常系: all は絞り込みなし", func(t *testing.T) {
		_, ok := DateRangeAll.Cutoff(now)
		assert.False(t, ok)
	})

	t.Run("エッジケース: 未知の値も絞り込みなし", func(t *testing.T) {
		_, ok := DateRange("fortnight").Cutoff(now)
		assert.False(t, ok)
	})
}

func TestQuery_OrderClause(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want string
	}{
		{"updatedAt desc", Query{SortBy: SortByUpdatedAt, SortOrder: SortDesc}, "cards.updated_at DESC"},
		{"title asc", Query{SortBy: SortByTitle, SortOrder: SortAsc}, "cards.title ASC"},
		{"createdAt desc", Query{SortBy: SortByCreatedAt, SortOrder: SortDesc}, "cards.created_at DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.OrderClause())
		})
	}
}
