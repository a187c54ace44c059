// internal/search/query.go
package search

// Package search はカード検索のクエリ仕様 (テキスト検索・タグ絞り込み・
// 日付範囲・ソート・ページング) を組み立てます。実際のDBアクセスは
// repository 側の責務で、ここは仕様の正規化と導出値の計算のみ。

import (
	"fmt"
	"time"
)

// DateRange は更新日時の相対的な絞り込み区分
type DateRange string

const (
	DateRangeAll   DateRange = "all"
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
)

// SortKey は許可されたソートキーの列挙
type SortKey string

const (
	SortByTitle     SortKey = "title"
	SortByCreatedAt SortKey = "createdAt"
	SortByUpdatedAt SortKey = "updatedAt"
)

// SortOrder はソート方向
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Query は検索条件の仕様です。すべて任意で、ゼロ値は Normalize で
// デフォルトに解決されます。
type Query struct {
	Search    string    // タイトル+全レベルに対する部分一致 (大文字小文字無視)
	Tags      []string  // いずれかのタグ名に一致すればヒット (match-any)
	DateRange DateRange // 不明な値は all 扱い
	SortBy    SortKey
	SortOrder SortOrder
	Page      int // 1始まり
	PageSize  int
}

// Normalize はデフォルト値とフォールバックを適用した正規化済みのコピーを返します。
// 不正なソートキーは updatedAt desc に落とし、不明な日付範囲は all に落とします。
func (q Query) Normalize() Query {
	switch q.SortBy {
	case SortByTitle, SortByCreatedAt, SortByUpdatedAt:
		if q.SortOrder != SortAsc && q.SortOrder != SortDesc {
			q.SortOrder = SortDesc
		}
	default:
		q.SortBy = SortByUpdatedAt
		q.SortOrder = SortDesc
	}

	switch q.DateRange {
	case DateRangeToday, DateRangeWeek, DateRangeMonth:
	default:
		q.DateRange = DateRangeAll
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Offset は0始まりのレコードオフセットを返します。範囲外ページの
// クランプはしない (空ページが返るだけ)。
func (q Query) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// TotalPages は総件数から総ページ数 (ceil(total/pageSize)) を導出します
func (q Query) TotalPages(total int64) int {
	if total <= 0 || q.PageSize < 1 {
		return 0
	}
	return int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
}

// Cutoff は日付範囲の下限時刻を返します。all (または未知) の場合は false。
// today はサーバーローカルの当日0時、week は現在時刻の7日前、
// month は現在時刻の1ヶ月前 (暦準拠)。
func (r DateRange) Cutoff(now time.Time) (time.Time, bool) {
	switch r {
	case DateRangeToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case DateRangeWeek:
		return now.AddDate(0, 0, -7), true
	case DateRangeMonth:
		return now.AddDate(0, -1, 0), true
	}
	return time.Time{}, false
}

// column は正規化済みの SortKey に対応するカラム名
func (k SortKey) column() string {
	switch k {
	case SortByTitle:
		return "title"
	case SortByCreatedAt:
		return "created_at"
	}
	return "updated_at"
}

// OrderClause は正規化済みクエリの ORDER BY 句を返します。
// SortBy/SortOrder は列挙値に正規化済みなのでSQLに直接埋めて安全。
func (q Query) OrderClause() string {
	order := "ASC"
	if q.SortOrder == SortDesc {
		order = "DESC"
	}
	return fmt.Sprintf("cards.%s %s", q.SortBy.column(), order)
}
