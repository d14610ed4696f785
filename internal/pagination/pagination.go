package pagination

import "github.com/gofiber/fiber/v2"

// 全リスト系レスポンスで共通のページネーション情報
type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}

type Params struct {
	Page  int
	Limit int
}

// Parse: page / limit クエリを読む（不正値はデフォルトに戻す）
func Parse(c *fiber.Ctx, defaultLimit int) Params {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// New: 総件数から total_pages = ceil(total/limit) などを計算する
func New(p Params, totalItems int64) Pagination {
	totalPages := int((totalItems + int64(p.Limit) - 1) / int64(p.Limit))
	return Pagination{
		CurrentPage:  p.Page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: p.Limit,
		HasNext:      p.Page < totalPages,
		HasPrev:      p.Page > 1,
	}
}

// Envelope: {data: [...], pagination: {...}} 形式のボディを作る
func Envelope(rows interface{}, pg Pagination) fiber.Map {
	return fiber.Map{
		"data":       rows,
		"pagination": pg,
	}
}
