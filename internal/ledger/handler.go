package ledger

import (
	"errors"
	"time"

	"zaiko-backend/internal/models"
	"zaiko-backend/internal/pagination"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var validate = validator.New()

type CreateTransactionRequest struct {
	ProductID       string                 `json:"product_id" validate:"required"`
	TransactionType models.TransactionType `json:"transaction_type" validate:"required"`
	Quantity        int                    `json:"quantity" validate:"required,gt=0"`
	TransactionDate string                 `json:"transaction_date" validate:"required"` // "2006-01-02"
	StaffID         uint                   `json:"staff_id" validate:"required"`
	OrderDate       *string                `json:"order_date"`
	UnitPrice       *float64               `json:"unit_price"` // 省略時は商品の単価
	Notes           string                 `json:"notes"`
}

type TransactionResponse struct {
	TransactionID   uint                   `json:"transaction_id"`
	ProductID       string                 `json:"product_id"`
	ProductName     string                 `json:"product_name"`
	TransactionType models.TransactionType `json:"transaction_type"`
	Quantity        int                    `json:"quantity"`
	TransactionDate string                 `json:"transaction_date"`
	StaffID         uint                   `json:"staff_id"`
	StaffName       string                 `json:"staff_name"`
	OrderDate       *string                `json:"order_date"`
	UnitPrice       float64                `json:"unit_price"`
	TotalAmount     float64                `json:"total_amount"`
	Notes           string                 `json:"notes"`
	CreatedAt       string                 `json:"created_at"`
}

// DB から JOIN 付きで読むための行
type transactionRecord struct {
	TransactionID   uint
	ProductID       string
	TransactionType models.TransactionType
	Quantity        int
	TransactionDate time.Time
	StaffID         uint
	OrderDate       *time.Time
	UnitPrice       float64
	TotalAmount     float64
	Notes           string
	CreatedAt       time.Time
	ProductName     string
	StaffName       string
}

func (r transactionRecord) toResponse() TransactionResponse {
	var orderDate *string
	if r.OrderDate != nil {
		s := r.OrderDate.Format("2006-01-02")
		orderDate = &s
	}
	return TransactionResponse{
		TransactionID:   r.TransactionID,
		ProductID:       r.ProductID,
		ProductName:     r.ProductName,
		TransactionType: r.TransactionType,
		Quantity:        r.Quantity,
		TransactionDate: r.TransactionDate.Format("2006-01-02"),
		StaffID:         r.StaffID,
		StaffName:       r.StaffName,
		OrderDate:       orderDate,
		UnitPrice:       r.UnitPrice,
		TotalAmount:     r.TotalAmount,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func joinedQuery(db *gorm.DB) *gorm.DB {
	return db.Table("inventory_transactions AS it").
		Joins("LEFT JOIN products p ON it.product_id = p.product_id").
		Joins("LEFT JOIN staff s ON it.staff_id = s.staff_id").
		Select("it.*, p.product_name, s.staff_name")
}

// fetchOne: 作成直後の取引を表示名付きで取り直す
func fetchOne(db *gorm.DB, transactionID uint) (TransactionResponse, error) {
	var rec transactionRecord
	err := joinedQuery(db).Where("it.transaction_id = ?", transactionID).Scan(&rec).Error
	return rec.toResponse(), err
}

// RecentTransactions: 直近 n 件（ダッシュボード用）
func RecentTransactions(db *gorm.DB, n int) ([]TransactionResponse, error) {
	var recs []transactionRecord
	err := joinedQuery(db).
		Order("it.transaction_date DESC, it.created_at DESC").
		Limit(n).
		Scan(&recs).Error
	if err != nil {
		return nil, err
	}
	resp := make([]TransactionResponse, 0, len(recs))
	for _, r := range recs {
		resp = append(resp, r.toResponse())
	}
	return resp, nil
}

// POST /api/transactions
// 台帳への追記と在庫カウンタの更新をひとつの DB トランザクションで行う。
// 在庫の加算は SQL 式（current_stock = current_stock + ?）で行い、
// 出荷は current_stock >= 数量 を条件に付けて同時実行時の取り過ぎを防ぐ。
func CreateTransactionHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "リクエストボディが不正です")
		}
		if err := validate.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "必須項目が入力されていません")
		}
		if !body.TransactionType.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "取引種別が不正です（入荷|出荷|調整|返品）")
		}

		txDate, err := time.Parse("2006-01-02", body.TransactionDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "取引日は 'YYYY-MM-DD' 形式で指定してください")
		}

		var orderDate *time.Time
		if body.OrderDate != nil && *body.OrderDate != "" {
			d, err := time.Parse("2006-01-02", *body.OrderDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "発注日は 'YYYY-MM-DD' 形式で指定してください")
			}
			orderDate = &d
		}

		var staffCount int64
		if err := db.Model(&models.Staff{}).Where("staff_id = ?", body.StaffID).Count(&staffCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "担当者の確認に失敗しました")
		}
		if staffCount == 0 {
			return fiber.NewError(fiber.StatusNotFound, "担当者が見つかりません")
		}

		var entry models.InventoryTransaction
		err = db.Transaction(func(tx *gorm.DB) error {
			// 商品行をロックして現在庫を読む
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("product_id = ? AND is_active = ?", body.ProductID, true).
				First(&product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "商品が見つかりません")
				}
				return err
			}

			delta, err := ResolveDelta(body.TransactionType, body.Quantity, product.CurrentStock)
			if err != nil {
				if errors.Is(err, ErrInsufficientStock) {
					return fiber.NewError(fiber.StatusConflict, "在庫が不足しています")
				}
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}

			unitPrice := product.UnitPrice
			if body.UnitPrice != nil {
				unitPrice = *body.UnitPrice
			}

			entry = models.InventoryTransaction{
				ProductID:       body.ProductID,
				TransactionType: body.TransactionType,
				Quantity:        body.Quantity,
				TransactionDate: txDate,
				StaffID:         body.StaffID,
				OrderDate:       orderDate,
				UnitPrice:       unitPrice,
				TotalAmount:     unitPrice * float64(body.Quantity),
				Notes:           body.Notes,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}

			// 在庫カウンタをストア側の式で更新する
			upd := tx.Model(&models.Product{}).Where("product_id = ?", body.ProductID)
			if body.TransactionType == models.TransactionOutbound {
				upd = upd.Where("current_stock >= ?", body.Quantity)
			}
			res := upd.UpdateColumns(map[string]interface{}{
				"current_stock": gorm.Expr("current_stock + ?", delta),
				"updated_at":    time.Now(),
			})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// ロック取得前後で在庫が減っていた場合もここで弾く
				return fiber.NewError(fiber.StatusConflict, "在庫が不足しています")
			}
			return nil
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "取引の作成に失敗しました")
		}

		resp, err := fetchOne(db, entry.TransactionID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "取引の取得に失敗しました")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    resp,
		})
	}
}

// 取引一覧のソート対象（ORDER BY はバインドできないのでホワイトリスト）
var transactionSortColumns = map[string]bool{
	"transaction_id":   true,
	"product_id":       true,
	"transaction_type": true,
	"quantity":         true,
	"unit_price":       true,
	"total_amount":     true,
	"transaction_date": true,
	"created_at":       true,
}

// GET /api/transactions
func ListTransactionsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := pagination.Parse(c, 20)

		search := c.Query("search")
		productID := c.Query("product_id")
		transactionType := c.Query("transaction_type")
		dateFrom := c.Query("date_from")
		dateTo := c.Query("date_to")

		sortBy := c.Query("sort_by", "transaction_date")
		if !transactionSortColumns[sortBy] {
			sortBy = "transaction_date"
		}
		sortOrder := "DESC"
		if c.Query("sort_order") == "asc" {
			sortOrder = "ASC"
		}

		base := func() *gorm.DB {
			q := db.Table("inventory_transactions AS it").
				Joins("LEFT JOIN products p ON it.product_id = p.product_id").
				Joins("LEFT JOIN staff s ON it.staff_id = s.staff_id")
			if search != "" {
				like := "%" + search + "%"
				q = q.Where("p.product_name LIKE ? OR p.model LIKE ?", like, like)
			}
			if productID != "" {
				q = q.Where("it.product_id = ?", productID)
			}
			if transactionType != "" {
				q = q.Where("it.transaction_type = ?", transactionType)
			}
			if dateFrom != "" {
				q = q.Where("it.transaction_date >= ?", dateFrom)
			}
			if dateTo != "" {
				q = q.Where("it.transaction_date <= ?", dateTo)
			}
			return q
		}

		var total int64
		if err := base().Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "データの取得に失敗しました")
		}

		var recs []transactionRecord
		if err := base().
			Select("it.*, p.product_name, s.staff_name").
			Order("it." + sortBy + " " + sortOrder + ", it.transaction_id ASC").
			Limit(params.Limit).
			Offset(params.Offset()).
			Scan(&recs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "データの取得に失敗しました")
		}

		rows := make([]TransactionResponse, 0, len(recs))
		for _, r := range recs {
			rows = append(rows, r.toResponse())
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    pagination.Envelope(rows, pagination.New(params, total)),
		})
	}
}
