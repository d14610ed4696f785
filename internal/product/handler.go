package product

import (
	"errors"
	"time"

	"zaiko-backend/internal/models"
	"zaiko-backend/internal/pagination"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

type CreateProductRequest struct {
	ProductName   string   `json:"product_name" validate:"required"`
	Model         string   `json:"model" validate:"required"`
	CategoryID    uint     `json:"category_id" validate:"required"`
	SupplierID    uint     `json:"supplier_id" validate:"required"`
	UnitPrice     *float64 `json:"unit_price" validate:"required"`
	CurrentStock  *int     `json:"current_stock"`   // 省略時 0
	MinStockLevel *int     `json:"min_stock_level"` // 省略時 10
	MaxStockLevel *int     `json:"max_stock_level"` // 省略時 1000
	Description   string   `json:"description"`
}

type UpdateProductRequest struct {
	ProductName   string   `json:"product_name" validate:"required"`
	Model         string   `json:"model" validate:"required"`
	CategoryID    uint     `json:"category_id" validate:"required"`
	SupplierID    uint     `json:"supplier_id" validate:"required"`
	UnitPrice     *float64 `json:"unit_price" validate:"required"`
	MinStockLevel *int     `json:"min_stock_level"`
	MaxStockLevel *int     `json:"max_stock_level"`
	Description   string   `json:"description"`
}

// 一覧・詳細レスポンス（カテゴリ名・仕入先名を JOIN で付ける）
type ProductRow struct {
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Model         string    `json:"model"`
	CategoryID    uint      `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	SupplierID    uint      `json:"supplier_id"`
	SupplierName  string    `json:"supplier_name"`
	UnitPrice     float64   `json:"unit_price"`
	CurrentStock  int       `json:"current_stock"`
	MinStockLevel int       `json:"min_stock_level"`
	MaxStockLevel int       `json:"max_stock_level"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func joinedQuery(db *gorm.DB) *gorm.DB {
	return db.Table("products AS p").
		Joins("LEFT JOIN categories c ON p.category_id = c.category_id").
		Joins("LEFT JOIN suppliers s ON p.supplier_id = s.supplier_id").
		Select("p.*, c.category_name, s.supplier_name")
}

func fetchOne(db *gorm.DB, productID string) (ProductRow, bool, error) {
	var row ProductRow
	res := joinedQuery(db).Where("p.product_id = ?", productID).Scan(&row)
	if res.Error != nil {
		return row, false, res.Error
	}
	return row, res.RowsAffected > 0, nil
}

// ApplyStockStatusFilter: stock_status クエリ値を述語に変換する
func ApplyStockStatusFilter(q *gorm.DB, status string) *gorm.DB {
	switch models.StockStatus(status) {
	case models.StockStatusOut:
		return q.Where("p.current_stock = 0")
	case models.StockStatusLow:
		return q.Where("p.current_stock > 0 AND p.current_stock <= p.min_stock_level")
	case models.StockStatusOver:
		return q.Where("p.current_stock >= p.max_stock_level")
	case models.StockStatusNormal:
		return q.Where("p.current_stock > p.min_stock_level AND p.current_stock < p.max_stock_level")
	}
	return q
}

// FilteredQuery: 一覧・レポート・CSV出力で共通の絞り込み（有効な商品のみ）
func FilteredQuery(db *gorm.DB, search, category, supplier, stockStatus string) *gorm.DB {
	q := db.Table("products AS p").
		Joins("LEFT JOIN categories c ON p.category_id = c.category_id").
		Joins("LEFT JOIN suppliers s ON p.supplier_id = s.supplier_id").
		Where("p.is_active = ?", true)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("p.product_name LIKE ? OR p.model LIKE ?", like, like)
	}
	if category != "" {
		q = q.Where("p.category_id = ?", category)
	}
	if supplier != "" {
		q = q.Where("p.supplier_id = ?", supplier)
	}
	if stockStatus != "" {
		q = ApplyStockStatusFilter(q, stockStatus)
	}
	return q
}

var productSortColumns = map[string]bool{
	"product_id":      true,
	"product_name":    true,
	"model":           true,
	"unit_price":      true,
	"current_stock":   true,
	"min_stock_level": true,
	"max_stock_level": true,
	"created_at":      true,
	"updated_at":      true,
}

// GET /api/products
func ListProductsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := pagination.Parse(c, 20)

		search := c.Query("search")
		category := c.Query("category")
		supplier := c.Query("supplier")
		stockStatus := c.Query("stock_status")

		sortBy := c.Query("sort_by", "product_id")
		if !productSortColumns[sortBy] {
			sortBy = "product_id"
		}
		sortOrder := "ASC"
		if c.Query("sort_order") == "desc" {
			sortOrder = "DESC"
		}

		var total int64
		if err := FilteredQuery(db, search, category, supplier, stockStatus).Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "データの取得に失敗しました")
		}

		rows := make([]ProductRow, 0)
		if err := FilteredQuery(db, search, category, supplier, stockStatus).
			Select("p.*, c.category_name, s.supplier_name").
			Order("p." + sortBy + " " + sortOrder + ", p.product_id ASC").
			Limit(params.Limit).
			Offset(params.Offset()).
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "データの取得に失敗しました")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    pagination.Envelope(rows, pagination.New(params, total)),
		})
	}
}

// GET /api/products/:id
// 論理削除済みの商品も ID 指定なら参照できる（取引履歴の表示用）
func GetProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		row, found, err := fetchOne(db, c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "データの取得に失敗しました")
		}
		if !found {
			return fiber.NewError(fiber.StatusNotFound, "商品が見つかりません")
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    row,
		})
	}
}

// POST /api/products
func CreateProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "リクエストボディが不正です")
		}
		if err := validate.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "必須項目が入力されていません")
		}

		currentStock := 0
		if body.CurrentStock != nil {
			currentStock = *body.CurrentStock
		}
		minLevel := 10
		if body.MinStockLevel != nil {
			minLevel = *body.MinStockLevel
		}
		maxLevel := 1000
		if body.MaxStockLevel != nil {
			maxLevel = *body.MaxStockLevel
		}

		var product models.Product
		err := db.Transaction(func(tx *gorm.DB) error {
			id, err := nextProductID(tx)
			if err != nil {
				return err
			}
			product = models.Product{
				ProductID:     id,
				ProductName:   body.ProductName,
				Model:         body.Model,
				CategoryID:    body.CategoryID,
				SupplierID:    body.SupplierID,
				UnitPrice:     *body.UnitPrice,
				CurrentStock:  currentStock,
				MinStockLevel: minLevel,
				MaxStockLevel: maxLevel,
				Description:   body.Description,
				IsActive:      true,
			}
			return tx.Create(&product).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "商品の作成に失敗しました")
		}

		row, _, err := fetchOne(db, product.ProductID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "商品の取得に失敗しました")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    row,
			"message": "商品を作成しました",
		})
	}
}

// PUT /api/products/:id
// current_stock は台帳経由でのみ変わるため、ここでは更新しない
func UpdateProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "リクエストボディが不正です")
		}
		if err := validate.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "必須項目が入力されていません")
		}

		var product models.Product
		if err := db.First(&product, "product_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "商品が見つかりません")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "データの取得に失敗しました")
		}

		updates := map[string]interface{}{
			"product_name": body.ProductName,
			"model":        body.Model,
			"category_id":  body.CategoryID,
			"supplier_id":  body.SupplierID,
			"unit_price":   *body.UnitPrice,
			"description":  body.Description,
		}
		if body.MinStockLevel != nil {
			updates["min_stock_level"] = *body.MinStockLevel
		}
		if body.MaxStockLevel != nil {
			updates["max_stock_level"] = *body.MaxStockLevel
		}

		if err := db.Model(&product).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "商品の更新に失敗しました")
		}

		row, _, err := fetchOne(db, id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "商品の取得に失敗しました")
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    row,
			"message": "商品を更新しました",
		})
	}
}

// ShouldSoftDelete: 取引履歴がある商品は論理削除、なければ物理削除
func ShouldSoftDelete(ledgerCount int64) bool {
	return ledgerCount > 0
}

// DELETE /api/products/:id
func DeleteProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		err := db.Transaction(func(tx *gorm.DB) error {
			var product models.Product
			if err := tx.Where("product_id = ? AND is_active = ?", id, true).
				First(&product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "商品が見つかりません")
				}
				return err
			}

			var ledgerCount int64
			if err := tx.Model(&models.InventoryTransaction{}).
				Where("product_id = ?", id).Count(&ledgerCount).Error; err != nil {
				return err
			}

			if ShouldSoftDelete(ledgerCount) {
				// 履歴を残すため is_active を落とすだけ
				return tx.Model(&product).Updates(map[string]interface{}{
					"is_active":  false,
					"updated_at": time.Now(),
				}).Error
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "商品の削除に失敗しました")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "商品を削除しました",
		})
	}
}
