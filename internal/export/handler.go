package export

import (
	"strconv"
	"time"

	"zaiko-backend/internal/models"
	"zaiko-backend/internal/product"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var productHeaders = []string{
	"商品ID", "商品名", "型式", "カテゴリ", "仕入先",
	"単価", "在庫数", "最小在庫", "最大在庫", "在庫状況", "説明",
}

type productExportRow struct {
	ProductID     string
	ProductName   string
	Model         string
	CategoryName  string
	SupplierName  string
	UnitPrice     float64
	CurrentStock  int
	MinStockLevel int
	MaxStockLevel int
	Description   string
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// GET /api/export/products
// 一覧と同じ絞り込みを適用した全件を CSV で返す
func ProductsCSVHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		search := c.Query("search")
		category := c.Query("category")
		supplier := c.Query("supplier")
		stockStatus := c.Query("stock_status")

		var records []productExportRow
		if err := product.FilteredQuery(db, search, category, supplier, stockStatus).
			Select("p.product_id, p.product_name, p.model, c.category_name, s.supplier_name, p.unit_price, p.current_stock, p.min_stock_level, p.max_stock_level, p.description").
			Order("p.product_id").
			Scan(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "CSV出力に失敗しました")
		}

		rows := make([][]string, 0, len(records))
		for _, r := range records {
			status := models.StockStatusOf(r.CurrentStock, r.MinStockLevel, r.MaxStockLevel)
			rows = append(rows, []string{
				r.ProductID,
				r.ProductName,
				r.Model,
				r.CategoryName,
				r.SupplierName,
				formatPrice(r.UnitPrice),
				strconv.Itoa(r.CurrentStock),
				strconv.Itoa(r.MinStockLevel),
				strconv.Itoa(r.MaxStockLevel),
				string(status),
				r.Description,
			})
		}

		body, err := BuildCSV(productHeaders, rows)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "CSV出力に失敗しました")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
		return c.Send(body)
	}
}

var transactionHeaders = []string{
	"取引日", "商品名", "型式", "取引種別", "数量", "単価", "金額", "担当者", "備考",
}

type transactionExportRow struct {
	TransactionDate time.Time
	ProductName     string
	ProductModel    string
	TransactionType string
	Quantity        int
	UnitPrice       float64
	TotalAmount     float64
	StaffName       string
	Notes           string
}

// GET /api/export/transactions
func TransactionsCSVHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		search := c.Query("search")
		productID := c.Query("product_id")
		transactionType := c.Query("transaction_type")
		dateFrom := c.Query("date_from")
		dateTo := c.Query("date_to")

		q := db.Table("inventory_transactions AS it").
			Joins("LEFT JOIN products p ON it.product_id = p.product_id").
			Joins("LEFT JOIN staff s ON it.staff_id = s.staff_id").
			Select("it.transaction_date, p.product_name, p.model AS product_model, it.transaction_type, it.quantity, it.unit_price, it.total_amount, s.staff_name, it.notes")
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

		var records []transactionExportRow
		if err := q.Order("it.transaction_date DESC").Scan(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "CSV出力に失敗しました")
		}

		rows := make([][]string, 0, len(records))
		for _, r := range records {
			rows = append(rows, []string{
				r.TransactionDate.Format("2006-01-02"),
				r.ProductName,
				r.ProductModel,
				r.TransactionType,
				strconv.Itoa(r.Quantity),
				formatPrice(r.UnitPrice),
				formatPrice(r.TotalAmount),
				r.StaffName,
				r.Notes,
			})
		}

		body, err := BuildCSV(transactionHeaders, rows)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "CSV出力に失敗しました")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
		return c.Send(body)
	}
}
