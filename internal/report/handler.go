package report

import (
	"zaiko-backend/internal/models"
	"zaiko-backend/internal/pagination"
	"zaiko-backend/internal/product"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type inventorySummaryRow struct {
	ProductID     string             `json:"product_id"`
	ProductName   string             `json:"product_name"`
	Model         string             `json:"model"`
	CategoryName  string             `json:"category_name"`
	SupplierName  string             `json:"supplier_name"`
	UnitPrice     float64            `json:"unit_price"`
	CurrentStock  int                `json:"current_stock"`
	MinStockLevel int                `json:"min_stock_level"`
	MaxStockLevel int                `json:"max_stock_level"`
	StockStatus   models.StockStatus `json:"stock_status" gorm:"-"`
}

// GET /api/reports/inventory-summary
func InventorySummaryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := pagination.Parse(c, 100)

		search := c.Query("search")
		category := c.Query("category")
		supplier := c.Query("supplier")
		stockStatus := c.Query("stock_status")

		var total int64
		if err := product.FilteredQuery(db, search, category, supplier, stockStatus).
			Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "在庫サマリーの取得に失敗しました")
		}

		rows := make([]inventorySummaryRow, 0)
		if err := product.FilteredQuery(db, search, category, supplier, stockStatus).
			Select("p.product_id, p.product_name, p.model, c.category_name, s.supplier_name, p.unit_price, p.current_stock, p.min_stock_level, p.max_stock_level").
			Order("p.product_id").
			Limit(params.Limit).
			Offset(params.Offset()).
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "在庫サマリーの取得に失敗しました")
		}

		for i := range rows {
			rows[i].StockStatus = models.StockStatusOf(rows[i].CurrentStock, rows[i].MinStockLevel, rows[i].MaxStockLevel)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    pagination.Envelope(rows, pagination.New(params, total)),
		})
	}
}

type stockAlertRow struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Model         string `json:"model"`
	CategoryName  string `json:"category_name"`
	CurrentStock  int    `json:"current_stock"`
	MinStockLevel int    `json:"min_stock_level"`
	MaxStockLevel int    `json:"max_stock_level"`
	AlertType     string `json:"alert_type" gorm:"-"`
	AlertLevel    string `json:"alert_level" gorm:"-"`
}

// GET /api/reports/stock-alerts
// 正常在庫の商品は含めない。深刻な順（在庫切れ→不足→過多）に並べる。
func StockAlertsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows := make([]stockAlertRow, 0)
		err := db.Table("products AS p").
			Joins("LEFT JOIN categories c ON p.category_id = c.category_id").
			Select("p.product_id, p.product_name, p.model, c.category_name, p.current_stock, p.min_stock_level, p.max_stock_level").
			Where("p.is_active = ?", true).
			Where("p.current_stock = 0 OR p.current_stock <= p.min_stock_level OR p.current_stock >= p.max_stock_level").
			Order(`CASE
				WHEN p.current_stock = 0 THEN 1
				WHEN p.current_stock <= p.min_stock_level THEN 2
				WHEN p.current_stock >= p.max_stock_level THEN 3
				ELSE 4
			END, p.current_stock ASC`).
			Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "在庫アラートの取得に失敗しました")
		}

		for i := range rows {
			switch {
			case rows[i].CurrentStock == 0:
				rows[i].AlertType = "在庫切れ"
				rows[i].AlertLevel = "danger"
			case rows[i].CurrentStock <= rows[i].MinStockLevel:
				rows[i].AlertType = "在庫不足"
				rows[i].AlertLevel = "warning"
			default:
				rows[i].AlertType = "在庫過多"
				rows[i].AlertLevel = "info"
			}
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    rows,
		})
	}
}

type monthlySalesRow struct {
	Month            string  `json:"month"`
	TransactionCount int64   `json:"transaction_count"`
	TotalShipped     int64   `json:"total_shipped"`
	TotalSales       float64 `json:"total_sales"`
	TotalReceived    int64   `json:"total_received"`
	TotalPurchases   float64 `json:"total_purchases"`
}

// GET /api/reports/monthly-sales
// 直近12ヶ月の月次集計
func MonthlySalesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows := make([]monthlySalesRow, 0)
		err := db.Raw(`
			SELECT
				DATE_FORMAT(transaction_date, '%Y-%m') AS month,
				COUNT(*) AS transaction_count,
				SUM(CASE WHEN transaction_type = ? THEN quantity ELSE 0 END) AS total_shipped,
				SUM(CASE WHEN transaction_type = ? THEN total_amount ELSE 0 END) AS total_sales,
				SUM(CASE WHEN transaction_type = ? THEN quantity ELSE 0 END) AS total_received,
				SUM(CASE WHEN transaction_type = ? THEN total_amount ELSE 0 END) AS total_purchases
			FROM inventory_transactions
			WHERE transaction_date >= DATE_SUB(CURDATE(), INTERVAL 12 MONTH)
			GROUP BY DATE_FORMAT(transaction_date, '%Y-%m')
			ORDER BY month DESC
		`, models.TransactionOutbound, models.TransactionOutbound,
			models.TransactionInbound, models.TransactionInbound).Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "月次売上レポートの取得に失敗しました")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    rows,
		})
	}
}

type staffPerformanceRow struct {
	StaffID           uint     `json:"staff_id"`
	StaffName         string   `json:"staff_name"`
	Department        string   `json:"department"`
	TotalTransactions int64    `json:"total_transactions"`
	TotalShipped      int64    `json:"total_shipped"`
	TotalSales        float64  `json:"total_sales"`
	AvgSaleAmount     *float64 `json:"avg_sale_amount"`
}

// GET /api/reports/staff-performance
// 直近12ヶ月の担当者別実績
func StaffPerformanceHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows := make([]staffPerformanceRow, 0)
		err := db.Raw(`
			SELECT
				s.staff_id,
				s.staff_name,
				s.department,
				COUNT(it.transaction_id) AS total_transactions,
				COALESCE(SUM(CASE WHEN it.transaction_type = ? THEN it.quantity ELSE 0 END), 0) AS total_shipped,
				COALESCE(SUM(CASE WHEN it.transaction_type = ? THEN it.total_amount ELSE 0 END), 0) AS total_sales,
				ROUND(AVG(CASE WHEN it.transaction_type = ? THEN it.total_amount ELSE NULL END), 2) AS avg_sale_amount
			FROM staff s
			LEFT JOIN inventory_transactions it ON s.staff_id = it.staff_id
			WHERE s.is_active = TRUE
			AND (it.transaction_date IS NULL OR it.transaction_date >= DATE_SUB(CURDATE(), INTERVAL 12 MONTH))
			GROUP BY s.staff_id, s.staff_name, s.department
			ORDER BY total_sales DESC
		`, models.TransactionOutbound, models.TransactionOutbound, models.TransactionOutbound).Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "担当者実績の取得に失敗しました")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    rows,
		})
	}
}
