package dashboard

import (
	"zaiko-backend/internal/ledger"
	"zaiko-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type basicStats struct {
	TotalProducts       int64   `json:"total_products"`
	TotalTransactions   int64   `json:"total_transactions"`
	LowStockCount       int64   `json:"low_stock_count"`
	OutOfStockCount     int64   `json:"out_of_stock_count"`
	TotalInventoryValue float64 `json:"total_inventory_value"`
}

type monthlyStats struct {
	MonthlySales     float64 `json:"monthly_sales"`
	MonthlyPurchases float64 `json:"monthly_purchases"`
}

type topProduct struct {
	ProductName string `json:"product_name"`
	TotalSold   int64  `json:"total_sold"`
}

type StatsResponse struct {
	basicStats
	monthlyStats
	TopSellingProducts []topProduct                 `json:"top_selling_products"`
	RecentTransactions []ledger.TransactionResponse `json:"recent_transactions"`
}

// GET /api/dashboard/stats
func StatsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var resp StatsResponse

		err := db.Raw(`
			SELECT
				(SELECT COUNT(*) FROM products WHERE is_active = TRUE) AS total_products,
				(SELECT COUNT(*) FROM inventory_transactions) AS total_transactions,
				(SELECT COUNT(*) FROM products WHERE current_stock <= min_stock_level AND current_stock > 0 AND is_active = TRUE) AS low_stock_count,
				(SELECT COUNT(*) FROM products WHERE current_stock = 0 AND is_active = TRUE) AS out_of_stock_count,
				(SELECT COALESCE(SUM(current_stock * unit_price), 0) FROM products WHERE is_active = TRUE) AS total_inventory_value
		`).Scan(&resp.basicStats).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "統計データの取得に失敗しました")
		}

		// 今月の売上・仕入
		err = db.Raw(`
			SELECT
				COALESCE(SUM(CASE WHEN transaction_type = ? THEN total_amount ELSE 0 END), 0) AS monthly_sales,
				COALESCE(SUM(CASE WHEN transaction_type = ? THEN total_amount ELSE 0 END), 0) AS monthly_purchases
			FROM inventory_transactions
			WHERE DATE_FORMAT(transaction_date, '%Y-%m') = DATE_FORMAT(CURDATE(), '%Y-%m')
		`, models.TransactionOutbound, models.TransactionInbound).Scan(&resp.monthlyStats).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "統計データの取得に失敗しました")
		}

		// 直近30日の売れ筋トップ10
		resp.TopSellingProducts = make([]topProduct, 0)
		err = db.Raw(`
			SELECT p.product_name, SUM(it.quantity) AS total_sold
			FROM inventory_transactions it
			JOIN products p ON it.product_id = p.product_id
			WHERE it.transaction_type = ?
			AND it.transaction_date >= DATE_SUB(CURDATE(), INTERVAL 30 DAY)
			GROUP BY p.product_id, p.product_name
			ORDER BY total_sold DESC
			LIMIT 10
		`, models.TransactionOutbound).Scan(&resp.TopSellingProducts).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "統計データの取得に失敗しました")
		}

		recent, err := ledger.RecentTransactions(db, 10)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "統計データの取得に失敗しました")
		}
		resp.RecentTransactions = recent

		return c.JSON(fiber.Map{
			"success": true,
			"data":    resp,
		})
	}
}
