package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"zaiko-backend/internal/config"
	"zaiko-backend/internal/dashboard"
	"zaiko-backend/internal/database"
	"zaiko-backend/internal/export"
	"zaiko-backend/internal/ledger"
	"zaiko-backend/internal/master"
	"zaiko-backend/internal/product"
	"zaiko-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var knownEndpoints = []string{
	"GET /api/health",
	"GET /api/products",
	"GET /api/products/:id",
	"POST /api/products",
	"PUT /api/products/:id",
	"DELETE /api/products/:id",
	"GET /api/transactions",
	"POST /api/transactions",
	"GET /api/categories",
	"GET /api/suppliers",
	"GET /api/staff",
	"GET /api/dashboard/stats",
	"GET /api/reports/inventory-summary",
	"GET /api/reports/stock-alerts",
	"GET /api/reports/monthly-sales",
	"GET /api/reports/staff-performance",
	"GET /api/export/products",
	"GET /api/export/transactions",
}

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	cfg := config.Load()

	db, err := database.Init(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("データベースに接続できません")
	}

	app := newApp(db)

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOriginList(),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	registerRoutes(app, db)

	// SIGINT/SIGTERM で受付を止めてからプールを閉じる
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logrus.Info("シャットダウンを開始します")
		if err := app.Shutdown(); err != nil {
			logrus.WithError(err).Error("シャットダウンに失敗")
		}
	}()

	logrus.WithField("port", cfg.HTTPPort).Info("サーバー起動")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logrus.WithError(err).Fatal("サーバーの起動に失敗")
	}

	database.Close(db)
	logrus.Info("シャットダウン完了")
}

func newApp(db *gorm.DB) *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"success": false,
					"error":   e.Message,
				})
			}
			logrus.WithError(err).WithFields(logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
			}).Error("予期しないエラー")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "サーバー内部エラーが発生しました",
			})
		},
	})
}

func registerRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "商品管理システム API",
			"version":   "1.0.0",
			"status":    "running",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// 商品
	api.Get("/products", product.ListProductsHandler(db))
	api.Get("/products/:id", product.GetProductHandler(db))
	api.Post("/products", product.CreateProductHandler(db))
	api.Put("/products/:id", product.UpdateProductHandler(db))
	api.Delete("/products/:id", product.DeleteProductHandler(db))

	// 取引履歴（台帳）
	api.Get("/transactions", ledger.ListTransactionsHandler(db))
	api.Post("/transactions", ledger.CreateTransactionHandler(db))

	// マスタデータ
	api.Get("/categories", master.ListCategoriesHandler(db))
	api.Get("/suppliers", master.ListSuppliersHandler(db))
	api.Get("/staff", master.ListStaffHandler(db))

	// ダッシュボード
	api.Get("/dashboard/stats", dashboard.StatsHandler(db))

	// レポート
	api.Get("/reports/inventory-summary", report.InventorySummaryHandler(db))
	api.Get("/reports/stock-alerts", report.StockAlertsHandler(db))
	api.Get("/reports/monthly-sales", report.MonthlySalesHandler(db))
	api.Get("/reports/staff-performance", report.StaffPerformanceHandler(db))

	// CSV出力
	api.Get("/export/products", export.ProductsCSVHandler(db))
	api.Get("/export/transactions", export.TransactionsCSVHandler(db))

	// 未定義ルート
	app.Use(func(c *fiber.Ctx) error {
		logrus.WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Warn("404 Not Found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success":             false,
			"error":               "API endpoint not found: " + c.Method() + " " + c.Path(),
			"available_endpoints": knownEndpoints,
		})
	})
}
