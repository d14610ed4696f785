package master

import (
	"zaiko-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/categories
func ListCategoriesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := db.Order("category_name").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "カテゴリデータの取得に失敗しました")
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    categories,
		})
	}
}

// GET /api/suppliers
func ListSuppliersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := db.Order("supplier_name").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "仕入先データの取得に失敗しました")
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    suppliers,
		})
	}
}

// GET /api/staff
func ListStaffHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var staff []models.Staff
		if err := db.Where("is_active = ?", true).Order("staff_name").Find(&staff).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "担当者データの取得に失敗しました")
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    staff,
		})
	}
}
