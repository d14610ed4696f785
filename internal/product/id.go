package product

import (
	"database/sql"
	"fmt"

	"zaiko-backend/internal/models"

	"gorm.io/gorm"
)

// FormatProductID: "P" + 6桁ゼロ埋め（例: P000123）
func FormatProductID(n int64) string {
	return fmt.Sprintf("P%06d", n)
}

// nextProductID: 既存IDの数値部分の最大値 + 1 を新しいIDにする
func nextProductID(tx *gorm.DB) (string, error) {
	var maxID sql.NullInt64
	err := tx.Model(&models.Product{}).
		Select("MAX(CAST(SUBSTRING(product_id, 2) AS UNSIGNED))").
		Scan(&maxID).Error
	if err != nil {
		return "", err
	}
	return FormatProductID(maxID.Int64 + 1), nil
}
