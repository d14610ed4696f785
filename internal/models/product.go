package models

import "time"

// 在庫状況の区分値（フロントエンドのバッジ表示と共通）
type StockStatus string

const (
	StockStatusOut    StockStatus = "在庫切れ"
	StockStatusLow    StockStatus = "在庫少"
	StockStatusOver   StockStatus = "在庫過多"
	StockStatusNormal StockStatus = "正常"
)

type Product struct {
	ProductID     string    `gorm:"primaryKey;size:7" json:"product_id"` // "P" + 6桁連番
	ProductName   string    `gorm:"size:100;not null" json:"product_name"`
	Model         string    `gorm:"size:50;not null" json:"model"`
	CategoryID    uint      `gorm:"not null;index" json:"category_id"`
	SupplierID    uint      `gorm:"not null;index" json:"supplier_id"`
	UnitPrice     float64   `gorm:"not null" json:"unit_price"`
	CurrentStock  int       `gorm:"not null;default:0" json:"current_stock"`
	MinStockLevel int       `gorm:"not null;default:10" json:"min_stock_level"`
	MaxStockLevel int       `gorm:"not null;default:1000" json:"max_stock_level"`
	Description   string    `gorm:"size:500" json:"description"`
	IsActive      bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StockStatusOf: 在庫数と閾値から在庫状況を判定する
// 境界は両側とも含む（stock == min → 在庫少、stock == max → 在庫過多）
func StockStatusOf(current, minLevel, maxLevel int) StockStatus {
	switch {
	case current == 0:
		return StockStatusOut
	case current <= minLevel:
		return StockStatusLow
	case current >= maxLevel:
		return StockStatusOver
	default:
		return StockStatusNormal
	}
}

func (p *Product) StockStatus() StockStatus {
	return StockStatusOf(p.CurrentStock, p.MinStockLevel, p.MaxStockLevel)
}
