package models

import "time"

type TransactionType string

const (
	TransactionInbound  TransactionType = "入荷"
	TransactionOutbound TransactionType = "出荷"
	TransactionAdjust   TransactionType = "調整"
	TransactionReturn   TransactionType = "返品"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionInbound, TransactionOutbound, TransactionAdjust, TransactionReturn:
		return true
	}
	return false
}

// InventoryTransaction: 在庫を増減させた事実の記録（台帳）
// 作成後は更新・削除しない。商品の current_stock は
// この台帳の符号付き数量の合計と常に一致する。
type InventoryTransaction struct {
	TransactionID   uint            `gorm:"primaryKey" json:"transaction_id"`
	ProductID       string          `gorm:"size:7;not null;index" json:"product_id"`
	Product         Product         `gorm:"foreignKey:ProductID" json:"-"`
	TransactionType TransactionType `gorm:"size:10;not null;index" json:"transaction_type"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	TransactionDate time.Time       `gorm:"type:date;not null;index" json:"-"`
	StaffID         uint            `gorm:"not null;index" json:"staff_id"`
	Staff           Staff           `gorm:"foreignKey:StaffID" json:"-"`
	OrderDate       *time.Time      `gorm:"type:date" json:"-"`
	UnitPrice       float64         `gorm:"not null" json:"unit_price"`
	TotalAmount     float64         `gorm:"not null" json:"total_amount"`
	Notes           string          `gorm:"size:500" json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
}
