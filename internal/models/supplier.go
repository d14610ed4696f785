package models

import "time"

type Supplier struct {
	SupplierID    uint      `gorm:"primaryKey" json:"supplier_id"`
	SupplierName  string    `gorm:"size:100;not null" json:"supplier_name"`
	ContactPerson string    `gorm:"size:50" json:"contact_person"`
	Phone         string    `gorm:"size:20" json:"phone"`
	Email         string    `gorm:"size:100" json:"email"`
	Address       string    `gorm:"size:255" json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
