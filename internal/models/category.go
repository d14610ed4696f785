package models

import "time"

type Category struct {
	CategoryID   uint      `gorm:"primaryKey" json:"category_id"`
	CategoryName string    `gorm:"size:100;not null;unique" json:"category_name"`
	Description  string    `gorm:"size:255" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
