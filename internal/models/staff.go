package models

import "time"

type Staff struct {
	StaffID    uint      `gorm:"primaryKey" json:"staff_id"`
	StaffName  string    `gorm:"size:50;not null" json:"staff_name"`
	Department string    `gorm:"size:50" json:"department"`
	Email      string    `gorm:"size:100" json:"email"`
	Phone      string    `gorm:"size:20" json:"phone"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Staff) TableName() string { return "staff" }
