package model

import "time"

type Customer struct {
	ID                     int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                   string    `gorm:"type:varchar(100);not null" json:"name"`
	Email                  *string   `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty"`
	DefaultShippingAddress string    `gorm:"type:varchar(255)" json:"default_shipping_address"`
	Phone                  string    `gorm:"type:varchar(20)" json:"phone"`
	CreatedAt              time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
