package model

import "time"

//admin操作の監査証跡

type AuditLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Actor      string    `gorm:"type:varchar(255);not null;index" json:"actor"`
	Action     string    `gorm:"type:varchar(100);not null;index" json:"action"`
	TargetType string    `gorm:"type:varchar(50);not null" json:"target_type"`
	TargetID   int64     `gorm:"not null" json:"target_id"`
	Detail     string    `gorm:"type:varchar(500)" json:"detail"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
