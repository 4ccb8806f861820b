package store

import "gorm.io/gorm"

type Task struct {
	gorm.Model

	Text        string `gorm:"not null"`
	IsCompleted bool   `gorm:"default:false"`
	CreatedByID uint   `gorm:"index"`
}
