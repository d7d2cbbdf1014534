package models

import "time"

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FullName     string    `json:"full_name" gorm:"not null;default:''"`
	IsSuperuser  bool      `json:"is_superuser" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}
