package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name      string    `gorm:"not null"                  json:"name"`
	Seller    string    `json:"seller"`
	Price     float64   `gorm:"not null"                  json:"price"`
	ImageURL  string    `gorm:"not null;column:image_url" json:"imageUrl"`
	UserID    uint      `gorm:"index;not null"            json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
