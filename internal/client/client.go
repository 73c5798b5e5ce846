package client

import "time"

// Client is a student record with the parent contact attached. Sales carry
// the client name as entered on the sale form; this table is the address
// book behind that field.
type Client struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"column:name;not null;index"`
	ParentName  string    `json:"parent_name" gorm:"column:parent_name"`
	Email       string    `json:"email" gorm:"column:email"`
	Phone       string    `json:"phone" gorm:"column:phone;index"`
	LastService string    `json:"last_service" gorm:"column:last_service;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Client) TableName() string {
	return "clients"
}
