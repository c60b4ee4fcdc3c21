package models

import "time"

// Setting disimpan sebagai satu baris saja.
type Setting struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RestaurantName string    `gorm:"type:varchar(255)" json:"restaurantName"`
	Phone          string    `gorm:"type:varchar(30)" json:"phone"`
	UpiID          string    `gorm:"type:varchar(100)" json:"upiId"`
	GST            float64   `gorm:"type:decimal(5,2)" json:"gst"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}
