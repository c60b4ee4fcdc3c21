package models

import "time"

// Status meja: empty, occupied, reserved
const (
	TableEmpty    = "empty"
	TableOccupied = "occupied"
	TableReserved = "reserved"
)

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableNumber string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_table_section" json:"table_number"`
	SectionID   uint      `gorm:"not null;uniqueIndex:idx_table_section" json:"section_id"`
	Section     Section   `gorm:"foreignKey:SectionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Status      string    `gorm:"type:varchar(50);not null;default:'empty'" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
