package models

import (
	"encoding/json"
	"time"
)

const (
	OrderPending   = "Pending"
	OrderCompleted = "Completed"
)

// Order menampung pesanan meja maupun pesanan counter.
// TableNumber/SectionID kosong untuk pesanan counter.
type Order struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CustomerName  string    `gorm:"type:varchar(100)" json:"customer_name"`
	Phone         string    `gorm:"type:varchar(30)" json:"phone"`
	TableNumber   string    `gorm:"type:varchar(50)" json:"table_number"`
	SectionID     uint      `gorm:"index" json:"section_id"`
	PaymentMethod string    `gorm:"type:varchar(50)" json:"payment_method"`
	TotalAmount   float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	Items         string    `gorm:"type:text" json:"items"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// OrderItem adalah satu baris item di dalam kolom Items (JSON).
type OrderItem struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// DecodeItems membaca kolom Items menjadi slice OrderItem.
func (o *Order) DecodeItems() ([]OrderItem, error) {
	if o.Items == "" {
		return nil, nil
	}
	var items []OrderItem
	if err := json.Unmarshal([]byte(o.Items), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// EncodeItems menulis slice OrderItem ke kolom Items dan menghitung ulang total.
func (o *Order) EncodeItems(items []OrderItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	o.Items = string(data)
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	o.TotalAmount = total
	return nil
}
