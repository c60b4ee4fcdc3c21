// Package staffsync implements the dashboard-side synchronization layer:
// a snapshot loader for the authoritative initial state, a websocket
// channel that delivers live table/section/order events, and reconcilers
// that merge those events into in-memory collections while tolerating
// duplicate delivery, out-of-order frames, and transient disconnects.
package staffsync

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Event types yang dikirim server lewat live feed.
const (
	EventNewTable         = "new_table"
	EventUpdateTable      = "update_table"
	EventDeleteTable      = "delete_table"
	EventNewSection       = "new_section"
	EventDeleteSection    = "delete_section"
	EventNewOrder         = "new_order"
	EventNewTableOrder    = "new_table_order"
	EventUpdateOrder      = "update_order"
	EventUpdateTableOrder = "update_table_order"
	EventCompleteOrder    = "complete_order"
	EventDeleteOrder      = "delete_order"
	EventDeleteTableOrder = "delete_table_order"
)

// FlexID menormalkan identifier yang di wire kadang string kadang angka.
// Semua koersi id terjadi di sini, bukan di reconciler.
type FlexID int64

func (id *FlexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*id = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// "12.0" dari serializer lain
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fmt.Errorf("invalid id %q", s)
		}
		n = int64(f)
	}
	*id = FlexID(n)
	return nil
}

// FlexString menerima string maupun angka (nomor meja "5" vs 5).
type FlexString string

func (fs *FlexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*fs = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*fs = FlexString(v)
		return nil
	}
	*fs = FlexString(s)
	return nil
}

// FlexFloat menerima angka maupun string berisi angka.
type FlexFloat float64

func (ff *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*ff = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*ff = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*ff = FlexFloat(f)
	return nil
}

// Item adalah satu baris pesanan di wire.
type Item struct {
	ID       FlexID    `json:"id"`
	Name     string    `json:"name"`
	Price    FlexFloat `json:"price"`
	Quantity int       `json:"quantity"`
}

// ItemList membedakan tiga keadaan field items: tidak ada, ada dan valid,
// ada tapi rusak. Wire bisa mengirim array langsung atau string berisi
// JSON array (kolom Items disimpan sebagai teks di server). Field rusak
// tidak menggagalkan frame; reconciler mempertahankan items sebelumnya.
type ItemList struct {
	Items   []Item
	Present bool
	Valid   bool
}

func (l *ItemList) UnmarshalJSON(data []byte) error {
	l.Present = true

	var items []Item
	if err := json.Unmarshal(data, &items); err == nil {
		l.Items = items
		l.Valid = true
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		if strings.TrimSpace(encoded) == "" {
			l.Items = nil
			l.Valid = true
			return nil
		}
		if err := json.Unmarshal([]byte(encoded), &items); err == nil {
			l.Items = items
			l.Valid = true
			return nil
		}
	}

	l.Valid = false
	return nil
}

// TablePayload adalah isi field "table" pada event meja.
type TablePayload struct {
	ID          FlexID     `json:"id"`
	TableNumber FlexString `json:"table_number"`
	SectionID   FlexID     `json:"section_id"`
	Status      string     `json:"status"`
}

// SectionPayload adalah isi field "section".
type SectionPayload struct {
	ID   FlexID `json:"id"`
	Name string `json:"name"`
}

// OrderPayload adalah isi field "order" pada event order.
type OrderPayload struct {
	ID            FlexID     `json:"id"`
	CustomerName  string     `json:"customer_name"`
	TableNumber   FlexString `json:"table_number"`
	SectionID     FlexID     `json:"section_id"`
	PaymentMethod string     `json:"payment_method"`
	TotalAmount   FlexFloat  `json:"total_amount"`
	Items         ItemList   `json:"items"`
	Status        string     `json:"status"`
}

// Event adalah satu frame live feed yang sudah didecode.
// Field mana yang terisi tergantung Type; discriminator tak dikenal
// dibiarkan lewat dan diabaikan oleh Store (forward compatible).
type Event struct {
	Type        string          `json:"type"`
	ID          FlexID          `json:"id"`
	TableNumber FlexString      `json:"table_number"`
	SectionID   FlexID          `json:"section_id"`
	Table       *TablePayload   `json:"table"`
	Section     *SectionPayload `json:"section"`
	Order       *OrderPayload   `json:"order"`
}

// DecodeEvent mem-parse satu frame. Error berarti frame harus dibuang.
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, err
	}
	if ev.Type == "" {
		return Event{}, fmt.Errorf("frame without type discriminator")
	}
	return ev, nil
}
