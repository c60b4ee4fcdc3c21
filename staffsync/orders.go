package staffsync

import (
	"github.com/sirupsen/logrus"
)

const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// Order adalah satu pesanan aktif di memori client.
type Order struct {
	ID            int64
	CustomerName  string
	TableNumber   string
	SectionID     int64
	PaymentMethod string
	TotalAmount   float64
	Items         []Item
	Status        string
}

// Active melaporkan apakah order masih relevan untuk layar ini.
func (o *Order) Active() bool {
	return o.Status != StatusCompleted
}

// OrderBook memegang koleksi order aktif, di-key identifier order,
// plus rollup nama item -> total quantity untuk ringkasan dapur.
//
// Invariant yang dijaga: maksimal satu order Pending per pasangan
// (table_number, section_id), dan order Completed tidak pernah ada
// di koleksi.
type OrderBook struct {
	orders map[int64]*Order
	seq    []int64 // urutan tampilan, terbaru dulu
	rollup map[string]int
	log    *logrus.Logger
}

func NewOrderBook(log *logrus.Logger) *OrderBook {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &OrderBook{
		orders: make(map[int64]*Order),
		rollup: make(map[string]int),
		log:    log,
	}
}

func orderFromPayload(p *OrderPayload, log *logrus.Logger) *Order {
	o := &Order{
		ID:            int64(p.ID),
		CustomerName:  p.CustomerName,
		TableNumber:   string(p.TableNumber),
		SectionID:     int64(p.SectionID),
		PaymentMethod: p.PaymentMethod,
		Status:        p.Status,
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	if p.Items.Present && p.Items.Valid {
		o.Items = p.Items.Items
	} else if p.Items.Present {
		log.Errorf("Order %d arrived with undecodable items, starting empty", o.ID)
	}
	recomputeTotal(o)
	return o
}

// Total selalu diturunkan dari items; nilai di wire tidak dipercaya.
func recomputeTotal(o *Order) {
	total := 0.0
	for _, it := range o.Items {
		total += float64(it.Price) * float64(it.Quantity)
	}
	o.TotalAmount = total
}

// Insert menambahkan order baru. Idempotent terhadap duplicate delivery:
// id yang sudah ada adalah no-op. Order Pending kedua untuk meja yang
// sama dibuang supaya invariant single-pending tetap berlaku.
func (b *OrderBook) Insert(p *OrderPayload) {
	if p == nil || p.ID == 0 {
		b.log.Error("Dropping order insert without id")
		return
	}
	id := int64(p.ID)
	if _, exists := b.orders[id]; exists {
		b.log.Infof("Duplicate delivery for order %d ignored", id)
		return
	}

	o := orderFromPayload(p, b.log)
	if !o.Active() {
		// Order yang datang sudah Completed tidak relevan untuk layar ini
		return
	}
	if o.TableNumber != "" && o.SectionID != 0 {
		if existing, ok := b.PendingAt(o.TableNumber, o.SectionID); ok && existing.ID != id {
			b.log.Errorf("Dropping order %d: table %s/%d already has pending order %d",
				id, o.TableNumber, o.SectionID, existing.ID)
			return
		}
	}

	b.orders[id] = o
	b.seq = append([]int64{id}, b.seq...)
	b.recomputeRollup()
}

// Update menggabungkan payload ke order yang ada. Id yang tidak dikenal
// di-log dan diabaikan; update bukan create.
func (b *OrderBook) Update(p *OrderPayload) {
	if p == nil || p.ID == 0 {
		b.log.Error("Dropping order update without id")
		return
	}
	id := int64(p.ID)
	o, exists := b.orders[id]
	if !exists {
		b.log.Errorf("Order %d not found in current orders, update ignored", id)
		return
	}

	if p.Items.Present {
		if p.Items.Valid {
			o.Items = p.Items.Items
		} else {
			b.log.Errorf("Undecodable items for order %d, keeping previous items", id)
		}
	}
	if p.TableNumber != "" {
		o.TableNumber = string(p.TableNumber)
	}
	if p.SectionID != 0 {
		o.SectionID = int64(p.SectionID)
	}
	if p.PaymentMethod != "" {
		o.PaymentMethod = p.PaymentMethod
	}
	if p.CustomerName != "" {
		o.CustomerName = p.CustomerName
	}
	if p.Status != "" {
		o.Status = p.Status
	}
	recomputeTotal(o)

	if !o.Active() {
		b.remove(id)
	}
	b.recomputeRollup()
}

// Remove menghapus order berdasarkan id, tanpa syarat.
func (b *OrderBook) Remove(id int64) {
	if _, exists := b.orders[id]; !exists {
		return
	}
	b.remove(id)
	b.recomputeRollup()
}

// RemoveByTable menghapus semua order yang menunjuk pasangan meja tersebut.
func (b *OrderBook) RemoveByTable(tableNumber string, sectionID int64) {
	for id, o := range b.orders {
		if o.TableNumber == tableNumber && o.SectionID == sectionID {
			b.remove(id)
		}
	}
	b.recomputeRollup()
}

// RemoveBySection menghapus semua order di dalam satu section.
func (b *OrderBook) RemoveBySection(sectionID int64) {
	for id, o := range b.orders {
		if o.SectionID == sectionID {
			b.remove(id)
		}
	}
	b.recomputeRollup()
}

func (b *OrderBook) remove(id int64) {
	delete(b.orders, id)
	for i, sid := range b.seq {
		if sid == id {
			b.seq = append(b.seq[:i], b.seq[i+1:]...)
			break
		}
	}
}

// Apply mengarahkan satu event ke operasi yang sesuai.
// Discriminator yang tidak dikenali adalah no-op.
func (b *OrderBook) Apply(ev Event) {
	switch ev.Type {
	case EventNewOrder, EventNewTableOrder:
		b.Insert(ev.Order)
	case EventUpdateOrder, EventUpdateTableOrder:
		b.Update(ev.Order)
	case EventCompleteOrder:
		if ev.Order != nil {
			b.Remove(int64(ev.Order.ID))
		} else if ev.ID != 0 {
			b.Remove(int64(ev.ID))
		}
	case EventDeleteOrder, EventDeleteTableOrder:
		if ev.ID != 0 {
			b.Remove(int64(ev.ID))
		} else if ev.Order != nil {
			b.Remove(int64(ev.Order.ID))
		}
	}
}

// Recompute penuh, bukan inkremental: O(total item) pada puluhan order
// jauh lebih murah daripada bug akuntansi.
func (b *OrderBook) recomputeRollup() {
	rollup := make(map[string]int)
	for _, o := range b.orders {
		for _, it := range o.Items {
			rollup[it.Name] += it.Quantity
		}
	}
	b.rollup = rollup
}

// Get mengembalikan salinan order berdasarkan id.
func (b *OrderBook) Get(id int64) (Order, bool) {
	o, ok := b.orders[id]
	if !ok {
		return Order{}, false
	}
	return *o, true
}

// PendingAt mencari order Pending untuk satu pasangan meja.
func (b *OrderBook) PendingAt(tableNumber string, sectionID int64) (Order, bool) {
	for _, o := range b.orders {
		if o.TableNumber == tableNumber && o.SectionID == sectionID && o.Status == StatusPending {
			return *o, true
		}
	}
	return Order{}, false
}

// Active mengembalikan seluruh order aktif, terbaru dulu.
func (b *OrderBook) Active() []Order {
	out := make([]Order, 0, len(b.seq))
	for _, id := range b.seq {
		if o, ok := b.orders[id]; ok {
			out = append(out, *o)
		}
	}
	return out
}

// Rollup mengembalikan salinan agregat nama item -> quantity.
func (b *OrderBook) Rollup() map[string]int {
	out := make(map[string]int, len(b.rollup))
	for k, v := range b.rollup {
		out[k] = v
	}
	return out
}

// Len -> jumlah order aktif.
func (b *OrderBook) Len() int {
	return len(b.orders)
}
