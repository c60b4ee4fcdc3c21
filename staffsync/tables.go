package staffsync

import (
	"github.com/sirupsen/logrus"
)

const (
	TableEmpty    = "empty"
	TableOccupied = "occupied"
	TableReserved = "reserved"
)

// Table adalah satu meja di memori client.
type Table struct {
	ID          int64
	TableNumber string
	SectionID   int64
	Status      string
}

// Section adalah pengelompokan fisik meja.
type Section struct {
	ID   int64
	Name string
}

// FloorPlan memegang koleksi meja dan section, dan menjaga status meja
// tetap konsisten dengan lifecycle order. FloorPlan sengaja mem-parse
// ulang event order yang juga ditangani OrderBook; keduanya decoupled
// supaya bug di satu sisi tidak merusak sisi lain.
type FloorPlan struct {
	tables   map[int64]*Table
	sections map[int64]*Section
	log      *logrus.Logger
}

func NewFloorPlan(log *logrus.Logger) *FloorPlan {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FloorPlan{
		tables:   make(map[int64]*Table),
		sections: make(map[int64]*Section),
		log:      log,
	}
}

// UpsertTable insert kalau belum ada, merge field kalau sudah ada.
func (f *FloorPlan) UpsertTable(p *TablePayload) {
	if p == nil || p.ID == 0 {
		f.log.Error("Dropping table upsert without id")
		return
	}
	id := int64(p.ID)
	t, exists := f.tables[id]
	if !exists {
		t = &Table{ID: id, Status: TableEmpty}
		f.tables[id] = t
	}
	if p.TableNumber != "" {
		t.TableNumber = string(p.TableNumber)
	}
	if p.SectionID != 0 {
		t.SectionID = int64(p.SectionID)
	}
	if p.Status != "" {
		t.Status = p.Status
	}
}

// UpsertSection insert/merge section.
func (f *FloorPlan) UpsertSection(p *SectionPayload) {
	if p == nil || p.ID == 0 {
		f.log.Error("Dropping section upsert without id")
		return
	}
	id := int64(p.ID)
	s, exists := f.sections[id]
	if !exists {
		s = &Section{ID: id}
		f.sections[id] = s
	}
	if p.Name != "" {
		s.Name = p.Name
	}
}

// Apply menerapkan satu event ke floor plan. Event penghapusan meja dan
// section meng-cascade ke OrderBook; event order menurunkan status meja.
// Apply harus dipanggil SEBELUM OrderBook.Apply untuk event yang sama,
// supaya lookup pasangan meja masih melihat order sebelum dimutasi.
func (f *FloorPlan) Apply(ev Event, book *OrderBook) {
	switch ev.Type {
	case EventNewTable, EventUpdateTable:
		f.UpsertTable(ev.Table)

	case EventDeleteTable:
		f.removeTable(ev, book)

	case EventNewSection:
		f.UpsertSection(ev.Section)

	case EventDeleteSection:
		f.removeSection(int64(ev.ID), book)

	case EventNewOrder, EventNewTableOrder:
		if p := ev.Order; p != nil && p.TableNumber != "" && p.SectionID != 0 {
			status := p.Status
			if status == "" {
				status = StatusPending
			}
			f.setOccupancy(string(p.TableNumber), int64(p.SectionID), status == StatusPending)
		}

	case EventUpdateOrder, EventUpdateTableOrder:
		p := ev.Order
		if p == nil || p.ID == 0 || p.Status == "" {
			return
		}
		tableNumber := string(p.TableNumber)
		sectionID := int64(p.SectionID)
		// Payload update boleh hanya membawa id+status; pasangan meja
		// diambil dari order yang masih ada di koleksi.
		if existing, ok := book.Get(int64(p.ID)); ok {
			if tableNumber == "" {
				tableNumber = existing.TableNumber
			}
			if sectionID == 0 {
				sectionID = existing.SectionID
			}
		} else {
			// Update untuk order yang tidak dikenal tidak boleh
			// mengubah status meja (update-never-creates).
			return
		}
		if tableNumber != "" && sectionID != 0 {
			f.setOccupancy(tableNumber, sectionID, p.Status == StatusPending)
		}

	case EventCompleteOrder:
		f.clearOccupancyForOrder(ev, book)

	case EventDeleteOrder, EventDeleteTableOrder:
		f.clearOccupancyForOrder(ev, book)
	}
}

func (f *FloorPlan) removeTable(ev Event, book *OrderBook) {
	id := int64(ev.ID)
	t, exists := f.tables[id]

	tableNumber := string(ev.TableNumber)
	sectionID := int64(ev.SectionID)
	if exists {
		if tableNumber == "" {
			tableNumber = t.TableNumber
		}
		if sectionID == 0 {
			sectionID = t.SectionID
		}
	}

	delete(f.tables, id)
	if tableNumber != "" && sectionID != 0 && book != nil {
		book.RemoveByTable(tableNumber, sectionID)
	}
}

func (f *FloorPlan) removeSection(sectionID int64, book *OrderBook) {
	if sectionID == 0 {
		return
	}
	delete(f.sections, sectionID)
	for id, t := range f.tables {
		if t.SectionID == sectionID {
			delete(f.tables, id)
		}
	}
	if book != nil {
		book.RemoveBySection(sectionID)
	}
}

// clearOccupancyForOrder mengosongkan meja milik order yang selesai/dihapus.
// Pasangan meja dicari dari payload dulu, lalu dari koleksi order.
func (f *FloorPlan) clearOccupancyForOrder(ev Event, book *OrderBook) {
	var tableNumber string
	var sectionID int64

	if p := ev.Order; p != nil {
		tableNumber = string(p.TableNumber)
		sectionID = int64(p.SectionID)
	}
	if tableNumber == "" || sectionID == 0 {
		id := int64(ev.ID)
		if id == 0 && ev.Order != nil {
			id = int64(ev.Order.ID)
		}
		if existing, ok := book.Get(id); ok {
			tableNumber = existing.TableNumber
			sectionID = existing.SectionID
		}
	}
	if tableNumber != "" && sectionID != 0 {
		f.setOccupancy(tableNumber, sectionID, false)
	}
}

// setOccupancy mengubah status meja hasil derivasi dari order.
// Meja reserved tidak pernah disentuh derivasi; transisi reserved
// hanya lewat aksi staff.
func (f *FloorPlan) setOccupancy(tableNumber string, sectionID int64, occupied bool) {
	for _, t := range f.tables {
		if t.TableNumber != tableNumber || t.SectionID != sectionID {
			continue
		}
		if t.Status == TableReserved {
			return
		}
		if occupied {
			t.Status = TableOccupied
		} else {
			t.Status = TableEmpty
		}
		return
	}
}

// TableByID mengembalikan salinan meja.
func (f *FloorPlan) TableByID(id int64) (Table, bool) {
	t, ok := f.tables[id]
	if !ok {
		return Table{}, false
	}
	return *t, true
}

// TableAt mencari meja berdasarkan pasangan (nomor, section).
func (f *FloorPlan) TableAt(tableNumber string, sectionID int64) (Table, bool) {
	for _, t := range f.tables {
		if t.TableNumber == tableNumber && t.SectionID == sectionID {
			return *t, true
		}
	}
	return Table{}, false
}

// Tables mengembalikan salinan seluruh meja.
func (f *FloorPlan) Tables() []Table {
	out := make([]Table, 0, len(f.tables))
	for _, t := range f.tables {
		out = append(out, *t)
	}
	return out
}

// Sections mengembalikan salinan seluruh section.
func (f *FloorPlan) Sections() []Section {
	out := make([]Section, 0, len(f.sections))
	for _, s := range f.sections {
		out = append(out, *s)
	}
	return out
}
