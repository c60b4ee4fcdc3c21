package staffsync

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Store adalah pemegang state satu layar: koleksi order dan floor plan,
// dengan lifecycle Init/Dispose yang eksplisit. Semua mutasi diserialkan
// lewat satu mutex; satu event selesai diterapkan penuh sebelum event
// berikutnya masuk.
type Store struct {
	mu          sync.Mutex
	orders      *OrderBook
	floor       *FloorPlan
	settings    *Settings
	initialized bool
	disposed    bool
	log         *logrus.Logger
}

func NewStore(log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{
		orders: NewOrderBook(log),
		floor:  NewFloorPlan(log),
		log:    log,
	}
}

// Init mengganti seluruh koleksi dengan isi snapshot. Koleksi yang gagal
// di-fetch (flag OK false) dibiarkan apa adanya. Init setelah Dispose
// adalah no-op: hasil request yang datang setelah teardown dibuang.
func (s *Store) Init(snap *Snapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		s.log.Info("Snapshot arrived after dispose, discarded")
		return
	}

	if snap.SectionsOK || snap.TablesOK {
		floor := NewFloorPlan(s.log)
		if !snap.SectionsOK {
			floor.sections = s.floor.sections
		}
		if !snap.TablesOK {
			floor.tables = s.floor.tables
		}
		for i := range snap.Sections {
			floor.UpsertSection(&snap.Sections[i])
		}
		for i := range snap.Tables {
			floor.UpsertTable(&snap.Tables[i])
		}
		s.floor = floor
	}

	if snap.OrdersOK {
		book := NewOrderBook(s.log)
		// Snapshot dan live update memakai jalur decode items yang sama
		for i := len(snap.Orders) - 1; i >= 0; i-- {
			book.Insert(&snap.Orders[i])
		}
		s.orders = book
	}

	if snap.SettingsOK {
		s.settings = snap.Settings
	}

	s.initialized = true
	s.log.Infof("Snapshot applied: %d tables, %d sections, %d active orders",
		len(s.floor.tables), len(s.floor.sections), s.orders.Len())
}

// Apply menerapkan satu event live ke kedua reconciler. Floor plan
// diterapkan lebih dulu karena derivasi status meja perlu melihat
// koleksi order sebelum dimutasi.
func (s *Store) Apply(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	if !s.initialized {
		s.log.Infof("Dropping %s event before snapshot", ev.Type)
		return
	}

	switch ev.Type {
	case EventNewTable, EventUpdateTable, EventDeleteTable,
		EventNewSection, EventDeleteSection,
		EventNewOrder, EventNewTableOrder,
		EventUpdateOrder, EventUpdateTableOrder,
		EventCompleteOrder, EventDeleteOrder, EventDeleteTableOrder:
		s.floor.Apply(ev, s.orders)
		s.orders.Apply(ev)
	default:
		// Forward compatible: type baru dari server bukan error
		s.log.Infof("Ignoring unknown event type %q", ev.Type)
	}
}

// Dispose menandai store sudah tidak dipakai; mutasi selanjutnya dibuang.
func (s *Store) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
}

// Tables -> salinan seluruh meja.
func (s *Store) Tables() []Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.floor.Tables()
}

// TableAt -> meja berdasarkan pasangan (nomor, section).
func (s *Store) TableAt(tableNumber string, sectionID int64) (Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.floor.TableAt(tableNumber, sectionID)
}

// Sections -> salinan seluruh section.
func (s *Store) Sections() []Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.floor.Sections()
}

// Orders -> salinan order aktif, terbaru dulu.
func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.Active()
}

// Order -> satu order berdasarkan id.
func (s *Store) Order(id int64) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.Get(id)
}

// PendingAt -> order Pending untuk satu meja, kalau ada.
func (s *Store) PendingAt(tableNumber string, sectionID int64) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.PendingAt(tableNumber, sectionID)
}

// Rollup -> agregat nama item -> quantity dari seluruh order aktif.
func (s *Store) Rollup() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.Rollup()
}

// Settings -> pengaturan restoran dari snapshot terakhir.
func (s *Store) Settings() *Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}
