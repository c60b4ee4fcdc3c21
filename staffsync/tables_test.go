package staffsync

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// floorWithTable menyiapkan satu section dan satu meja (5, section 2).
func floorWithTable() (*FloorPlan, *OrderBook) {
	log := quietLogger()
	floor := NewFloorPlan(log)
	floor.UpsertSection(&SectionPayload{ID: 2, Name: "Garden"})
	floor.UpsertTable(&TablePayload{ID: 10, TableNumber: "5", SectionID: 2, Status: TableEmpty})
	return floor, NewOrderBook(log)
}

func applyBoth(floor *FloorPlan, book *OrderBook, ev Event) {
	floor.Apply(ev, book)
	book.Apply(ev)
}

func TestNewTableOrderOccupiesTable(t *testing.T) {
	floor, book := floorWithTable()

	applyBoth(floor, book, Event{Type: EventNewTableOrder, Order: teaOrder(1)})

	table, ok := floor.TableAt("5", 2)
	assert.True(t, ok)
	assert.Equal(t, TableOccupied, table.Status)
	assert.Equal(t, 2, book.Rollup()["Tea"])
}

func TestCompletionEmptiesTable(t *testing.T) {
	floor, book := floorWithTable()
	applyBoth(floor, book, Event{Type: EventNewTableOrder, Order: teaOrder(1)})

	// Update hanya membawa id+status; pasangan meja dicari dari koleksi order
	applyBoth(floor, book, Event{
		Type:  EventUpdateTableOrder,
		Order: &OrderPayload{ID: 1, Status: StatusCompleted},
	})

	table, _ := floor.TableAt("5", 2)
	assert.Equal(t, TableEmpty, table.Status)
	assert.Equal(t, 0, book.Len())
	assert.Zero(t, book.Rollup()["Tea"])
}

func TestUpdateForUnknownOrderLeavesTableAlone(t *testing.T) {
	floor, book := floorWithTable()

	applyBoth(floor, book, Event{
		Type:  EventUpdateTableOrder,
		Order: &OrderPayload{ID: 42, TableNumber: "5", SectionID: 2, Status: StatusPending},
	})

	table, _ := floor.TableAt("5", 2)
	assert.Equal(t, TableEmpty, table.Status)
	assert.Equal(t, 0, book.Len())
}

func TestDeleteTableCascadesOrders(t *testing.T) {
	floor, book := floorWithTable()
	applyBoth(floor, book, Event{Type: EventNewTableOrder, Order: teaOrder(1)})

	applyBoth(floor, book, Event{
		Type: EventDeleteTable, ID: 10, TableNumber: "5", SectionID: 2,
	})

	_, ok := floor.TableByID(10)
	assert.False(t, ok)
	assert.Equal(t, 0, book.Len())
}

func TestDeleteSectionCascadesTablesAndOrders(t *testing.T) {
	floor, book := floorWithTable()
	floor.UpsertTable(&TablePayload{ID: 11, TableNumber: "6", SectionID: 2})
	floor.UpsertTable(&TablePayload{ID: 20, TableNumber: "1", SectionID: 3})
	applyBoth(floor, book, Event{Type: EventNewTableOrder, Order: teaOrder(1)})

	applyBoth(floor, book, Event{Type: EventDeleteSection, ID: 2})

	assert.Empty(t, book.Active())
	for _, table := range floor.Tables() {
		assert.NotEqual(t, int64(2), table.SectionID)
	}
	_, ok := floor.TableByID(20)
	assert.True(t, ok, "table in other section must survive")
}

func TestDeleteTableOrderEmptiesTable(t *testing.T) {
	floor, book := floorWithTable()
	applyBoth(floor, book, Event{Type: EventNewTableOrder, Order: teaOrder(1)})

	applyBoth(floor, book, Event{
		Type: EventDeleteTableOrder,
		ID:   1,
		Order: &OrderPayload{
			TableNumber: "5",
			SectionID:   2,
		},
	})

	table, _ := floor.TableAt("5", 2)
	assert.Equal(t, TableEmpty, table.Status)
	assert.Equal(t, 0, book.Len())
}

func TestDeleteOrderLooksUpPairFromBook(t *testing.T) {
	floor, book := floorWithTable()
	applyBoth(floor, book, Event{Type: EventNewTableOrder, Order: teaOrder(1)})

	// delete_order hanya membawa id
	applyBoth(floor, book, Event{Type: EventDeleteOrder, ID: 1})

	table, _ := floor.TableAt("5", 2)
	assert.Equal(t, TableEmpty, table.Status)
}

func TestReservedTableUntouchedByDerivation(t *testing.T) {
	floor, book := floorWithTable()
	floor.UpsertTable(&TablePayload{ID: 10, Status: TableReserved})

	applyBoth(floor, book, Event{Type: EventNewTableOrder, Order: teaOrder(1)})

	table, _ := floor.TableAt("5", 2)
	assert.Equal(t, TableReserved, table.Status)
}

func TestUpsertTableMergesFields(t *testing.T) {
	floor, _ := floorWithTable()

	floor.UpsertTable(&TablePayload{ID: 10, Status: TableReserved})

	table, _ := floor.TableByID(10)
	assert.Equal(t, "5", table.TableNumber)
	assert.Equal(t, int64(2), table.SectionID)
	assert.Equal(t, TableReserved, table.Status)
}

func TestStatusDerivationConsistency(t *testing.T) {
	floor, book := floorWithTable()
	floor.UpsertTable(&TablePayload{ID: 11, TableNumber: "6", SectionID: 2})

	events := []Event{
		{Type: EventNewTableOrder, Order: teaOrder(1)},
		{Type: EventNewTableOrder, Order: func() *OrderPayload {
			p := teaOrder(2)
			p.TableNumber = "6"
			return p
		}()},
		{Type: EventUpdateTableOrder, Order: &OrderPayload{ID: 1, Status: StatusCompleted}},
		{Type: EventNewTableOrder, Order: teaOrder(3)},
		{Type: EventDeleteOrder, ID: 3},
	}
	for _, ev := range events {
		applyBoth(floor, book, ev)

		// Invariant: occupied <=> ada order Pending untuk meja itu
		for _, table := range floor.Tables() {
			_, pending := book.PendingAt(table.TableNumber, table.SectionID)
			if pending {
				assert.Equal(t, TableOccupied, table.Status)
			} else {
				assert.Equal(t, TableEmpty, table.Status)
			}
		}
	}
}
