package staffsync

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlexIDAcceptsStringAndNumber(t *testing.T) {
	var p OrderPayload
	err := json.Unmarshal([]byte(`{"id":"12","section_id":3}`), &p)
	assert.NoError(t, err)
	assert.Equal(t, FlexID(12), p.ID)
	assert.Equal(t, FlexID(3), p.SectionID)

	err = json.Unmarshal([]byte(`{"id":7}`), &p)
	assert.NoError(t, err)
	assert.Equal(t, FlexID(7), p.ID)
}

func TestFlexStringAcceptsNumber(t *testing.T) {
	var p OrderPayload
	err := json.Unmarshal([]byte(`{"table_number":5}`), &p)
	assert.NoError(t, err)
	assert.Equal(t, FlexString("5"), p.TableNumber)

	err = json.Unmarshal([]byte(`{"table_number":"A5"}`), &p)
	assert.NoError(t, err)
	assert.Equal(t, FlexString("A5"), p.TableNumber)
}

func TestItemListDecodesArray(t *testing.T) {
	var l ItemList
	err := json.Unmarshal([]byte(`[{"id":9,"name":"Tea","price":20,"quantity":2}]`), &l)
	assert.NoError(t, err)
	assert.True(t, l.Present)
	assert.True(t, l.Valid)
	assert.Len(t, l.Items, 1)
	assert.Equal(t, "Tea", l.Items[0].Name)
	assert.Equal(t, 2, l.Items[0].Quantity)
}

func TestItemListDecodesEncodedString(t *testing.T) {
	var l ItemList
	err := json.Unmarshal([]byte(`"[{\"id\":9,\"name\":\"Tea\",\"price\":20,\"quantity\":2}]"`), &l)
	assert.NoError(t, err)
	assert.True(t, l.Valid)
	assert.Len(t, l.Items, 1)
	assert.Equal(t, "Tea", l.Items[0].Name)
}

func TestItemListMarksGarbageInvalid(t *testing.T) {
	var l ItemList
	err := json.Unmarshal([]byte(`"{not json"`), &l)
	assert.NoError(t, err)
	assert.True(t, l.Present)
	assert.False(t, l.Valid)
}

func TestItemListEmptyStringIsEmptyList(t *testing.T) {
	var l ItemList
	err := json.Unmarshal([]byte(`""`), &l)
	assert.NoError(t, err)
	assert.True(t, l.Valid)
	assert.Empty(t, l.Items)
}

func TestDecodeEventRejectsMalformedFrame(t *testing.T) {
	_, err := DecodeEvent([]byte(`{not json`))
	assert.Error(t, err)

	_, err = DecodeEvent([]byte(`{"table":{}}`))
	assert.Error(t, err, "frame without type must be rejected")
}

func TestDecodeEventFullOrderFrame(t *testing.T) {
	frame := `{"type":"new_table_order","order":{"id":1,"table_number":"5","section_id":2,` +
		`"items":[{"id":9,"name":"Tea","price":20,"quantity":2}],"total_amount":40,"status":"Pending"}}`
	ev, err := DecodeEvent([]byte(frame))
	assert.NoError(t, err)
	assert.Equal(t, EventNewTableOrder, ev.Type)
	assert.NotNil(t, ev.Order)
	assert.Equal(t, FlexID(1), ev.Order.ID)
	assert.Equal(t, FlexString("5"), ev.Order.TableNumber)
	assert.Len(t, ev.Order.Items.Items, 1)
}
