package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/qrpos/qr-system/controllers"
	"github.com/qrpos/qr-system/models"
	"github.com/qrpos/qr-system/utils"
)

func setupTableOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	orderCtrl := controllers.NewTableOrderController(db, quietHub())
	router.GET("/tableorder", orderCtrl.GetAllTableOrders)
	router.POST("/tableorder", orderCtrl.CreateTableOrder)
	router.PUT("/tableorder/:order_id", orderCtrl.UpdateTableOrder)
	router.DELETE("/tableorder/:order_id", orderCtrl.DeleteTableOrder)
	return router
}

func seedTable(t *testing.T, db *gorm.DB) models.Table {
	section := models.Section{Name: "Garden"}
	assert.NoError(t, db.Create(&section).Error)
	table := models.Table{TableNumber: "5", SectionID: section.ID, Status: models.TableEmpty}
	assert.NoError(t, db.Create(&table).Error)
	return table
}

func teaOrderPayload(table models.Table) []byte {
	payload, _ := json.Marshal(map[string]interface{}{
		"table_number": table.TableNumber,
		"section_id":   table.SectionID,
		"items": []map[string]interface{}{
			{"id": 9, "name": "Tea", "price": 20, "quantity": 2},
		},
	})
	return payload
}

func TestCreateTableOrderComputesTotalAndOccupiesTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTableOrderRouter(db)
	table := seedTable(t, db)

	req, _ := http.NewRequest("POST", "/tableorder", bytes.NewBuffer(teaOrderPayload(table)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 40.0, data["total_amount"])
	assert.Equal(t, models.OrderPending, data["status"])

	var fresh models.Table
	db.First(&fresh, table.ID)
	assert.Equal(t, models.TableOccupied, fresh.Status)
}

func TestSecondPendingOrderRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTableOrderRouter(db)
	table := seedTable(t, db)

	req, _ := http.NewRequest("POST", "/tableorder", bytes.NewBuffer(teaOrderPayload(table)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req, _ = http.NewRequest("POST", "/tableorder", bytes.NewBuffer(teaOrderPayload(table)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCompleteTableOrderEmptiesTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTableOrderRouter(db)
	table := seedTable(t, db)

	order := models.Order{TableNumber: "5", SectionID: table.SectionID, Status: models.OrderPending}
	assert.NoError(t, order.EncodeItems([]models.OrderItem{{ID: 9, Name: "Tea", Price: 20, Quantity: 2}}))
	db.Create(&order)
	db.Model(&models.Table{}).Where("id = ?", table.ID).Update("status", models.TableOccupied)

	payload, _ := json.Marshal(map[string]string{"status": models.OrderCompleted})
	url := "/tableorder/" + strconv.Itoa(int(order.ID))
	req, _ := http.NewRequest("PUT", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var fresh models.Table
	db.First(&fresh, table.ID)
	assert.Equal(t, models.TableEmpty, fresh.Status)

	var stored models.Order
	db.First(&stored, order.ID)
	assert.Equal(t, models.OrderCompleted, stored.Status)
}

func TestUpdateTableOrderReplacesItems(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTableOrderRouter(db)
	table := seedTable(t, db)

	order := models.Order{TableNumber: "5", SectionID: table.SectionID, Status: models.OrderPending}
	assert.NoError(t, order.EncodeItems([]models.OrderItem{{ID: 9, Name: "Tea", Price: 20, Quantity: 2}}))
	db.Create(&order)

	payload, _ := json.Marshal(map[string]interface{}{
		"items": []map[string]interface{}{
			{"id": 3, "name": "Samosa", "price": 15, "quantity": 4},
		},
	})
	url := "/tableorder/" + strconv.Itoa(int(order.ID))
	req, _ := http.NewRequest("PUT", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Order
	db.First(&stored, order.ID)
	items, err := stored.DecodeItems()
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Samosa", items[0].Name)
	assert.Equal(t, 60.0, stored.TotalAmount)
}

func TestDeleteTableOrderEmptiesTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTableOrderRouter(db)
	table := seedTable(t, db)

	order := models.Order{TableNumber: "5", SectionID: table.SectionID, Status: models.OrderPending}
	db.Create(&order)
	db.Model(&models.Table{}).Where("id = ?", table.ID).Update("status", models.TableOccupied)

	url := "/tableorder/" + strconv.Itoa(int(order.ID))
	req, _ := http.NewRequest("DELETE", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count)
	assert.Zero(t, count)

	var fresh models.Table
	db.First(&fresh, table.ID)
	assert.Equal(t, models.TableEmpty, fresh.Status)
}
