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

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db, quietHub())
	router.GET("/tables", tableCtrl.GetAllTables)
	router.POST("/tables", tableCtrl.CreateTable)
	router.PUT("/tables/:table_id", tableCtrl.UpdateTableStatus)
	router.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	return router
}

func TestCreateTableRequiresSection(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTableRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"table_number": "5",
		"section_id":   99,
	})
	req, _ := http.NewRequest("POST", "/tables", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTableStartsEmpty(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTableRouter(db)

	section := models.Section{Name: "Garden"}
	db.Create(&section)

	payload, _ := json.Marshal(map[string]interface{}{
		"table_number": "5",
		"section_id":   section.ID,
	})
	req, _ := http.NewRequest("POST", "/tables", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, models.TableEmpty, data["status"])
}

func TestUpdateTableStatus(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTableRouter(db)

	section := models.Section{Name: "Garden"}
	db.Create(&section)
	table := models.Table{TableNumber: "5", SectionID: section.ID, Status: models.TableEmpty}
	db.Create(&table)

	payload, _ := json.Marshal(map[string]interface{}{
		"status":     models.TableReserved,
		"section_id": section.ID,
	})
	url := "/tables/" + strconv.Itoa(int(table.ID))
	req, _ := http.NewRequest("PUT", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, models.TableReserved, data["status"])
}

func TestUpdateTableRejectsUnknownStatus(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTableRouter(db)

	section := models.Section{Name: "Garden"}
	db.Create(&section)
	table := models.Table{TableNumber: "5", SectionID: section.ID, Status: models.TableEmpty}
	db.Create(&table)

	payload, _ := json.Marshal(map[string]string{"status": "dirty"})
	url := "/tables/" + strconv.Itoa(int(table.ID))
	req, _ := http.NewRequest("PUT", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTableCascadesOrders(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTableRouter(db)

	section := models.Section{Name: "Garden"}
	db.Create(&section)
	table := models.Table{TableNumber: "5", SectionID: section.ID, Status: models.TableOccupied}
	db.Create(&table)
	order := models.Order{TableNumber: "5", SectionID: section.ID, Status: models.OrderPending}
	db.Create(&order)

	url := "/tables/" + strconv.Itoa(int(table.ID))
	req, _ := http.NewRequest("DELETE", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var orderCount int64
	db.Model(&models.Order{}).
		Where("table_number = ? AND section_id = ?", "5", section.ID).
		Count(&orderCount)
	assert.Zero(t, orderCount)
}
