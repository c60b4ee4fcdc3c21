package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qrpos/qr-system/live"
	"github.com/qrpos/qr-system/models"
	"github.com/qrpos/qr-system/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB  *gorm.DB
	Hub *live.Hub
}

func NewTableController(db *gorm.DB, hub *live.Hub) *TableController {
	return &TableController{DB: db, Hub: hub}
}

// GetAllTables -> menampilkan seluruh meja
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// CreateTable -> menambahkan meja baru ke sebuah section
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber string `json:"table_number" binding:"required"`
		SectionID   uint   `json:"section_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var section models.Section
	if err := tc.DB.First(&section, req.SectionID).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("section %d not found", req.SectionID))
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		SectionID:   req.SectionID,
		Status:      models.TableEmpty,
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.Hub.Broadcast(live.EventNewTable, map[string]interface{}{
		"table": table,
	})

	utils.InfoLogger.Printf("New table created: %s in section %d", table.TableNumber, table.SectionID)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// UpdateTableStatus -> update status meja (empty/occupied/reserved)
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	tableID := c.Param("table_id")
	var body struct {
		Status    string `json:"status" binding:"required"`
		SectionID uint   `json:"section_id"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Status != models.TableEmpty && body.Status != models.TableOccupied && body.Status != models.TableReserved {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid table status: %s", body.Status))
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.Status = body.Status
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.Hub.Broadcast(live.EventUpdateTable, map[string]interface{}{
		"table": table,
	})

	utils.InfoLogger.Printf("Table %d status changed to %s", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// DeleteTable -> menghapus meja beserta order yang menunjuk ke meja tersebut
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table

	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("table_number = ? AND section_id = ?", table.TableNumber, table.SectionID).
			Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&table).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.Hub.Broadcast(live.EventDeleteTable, map[string]interface{}{
		"id":           table.ID,
		"table_number": table.TableNumber,
		"section_id":   table.SectionID,
	})

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}
