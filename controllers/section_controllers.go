package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qrpos/qr-system/live"
	"github.com/qrpos/qr-system/models"
	"github.com/qrpos/qr-system/utils"
	"gorm.io/gorm"
)

type SectionController struct {
	DB  *gorm.DB
	Hub *live.Hub
}

func NewSectionController(db *gorm.DB, hub *live.Hub) *SectionController {
	return &SectionController{DB: db, Hub: hub}
}

// GetAllSections -> menampilkan seluruh section
func (sc *SectionController) GetAllSections(c *gin.Context) {
	var sections []models.Section
	if err := sc.DB.Find(&sections).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of sections", sections)
}

// CreateSection -> menambahkan section baru
func (sc *SectionController) CreateSection(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	section := models.Section{Name: req.Name}
	if err := sc.DB.Create(&section).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	sc.Hub.Broadcast(live.EventNewSection, map[string]interface{}{
		"section": section,
	})

	utils.InfoLogger.Printf("New section created: %s (id=%d)", section.Name, section.ID)
	utils.RespondJSON(c, http.StatusCreated, "Section created successfully", section)
}

// DeleteSection -> menghapus section beserta meja dan order di dalamnya
func (sc *SectionController) DeleteSection(c *gin.Context) {
	sectionID := c.Param("section_id")

	var section models.Section
	if err := sc.DB.First(&section, sectionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// Cascade: order -> table -> section dalam satu transaksi
	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", section.ID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("section_id = ?", section.ID).Delete(&models.Table{}).Error; err != nil {
			return err
		}
		return tx.Delete(&section).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	sc.Hub.Broadcast(live.EventDeleteSection, map[string]interface{}{
		"id": section.ID,
	})

	utils.InfoLogger.Printf("Section %d deleted (with tables and orders)", section.ID)
	utils.RespondJSON(c, http.StatusOK, "Section deleted", gin.H{"id": section.ID})
}
