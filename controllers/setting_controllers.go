package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qrpos/qr-system/models"
	"github.com/qrpos/qr-system/utils"
	"gorm.io/gorm"
)

type SettingController struct {
	DB *gorm.DB
}

func NewSettingController(db *gorm.DB) *SettingController {
	return &SettingController{DB: db}
}

// GetSettings -> pengaturan restoran (satu baris)
func (sc *SettingController) GetSettings(c *gin.Context) {
	var setting models.Setting
	if err := sc.DB.FirstOrCreate(&setting, models.Setting{ID: 1}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant settings", setting)
}

// UpdateSettings -> update nama restoran, telepon, UPI ID, GST
func (sc *SettingController) UpdateSettings(c *gin.Context) {
	var req struct {
		RestaurantName string   `json:"restaurantName"`
		Phone          string   `json:"phone"`
		UpiID          string   `json:"upiId"`
		GST            *float64 `json:"gst"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var setting models.Setting
	if err := sc.DB.FirstOrCreate(&setting, models.Setting{ID: 1}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if req.RestaurantName != "" {
		setting.RestaurantName = req.RestaurantName
	}
	if req.Phone != "" {
		setting.Phone = req.Phone
	}
	if req.UpiID != "" {
		setting.UpiID = req.UpiID
	}
	if req.GST != nil {
		setting.GST = *req.GST
	}

	if err := sc.DB.Save(&setting).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Settings updated for %s", setting.RestaurantName)
	utils.RespondJSON(c, http.StatusOK, "Settings updated", setting)
}
