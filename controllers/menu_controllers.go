package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qrpos/qr-system/models"
	"github.com/qrpos/qr-system/utils"
	"gorm.io/gorm"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetMenu -> seluruh item menu
func (mc *MenuController) GetMenu(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.Order("category, name").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", menus)
}

// GetMenuByCategory -> menu dikelompokkan per kategori untuk tampilan customer
func (mc *MenuController) GetMenuByCategory(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.Order("category, name").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	grouped := make(map[string][]models.Menu)
	for _, m := range menus {
		grouped[m.Category] = append(grouped[m.Category], m)
	}
	utils.RespondJSON(c, http.StatusOK, "Menu grouped by category", grouped)
}

// CreateMenuItem -> menambahkan item menu baru
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req struct {
		Name     string  `json:"name" binding:"required"`
		Category string  `json:"category" binding:"required"`
		Price    float64 `json:"price" binding:"required"`
		ImageURL string  `json:"image_url"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu := models.Menu{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		ImageURL: req.ImageURL,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (%s)", menu.Name, menu.Category)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", menu)
}

// UpdateMenuItem -> update nama/kategori/harga/gambar
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	menuID := c.Param("menu_id")
	var req struct {
		Name     string   `json:"name"`
		Category string   `json:"category"`
		Price    *float64 `json:"price"`
		ImageURL string   `json:"image_url"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menu models.Menu
	if err := mc.DB.First(&menu, menuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Name != "" {
		menu.Name = req.Name
	}
	if req.Category != "" {
		menu.Category = req.Category
	}
	if req.Price != nil {
		menu.Price = *req.Price
	}
	if req.ImageURL != "" {
		menu.ImageURL = req.ImageURL
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", menu)
}

// DeleteMenuItem -> menghapus item menu
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	menuID := c.Param("menu_id")

	var menu models.Menu
	if err := mc.DB.First(&menu, menuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := mc.DB.Delete(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item %d deleted", menu.ID)
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"id": menu.ID})
}
