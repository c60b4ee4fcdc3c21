package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qrpos/qr-system/live"
	"github.com/qrpos/qr-system/models"
	"github.com/qrpos/qr-system/utils"
	"gorm.io/gorm"
)

type TableOrderController struct {
	DB  *gorm.DB
	Hub *live.Hub
}

func NewTableOrderController(db *gorm.DB, hub *live.Hub) *TableOrderController {
	return &TableOrderController{DB: db, Hub: hub}
}

// GetAllTableOrders -> seluruh order yang terikat ke meja
func (oc *TableOrderController) GetAllTableOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Where("table_number <> ''").Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of table orders", orders)
}

// CreateTableOrder -> membuat order baru untuk sebuah meja.
// Satu meja hanya boleh punya satu order Pending.
func (oc *TableOrderController) CreateTableOrder(c *gin.Context) {
	var req struct {
		TableNumber   string             `json:"table_number" binding:"required"`
		SectionID     uint               `json:"section_id" binding:"required"`
		CustomerName  string             `json:"customer_name"`
		PaymentMethod string             `json:"payment_method"`
		Items         []models.OrderItem `json:"items" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	err := oc.DB.Where("table_number = ? AND section_id = ?", req.TableNumber, req.SectionID).
		First(&table).Error
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("table %s in section %d not found", req.TableNumber, req.SectionID))
		return
	}

	var pending int64
	oc.DB.Model(&models.Order{}).
		Where("table_number = ? AND section_id = ? AND status = ?",
			req.TableNumber, req.SectionID, models.OrderPending).
		Count(&pending)
	if pending > 0 {
		utils.RespondError(c, http.StatusConflict,
			errors.New("table already has a pending order"))
		return
	}

	order := models.Order{
		TableNumber:   req.TableNumber,
		SectionID:     req.SectionID,
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderPending,
	}
	if err := order.EncodeItems(req.Items); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Model(&table).Update("status", models.TableOccupied).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.Hub.Broadcast(live.EventNewTableOrder, map[string]interface{}{
		"order": order,
	})

	utils.InfoLogger.Printf("New table order %d for table %s/%d", order.ID, order.TableNumber, order.SectionID)
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// UpdateTableOrder -> merge perubahan item/status ke order yang ada
func (oc *TableOrderController) UpdateTableOrder(c *gin.Context) {
	orderID := c.Param("order_id")
	var req struct {
		Items         []models.OrderItem `json:"items"`
		Status        string             `json:"status"`
		PaymentMethod string             `json:"payment_method"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Items != nil {
		if err := order.EncodeItems(req.Items); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}
	if req.Status != "" {
		if req.Status != models.OrderPending && req.Status != models.OrderCompleted {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid order status: %s", req.Status))
			return
		}
		order.Status = req.Status
	}
	if req.PaymentMethod != "" {
		order.PaymentMethod = req.PaymentMethod
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		// Meja kembali empty begitu order selesai
		if order.Status == models.OrderCompleted {
			return tx.Model(&models.Table{}).
				Where("table_number = ? AND section_id = ?", order.TableNumber, order.SectionID).
				Update("status", models.TableEmpty).Error
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.Hub.Broadcast(live.EventUpdateTableOrder, map[string]interface{}{
		"order": order,
	})

	utils.InfoLogger.Printf("Table order %d updated (status=%s)", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// DeleteTableOrder -> menghapus order dan mengosongkan mejanya
func (oc *TableOrderController) DeleteTableOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&order).Error; err != nil {
			return err
		}
		return tx.Model(&models.Table{}).
			Where("table_number = ? AND section_id = ?", order.TableNumber, order.SectionID).
			Update("status", models.TableEmpty).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.Hub.Broadcast(live.EventDeleteTableOrder, map[string]interface{}{
		"id": order.ID,
		"order": map[string]interface{}{
			"table_number": order.TableNumber,
			"section_id":   order.SectionID,
		},
	})

	utils.InfoLogger.Printf("Table order %d deleted", order.ID)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"id": order.ID})
}
