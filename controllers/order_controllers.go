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

// OrderController menangani pesanan counter / takeaway
// (order tanpa meja, dibuat dari landing page customer).
type OrderController struct {
	DB  *gorm.DB
	Hub *live.Hub
}

func NewOrderController(db *gorm.DB, hub *live.Hub) *OrderController {
	return &OrderController{DB: db, Hub: hub}
}

// GetAllOrders -> seluruh order aktif (Pending)
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Where("status = ?", models.OrderPending).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder -> order baru dari customer
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		CustomerName  string             `json:"customer_name" binding:"required"`
		Phone         string             `json:"phone"`
		PaymentMethod string             `json:"payment_method"`
		Items         []models.OrderItem `json:"items" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order := models.Order{
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderPending,
	}
	if err := order.EncodeItems(req.Items); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.Hub.Broadcast(live.EventNewOrder, map[string]interface{}{
		"order": order,
	})

	utils.InfoLogger.Printf("New order %d from %s", order.ID, order.CustomerName)
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// UpdateOrder -> merge perubahan item ke order yang ada
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	orderID := c.Param("order_id")
	var req struct {
		Items         []models.OrderItem `json:"items"`
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
	if req.PaymentMethod != "" {
		order.PaymentMethod = req.PaymentMethod
	}

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.Hub.Broadcast(live.EventUpdateOrder, map[string]interface{}{
		"order": order,
	})

	utils.InfoLogger.Printf("Order %d updated", order.ID)
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// CompleteOrder -> menandai order selesai
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.Status == models.OrderCompleted {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("order %d already completed", order.ID))
		return
	}

	order.Status = models.OrderCompleted
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.Hub.Broadcast(live.EventCompleteOrder, map[string]interface{}{
		"order": order,
	})

	utils.InfoLogger.Printf("Order %d completed", order.ID)
	utils.RespondJSON(c, http.StatusOK, "Order completed", order)
}

// DeleteOrder -> menghapus order
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := oc.DB.Delete(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.Hub.Broadcast(live.EventDeleteOrder, map[string]interface{}{
		"id": order.ID,
	})

	utils.InfoLogger.Printf("Order %d deleted", order.ID)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"id": order.ID})
}
