package router

import (
	"github.com/gin-gonic/gin"
	"github.com/qrpos/qr-system/controllers"
	"github.com/qrpos/qr-system/live"
	"github.com/qrpos/qr-system/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, hub *live.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())

	userCtrl := controllers.NewUserController(db)
	sectionCtrl := controllers.NewSectionController(db, hub)
	tableCtrl := controllers.NewTableController(db, hub)
	tableOrderCtrl := controllers.NewTableOrderController(db, hub)
	orderCtrl := controllers.NewOrderController(db, hub)
	menuCtrl := controllers.NewMenuController(db)
	settingCtrl := controllers.NewSettingController(db)

	// Auth
	auth := r.Group("/auth")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", userCtrl.Register)
		auth.POST("/login", userCtrl.Login)
	}

	// Endpoint publik untuk alur customer (landing QR -> menu -> order)
	r.GET("/api/menu/categories", menuCtrl.GetMenuByCategory)
	r.POST("/api/orders/public", orderCtrl.CreateOrder)

	// Live feed untuk dashboard staff
	r.GET("/ws", middlewares.WebSocketAuthMiddleware(), hub.Serve)

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/sections", sectionCtrl.GetAllSections)
		api.POST("/sections", sectionCtrl.CreateSection)
		api.DELETE("/sections/:section_id", sectionCtrl.DeleteSection)

		api.GET("/tables", tableCtrl.GetAllTables)
		api.POST("/tables", tableCtrl.CreateTable)
		api.PUT("/tables/:table_id", tableCtrl.UpdateTableStatus)
		api.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		api.GET("/tableorder", tableOrderCtrl.GetAllTableOrders)
		api.POST("/tableorder", tableOrderCtrl.CreateTableOrder)
		api.PUT("/tableorder/:order_id", tableOrderCtrl.UpdateTableOrder)
		api.DELETE("/tableorder/:order_id", tableOrderCtrl.DeleteTableOrder)

		api.GET("/orders", orderCtrl.GetAllOrders)
		api.POST("/orders", orderCtrl.CreateOrder)
		api.PUT("/orders/:order_id", orderCtrl.UpdateOrder)
		api.POST("/orders/:order_id/complete", orderCtrl.CompleteOrder)
		api.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

		api.GET("/menu", menuCtrl.GetMenu)
		api.POST("/menu", menuCtrl.CreateMenuItem)
		api.PUT("/menu/:menu_id", menuCtrl.UpdateMenuItem)
		api.DELETE("/menu/:menu_id", menuCtrl.DeleteMenuItem)

		api.GET("/settings", settingCtrl.GetSettings)
		api.PUT("/settings", settingCtrl.UpdateSettings)
	}

	return r
}
