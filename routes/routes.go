package routes

import (
	"lavapro-backend/config"
	"lavapro-backend/controllers"
	"lavapro-backend/services"
	"lavapro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	db := config.DB
	authController := controllers.NewAuthController(services.NewAuthService(db))
	customerController := controllers.NewCustomerController(services.NewCustomerService(db))
	orderController := controllers.NewOrderController(services.NewOrderService(db))
	paymentController := controllers.NewPaymentController(services.NewPaymentService(db))
	reportController := controllers.NewReportController(services.NewReportService(db))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		customers := api.Group("/clientes")
		{
			customers.POST("", customerController.CreateCustomer)
			customers.GET("", customerController.GetCustomers)
			customers.GET("/:id", customerController.GetCustomer)
			customers.PUT("/:id", customerController.UpdateCustomer)
			customers.DELETE("/:id", customerController.DeleteCustomer)
			customers.POST("/:id/anotacoes", customerController.AddNote)
			customers.DELETE("/:id/anotacoes/:noteId", customerController.DeleteNote)
		}

		orders := api.Group("/pedidos")
		{
			orders.GET("/prazos", orderController.GetDeadlines)
			orders.POST("", orderController.CreateOrder)
			orders.GET("", orderController.GetOrders)
			orders.GET("/:id", orderController.GetOrder)
			orders.PUT("/:id", orderController.UpdateOrder)
			orders.DELETE("/:id", orderController.DeleteOrder)
		}

		payments := api.Group("/pagamentos")
		{
			payments.POST("", paymentController.RegisterPayment)
			payments.GET("/historico", paymentController.GetHistory)
			payments.GET("/exportar", paymentController.ExportHistory)
			payments.GET("/:id/recibo", paymentController.GetReceipt)
		}

		// Reports require a logged-in user; resource routes are open.
		reports := api.Group("/relatorios")
		reports.Use(utils.AuthMiddleware())
		{
			reports.GET("/semanal/metricas", reportController.GetWeeklyMetrics)
			reports.GET("/semanal", reportController.GetWeeklyReport)
			reports.POST("/semanal/enviar", reportController.SendWeeklyReport)
		}
	}

	return r
}
