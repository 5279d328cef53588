package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductCreator ProductCreator
	StockChanger   StockChanger
	AlertService   AlertService
}

// Router registra las rutas de la API. Autenticación y CRUD genérico quedan
// fuera: este servicio expone solo el escritor de inventario y las alertas.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	productHandler := NewProductHandler(deps.ProductCreator, deps.StockChanger)
	alertHandler := NewAlertHandler(deps.AlertService)

	companies := api.Group("/companies/:companyID")
	companies.Post("/products", productHandler.Create)
	companies.Get("/alerts/low-stock", alertHandler.LowStock)

	api.Post("/inventory/:inventoryID/movements", productHandler.ApplyStockChange)
}
