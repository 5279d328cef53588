package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Existencias-api/internal/application/dto"
	"github.com/jhoicas/Existencias-api/internal/application/inventory"
)

// ProductCreator puerto del caso de uso de creación de producto con stock.
type ProductCreator interface {
	Execute(ctx context.Context, input inventory.CreateProductInput) (*inventory.CreatedProduct, error)
}

// StockChanger puerto del caso de uso de aplicación de deltas de stock.
type StockChanger interface {
	Execute(ctx context.Context, input inventory.ApplyStockChangeInput) (*inventory.StockChangeResult, error)
}

// ProductHandler maneja las peticiones HTTP del escritor de inventario.
type ProductHandler struct {
	creator ProductCreator
	changer StockChanger
}

// NewProductHandler construye el handler.
func NewProductHandler(creator ProductCreator, changer StockChanger) *ProductHandler {
	return &ProductHandler{creator: creator, changer: changer}
}

// Create godoc
// @Summary      Crear producto con stock inicial
// @Description  Crea el producto, su fila de inventario y la primera entrada
//
//	del historial como una unidad atómica.
//
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        companyID  path  string  true  "ID de la empresa (UUID)"
// @Param        body  body  dto.CreateProductRequest  true  "sku, name, price, warehouse_id, initial_quantity, ..."
// @Success      201  {object}  dto.CreateProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyID}/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := inventory.CreateProductInput{
		CompanyID:         c.Params("companyID"),
		SKU:               in.SKU,
		Name:              in.Name,
		Description:       in.Description,
		Price:             in.Price,
		SupplierID:        in.SupplierID,
		ProductTypeID:     in.ProductTypeID,
		LowStockThreshold: in.LowStockThreshold,
		IsBundle:          in.IsBundle,
		WarehouseID:       in.WarehouseID,
		InitialQuantity:   in.InitialQuantity,
	}
	for _, comp := range in.Components {
		input.Components = append(input.Components, inventory.ComponentInput{
			ProductID: comp.ProductID,
			Quantity:  comp.Quantity,
		})
	}

	created, err := h.creator.Execute(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateProductResponse{
		ProductID:   created.ProductID,
		InventoryID: created.InventoryID,
	})
}

// ApplyStockChange godoc
// @Summary      Aplicar delta de stock
// @Description  Venta (delta negativo), reposición o ajuste, con entrada de
//
//	historial en la misma transacción. Nunca deja stock negativo.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        inventoryID  path  string  true  "ID del inventario (UUID)"
// @Param        body  body  dto.StockChangeRequest  true  "delta, reason (sale|restock|adjustment)"
// @Success      200  {object}  dto.StockChangeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/{inventoryID}/movements [post]
func (h *ProductHandler) ApplyStockChange(c *fiber.Ctx) error {
	var in dto.StockChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	result, err := h.changer.Execute(c.Context(), inventory.ApplyStockChangeInput{
		InventoryID: c.Params("inventoryID"),
		Delta:       in.Delta,
		Reason:      in.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockChangeResponse{
		InventoryID: result.InventoryID,
		NewQuantity: result.NewQuantity,
	})
}
