package dto

import "github.com/shopspring/decimal"

// BundleComponentRequest componente de un bundle en la creación de producto.
type BundleComponentRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateProductRequest cuerpo HTTP para crear un producto con su stock inicial.
// company_id viene en la ruta; el resto aquí.
type CreateProductRequest struct {
	SKU               string                   `json:"sku"`
	Name              string                   `json:"name"`
	Description       string                   `json:"description"`
	Price             decimal.Decimal          `json:"price"`
	SupplierID        *string                  `json:"supplier_id"`
	ProductTypeID     *string                  `json:"product_type_id"`
	LowStockThreshold *int64                   `json:"low_stock_threshold"`
	IsBundle          bool                     `json:"is_bundle"`
	Components        []BundleComponentRequest `json:"components"`
	WarehouseID       string                   `json:"warehouse_id"`
	InitialQuantity   int64                    `json:"initial_quantity"`
}

// CreateProductResponse identificadores del recurso creado.
type CreateProductResponse struct {
	ProductID   string `json:"product_id"`
	InventoryID string `json:"inventory_id"`
}

// StockChangeRequest cuerpo HTTP para aplicar un delta de stock
// (venta, reposición o ajuste) sobre un inventario.
type StockChangeRequest struct {
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
}

// StockChangeResponse cantidad resultante tras aplicar el delta.
type StockChangeResponse struct {
	InventoryID string `json:"inventory_id"`
	NewQuantity int64  `json:"new_quantity"`
}
