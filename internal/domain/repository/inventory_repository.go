package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Existencias-api/internal/domain/entity"
)

// LowStockCandidate es el resultado crudo de la consulta masiva de candidatos:
// filas de inventario cuya cantidad está por debajo del umbral efectivo
// (override del producto, si no el del tipo, si no el global).
type LowStockCandidate struct {
	InventoryID   string
	ProductID     string
	SKU           string
	ProductName   string
	WarehouseID   string
	WarehouseName string
	Quantity      int64
	Threshold     int64
	SupplierID    *string
}

// InventoryRepository define el puerto de persistencia para Inventory (DIP).
type InventoryRepository interface {
	Create(ctx context.Context, inventory *entity.Inventory) error
	GetByID(ctx context.Context, id string) (*entity.Inventory, error)
	GetByProductAndWarehouse(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar
	// mutaciones concurrentes sobre el mismo inventario.
	GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error)
	UpdateQuantity(ctx context.Context, id string, quantity int64, at time.Time) error
	// ListByProducts lectura masiva por conjunto de productos (componentes de bundles).
	ListByProducts(ctx context.Context, productIDs []string) ([]*entity.Inventory, error)
	// LowStockCandidates une inventario, producto y tipo en UNA consulta con el
	// umbral efectivo resuelto vía COALESCE. Excluye bundles: su disponibilidad
	// se deriva de componentes en la capa de aplicación.
	LowStockCandidates(ctx context.Context, companyID string, defaultThreshold int64) ([]LowStockCandidate, error)
}
