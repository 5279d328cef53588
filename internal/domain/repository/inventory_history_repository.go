package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Existencias-api/internal/domain/entity"
	"github.com/jhoicas/Existencias-api/internal/domain/velocity"
)

// InventoryHistoryRepository define el puerto del ledger append-only (DIP).
// Sin Update ni Delete: el historial solo crece.
type InventoryHistoryRepository interface {
	Create(ctx context.Context, history *entity.InventoryHistory) error
	ListByInventory(ctx context.Context, inventoryID string) ([]*entity.InventoryHistory, error)
	// SalesByInventoryIDs trae las ventas (change_amount < 0) de TODO el conjunto
	// de inventarios candidatos en una sola consulta (inventory_id = ANY($1)),
	// agrupadas por inventory_id. Prohibido degradar a una consulta por candidato.
	SalesByInventoryIDs(ctx context.Context, inventoryIDs []string, from, to time.Time) (map[string][]velocity.SaleEvent, error)
}
