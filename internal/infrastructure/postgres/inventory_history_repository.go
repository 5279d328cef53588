package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Existencias-api/internal/domain/entity"
	"github.com/jhoicas/Existencias-api/internal/domain/repository"
	"github.com/jhoicas/Existencias-api/internal/domain/velocity"
)

var _ repository.InventoryHistoryRepository = (*InventoryHistoryRepo)(nil)

// InventoryHistoryRepo implementación del ledger append-only sobre PostgreSQL.
// Solo INSERT y SELECT: el historial nunca se actualiza ni se borra.
type InventoryHistoryRepo struct {
	q Querier
}

// NewInventoryHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryHistoryRepository(q Querier) *InventoryHistoryRepo {
	return &InventoryHistoryRepo{q: q}
}

// Create agrega una entrada al ledger.
func (r *InventoryHistoryRepo) Create(ctx context.Context, history *entity.InventoryHistory) error {
	query := `
		INSERT INTO inventory_history (id, inventory_id, change_amount, new_quantity, reason, change_date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		history.ID, history.InventoryID, history.ChangeAmount,
		history.NewQuantity, history.Reason, history.ChangeDate)
	if err != nil {
		return mapConstraintError("create inventory history", err)
	}
	return nil
}

// ListByInventory devuelve el historial completo de una fila de inventario,
// del cambio más antiguo al más reciente (lectura de auditoría).
func (r *InventoryHistoryRepo) ListByInventory(ctx context.Context, inventoryID string) ([]*entity.InventoryHistory, error) {
	query := `
		SELECT id, inventory_id, change_amount, new_quantity, reason, change_date
		FROM inventory_history WHERE inventory_id = $1
		ORDER BY change_date, id`
	rows, err := r.q.Query(ctx, query, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list inventory history: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryHistory
	for rows.Next() {
		var h entity.InventoryHistory
		if err := rows.Scan(&h.ID, &h.InventoryID, &h.ChangeAmount, &h.NewQuantity, &h.Reason, &h.ChangeDate); err != nil {
			return nil, fmt.Errorf("scan inventory history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// SalesByInventoryIDs trae las ventas (change_amount < 0) de todo el conjunto
// de inventarios en UNA consulta (inventory_id = ANY($1)), agrupadas por
// inventory_id. El motor de alertas depende de que esto nunca degrade a una
// consulta por candidato.
func (r *InventoryHistoryRepo) SalesByInventoryIDs(ctx context.Context, inventoryIDs []string, from, to time.Time) (map[string][]velocity.SaleEvent, error) {
	result := make(map[string][]velocity.SaleEvent, len(inventoryIDs))
	if len(inventoryIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT inventory_id, change_amount, change_date
		FROM inventory_history
		WHERE inventory_id = ANY($1)
		  AND change_amount < 0
		  AND change_date BETWEEN $2 AND $3`
	rows, err := r.q.Query(ctx, query, inventoryIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by inventory ids: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var invID string
		var ev velocity.SaleEvent
		if err := rows.Scan(&invID, &ev.ChangeAmount, &ev.ChangeDate); err != nil {
			return nil, fmt.Errorf("scan sale event: %w", err)
		}
		result[invID] = append(result[invID], ev)
	}
	return result, rows.Err()
}
