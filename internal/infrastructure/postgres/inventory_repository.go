package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Existencias-api/internal/domain/entity"
	"github.com/jhoicas/Existencias-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create inserta la fila de inventario de un producto en una bodega.
func (r *InventoryRepo) Create(ctx context.Context, inventory *entity.Inventory) error {
	query := `
		INSERT INTO inventory (id, product_id, warehouse_id, quantity, last_updated)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		inventory.ID, inventory.ProductID, inventory.WarehouseID,
		inventory.Quantity, inventory.LastUpdated)
	if err != nil {
		return mapConstraintError("create inventory", err)
	}
	return nil
}

// GetByID obtiene una fila de inventario. Devuelve (nil, nil) si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, last_updated
		FROM inventory WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByProductAndWarehouse busca por la clave única (product_id, warehouse_id).
func (r *InventoryRepo) GetByProductAndWarehouse(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, last_updated
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, productID, warehouseID))
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE) para que los
// escritores concurrentes sobre el mismo inventario se serialicen.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, last_updated
		FROM inventory WHERE id = $1
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// UpdateQuantity fija la cantidad y last_updated de la fila.
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, id string, quantity int64, at time.Time) error {
	query := `
		UPDATE inventory SET quantity = $2, last_updated = $3
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, quantity, at)
	if err != nil {
		return mapConstraintError("update inventory quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update inventory quantity: fila %s: %w", id, pgx.ErrNoRows)
	}
	return nil
}

// ListByProducts lectura masiva de inventario por conjunto de productos.
func (r *InventoryRepo) ListByProducts(ctx context.Context, productIDs []string) ([]*entity.Inventory, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, product_id, warehouse_id, quantity, last_updated
		FROM inventory WHERE product_id = ANY($1)`
	rows, err := r.q.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list inventory by products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// LowStockCandidates une inventario, producto, tipo, bodega y proveedor en UNA
// consulta; el umbral efectivo se resuelve con COALESCE(producto, tipo, global).
// Excluye bundles: su disponibilidad se deriva en la capa de aplicación.
func (r *InventoryRepo) LowStockCandidates(ctx context.Context, companyID string, defaultThreshold int64) ([]repository.LowStockCandidate, error) {
	query := `
		SELECT
			i.id,
			p.id,
			p.sku,
			p.name,
			w.id,
			w.name,
			i.quantity,
			COALESCE(p.low_stock_threshold, pt.low_stock_threshold, $2) AS threshold,
			p.supplier_id
		FROM inventory i
		JOIN products p   ON p.id = i.product_id
		JOIN warehouses w ON w.id = i.warehouse_id
		LEFT JOIN product_types pt ON pt.id = p.product_type_id
		WHERE p.company_id = $1
		  AND NOT p.is_bundle
		  AND i.quantity < COALESCE(p.low_stock_threshold, pt.low_stock_threshold, $2)`
	rows, err := r.q.Query(ctx, query, companyID, defaultThreshold)
	if err != nil {
		return nil, fmt.Errorf("low stock candidates: %w", err)
	}
	defer rows.Close()
	var items []repository.LowStockCandidate
	for rows.Next() {
		var item repository.LowStockCandidate
		if err := rows.Scan(
			&item.InventoryID, &item.ProductID, &item.SKU, &item.ProductName,
			&item.WarehouseID, &item.WarehouseName,
			&item.Quantity, &item.Threshold, &item.SupplierID,
		); err != nil {
			return nil, fmt.Errorf("scan low stock candidate: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *InventoryRepo) scanOne(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}
