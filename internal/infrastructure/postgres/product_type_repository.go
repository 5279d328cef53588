package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Existencias-api/internal/domain/entity"
	"github.com/jhoicas/Existencias-api/internal/domain/repository"
)

var _ repository.ProductTypeRepository = (*ProductTypeRepo)(nil)

// ProductTypeRepo implementación de ProductTypeRepository sobre PostgreSQL.
type ProductTypeRepo struct {
	q Querier
}

// NewProductTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductTypeRepository(q Querier) *ProductTypeRepo {
	return &ProductTypeRepo{q: q}
}

// Create inserta un tipo de producto.
func (r *ProductTypeRepo) Create(ctx context.Context, productType *entity.ProductType) error {
	query := `
		INSERT INTO product_types (id, name, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		productType.ID, productType.Name, productType.LowStockThreshold,
		productType.CreatedAt, productType.UpdatedAt)
	if err != nil {
		return mapConstraintError("create product type", err)
	}
	return nil
}

// GetByID obtiene un tipo por ID. Devuelve (nil, nil) si no existe.
func (r *ProductTypeRepo) GetByID(ctx context.Context, id string) (*entity.ProductType, error) {
	query := `
		SELECT id, name, low_stock_threshold, created_at, updated_at
		FROM product_types WHERE id = $1`
	var t entity.ProductType
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.LowStockThreshold, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product type: %w", err)
	}
	return &t, nil
}

// GetByIDs lectura masiva por conjunto de IDs, indexada por ID.
func (r *ProductTypeRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.ProductType, error) {
	if len(ids) == 0 {
		return map[string]*entity.ProductType{}, nil
	}
	query := `
		SELECT id, name, low_stock_threshold, created_at, updated_at
		FROM product_types WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get product types by ids: %w", err)
	}
	defer rows.Close()
	result := make(map[string]*entity.ProductType, len(ids))
	for rows.Next() {
		var t entity.ProductType
		if err := rows.Scan(&t.ID, &t.Name, &t.LowStockThreshold, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product type: %w", err)
		}
		result[t.ID] = &t
	}
	return result, rows.Err()
}
