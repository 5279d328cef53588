package repository

import (
	"context"

	"github.com/jhoicas/Existencias-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
// GetByIDs es lectura masiva para enriquecer alertas sin caer en N+1.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Supplier, error)
}
