package repository

import (
	"context"

	"github.com/jhoicas/Existencias-api/internal/domain/entity"
)

// ProductTypeRepository define el puerto de persistencia para ProductType (DIP).
type ProductTypeRepository interface {
	Create(ctx context.Context, productType *entity.ProductType) error
	GetByID(ctx context.Context, id string) (*entity.ProductType, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.ProductType, error)
}
