package repository

import (
	"context"

	"github.com/jhoicas/Existencias-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product y sus
// componentes de bundle (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByCompanyAndSKU busca por la clave única (company_id, sku).
	// Devuelve (nil, nil) si no existe.
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
	ListBundlesByCompany(ctx context.Context, companyID string) ([]*entity.Product, error)
	AddBundleComponents(ctx context.Context, bundleID string, components []entity.BundleComponent) error
	// ComponentsByBundles devuelve en una sola consulta los componentes de todos
	// los bundles indicados, agrupados por bundle_id.
	ComponentsByBundles(ctx context.Context, bundleIDs []string) (map[string][]entity.BundleComponent, error)
}
