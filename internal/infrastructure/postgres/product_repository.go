package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Existencias-api/internal/domain/entity"
	"github.com/jhoicas/Existencias-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, sku, name, description, price,
		supplier_id, product_type_id, low_stock_threshold, is_bundle,
		created_at, updated_at`

// Create inserta un producto. Una carrera contra otro insert del mismo
// (company_id, sku) la decide el constraint único y se mapea a ErrConflict.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, sku, name, description, price,
			supplier_id, product_type_id, low_stock_threshold, is_bundle,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.CompanyID, product.SKU, product.Name, product.Description,
		product.Price, product.SupplierID, product.ProductTypeID,
		product.LowStockThreshold, product.IsBundle, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return mapConstraintError("create product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByCompanyAndSKU busca por la clave única (company_id, sku).
func (r *ProductRepo) GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, companyID, sku))
}

// ListBundlesByCompany lista los productos bundle de una empresa.
func (r *ProductRepo) ListBundlesByCompany(ctx context.Context, companyID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE company_id = $1 AND is_bundle
		ORDER BY sku`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// AddBundleComponents inserta los componentes de un bundle.
func (r *ProductRepo) AddBundleComponents(ctx context.Context, bundleID string, components []entity.BundleComponent) error {
	query := `
		INSERT INTO bundle_components (bundle_id, component_id, quantity)
		VALUES ($1, $2, $3)`
	for _, c := range components {
		if _, err := r.q.Exec(ctx, query, bundleID, c.ComponentID, c.Quantity); err != nil {
			return mapConstraintError("add bundle component", err)
		}
	}
	return nil
}

// ComponentsByBundles trae los componentes de todos los bundles indicados en
// una sola consulta, agrupados por bundle_id.
func (r *ProductRepo) ComponentsByBundles(ctx context.Context, bundleIDs []string) (map[string][]entity.BundleComponent, error) {
	result := make(map[string][]entity.BundleComponent, len(bundleIDs))
	if len(bundleIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT bundle_id, component_id, quantity
		FROM bundle_components WHERE bundle_id = ANY($1)`
	rows, err := r.q.Query(ctx, query, bundleIDs)
	if err != nil {
		return nil, fmt.Errorf("components by bundles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.BundleComponent
		if err := rows.Scan(&c.BundleID, &c.ComponentID, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan bundle component: %w", err)
		}
		result[c.BundleID] = append(result[c.BundleID], c)
	}
	return result, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description, &p.Price,
		&p.SupplierID, &p.ProductTypeID, &p.LowStockThreshold, &p.IsBundle,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) scanRow(rows pgx.Rows) (*entity.Product, error) {
	var p entity.Product
	err := rows.Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description, &p.Price,
		&p.SupplierID, &p.ProductTypeID, &p.LowStockThreshold, &p.IsBundle,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}
