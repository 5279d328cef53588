package inventory_test

import (
	"context"
	"time"

	"github.com/jhoicas/Existencias-api/internal/domain/entity"
	"github.com/jhoicas/Existencias-api/internal/domain/repository"
	"github.com/jhoicas/Existencias-api/internal/domain/velocity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los tests del escritor de inventario.
// El TxRunner de memoria clona el estado y solo lo publica en commit, de modo
// que un fallo a mitad de transacción deja el almacén exactamente como estaba
// (mismo contrato que el TxRunner de PostgreSQL con Rollback diferido).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	companies   map[string]*entity.Company
	warehouses  map[string]*entity.Warehouse
	suppliers   map[string]*entity.Supplier
	types       map[string]*entity.ProductType
	products    map[string]*entity.Product
	components  map[string][]entity.BundleComponent
	inventories map[string]*entity.Inventory
	history     []*entity.InventoryHistory

	// inyección de fallos para simular violaciones de constraint en pleno tx
	productInsertErr   error
	inventoryInsertErr error
	historyInsertErr   error
}

func newMemStore() *memStore {
	return &memStore{
		companies:   map[string]*entity.Company{},
		warehouses:  map[string]*entity.Warehouse{},
		suppliers:   map[string]*entity.Supplier{},
		types:       map[string]*entity.ProductType{},
		products:    map[string]*entity.Product{},
		components:  map[string][]entity.BundleComponent{},
		inventories: map[string]*entity.Inventory{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.companies {
		cp := *v
		c.companies[k] = &cp
	}
	for k, v := range s.warehouses {
		cp := *v
		c.warehouses[k] = &cp
	}
	for k, v := range s.suppliers {
		cp := *v
		c.suppliers[k] = &cp
	}
	for k, v := range s.types {
		cp := *v
		c.types[k] = &cp
	}
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range s.components {
		c.components[k] = append([]entity.BundleComponent(nil), v...)
	}
	for k, v := range s.inventories {
		cp := *v
		c.inventories[k] = &cp
	}
	c.history = append([]*entity.InventoryHistory(nil), s.history...)
	c.productInsertErr = s.productInsertErr
	c.inventoryInsertErr = s.inventoryInsertErr
	c.historyInsertErr = s.historyInsertErr
	return c
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type memTxRunner struct {
	s *memStore
}

func (t *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	invRepo repository.InventoryRepository,
	histRepo repository.InventoryHistoryRepository,
) error) error {
	clone := t.s.clone()
	if err := fn(&memProductRepo{clone}, &memInventoryRepo{clone}, &memHistoryRepo{clone}); err != nil {
		return err
	}
	*t.s = *clone
	return nil
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	if r.s.productInsertErr != nil {
		return r.s.productInsertErr
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) ListBundlesByCompany(_ context.Context, companyID string) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.IsBundle {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memProductRepo) AddBundleComponents(_ context.Context, bundleID string, components []entity.BundleComponent) error {
	r.s.components[bundleID] = append(r.s.components[bundleID], components...)
	return nil
}

func (r *memProductRepo) ComponentsByBundles(_ context.Context, bundleIDs []string) (map[string][]entity.BundleComponent, error) {
	result := map[string][]entity.BundleComponent{}
	for _, id := range bundleIDs {
		if comps, ok := r.s.components[id]; ok {
			result[id] = append([]entity.BundleComponent(nil), comps...)
		}
	}
	return result, nil
}

// ── InventoryRepository ───────────────────────────────────────────────────────

type memInventoryRepo struct{ s *memStore }

func (r *memInventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	if r.s.inventoryInsertErr != nil {
		return r.s.inventoryInsertErr
	}
	cp := *inv
	r.s.inventories[inv.ID] = &cp
	return nil
}

func (r *memInventoryRepo) GetByID(_ context.Context, id string) (*entity.Inventory, error) {
	if inv, ok := r.s.inventories[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (r *memInventoryRepo) GetByProductAndWarehouse(_ context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	for _, inv := range r.s.inventories {
		if inv.ProductID == productID && inv.WarehouseID == warehouseID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memInventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.GetByID(ctx, id)
}

func (r *memInventoryRepo) UpdateQuantity(_ context.Context, id string, quantity int64, at time.Time) error {
	inv, ok := r.s.inventories[id]
	if !ok {
		return nil
	}
	inv.Quantity = quantity
	inv.LastUpdated = at
	return nil
}

func (r *memInventoryRepo) ListByProducts(_ context.Context, productIDs []string) ([]*entity.Inventory, error) {
	var list []*entity.Inventory
	for _, id := range productIDs {
		for _, inv := range r.s.inventories {
			if inv.ProductID == id {
				cp := *inv
				list = append(list, &cp)
			}
		}
	}
	return list, nil
}

func (r *memInventoryRepo) LowStockCandidates(_ context.Context, companyID string, defaultThreshold int64) ([]repository.LowStockCandidate, error) {
	return nil, nil
}

// ── InventoryHistoryRepository ────────────────────────────────────────────────

type memHistoryRepo struct{ s *memStore }

func (r *memHistoryRepo) Create(_ context.Context, h *entity.InventoryHistory) error {
	if r.s.historyInsertErr != nil {
		return r.s.historyInsertErr
	}
	cp := *h
	r.s.history = append(r.s.history, &cp)
	return nil
}

func (r *memHistoryRepo) ListByInventory(_ context.Context, inventoryID string) ([]*entity.InventoryHistory, error) {
	var list []*entity.InventoryHistory
	for _, h := range r.s.history {
		if h.InventoryID == inventoryID {
			cp := *h
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memHistoryRepo) SalesByInventoryIDs(_ context.Context, inventoryIDs []string, from, to time.Time) (map[string][]velocity.SaleEvent, error) {
	result := map[string][]velocity.SaleEvent{}
	for _, id := range inventoryIDs {
		for _, h := range r.s.history {
			if h.InventoryID != id || h.ChangeAmount >= 0 {
				continue
			}
			if h.ChangeDate.Before(from) || h.ChangeDate.After(to) {
				continue
			}
			result[id] = append(result[id], velocity.SaleEvent{
				ChangeAmount: h.ChangeAmount,
				ChangeDate:   h.ChangeDate,
			})
		}
	}
	return result, nil
}

// ── Repositorios de referencia (solo lecturas de validación) ──────────────────

type memCompanyRepo struct{ s *memStore }

func (r *memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r *memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	if c, ok := r.s.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

type memWarehouseRepo struct{ s *memStore }

func (r *memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	if w, ok := r.s.warehouses[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *memWarehouseRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.CompanyID == companyID {
			cp := *w
			list = append(list, &cp)
		}
	}
	return list, nil
}

type memSupplierRepo struct{ s *memStore }

func (r *memSupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	cp := *sup
	r.s.suppliers[sup.ID] = &cp
	return nil
}

func (r *memSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	if sup, ok := r.s.suppliers[id]; ok {
		cp := *sup
		return &cp, nil
	}
	return nil, nil
}

func (r *memSupplierRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Supplier, error) {
	result := map[string]*entity.Supplier{}
	for _, id := range ids {
		if sup, ok := r.s.suppliers[id]; ok {
			cp := *sup
			result[id] = &cp
		}
	}
	return result, nil
}

type memTypeRepo struct{ s *memStore }

func (r *memTypeRepo) Create(_ context.Context, t *entity.ProductType) error {
	cp := *t
	r.s.types[t.ID] = &cp
	return nil
}

func (r *memTypeRepo) GetByID(_ context.Context, id string) (*entity.ProductType, error) {
	if t, ok := r.s.types[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *memTypeRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.ProductType, error) {
	result := map[string]*entity.ProductType{}
	for _, id := range ids {
		if t, ok := r.s.types[id]; ok {
			cp := *t
			result[id] = &cp
		}
	}
	return result, nil
}
