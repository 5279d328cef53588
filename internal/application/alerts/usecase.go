package alerts

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jhoicas/Existencias-api/internal/application/dto"
	"github.com/jhoicas/Existencias-api/internal/domain"
	"github.com/jhoicas/Existencias-api/internal/domain/entity"
	"github.com/jhoicas/Existencias-api/internal/domain/repository"
	"github.com/jhoicas/Existencias-api/internal/domain/velocity"
)

// UseCase es el motor de alertas de stock bajo: combina inventario actual,
// umbrales configurados, filtro de actividad reciente y proyección de quiebre
// por velocidad de ventas. Camino de solo lectura: no muta estado ni toma
// locks más allá del nivel de consistencia por defecto del almacén.
type UseCase struct {
	companyRepo   repository.CompanyRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	typeRepo      repository.ProductTypeRepository
	invRepo       repository.InventoryRepository
	histRepo      repository.InventoryHistoryRepository
	supplierRepo  repository.SupplierRepository
	cfg           Config
	now           func() time.Time
}

// Config umbral global y ventana por defecto del motor.
type Config struct {
	DefaultThreshold int64
	DefaultWindow    time.Duration
}

// Options parámetros opcionales por petición.
type Options struct {
	AsOf   time.Time     // cero = ahora
	Window time.Duration // cero = ventana por defecto
}

// NewUseCase construye el motor de alertas.
func NewUseCase(
	companyRepo repository.CompanyRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	typeRepo repository.ProductTypeRepository,
	invRepo repository.InventoryRepository,
	histRepo repository.InventoryHistoryRepository,
	supplierRepo repository.SupplierRepository,
	cfg Config,
) *UseCase {
	if cfg.DefaultWindow <= 0 {
		cfg.DefaultWindow = 30 * 24 * time.Hour
	}
	return &UseCase{
		companyRepo:   companyRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		typeRepo:      typeRepo,
		invRepo:       invRepo,
		histRepo:      histRepo,
		supplierRepo:  supplierRepo,
		cfg:           cfg,
		now:           time.Now,
	}
}

// candidate fila bajo umbral pendiente de filtro de actividad y proyección.
// velocityInvID apunta al inventario cuya historia alimenta la estimación;
// para bundles es el del componente limitante y velocityScale convierte la
// velocidad del componente a unidades de bundle (1/cantidad por bundle).
type candidate struct {
	base          repository.LowStockCandidate
	isBundle      bool
	velocityInvID string
	velocityScale float64
}

// GetLowStockAlerts devuelve las alertas de la empresa ordenadas por urgencia.
// Nunca devuelve una lista parcial: ante fallo del almacén retorna solo error.
func (uc *UseCase) GetLowStockAlerts(ctx context.Context, companyID string, opts Options) (*dto.LowStockReport, error) {
	asOf := opts.AsOf
	if asOf.IsZero() {
		asOf = uc.now()
	}
	window := opts.Window
	if window <= 0 {
		window = uc.cfg.DefaultWindow
	}

	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("consultar empresa: %w: %w", domain.ErrInternal, err)
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", companyID, domain.ErrNotFound)
	}

	// Candidatos simples: una sola consulta con el umbral efectivo resuelto en SQL.
	rows, err := uc.invRepo.LowStockCandidates(ctx, companyID, uc.cfg.DefaultThreshold)
	if err != nil {
		return nil, fmt.Errorf("candidatos de stock bajo: %w: %w", domain.ErrInternal, err)
	}
	candidates := make([]candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, candidate{
			base:          row,
			velocityInvID: row.InventoryID,
			velocityScale: 1,
		})
	}

	// Candidatos bundle: disponibilidad derivada de componentes.
	bundleCands, err := uc.bundleCandidates(ctx, companyID)
	if err != nil {
		return nil, err
	}
	candidates = append(candidates, bundleCands...)

	if len(candidates) == 0 {
		return &dto.LowStockReport{Total: 0, Alerts: []dto.LowStockAlertDTO{}}, nil
	}

	// Historial de ventas de TODOS los candidatos en una consulta masiva,
	// nunca una por candidato: bajo carga el patrón por fila produce falsos
	// negativos por timeout.
	invIDs := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c.velocityInvID == "" || seen[c.velocityInvID] {
			continue
		}
		seen[c.velocityInvID] = true
		invIDs = append(invIDs, c.velocityInvID)
	}
	sales := map[string][]velocity.SaleEvent{}
	if len(invIDs) > 0 {
		sales, err = uc.histRepo.SalesByInventoryIDs(ctx, invIDs, asOf.Add(-window), asOf)
		if err != nil {
			return nil, fmt.Errorf("historial de ventas: %w: %w", domain.ErrInternal, err)
		}
	}

	alerts := make([]dto.LowStockAlertDTO, 0, len(candidates))
	supplierIDs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		rate := velocity.Estimate(sales[c.velocityInvID], asOf, window)
		if !rate.HadRecentSale {
			// Sin movimiento reciente no hay alerta: evita ruido por SKUs
			// dormidos o descontinuados.
			continue
		}
		unitsPerDay := rate.UnitsPerDay * c.velocityScale

		var daysUntil *int64
		if unitsPerDay > 0 {
			d := int64(math.Floor(float64(c.base.Quantity) / unitsPerDay))
			daysUntil = &d
		}

		alert := dto.LowStockAlertDTO{
			ProductID:         c.base.ProductID,
			SKU:               c.base.SKU,
			ProductName:       c.base.ProductName,
			WarehouseID:       c.base.WarehouseID,
			WarehouseName:     c.base.WarehouseName,
			IsBundle:          c.isBundle,
			CurrentStock:      c.base.Quantity,
			Threshold:         c.base.Threshold,
			UnitsPerDay:       unitsPerDay,
			DaysUntilStockout: daysUntil,
		}
		if c.base.SupplierID != nil {
			supplierIDs = append(supplierIDs, *c.base.SupplierID)
			// se resuelve abajo en una sola lectura masiva
			alert.Supplier = &dto.SupplierDTO{ID: *c.base.SupplierID}
		}
		alerts = append(alerts, alert)
	}

	if len(supplierIDs) > 0 {
		suppliers, err := uc.supplierRepo.GetByIDs(ctx, supplierIDs)
		if err != nil {
			return nil, fmt.Errorf("proveedores de alertas: %w: %w", domain.ErrInternal, err)
		}
		for i := range alerts {
			if alerts[i].Supplier == nil {
				continue
			}
			if s, ok := suppliers[alerts[i].Supplier.ID]; ok {
				alerts[i].Supplier.Name = s.Name
				alerts[i].Supplier.ContactEmail = s.ContactEmail
			}
		}
	}

	// Más urgente primero; proyecciones nulas (sin quiebre estimable) al final.
	sort.SliceStable(alerts, func(i, j int) bool {
		di, dj := alerts[i].DaysUntilStockout, alerts[j].DaysUntilStockout
		switch {
		case di == nil && dj == nil:
			return alerts[i].UnitsPerDay > alerts[j].UnitsPerDay
		case di == nil:
			return false
		case dj == nil:
			return true
		case *di != *dj:
			return *di < *dj
		default:
			return alerts[i].UnitsPerDay > alerts[j].UnitsPerDay
		}
	})

	return &dto.LowStockReport{Total: len(alerts), Alerts: alerts}, nil
}

// bundleCandidates deriva la disponibilidad de cada bundle por bodega como
// min(stock_componente / cantidad_por_bundle) y devuelve los que quedan bajo
// su umbral efectivo. Tres lecturas masivas, ninguna por bundle.
func (uc *UseCase) bundleCandidates(ctx context.Context, companyID string) ([]candidate, error) {
	bundles, err := uc.productRepo.ListBundlesByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("bundles de la empresa: %w: %w", domain.ErrInternal, err)
	}
	if len(bundles) == 0 {
		return nil, nil
	}

	warehouses, err := uc.warehouseRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("bodegas de la empresa: %w: %w", domain.ErrInternal, err)
	}

	bundleIDs := make([]string, 0, len(bundles))
	typeIDs := make([]string, 0, len(bundles))
	for _, b := range bundles {
		bundleIDs = append(bundleIDs, b.ID)
		if b.ProductTypeID != nil {
			typeIDs = append(typeIDs, *b.ProductTypeID)
		}
	}

	componentsByBundle, err := uc.productRepo.ComponentsByBundles(ctx, bundleIDs)
	if err != nil {
		return nil, fmt.Errorf("componentes de bundles: %w: %w", domain.ErrInternal, err)
	}

	componentIDs := make([]string, 0)
	compSeen := make(map[string]bool)
	for _, comps := range componentsByBundle {
		for _, c := range comps {
			if !compSeen[c.ComponentID] {
				compSeen[c.ComponentID] = true
				componentIDs = append(componentIDs, c.ComponentID)
			}
		}
	}
	inventories, err := uc.invRepo.ListByProducts(ctx, componentIDs)
	if err != nil {
		return nil, fmt.Errorf("inventario de componentes: %w: %w", domain.ErrInternal, err)
	}
	invByKey := make(map[string]*entity.Inventory, len(inventories))
	for _, inv := range inventories {
		invByKey[inv.ProductID+"|"+inv.WarehouseID] = inv
	}

	types := map[string]*entity.ProductType{}
	if len(typeIDs) > 0 {
		types, err = uc.typeRepo.GetByIDs(ctx, typeIDs)
		if err != nil {
			return nil, fmt.Errorf("tipos de producto: %w: %w", domain.ErrInternal, err)
		}
	}

	var out []candidate
	for _, bundle := range bundles {
		components := componentsByBundle[bundle.ID]
		if len(components) == 0 {
			continue
		}
		var productType *entity.ProductType
		if bundle.ProductTypeID != nil {
			productType = types[*bundle.ProductTypeID]
		}
		threshold := bundle.EffectiveThreshold(productType, uc.cfg.DefaultThreshold)

		for _, wh := range warehouses {
			available, limiting, stocked := deriveAvailability(components, wh.ID, invByKey)
			if !stocked || available >= threshold {
				continue
			}
			c := candidate{
				base: repository.LowStockCandidate{
					ProductID:     bundle.ID,
					SKU:           bundle.SKU,
					ProductName:   bundle.Name,
					WarehouseID:   wh.ID,
					WarehouseName: wh.Name,
					Quantity:      available,
					Threshold:     threshold,
					SupplierID:    bundle.SupplierID,
				},
				isBundle: true,
			}
			if limiting.inv != nil {
				c.velocityInvID = limiting.inv.ID
				c.velocityScale = 1 / float64(limiting.perBundle)
			}
			out = append(out, c)
		}
	}
	return out, nil
}

type limitingComponent struct {
	inv       *entity.Inventory
	perBundle int64
}

// deriveAvailability calcula min(stock/cantidad) del bundle en una bodega y
// el componente limitante. stocked es false si ningún componente tiene fila
// de inventario en esa bodega (el bundle no se maneja allí).
func deriveAvailability(
	components []entity.BundleComponent,
	warehouseID string,
	invByKey map[string]*entity.Inventory,
) (available int64, limiting limitingComponent, stocked bool) {
	first := true
	for _, comp := range components {
		if comp.Quantity <= 0 {
			continue
		}
		inv := invByKey[comp.ComponentID+"|"+warehouseID]
		var units int64
		if inv != nil {
			stocked = true
			units = inv.Quantity / comp.Quantity
		}
		if first || units < available {
			available = units
			limiting = limitingComponent{inv: inv, perBundle: comp.Quantity}
			first = false
		}
	}
	if first {
		return 0, limitingComponent{}, false
	}
	return available, limiting, stocked
}
