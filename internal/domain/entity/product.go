package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-bodega).
// SKU es único por empresa, no global. El stock vive en Inventory;
// si IsBundle es true la disponibilidad se deriva de los componentes.
type Product struct {
	ID                string
	CompanyID         string
	SKU               string // único por empresa
	Name              string
	Description       string
	Price             decimal.Decimal
	SupplierID        *string // nil = sin proveedor configurado (estado normal)
	ProductTypeID     *string
	LowStockThreshold *int64 // override por producto; nil = umbral del tipo o el global
	IsBundle          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// BundleComponent relaciona un bundle con un producto componente y la cantidad
// de unidades del componente que requiere cada unidad del bundle.
// La disponibilidad del bundle es min(stock_componente / Quantity) por bodega.
type BundleComponent struct {
	BundleID    string
	ComponentID string
	Quantity    int64
}

// EffectiveThreshold resuelve el umbral de stock bajo del producto:
// override propio, si no el del tipo, si no el global de la aplicación.
func (p *Product) EffectiveThreshold(productType *ProductType, globalDefault int64) int64 {
	if p.LowStockThreshold != nil {
		return *p.LowStockThreshold
	}
	if productType != nil {
		return productType.LowStockThreshold
	}
	return globalDefault
}
