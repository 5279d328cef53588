package dto

// SupplierDTO proveedor asociado a la alerta, si el producto tiene uno.
type SupplierDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// LowStockAlertDTO una alerta de stock bajo con proyección de quiebre.
// DaysUntilStockout es nil cuando la velocidad no permite proyectar
// (nunca una constante inventada); 0 significa quiebre inminente u ocurrido.
type LowStockAlertDTO struct {
	ProductID         string       `json:"product_id"`
	SKU               string       `json:"sku"`
	ProductName       string       `json:"product_name"`
	WarehouseID       string       `json:"warehouse_id"`
	WarehouseName     string       `json:"warehouse_name"`
	IsBundle          bool         `json:"is_bundle"`
	CurrentStock      int64        `json:"current_stock"`
	Threshold         int64        `json:"threshold"`
	UnitsPerDay       float64      `json:"units_per_day"`
	DaysUntilStockout *int64       `json:"days_until_stockout"`
	Supplier          *SupplierDTO `json:"supplier,omitempty"`
}

// LowStockReport lista de alertas ordenada por urgencia (quiebre más cercano
// primero, proyecciones nulas al final) más el total.
type LowStockReport struct {
	Total  int                `json:"total"`
	Alerts []LowStockAlertDTO `json:"alerts"`
}
