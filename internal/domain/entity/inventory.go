package entity

import "time"

// Inventory representa las existencias de un producto en una bodega.
// Una fila por (product_id, warehouse_id); quantity >= 0 lo garantiza
// también un CHECK en la base. LastUpdated es la referencia autoritativa
// para chequeos de obsolescencia.
type Inventory struct {
	ID          string
	ProductID   string
	WarehouseID string
	Quantity    int64
	LastUpdated time.Time
}
