package entity

import "time"

// Razones de cambio de inventario (deben coincidir con el CHECK de inventory_history).
const (
	ReasonInitialStock = "initial_stock"
	ReasonSale         = "sale"
	ReasonRestock      = "restock"
	ReasonAdjustment   = "adjustment"
)

// InventoryHistory es una entrada del ledger append-only de cambios de existencias.
// Nunca se actualiza ni se borra (salvo cascada del Inventory padre). Es la única
// fuente de verdad para velocidad de ventas y auditoría: la suma de ChangeAmount
// de una fila de inventario reproduce su Quantity actual.
type InventoryHistory struct {
	ID           string
	InventoryID  string
	ChangeAmount int64 // negativo = venta/salida, positivo = entrada
	NewQuantity  int64 // cantidad resultante tras aplicar el cambio
	Reason       string
	ChangeDate   time.Time
}

// ValidReason indica si la razón pertenece al conjunto permitido.
func ValidReason(reason string) bool {
	switch reason {
	case ReasonInitialStock, ReasonSale, ReasonRestock, ReasonAdjustment:
		return true
	}
	return false
}
