package entity

import "time"

// Supplier representa un proveedor de productos.
// Es un catálogo compartido: no está acotado por tenant.
type Supplier struct {
	ID           string
	Name         string
	ContactEmail string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
