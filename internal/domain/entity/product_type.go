package entity

import "time"

// ProductType agrupa productos y define su umbral de stock bajo por defecto.
// Un producto puede sobreescribir el umbral con Product.LowStockThreshold.
type ProductType struct {
	ID                string
	Name              string
	LowStockThreshold int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
