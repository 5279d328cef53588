package inventory

import (
	"context"

	"github.com/jhoicas/Existencias-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el escritor de
// inventario: o persisten todas las filas de la unidad o ninguna, con
// Rollback asegurado en cualquier salida (incluida cancelación del ctx).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
		histRepo repository.InventoryHistoryRepository,
	) error) error
}
