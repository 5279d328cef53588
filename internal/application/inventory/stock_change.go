package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jhoicas/Existencias-api/internal/domain"
	"github.com/jhoicas/Existencias-api/internal/domain/entity"
	"github.com/jhoicas/Existencias-api/internal/domain/repository"
)

// StockChangeUseCase aplica deltas de stock (ventas, reposiciones, ajustes)
// sobre una fila de inventario, con bloqueo de fila para serializar callers
// concurrentes y una entrada de historial por cada mutación.
type StockChangeUseCase struct {
	txRunner TxRunner
	validate *validator.Validate
}

// NewStockChangeUseCase construye el caso de uso.
func NewStockChangeUseCase(txRunner TxRunner) *StockChangeUseCase {
	return &StockChangeUseCase{txRunner: txRunner, validate: newValidator()}
}

// ApplyStockChangeInput entrada tipada de la operación.
// Delta negativo = venta/salida; positivo = reposición/entrada.
type ApplyStockChangeInput struct {
	InventoryID string `validate:"required,uuid4"`
	Delta       int64  `validate:"required"`
	Reason      string `validate:"required"`
}

// StockChangeResult estado resultante tras aplicar el delta.
type StockChangeResult struct {
	InventoryID string
	NewQuantity int64
	ChangedAt   time.Time
}

// Execute lee la cantidad bajo SELECT FOR UPDATE, rechaza resultados negativos
// y persiste la actualización junto con su fila de historial en la misma
// transacción. Dos llamadas concurrentes sobre el mismo inventario se
// serializan en el lock de fila; no hay lost updates.
func (uc *StockChangeUseCase) Execute(ctx context.Context, input ApplyStockChangeInput) (*StockChangeResult, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	var result *StockChangeResult
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		invRepo repository.InventoryRepository,
		histRepo repository.InventoryHistoryRepository,
	) error {
		inv, err := invRepo.GetForUpdate(ctx, input.InventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("inventario %s: %w", input.InventoryID, domain.ErrNotFound)
		}

		newQuantity := inv.Quantity + input.Delta
		if newQuantity < 0 {
			// Nunca persiste stock negativo, ni parcialmente.
			return fmt.Errorf("stock resultante %d para inventario %s: %w",
				newQuantity, inv.ID, domain.ErrInvariant)
		}

		now := time.Now()
		if err := invRepo.UpdateQuantity(ctx, inv.ID, newQuantity, now); err != nil {
			return err
		}
		if err := histRepo.Create(ctx, &entity.InventoryHistory{
			ID:           uuid.New().String(),
			InventoryID:  inv.ID,
			ChangeAmount: input.Delta,
			NewQuantity:  newQuantity,
			Reason:       input.Reason,
			ChangeDate:   now,
		}); err != nil {
			return err
		}
		result = &StockChangeResult{InventoryID: inv.ID, NewQuantity: newQuantity, ChangedAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *StockChangeUseCase) validateInput(input ApplyStockChangeInput) error {
	verr := &domain.ValidationError{}
	if err := collectStructErrors(verr, uc.validate.Struct(input)); err != nil {
		return fmt.Errorf("validar entrada: %w: %w", domain.ErrInternal, err)
	}
	if input.Reason != "" {
		// initial_stock queda reservado a la creación del producto.
		if !entity.ValidReason(input.Reason) || input.Reason == entity.ReasonInitialStock {
			verr.Add("reason", "oneof", "razón inválida: usar sale, restock o adjustment")
		}
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}
