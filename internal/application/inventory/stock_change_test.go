package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Existencias-api/internal/application/inventory"
	"github.com/jhoicas/Existencias-api/internal/domain"
	"github.com/jhoicas/Existencias-api/internal/domain/entity"
)

func newStockFixture(t *testing.T) (*inventory.StockChangeUseCase, *memStore, string) {
	t.Helper()
	store := newMemStore()
	invID := uuid.New().String()
	store.inventories[invID] = &entity.Inventory{
		ID:          invID,
		ProductID:   uuid.New().String(),
		WarehouseID: uuid.New().String(),
		Quantity:    10,
		LastUpdated: time.Now().Add(-time.Hour),
	}
	return inventory.NewStockChangeUseCase(&memTxRunner{s: store}), store, invID
}

func TestStockChange_VentaDescuentaYRegistraHistorial(t *testing.T) {
	uc, store, invID := newStockFixture(t)

	result, err := uc.Execute(context.Background(), inventory.ApplyStockChangeInput{
		InventoryID: invID,
		Delta:       -4,
		Reason:      entity.ReasonSale,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), result.NewQuantity)
	assert.Equal(t, int64(6), store.inventories[invID].Quantity)

	require.Len(t, store.history, 1)
	assert.Equal(t, int64(-4), store.history[0].ChangeAmount)
	assert.Equal(t, int64(6), store.history[0].NewQuantity)
	assert.Equal(t, entity.ReasonSale, store.history[0].Reason)
}

func TestStockChange_ReposicionSuma(t *testing.T) {
	uc, store, invID := newStockFixture(t)

	result, err := uc.Execute(context.Background(), inventory.ApplyStockChangeInput{
		InventoryID: invID,
		Delta:       25,
		Reason:      entity.ReasonRestock,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(35), result.NewQuantity)
	assert.Equal(t, int64(35), store.inventories[invID].Quantity)
}

func TestStockChange_NoPermiteStockNegativo(t *testing.T) {
	uc, store, invID := newStockFixture(t)

	_, err := uc.Execute(context.Background(), inventory.ApplyStockChangeInput{
		InventoryID: invID,
		Delta:       -11,
		Reason:      entity.ReasonSale,
	})
	require.ErrorIs(t, err, domain.ErrInvariant)

	// La cantidad no cambió y el ledger quedó intacto.
	assert.Equal(t, int64(10), store.inventories[invID].Quantity)
	assert.Empty(t, store.history)
}

func TestStockChange_InventarioInexistente(t *testing.T) {
	uc, _, _ := newStockFixture(t)

	_, err := uc.Execute(context.Background(), inventory.ApplyStockChangeInput{
		InventoryID: uuid.New().String(),
		Delta:       -1,
		Reason:      entity.ReasonSale,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockChange_RazonInvalida(t *testing.T) {
	uc, _, invID := newStockFixture(t)

	for _, reason := range []string{"robo", entity.ReasonInitialStock} {
		_, err := uc.Execute(context.Background(), inventory.ApplyStockChangeInput{
			InventoryID: invID,
			Delta:       -1,
			Reason:      reason,
		})
		verr, ok := domain.AsValidation(err)
		require.True(t, ok, "razón %q debe ser inválida", reason)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "reason", verr.Fields[0].Field)
	}
}

func TestStockChange_DeltaCeroEsInvalido(t *testing.T) {
	uc, _, invID := newStockFixture(t)

	_, err := uc.Execute(context.Background(), inventory.ApplyStockChangeInput{
		InventoryID: invID,
		Delta:       0,
		Reason:      entity.ReasonAdjustment,
	})
	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "delta", verr.Fields[0].Field)
}

func TestStockChange_ElHistorialReproduceLaCantidad(t *testing.T) {
	uc, store, invID := newStockFixture(t)
	store.inventories[invID].Quantity = 0

	deltas := []struct {
		delta  int64
		reason string
	}{
		{50, entity.ReasonRestock},
		{-12, entity.ReasonSale},
		{-8, entity.ReasonSale},
		{3, entity.ReasonAdjustment},
		{-20, entity.ReasonSale},
	}
	for _, d := range deltas {
		_, err := uc.Execute(context.Background(), inventory.ApplyStockChangeInput{
			InventoryID: invID,
			Delta:       d.delta,
			Reason:      d.reason,
		})
		require.NoError(t, err)
	}

	var sum int64
	for _, h := range store.history {
		sum += h.ChangeAmount
	}
	assert.Equal(t, store.inventories[invID].Quantity, sum,
		"la suma del ledger debe reproducir la cantidad actual")
	assert.Equal(t, int64(13), store.inventories[invID].Quantity)
}
