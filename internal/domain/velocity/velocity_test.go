package velocity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Existencias-api/internal/domain/velocity"
)

var asOf = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

const window30d = 30 * 24 * time.Hour

// Una venta de 5 unidades hace 5 días => 1 unidad/día.
func TestEstimate_UnaVentaEnVentana(t *testing.T) {
	events := []velocity.SaleEvent{
		{ChangeAmount: -5, ChangeDate: asOf.AddDate(0, 0, -5)},
	}

	rate := velocity.Estimate(events, asOf, window30d)

	assert.True(t, rate.HadRecentSale)
	assert.InDelta(t, 1.0, rate.UnitsPerDay, 1e-9)
}

// Ventas fuera de la ventana no cuentan: última venta hace 45 días con ventana
// de 30 => sin actividad reciente.
func TestEstimate_VentaFueraDeVentana(t *testing.T) {
	events := []velocity.SaleEvent{
		{ChangeAmount: -10, ChangeDate: asOf.AddDate(0, 0, -45)},
	}

	rate := velocity.Estimate(events, asOf, window30d)

	assert.False(t, rate.HadRecentSale)
	assert.Zero(t, rate.UnitsPerDay)
}

// Mover asOf hacia atrás vuelve a incluir la venta en la ventana.
func TestEstimate_AsOfReincluyeVenta(t *testing.T) {
	saleDate := asOf.AddDate(0, 0, -45)
	events := []velocity.SaleEvent{
		{ChangeAmount: -10, ChangeDate: saleDate},
	}

	rate := velocity.Estimate(events, saleDate.AddDate(0, 0, 29), window30d)

	assert.True(t, rate.HadRecentSale)
}

// Entradas y ajustes positivos no aportan velocidad de venta.
func TestEstimate_IgnoraEntradas(t *testing.T) {
	events := []velocity.SaleEvent{
		{ChangeAmount: 100, ChangeDate: asOf.AddDate(0, 0, -1)},
		{ChangeAmount: 50, ChangeDate: asOf.AddDate(0, 0, -2)},
	}

	rate := velocity.Estimate(events, asOf, window30d)

	assert.False(t, rate.HadRecentSale)
	assert.Zero(t, rate.UnitsPerDay)
}

// Varias ventas se acumulan: 5 + 10 unidades desde hace 20 días => 0.75/día.
func TestEstimate_AcumulaVentas(t *testing.T) {
	events := []velocity.SaleEvent{
		{ChangeAmount: -5, ChangeDate: asOf.AddDate(0, 0, -3)},
		{ChangeAmount: -10, ChangeDate: asOf.AddDate(0, 0, -20)},
		{ChangeAmount: 7, ChangeDate: asOf.AddDate(0, 0, -10)}, // restock, no cuenta
	}

	rate := velocity.Estimate(events, asOf, window30d)

	assert.True(t, rate.HadRecentSale)
	assert.InDelta(t, 0.75, rate.UnitsPerDay, 1e-9)
}

// Venta en el mismo instante de referencia: el denominador se acota a 1 día
// para no disparar la tasa al infinito.
func TestEstimate_VentaInmediataAcotaDenominador(t *testing.T) {
	events := []velocity.SaleEvent{
		{ChangeAmount: -4, ChangeDate: asOf.Add(-2 * time.Hour)},
	}

	rate := velocity.Estimate(events, asOf, window30d)

	assert.True(t, rate.HadRecentSale)
	assert.InDelta(t, 4.0, rate.UnitsPerDay, 1e-9)
}

// Determinismo: mismo input, mismo output.
func TestEstimate_Determinista(t *testing.T) {
	events := []velocity.SaleEvent{
		{ChangeAmount: -8, ChangeDate: asOf.AddDate(0, 0, -12)},
	}

	r1 := velocity.Estimate(events, asOf, window30d)
	r2 := velocity.Estimate(events, asOf, window30d)

	assert.Equal(t, r1, r2)
}

// Ventana inválida: sin pánico y sin actividad.
func TestEstimate_VentanaCero(t *testing.T) {
	events := []velocity.SaleEvent{
		{ChangeAmount: -5, ChangeDate: asOf},
	}

	rate := velocity.Estimate(events, asOf, 0)

	assert.False(t, rate.HadRecentSale)
}
