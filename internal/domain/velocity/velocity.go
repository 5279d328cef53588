// Package velocity estima la velocidad de ventas de un inventario a partir
// de su historial de cambios. Función pura: sin estado oculto ni reloj propio.
package velocity

import "time"

// SaleEvent es la proyección mínima de una fila de InventoryHistory que
// necesita el estimador.
type SaleEvent struct {
	ChangeAmount int64
	ChangeDate   time.Time
}

// Rate es el resultado de la estimación sobre una ventana acotada.
// HadRecentSale define "actividad reciente": al menos un cambio negativo
// dentro de la ventana. Sin ventas, UnitsPerDay es 0 y el registro queda
// fuera de la noción de actividad reciente.
type Rate struct {
	UnitsPerDay   float64
	HadRecentSale bool
}

// Estimate calcula unidades vendidas por día dentro de [asOf-window, asOf].
// Solo cuentan los eventos con ChangeAmount < 0 (ventas); entradas y ajustes
// positivos no aportan velocidad.
//
// El denominador es el tiempo transcurrido desde la venta más antigua dentro
// de la ventana, acotado a [1 día, ventana]: cinco unidades vendidas hace
// cinco días son 1 unidad/día, no 5/ventana. Así la proyección refleja el
// ritmo real de venta y no se diluye en ventanas largas con poca historia.
func Estimate(events []SaleEvent, asOf time.Time, window time.Duration) Rate {
	if window <= 0 {
		return Rate{}
	}
	start := asOf.Add(-window)

	var totalSold int64
	var earliest time.Time
	sold := false
	for _, ev := range events {
		if ev.ChangeAmount >= 0 {
			continue
		}
		if ev.ChangeDate.Before(start) || ev.ChangeDate.After(asOf) {
			continue
		}
		totalSold += -ev.ChangeAmount
		if !sold || ev.ChangeDate.Before(earliest) {
			earliest = ev.ChangeDate
		}
		sold = true
	}
	if !sold {
		return Rate{}
	}

	days := asOf.Sub(earliest).Hours() / 24
	if days < 1 {
		days = 1
	}
	if max := window.Hours() / 24; days > max {
		days = max
	}
	return Rate{
		UnitsPerDay:   float64(totalSold) / days,
		HadRecentSale: true,
	}
}
