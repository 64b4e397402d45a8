package ledger

import "github.com/shopspring/decimal"

// CostoPromedio implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (Delta * CostoUnitario)) / (StockActual + Delta)
//
// La misma fórmula sirve para aplicar una entrada (delta positivo) y para
// revertirla (delta negativo con el mismo costo unitario): revertir y volver a
// aplicar la misma línea deja el costo exactamente igual.
//
// Si el stock resultante es <= 0 el promedio no es calculable y se devuelve el
// costo actual sin cambio. Un resultado negativo (posible al revertir tras
// otras mezclas) se acota a cero: el costo nunca es negativo.
func CostoPromedio(stockActual int64, costoActual decimal.Decimal, delta int64, costoUnitario decimal.Decimal) decimal.Decimal {
	nuevoStock := stockActual + delta
	if nuevoStock <= 0 {
		return costoActual
	}
	num := decimal.NewFromInt(stockActual).Mul(costoActual).
		Add(decimal.NewFromInt(delta).Mul(costoUnitario))
	costo := num.Div(decimal.NewFromInt(nuevoStock))
	if costo.IsNegative() {
		return decimal.Zero
	}
	return costo
}
