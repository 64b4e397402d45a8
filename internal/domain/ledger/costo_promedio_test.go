package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tiendafacil/backoffice-api/internal/domain/ledger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// CostoPromedio — mezcla de entradas
// ──────────────────────────────────────────────────────────────────────────────

// Caso canónico: 10 unidades a $100 más 5 unidades a $130 → promedio $110.
func TestCostoPromedio_MezclaEntrada(t *testing.T) {
	got := ledger.CostoPromedio(10, d("100"), 5, d("130"))
	assert.True(t, got.Equal(d("110")), "esperaba 110, obtuve %s", got)
}

// Primera entrada sobre stock cero: el promedio es el costo unitario.
func TestCostoPromedio_StockCero_TomaCostoUnitario(t *testing.T) {
	got := ledger.CostoPromedio(0, decimal.Zero, 20, d("50"))
	assert.True(t, got.Equal(d("50")))
}

// El promedio no tiene por qué caer en 2 decimales: 1@10 + 2@10.10 = 10.0666...
func TestCostoPromedio_ResultadoNoRedondeado(t *testing.T) {
	got := ledger.CostoPromedio(1, d("10"), 2, d("10.10"))
	assert.True(t, got.GreaterThan(d("10.06")))
	assert.True(t, got.LessThan(d("10.07")))
}

// ──────────────────────────────────────────────────────────────────────────────
// CostoPromedio — reversa de entradas
// ──────────────────────────────────────────────────────────────────────────────

// Aplicar con delta negativo y el mismo costo unitario deshace la mezcla:
// de (15, 110) quitando 5@130 se vuelve exactamente a 100.
func TestCostoPromedio_DeltaNegativoDeshaceMezcla(t *testing.T) {
	got := ledger.CostoPromedio(15, d("110"), -5, d("130"))
	assert.True(t, got.Equal(d("100")), "esperaba 100, obtuve %s", got)
}

// Revertir la única entrada deja el stock en cero: el costo no se toca.
func TestCostoPromedio_StockResultanteCero_MantieneCosto(t *testing.T) {
	got := ledger.CostoPromedio(20, d("50"), -20, d("50"))
	assert.True(t, got.Equal(d("50")))
}

// Una reversa que aritméticamente daría costo negativo se acota a cero.
func TestCostoPromedio_ResultadoNegativo_AcotadoACero(t *testing.T) {
	// (5*10 - 4*20) / 1 = -30 → 0
	got := ledger.CostoPromedio(5, d("10"), -4, d("20"))
	assert.True(t, got.Equal(decimal.Zero))
}

// Delta que dejaría stock negativo: el guardián de stock vive en el aplicador,
// aquí solo se preserva el costo actual.
func TestCostoPromedio_StockResultanteNegativo_MantieneCosto(t *testing.T) {
	got := ledger.CostoPromedio(3, d("75"), -5, d("80"))
	assert.True(t, got.Equal(d("75")))
}
