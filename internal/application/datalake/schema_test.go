package datalake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// raw construye un RawRecord de test en posición 0.
func raw(fields map[string]any) RawRecord {
	return RawRecord{Position: 0, Fields: fields}
}

// mustValidate valida y exige que el registro sea aceptado.
func mustValidate(t *testing.T, declared EntityType, fields map[string]any) *Record {
	t.Helper()
	rec, reasons := ValidateRecord(declared, raw(fields))
	require.Nil(t, reasons, "el registro no debe ser rechazado: %v", reasons)
	require.NotNil(t, rec)
	return rec
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateRecord_ProductoValido(t *testing.T) {
	rec := mustValidate(t, EntityProducts, map[string]any{
		"sku":      "  PRD-001 ",
		"name":     "Tubo galvanizado",
		"category": "galvanizado",
		"price":    "150.50",
	})

	require.NotNil(t, rec.Product)
	assert.Equal(t, "PRD-001", rec.Product.SKU, "la clave natural debe venir recortada")
	assert.Equal(t, "Tubo galvanizado", rec.Product.Name)
	assert.Equal(t, "150.5", rec.Product.Price.String())
	assert.True(t, rec.Product.Active, "active por defecto debe ser true")
	assert.Equal(t, "PRD-001", rec.NaturalKey())
}

func TestValidateRecord_ProductoConAliasCamelCase(t *testing.T) {
	rec := mustValidate(t, EntityProducts, map[string]any{
		"productCode":  "PRD-002",
		"productName":  "Lámina",
		"productPrice": "99",
		"isActive":     false,
	})

	assert.Equal(t, "PRD-002", rec.Product.SKU)
	assert.Equal(t, "Lámina", rec.Product.Name)
	assert.False(t, rec.Product.Active)
}

func TestValidateRecord_ProductoCamposFaltantes(t *testing.T) {
	rec, reasons := ValidateRecord(EntityProducts, raw(map[string]any{}))

	assert.Nil(t, rec)
	require.Len(t, reasons, 3, "sku, name y price faltantes deben reportarse juntos")
	assert.Contains(t, reasons[0], "sku")
	assert.Contains(t, reasons[1], "name")
	assert.Contains(t, reasons[2], "price")
}

func TestValidateRecord_PrecioNegativoRechazado(t *testing.T) {
	rec, reasons := ValidateRecord(EntityProducts, raw(map[string]any{
		"sku":   "PRD-003",
		"name":  "Perfil",
		"price": "-10",
	}))

	assert.Nil(t, rec)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "price: no puede ser negativo")
}

func TestValidateRecord_ClaveNaturalNFC(t *testing.T) {
	// "é" descompuesto (e + combinante) debe normalizar igual que el compuesto.
	rec := mustValidate(t, EntityProducts, map[string]any{
		"sku":   "Sé-1", // S + e + U+0301
		"name":  "Serie acentuada",
		"price": "1",
	})
	assert.Equal(t, "Sé-1", rec.Product.SKU,
		"la clave debe quedar en forma NFC")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tipo por registro (lotes mixtos)
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateRecord_TipoPorRegistro(t *testing.T) {
	// El tipo declarado del lote es el default; un registro puede traer el suyo.
	rec := mustValidate(t, EntityProducts, map[string]any{
		"type":         "stocks",
		"series_code":  "S-1",
		"warehouse_id": "BOD-1",
		"quantity":     "5",
	})

	assert.Equal(t, EntityStocks, rec.Type)
	require.NotNil(t, rec.Stock)
	assert.Equal(t, "S-1@BOD-1", rec.NaturalKey())
}

func TestValidateRecord_TipoDesconocidoRechazado(t *testing.T) {
	rec, reasons := ValidateRecord(EntityProducts, raw(map[string]any{
		"type": "warehouses",
		"sku":  "X",
	}))

	assert.Nil(t, rec)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "tipo de entidad desconocido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Series
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateRecord_SerieValidaConFechas(t *testing.T) {
	rec := mustValidate(t, EntitySeries, map[string]any{
		"code":            "S-100",
		"product_sku":     "PRD-001",
		"production_date": "2026-01-15",
		"expire_date":     "2027-01-15",
	})

	require.NotNil(t, rec.Series)
	assert.Equal(t, "S-100", rec.Series.Code)
	assert.Equal(t, "PRD-001", rec.Series.ProductSKU)
	require.NotNil(t, rec.Series.ProductionDate)
	assert.Equal(t, 2026, rec.Series.ProductionDate.Year())
}

func TestValidateRecord_SerieFechaInvalida(t *testing.T) {
	rec, reasons := ValidateRecord(EntitySeries, raw(map[string]any{
		"code":            "S-101",
		"product_sku":     "PRD-001",
		"production_date": "15/01/2026",
	}))

	assert.Nil(t, rec)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "production_date")
}

func TestValidateRecord_SerieVencimientoAntesDeProduccion(t *testing.T) {
	rec, reasons := ValidateRecord(EntitySeries, raw(map[string]any{
		"code":            "S-102",
		"product_sku":     "PRD-001",
		"production_date": "2026-05-01",
		"expire_date":     "2026-04-01",
	}))

	assert.Nil(t, rec)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "expire_date: no puede ser anterior")
}

func TestValidateRecord_SerieAceptaTimestampRFC3339(t *testing.T) {
	rec := mustValidate(t, EntitySeries, map[string]any{
		"code":            "S-103",
		"product_sku":     "PRD-001",
		"production_date": "2026-03-10T14:22:05Z",
	})
	require.NotNil(t, rec.Series.ProductionDate)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *rec.Series.ProductionDate,
		"de un timestamp solo se conserva la fecha calendario")
}

// ──────────────────────────────────────────────────────────────────────────────
// Stocks
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateRecord_StockValidoConDefaults(t *testing.T) {
	rec := mustValidate(t, EntityStocks, map[string]any{
		"series_code":  "S-100",
		"warehouse_id": "BOD-1",
		"quantity":     "12.5",
	})

	require.NotNil(t, rec.Stock)
	assert.Equal(t, "12.5", rec.Stock.Quantity.String())
	assert.False(t, rec.Stock.Reserved, "reserved por defecto debe ser false")
	assert.Equal(t, today(), rec.Stock.UpdatedAt,
		"sin fecha en la fila el saldo se marca al día de la carga")
}

func TestValidateRecord_StockCantidadNegativa(t *testing.T) {
	rec, reasons := ValidateRecord(EntityStocks, raw(map[string]any{
		"series_code":  "S-100",
		"warehouse_id": "BOD-1",
		"quantity":     "-1",
	}))

	assert.Nil(t, rec)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "quantity: no puede ser negativa")
}

func TestValidateRecord_StockReservedComoTexto(t *testing.T) {
	rec := mustValidate(t, EntityStocks, map[string]any{
		"series_code":  "S-100",
		"warehouse_id": "BOD-1",
		"quantity":     "1",
		"reserved":     "sí",
	})
	assert.True(t, rec.Stock.Reserved, `"sí" debe interpretarse como true`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateRecord_OrdenValida(t *testing.T) {
	rec := mustValidate(t, EntityOrders, map[string]any{
		"number":        "ORD-500",
		"customer_code": "CLI-9",
		"items": []any{
			map[string]any{"product_sku": "PRD-001", "quantity": "2"},
			map[string]any{"product_sku": "PRD-002", "series_code": "S-100", "quantity": "1"},
		},
	})

	require.NotNil(t, rec.Order)
	assert.Equal(t, "pending", rec.Order.Status, "status por defecto debe ser pending")
	require.Len(t, rec.Order.Items, 2)
	assert.Equal(t, "S-100", rec.Order.Items[1].SeriesCode)
}

func TestValidateRecord_OrdenEstadoDesconocido(t *testing.T) {
	rec, reasons := ValidateRecord(EntityOrders, raw(map[string]any{
		"number":        "ORD-501",
		"customer_code": "CLI-9",
		"status":        "entregada",
		"items":         []any{map[string]any{"product_sku": "PRD-001", "quantity": "1"}},
	}))

	assert.Nil(t, rec)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "status: estado desconocido")
}

func TestValidateRecord_OrdenSinLineas(t *testing.T) {
	rec, reasons := ValidateRecord(EntityOrders, raw(map[string]any{
		"number":        "ORD-502",
		"customer_code": "CLI-9",
		"items":         []any{},
	}))

	assert.Nil(t, rec)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "items")
}

func TestValidateRecord_OrdenLineaCantidadCero(t *testing.T) {
	rec, reasons := ValidateRecord(EntityOrders, raw(map[string]any{
		"number":        "ORD-503",
		"customer_code": "CLI-9",
		"items":         []any{map[string]any{"product_sku": "PRD-001", "quantity": "0"}},
	}))

	assert.Nil(t, rec)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "items[0].quantity: debe ser mayor que cero")
}
