package datalake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/DataLake-api/internal/domain/entity"
)

func newTestResolver(store *memStore) *Resolver {
	return NewResolver(store.productRepo(), store.seriesRepo(), store.customerRepo())
}

// seedProduct agrega un producto persistido al store.
func seedProduct(store *memStore, sku string) *entity.Product {
	p := &entity.Product{ID: store.newID(), SKU: sku, Name: sku, Active: true}
	store.products[sku] = p
	return p
}

// seedSeries agrega una serie persistida, colgada de un producto existente.
func seedSeries(store *memStore, code string, product *entity.Product) *entity.Series {
	s := &entity.Series{ID: store.newID(), Code: code, ProductID: product.ID}
	store.series[code] = s
	return s
}

func seriesRecord(code, productSKU string) *Record {
	return &Record{Type: EntitySeries, Series: &SeriesRecord{Code: code, ProductSKU: productSKU}}
}

func stockRecord(seriesCode, warehouseID string) *Record {
	return &Record{Type: EntityStocks, Stock: &StockRecord{SeriesCode: seriesCode, WarehouseID: warehouseID}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de referencias
// ──────────────────────────────────────────────────────────────────────────────

func TestResolver_ProductoNoTieneReferencias(t *testing.T) {
	r := newTestResolver(newMemStore())
	rec := &Record{Type: EntityProducts, Product: &ProductRecord{SKU: "PRD-1"}}

	refs, reasons, err := r.Resolve(rec, newBatchIndex())
	require.NoError(t, err)
	assert.Nil(t, reasons)
	assert.NotNil(t, refs)
}

func TestResolver_SerieResuelveContraStorage(t *testing.T) {
	store := newMemStore()
	p := seedProduct(store, "PRD-1")
	r := newTestResolver(store)

	refs, reasons, err := r.Resolve(seriesRecord("S-1", "PRD-1"), newBatchIndex())
	require.NoError(t, err)
	require.Nil(t, reasons)
	assert.Equal(t, p.ID, refs.ProductID, "debe devolver el ID durable del producto")
}

func TestResolver_SerieResuelveContraElLote(t *testing.T) {
	// El padre solo fue aceptado en este lote (simulación): resuelve sin ID.
	store := newMemStore()
	r := newTestResolver(store)

	idx := newBatchIndex()
	idx.add(&Record{Type: EntityProducts, Product: &ProductRecord{SKU: "PRD-1"}})

	refs, reasons, err := r.Resolve(seriesRecord("S-1", "PRD-1"), idx)
	require.NoError(t, err)
	require.Nil(t, reasons)
	require.NotNil(t, refs)
	assert.Empty(t, refs.ProductID, "sin fila persistida aún no hay ID durable")
}

func TestResolver_SerieNoResuelve(t *testing.T) {
	r := newTestResolver(newMemStore())

	refs, reasons, err := r.Resolve(seriesRecord("S-1", "NO-EXISTE"), newBatchIndex())
	require.NoError(t, err)
	assert.Nil(t, refs)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], `producto "NO-EXISTE" no encontrado`)
}

func TestResolver_StockNoVeClavesPosteriores(t *testing.T) {
	// La resolución es hacia atrás: el índice del lote aún no conoce la serie
	// que aparece después, así que el stock no resuelve.
	r := newTestResolver(newMemStore())

	refs, reasons, err := r.Resolve(stockRecord("S-FUTURA", "BOD-1"), newBatchIndex())
	require.NoError(t, err)
	assert.Nil(t, refs)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "series_code")
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes: cliente externo y consistencia serie/producto
// ──────────────────────────────────────────────────────────────────────────────

func TestResolver_OrdenResuelveCompleta(t *testing.T) {
	store := newMemStore()
	c := store.seedCustomer("CLI-1", "Cliente Uno")
	p := seedProduct(store, "PRD-1")
	s := seedSeries(store, "S-1", p)
	r := newTestResolver(store)

	rec := &Record{Type: EntityOrders, Order: &OrderRecord{
		Number:       "ORD-1",
		CustomerCode: "CLI-1",
		Items: []OrderItemRecord{
			{ProductSKU: "PRD-1", SeriesCode: "S-1", Quantity: 2},
		},
	}}

	refs, reasons, err := r.Resolve(rec, newBatchIndex())
	require.NoError(t, err)
	require.Nil(t, reasons)
	assert.Equal(t, c.ID, refs.CustomerID)
	require.Len(t, refs.Items, 1)
	assert.Equal(t, p.ID, refs.Items[0].ProductID)
	assert.Equal(t, s.ID, refs.Items[0].SeriesID)
}

func TestResolver_OrdenClienteNoExiste(t *testing.T) {
	// Los clientes no se crean por el lote: solo resuelven contra storage.
	store := newMemStore()
	seedProduct(store, "PRD-1")
	r := newTestResolver(store)

	rec := &Record{Type: EntityOrders, Order: &OrderRecord{
		Number:       "ORD-2",
		CustomerCode: "CLI-FANTASMA",
		Items:        []OrderItemRecord{{ProductSKU: "PRD-1", Quantity: 1}},
	}}

	refs, reasons, err := r.Resolve(rec, newBatchIndex())
	require.NoError(t, err)
	assert.Nil(t, refs)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "customer_code")
}

func TestResolver_OrdenSerieDeOtroProducto(t *testing.T) {
	store := newMemStore()
	store.seedCustomer("CLI-1", "Cliente Uno")
	pa := seedProduct(store, "PRD-A")
	seedProduct(store, "PRD-B")
	seedSeries(store, "S-A", pa)
	r := newTestResolver(store)

	// La línea pide el producto B pero con una serie del producto A.
	rec := &Record{Type: EntityOrders, Order: &OrderRecord{
		Number:       "ORD-3",
		CustomerCode: "CLI-1",
		Items: []OrderItemRecord{
			{ProductSKU: "PRD-B", SeriesCode: "S-A", Quantity: 1},
		},
	}}

	refs, reasons, err := r.Resolve(rec, newBatchIndex())
	require.NoError(t, err)
	assert.Nil(t, refs)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "no pertenece al producto")
}

func TestResolver_OrdenAcumulaTodasLasRazones(t *testing.T) {
	store := newMemStore()
	r := newTestResolver(store)

	rec := &Record{Type: EntityOrders, Order: &OrderRecord{
		Number:       "ORD-4",
		CustomerCode: "CLI-X",
		Items: []OrderItemRecord{
			{ProductSKU: "PRD-X", Quantity: 1},
			{ProductSKU: "PRD-Y", Quantity: 1},
		},
	}}

	_, reasons, err := r.Resolve(rec, newBatchIndex())
	require.NoError(t, err)
	assert.Len(t, reasons, 3,
		"cliente y ambas líneas sin resolver deben reportarse juntos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos de infraestructura
// ──────────────────────────────────────────────────────────────────────────────

func TestResolver_ErrorDeLecturaSePropaga(t *testing.T) {
	store := newMemStore()
	store.readErr = errors.New("conexión perdida")
	r := newTestResolver(store)

	refs, reasons, err := r.Resolve(seriesRecord("S-1", "PRD-1"), newBatchIndex())
	require.Error(t, err, "un fallo de lectura no es un rechazo del registro")
	assert.Nil(t, refs)
	assert.Nil(t, reasons)
}
