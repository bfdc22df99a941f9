package datalake

import (
	"fmt"

	"github.com/jhoicas/DataLake-api/internal/domain/repository"
)

// batchIndex claves naturales aceptadas antes en el mismo lote, por tipo.
// Solo se indexan registros aceptados: un padre rechazado no resuelve hijos.
// La resolución es estrictamente hacia atrás: un registro nunca ve claves de
// posiciones posteriores (referencias adelantadas no permitidas).
type batchIndex struct {
	products map[string]struct{}
	series   map[string]string // código de serie → SKU del producto padre
	stocks   map[string]struct{}
	orders   map[string]struct{}
}

func newBatchIndex() *batchIndex {
	return &batchIndex{
		products: make(map[string]struct{}),
		series:   make(map[string]string),
		stocks:   make(map[string]struct{}),
		orders:   make(map[string]struct{}),
	}
}

// add registra la clave natural de un registro aceptado.
func (idx *batchIndex) add(rec *Record) {
	switch rec.Type {
	case EntityProducts:
		idx.products[rec.Product.SKU] = struct{}{}
	case EntitySeries:
		idx.series[rec.Series.Code] = rec.Series.ProductSKU
	case EntityStocks:
		idx.stocks[rec.NaturalKey()] = struct{}{}
	case EntityOrders:
		idx.orders[rec.Order.Number] = struct{}{}
	}
}

// has indica si la clave natural ya fue aceptada en este lote (mismo tipo).
func (idx *batchIndex) has(rec *Record) bool {
	switch rec.Type {
	case EntityProducts:
		_, ok := idx.products[rec.Product.SKU]
		return ok
	case EntitySeries:
		_, ok := idx.series[rec.Series.Code]
		return ok
	case EntityStocks:
		_, ok := idx.stocks[rec.NaturalKey()]
		return ok
	case EntityOrders:
		_, ok := idx.orders[rec.Order.Number]
		return ok
	}
	return false
}

// ResolvedRefs identificadores durables de las referencias resueltas. Un ID
// queda vacío cuando la referencia se resolvió contra el mismo lote en una
// simulación (sin fila persistida aún); en un commit real el padre ya fue
// aplicado y el ID siempre se obtiene del almacenamiento.
type ResolvedRefs struct {
	ProductID  string // series
	SeriesID   string // stocks
	CustomerID string // orders
	Items      []ResolvedItemRefs
}

// ResolvedItemRefs referencias resueltas de una línea de orden.
type ResolvedItemRefs struct {
	ProductID string
	SeriesID  string // vacío si la línea no fija serie
}

// Resolver verifica que cada referencia foránea de un registro validado
// apunte a una entidad aceptada antes en el lote o ya persistida.
type Resolver struct {
	products  repository.ProductRepository
	series    repository.SeriesRepository
	customers repository.CustomerRepository
}

// NewResolver construye el resolver con vistas de solo lectura del storage.
func NewResolver(
	products repository.ProductRepository,
	series repository.SeriesRepository,
	customers repository.CustomerRepository,
) *Resolver {
	return &Resolver{products: products, series: series, customers: customers}
}

// Resolve resuelve todas las referencias del registro: primero contra el
// conjunto aceptado del lote (en orden de aceptación), después contra el
// almacenamiento persistido. Si alguna no resuelve, devuelve las razones con
// el campo y la clave faltante nombrados; el registro se rechaza completo.
// Un error de lectura del almacenamiento es un fallo de infraestructura, no
// un rechazo del registro, y se propaga como error.
func (r *Resolver) Resolve(rec *Record, idx *batchIndex) (*ResolvedRefs, []string, error) {
	switch rec.Type {
	case EntityProducts:
		return &ResolvedRefs{}, nil, nil // los productos no tienen referencias
	case EntitySeries:
		return r.resolveSeries(rec.Series, idx)
	case EntityStocks:
		return r.resolveStock(rec.Stock, idx)
	case EntityOrders:
		return r.resolveOrder(rec.Order, idx)
	}
	return nil, []string{"tipo de registro no resoluble"}, nil
}

// resolveProductRef resuelve una referencia a producto por SKU.
// Devuelve el ID durable ("" si solo existe en el lote) y si resolvió.
func (r *Resolver) resolveProductRef(sku string, idx *batchIndex) (string, bool, error) {
	if _, ok := idx.products[sku]; ok {
		// Aceptado antes en este lote; en un commit ya está persistido.
		p, err := r.products.GetBySKU(sku)
		if err != nil {
			return "", false, err
		}
		if p != nil {
			return p.ID, true, nil
		}
		return "", true, nil
	}
	p, err := r.products.GetBySKU(sku)
	if err != nil {
		return "", false, err
	}
	if p == nil {
		return "", false, nil
	}
	return p.ID, true, nil
}

// resolveSeriesRef resuelve una referencia a serie por código. Además del ID
// devuelve el SKU del producto dueño, para el chequeo de consistencia de las
// líneas de orden.
func (r *Resolver) resolveSeriesRef(code string, idx *batchIndex) (id, productSKU string, ok bool, err error) {
	if sku, inBatch := idx.series[code]; inBatch {
		s, err := r.series.GetByCode(code)
		if err != nil {
			return "", "", false, err
		}
		if s != nil {
			return s.ID, s.ProductSKU, true, nil
		}
		return "", sku, true, nil
	}
	s, err := r.series.GetByCode(code)
	if err != nil {
		return "", "", false, err
	}
	if s == nil {
		return "", "", false, nil
	}
	return s.ID, s.ProductSKU, true, nil
}

func (r *Resolver) resolveSeries(s *SeriesRecord, idx *batchIndex) (*ResolvedRefs, []string, error) {
	productID, ok, err := r.resolveProductRef(s.ProductSKU, idx)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, []string{fmt.Sprintf("product_sku: producto %q no encontrado", s.ProductSKU)}, nil
	}
	return &ResolvedRefs{ProductID: productID}, nil, nil
}

func (r *Resolver) resolveStock(st *StockRecord, idx *batchIndex) (*ResolvedRefs, []string, error) {
	seriesID, _, ok, err := r.resolveSeriesRef(st.SeriesCode, idx)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, []string{fmt.Sprintf("series_code: serie %q no encontrada", st.SeriesCode)}, nil
	}
	return &ResolvedRefs{SeriesID: seriesID}, nil, nil
}

func (r *Resolver) resolveOrder(o *OrderRecord, idx *batchIndex) (*ResolvedRefs, []string, error) {
	var reasons []string
	refs := &ResolvedRefs{}

	// Los clientes son externos al data lake: solo resuelven contra storage.
	customer, err := r.customers.GetByCode(o.CustomerCode)
	if err != nil {
		return nil, nil, err
	}
	if customer == nil {
		reasons = append(reasons, fmt.Sprintf("customer_code: cliente %q no encontrado", o.CustomerCode))
	} else {
		refs.CustomerID = customer.ID
	}

	for i, item := range o.Items {
		itemRefs := ResolvedItemRefs{}

		productID, ok, err := r.resolveProductRef(item.ProductSKU, idx)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			reasons = append(reasons, fmt.Sprintf("items[%d].product_sku: producto %q no encontrado", i, item.ProductSKU))
		} else {
			itemRefs.ProductID = productID
		}

		if item.SeriesCode != "" {
			seriesID, ownerSKU, ok, err := r.resolveSeriesRef(item.SeriesCode, idx)
			if err != nil {
				return nil, nil, err
			}
			switch {
			case !ok:
				reasons = append(reasons, fmt.Sprintf("items[%d].series_code: serie %q no encontrada", i, item.SeriesCode))
			case ownerSKU != item.ProductSKU:
				reasons = append(reasons, fmt.Sprintf("items[%d].series_code: la serie %q no pertenece al producto %q", i, item.SeriesCode, item.ProductSKU))
			default:
				itemRefs.SeriesID = seriesID
			}
		}
		refs.Items = append(refs.Items, itemRefs)
	}

	if len(reasons) > 0 {
		return nil, reasons, nil
	}
	return refs, nil, nil
}
