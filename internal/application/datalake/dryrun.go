package datalake

import (
	"fmt"

	"github.com/jhoicas/DataLake-api/internal/domain"
	"github.com/jhoicas/DataLake-api/internal/domain/repository"
)

// DryRunSimulator decide created vs updated leyendo el estado actual, sin
// emitir ninguna escritura. Un registro con la misma clave natural aceptado
// antes en el mismo lote cuenta como existente: la segunda aparición habría
// sido un update en un commit real.
type DryRunSimulator struct {
	products repository.ProductRepository
	series   repository.SeriesRepository
	stocks   repository.StockRepository
	orders   repository.OrderRepository
}

// NewDryRunSimulator construye el simulador sobre vistas de solo lectura.
func NewDryRunSimulator(
	products repository.ProductRepository,
	series repository.SeriesRepository,
	stocks repository.StockRepository,
	orders repository.OrderRepository,
) *DryRunSimulator {
	return &DryRunSimulator{products: products, series: series, stocks: stocks, orders: orders}
}

// Simulate devuelve la acción que un commit real habría aplicado al registro.
func (s *DryRunSimulator) Simulate(rec *Record, idx *batchIndex) (Action, error) {
	if idx.has(rec) {
		return ActionUpdated, nil
	}

	var (
		exists bool
		err    error
	)
	switch rec.Type {
	case EntityProducts:
		p, e := s.products.GetBySKU(rec.Product.SKU)
		exists, err = p != nil, e
	case EntitySeries:
		sr, e := s.series.GetByCode(rec.Series.Code)
		exists, err = sr != nil, e
	case EntityStocks:
		st, e := s.stocks.Get(rec.Stock.SeriesCode, rec.Stock.WarehouseID)
		exists, err = st != nil, e
	case EntityOrders:
		o, e := s.orders.GetByNumber(rec.Order.Number)
		exists, err = o != nil, e
	default:
		return "", fmt.Errorf("tipo de registro no simulable: %s", rec.Type)
	}

	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageFault, err)
	}
	if exists {
		return ActionUpdated, nil
	}
	return ActionCreated, nil
}
