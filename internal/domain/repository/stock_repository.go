package repository

import "github.com/jhoicas/DataLake-api/internal/domain/entity"

// StockRepository define el puerto de persistencia para Stock, con clave
// natural compuesta (código de serie, bodega). Get devuelve (nil, nil) cuando
// no existe saldo para el par.
type StockRepository interface {
	Get(seriesCode, warehouseID string) (*entity.Stock, error)
	// Upsert inserta o actualiza por (serie, bodega). SeriesID debe venir ya
	// resuelto. Devuelve true si la fila fue creada.
	Upsert(stock *entity.Stock) (created bool, err error)
}
