package repository

import "github.com/jhoicas/DataLake-api/internal/domain/entity"

// SeriesRepository define el puerto de persistencia para Series.
// GetByCode devuelve (nil, nil) cuando el código no existe.
type SeriesRepository interface {
	GetByCode(code string) (*entity.Series, error)
	// Upsert inserta o actualiza por código de serie. ProductID debe venir ya
	// resuelto. Devuelve true si la fila fue creada.
	Upsert(series *entity.Series) (created bool, err error)
}
