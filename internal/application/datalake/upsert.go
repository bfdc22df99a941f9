package datalake

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/DataLake-api/internal/domain"
	"github.com/jhoicas/DataLake-api/internal/domain/entity"
	"github.com/jhoicas/DataLake-api/internal/domain/repository"
)

// UpsertEngine aplica registros resueltos al almacenamiento: crea si la clave
// natural no existe, actualiza los campos mutables si existe. Cada registro es
// una operación atómica independiente; un fallo aquí es de infraestructura
// (domain.ErrStorageFault), nunca un rechazo de datos.
type UpsertEngine struct {
	products repository.ProductRepository
	series   repository.SeriesRepository
	stocks   repository.StockRepository
	txRunner TxRunner
}

// NewUpsertEngine construye el motor de escritura.
func NewUpsertEngine(
	products repository.ProductRepository,
	series repository.SeriesRepository,
	stocks repository.StockRepository,
	txRunner TxRunner,
) *UpsertEngine {
	return &UpsertEngine{products: products, series: series, stocks: stocks, txRunner: txRunner}
}

// Apply persiste el registro y devuelve si la operación fue created o updated.
func (e *UpsertEngine) Apply(ctx context.Context, rec *Record, refs *ResolvedRefs) (Action, error) {
	var (
		created bool
		err     error
	)
	now := time.Now().UTC()

	switch rec.Type {
	case EntityProducts:
		created, err = e.products.Upsert(&entity.Product{
			ID:        uuid.New().String(), // ignorado si la fila ya existe
			SKU:       rec.Product.SKU,
			Name:      rec.Product.Name,
			Category:  rec.Product.Category,
			Price:     rec.Product.Price,
			Active:    rec.Product.Active,
			CreatedAt: now,
			UpdatedAt: now,
		})
	case EntitySeries:
		created, err = e.series.Upsert(&entity.Series{
			ID:             uuid.New().String(),
			Code:           rec.Series.Code,
			ProductID:      refs.ProductID,
			Name:           rec.Series.Name,
			ProductionDate: rec.Series.ProductionDate,
			ExpireDate:     rec.Series.ExpireDate,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	case EntityStocks:
		created, err = e.stocks.Upsert(&entity.Stock{
			ID:          uuid.New().String(),
			SeriesID:    refs.SeriesID,
			WarehouseID: rec.Stock.WarehouseID,
			Quantity:    rec.Stock.Quantity,
			Reserved:    rec.Stock.Reserved,
			UpdatedAt:   rec.Stock.UpdatedAt,
		})
	case EntityOrders:
		created, err = e.applyOrder(ctx, rec.Order, refs, now)
	default:
		return "", fmt.Errorf("tipo de registro no aplicable: %s", rec.Type)
	}

	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageFault, err)
	}
	if created {
		return ActionCreated, nil
	}
	return ActionUpdated, nil
}

// applyOrder escribe cabecera y líneas dentro de una transacción: o se
// persiste la orden completa o nada (un rechazo nunca muta parcialmente).
func (e *UpsertEngine) applyOrder(ctx context.Context, o *OrderRecord, refs *ResolvedRefs, now time.Time) (bool, error) {
	items := make([]entity.OrderItem, 0, len(o.Items))
	for i, item := range o.Items {
		items = append(items, entity.OrderItem{
			ProductID:  refs.Items[i].ProductID,
			ProductSKU: item.ProductSKU,
			SeriesID:   refs.Items[i].SeriesID,
			SeriesCode: item.SeriesCode,
			Quantity:   item.Quantity,
		})
	}
	order := &entity.Order{
		ID:            uuid.New().String(),
		Number:        o.Number,
		CustomerID:    refs.CustomerID,
		Status:        o.Status,
		CreatedDate:   o.CreatedDate,
		ShippedDate:   o.ShippedDate,
		DeliveredDate: o.DeliveredDate,
		CancelReason:  o.CancelReason,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var created bool
	err := e.txRunner.RunOrder(ctx, func(orders repository.OrderRepository) error {
		var err error
		created, err = orders.Upsert(order)
		return err
	})
	return created, err
}
