package datalake

import (
	"context"
	"fmt"

	"github.com/jhoicas/DataLake-api/internal/domain/entity"
	"github.com/jhoicas/DataLake-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// memStore: almacenamiento en memoria para tests, implementa todos los puertos
// de repositorio con la misma semántica que los adaptadores de PostgreSQL
// (claves naturales únicas, (nil, nil) cuando no existe, created/updated).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[string]*entity.Product  // por SKU
	series    map[string]*entity.Series   // por código
	stocks    map[string]*entity.Stock    // por seriesID@warehouseID
	orders    map[string]*entity.Order    // por número
	customers map[string]*entity.Customer // por código

	nextID int

	// Inyección de fallos: readErr hace fallar toda lectura; failWrite, si no
	// es nil, se consulta antes de cada escritura con la clave natural.
	readErr   error
	failWrite func(key string) error
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		series:    make(map[string]*entity.Series),
		stocks:    make(map[string]*entity.Stock),
		orders:    make(map[string]*entity.Order),
		customers: make(map[string]*entity.Customer),
	}
}

func (m *memStore) newID() string {
	m.nextID++
	return fmt.Sprintf("id-%04d", m.nextID)
}

func (m *memStore) checkWrite(key string) error {
	if m.failWrite != nil {
		return m.failWrite(key)
	}
	return nil
}

// seedCustomer agrega un cliente preexistente (los clientes son externos).
func (m *memStore) seedCustomer(code, name string) *entity.Customer {
	c := &entity.Customer{ID: m.newID(), Code: code, Name: name}
	m.customers[code] = c
	return c
}

// ── ProductRepository ─────────────────────────────────────────────────────────

func (m *memStore) GetBySKU(sku string) (*entity.Product, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	p, ok := m.products[sku]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) Upsert(p *entity.Product) (bool, error) {
	if err := m.checkWrite(p.SKU); err != nil {
		return false, err
	}
	if prev, ok := m.products[p.SKU]; ok {
		p.ID = prev.ID
		p.CreatedAt = prev.CreatedAt
		cp := *p
		m.products[p.SKU] = &cp
		return false, nil
	}
	cp := *p
	m.products[p.SKU] = &cp
	return true, nil
}

// productRepo vista tipada, para pasar el memStore como cada puerto.
func (m *memStore) productRepo() repository.ProductRepository { return m }

// ── SeriesRepository ──────────────────────────────────────────────────────────

type memSeriesRepo struct{ m *memStore }

func (r memSeriesRepo) GetByCode(code string) (*entity.Series, error) {
	if r.m.readErr != nil {
		return nil, r.m.readErr
	}
	s, ok := r.m.series[code]
	if !ok {
		return nil, nil
	}
	cp := *s
	// El adaptador real rellena el SKU del producto dueño con un JOIN.
	for sku, p := range r.m.products {
		if p.ID == s.ProductID {
			cp.ProductSKU = sku
		}
	}
	return &cp, nil
}

func (r memSeriesRepo) Upsert(s *entity.Series) (bool, error) {
	if err := r.m.checkWrite(s.Code); err != nil {
		return false, err
	}
	if prev, ok := r.m.series[s.Code]; ok {
		s.ID = prev.ID
		s.CreatedAt = prev.CreatedAt
		cp := *s
		r.m.series[s.Code] = &cp
		return false, nil
	}
	cp := *s
	r.m.series[s.Code] = &cp
	return true, nil
}

func (m *memStore) seriesRepo() repository.SeriesRepository { return memSeriesRepo{m} }

// ── StockRepository ───────────────────────────────────────────────────────────

type memStockRepo struct{ m *memStore }

func (r memStockRepo) Get(seriesCode, warehouseID string) (*entity.Stock, error) {
	if r.m.readErr != nil {
		return nil, r.m.readErr
	}
	s, ok := r.m.series[seriesCode]
	if !ok {
		return nil, nil
	}
	st, ok := r.m.stocks[s.ID+"@"+warehouseID]
	if !ok {
		return nil, nil
	}
	cp := *st
	cp.SeriesCode = seriesCode
	return &cp, nil
}

func (r memStockRepo) Upsert(st *entity.Stock) (bool, error) {
	key := st.SeriesID + "@" + st.WarehouseID
	if err := r.m.checkWrite(key); err != nil {
		return false, err
	}
	if prev, ok := r.m.stocks[key]; ok {
		st.ID = prev.ID
		cp := *st
		r.m.stocks[key] = &cp
		return false, nil
	}
	cp := *st
	r.m.stocks[key] = &cp
	return true, nil
}

func (m *memStore) stockRepo() repository.StockRepository { return memStockRepo{m} }

// ── OrderRepository ───────────────────────────────────────────────────────────

type memOrderRepo struct{ m *memStore }

func (r memOrderRepo) GetByNumber(number string) (*entity.Order, error) {
	if r.m.readErr != nil {
		return nil, r.m.readErr
	}
	o, ok := r.m.orders[number]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (r memOrderRepo) Upsert(o *entity.Order) (bool, error) {
	if err := r.m.checkWrite(o.Number); err != nil {
		return false, err
	}
	created := true
	if prev, ok := r.m.orders[o.Number]; ok {
		o.ID = prev.ID
		o.CreatedAt = prev.CreatedAt
		created = false
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	r.m.orders[o.Number] = &cp
	return created, nil
}

func (m *memStore) orderRepo() repository.OrderRepository { return memOrderRepo{m} }

// ── CustomerRepository ────────────────────────────────────────────────────────

type memCustomerRepo struct{ m *memStore }

func (r memCustomerRepo) GetByCode(code string) (*entity.Customer, error) {
	if r.m.readErr != nil {
		return nil, r.m.readErr
	}
	c, ok := r.m.customers[code]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memStore) customerRepo() repository.CustomerRepository { return memCustomerRepo{m} }

// ── TxRunner ──────────────────────────────────────────────────────────────────

// memTxRunner ejecuta el callback directo contra el store (sin tx real).
type memTxRunner struct{ m *memStore }

func (t memTxRunner) RunOrder(_ context.Context, fn func(orders repository.OrderRepository) error) error {
	return fn(memOrderRepo{t.m})
}

func (m *memStore) txRunner() TxRunner { return memTxRunner{m} }
