// Package memory implementa los puertos de persistencia en memoria.
// Cada transacción trabaja sobre una copia del estado y la publica solo en Commit,
// así un error deja el estado intacto igual que un Rollback en PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stockflow-api/internal/domain/alert"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var (
	_ repository.TxRunner              = (*Store)(nil)
	_ repository.AlertSourceRepository = (*Store)(nil)
)

type supplierKey struct {
	SupplierID int64
	ProductID  int64
}

type bundleKey struct {
	BundleID    int64
	ComponentID int64
}

type state struct {
	seq              map[string]int64
	companies        map[int64]entity.Company
	warehouses       map[int64]entity.Warehouse
	products         map[int64]entity.Product
	bundles          map[bundleKey]entity.ProductBundle
	suppliers        map[int64]entity.Supplier
	supplierProducts map[supplierKey]entity.SupplierProduct
	inventory        map[alert.Key]entity.Inventory
	changes          []entity.InventoryChange
	orders           map[int64]entity.SalesOrder
	thresholds       map[int64]int64
	overrides        map[alert.Key]int64
}

func newState() *state {
	return &state{
		seq:              make(map[string]int64),
		companies:        make(map[int64]entity.Company),
		warehouses:       make(map[int64]entity.Warehouse),
		products:         make(map[int64]entity.Product),
		bundles:          make(map[bundleKey]entity.ProductBundle),
		suppliers:        make(map[int64]entity.Supplier),
		supplierProducts: make(map[supplierKey]entity.SupplierProduct),
		inventory:        make(map[alert.Key]entity.Inventory),
		orders:           make(map[int64]entity.SalesOrder),
		thresholds:       make(map[int64]int64),
		overrides:        make(map[alert.Key]int64),
	}
}

func (s *state) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.seq {
		c.seq[k] = v
	}
	for k, v := range s.companies {
		c.companies[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.bundles {
		c.bundles[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.supplierProducts {
		c.supplierProducts[k] = v
	}
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	c.changes = append([]entity.InventoryChange(nil), s.changes...)
	for k, v := range s.orders {
		v.Items = append([]entity.SalesOrderItem(nil), v.Items...)
		c.orders[k] = v
	}
	for k, v := range s.thresholds {
		c.thresholds[k] = v
	}
	for k, v := range s.overrides {
		c.overrides[k] = v
	}
	return c
}

// access ejecuta fn sobre el estado visible para el repositorio.
type access func(fn func(st *state) error) error

// Store almacenamiento en memoria. Las transacciones se serializan con un mutex.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con repositorios atados a una copia del estado; la publica si fn devuelve nil.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	acc := func(f func(st *state) error) error { return f(tx) }
	if err := fn(reposFor(acc)); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// Repos devuelve repositorios en modo auto-commit: cada operación es su propia transacción.
func (s *Store) Repos() repository.Repos {
	acc := func(f func(st *state) error) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		tx := s.st.clone()
		if err := f(tx); err != nil {
			return err
		}
		s.st = tx
		return nil
	}
	return reposFor(acc)
}

// read ejecuta fn sobre el estado publicado sin copiarlo.
func (s *Store) read(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

func reposFor(acc access) repository.Repos {
	return repository.Repos{
		Companies:  &CompanyRepo{acc: acc},
		Warehouses: &WarehouseRepo{acc: acc},
		Products:   &ProductRepo{acc: acc},
		Bundles:    &BundleRepo{acc: acc},
		Suppliers:  &SupplierRepo{acc: acc},
		Inventory:  &InventoryRepo{acc: acc},
		Changes:    &InventoryChangeRepo{acc: acc},
		Sales:      &SalesOrderRepo{acc: acc},
		Thresholds: &ThresholdRepo{acc: acc},
	}
}
