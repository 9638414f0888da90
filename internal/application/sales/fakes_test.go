package sales_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avendano/puntoventa-api/internal/application/sales"
	"github.com/avendano/puntoventa-api/internal/domain"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
	"github.com/avendano/puntoventa-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria: repos sobre mapas + TxRunner con snapshot/rollback
// ──────────────────────────────────────────────────────────────────────────────

// memStore almacén en memoria compartido por los repos fake.
type memStore struct {
	productos map[string]*entity.Producto
	clientes  map[string]*entity.Cliente
	ventas    map[string]*entity.Venta
	items     map[string][]*entity.VentaItem // por venta
}

func newMemStore() *memStore {
	return &memStore{
		productos: map[string]*entity.Producto{},
		clientes:  map[string]*entity.Cliente{},
		ventas:    map[string]*entity.Venta{},
		items:     map[string][]*entity.VentaItem{},
	}
}

// clone copia profunda del almacén para simular el snapshot de la transacción.
func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, p := range s.productos {
		cp := *p
		c.productos[id] = &cp
	}
	for id, cl := range s.clientes {
		cc := *cl
		c.clientes[id] = &cc
	}
	for id, v := range s.ventas {
		cv := *v
		c.ventas[id] = &cv
	}
	for ventaID, items := range s.items {
		copied := make([]*entity.VentaItem, 0, len(items))
		for _, it := range items {
			ci := *it
			copied = append(copied, &ci)
		}
		c.items[ventaID] = copied
	}
	return c
}

type memProductoRepo struct{ s *memStore }

func (r *memProductoRepo) Create(p *entity.Producto) error {
	r.s.productos[p.ID] = p
	return nil
}

func (r *memProductoRepo) GetByID(id string) (*entity.Producto, error) {
	p, ok := r.s.productos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProductoRepo) ListByNegocio(negocioID string, limit, offset int) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.s.productos {
		if p.NegocioID == negocioID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductoRepo) Update(p *entity.Producto) error {
	if _, ok := r.s.productos[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.productos[p.ID] = p
	return nil
}

func (r *memProductoRepo) AjustarStock(productoID string, delta int) (int, error) {
	p, ok := r.s.productos[productoID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	nuevo := p.Stock + delta
	if nuevo < 0 {
		return 0, &domain.StockInsuficienteError{
			ProductoID: productoID,
			Nombre:     p.Nombre,
			Stock:      p.Stock,
			Solicitado: -delta,
		}
	}
	p.Stock = nuevo
	return nuevo, nil
}

func (r *memProductoRepo) Delete(id string) error {
	delete(r.s.productos, id)
	return nil
}

type memClienteRepo struct{ s *memStore }

func (r *memClienteRepo) Create(c *entity.Cliente) error {
	r.s.clientes[c.ID] = c
	return nil
}

func (r *memClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	c, ok := r.s.clientes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cc := *c
	return &cc, nil
}

func (r *memClienteRepo) ListByNegocio(negocioID string, limit, offset int) ([]*entity.Cliente, error) {
	var out []*entity.Cliente
	for _, c := range r.s.clientes {
		if c.NegocioID == negocioID {
			cc := *c
			out = append(out, &cc)
		}
	}
	return out, nil
}

func (r *memClienteRepo) Update(c *entity.Cliente) error {
	if _, ok := r.s.clientes[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.clientes[c.ID] = c
	return nil
}

func (r *memClienteRepo) ReservarCredito(clienteID string, monto decimal.Decimal) error {
	c, ok := r.s.clientes[clienteID]
	if !ok {
		return domain.ErrNotFound
	}
	if c.CreditoDisponible.Cmp(monto) < 0 {
		return &domain.CreditoInsuficienteError{
			ClienteID:  clienteID,
			Disponible: c.CreditoDisponible,
			Requerido:  monto,
		}
	}
	c.CreditoDisponible = c.CreditoDisponible.Sub(monto)
	return nil
}

func (r *memClienteRepo) LiberarCredito(clienteID string, monto decimal.Decimal) error {
	c, ok := r.s.clientes[clienteID]
	if !ok {
		return domain.ErrNotFound
	}
	c.CreditoDisponible = c.CreditoDisponible.Add(monto)
	return nil
}

func (r *memClienteRepo) Delete(id string) error {
	delete(r.s.clientes, id)
	return nil
}

type memVentaRepo struct{ s *memStore }

func (r *memVentaRepo) Create(v *entity.Venta) error {
	cv := *v
	r.s.ventas[v.ID] = &cv
	return nil
}

func (r *memVentaRepo) CreateItem(item *entity.VentaItem) error {
	ci := *item
	r.s.items[item.VentaID] = append(r.s.items[item.VentaID], &ci)
	return nil
}

func (r *memVentaRepo) GetByID(id string) (*entity.Venta, error) {
	v, ok := r.s.ventas[id]
	if !ok {
		return nil, nil
	}
	cv := *v
	return &cv, nil
}

func (r *memVentaRepo) GetItemsByVentaID(ventaID string) ([]*entity.VentaItem, error) {
	items := r.s.items[ventaID]
	out := make([]*entity.VentaItem, 0, len(items))
	for _, it := range items {
		ci := *it
		out = append(out, &ci)
	}
	return out, nil
}

func (r *memVentaRepo) ListByNegocio(negocioID string, limit, offset int) ([]*entity.Venta, error) {
	var out []*entity.Venta
	for _, v := range r.s.ventas {
		if v.NegocioID == negocioID {
			cv := *v
			out = append(out, &cv)
		}
	}
	return out, nil
}

func (r *memVentaRepo) UpdateEstado(id, estado string) error {
	v, ok := r.s.ventas[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Estado = estado
	return nil
}

func (r *memVentaRepo) DeleteItems(ventaID string) error {
	delete(r.s.items, ventaID)
	return nil
}

func (r *memVentaRepo) Delete(id string) error {
	delete(r.s.ventas, id)
	return nil
}

// memTxRunner simula la semántica todo-o-nada: toma un snapshot del almacén
// antes de ejecutar fn y lo restaura completo si fn retorna error.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	ventaRepo repository.VentaRepository,
) error) error {
	snapshot := r.s.clone()
	err := fn(&memProductoRepo{r.s}, &memClienteRepo{r.s}, &memVentaRepo{r.s})
	if err != nil {
		*r.s = *snapshot
	}
	return err
}

// memNotifier registra las invalidaciones de dashboard recibidas.
type memNotifier struct{ invalidaciones []string }

func (n *memNotifier) InvalidarDashboard(_ context.Context, negocioID string) {
	n.invalidaciones = append(n.invalidaciones, negocioID)
}

var _ sales.TxRunner = (*memTxRunner)(nil)
var _ sales.DashboardNotifier = (*memNotifier)(nil)
var _ repository.ProductoRepository = (*memProductoRepo)(nil)
var _ repository.ClienteRepository = (*memClienteRepo)(nil)
var _ repository.VentaRepository = (*memVentaRepo)(nil)
