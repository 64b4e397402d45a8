// Package testutil provee un almacén en memoria que implementa los puertos de
// repositorio y el TxRunner, para probar los casos de uso sin PostgreSQL.
// El TxRunner simula el rollback restaurando un snapshot cuando fn falla.
package testutil

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tiendafacil/backoffice-api/internal/application/stock"
	"github.com/tiendafacil/backoffice-api/internal/domain/entity"
	"github.com/tiendafacil/backoffice-api/internal/domain/repository"
)

// MemDB estado compartido por los repositorios fake.
type MemDB struct {
	Productos   map[string]*entity.Producto
	Compras     map[string]*entity.Compra
	Lineas      map[string][]*entity.CompraProducto
	Movimientos []*entity.Inventario
	Empleados   map[string]*entity.Empleado
	Proveedores map[string]*entity.Proveedor
	Categorias  map[string]*entity.Categoria
}

// NewMemDB construye el almacén vacío.
func NewMemDB() *MemDB {
	return &MemDB{
		Productos:   make(map[string]*entity.Producto),
		Compras:     make(map[string]*entity.Compra),
		Lineas:      make(map[string][]*entity.CompraProducto),
		Empleados:   make(map[string]*entity.Empleado),
		Proveedores: make(map[string]*entity.Proveedor),
		Categorias:  make(map[string]*entity.Categoria),
	}
}

// ProductoRepo devuelve un repositorio de productos sobre el almacén.
func (db *MemDB) ProductoRepo() repository.ProductoRepository { return &productoRepo{db} }

// CompraRepo devuelve un repositorio de compras sobre el almacén.
func (db *MemDB) CompraRepo() repository.CompraRepository { return &compraRepo{db} }

// MovimientoRepo devuelve un repositorio del libro de movimientos sobre el almacén.
func (db *MemDB) MovimientoRepo() repository.InventarioRepository { return &movimientoRepo{db} }

// EmpleadoRepo devuelve un repositorio de empleados sobre el almacén.
func (db *MemDB) EmpleadoRepo() repository.EmpleadoRepository { return &empleadoRepo{db} }

// ProveedorRepo devuelve un repositorio de proveedores sobre el almacén.
func (db *MemDB) ProveedorRepo() repository.ProveedorRepository { return &proveedorRepo{db} }

// CategoriaRepo devuelve un repositorio de categorías sobre el almacén.
func (db *MemDB) CategoriaRepo() repository.CategoriaRepository { return &categoriaRepo{db} }

// TxRunner devuelve un runner que restaura el estado previo si fn devuelve error.
func (db *MemDB) TxRunner() stock.TxRunner { return &txRunner{db} }

// ── snapshot / restore ────────────────────────────────────────────────────────

type snapshot struct {
	productos   map[string]entity.Producto
	compras     map[string]entity.Compra
	lineas      map[string][]entity.CompraProducto
	movimientos []entity.Inventario
}

func (db *MemDB) snapshot() snapshot {
	s := snapshot{
		productos: make(map[string]entity.Producto, len(db.Productos)),
		compras:   make(map[string]entity.Compra, len(db.Compras)),
		lineas:    make(map[string][]entity.CompraProducto, len(db.Lineas)),
	}
	for id, p := range db.Productos {
		s.productos[id] = *p
	}
	for id, c := range db.Compras {
		s.compras[id] = *c
	}
	for id, ls := range db.Lineas {
		cp := make([]entity.CompraProducto, len(ls))
		for i, l := range ls {
			cp[i] = *l
		}
		s.lineas[id] = cp
	}
	s.movimientos = make([]entity.Inventario, len(db.Movimientos))
	for i, m := range db.Movimientos {
		s.movimientos[i] = *m
	}
	return s
}

func (db *MemDB) restore(s snapshot) {
	db.Productos = make(map[string]*entity.Producto, len(s.productos))
	for id := range s.productos {
		p := s.productos[id]
		db.Productos[id] = &p
	}
	db.Compras = make(map[string]*entity.Compra, len(s.compras))
	for id := range s.compras {
		c := s.compras[id]
		db.Compras[id] = &c
	}
	db.Lineas = make(map[string][]*entity.CompraProducto, len(s.lineas))
	for id, ls := range s.lineas {
		cp := make([]*entity.CompraProducto, len(ls))
		for i := range ls {
			l := ls[i]
			cp[i] = &l
		}
		db.Lineas[id] = cp
	}
	db.Movimientos = make([]*entity.Inventario, len(s.movimientos))
	for i := range s.movimientos {
		m := s.movimientos[i]
		db.Movimientos[i] = &m
	}
}

type txRunner struct{ db *MemDB }

func (r *txRunner) Run(_ context.Context, fn func(
	compraRepo repository.CompraRepository,
	movRepo repository.InventarioRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	snap := r.db.snapshot()
	if err := fn(&compraRepo{r.db}, &movimientoRepo{r.db}, &productoRepo{r.db}); err != nil {
		r.db.restore(snap)
		return err
	}
	return nil
}

// ── productos ─────────────────────────────────────────────────────────────────

type productoRepo struct{ db *MemDB }

func (r *productoRepo) Create(p *entity.Producto) error {
	cp := *p
	r.db.Productos[p.ID] = &cp
	return nil
}

func (r *productoRepo) GetByID(id string) (*entity.Producto, error) {
	p, ok := r.db.Productos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productoRepo) GetByCodigo(codigo string) (*entity.Producto, error) {
	for _, p := range r.db.Productos {
		if p.Codigo == codigo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	return r.GetByID(id)
}

func (r *productoRepo) ActualizarStockPrecio(id string, stock int64, precio decimal.Decimal) error {
	if p, ok := r.db.Productos[id]; ok {
		p.Stock = stock
		p.Precio = precio
	}
	return nil
}

func (r *productoRepo) Update(p *entity.Producto) error {
	cp := *p
	r.db.Productos[p.ID] = &cp
	return nil
}

func (r *productoRepo) List(limit, offset int) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.db.Productos {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *productoRepo) Delete(id string) error {
	delete(r.db.Productos, id)
	return nil
}

// ── compras ───────────────────────────────────────────────────────────────────

type compraRepo struct{ db *MemDB }

func (r *compraRepo) Create(c *entity.Compra) error {
	cp := *c
	cp.Lineas = nil
	r.db.Compras[c.ID] = &cp
	return nil
}

func (r *compraRepo) CreateLinea(l *entity.CompraProducto) error {
	cp := *l
	r.db.Lineas[l.CompraID] = append(r.db.Lineas[l.CompraID], &cp)
	return nil
}

func (r *compraRepo) GetByID(id string) (*entity.Compra, error) {
	c, ok := r.db.Compras[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *compraRepo) GetForUpdate(id string) (*entity.Compra, error) {
	return r.GetByID(id)
}

func (r *compraRepo) ListLineas(compraID string) ([]*entity.CompraProducto, error) {
	var out []*entity.CompraProducto
	for _, l := range r.db.Lineas[compraID] {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *compraRepo) DeleteLineas(compraID string) error {
	delete(r.db.Lineas, compraID)
	return nil
}

func (r *compraRepo) UpdateHeader(c *entity.Compra) error {
	cp := *c
	cp.Lineas = nil
	r.db.Compras[c.ID] = &cp
	return nil
}

func (r *compraRepo) Delete(id string) error {
	delete(r.db.Compras, id)
	return nil
}

func (r *compraRepo) List(limit, offset int) ([]*entity.Compra, error) {
	var out []*entity.Compra
	for _, c := range r.db.Compras {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

// ── libro de movimientos ──────────────────────────────────────────────────────

type movimientoRepo struct{ db *MemDB }

func (r *movimientoRepo) Create(m *entity.Inventario) error {
	cp := *m
	r.db.Movimientos = append(r.db.Movimientos, &cp)
	return nil
}

func (r *movimientoRepo) GetByID(id string) (*entity.Inventario, error) {
	for _, m := range r.db.Movimientos {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *movimientoRepo) Update(m *entity.Inventario) error {
	for i, existente := range r.db.Movimientos {
		if existente.ID == m.ID {
			cp := *m
			r.db.Movimientos[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *movimientoRepo) Delete(id string) error {
	for i, m := range r.db.Movimientos {
		if m.ID == id {
			r.db.Movimientos = append(r.db.Movimientos[:i], r.db.Movimientos[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *movimientoRepo) List(limit, offset int) ([]*entity.Inventario, error) {
	// Más recientes primero, como el adaptador real.
	var out []*entity.Inventario
	for i := len(r.db.Movimientos) - 1; i >= 0; i-- {
		cp := *r.db.Movimientos[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *movimientoRepo) ListByProducto(productoID string, limit, offset int) ([]*entity.Inventario, error) {
	var out []*entity.Inventario
	for i := len(r.db.Movimientos) - 1; i >= 0; i-- {
		if r.db.Movimientos[i].ProductoID == productoID {
			cp := *r.db.Movimientos[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── empleados / proveedores / categorías ──────────────────────────────────────

type empleadoRepo struct{ db *MemDB }

func (r *empleadoRepo) Create(e *entity.Empleado) error {
	cp := *e
	r.db.Empleados[e.ID] = &cp
	return nil
}

func (r *empleadoRepo) GetByID(id string) (*entity.Empleado, error) {
	e, ok := r.db.Empleados[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *empleadoRepo) GetByEmail(email string) (*entity.Empleado, error) {
	for _, e := range r.db.Empleados {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *empleadoRepo) List(limit, offset int) ([]*entity.Empleado, error) {
	var out []*entity.Empleado
	for _, e := range r.db.Empleados {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

type proveedorRepo struct{ db *MemDB }

func (r *proveedorRepo) Create(p *entity.Proveedor) error {
	cp := *p
	r.db.Proveedores[p.ID] = &cp
	return nil
}

func (r *proveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	p, ok := r.db.Proveedores[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *proveedorRepo) List(limit, offset int) ([]*entity.Proveedor, error) {
	var out []*entity.Proveedor
	for _, p := range r.db.Proveedores {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *proveedorRepo) Update(p *entity.Proveedor) error {
	cp := *p
	r.db.Proveedores[p.ID] = &cp
	return nil
}

func (r *proveedorRepo) Delete(id string) error {
	delete(r.db.Proveedores, id)
	return nil
}

type categoriaRepo struct{ db *MemDB }

func (r *categoriaRepo) Create(c *entity.Categoria) error {
	cp := *c
	r.db.Categorias[c.ID] = &cp
	return nil
}

func (r *categoriaRepo) GetByID(id string) (*entity.Categoria, error) {
	c, ok := r.db.Categorias[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *categoriaRepo) List(limit, offset int) ([]*entity.Categoria, error) {
	var out []*entity.Categoria
	for _, c := range r.db.Categorias {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *categoriaRepo) Update(c *entity.Categoria) error {
	cp := *c
	r.db.Categorias[c.ID] = &cp
	return nil
}

func (r *categoriaRepo) Delete(id string) error {
	delete(r.db.Categorias, id)
	return nil
}
