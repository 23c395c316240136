package service_test

import (
	"context"
	"sort"

	"github.com/Ayax911/ClothingStore/internal/model"
	"github.com/Ayax911/ClothingStore/internal/repository"
	"github.com/Ayax911/ClothingStore/internal/service"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs en memoria ─────────────────────────────────────────────────────────
// Implementan las interfaces de repositorio sobre mapas. DB() devuelve nil,
// con lo que runTx ejecuta el cuerpo sin transaccion real (modo unit test).

type stubClienteRepo struct {
	clientes map[uint]*model.Cliente
	seq      uint
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uint]*model.Cliente)}
}

func (r *stubClienteRepo) DB() *gorm.DB { return nil }

func (r *stubClienteRepo) CreateTx(_ context.Context, _ *gorm.DB, c *model.Cliente) error {
	if c.ID == 0 {
		r.seq++
		c.ID = r.seq
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uint) (*model.Cliente, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubClienteRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) ExistsCedulaTx(_ *gorm.DB, cedula string, excludeID uint) (bool, error) {
	for _, c := range r.clientes {
		if c.Cedula == cedula && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubClienteRepo) List(_ context.Context, limit int) ([]model.Cliente, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubClienteRepo) PorCedula(_ context.Context, cedula string) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if c.Cedula == cedula {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) UpdateTx(_ context.Context, _ *gorm.DB, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.clientes, id)
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

type stubProductoRepo struct {
	productos map[uint]*model.Producto
	seq       uint
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uint]*model.Producto)}
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

func (r *stubProductoRepo) CreateTx(_ context.Context, _ *gorm.DB, p *model.Producto) error {
	if p.ID == 0 {
		r.seq++
		p.ID = r.seq
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uint) (*model.Producto, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Codigo == codigo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) ExistsCodigoTx(_ *gorm.DB, codigo string, excludeID uint) (bool, error) {
	for _, p := range r.productos {
		if p.Codigo == codigo && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductoRepo) List(_ context.Context, limit int) ([]model.Producto, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubProductoRepo) PorNombre(_ context.Context, nombre string) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Nombre == nombre {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) UpdateTx(_ context.Context, _ *gorm.DB, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.productos, id)
	return nil
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

type stubDetalleRepo struct {
	detalles map[uint]*model.DetalleCompra
	seq      uint
}

func newStubDetalleRepo() *stubDetalleRepo {
	return &stubDetalleRepo{detalles: make(map[uint]*model.DetalleCompra)}
}

func (r *stubDetalleRepo) DB() *gorm.DB { return nil }

func (r *stubDetalleRepo) CreateTx(_ context.Context, _ *gorm.DB, d *model.DetalleCompra) error {
	if d.ID == 0 {
		r.seq++
		d.ID = r.seq
	}
	copia := *d
	r.detalles[d.ID] = &copia
	return nil
}

func (r *stubDetalleRepo) FindByID(_ context.Context, id uint) (*model.DetalleCompra, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubDetalleRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.DetalleCompra, error) {
	d, ok := r.detalles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *stubDetalleRepo) List(_ context.Context, limit int) ([]model.DetalleCompra, error) {
	out := make([]model.DetalleCompra, 0, len(r.detalles))
	for _, d := range r.detalles {
		out = append(out, *d)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubDetalleRepo) PorCompra(_ context.Context, compraID uint) ([]model.DetalleCompra, error) {
	return r.ListByCompraTx(nil, compraID)
}

func (r *stubDetalleRepo) ListByCompraTx(_ *gorm.DB, compraID uint) ([]model.DetalleCompra, error) {
	var out []model.DetalleCompra
	for _, d := range r.detalles {
		if d.CompraID == compraID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubDetalleRepo) CountByCompraTx(_ *gorm.DB, compraID uint) (int64, error) {
	var count int64
	for _, d := range r.detalles {
		if d.CompraID == compraID {
			count++
		}
	}
	return count, nil
}

func (r *stubDetalleRepo) CountByProductoTx(_ *gorm.DB, productoID uint) (int64, error) {
	var count int64
	for _, d := range r.detalles {
		if d.ProductoID == productoID {
			count++
		}
	}
	return count, nil
}

func (r *stubDetalleRepo) UpdateTx(_ *gorm.DB, d *model.DetalleCompra, expectedVersion int) (bool, error) {
	stored, ok := r.detalles[d.ID]
	if !ok || stored.Version != expectedVersion {
		return false, nil
	}
	copia := *d
	copia.Version = expectedVersion + 1
	r.detalles[d.ID] = &copia
	return true, nil
}

func (r *stubDetalleRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.detalles, id)
	return nil
}

func (r *stubDetalleRepo) DeleteByCompraTx(_ *gorm.DB, compraID uint) error {
	for id, d := range r.detalles {
		if d.CompraID == compraID {
			delete(r.detalles, id)
		}
	}
	return nil
}

var _ repository.DetalleRepository = (*stubDetalleRepo)(nil)

type stubCompraRepo struct {
	compras  map[uint]*model.Compra
	seq      uint
	detalles *stubDetalleRepo
	clientes *stubClienteRepo
}

func newStubCompraRepo(detalles *stubDetalleRepo, clientes *stubClienteRepo) *stubCompraRepo {
	return &stubCompraRepo{
		compras:  make(map[uint]*model.Compra),
		detalles: detalles,
		clientes: clientes,
	}
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

func (r *stubCompraRepo) CreateTx(ctx context.Context, tx *gorm.DB, c *model.Compra) error {
	if c.ID == 0 {
		r.seq++
		c.ID = r.seq
	}
	for i := range c.Detalles {
		c.Detalles[i].CompraID = c.ID
		if err := r.detalles.CreateTx(ctx, tx, &c.Detalles[i]); err != nil {
			return err
		}
	}
	header := *c
	header.Detalles = nil
	r.compras[c.ID] = &header
	return nil
}

func (r *stubCompraRepo) FindByID(_ context.Context, id uint) (*model.Compra, error) {
	c, ok := r.compras[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.conDetalles(c), nil
}

func (r *stubCompraRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Compra, error) {
	c, ok := r.compras[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCompraRepo) ExistsCodigoTx(_ *gorm.DB, codigo string, excludeID uint) (bool, error) {
	for _, c := range r.compras {
		if c.Codigo == codigo && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCompraRepo) List(_ context.Context, limit int) ([]model.Compra, error) {
	out := make([]model.Compra, 0, len(r.compras))
	for _, c := range r.compras {
		out = append(out, *r.conDetalles(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubCompraRepo) PorCodigo(_ context.Context, codigo string) ([]model.Compra, error) {
	var out []model.Compra
	for _, c := range r.compras {
		if c.Codigo == codigo {
			out = append(out, *r.conDetalles(c))
		}
	}
	return out, nil
}

func (r *stubCompraRepo) UpdateHeaderTx(_ *gorm.DB, c *model.Compra, expectedVersion int) (bool, error) {
	stored, ok := r.compras[c.ID]
	if !ok || stored.Version != expectedVersion {
		return false, nil
	}
	header := *c
	header.Detalles = nil
	header.Version = expectedVersion + 1
	r.compras[c.ID] = &header
	return true, nil
}

func (r *stubCompraRepo) UpdateTotalTx(_ *gorm.DB, compraID uint, total decimal.Decimal) error {
	stored, ok := r.compras[compraID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.ValorTotal = total
	stored.Version++
	return nil
}

func (r *stubCompraRepo) CountByClienteTx(_ *gorm.DB, clienteID uint) (int64, error) {
	var count int64
	for _, c := range r.compras {
		if c.ClienteID == clienteID {
			count++
		}
	}
	return count, nil
}

func (r *stubCompraRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.compras, id)
	return nil
}

// conDetalles emula el preload: cliente y detalles con su producto.
func (r *stubCompraRepo) conDetalles(c *model.Compra) *model.Compra {
	copia := *c
	if cliente, ok := r.clientes.clientes[c.ClienteID]; ok {
		copia.Cliente = cliente
	}
	detalles, _ := r.detalles.ListByCompraTx(nil, c.ID)
	copia.Detalles = detalles
	return &copia
}

var _ repository.CompraRepository = (*stubCompraRepo)(nil)

// ── Entorno de test ──────────────────────────────────────────────────────────

type testEnv struct {
	clienteRepo  *stubClienteRepo
	productoRepo *stubProductoRepo
	compraRepo   *stubCompraRepo
	detalleRepo  *stubDetalleRepo

	compras   service.CompraService
	detalles  service.DetalleService
	clientes  service.ClienteService
	productos service.ProductoService
}

func newTestEnv() *testEnv {
	clienteRepo := newStubClienteRepo()
	productoRepo := newStubProductoRepo()
	detalleRepo := newStubDetalleRepo()
	compraRepo := newStubCompraRepo(detalleRepo, clienteRepo)

	guard := service.NewConsistencyGuard(clienteRepo, productoRepo, compraRepo, detalleRepo)
	precios := service.NewPrecioResolver(productoRepo)

	return &testEnv{
		clienteRepo:  clienteRepo,
		productoRepo: productoRepo,
		compraRepo:   compraRepo,
		detalleRepo:  detalleRepo,
		compras:      service.NewCompraService(compraRepo, detalleRepo, guard, precios),
		detalles:     service.NewDetalleService(detalleRepo, compraRepo, guard, precios),
		clientes:     service.NewClienteService(clienteRepo, compraRepo),
		productos:    service.NewProductoService(productoRepo, detalleRepo),
	}
}

func (e *testEnv) seedCliente(cedula string) *model.Cliente {
	c := &model.Cliente{Cedula: cedula, Nombre: "Cliente " + cedula}
	_ = e.clienteRepo.CreateTx(context.Background(), nil, c)
	return c
}

func (e *testEnv) seedProducto(codigo, precio string) *model.Producto {
	p := &model.Producto{
		Nombre:        "Producto " + codigo,
		Material:      "algodon",
		Codigo:        codigo,
		ValorUnitario: decimal.RequireFromString(precio),
	}
	_ = e.productoRepo.CreateTx(context.Background(), nil, p)
	return p
}
