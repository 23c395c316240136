package service_test

import (
	"context"
	"testing"

	"github.com/Ayax911/ClothingStore/internal/apperr"
	"github.com/Ayax911/ClothingStore/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCompra deja una compra de una linea (cantidad 3 a 10.00, total 30)
// lista para que los tests del CRUD de detalles la muten.
func seedCompra(t *testing.T, env *testEnv, codigo string) *dto.CompraResponse {
	t.Helper()
	cliente := env.seedCliente("cedula-" + codigo)
	producto := env.seedProducto("prod-"+codigo, "10.00")
	resp, err := env.compras.Guardar(context.Background(), &dto.CompraInput{
		Codigo:    codigo,
		ClienteID: cliente.ID,
		Detalles:  []dto.DetalleCompraInput{{ProductoID: producto.ID, Cantidad: 3}},
	})
	require.NoError(t, err)
	return resp
}

func TestGuardarDetalleRecalculaTotal(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	compra := seedCompra(t, env, "D1")
	otro := env.seedProducto("OTRO-01", "2.50")

	resp, err := env.detalles.Guardar(ctx, &dto.DetalleInput{
		CompraID:   compra.ID,
		ProductoID: otro.ID,
		Cantidad:   4,
	})
	require.NoError(t, err)

	assert.True(t, resp.ValorBruto.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, otro.Nombre, resp.Producto)

	guardada := env.compraRepo.compras[compra.ID]
	assert.True(t, guardada.ValorTotal.Equal(decimal.RequireFromString("40.00")),
		"total esperado 40.00, obtenido %s", guardada.ValorTotal)
}

func TestGuardarDetalleCompraInexistente(t *testing.T) {
	env := newTestEnv()
	producto := env.seedProducto("P1", "10.00")

	_, err := env.detalles.Guardar(context.Background(), &dto.DetalleInput{
		CompraID:   12345,
		ProductoID: producto.ID,
		Cantidad:   1,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.ReferenceNotFound, apperr.KindOf(err))
	assert.Empty(t, env.detalleRepo.detalles)
}

func TestGuardarDetalleProductoInexistente(t *testing.T) {
	env := newTestEnv()
	compra := seedCompra(t, env, "D2")

	_, err := env.detalles.Guardar(context.Background(), &dto.DetalleInput{
		CompraID:   compra.ID,
		ProductoID: 999999,
		Cantidad:   1,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.ReferenceNotFound, apperr.KindOf(err))

	guardada := env.compraRepo.compras[compra.ID]
	assert.True(t, guardada.ValorTotal.Equal(decimal.RequireFromString("30")),
		"el total no debe moverse si la linea no entro")
}

func TestGuardarDetalleCantidadInvalida(t *testing.T) {
	env := newTestEnv()
	compra := seedCompra(t, env, "D3")
	producto := env.seedProducto("EXTRA-01", "5.00")

	_, err := env.detalles.Guardar(context.Background(), &dto.DetalleInput{
		CompraID:   compra.ID,
		ProductoID: producto.ID,
		Cantidad:   0,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidValue, apperr.KindOf(err))
}

func TestGuardarDetalleYaGuardado(t *testing.T) {
	env := newTestEnv()
	compra := seedCompra(t, env, "D4")

	_, err := env.detalles.Guardar(context.Background(), &dto.DetalleInput{
		ID:         9,
		CompraID:   compra.ID,
		ProductoID: compra.Detalles[0].ProductoID,
		Cantidad:   1,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.AlreadyPersisted, apperr.KindOf(err))
}

func TestModificarDetalleRetomaSnapshot(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	compra := seedCompra(t, env, "D5")
	linea := compra.Detalles[0]

	// El precio cambia despues de la compra; re-guardar la linea toma el
	// precio vigente, no el snapshot anterior.
	producto := env.productoRepo.productos[linea.ProductoID]
	producto.ValorUnitario = decimal.RequireFromString("12.00")

	resp, err := env.detalles.Modificar(ctx, linea.ID, &dto.DetalleInput{
		CompraID:   compra.ID,
		ProductoID: linea.ProductoID,
		Cantidad:   3,
		Version:    linea.Version,
	})
	require.NoError(t, err)

	assert.True(t, resp.ValorBruto.Equal(decimal.RequireFromString("36.00")))
	assert.Equal(t, 2, resp.Version)

	guardada := env.compraRepo.compras[compra.ID]
	assert.True(t, guardada.ValorTotal.Equal(decimal.RequireFromString("36.00")))
}

func TestModificarDetalleConflictoDeVersion(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	compra := seedCompra(t, env, "D6")
	linea := compra.Detalles[0]

	_, err := env.detalles.Modificar(ctx, linea.ID, &dto.DetalleInput{
		CompraID:   compra.ID,
		ProductoID: linea.ProductoID,
		Cantidad:   5,
		Version:    linea.Version,
	})
	require.NoError(t, err)

	_, err = env.detalles.Modificar(ctx, linea.ID, &dto.DetalleInput{
		CompraID:   compra.ID,
		ProductoID: linea.ProductoID,
		Cantidad:   9,
		Version:    linea.Version, // ya vencida
	})
	require.Error(t, err)
	assert.Equal(t, apperr.ConcurrencyConflict, apperr.KindOf(err))
}

func TestModificarDetalleSinVersion(t *testing.T) {
	env := newTestEnv()
	compra := seedCompra(t, env, "D7")
	linea := compra.Detalles[0]

	_, err := env.detalles.Modificar(context.Background(), linea.ID, &dto.DetalleInput{
		CompraID:   compra.ID,
		ProductoID: linea.ProductoID,
		Cantidad:   5,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.MissingData, apperr.KindOf(err))
}

func TestModificarDetalleMueveDeCompra(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	origen := seedCompra(t, env, "D8A")
	destino := seedCompra(t, env, "D8B")
	linea := origen.Detalles[0]

	_, err := env.detalles.Modificar(ctx, linea.ID, &dto.DetalleInput{
		CompraID:   destino.ID,
		ProductoID: linea.ProductoID,
		Cantidad:   3,
		Version:    linea.Version,
	})
	require.NoError(t, err)

	// Ambos totales quedan derivados de sus detalles vigentes.
	assert.True(t, env.compraRepo.compras[origen.ID].ValorTotal.Equal(decimal.Zero))
	assert.True(t, env.compraRepo.compras[destino.ID].ValorTotal.Equal(decimal.RequireFromString("60.00")))
}

func TestBorrarDetalleRecalculaTotal(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	compra := seedCompra(t, env, "D9")
	extra := env.seedProducto("EXTRA-09", "5.00")

	agregado, err := env.detalles.Guardar(ctx, &dto.DetalleInput{
		CompraID:   compra.ID,
		ProductoID: extra.ID,
		Cantidad:   2,
	})
	require.NoError(t, err)
	assert.True(t, env.compraRepo.compras[compra.ID].ValorTotal.Equal(decimal.RequireFromString("40.00")))

	require.NoError(t, env.detalles.Borrar(ctx, agregado.ID))
	assert.True(t, env.compraRepo.compras[compra.ID].ValorTotal.Equal(decimal.RequireFromString("30.00")))
}

func TestBorrarDetalleInexistente(t *testing.T) {
	env := newTestEnv()
	err := env.detalles.Borrar(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, apperr.NotExistent, apperr.KindOf(err))
}

func TestPorCompraSinCompra(t *testing.T) {
	env := newTestEnv()
	_, err := env.detalles.PorCompra(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, apperr.MissingData, apperr.KindOf(err))
}
