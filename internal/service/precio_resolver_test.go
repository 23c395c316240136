package service_test

import (
	"testing"

	"github.com/Ayax911/ClothingStore/internal/apperr"
	"github.com/Ayax911/ClothingStore/internal/model"
	"github.com/Ayax911/ClothingStore/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverLineaMultiplicaSinPerderPrecision(t *testing.T) {
	repo := newStubProductoRepo()
	resolver := service.NewPrecioResolver(repo)

	casos := []struct {
		precio   string
		cantidad int
		bruto    string
	}{
		{"10.00", 3, "30.0000"},
		{"0.3333", 3, "0.9999"},
		{"25.50", 2, "51.00"},
		{"19.99", 1000, "19990.00"},
	}
	for _, c := range casos {
		p := &model.Producto{Codigo: "P-" + c.precio, ValorUnitario: decimal.RequireFromString(c.precio)}
		require.NoError(t, repo.CreateTx(t.Context(), nil, p))

		_, bruto, err := resolver.ResolverLinea(nil, p.ID, c.cantidad)
		require.NoError(t, err)
		assert.True(t, bruto.Equal(decimal.RequireFromString(c.bruto)),
			"%s x %d: esperado %s, obtenido %s", c.precio, c.cantidad, c.bruto, bruto)
	}
}

func TestResolverLineaProductoInexistente(t *testing.T) {
	resolver := service.NewPrecioResolver(newStubProductoRepo())

	_, _, err := resolver.ResolverLinea(nil, 999999, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.ReferenceNotFound, apperr.KindOf(err))
}

func TestResolverLineaCantidadInvalida(t *testing.T) {
	repo := newStubProductoRepo()
	resolver := service.NewPrecioResolver(repo)

	p := &model.Producto{Codigo: "P1", ValorUnitario: decimal.RequireFromString("10.00")}
	require.NoError(t, repo.CreateTx(t.Context(), nil, p))

	for _, cantidad := range []int{0, -1} {
		_, _, err := resolver.ResolverLinea(nil, p.ID, cantidad)
		require.Error(t, err)
		assert.Equal(t, apperr.InvalidValue, apperr.KindOf(err))
	}
}

func TestResolverLineaPrecioNegativo(t *testing.T) {
	repo := newStubProductoRepo()
	resolver := service.NewPrecioResolver(repo)

	p := &model.Producto{Codigo: "NEG", ValorUnitario: decimal.RequireFromString("-1.00")}
	require.NoError(t, repo.CreateTx(t.Context(), nil, p))

	_, _, err := resolver.ResolverLinea(nil, p.ID, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidValue, apperr.KindOf(err))
}
