package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/encarte"
	"github.com/fwojciec/encarte/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProducts(t *testing.T, svc *sqlite.ProductService) {
	t.Helper()
	n, err := svc.CreateProducts(context.Background(), []*encarte.Product{
		{Name: "Arroz Tio João", Price: 2399, Source: "mercado-a", Category: encarte.CategoryMercearia},
		{Name: "Leite Integral", Price: 459, Source: "mercado-a", Promotion: true, Category: encarte.CategoryLaticinios},
		{Name: "Arroz Branco", Price: 1990, Source: "mercado-b", Category: encarte.CategoryMercearia},
		{Name: "Pão Francês", Price: 1299, Source: "mercado-b", Category: encarte.CategoryPadaria},
	})
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestProductService_CreateProducts(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProductService(setupTestDB(t))
		p := &encarte.Product{Name: "Leite Integral", Price: 459, Source: "mercado-a", Category: encarte.CategoryLaticinios}

		n, err := svc.CreateProducts(context.Background(), []*encarte.Product{p})

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.NotEmpty(t, p.ID)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("skips products already stored", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProductService(setupTestDB(t))
		ctx := context.Background()
		_, err := svc.CreateProducts(ctx, []*encarte.Product{
			{Name: "Leite Integral", Price: 459, Source: "mercado-a"},
		})
		require.NoError(t, err)

		dup := &encarte.Product{Name: "LEITE INTEGRAL", Price: 459, Source: "mercado-a", Promotion: true}
		other := &encarte.Product{Name: "Leite Integral", Price: 459, Source: "mercado-b"}
		n, err := svc.CreateProducts(ctx, []*encarte.Product{dup, other})

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Empty(t, dup.ID)
		assert.NotEmpty(t, other.ID)
	})

	t.Run("rejects invalid products without storing any", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProductService(setupTestDB(t))
		ctx := context.Background()

		_, err := svc.CreateProducts(ctx, []*encarte.Product{
			{Name: "Leite Integral", Price: 459, Source: "mercado-a"},
			{Name: "Ab", Price: 459, Source: "mercado-a"},
		})

		require.Error(t, err)
		assert.Equal(t, encarte.EINVALID, encarte.ErrorCode(err))
		assert.Contains(t, encarte.ErrorMessage(err), "product 1")

		products, err := svc.FindProducts(ctx, encarte.ProductFilter{})
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestProductService_FindProducts(t *testing.T) {
	t.Parallel()

	t.Run("returns products cheapest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProductService(setupTestDB(t))
		seedProducts(t, svc)

		products, err := svc.FindProducts(context.Background(), encarte.ProductFilter{})

		require.NoError(t, err)
		require.Len(t, products, 4)
		assert.Equal(t, "Leite Integral", products[0].Name)
		assert.Equal(t, encarte.Price(459), products[0].Price)
		assert.True(t, products[0].Promotion)
		assert.Equal(t, encarte.CategoryLaticinios, products[0].Category)
		assert.Equal(t, "Arroz Tio João", products[3].Name)
		assert.False(t, products[3].CreatedAt.IsZero())
	})

	t.Run("filters by source", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProductService(setupTestDB(t))
		seedProducts(t, svc)

		source := "mercado-b"
		products, err := svc.FindProducts(context.Background(), encarte.ProductFilter{Source: &source})

		require.NoError(t, err)
		require.Len(t, products, 2)
		for _, p := range products {
			assert.Equal(t, "mercado-b", p.Source)
		}
	})

	t.Run("filters by category", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProductService(setupTestDB(t))
		seedProducts(t, svc)

		category := encarte.CategoryMercearia
		products, err := svc.FindProducts(context.Background(), encarte.ProductFilter{Category: &category})

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Arroz Branco", products[0].Name)
		assert.Equal(t, "Arroz Tio João", products[1].Name)
	})

	t.Run("searches names case-insensitively", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProductService(setupTestDB(t))
		seedProducts(t, svc)

		search := "PÃO"
		products, err := svc.FindProducts(context.Background(), encarte.ProductFilter{Search: &search})

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Pão Francês", products[0].Name)
	})

	t.Run("filters promotions", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProductService(setupTestDB(t))
		seedProducts(t, svc)

		promo := true
		products, err := svc.FindProducts(context.Background(), encarte.ProductFilter{Promotion: &promo})

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Leite Integral", products[0].Name)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProductService(setupTestDB(t))
		seedProducts(t, svc)
		ctx := context.Background()

		page, err := svc.FindProducts(ctx, encarte.ProductFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "Pão Francês", page[0].Name)
		assert.Equal(t, "Arroz Branco", page[1].Name)

		rest, err := svc.FindProducts(ctx, encarte.ProductFilter{Offset: 3})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "Arroz Tio João", rest[0].Name)
	})
}

func TestProductService_FindSources(t *testing.T) {
	t.Parallel()

	t.Run("lists sources with counts", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProductService(setupTestDB(t))
		seedProducts(t, svc)

		sources, err := svc.FindSources(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []*encarte.SourceSummary{
			{Source: "mercado-a", Products: 2},
			{Source: "mercado-b", Products: 2},
		}, sources)
	})

	t.Run("empty database", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProductService(setupTestDB(t))

		sources, err := svc.FindSources(context.Background())

		require.NoError(t, err)
		assert.Empty(t, sources)
	})
}

func TestProductService_DeleteProductsBySource(t *testing.T) {
	t.Parallel()

	t.Run("deletes only the source products", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProductService(setupTestDB(t))
		seedProducts(t, svc)
		ctx := context.Background()

		require.NoError(t, svc.DeleteProductsBySource(ctx, "mercado-a"))

		products, err := svc.FindProducts(ctx, encarte.ProductFilter{})
		require.NoError(t, err)
		require.Len(t, products, 2)
		for _, p := range products {
			assert.Equal(t, "mercado-b", p.Source)
		}
	})

	t.Run("returns ENOTFOUND for unknown source", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewProductService(setupTestDB(t))

		err := svc.DeleteProductsBySource(context.Background(), "nowhere")

		require.Error(t, err)
		assert.Equal(t, encarte.ENOTFOUND, encarte.ErrorCode(err))
	})
}
