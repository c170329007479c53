package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salsa-storefront/internal/catalog"
	"salsa-storefront/internal/models"
)

func TestDefaultCatalogPrices(t *testing.T) {
	c := catalog.New()

	p, err := c.Product("1")
	require.NoError(t, err)
	assert.Equal(t, "Ay Chihuahua Salsa - Rojo Loca", p.Name)
	assert.True(t, p.Available)

	cases := map[models.SalsaSize]float64{
		models.Size4oz:  5.00,
		models.Size8oz:  8.00,
		models.Size12oz: 12.00,
		models.Size1gal: 100.00,
	}
	for size, want := range cases {
		price, err := c.Price("1", size)
		require.NoError(t, err)
		assert.Equal(t, want, price)
	}
}

func TestUnknownProductAndSize(t *testing.T) {
	c := catalog.New()

	_, err := c.Product("99")
	assert.ErrorIs(t, err, catalog.ErrUnknownProduct)

	_, err = c.Price("99", models.Size4oz)
	assert.ErrorIs(t, err, catalog.ErrUnknownProduct)

	_, err = c.Price("1", models.SalsaSize("2oz"))
	assert.ErrorIs(t, err, catalog.ErrUnknownSize)
}

func TestProductsHidesUnavailable(t *testing.T) {
	c := catalog.NewWithProducts([]models.Product{
		{ID: "1", Name: "Rojo", Available: true},
		{ID: "2", Name: "Verde", Available: false},
	})

	listed := c.Products()
	require.Len(t, listed, 1)
	assert.Equal(t, "1", listed[0].ID)

	// Direct lookup still finds unavailable products.
	p, err := c.Product("2")
	require.NoError(t, err)
	assert.False(t, p.Available)
}
