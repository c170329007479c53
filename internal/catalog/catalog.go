// Package catalog holds the compiled-in product list. Products are
// content, not admin-editable state, so there is no persistence here.
package catalog

import (
	"errors"

	"salsa-storefront/internal/models"
)

var ErrUnknownProduct = errors.New("catalog: unknown product")
var ErrUnknownSize = errors.New("catalog: size not offered for product")

// DefaultTaxRate is the sales-tax rate applied when no override is configured.
const DefaultTaxRate = 0.0825

var products = []models.Product{
	{
		ID:          "1",
		Name:        "Ay Chihuahua Salsa - Rojo Loca",
		Description: "The sauce that bites back! Premium handcrafted salsa with bold flavor",
		ImageRef:    "https://pub-e001eb4506b145aa938b5d3badbff6a5.r2.dev/attachments/0d5wse7balyg964zm1z5p",
		Prices: map[models.SalsaSize]float64{
			models.Size4oz:  5.00,
			models.Size8oz:  8.00,
			models.Size12oz: 12.00,
			models.Size1gal: 100.00,
		},
		Available: true,
	},
}

// Catalog answers product lookups for the cart and the public API.
type Catalog struct {
	products []models.Product
}

func New() *Catalog {
	return &Catalog{products: products}
}

// NewWithProducts builds a catalog over an explicit product list, for tests.
func NewWithProducts(list []models.Product) *Catalog {
	return &Catalog{products: list}
}

// Products returns every available product.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Available {
			out = append(out, p)
		}
	}
	return out
}

// Product returns the product with the given id, available or not.
func (c *Catalog) Product(id string) (models.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrUnknownProduct
}

// Price returns the unit price for a product at the given size.
func (c *Catalog) Price(id string, size models.SalsaSize) (float64, error) {
	p, err := c.Product(id)
	if err != nil {
		return 0, err
	}
	price, ok := p.Prices[size]
	if !ok {
		return 0, ErrUnknownSize
	}
	return price, nil
}
