package qr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salsa-storefront/internal/models"
	"salsa-storefront/internal/qr"
)

func TestGenerateOrderQR(t *testing.T) {
	order := models.Order{
		ID:       "001",
		Total:    17.32,
		Status:   models.StatusConfirmed,
		Customer: models.Customer{Name: "Maria Lopez"},
	}

	png, err := qr.GenerateOrderQR(order)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, png[:4])
}
