// Package qr renders pickup codes for placed orders. The admin screen
// shows the PNG so a customer can be matched to their order at the
// market stand.
package qr

import (
	"encoding/json"

	"github.com/skip2/go-qrcode"

	"salsa-storefront/internal/models"
)

type pickupPayload struct {
	OrderID  string  `json:"order_id"`
	Customer string  `json:"customer"`
	Total    float64 `json:"total"`
	Status   string  `json:"status"`
}

// GenerateOrderQR encodes an order reference as a 256px PNG.
func GenerateOrderQR(order models.Order) ([]byte, error) {
	data, err := json.Marshal(pickupPayload{
		OrderID:  order.ID,
		Customer: order.Customer.Name,
		Total:    order.Total,
		Status:   string(order.Status),
	})
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(string(data), qrcode.Medium, 256)
}
