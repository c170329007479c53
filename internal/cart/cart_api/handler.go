package cart_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"

	"salsa-storefront/internal/cart"
	"salsa-storefront/internal/catalog"
	"salsa-storefront/internal/logger"
	"salsa-storefront/internal/models"
	"salsa-storefront/internal/qr"
	"salsa-storefront/internal/utils"
)

type Handler struct {
	CartService *cart.Service
	Catalog     *catalog.Catalog
	Logger      *logger.Logger
}

type cartView struct {
	Lines     []models.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Subtotal  float64           `json:"subtotal"`
	Tax       float64           `json:"tax"`
	Tip       float64           `json:"tip"`
	TipPct    float64           `json:"tip_percentage"`
	Total     float64           `json:"total"`
}

func (h *Handler) cartView() cartView {
	return cartView{
		Lines:     h.CartService.Cart(),
		ItemCount: h.CartService.ItemCount(),
		Subtotal:  h.CartService.Subtotal(),
		Tax:       h.CartService.Tax(),
		Tip:       h.CartService.Tip(),
		TipPct:    h.CartService.TipPercentage(),
		Total:     h.CartService.Total(),
	}
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.cartView()); err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetCart: failed to encode response: %v", err))
	}
}

type addItemRequest struct {
	ProductID string           `json:"product_id"`
	Size      models.SalsaSize `json:"size"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !req.Size.Valid() {
		http.Error(w, "Unknown size: "+string(req.Size), http.StatusBadRequest)
		return
	}

	product, err := h.Catalog.Product(req.ProductID)
	if err != nil {
		http.Error(w, "Unknown product: "+req.ProductID, http.StatusNotFound)
		return
	}
	if !product.Available {
		http.Error(w, "Product not available", http.StatusConflict)
		return
	}
	price, err := h.Catalog.Price(req.ProductID, req.Size)
	if err != nil {
		http.Error(w, "Size not offered for product", http.StatusBadRequest)
		return
	}

	h.CartService.AddToCart(r.Context(), product.ID, product.Name, req.Size, price, product.ImageRef)
	h.Logger.LogCart("ADD", fmt.Sprintf("%s %s", product.ID, req.Size))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.cartView())
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	size := models.SalsaSize(chi.URLParam(r, "size"))
	if !size.Valid() {
		http.Error(w, "Unknown size: "+string(size), http.StatusBadRequest)
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.CartService.UpdateQuantity(r.Context(), productID, size, req.Quantity)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.cartView())
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	size := models.SalsaSize(chi.URLParam(r, "size"))
	h.CartService.RemoveFromCart(r.Context(), productID, size)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.cartView())
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.CartService.ClearCart(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type tipRequest struct {
	Percentage float64 `json:"percentage"`
}

func (h *Handler) SetTip(w http.ResponseWriter, r *http.Request) {
	var req tipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.CartService.SetTipPercentage(req.Percentage)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.cartView())
}

type checkoutRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`
}

// Checkout validates customer fields and places the order. The store
// assumes pre-validated input, so all checking happens here.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Name == "" || req.Email == "" || req.Phone == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Checkout failed", "name, email and phone are required"))
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Checkout failed", "invalid email address"))
		return
	}
	if h.CartService.ItemCount() == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Checkout failed", "cart is empty"))
		return
	}

	order := h.CartService.PlaceOrder(r.Context(), req.Name, req.Email, req.Phone, req.Notes)
	h.Logger.Info("API", fmt.Sprintf("Checkout: order %s placed for %s", order.ID, req.Email))

	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Order placed", order))
}

// ---------------- ADMIN ----------------

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.CartService.Orders())
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	order, ok := h.CartService.Order(orderID)
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(order)
}

type statusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !req.Status.Valid() {
		http.Error(w, "Unknown status: "+string(req.Status), http.StatusBadRequest)
		return
	}

	if err := h.CartService.UpdateOrderStatus(r.Context(), orderID, req.Status); err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Could not update order: "+err.Error(), http.StatusInternalServerError)
		return
	}

	order, ok := h.CartService.Order(orderID)
	if !ok {
		// Unknown ids are a store-level no-op; report not found here.
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(order)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	h.CartService.DeleteOrder(r.Context(), orderID)
	w.WriteHeader(http.StatusNoContent)
}

// GetOrderQR renders the pickup code for an order as PNG.
func (h *Handler) GetOrderQR(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	order, ok := h.CartService.Order(orderID)
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	png, err := qr.GenerateOrderQR(order)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetOrderQR: failed to generate code for %s: %v", orderID, err))
		http.Error(w, "Could not generate pickup code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetOrderQR: failed to write response: %v", err))
	}
}
