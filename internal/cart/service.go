// Package cart owns the active shopping cart and the order ledger. It is
// the single writer to its three persistence slots and the authoritative
// in-memory copy within a session.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"salsa-storefront/internal/clock"
	"salsa-storefront/internal/kv"
	"salsa-storefront/internal/logger"
	"salsa-storefront/internal/models"
)

const (
	cartSlot    = "cart"
	ordersSlot  = "orders"
	counterSlot = "order_counter"
)

// Publisher streams order lifecycle events. Failures are logged, never
// propagated to callers.
type Publisher interface {
	PublishOrderPlaced(order models.Order) error
	PublishOrderStatus(order models.Order) error
	PublishOrderDeleted(orderID string) error
}

type Service struct {
	store kv.Store
	clock clock.Clock
	log   *logger.Logger
	pub   Publisher

	taxRate          float64
	autoConfirmDelay time.Duration

	mu            sync.Mutex
	cart          []models.CartLine
	orders        []models.Order
	orderCounter  int
	tipPercentage float64
	loaded        bool
	confirmTimers map[string]*time.Timer
}

func NewService(store kv.Store, clk clock.Clock, log *logger.Logger, pub Publisher, taxRate float64, autoConfirmDelay time.Duration) *Service {
	return &Service{
		store:            store,
		clock:            clk,
		log:              log,
		pub:              pub,
		taxRate:          taxRate,
		autoConfirmDelay: autoConfirmDelay,
		confirmTimers:    make(map[string]*time.Timer),
	}
}

// Load resolves the cart, orders and counter slots. Corrupt slots are
// deleted and replaced by their empty defaults; a failing key listing
// wipes all three slots. Load never returns an error to callers.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.ListKeys(ctx); err != nil {
		s.log.Error("STORE", fmt.Sprintf("Key listing failed, wiping cart slots: %v", err))
		if err := s.store.RemoveMany(ctx, cartSlot, ordersSlot, counterSlot); err != nil {
			s.log.Error("STORE", fmt.Sprintf("Failed to wipe cart slots: %v", err))
		}
		s.cart = nil
		s.orders = nil
		s.orderCounter = 0
		s.loaded = true
		return
	}

	var (
		wg         sync.WaitGroup
		rawCart    string
		rawOrders  string
		rawCounter string
		errCart    error
		errOrders  error
		errCounter error
	)
	wg.Add(3)
	go func() { defer wg.Done(); rawCart, errCart = s.store.Get(ctx, cartSlot) }()
	go func() { defer wg.Done(); rawOrders, errOrders = s.store.Get(ctx, ordersSlot) }()
	go func() { defer wg.Done(); rawCounter, errCounter = s.store.Get(ctx, counterSlot) }()
	wg.Wait()

	s.cart = loadSlot[[]models.CartLine](ctx, s, cartSlot, rawCart, errCart)
	s.orders = loadSlot[[]models.Order](ctx, s, ordersSlot, rawOrders, errOrders)
	counter := loadSlot[*int](ctx, s, counterSlot, rawCounter, errCounter)
	if counter != nil {
		s.orderCounter = *counter
	} else {
		s.orderCounter = 0
	}

	s.log.LogCart("LOAD", fmt.Sprintf("%d lines, %d orders, counter=%d", len(s.cart), len(s.orders), s.orderCounter))
	s.loaded = true
}

// loadSlot parses one slot's raw value. Absent slots yield the zero
// value; unreadable or unparseable slots are removed from storage and
// yield the zero value as well.
func loadSlot[T any](ctx context.Context, s *Service, slot, raw string, readErr error) T {
	var zero T
	if readErr == kv.ErrNotFound {
		return zero
	}
	if readErr != nil {
		s.log.Error("STORE", fmt.Sprintf("Failed to read %s slot, discarding: %v", slot, readErr))
		if err := s.store.Remove(ctx, slot); err != nil {
			s.log.Error("STORE", fmt.Sprintf("Failed to remove %s slot: %v", slot, err))
		}
		return zero
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.log.Error("STORE", fmt.Sprintf("Corrupt %s slot, discarding: %v", slot, err))
		if err := s.store.Remove(ctx, slot); err != nil {
			s.log.Error("STORE", fmt.Sprintf("Failed to remove %s slot: %v", slot, err))
		}
		return zero
	}
	return value
}

// Loaded reports whether Load has completed.
func (s *Service) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// persist writes one slot, logging on failure. In-memory state stays
// authoritative for the session even when the write is lost.
func (s *Service) persist(ctx context.Context, slot string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Error("STORE", fmt.Sprintf("Failed to serialize %s slot: %v", slot, err))
		return
	}
	if err := s.store.Set(ctx, slot, string(data)); err != nil {
		s.log.Error("STORE", fmt.Sprintf("Failed to save %s slot: %v", slot, err))
	}
}

// ---------------- CART ----------------

// AddToCart increments the quantity of an existing (product, size) line
// or appends a new line with quantity 1.
func (s *Service) AddToCart(ctx context.Context, productID, name string, size models.SalsaSize, unitPrice float64, imageRef string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ProductID == productID && s.cart[i].Size == size {
			s.cart[i].Quantity++
			s.persist(ctx, cartSlot, s.cart)
			return
		}
	}

	s.cart = append(s.cart, models.CartLine{
		ProductID: productID,
		Name:      name,
		Size:      size,
		UnitPrice: unitPrice,
		Quantity:  1,
		ImageRef:  imageRef,
	})
	s.persist(ctx, cartSlot, s.cart)
}

// RemoveFromCart deletes the matching line. Absent lines are a no-op.
func (s *Service) RemoveFromCart(ctx context.Context, productID string, size models.SalsaSize) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLineLocked(ctx, productID, size)
}

func (s *Service) removeLineLocked(ctx context.Context, productID string, size models.SalsaSize) {
	filtered := s.cart[:0]
	for _, line := range s.cart {
		if !(line.ProductID == productID && line.Size == size) {
			filtered = append(filtered, line)
		}
	}
	s.cart = filtered
	s.persist(ctx, cartSlot, s.cart)
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less
// removes the line, same as RemoveFromCart.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, size models.SalsaSize, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLineLocked(ctx, productID, size)
		return
	}
	for i := range s.cart {
		if s.cart[i].ProductID == productID && s.cart[i].Size == size {
			s.cart[i].Quantity = quantity
			break
		}
	}
	s.persist(ctx, cartSlot, s.cart)
}

func (s *Service) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.persist(ctx, cartSlot, []models.CartLine{})
}

// Cart returns a copy of the active cart lines.
func (s *Service) Cart() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLine, len(s.cart))
	copy(out, s.cart)
	return out
}

// ---------------- DERIVED TOTALS ----------------

func (s *Service) subtotalLocked() float64 {
	var sum float64
	for _, line := range s.cart {
		sum += line.UnitPrice * float64(line.Quantity)
	}
	return sum
}

func (s *Service) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

func (s *Service) Tax() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked() * s.taxRate
}

func (s *Service) Tip() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked() * (s.tipPercentage / 100)
}

func (s *Service) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *Service) totalLocked() float64 {
	subtotal := s.subtotalLocked()
	return subtotal + subtotal*s.taxRate + subtotal*(s.tipPercentage/100)
}

func (s *Service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, line := range s.cart {
		count += line.Quantity
	}
	return count
}

// TipPercentage is UI-held tip state, conventionally 0-30.
func (s *Service) TipPercentage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tipPercentage
}

func (s *Service) SetTipPercentage(pct float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tipPercentage = pct
}

// ---------------- ORDERS ----------------

// PlaceOrder snapshots the cart into a new pending order, assigns the
// next sequence id, persists, clears the cart and schedules the
// simulated confirmation. Callers validate customer fields beforehand.
func (s *Service) PlaceOrder(ctx context.Context, name, email, phone, notes string) models.Order {
	s.mu.Lock()

	s.orderCounter++
	orderID := fmt.Sprintf("%03d", s.orderCounter)

	lines := make([]models.CartLine, len(s.cart))
	copy(lines, s.cart)

	now := s.clock.Now()
	order := models.Order{
		ID:        orderID,
		LineItems: lines,
		Total:     roundToCents(s.totalLocked()),
		Status:    models.StatusPending,
		Customer: models.Customer{
			Name:  name,
			Email: email,
			Phone: phone,
		},
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.orders = append([]models.Order{order}, s.orders...)
	s.persist(ctx, counterSlot, s.orderCounter)
	s.persist(ctx, ordersSlot, s.orders)

	s.cart = nil
	s.persist(ctx, cartSlot, []models.CartLine{})

	// Simulated payment confirmation. The timer handle is kept so
	// order deletion can cancel it; the callback re-checks existence
	// and status at fire time regardless.
	s.confirmTimers[orderID] = time.AfterFunc(s.autoConfirmDelay, func() {
		s.autoConfirm(orderID)
	})

	s.log.LogOrder("PLACE", orderID, fmt.Sprintf("total=%.2f lines=%d", order.Total, len(order.LineItems)))
	s.mu.Unlock()

	if err := s.pub.PublishOrderPlaced(order); err != nil {
		s.log.Error("KAFKA", fmt.Sprintf("Failed to publish order placed %s: %v", orderID, err))
	}
	return order
}

func roundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Service) autoConfirm(orderID string) {
	ctx := context.Background()

	s.mu.Lock()
	delete(s.confirmTimers, orderID)
	idx := s.findOrderLocked(orderID)
	if idx < 0 {
		// Deleted before the confirmation fired.
		s.mu.Unlock()
		return
	}
	if s.orders[idx].Status != models.StatusPending {
		s.mu.Unlock()
		return
	}
	s.orders[idx].Status = models.StatusConfirmed
	s.orders[idx].UpdatedAt = s.clock.Now()
	order := s.orders[idx]
	s.persist(ctx, ordersSlot, s.orders)
	s.log.LogOrder("CONFIRM", orderID, "auto-confirmed")
	s.mu.Unlock()

	if err := s.pub.PublishOrderStatus(order); err != nil {
		s.log.Error("KAFKA", fmt.Sprintf("Failed to publish order status %s: %v", orderID, err))
	}
}

func (s *Service) findOrderLocked(orderID string) int {
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			return i
		}
	}
	return -1
}

// Orders returns a copy of the order ledger, newest first.
func (s *Service) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Order returns the order with the given id.
func (s *Service) Order(orderID string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findOrderLocked(orderID)
	if idx < 0 {
		return models.Order{}, false
	}
	return s.orders[idx], true
}

// UpdateOrderStatus moves an order through the status machine. Unknown
// ids are a silent no-op; transitions outside the table are rejected
// with models.ErrInvalidTransition.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	s.mu.Lock()

	idx := s.findOrderLocked(orderID)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	if !s.orders[idx].Status.CanTransitionTo(status) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, s.orders[idx].Status, status)
	}

	if s.orders[idx].Status == models.StatusPending {
		s.stopConfirmTimerLocked(orderID)
	}

	s.orders[idx].Status = status
	s.orders[idx].UpdatedAt = s.clock.Now()
	order := s.orders[idx]
	s.persist(ctx, ordersSlot, s.orders)
	s.log.LogOrder("STATUS", orderID, string(status))
	s.mu.Unlock()

	if err := s.pub.PublishOrderStatus(order); err != nil {
		s.log.Error("KAFKA", fmt.Sprintf("Failed to publish order status %s: %v", orderID, err))
	}
	return nil
}

// DeleteOrder removes an order from the ledger. The sequence counter is
// never decremented, so the id is not reused.
func (s *Service) DeleteOrder(ctx context.Context, orderID string) {
	s.mu.Lock()

	s.stopConfirmTimerLocked(orderID)

	filtered := s.orders[:0]
	removed := false
	for _, order := range s.orders {
		if order.ID == orderID {
			removed = true
			continue
		}
		filtered = append(filtered, order)
	}
	s.orders = filtered
	if removed {
		s.persist(ctx, ordersSlot, s.orders)
		s.log.LogOrder("DELETE", orderID, "removed from ledger")
	}
	s.mu.Unlock()

	if removed {
		if err := s.pub.PublishOrderDeleted(orderID); err != nil {
			s.log.Error("KAFKA", fmt.Sprintf("Failed to publish order deleted %s: %v", orderID, err))
		}
	}
}

func (s *Service) stopConfirmTimerLocked(orderID string) {
	if timer, ok := s.confirmTimers[orderID]; ok {
		timer.Stop()
		delete(s.confirmTimers, orderID)
	}
}
