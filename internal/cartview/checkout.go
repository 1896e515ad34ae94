package cartview

import "sync"

// Checkout receives the cart total for the checkout page.
type Checkout interface {
	SetTotalBill(total float64)
}

// CheckoutState is a concurrency-safe Checkout that the checkout page reads.
type CheckoutState struct {
	mu    sync.RWMutex
	total float64
}

func (s *CheckoutState) SetTotalBill(total float64) {
	s.mu.Lock()
	s.total = total
	s.mu.Unlock()
}

func (s *CheckoutState) TotalBill() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}
