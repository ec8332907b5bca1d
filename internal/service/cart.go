package service

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/model"
)

// CartStore owns the live carts, one per session. A cart is exclusively
// owned by its session; the store serializes access so concurrent HTTP
// requests for the same session never interleave a mutation.
type CartStore interface {
	Get(userID string) model.Cart
	Add(userID string, product *model.Product)
	AdjustQuantity(userID string, productID primitive.ObjectID, delta int)
	SetMode(userID string, productID primitive.ObjectID, mode model.PriceMode) (model.PriceMode, ModeReason)
	Remove(userID string, productID primitive.ObjectID)
	SetDefaultMode(userID string, mode model.PriceMode)
	Replace(userID string, lines []model.CartLine)
	Total(userID string) float64
	ItemCount(userID string) int
	Clear(userID string)
	Drop(userID string)
}

// CartStoreImpl implements CartStore with an in-memory map guarded by a
// single mutex. Cart mutations are short and lock contention is bounded
// by the number of open registers, so sharding is not warranted here.
type CartStoreImpl struct {
	mu     sync.Mutex
	carts  map[string]*model.Cart
	pricer Pricer
}

// NewCartStore creates a CartStore backed by the given pricer.
func NewCartStore(pricer Pricer) *CartStoreImpl {
	return &CartStoreImpl{
		carts:  make(map[string]*model.Cart),
		pricer: pricer,
	}
}

// cart returns the session's cart, creating an empty one on first use.
// Callers must hold s.mu.
func (s *CartStoreImpl) cart(userID string) *model.Cart {
	c, ok := s.carts[userID]
	if !ok {
		c = &model.Cart{DefaultMode: model.PriceModeRetail}
		s.carts[userID] = c
	}
	return c
}

// snapshot rebuilds a product view from the line's copied price tiers
// so a line can be repriced without a catalog read.
func snapshot(l *model.CartLine) *model.Product {
	return &model.Product{
		RetailPrice:    l.RetailPrice,
		WholesalePrice: l.WholesalePrice,
		Promotions:     l.Promotions,
	}
}

// reprice recomputes the line's unit price and effective mode for its
// current quantity. An ineligible wholesale line is forced back to
// retail silently.
func (s *CartStoreImpl) reprice(l *model.CartLine) {
	mode, reason := s.pricer.ResolveMode(snapshot(l), l.Mode, l.Quantity)
	l.Mode = mode
	l.ModeReason = string(reason)
	l.UnitPrice = s.pricer.PriceFor(snapshot(l), mode, l.Quantity)
}

// Get returns a copy of the session's cart.
func (s *CartStoreImpl) Get(userID string) model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(userID)
	out := model.Cart{DefaultMode: c.DefaultMode}
	out.Lines = make([]model.CartLine, len(c.Lines))
	copy(out.Lines, c.Lines)
	return out
}

// Add inserts one unit of the product. An existing line increments its
// quantity and reprices under its current mode; a new line starts at
// quantity 1 under the cart's default mode with the product's
// promotions snapshotted.
func (s *CartStoreImpl) Add(userID string, product *model.Product) {
	if product == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(userID)
	if l := c.FindLine(product.ID); l != nil {
		l.Quantity++
		s.reprice(l)
		return
	}

	line := model.CartLine{
		ProductID:      product.ID,
		Name:           product.Name,
		Quantity:       1,
		Mode:           c.DefaultMode,
		Promotions:     append([]model.Promotion(nil), product.Promotions...),
		RetailPrice:    product.RetailPrice,
		WholesalePrice: product.WholesalePrice,
	}
	s.reprice(&line)
	c.Lines = append(c.Lines, line)
}

// AdjustQuantity changes a line's quantity by delta, clamped to a
// minimum of 1, then reprices. An unknown product is a no-op.
func (s *CartStoreImpl) AdjustQuantity(userID string, productID primitive.ObjectID, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.cart(userID).FindLine(productID)
	if l == nil {
		return
	}
	l.Quantity += delta
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	s.reprice(l)
}

// SetMode attempts to switch a line's price tier and returns the mode
// that actually took effect with its reason. Wholesale requests that
// fail eligibility revert to retail without error.
func (s *CartStoreImpl) SetMode(userID string, productID primitive.ObjectID, mode model.PriceMode) (model.PriceMode, ModeReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.cart(userID).FindLine(productID)
	if l == nil {
		return model.PriceModeRetail, ReasonRequested
	}

	resolved, reason := s.pricer.ResolveMode(snapshot(l), mode, l.Quantity)
	l.Mode = resolved
	l.ModeReason = string(reason)
	l.UnitPrice = s.pricer.PriceFor(snapshot(l), resolved, l.Quantity)
	return resolved, reason
}

// Remove deletes a line unconditionally.
func (s *CartStoreImpl) Remove(userID string, productID primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(userID)
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// SetDefaultMode sets the tier applied to newly added lines. Existing
// lines keep their own mode.
func (s *CartStoreImpl) SetDefaultMode(userID string, mode model.PriceMode) {
	if !mode.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(userID).DefaultMode = mode
}

// Replace swaps the session's lines wholesale, used when reopening a
// saved cart. Every line is repriced on the way in.
func (s *CartStoreImpl) Replace(userID string, lines []model.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(userID)
	c.Lines = make([]model.CartLine, len(lines))
	copy(c.Lines, lines)
	for i := range c.Lines {
		if c.Lines[i].Quantity < 1 {
			c.Lines[i].Quantity = 1
		}
		s.reprice(&c.Lines[i])
	}
}

// Total recomputes the cart total from current lines on every call.
func (s *CartStoreImpl) Total(userID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(userID).Total()
}

// ItemCount recomputes the quantity sum from current lines.
func (s *CartStoreImpl) ItemCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(userID).ItemCount()
}

// Clear empties the session's cart, keeping the session entry.
func (s *CartStoreImpl) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(userID)
	c.Lines = nil
}

// Drop removes the session entirely, used on logout.
func (s *CartStoreImpl) Drop(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
