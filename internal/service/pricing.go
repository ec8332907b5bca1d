package service

import (
	"time"

	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/metrics"
)

// DefaultWholesaleThreshold is the minimum line quantity for the
// wholesale tier when no threshold is configured.
const DefaultWholesaleThreshold = 5

// ModeReason explains why a requested price mode resolved the way it did.
type ModeReason string

const (
	// ReasonRequested means the requested mode was honored as-is.
	ReasonRequested ModeReason = "requested"
	// ReasonNoWholesalePrice means wholesale was requested but the
	// product defines no wholesale price.
	ReasonNoWholesalePrice ModeReason = "no_wholesale_price"
	// ReasonBelowThreshold means wholesale was requested but the
	// quantity is below the configured minimum.
	ReasonBelowThreshold ModeReason = "below_threshold"
)

// Pricer resolves the authoritative unit price for a product under a
// requested price mode and quantity. All operations are total functions
// over valid inputs; ineligible requests degrade silently to retail
// rather than erroring.
type Pricer interface {
	ResolveMode(product *model.Product, requested model.PriceMode, quantity int) (model.PriceMode, ModeReason)
	PriceFor(product *model.Product, requested model.PriceMode, quantity int) float64
	Threshold() int
}

// PricerOption configures a PricingService.
type PricerOption func(*PricingService)

// PricingService implements Pricer with a configurable wholesale
// quantity threshold.
type PricingService struct {
	threshold int
	clock     func() time.Time
}

// NewPricingService creates a PricingService with the given options.
func NewPricingService(opts ...PricerOption) *PricingService {
	s := &PricingService{
		threshold: DefaultWholesaleThreshold,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithWholesaleThreshold sets the minimum quantity for wholesale
// eligibility. Values below 1 are ignored.
func WithWholesaleThreshold(threshold int) PricerOption {
	return func(s *PricingService) {
		if threshold >= 1 {
			s.threshold = threshold
		}
	}
}

// WithClock overrides the time source used for promotion windows.
func WithClock(clock func() time.Time) PricerOption {
	return func(s *PricingService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Threshold returns the wholesale eligibility quantity.
func (s *PricingService) Threshold() int {
	return s.threshold
}

// ResolveMode decides the effective price tier for a line. Wholesale is
// honored only when it was requested, the quantity meets the threshold,
// and the product defines a wholesale price. Every other case falls
// back to retail with a reason, never an error.
func (s *PricingService) ResolveMode(product *model.Product, requested model.PriceMode, quantity int) (model.PriceMode, ModeReason) {
	if requested != model.PriceModeWholesale {
		return model.PriceModeRetail, ReasonRequested
	}
	if product == nil || !product.HasWholesalePrice() {
		return model.PriceModeRetail, ReasonNoWholesalePrice
	}
	if quantity < s.threshold {
		return model.PriceModeRetail, ReasonBelowThreshold
	}
	return model.PriceModeWholesale, ReasonRequested
}

// PriceFor returns the unit price for the product under the resolved
// mode: base price minus the first matching discount promotion, floored
// at zero. A nil product prices at zero.
func (s *PricingService) PriceFor(product *model.Product, requested model.PriceMode, quantity int) float64 {
	if product == nil {
		return 0
	}

	mode, _ := s.ResolveMode(product, requested, quantity)
	base := product.RetailPrice
	if mode == model.PriceModeWholesale {
		base = *product.WholesalePrice
	}

	price := base - s.discountFor(product.Promotions, base)
	if price < 0 {
		price = 0
	}

	metrics.RecordPriceResolution(string(mode))
	return price
}

// discountFor returns the value of the first active discount promotion.
// First match wins; promotions are never cumulative.
func (s *PricingService) discountFor(promotions []model.Promotion, base float64) float64 {
	now := s.clock()
	for _, p := range promotions {
		if !p.IsDiscount() || !p.ActiveAt(now) {
			continue
		}
		if p.Kind == model.PromotionPercentage {
			return base * p.Value / 100
		}
		return p.Value
	}
	return 0
}
