// Package model defines the core domain entities for the POS service.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PriceMode identifies which price tier a cart line uses.
type PriceMode string

const (
	// PriceModeRetail is the default per-unit price tier.
	PriceModeRetail PriceMode = "varejo"
	// PriceModeWholesale is the bulk price tier, honored only when the
	// product defines a wholesale price and the line quantity meets the
	// configured minimum.
	PriceModeWholesale PriceMode = "atacado"
)

// Valid reports whether the mode is one of the two known tiers.
func (m PriceMode) Valid() bool {
	return m == PriceModeRetail || m == PriceModeWholesale
}

// Promotion kinds. Flat kinds subtract Value from the base price;
// the percentage kind subtracts Value percent of the base price.
const (
	PromotionDiscount   = "desconto"
	PromotionCoupon     = "coupon"
	PromotionPercentage = "percentual"
)

// Promotion is a discount rule attached to a product. At most one
// promotion applies per line, selected by first match.
type Promotion struct {
	Kind  string     `bson:"tipo" json:"tipo"`
	Value float64    `bson:"valor" json:"valor"`
	From  *time.Time `bson:"inicio,omitempty" json:"inicio,omitempty"`
	Until *time.Time `bson:"fim,omitempty" json:"fim,omitempty"`
}

// ActiveAt reports whether the promotion's validity window covers t.
// A promotion with no window is always active.
func (p Promotion) ActiveAt(t time.Time) bool {
	if p.From != nil && t.Before(*p.From) {
		return false
	}
	if p.Until != nil && t.After(*p.Until) {
		return false
	}
	return true
}

// IsDiscount reports whether the promotion kind participates in price
// resolution.
func (p Promotion) IsDiscount() bool {
	switch p.Kind {
	case PromotionDiscount, PromotionCoupon, PromotionPercentage:
		return true
	}
	return false
}

// Product represents a catalog item.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"nome" json:"nome"`
	Code           string             `bson:"codigo" json:"codigo"`
	RetailPrice    float64            `bson:"preco_venda" json:"preco_venda"`
	WholesalePrice *float64           `bson:"preco_atacado,omitempty" json:"preco_atacado,omitempty"`
	PurchasePrice  float64            `bson:"preco_compra" json:"preco_compra"`
	StockQuantity  int                `bson:"quantidade_estoque" json:"quantidade_estoque"`
	CategoryID     primitive.ObjectID `bson:"categoria_id,omitempty" json:"categoria_id,omitempty"`
	Promotions     []Promotion        `bson:"promocoes,omitempty" json:"promocoes,omitempty"`
	Active         bool               `bson:"active" json:"active"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// HasWholesalePrice reports whether a wholesale tier is defined.
func (p *Product) HasWholesalePrice() bool {
	return p.WholesalePrice != nil
}
