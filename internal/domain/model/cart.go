package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one row in the live cart. Product name and promotions are
// copied at insertion time; later catalog edits do not flow back into
// the line except through quantity-triggered repricing.
type CartLine struct {
	ProductID  primitive.ObjectID `json:"produto_id"`
	Name       string             `json:"nome"`
	Quantity   int                `json:"quantidade"`
	UnitPrice  float64            `json:"preco_unitario"`
	Mode       PriceMode          `json:"modo"`
	ModeReason string             `json:"modo_motivo,omitempty"`
	Promotions []Promotion        `json:"-"`

	// Price tiers snapshotted from the product so the line can be
	// repriced without another catalog read.
	RetailPrice    float64  `json:"-"`
	WholesalePrice *float64 `json:"-"`
}

// Cart is the live, session-scoped cart: an ordered collection of
// lines, unique by product identity.
type Cart struct {
	Lines       []CartLine `json:"itens"`
	DefaultMode PriceMode  `json:"modo_padrao"`
}

// Total is the sum over lines of unit price times quantity. It is
// recomputed on every call; the cart never stores a total.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// ItemCount is the sum of line quantities, not the number of lines.
func (c *Cart) ItemCount() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// FindLine returns a pointer to the line for the given product, or nil.
func (c *Cart) FindLine(productID primitive.ObjectID) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// SavedCartItem is one persisted line of a saved cart.
type SavedCartItem struct {
	ProductID primitive.ObjectID `bson:"produto_id" json:"produto_id"`
	Name      string             `bson:"nome" json:"nome"`
	Quantity  int                `bson:"quantidade" json:"quantidade"`
	UnitPrice float64            `bson:"preco_unitario" json:"preco_unitario"`
	Mode      PriceMode          `bson:"modo" json:"modo"`
}

// SavedCart is a cart persisted for later reuse, distinct from the live
// in-session cart.
type SavedCart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID primitive.ObjectID `bson:"cliente_id,omitempty" json:"cliente_id,omitempty"`
	SellerID   primitive.ObjectID `bson:"vendedor_id" json:"vendedor_id"`
	Items      []SavedCartItem    `bson:"itens" json:"itens"`
	Total      float64            `bson:"total" json:"total"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
