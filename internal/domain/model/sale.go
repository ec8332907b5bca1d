package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale statuses.
const (
	SaleStatusPending   = "pendente"
	SaleStatusCompleted = "concluida"
	SaleStatusCancelled = "cancelada"
)

// Canonical payment method wire tokens.
const (
	PaymentMethodCash     = "dinheiro"
	PaymentMethodCard     = "cartao"
	PaymentMethodTransfer = "transferencia"
	PaymentMethodPix      = "pix"
)

// Canonical payment type wire tokens.
const (
	PaymentTypeUpfront     = "avista"
	PaymentTypeInstallment = "aprazo"
)

// SaleItem is one line of a finalized sale.
type SaleItem struct {
	ProductID primitive.ObjectID `bson:"produto_id" json:"produto_id"`
	Name      string             `bson:"nome" json:"nome"`
	Quantity  int                `bson:"quantidade" json:"quantidade"`
	UnitPrice float64            `bson:"preco_unitario" json:"preco_unitario"`
	Mode      PriceMode          `bson:"modo" json:"modo"`
}

// Sale represents a finalized (or cancelled) checkout.
type Sale struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID    primitive.ObjectID `bson:"cliente_id,omitempty" json:"cliente_id,omitempty"`
	SellerID      primitive.ObjectID `bson:"vendedor_id" json:"vendedor_id"`
	Date          time.Time          `bson:"data" json:"data"`
	Items         []SaleItem         `bson:"itens" json:"itens"`
	Total         float64            `bson:"total" json:"total"`
	Status        string             `bson:"status" json:"status"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"`
	PaymentType   string             `bson:"payment_type" json:"payment_type"`
	Installments  int                `bson:"installments" json:"installments"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// ItemCount is the total quantity of items sold, across lines.
func (s *Sale) ItemCount() int {
	var n int
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}
