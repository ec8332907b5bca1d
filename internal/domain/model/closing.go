package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SellerTotal aggregates one seller's sales inside a closing period.
type SellerTotal struct {
	SellerID   primitive.ObjectID `bson:"vendedor_id" json:"vendedor_id"`
	SellerName string             `bson:"vendedor_nome" json:"vendedor_nome"`
	SaleCount  int64              `bson:"total_vendas" json:"total_vendas"`
	Amount     float64            `bson:"valor_total" json:"valor_total"`
}

// DailyClosing is the persisted end-of-day sales summary. Date is the
// local calendar day in YYYY-MM-DD form and is unique per closing.
type DailyClosing struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date       string             `bson:"date" json:"date"`
	SaleCount  int64              `bson:"total_vendas" json:"total_vendas"`
	ItemsSold  int64              `bson:"total_itens_vendidos" json:"total_itens_vendidos"`
	Amount     float64            `bson:"valor_total" json:"valor_total"`
	BySellers  []SellerTotal      `bson:"por_vendedor" json:"por_vendedor"`
	ClosedAt   time.Time          `bson:"closed_at" json:"closed_at"`
	EmailedTo  string             `bson:"emailed_to,omitempty" json:"emailed_to,omitempty"`
}
