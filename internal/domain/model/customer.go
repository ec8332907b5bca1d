package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer represents a registered buyer. Email is optional; walk-in
// sales carry no customer at all.
type Customer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"nome" json:"nome"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string             `bson:"telefone" json:"telefone"`
	Address     string             `bson:"endereco" json:"endereco"`
	Preferences map[string]string  `bson:"preferencias,omitempty" json:"preferencias,omitempty"`
	Notes       string             `bson:"observacoes,omitempty" json:"observacoes,omitempty"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
