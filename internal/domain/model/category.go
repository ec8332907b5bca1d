package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups catalog products.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"nome" json:"nome"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// CategoryWithCount is a category annotated with how many active
// products reference it.
type CategoryWithCount struct {
	Category     `bson:",inline"`
	ProductCount int64 `bson:"product_count" json:"product_count"`
}
