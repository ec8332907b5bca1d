// Package repository provides saved cart data access layer.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/varejo/pos-service/internal/domain/model"
)

// CartRepositoryInterface defines the interface for saved cart repository operations.
type CartRepositoryInterface interface {
	Create(ctx context.Context, cart *model.SavedCart) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.SavedCart, error)
	ListBySeller(ctx context.Context, sellerID primitive.ObjectID, limit int64) ([]*model.SavedCart, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CartRepository implements CartRepositoryInterface using MongoDB.
type CartRepository struct {
	collection *mongo.Collection
}

// NewCartRepository creates a new saved cart repository.
func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{
		collection: db.Collection("carts"),
	}
}

// Create persists a saved cart.
func (r *CartRepository) Create(ctx context.Context, cart *model.SavedCart) error {
	cart.CreatedAt = time.Now()
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, cart)
	return err
}

// FindByID finds a saved cart by ID.
func (r *CartRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.SavedCart, error) {
	var cart model.SavedCart
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ListBySeller retrieves a seller's saved carts, newest first.
func (r *CartRepository) ListBySeller(ctx context.Context, sellerID primitive.ObjectID, limit int64) ([]*model.SavedCart, error) {
	opts := options.Find().SetLimit(limit).SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"vendedor_id": sellerID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var carts []*model.SavedCart
	if err := cursor.All(ctx, &carts); err != nil {
		return nil, err
	}
	return carts, nil
}

// Delete removes a saved cart. Saved carts are transient working state,
// so this is a hard delete.
func (r *CartRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
