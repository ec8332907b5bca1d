// Package repository provides product data access layer.
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/varejo/pos-service/internal/domain/model"
)

// ErrInsufficientStock is returned when a stock decrement would go negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductRepositoryInterface defines the interface for product repository operations.
type ProductRepositoryInterface interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	FindByCode(ctx context.Context, code string) (*model.Product, error)
	List(ctx context.Context, search string, categoryID *primitive.ObjectID, limit, skip int64) ([]*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetStock(ctx context.Context, id primitive.ObjectID, quantity int) error
	AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error
	CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
}

// ProductRepository implements ProductRepositoryInterface using MongoDB.
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	product.Active = true
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, product)
	return err
}

// FindByID finds an active product by ID.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	var product model.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "active": true}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByCode finds an active product by barcode.
func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	var product model.Product
	err := r.collection.FindOne(ctx, bson.M{"codigo": code, "active": true}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List retrieves active products with optional name/barcode search and
// category filter, paginated.
func (r *ProductRepository) List(ctx context.Context, search string, categoryID *primitive.ObjectID, limit, skip int64) ([]*model.Product, error) {
	filter := bson.M{"active": true}
	if search != "" {
		filter["$or"] = bson.A{
			bson.M{"nome": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"codigo": search},
		}
	}
	if categoryID != nil {
		filter["categoria_id"] = *categoryID
	}

	opts := options.Find().SetLimit(limit).SetSkip(skip).SetSort(bson.M{"nome": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var products []*model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Update replaces the mutable fields of an existing product.
func (r *ProductRepository) Update(ctx context.Context, product *model.Product) error {
	product.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": product.ID},
		bson.M{"$set": product},
	)
	return err
}

// Delete soft deletes a product by setting active to false.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	return err
}

// SetStock sets the absolute stock quantity.
func (r *ProductRepository) SetStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"quantidade_estoque": quantity, "updated_at": time.Now()}},
	)
	return err
}

// AdjustStock changes the stock quantity by delta. A negative delta
// only applies when enough stock remains; otherwise ErrInsufficientStock.
func (r *ProductRepository) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["quantidade_estoque"] = bson.M{"$gte": -delta}
	}

	result, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{
			"$inc": bson.M{"quantidade_estoque": delta},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 && delta < 0 {
		return ErrInsufficientStock
	}
	return nil
}

// CountByCategory counts active products referencing a category.
func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"categoria_id": categoryID, "active": true})
}
