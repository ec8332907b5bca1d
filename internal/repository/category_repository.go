// Package repository provides category data access layer.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/varejo/pos-service/internal/domain/model"
)

// CategoryRepositoryInterface defines the interface for category repository operations.
type CategoryRepositoryInterface interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	ListWithCounts(ctx context.Context) ([]model.CategoryWithCount, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CategoryRepository implements CategoryRepositoryInterface using MongoDB.
type CategoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection("categories"),
	}
}

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	category.Active = true
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, category)
	return err
}

// FindByID finds an active category by ID.
func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error) {
	var category model.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "active": true}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName finds an active category by name.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	err := r.collection.FindOne(ctx, bson.M{"nome": name, "active": true}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListWithCounts returns all active categories annotated with the
// number of active products referencing each.
func (r *CategoryRepository) ListWithCounts(ctx context.Context) ([]model.CategoryWithCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"active": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "products",
			"let":  bson.M{"cat_id": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$categoria_id", "$$cat_id"}},
					bson.M{"$eq": bson.A{"$active", true}},
				}}}},
				bson.M{"$count": "count"},
			},
			"as": "product_counts",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"product_count": bson.M{"$ifNull": bson.A{
				bson.M{"$arrayElemAt": bson.A{"$product_counts.count", 0}}, 0,
			}},
		}}},
		{{Key: "$project", Value: bson.M{"product_counts": 0}}},
		{{Key: "$sort", Value: bson.M{"nome": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var categories []model.CategoryWithCount
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Update renames an existing category.
func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	category.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": category.ID},
		bson.M{"$set": bson.M{"nome": category.Name, "updated_at": category.UpdatedAt}},
	)
	return err
}

// Delete soft deletes a category by setting active to false.
func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	return err
}
