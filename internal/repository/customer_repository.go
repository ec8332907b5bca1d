// Package repository provides customer data access layer.
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

// CustomerRepositoryInterface defines the interface for customer repository operations.
type CustomerRepositoryInterface interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Customer, error)
	List(ctx context.Context, search string, limit, skip int64) ([]*model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CustomerRepository implements CustomerRepositoryInterface using MongoDB.
type CustomerRepository struct {
	collection *mongo.Collection
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{
		collection: db.Collection("customers"),
	}
}

// Create inserts a new customer.
func (r *CustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()
	customer.Active = true
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, customer)
	return err
}

// FindByID finds an active customer by ID.
func (r *CustomerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Customer, error) {
	var customer model.Customer
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "active": true}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List retrieves active customers with optional name/phone search, paginated.
func (r *CustomerRepository) List(ctx context.Context, search string, limit, skip int64) ([]*model.Customer, error) {
	filter := bson.M{"active": true}
	if search != "" {
		filter["$or"] = bson.A{
			bson.M{"nome": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"telefone": bson.M{"$regex": search}},
		}
	}

	opts := options.Find().SetLimit(limit).SetSkip(skip).SetSort(bson.M{"nome": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var customers []*model.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// Update replaces the mutable fields of an existing customer.
func (r *CustomerRepository) Update(ctx context.Context, customer *model.Customer) error {
	customer.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": customer.ID},
		bson.M{"$set": customer},
	)
	return err
}

// Delete soft deletes a customer by setting active to false.
func (r *CustomerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	return err
}
