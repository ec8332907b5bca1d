// Package repository provides daily closing data access layer.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/varejo/pos-service/internal/domain/model"
)

// ClosingRepositoryInterface defines the interface for daily closing repository operations.
type ClosingRepositoryInterface interface {
	Upsert(ctx context.Context, closing *model.DailyClosing) error
	FindByDate(ctx context.Context, date string) (*model.DailyClosing, error)
	List(ctx context.Context, limit int64) ([]*model.DailyClosing, error)
}

// ClosingRepository implements ClosingRepositoryInterface using MongoDB.
type ClosingRepository struct {
	collection *mongo.Collection
}

// NewClosingRepository creates a new closing repository.
func NewClosingRepository(db *mongo.Database) *ClosingRepository {
	return &ClosingRepository{
		collection: db.Collection("closings"),
	}
}

// Upsert stores the closing for its calendar day, replacing any earlier
// run for the same day. Re-running a closing is idempotent.
func (r *ClosingRepository) Upsert(ctx context.Context, closing *model.DailyClosing) error {
	closing.ClosedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"date":                 closing.Date,
		"total_vendas":         closing.SaleCount,
		"total_itens_vendidos": closing.ItemsSold,
		"valor_total":          closing.Amount,
		"por_vendedor":         closing.BySellers,
		"closed_at":            closing.ClosedAt,
		"emailed_to":           closing.EmailedTo,
	}}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"date": closing.Date}, update, opts)
	return err
}

// FindByDate finds a closing by its YYYY-MM-DD date.
func (r *ClosingRepository) FindByDate(ctx context.Context, date string) (*model.DailyClosing, error) {
	var closing model.DailyClosing
	err := r.collection.FindOne(ctx, bson.M{"date": date}).Decode(&closing)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &closing, nil
}

// List retrieves closings, newest first.
func (r *ClosingRepository) List(ctx context.Context, limit int64) ([]*model.DailyClosing, error) {
	opts := options.Find().SetLimit(limit).SetSort(bson.M{"date": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var closings []*model.DailyClosing
	if err := cursor.All(ctx, &closings); err != nil {
		return nil, err
	}
	return closings, nil
}
