// Package repository provides sales data access layer.
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

// SaleFilter narrows sale listings and aggregations.
type SaleFilter struct {
	From     *time.Time
	To       *time.Time
	SellerID *primitive.ObjectID
	Status   string
}

// SalesSummary is the raw aggregation output for the metrics endpoints.
type SalesSummary struct {
	SaleCount int64   `bson:"total_vendas"`
	ItemsSold int64   `bson:"total_itens_vendidos"`
	Amount    float64 `bson:"valor_total"`
	Profit    float64 `bson:"lucro_total"`
}

// MonthlyTotal is one month's aggregated sales.
type MonthlyTotal struct {
	Month     string  `bson:"_id"`
	SaleCount int64   `bson:"total_vendas"`
	Amount    float64 `bson:"valor_total"`
}

// SaleRepositoryInterface defines the interface for sale repository operations.
type SaleRepositoryInterface interface {
	Create(ctx context.Context, sale *model.Sale) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Sale, error)
	List(ctx context.Context, filter SaleFilter, limit, skip int64) ([]*model.Sale, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Summary(ctx context.Context, filter SaleFilter) (*SalesSummary, error)
	SellerTotals(ctx context.Context, filter SaleFilter) ([]model.SellerTotal, error)
	MonthlyTotals(ctx context.Context, year int) ([]MonthlyTotal, error)
}

// SaleRepository implements SaleRepositoryInterface using MongoDB.
type SaleRepository struct {
	collection *mongo.Collection
}

// NewSaleRepository creates a new sale repository.
func NewSaleRepository(db *mongo.Database) *SaleRepository {
	return &SaleRepository{
		collection: db.Collection("sales"),
	}
}

// matchStage builds the $match document for a filter. Cancelled sales
// are excluded from aggregations unless the filter asks for them.
func (f SaleFilter) matchStage(forMetrics bool) bson.M {
	match := bson.M{}
	if f.From != nil || f.To != nil {
		dateRange := bson.M{}
		if f.From != nil {
			dateRange["$gte"] = *f.From
		}
		if f.To != nil {
			dateRange["$lte"] = *f.To
		}
		match["data"] = dateRange
	}
	if f.SellerID != nil {
		match["vendedor_id"] = *f.SellerID
	}
	if f.Status != "" {
		match["status"] = f.Status
	} else if forMetrics {
		match["status"] = model.SaleStatusCompleted
	}
	return match
}

// Create inserts a finalized sale.
func (r *SaleRepository) Create(ctx context.Context, sale *model.Sale) error {
	sale.CreatedAt = time.Now()
	sale.UpdatedAt = time.Now()
	if sale.Date.IsZero() {
		sale.Date = sale.CreatedAt
	}
	if sale.ID.IsZero() {
		sale.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, sale)
	return err
}

// FindByID finds a sale by ID.
func (r *SaleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Sale, error) {
	var sale model.Sale
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sale)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// List retrieves sales matching the filter, newest first, paginated.
func (r *SaleRepository) List(ctx context.Context, filter SaleFilter, limit, skip int64) ([]*model.Sale, error) {
	opts := options.Find().SetLimit(limit).SetSkip(skip).SetSort(bson.M{"data": -1})
	cursor, err := r.collection.Find(ctx, filter.matchStage(false), opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var sales []*model.Sale
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// UpdateStatus transitions a sale's status.
func (r *SaleRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	return err
}

// Summary aggregates completed sales in the filter window: sale count,
// items sold, gross amount, and profit (unit price minus the product's
// purchase price, per item sold).
func (r *SaleRepository) Summary(ctx context.Context, filter SaleFilter) (*SalesSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter.matchStage(true)}},
		{{Key: "$unwind", Value: "$itens"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "itens.produto_id",
			"foreignField": "_id",
			"as":           "produto",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"preco_compra": bson.M{"$ifNull": bson.A{
				bson.M{"$arrayElemAt": bson.A{"$produto.preco_compra", 0}}, 0,
			}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":                  nil,
			"vendas":               bson.M{"$addToSet": "$_id"},
			"total_itens_vendidos": bson.M{"$sum": "$itens.quantidade"},
			"valor_total": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$itens.preco_unitario", "$itens.quantidade"},
			}},
			"lucro_total": bson.M{"$sum": bson.M{
				"$multiply": bson.A{
					bson.M{"$subtract": bson.A{"$itens.preco_unitario", "$preco_compra"}},
					"$itens.quantidade",
				},
			}},
		}}},
		{{Key: "$addFields", Value: bson.M{"total_vendas": bson.M{"$size": "$vendas"}}}},
		{{Key: "$project", Value: bson.M{"vendas": 0}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var results []SalesSummary
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &SalesSummary{}, nil
	}
	return &results[0], nil
}

// SellerTotals aggregates completed sales per seller in the window.
func (r *SaleRepository) SellerTotals(ctx context.Context, filter SaleFilter) ([]model.SellerTotal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter.matchStage(true)}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$vendedor_id",
			"total_vendas": bson.M{"$sum": 1},
			"valor_total":  bson.M{"$sum": "$total"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "vendedor",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"vendedor_id": "$_id",
			"vendedor_nome": bson.M{"$ifNull": bson.A{
				bson.M{"$arrayElemAt": bson.A{"$vendedor.name", 0}}, "",
			}},
		}}},
		{{Key: "$project", Value: bson.M{"vendedor": 0}}},
		{{Key: "$sort", Value: bson.M{"valor_total": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var totals []model.SellerTotal
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, err
	}
	return totals, nil
}

// MonthlyTotals aggregates completed sales per calendar month of the
// given year, for charting.
func (r *SaleRepository) MonthlyTotals(ctx context.Context, year int) ([]MonthlyTotal, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(1, 0, 0)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status": model.SaleStatusCompleted,
			"data":   bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m",
				"date":   "$data",
			}},
			"total_vendas": bson.M{"$sum": 1},
			"valor_total":  bson.M{"$sum": "$total"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var totals []MonthlyTotal
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, err
	}
	return totals, nil
}
