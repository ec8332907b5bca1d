package service

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/dto"
	"github.com/varejo/pos-service/internal/repository"
)

// SalesMetricsService aggregates sales for the reporting endpoints.
type SalesMetricsService interface {
	Summary(ctx context.Context, from, to time.Time) (*dto.SalesMetricsResponse, error)
	SellerTotals(ctx context.Context, from, to time.Time) ([]dto.SellerMetricsResponse, error)
	SellerSummary(ctx context.Context, sellerID primitive.ObjectID, from, to time.Time) (*dto.SellerMetricsResponse, error)
	MonthlyTotals(ctx context.Context, year int) ([]dto.MonthlySalesResponse, error)
}

// SalesMetricsServiceImpl implements SalesMetricsService on top of the
// sale repository's aggregation pipelines.
type SalesMetricsServiceImpl struct {
	repo repository.SaleRepositoryInterface
}

// NewSalesMetricsService creates a new sales metrics service.
func NewSalesMetricsService(repo repository.SaleRepositoryInterface) *SalesMetricsServiceImpl {
	return &SalesMetricsServiceImpl{repo: repo}
}

// Summary returns range totals plus the per-day sales average. The
// daily average divides by the number of calendar days in the range,
// minimum one.
func (s *SalesMetricsServiceImpl) Summary(ctx context.Context, from, to time.Time) (*dto.SalesMetricsResponse, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	summary, err := s.repo.Summary(ctx, repository.SaleFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	days := math.Ceil(to.Sub(from).Hours() / 24)
	if days < 1 {
		days = 1
	}

	return &dto.SalesMetricsResponse{
		SaleCount:    summary.SaleCount,
		ItemsSold:    summary.ItemsSold,
		TotalProfit:  summary.Profit,
		DailyAverage: summary.Amount / days,
	}, nil
}

// SellerTotals returns per-seller counts and amounts for the range.
func (s *SalesMetricsServiceImpl) SellerTotals(ctx context.Context, from, to time.Time) ([]dto.SellerMetricsResponse, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	totals, err := s.repo.SellerTotals(ctx, repository.SaleFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	out := make([]dto.SellerMetricsResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.SellerMetricsResponse{
			SellerID:   t.SellerID.Hex(),
			SellerName: t.SellerName,
			SaleCount:  t.SaleCount,
			Amount:     t.Amount,
		})
	}
	return out, nil
}

// SellerSummary returns one seller's totals for the range.
func (s *SalesMetricsServiceImpl) SellerSummary(ctx context.Context, sellerID primitive.ObjectID, from, to time.Time) (*dto.SellerMetricsResponse, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	summary, err := s.repo.Summary(ctx, repository.SaleFilter{From: &from, To: &to, SellerID: &sellerID})
	if err != nil {
		return nil, err
	}

	return &dto.SellerMetricsResponse{
		SellerID:  sellerID.Hex(),
		SaleCount: summary.SaleCount,
		Amount:    summary.Amount,
	}, nil
}

// MonthlyTotals returns month-by-month totals for the given year.
func (s *SalesMetricsServiceImpl) MonthlyTotals(ctx context.Context, year int) ([]dto.MonthlySalesResponse, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	totals, err := s.repo.MonthlyTotals(ctx, year)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MonthlySalesResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.MonthlySalesResponse{
			Month:     t.Month,
			SaleCount: t.SaleCount,
			Amount:    t.Amount,
		})
	}
	return out, nil
}
