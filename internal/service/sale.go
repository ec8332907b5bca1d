package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/metrics"
	"github.com/varejo/pos-service/internal/repository"
)

var (
	// ErrSaleNotFound is returned when a sale does not exist.
	ErrSaleNotFound = errors.New("sale not found")
	// ErrSaleNotCancellable is returned when cancelling a sale that is
	// not in the completed state.
	ErrSaleNotCancellable = errors.New("sale cannot be cancelled")
	// ErrUnknownPaymentMethod is returned for a payment method outside
	// the fixed translation table.
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	// ErrUnknownPaymentType is returned for a payment type outside the
	// fixed translation table.
	ErrUnknownPaymentType = errors.New("unknown payment type")
)

// paymentMethodTokens maps display-locale payment methods to canonical
// wire tokens. The table is a fixed enumeration; canonical tokens map
// to themselves so already-translated input passes through.
var paymentMethodTokens = map[string]string{
	"dinheiro":      model.PaymentMethodCash,
	"cartão":        model.PaymentMethodCard,
	"cartao":        model.PaymentMethodCard,
	"transferencia": model.PaymentMethodTransfer,
	"pix":           model.PaymentMethodPix,
}

// paymentTypeTokens maps display-locale payment types to canonical
// wire tokens.
var paymentTypeTokens = map[string]string{
	"à vista": model.PaymentTypeUpfront,
	"avista":  model.PaymentTypeUpfront,
	"à prazo": model.PaymentTypeInstallment,
	"aprazo":  model.PaymentTypeInstallment,
}

// TranslatePaymentMethod resolves a display-locale payment method to
// its canonical wire token.
func TranslatePaymentMethod(method string) (string, error) {
	if token, ok := paymentMethodTokens[method]; ok {
		return token, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, method)
}

// TranslatePaymentType resolves a display-locale payment type to its
// canonical wire token.
func TranslatePaymentType(paymentType string) (string, error) {
	if token, ok := paymentTypeTokens[paymentType]; ok {
		return token, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPaymentType, paymentType)
}

// FinalizeSaleInput carries everything needed to complete a checkout.
type FinalizeSaleInput struct {
	CustomerID    primitive.ObjectID
	SellerID      primitive.ObjectID
	Items         []model.SaleItem
	PaymentMethod string
	PaymentType   string
	Installments  int
}

// SaleService finalizes, lists and cancels sales.
type SaleService interface {
	Finalize(ctx context.Context, input FinalizeSaleInput) (*model.Sale, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Sale, error)
	List(ctx context.Context, filter repository.SaleFilter, limit, skip int64) ([]*model.Sale, error)
	Cancel(ctx context.Context, id primitive.ObjectID) (*model.Sale, error)
}

// SaleServiceImpl implements SaleService.
type SaleServiceImpl struct {
	repo        repository.SaleRepositoryInterface
	productRepo repository.ProductRepositoryInterface
	carts       CartStore
}

// NewSaleService creates a new sale service. The cart store is
// optional; when present the seller's live cart is cleared after a
// successful finalization.
func NewSaleService(repo repository.SaleRepositoryInterface, productRepo repository.ProductRepositoryInterface, carts CartStore) *SaleServiceImpl {
	return &SaleServiceImpl{
		repo:        repo,
		productRepo: productRepo,
		carts:       carts,
	}
}

// Finalize translates payment tokens, decrements stock per item,
// persists the sale as completed, and clears the seller's live cart.
// When a stock decrement fails midway, earlier decrements are restored
// before returning.
func (s *SaleServiceImpl) Finalize(ctx context.Context, input FinalizeSaleInput) (*model.Sale, error) {
	if s.repo == nil || s.productRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	method, err := TranslatePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentType, err := TranslatePaymentType(input.PaymentType)
	if err != nil {
		return nil, err
	}

	installments := input.Installments
	if paymentType == model.PaymentTypeUpfront || installments < 1 {
		installments = 1
	}

	decremented := make([]model.SaleItem, 0, len(input.Items))
	for _, item := range input.Items {
		if err := s.productRepo.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			s.restoreStock(ctx, decremented)
			return nil, fmt.Errorf("adjust stock for %s: %w", item.ProductID.Hex(), err)
		}
		decremented = append(decremented, item)
	}

	var total float64
	for _, item := range input.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}

	sale := &model.Sale{
		CustomerID:    input.CustomerID,
		SellerID:      input.SellerID,
		Date:          time.Now(),
		Items:         input.Items,
		Total:         total,
		Status:        model.SaleStatusCompleted,
		PaymentMethod: method,
		PaymentType:   paymentType,
		Installments:  installments,
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		s.restoreStock(ctx, decremented)
		return nil, err
	}

	if s.carts != nil {
		s.carts.Clear(input.SellerID.Hex())
	}

	metrics.RecordSale(method, sale.Status, total)
	return sale, nil
}

// restoreStock undoes stock decrements after a failed finalization.
func (s *SaleServiceImpl) restoreStock(ctx context.Context, items []model.SaleItem) {
	for _, item := range items {
		_ = s.productRepo.AdjustStock(ctx, item.ProductID, item.Quantity)
	}
}

// GetByID returns a sale or ErrSaleNotFound.
func (s *SaleServiceImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Sale, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

// List retrieves sales matching the filter.
func (s *SaleServiceImpl) List(ctx context.Context, filter repository.SaleFilter, limit, skip int64) ([]*model.Sale, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.List(ctx, filter, limit, skip)
}

// Cancel transitions a completed sale to cancelled and restores the
// sold stock.
func (s *SaleServiceImpl) Cancel(ctx context.Context, id primitive.ObjectID) (*model.Sale, error) {
	if s.repo == nil || s.productRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	if sale.Status != model.SaleStatusCompleted {
		return nil, ErrSaleNotCancellable
	}

	if err := s.repo.UpdateStatus(ctx, id, model.SaleStatusCancelled); err != nil {
		return nil, err
	}
	for _, item := range sale.Items {
		_ = s.productRepo.AdjustStock(ctx, item.ProductID, item.Quantity)
	}

	sale.Status = model.SaleStatusCancelled
	metrics.RecordSale(sale.PaymentMethod, sale.Status, sale.Total)
	return sale, nil
}
