// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"time"

	"github.com/varejo/pos-service/internal/domain/model"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// PromotionPayload is an embedded promotion on a product request.
type PromotionPayload struct {
	Kind  string     `json:"tipo" binding:"required,oneof=desconto coupon percentual"`
	Value float64    `json:"valor" binding:"required,gt=0"`
	From  *time.Time `json:"inicio,omitempty"`
	Until *time.Time `json:"fim,omitempty"`
}

// ToModel converts the payload to a domain promotion.
func (p PromotionPayload) ToModel() model.Promotion {
	return model.Promotion{Kind: p.Kind, Value: p.Value, From: p.From, Until: p.Until}
}

// CreateProductRequest is the JSON body for creating a catalog product.
type CreateProductRequest struct {
	Name           string             `json:"nome" binding:"required,min=1,max=200"`
	Code           string             `json:"codigo" binding:"required,min=1,max=64"`
	RetailPrice    float64            `json:"preco_venda" binding:"required,gt=0"`
	WholesalePrice *float64           `json:"preco_atacado,omitempty"`
	PurchasePrice  float64            `json:"preco_compra" binding:"gte=0"`
	StockQuantity  int                `json:"quantidade_estoque" binding:"gte=0"`
	CategoryID     string             `json:"categoria_id,omitempty"`
	Promotions     []PromotionPayload `json:"promocoes,omitempty"`
} // @name CreateProductRequest

// Validate performs custom validation beyond binding tags.
func (r *CreateProductRequest) Validate() error {
	if r.WholesalePrice != nil && *r.WholesalePrice <= 0 {
		return &ValidationError{Field: "preco_atacado", Message: "must be greater than zero when set"}
	}
	if r.WholesalePrice != nil && *r.WholesalePrice > r.RetailPrice {
		return &ValidationError{Field: "preco_atacado", Message: "must not exceed preco_venda"}
	}
	return nil
}

// UpdateProductRequest is the JSON body for updating a product. All
// fields are optional; absent fields are left unchanged.
type UpdateProductRequest struct {
	Name           *string            `json:"nome,omitempty"`
	Code           *string            `json:"codigo,omitempty"`
	RetailPrice    *float64           `json:"preco_venda,omitempty"`
	WholesalePrice *float64           `json:"preco_atacado,omitempty"`
	PurchasePrice  *float64           `json:"preco_compra,omitempty"`
	CategoryID     *string            `json:"categoria_id,omitempty"`
	Promotions     []PromotionPayload `json:"promocoes,omitempty"`
} // @name UpdateProductRequest

// Validate checks the optional price fields.
func (r *UpdateProductRequest) Validate() error {
	if r.RetailPrice != nil && *r.RetailPrice <= 0 {
		return &ValidationError{Field: "preco_venda", Message: "must be greater than zero"}
	}
	if r.WholesalePrice != nil && *r.WholesalePrice <= 0 {
		return &ValidationError{Field: "preco_atacado", Message: "must be greater than zero when set"}
	}
	return nil
}

// AdjustStockRequest sets a product's absolute stock quantity.
type AdjustStockRequest struct {
	Quantity int `json:"quantity" binding:"gte=0"`
} // @name AdjustStockRequest

// CategoryRequest is the JSON body for creating or renaming a category.
type CategoryRequest struct {
	Name string `json:"nome" binding:"required,min=1,max=120"`
} // @name CategoryRequest

// CustomerRequest is the JSON body for creating or updating a customer.
type CustomerRequest struct {
	Name        string            `json:"nome" binding:"required,min=1,max=200"`
	Email       string            `json:"email,omitempty" binding:"omitempty,email"`
	Phone       string            `json:"telefone" binding:"required,min=3,max=30"`
	Address     string            `json:"endereco" binding:"required"`
	Preferences map[string]string `json:"preferencias,omitempty"`
	Notes       string            `json:"observacoes,omitempty"`
} // @name CustomerRequest

// AddCartItemRequest adds one unit of a product to the caller's live cart.
type AddCartItemRequest struct {
	ProductID string `json:"produto_id" binding:"required"`
} // @name AddCartItemRequest

// UpdateCartItemRequest adjusts a live cart line. QuantityDelta is +1 or
// -1; Mode switches the line's price tier. Exactly one must be set.
type UpdateCartItemRequest struct {
	QuantityDelta *int    `json:"quantidade_delta,omitempty"`
	Mode          *string `json:"modo,omitempty"`
} // @name UpdateCartItemRequest

// Validate enforces that exactly one mutation is requested.
func (r *UpdateCartItemRequest) Validate() error {
	if (r.QuantityDelta == nil) == (r.Mode == nil) {
		return &ValidationError{Field: "quantidade_delta", Message: "exactly one of quantidade_delta or modo must be set"}
	}
	if r.QuantityDelta != nil && *r.QuantityDelta != 1 && *r.QuantityDelta != -1 {
		return &ValidationError{Field: "quantidade_delta", Message: "must be +1 or -1"}
	}
	if r.Mode != nil && !model.PriceMode(*r.Mode).Valid() {
		return &ValidationError{Field: "modo", Message: "must be varejo or atacado"}
	}
	return nil
}

// CartItemPayload is one serialized line of a saved cart or sale.
type CartItemPayload struct {
	ProductID string  `json:"produto_id" binding:"required"`
	Quantity  int     `json:"quantidade" binding:"required,gte=1"`
	UnitPrice float64 `json:"preco_unitario" binding:"gte=0"`
	Mode      string  `json:"modo" binding:"required,oneof=varejo atacado"`
}

// SaveCartRequest persists the current cart for later reuse.
type SaveCartRequest struct {
	Items      []CartItemPayload `json:"itens" binding:"required,min=1,dive"`
	CustomerID string            `json:"cliente_id,omitempty"`
	Total      float64           `json:"total" binding:"gte=0"`
} // @name SaveCartRequest

// FinalizeSaleRequest completes a checkout. Payment method and type
// accept display-locale values and are translated to canonical wire
// tokens before persistence.
type FinalizeSaleRequest struct {
	CustomerID    string            `json:"cliente_id,omitempty"`
	Items         []CartItemPayload `json:"itens" binding:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" binding:"required"`
	PaymentType   string            `json:"payment_type" binding:"required"`
	Installments  int               `json:"installments" binding:"omitempty,gte=1,lte=12"`
} // @name FinalizeSaleRequest

// Validate applies the installment default: an absent count means a
// single installment.
func (r *FinalizeSaleRequest) Validate() error {
	if r.Installments == 0 {
		r.Installments = 1
	}
	return nil
}
